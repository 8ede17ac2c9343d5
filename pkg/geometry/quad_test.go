package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

func TestQuad_Hit(t *testing.T) {
	// Unit square in the z=0 plane facing +Z
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), nil)

	tests := []struct {
		name       string
		ray        core.Ray
		shouldHit  bool
		expectedT  float64
		expectedUV core.Vec2
		frontFace  bool
	}{
		{"Center from front", core.NewRay(core.NewVec3(0.5, 0.5, 1), core.NewVec3(0, 0, -1)), true, 1, core.NewVec2(0.5, 0.5), true},
		{"Corner region from back", core.NewRay(core.NewVec3(0.25, 0.75, -2), core.NewVec3(0, 0, 1)), true, 2, core.NewVec2(0.25, 0.75), false},
		{"Outside bounds", core.NewRay(core.NewVec3(1.5, 0.5, 1), core.NewVec3(0, 0, -1)), false, 0, core.Vec2{}, false},
		{"Parallel", core.NewRay(core.NewVec3(0.5, 0.5, 1), core.NewVec3(1, 0, 0)), false, 0, core.Vec2{}, false},
		{"Behind origin", core.NewRay(core.NewVec3(0.5, 0.5, 1), core.NewVec3(0, 0, 1)), false, 0, core.Vec2{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec material.HitRecord
			hit := quad.Hit(tt.ray, testWindow, nil, &rec)
			if hit != tt.shouldHit {
				t.Fatalf("Expected hit=%v, got %v", tt.shouldHit, hit)
			}
			if !hit {
				return
			}
			if math.Abs(rec.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, rec.T)
			}
			if math.Abs(rec.UV.X-tt.expectedUV.X) > 1e-9 || math.Abs(rec.UV.Y-tt.expectedUV.Y) > 1e-9 {
				t.Errorf("Expected UV %v, got %v", tt.expectedUV, rec.UV)
			}
			if rec.FrontFace != tt.frontFace {
				t.Errorf("Expected front face %v, got %v", tt.frontFace, rec.FrontFace)
			}
		})
	}
}

func TestQuad_BoundingBoxIsPadded(t *testing.T) {
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), nil)
	box := quad.BoundingBox()

	if box.Z.Size() <= 0 {
		t.Errorf("Planar quad box should be padded in Z, got %v", box.Z)
	}

	ray := core.NewRay(core.NewVec3(0.5, 0.5, 1), core.NewVec3(0, 0, -1))
	if !box.Hit(ray, testWindow) {
		t.Error("Expected ray to hit the quad's padded box")
	}
}

func TestQuad_LightSampling(t *testing.T) {
	// 2x2 light one unit above the origin, facing down
	quad := NewQuad(core.NewVec3(-1, 1, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2), nil)
	origin := core.NewVec3(0, 0, 0)

	if math.Abs(quad.Area()-4) > 1e-12 {
		t.Fatalf("Area = %f, expected 4", quad.Area())
	}

	// Straight up: distance 1, cosine 1, area 4
	if got := quad.PDFValue(origin, core.NewVec3(0, 1, 0)); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("PDFValue straight up = %f, expected 0.25", got)
	}
	// Scaling the direction does not change the density
	if got := quad.PDFValue(origin, core.NewVec3(0, 3, 0)); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("PDFValue with scaled direction = %f, expected 0.25", got)
	}
	if got := quad.PDFValue(origin, core.NewVec3(0, -1, 0)); got != 0 {
		t.Errorf("PDFValue pointing away = %f, expected 0", got)
	}

	sampler := core.NewSeededSampler(9)
	for i := 0; i < 200; i++ {
		d := quad.Random(origin, sampler)
		if quad.PDFValue(origin, d) <= 0 {
			t.Fatalf("Sampled direction %v does not hit the quad", d)
		}
	}
}

func TestQuad_EstimatesSolidAngle(t *testing.T) {
	// E[1/pdf] over light samples approaches the subtended solid angle
	quad := NewQuad(core.NewVec3(-1, 1, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2), nil)
	origin := core.NewVec3(0, 0, 0)
	sampler := core.NewSeededSampler(1)

	const n = 20000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += 1 / quad.PDFValue(origin, quad.Random(origin, sampler))
	}

	// A 2x2 square at distance 1 is one face of a cube around the origin
	expected := 4 * math.Pi / 6
	if got := sum / n; math.Abs(got-expected) > 0.02*expected {
		t.Errorf("Estimated solid angle %f, expected %f", got, expected)
	}
}

func TestBox_SixOutwardFaces(t *testing.T) {
	box := NewBox(core.NewVec3(1, 1, 1), core.NewVec3(-1, -1, -1), nil)

	if box.Len() != 6 {
		t.Fatalf("Expected 6 faces, got %d", box.Len())
	}

	bbox := box.BoundingBox()
	// Faces are padded, so the bounds grow by half the padding
	if bbox.Min().Subtract(core.NewVec3(-1, -1, -1)).Length() > 1e-3 || bbox.Max().Subtract(core.NewVec3(1, 1, 1)).Length() > 1e-3 {
		t.Errorf("Box bounds = %v..%v", bbox.Min(), bbox.Max())
	}

	// Rays from outside along each axis hit the front face at distance 4
	directions := []core.Vec3{
		core.NewVec3(1, 0, 0), core.NewVec3(-1, 0, 0),
		core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0),
		core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1),
	}
	for _, d := range directions {
		ray := core.NewRay(d.Multiply(-5), d)
		var rec material.HitRecord
		if !box.Hit(ray, testWindow, nil, &rec) {
			t.Errorf("Ray along %v missed the box", d)
			continue
		}
		if math.Abs(rec.T-4) > 1e-9 {
			t.Errorf("Ray along %v hit at t=%f, expected 4", d, rec.T)
		}
		if !rec.FrontFace {
			t.Errorf("Ray along %v hit a back face; faces should point outward", d)
		}
	}
}
