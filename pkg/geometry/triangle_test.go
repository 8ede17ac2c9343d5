package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

func TestTriangle_Hit(t *testing.T) {
	triangle := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		nil,
	)

	tests := []struct {
		name      string
		origin    core.Vec3
		shouldHit bool
	}{
		{"Inside", core.NewVec3(0.25, 0.25, 1), true},
		{"Near hypotenuse inside", core.NewVec3(0.49, 0.49, 1), true},
		{"Beyond hypotenuse", core.NewVec3(0.6, 0.6, 1), false},
		{"Negative alpha", core.NewVec3(-0.1, 0.5, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, core.NewVec3(0, 0, -1))
			var rec material.HitRecord
			if got := triangle.Hit(ray, testWindow, nil, &rec); got != tt.shouldHit {
				t.Fatalf("Expected hit=%v, got %v", tt.shouldHit, got)
			}
			if tt.shouldHit {
				if math.Abs(rec.T-1) > 1e-9 {
					t.Errorf("Expected t=1, got %f", rec.T)
				}
				if rec.Normal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-9 {
					t.Errorf("Expected normal +Z, got %v", rec.Normal)
				}
			}
		})
	}
}

func TestTriangle_AreaAndSampling(t *testing.T) {
	// Right triangle with legs 2 one unit above the origin
	triangle := NewTriangle(
		core.NewVec3(0, 1, 0),
		core.NewVec3(2, 1, 0),
		core.NewVec3(0, 1, 2),
		nil,
	)

	if math.Abs(triangle.Area()-2) > 1e-12 {
		t.Fatalf("Area = %f, expected 2", triangle.Area())
	}

	origin := core.NewVec3(0.1, 0, 0.1)
	sampler := core.NewSeededSampler(4)
	for i := 0; i < 500; i++ {
		d := triangle.Random(origin, sampler)
		if triangle.PDFValue(origin, d) <= 0 {
			t.Fatalf("Sampled direction %v misses the triangle", d)
		}
	}
}

func TestTriangle_ParallelRayMisses(t *testing.T) {
	triangle := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), nil)
	ray := core.NewRay(core.NewVec3(-1, 0.2, 0), core.NewVec3(1, 0, 0))

	var rec material.HitRecord
	if triangle.Hit(ray, testWindow, nil, &rec) {
		t.Error("Ray in the triangle's plane should miss")
	}
}

func TestTriangle_EstimatesSolidAngle(t *testing.T) {
	// Half of a cube face around the origin, split along the diagonal the
	// two halves mirror each other across, so it subtends a twelfth of the sphere
	triangle := NewTriangle(
		core.NewVec3(-1, 1, -1),
		core.NewVec3(1, 1, -1),
		core.NewVec3(-1, 1, 1),
		nil,
	)
	origin := core.NewVec3(0, 0, 0)
	sampler := core.NewSeededSampler(1)

	const n = 40000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += 1 / triangle.PDFValue(origin, triangle.Random(origin, sampler))
	}

	expected := 4 * math.Pi / 12
	if got := sum / n; math.Abs(got-expected) > 0.02*expected {
		t.Errorf("Estimated solid angle %f, expected %f", got, expected)
	}
}

func TestUniformBarycentric(t *testing.T) {
	sampler := core.NewSeededSampler(3)

	const n = 40000
	var sumAlpha, sumBeta float64
	for i := 0; i < n; i++ {
		alpha, beta := uniformBarycentric(sampler.Get2D())
		if alpha < 0 || beta < 0 || alpha+beta > 1+1e-12 {
			t.Fatalf("Sample (%f, %f) outside the triangle", alpha, beta)
		}
		sumAlpha += alpha
		sumBeta += beta
	}

	// The centroid of a uniform distribution over the triangle is (1/3, 1/3)
	if got := sumAlpha / n; math.Abs(got-1.0/3) > 0.01 {
		t.Errorf("Mean alpha %f, expected 1/3", got)
	}
	if got := sumBeta / n; math.Abs(got-1.0/3) > 0.01 {
		t.Errorf("Mean beta %f, expected 1/3", got)
	}
}
