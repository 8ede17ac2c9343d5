package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestNewMetal_FuzznessClamp(t *testing.T) {
	tests := []struct {
		name             string
		inputFuzzness    float64
		expectedFuzzness float64
	}{
		{"Valid fuzzness 0.0", 0.0, 0.0},
		{"Valid fuzzness 0.5", 0.5, 0.5},
		{"Valid fuzzness 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzzness)
			if metal.Fuzzness != tt.expectedFuzzness {
				t.Errorf("Expected fuzzness %f, got %f", tt.expectedFuzzness, metal.Fuzzness)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	ray := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))
	hit := &HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		FrontFace: true,
	}

	result, scattered := metal.Scatter(ray, hit, sampler)
	if !scattered {
		t.Fatal("Mirror reflection above the surface should scatter")
	}
	if !result.SkipPDF {
		t.Error("Metal should skip the PDF")
	}
	if result.Attenuation != albedo {
		t.Errorf("Expected attenuation %v, got %v", albedo, result.Attenuation)
	}

	expected := core.NewVec3(1, 1, 0).Normalize()
	if result.SkipPDFRay.Direction.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected reflection %v, got %v", expected, result.SkipPDFRay.Direction)
	}
	if result.SkipPDFRay.Origin != hit.Point {
		t.Errorf("Scattered ray should start at the hit point, got %v", result.SkipPDFRay.Origin)
	}
}

func TestMetal_FuzzyReflectionStaysAboveSurface(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.7, 0.6, 0.5), 1.0)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(7)))
	normal := core.NewVec3(0, 1, 0)

	// Grazing incidence so that fuzz often pushes the ray under the surface
	ray := core.NewRay(core.NewVec3(-1, 0.1, 0), core.NewVec3(1, -0.1, 0))
	hit := &HitRecord{Point: core.Vec3{}, Normal: normal, FrontFace: true}

	absorbed := 0
	for i := 0; i < 1000; i++ {
		result, scattered := metal.Scatter(ray, hit, sampler)
		if !scattered {
			absorbed++
			continue
		}
		if result.SkipPDFRay.Direction.Dot(normal) <= 0 {
			t.Fatalf("Scattered direction %v points into the surface", result.SkipPDFRay.Direction)
		}
	}

	if absorbed == 0 {
		t.Error("Expected some grazing fuzzy reflections to be absorbed")
	}
}
