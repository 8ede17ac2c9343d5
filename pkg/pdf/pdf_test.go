package pdf

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Integrates a PDF over the sphere with uniform samples; a normalized PDF gives 1
func integrateOverSphere(p PDF, sampler core.Sampler, numSamples int) float64 {
	sum := 0.0
	for i := 0; i < numSamples; i++ {
		d := core.SampleOnUnitSphere(sampler.Get2D())
		sum += p.Value(d)
	}
	return sum / float64(numSamples) * 4 * math.Pi
}

func TestPDFNormalization(t *testing.T) {
	tests := []struct {
		name string
		pdf  PDF
	}{
		{"Cosine +Z", NewCosinePDF(core.NewVec3(0, 0, 1))},
		{"Cosine tilted", NewCosinePDF(core.NewVec3(1, 2, -0.5))},
		{"Sphere", NewSpherePDF()},
		{"Mixture", NewMixturePDF(NewSpherePDF(), NewCosinePDF(core.NewVec3(0, 1, 0)))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sampler := core.NewSeededSampler(42)
			integral := integrateOverSphere(tt.pdf, sampler, 100000)

			if math.Abs(integral-1) > 0.03 {
				t.Errorf("PDF integrates to %f, expected ~1", integral)
			}
		})
	}
}

func TestCosinePDF_GenerateInHemisphere(t *testing.T) {
	normal := core.NewVec3(0.3, -1, 0.2).Normalize()
	p := NewCosinePDF(normal)
	sampler := core.NewSeededSampler(1)

	for i := 0; i < 1000; i++ {
		d := p.Generate(sampler)
		if d.Dot(normal) < -1e-9 {
			t.Fatalf("Generated direction %v below hemisphere", d)
		}
		if p.Value(d) <= 0 && d.Dot(normal) > 1e-6 {
			t.Fatalf("Generated direction %v has zero density", d)
		}
	}
}

type fixedTarget struct {
	value     float64
	direction core.Vec3
	lastFrom  core.Point3
}

func (f *fixedTarget) PDFValue(origin core.Point3, direction core.Vec3) float64 {
	f.lastFrom = origin
	return f.value
}

func (f *fixedTarget) Random(origin core.Point3, sampler core.Sampler) core.Vec3 {
	f.lastFrom = origin
	return f.direction
}

func TestHittablePDF_Delegates(t *testing.T) {
	origin := core.NewVec3(1, 2, 3)
	target := &fixedTarget{value: 0.25, direction: core.NewVec3(0, 1, 0)}
	p := NewHittablePDF(target, origin)

	if got := p.Value(core.NewVec3(1, 0, 0)); got != 0.25 {
		t.Errorf("Value = %f, expected 0.25", got)
	}
	if target.lastFrom != origin {
		t.Errorf("Target queried from %v, expected %v", target.lastFrom, origin)
	}
	if got := p.Generate(core.NewSeededSampler(1)); got != target.direction {
		t.Errorf("Generate = %v, expected %v", got, target.direction)
	}
}

func TestMixturePDF_Value(t *testing.T) {
	a := NewHittablePDF(&fixedTarget{value: 1.0}, core.Vec3{})
	b := NewHittablePDF(&fixedTarget{value: 3.0}, core.Vec3{})
	m := NewMixturePDF(a, b)

	if got := m.Value(core.NewVec3(0, 0, 1)); got != 2.0 {
		t.Errorf("Mixture value = %f, expected 2.0", got)
	}
}

func TestMixturePDF_GenerateUsesBoth(t *testing.T) {
	up := core.NewVec3(0, 1, 0)
	down := core.NewVec3(0, -1, 0)
	m := NewMixturePDF(
		NewHittablePDF(&fixedTarget{direction: up}, core.Vec3{}),
		NewHittablePDF(&fixedTarget{direction: down}, core.Vec3{}),
	)
	sampler := core.NewSeededSampler(5)

	ups := 0
	const n = 10000
	for i := 0; i < n; i++ {
		if m.Generate(sampler) == up {
			ups++
		}
	}

	fraction := float64(ups) / n
	if math.Abs(fraction-0.5) > 0.03 {
		t.Errorf("Mixture chose first PDF %f of the time, expected ~0.5", fraction)
	}
}
