package core

import (
	"math"
	"testing"
)

func TestRandomUnitVector(t *testing.T) {
	sampler := NewSeededSampler(42)

	for i := 0; i < 1000; i++ {
		v := RandomUnitVector(sampler)
		if math.Abs(v.Length()-1) > 1e-9 {
			t.Fatalf("RandomUnitVector returned non-unit vector %v", v)
		}
	}
}

func TestRandomInUnitDisk(t *testing.T) {
	sampler := NewSeededSampler(7)

	for i := 0; i < 1000; i++ {
		p := RandomInUnitDisk(sampler)
		if p.Z != 0 || p.LengthSquared() >= 1 {
			t.Fatalf("RandomInUnitDisk returned %v outside the disk", p)
		}
	}
}

func TestRandomCosineDirection(t *testing.T) {
	sampler := NewSeededSampler(3)
	const numSamples = 20000

	// E[cos θ] for a cosine-weighted hemisphere is 2/3
	sum := 0.0
	for i := 0; i < numSamples; i++ {
		d := RandomCosineDirection(sampler)
		if d.Z < 0 {
			t.Fatalf("Cosine direction below hemisphere: %v", d)
		}
		if math.Abs(d.Length()-1) > 1e-9 {
			t.Fatalf("Cosine direction not unit length: %v", d)
		}
		sum += d.Z
	}

	mean := sum / numSamples
	if math.Abs(mean-2.0/3.0) > 0.01 {
		t.Errorf("Mean cosine = %f, expected ~0.667", mean)
	}
}

func TestRandomToSphere(t *testing.T) {
	sampler := NewSeededSampler(11)
	radius := 1.0
	distanceSquared := 4.0
	cosThetaMax := math.Sqrt(1 - radius*radius/distanceSquared)

	for i := 0; i < 1000; i++ {
		d := RandomToSphere(radius, distanceSquared, sampler)
		if d.Z < cosThetaMax-1e-9 {
			t.Fatalf("Direction %v outside cone (cos max %f)", d, cosThetaMax)
		}
		if math.Abs(d.Length()-1) > 1e-9 {
			t.Fatalf("Direction %v not unit length", d)
		}
	}
}

func TestSeededSamplerDeterministic(t *testing.T) {
	a := NewSeededSampler(99)
	b := NewSeededSampler(99)

	for i := 0; i < 100; i++ {
		if a.Get1D() != b.Get1D() {
			t.Fatal("Samplers with the same seed diverged")
		}
	}
}
