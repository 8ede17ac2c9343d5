package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own generator seeded by seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// RandomRange returns a random float64 in [lo, hi)
func RandomRange(sampler Sampler, lo, hi float64) float64 {
	return lo + (hi-lo)*sampler.Get1D()
}

// RandomInt returns a random integer in [lo, hi]
func RandomInt(sampler Sampler, lo, hi int) int {
	return int(RandomRange(sampler, float64(lo), float64(hi+1)))
}

// RandomVec3 returns a vector with components in [lo, hi)
func RandomVec3(sampler Sampler, lo, hi float64) Vec3 {
	s := sampler.Get3D()
	return NewVec3(lo+(hi-lo)*s.X, lo+(hi-lo)*s.Y, lo+(hi-lo)*s.Z)
}

// RandomUnitVector returns a uniformly distributed unit vector by rejection sampling.
// Candidates too close to the origin are rejected so normalizing cannot underflow.
func RandomUnitVector(sampler Sampler) Vec3 {
	for {
		p := RandomVec3(sampler, -1, 1)
		lensq := p.LengthSquared()
		if 1e-160 < lensq && lensq <= 1 {
			return p.Divide(math.Sqrt(lensq))
		}
	}
}

// RandomOnHemisphere returns a unit vector in the hemisphere around normal
func RandomOnHemisphere(normal Vec3, sampler Sampler) Vec3 {
	onUnitSphere := RandomUnitVector(sampler)
	if onUnitSphere.Dot(normal) > 0 {
		return onUnitSphere
	}
	return onUnitSphere.Negate()
}

// RandomInUnitDisk returns a point in the z=0 unit disk by rejection sampling
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for {
		s := sampler.Get2D()
		p := NewVec3(2*s.X-1, 2*s.Y-1, 0)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// RandomCosineDirection returns a cosine-weighted direction about +Z
func RandomCosineDirection(sampler Sampler) Vec3 {
	s := sampler.Get2D()
	phi := 2 * math.Pi * s.X
	x := math.Cos(phi) * math.Sqrt(s.Y)
	y := math.Sin(phi) * math.Sqrt(s.Y)
	z := math.Sqrt(1 - s.Y)
	return NewVec3(x, y, z)
}

// RandomToSphere samples a direction about +Z uniformly within the cone
// subtended by a sphere of the given radius at the given squared distance
func RandomToSphere(radius, distanceSquared float64, sampler Sampler) Vec3 {
	s := sampler.Get2D()
	cosThetaMax := math.Sqrt(math.Max(0, 1-radius*radius/distanceSquared))
	z := 1 + s.Y*(cosThetaMax-1)

	phi := 2 * math.Pi * s.X
	sinTheta := math.Sqrt(math.Max(0, 1-z*z))
	x := math.Cos(phi) * sinTheta
	y := math.Sin(phi) * sinTheta

	return NewVec3(x, y, z)
}

// SampleOnUnitSphere generates a uniform random direction on the unit sphere
func SampleOnUnitSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X // z ∈ [-1, 1]
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	x := r * math.Cos(phi)
	y := r * math.Sin(phi)
	return NewVec3(x, y, z)
}
