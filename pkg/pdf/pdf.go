package pdf

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// SpherePDF samples directions uniformly over the unit sphere
type SpherePDF struct{}

// NewSpherePDF creates a uniform sphere PDF
func NewSpherePDF() SpherePDF {
	return SpherePDF{}
}

// Value returns 1/(4π) for every direction
func (SpherePDF) Value(direction core.Vec3) float64 {
	return 1.0 / (4.0 * math.Pi)
}

// Generate returns a uniform unit vector
func (SpherePDF) Generate(sampler core.Sampler) core.Vec3 {
	return core.RandomUnitVector(sampler)
}

// CosinePDF samples a cosine-weighted hemisphere around a normal
type CosinePDF struct {
	uvw core.ONB
}

// NewCosinePDF creates a cosine PDF around w
func NewCosinePDF(w core.Vec3) CosinePDF {
	return CosinePDF{uvw: core.NewONB(w)}
}

// Value returns cos(θ)/π, zero below the hemisphere
func (p CosinePDF) Value(direction core.Vec3) float64 {
	cosine := direction.Normalize().Dot(p.uvw.W)
	if cosine <= 0 {
		return 0
	}
	return cosine / math.Pi
}

// Generate returns a cosine-weighted direction in world space
func (p CosinePDF) Generate(sampler core.Sampler) core.Vec3 {
	return p.uvw.Transform(core.RandomCosineDirection(sampler))
}

// HittablePDF samples directions toward a target object as seen from origin
type HittablePDF struct {
	objects Target
	origin  core.Point3
}

// NewHittablePDF creates a PDF that samples objects from origin
func NewHittablePDF(objects Target, origin core.Point3) HittablePDF {
	return HittablePDF{objects: objects, origin: origin}
}

// Value delegates to the target's PDFValue
func (p HittablePDF) Value(direction core.Vec3) float64 {
	return p.objects.PDFValue(p.origin, direction)
}

// Generate delegates to the target's Random
func (p HittablePDF) Generate(sampler core.Sampler) core.Vec3 {
	return p.objects.Random(p.origin, sampler)
}

// MixturePDF is an equal-weight mixture of two PDFs
type MixturePDF struct {
	p0, p1 PDF
}

// NewMixturePDF creates a 50/50 mixture of p0 and p1
func NewMixturePDF(p0, p1 PDF) MixturePDF {
	return MixturePDF{p0: p0, p1: p1}
}

// Value returns the average of both densities
func (m MixturePDF) Value(direction core.Vec3) float64 {
	return 0.5*m.p0.Value(direction) + 0.5*m.p1.Value(direction)
}

// Generate picks one of the two PDFs with equal probability and samples it
func (m MixturePDF) Generate(sampler core.Sampler) core.Vec3 {
	if sampler.Get1D() < 0.5 {
		return m.p0.Generate(sampler)
	}
	return m.p1.Generate(sampler)
}
