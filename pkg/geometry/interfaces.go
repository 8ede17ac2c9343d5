package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/pdf"
)

// Hittable interface for objects that can be hit by rays.
// Hit only writes rec when it returns true. The sampler is used by
// probabilistic objects such as participating media.
type Hittable interface {
	Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler, rec *material.HitRecord) bool
	BoundingBox() core.AABB
}

// Sampleable is a Hittable that can be explicitly sampled as a light source
type Sampleable interface {
	Hittable
	pdf.Target
}

// defaultSampleDirection is returned by objects that cannot be sampled
var defaultSampleDirection = core.NewVec3(1, 0, 0)

// PDFValue returns h's light-sampling density, or 0 if h cannot be sampled
func PDFValue(h Hittable, origin core.Point3, direction core.Vec3) float64 {
	if s, ok := h.(pdf.Target); ok {
		return s.PDFValue(origin, direction)
	}
	return 0
}

// RandomDirection samples a direction from origin toward h, or a fixed
// direction if h cannot be sampled
func RandomDirection(h Hittable, origin core.Point3, sampler core.Sampler) core.Vec3 {
	if s, ok := h.(pdf.Target); ok {
		return s.Random(origin, sampler)
	}
	return defaultSampleDirection
}

// lightSampleInterval is the ray window used when a primitive evaluates its own sampling density
func lightSampleInterval() core.Interval {
	return core.NewInterval(0.001, math.Inf(1))
}
