package pdf

import "github.com/df07/go-pathtracer/pkg/core"

// PDF is a direction sampling strategy paired with its density
type PDF interface {
	// Value returns the solid-angle density of sampling direction
	Value(direction core.Vec3) float64
	// Generate draws a direction from the distribution
	Generate(sampler core.Sampler) core.Vec3
}

// Target is an object that can be explicitly sampled from a point, typically a light.
// Objects that cannot be sampled return 0 from PDFValue.
type Target interface {
	PDFValue(origin core.Point3, direction core.Vec3) float64
	Random(origin core.Point3, sampler core.Sampler) core.Vec3
}
