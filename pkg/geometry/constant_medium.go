package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// mediumExitOffset separates the search for the exit crossing from the entry crossing
const mediumExitOffset = 0.0001

// ConstantMedium is a homogeneous participating medium such as smoke or fog,
// filling the inside of a closed boundary object
type ConstantMedium struct {
	Boundary      Hittable
	negInvDensity float64
	PhaseFunction material.Material
}

// NewConstantMedium creates a medium of the given density and solid albedo
func NewConstantMedium(boundary Hittable, density float64, albedo core.Vec3) *ConstantMedium {
	return &ConstantMedium{
		Boundary:      boundary,
		negInvDensity: -1.0 / density,
		PhaseFunction: material.NewIsotropic(albedo),
	}
}

// NewTexturedConstantMedium creates a medium whose albedo comes from a texture
func NewTexturedConstantMedium(boundary Hittable, density float64, albedo material.Texture) *ConstantMedium {
	return &ConstantMedium{
		Boundary:      boundary,
		negInvDensity: -1.0 / density,
		PhaseFunction: material.NewTexturedIsotropic(albedo),
	}
}

// Hit samples an exponential free-flight distance inside the boundary.
// The ray scatters if that distance is shorter than the path through the medium.
func (m *ConstantMedium) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler, rec *material.HitRecord) bool {
	var rec1, rec2 material.HitRecord

	if !m.Boundary.Hit(ray, core.UniverseInterval(), sampler, &rec1) {
		return false
	}
	if !m.Boundary.Hit(ray, core.NewInterval(rec1.T+mediumExitOffset, math.Inf(1)), sampler, &rec2) {
		return false
	}

	t1 := math.Max(rec1.T, rayT.Min)
	t2 := math.Min(rec2.T, rayT.Max)
	if t1 >= t2 {
		return false
	}
	if t1 < 0 {
		t1 = 0
	}

	rayLength := ray.Direction.Length()
	distanceInsideBoundary := (t2 - t1) * rayLength
	hitDistance := m.negInvDensity * math.Log(sampler.Get1D())
	if hitDistance > distanceInsideBoundary {
		return false
	}

	rec.T = t1 + hitDistance/rayLength
	rec.Point = ray.At(rec.T)

	// Normal and face are arbitrary inside a medium
	rec.Normal = core.NewVec3(1, 0, 0)
	rec.FrontFace = true
	rec.UV = core.Vec2{}
	rec.Tangent, rec.Bitangent = core.Vec3{}, core.Vec3{}
	rec.Material = m.PhaseFunction

	return true
}

// BoundingBox returns the boundary's box
func (m *ConstantMedium) BoundingBox() core.AABB {
	return m.Boundary.BoundingBox()
}
