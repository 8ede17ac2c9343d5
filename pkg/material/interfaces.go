package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/pdf"
)

// Material interface for objects that can scatter rays
type Material interface {
	// Scatter decides how an incoming ray leaves the surface; false means absorbed
	Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterRecord, bool)

	// ScatteringPDF returns the material's density for the scattered direction.
	// Only consulted when the scatter record does not skip the PDF.
	ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64
}

// Emitter interface for materials that emit light
type Emitter interface {
	Emitted(rayIn core.Ray, hit *HitRecord) core.Vec3
}

// Texture provides spatially-varying colors for materials
type Texture interface {
	// Evaluate returns color at given UV coordinates and 3D point
	// UV is used for image textures, point for procedural textures
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// ScatterRecord contains the result of material scattering
type ScatterRecord struct {
	Attenuation core.Vec3 // Color attenuation
	PDF         pdf.PDF   // Direction distribution, nil when SkipPDF is set
	SkipPDF     bool      // True for specular materials that pick the ray themselves
	SkipPDFRay  core.Ray  // The deterministic scattered ray when SkipPDF is set
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Point3 // Point of intersection
	Normal    core.Vec3   // Surface normal, always facing against the incoming ray
	T         float64     // Parameter t along the ray
	FrontFace bool        // Whether ray hit the front face
	Material  Material    // Material of the hit object
	UV        core.Vec2   // Surface coordinates
	Tangent   core.Vec3   // Surface tangent, zero when the shape has none
	Bitangent core.Vec3
}

// SetFaceNormal sets the normal vector and determines front/back face.
// outwardNormal is assumed to have unit length.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// EmittedLight returns the emission of m at hit, zero for non-emitters
func EmittedLight(m Material, rayIn core.Ray, hit *HitRecord) core.Vec3 {
	if emitter, ok := m.(Emitter); ok {
		return emitter.Emitted(rayIn, hit)
	}
	return core.Vec3{}
}
