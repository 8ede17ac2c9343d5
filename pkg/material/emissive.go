package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// DiffuseLight represents a one-sided light-emitting material
type DiffuseLight struct {
	Emission Texture // Emitted light color/intensity
}

// NewDiffuseLight creates a new emissive material with a constant color
func NewDiffuseLight(emission core.Vec3) *DiffuseLight {
	return &DiffuseLight{Emission: NewSolidColor(emission)}
}

// NewTexturedDiffuseLight creates a new emissive material driven by a texture
func NewTexturedDiffuseLight(emission Texture) *DiffuseLight {
	return &DiffuseLight{Emission: emission}
}

// Scatter implements the Material interface for emissive materials
// Emissive materials don't scatter rays - they only emit light
func (e *DiffuseLight) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterRecord, bool) {
	return ScatterRecord{}, false
}

// ScatteringPDF is always zero since lights do not scatter
func (e *DiffuseLight) ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64 {
	return 0
}

// Emitted returns the emission on the front face; back faces are dark
func (e *DiffuseLight) Emitted(rayIn core.Ray, hit *HitRecord) core.Vec3 {
	if !hit.FrontFace {
		return core.Vec3{}
	}
	return e.Emission.Evaluate(hit.UV, hit.Point)
}

// EmptyMaterial neither scatters nor emits. It marks geometry placed in a
// lights list purely so it can be sampled.
type EmptyMaterial struct{}

// NewEmptyMaterial creates an empty material
func NewEmptyMaterial() *EmptyMaterial {
	return &EmptyMaterial{}
}

// Scatter always absorbs
func (EmptyMaterial) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterRecord, bool) {
	return ScatterRecord{}, false
}

// ScatteringPDF is always zero
func (EmptyMaterial) ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64 {
	return 0
}
