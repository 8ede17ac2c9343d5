package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Triangle represents a single triangle defined by a vertex and two edge vectors
type Triangle struct {
	planar
	Material material.Material
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Point3, mat material.Material) *Triangle {
	return NewTriangleFromEdges(v0, v1.Subtract(v0), v2.Subtract(v0), mat)
}

// NewTriangleFromEdges creates a triangle with vertices q, q+u and q+v
func NewTriangleFromEdges(q core.Point3, u, v core.Vec3, mat material.Material) *Triangle {
	return &Triangle{planar: newPlanar(q, u, v, 0.5), Material: mat}
}

// Hit tests if a ray intersects with the triangle
func (t *Triangle) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler, rec *material.HitRecord) bool {
	tHit, point, alpha, beta, ok := t.intersect(ray, rayT, 1e-6)
	if !ok {
		return false
	}

	unit := core.NewInterval(0, 1)
	if !unit.Contains(alpha) || !unit.Contains(beta) || !unit.Contains(alpha+beta) {
		return false
	}

	t.fill(ray, tHit, point, alpha, beta, t.Material, rec)
	return true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// GetNormal returns the triangle's normal vector
func (t *Triangle) GetNormal() core.Vec3 {
	return t.Normal
}

// Area returns the surface area of the triangle
func (t *Triangle) Area() float64 {
	return t.area
}

// PDFValue returns the solid-angle density of sampling direction over the triangle's area
func (t *Triangle) PDFValue(origin core.Point3, direction core.Vec3) float64 {
	var rec material.HitRecord
	if !t.Hit(core.NewRay(origin, direction), lightSampleInterval(), nil, &rec) {
		return 0
	}
	return t.areaPDF(&rec, direction)
}

// Random returns the direction from origin to a point drawn uniformly over the triangle's area
func (t *Triangle) Random(origin core.Point3, sampler core.Sampler) core.Vec3 {
	alpha, beta := uniformBarycentric(sampler.Get2D())
	point := t.Q.Add(t.U.Multiply(alpha)).Add(t.V.Multiply(beta))
	return point.Subtract(origin)
}

// uniformBarycentric maps a unit square sample to (alpha, beta) with
// alpha+beta <= 1, uniformly distributed over the triangle
func uniformBarycentric(u core.Vec2) (float64, float64) {
	s := math.Sqrt(u.X)
	return 1 - s, u.Y * s
}
