package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// planar holds the plane equation shared by quads and triangles
type planar struct {
	Q      core.Point3 // Origin corner
	U      core.Vec3   // First edge vector
	V      core.Vec3   // Second edge vector
	Normal core.Vec3   // Unit normal (U × V)
	D      float64     // Plane equation constant: normal · p = D
	w      core.Vec3   // n / (n · n), recovers planar coordinates
	area   float64
	bbox   core.AABB
}

func newPlanar(q core.Point3, u, v core.Vec3, areaScale float64) planar {
	n := u.Cross(v)
	normal := n.Normalize()
	p := planar{
		Q:      q,
		U:      u,
		V:      v,
		Normal: normal,
		D:      normal.Dot(q),
		w:      n.Divide(n.Dot(n)),
		area:   n.Length() * areaScale,
	}

	diagonal1 := core.NewAABBFromPoints(q, q.Add(u).Add(v))
	diagonal2 := core.NewAABBFromPoints(q.Add(u), q.Add(v))
	p.bbox = core.NewAABBFromBoxes(diagonal1, diagonal2)
	return p
}

// intersect solves for the plane crossing and returns t, the point and planar coordinates
func (p *planar) intersect(ray core.Ray, rayT core.Interval, epsilon float64) (float64, core.Point3, float64, float64, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Ray is parallel to the plane
	if math.Abs(denominator) < epsilon {
		return 0, core.Vec3{}, 0, 0, false
	}

	t := (p.D - p.Normal.Dot(ray.Origin)) / denominator
	if !rayT.Contains(t) {
		return 0, core.Vec3{}, 0, 0, false
	}

	intersection := ray.At(t)
	hitVector := intersection.Subtract(p.Q)
	alpha := p.w.Dot(hitVector.Cross(p.V))
	beta := p.w.Dot(p.U.Cross(hitVector))

	return t, intersection, alpha, beta, true
}

func (p *planar) fill(ray core.Ray, t float64, point core.Point3, alpha, beta float64, mat material.Material, rec *material.HitRecord) {
	rec.T = t
	rec.Point = point
	rec.UV = core.NewVec2(alpha, beta)
	rec.Material = mat
	rec.SetFaceNormal(ray, p.Normal)
	rec.Tangent = p.U.Normalize()
	rec.Bitangent = rec.Normal.Cross(rec.Tangent)
}

// areaPDF converts the area density 1/A at the hit into a solid-angle density
func (p *planar) areaPDF(rec *material.HitRecord, direction core.Vec3) float64 {
	distanceSquared := rec.T * rec.T * direction.LengthSquared()
	cosine := math.Abs(direction.Dot(rec.Normal) / direction.Length())
	denominator := cosine * p.area
	if denominator <= 0 {
		return 0
	}
	return distanceSquared / denominator
}

// Quad represents a parallelogram defined by a corner and two edge vectors
type Quad struct {
	planar
	Material material.Material
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner core.Point3, u, v core.Vec3, mat material.Material) *Quad {
	return &Quad{planar: newPlanar(corner, u, v, 1.0), Material: mat}
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler, rec *material.HitRecord) bool {
	t, point, alpha, beta, ok := q.intersect(ray, rayT, 1e-8)
	if !ok {
		return false
	}

	unit := core.NewInterval(0, 1)
	if !unit.Contains(alpha) || !unit.Contains(beta) {
		return false
	}

	q.fill(ray, t, point, alpha, beta, q.Material, rec)
	return true
}

// BoundingBox returns the padded box around all four corners
func (q *Quad) BoundingBox() core.AABB {
	return q.bbox
}

// Area returns the surface area of the quad
func (q *Quad) Area() float64 {
	return q.area
}

// PDFValue returns the solid-angle density of sampling direction uniformly over the quad's area
func (q *Quad) PDFValue(origin core.Point3, direction core.Vec3) float64 {
	var rec material.HitRecord
	if !q.Hit(core.NewRay(origin, direction), lightSampleInterval(), nil, &rec) {
		return 0
	}
	return q.areaPDF(&rec, direction)
}

// Random returns the direction from origin to a uniform point on the quad
func (q *Quad) Random(origin core.Point3, sampler core.Sampler) core.Vec3 {
	s := sampler.Get2D()
	point := q.Q.Add(q.U.Multiply(s.X)).Add(q.V.Multiply(s.Y))
	return point.Subtract(origin)
}
