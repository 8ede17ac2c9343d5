package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/pdf"
)

// Sphere represents a sphere shape, optionally moving linearly between two
// centers over ray time [0, 1]
type Sphere struct {
	center   core.Ray // Center at time 0 plus displacement to time 1
	Radius   float64
	Material material.Material
	bbox     core.AABB
}

// NewSphere creates a new stationary sphere
func NewSphere(center core.Point3, radius float64, mat material.Material) *Sphere {
	rvec := core.NewVec3(radius, radius, radius)
	return &Sphere{
		center:   core.NewRay(center, core.Vec3{}),
		Radius:   math.Max(0, radius),
		Material: mat,
		bbox:     core.NewAABBFromPoints(center.Subtract(rvec), center.Add(rvec)),
	}
}

// NewMovingSphere creates a sphere whose center moves from center1 at time 0 to center2 at time 1
func NewMovingSphere(center1, center2 core.Point3, radius float64, mat material.Material) *Sphere {
	rvec := core.NewVec3(radius, radius, radius)
	box1 := core.NewAABBFromPoints(center1.Subtract(rvec), center1.Add(rvec))
	box2 := core.NewAABBFromPoints(center2.Subtract(rvec), center2.Add(rvec))
	return &Sphere{
		center:   core.NewRay(center1, center2.Subtract(center1)),
		Radius:   math.Max(0, radius),
		Material: mat,
		bbox:     core.NewAABBFromBoxes(box1, box2),
	}
}

// Center returns the sphere center at the given time
func (s *Sphere) Center(time float64) core.Point3 {
	return s.center.At(time)
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler, rec *material.HitRecord) bool {
	currentCenter := s.center.At(ray.Time)

	// Half-b form of the quadratic: a t² - 2h t + c = 0
	oc := currentCenter.Subtract(ray.Origin)
	a := ray.Direction.LengthSquared()
	h := ray.Direction.Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (h - sqrtD) / a
	if !rayT.Surrounds(root) {
		root = (h + sqrtD) / a
		if !rayT.Surrounds(root) {
			return false
		}
	}

	rec.T = root
	rec.Point = ray.At(root)
	outwardNormal := rec.Point.Subtract(currentCenter).Divide(s.Radius)
	rec.SetFaceNormal(ray, outwardNormal)
	rec.UV = sphereUV(outwardNormal)
	rec.Tangent, rec.Bitangent = core.Vec3{}, core.Vec3{}
	rec.Material = s.Material

	return true
}

// sphereUV maps a point on the unit sphere to texture coordinates.
// u runs around the Y axis starting at -X, v runs from the south pole (0) to the north pole (1).
func sphereUV(p core.Vec3) core.Vec2 {
	theta := math.Acos(-p.Y)
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	return s.bbox
}

// PDFValue returns the density of directions toward the sphere, uniform over
// its subtended cone, or over all directions when origin is inside
func (s *Sphere) PDFValue(origin core.Point3, direction core.Vec3) float64 {
	var rec material.HitRecord
	if !s.Hit(core.NewRay(origin, direction), lightSampleInterval(), nil, &rec) {
		return 0
	}

	distanceSquared := s.center.At(0).Subtract(origin).LengthSquared()
	if distanceSquared <= s.Radius*s.Radius {
		return pdf.NewSpherePDF().Value(direction)
	}
	cosThetaMax := math.Sqrt(math.Max(0, 1-s.Radius*s.Radius/distanceSquared))
	solidAngle := 2 * math.Pi * (1 - cosThetaMax)
	if solidAngle <= 0 {
		return 0
	}
	return 1 / solidAngle
}

// Random samples a direction from origin uniformly within the sphere's subtended cone
func (s *Sphere) Random(origin core.Point3, sampler core.Sampler) core.Vec3 {
	direction := s.center.At(0).Subtract(origin)
	distanceSquared := direction.LengthSquared()
	if distanceSquared <= s.Radius*s.Radius {
		return pdf.NewSpherePDF().Generate(sampler)
	}
	uvw := core.NewONB(direction)
	return uvw.Transform(core.RandomToSphere(s.Radius, distanceSquared, sampler))
}
