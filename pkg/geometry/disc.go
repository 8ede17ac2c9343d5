package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Disc represents a circular disc in 3D space. It is stored as the square
// circumscribing it, so UV coordinates span [0,1] with the center at (0.5,0.5).
type Disc struct {
	planar
	Center   core.Point3
	Radius   float64
	Material material.Material
	right    core.Vec3 // Radius-length in-plane axis
	up       core.Vec3 // Radius-length in-plane axis, perpendicular to right
}

// NewDisc creates a new disc facing along normal
func NewDisc(center core.Point3, normal core.Vec3, radius float64, mat material.Material) *Disc {
	n := normal.Normalize()

	// Any axis not parallel to the normal seeds the in-plane basis
	var seed core.Vec3
	if math.Abs(n.X) > 0.1 {
		seed = core.NewVec3(0, 1, 0)
	} else {
		seed = core.NewVec3(1, 0, 0)
	}
	right := seed.Cross(n).Normalize().Multiply(radius)
	up := n.Cross(right).Normalize().Multiply(radius)

	corner := center.Subtract(right).Subtract(up)
	return &Disc{
		planar:   newPlanar(corner, right.Multiply(2), up.Multiply(2), math.Pi/4),
		Center:   center,
		Radius:   radius,
		Material: mat,
		right:    right,
		up:       up,
	}
}

// Hit tests if a ray intersects with the disc
func (d *Disc) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler, rec *material.HitRecord) bool {
	t, point, alpha, beta, ok := d.intersect(ray, rayT, 1e-8)
	if !ok {
		return false
	}

	du, dv := alpha-0.5, beta-0.5
	if du*du+dv*dv > 0.25 {
		return false
	}

	d.fill(ray, t, point, alpha, beta, d.Material, rec)
	return true
}

// BoundingBox returns the padded box around the disc's circumscribing square
func (d *Disc) BoundingBox() core.AABB {
	return d.bbox
}

// Area returns the surface area of the disc
func (d *Disc) Area() float64 {
	return d.area
}

// PDFValue returns the solid-angle density of sampling direction uniformly over the disc's area
func (d *Disc) PDFValue(origin core.Point3, direction core.Vec3) float64 {
	var rec material.HitRecord
	if !d.Hit(core.NewRay(origin, direction), lightSampleInterval(), nil, &rec) {
		return 0
	}
	return d.areaPDF(&rec, direction)
}

// Random returns the direction from origin to a uniform point on the disc
func (d *Disc) Random(origin core.Point3, sampler core.Sampler) core.Vec3 {
	p := core.RandomInUnitDisk(sampler)
	point := d.Center.Add(d.right.Multiply(p.X)).Add(d.up.Multiply(p.Y))
	return point.Subtract(origin)
}
