package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Translate moves a wrapped object by a fixed offset
type Translate struct {
	Object Hittable
	Offset core.Vec3
	bbox   core.AABB
}

// NewTranslate wraps object so it appears displaced by offset
func NewTranslate(object Hittable, offset core.Vec3) *Translate {
	return &Translate{
		Object: object,
		Offset: offset,
		bbox:   object.BoundingBox().Offset(offset),
	}
}

// Hit moves the ray into object space, tests the object and moves the hit point back
func (t *Translate) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler, rec *material.HitRecord) bool {
	moved := core.NewRayWithTime(ray.Origin.Subtract(t.Offset), ray.Direction, ray.Time)
	if !t.Object.Hit(moved, rayT, sampler, rec) {
		return false
	}

	rec.Point = rec.Point.Add(t.Offset)
	return true
}

// BoundingBox returns the wrapped box shifted by the offset
func (t *Translate) BoundingBox() core.AABB {
	return t.bbox
}

// PDFValue forwards light sampling to the wrapped object in object space
func (t *Translate) PDFValue(origin core.Point3, direction core.Vec3) float64 {
	return PDFValue(t.Object, origin.Subtract(t.Offset), direction)
}

// Random forwards light sampling to the wrapped object in object space
func (t *Translate) Random(origin core.Point3, sampler core.Sampler) core.Vec3 {
	return RandomDirection(t.Object, origin.Subtract(t.Offset), sampler)
}

// RotateY rotates a wrapped object about the Y axis
type RotateY struct {
	Object   Hittable
	sinTheta float64
	cosTheta float64
	bbox     core.AABB
}

// NewRotateY wraps object rotated by angle degrees about the Y axis
func NewRotateY(object Hittable, angle float64) *RotateY {
	radians := core.DegreesToRadians(angle)
	r := &RotateY{
		Object:   object,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}

	corners := object.BoundingBox().Corners()
	rotated := make([]core.Point3, 0, len(corners))
	for _, c := range corners {
		rotated = append(rotated, r.toWorld(c))
	}
	r.bbox = core.NewAABBFromPoints(rotated...)

	return r
}

// toObject rotates a world-space vector into object space
func (r *RotateY) toObject(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X-r.sinTheta*v.Z,
		v.Y,
		r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// toWorld rotates an object-space vector into world space
func (r *RotateY) toWorld(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X+r.sinTheta*v.Z,
		v.Y,
		-r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// Hit rotates the ray into object space, tests the object and rotates the hit back
func (r *RotateY) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler, rec *material.HitRecord) bool {
	rotated := core.NewRayWithTime(r.toObject(ray.Origin), r.toObject(ray.Direction), ray.Time)
	if !r.Object.Hit(rotated, rayT, sampler, rec) {
		return false
	}

	rec.Point = r.toWorld(rec.Point)
	rec.Normal = r.toWorld(rec.Normal)
	rec.Tangent = r.toWorld(rec.Tangent)
	rec.Bitangent = r.toWorld(rec.Bitangent)
	return true
}

// BoundingBox returns the axis-aligned box around the rotated corners
func (r *RotateY) BoundingBox() core.AABB {
	return r.bbox
}

// PDFValue forwards light sampling to the wrapped object in object space
func (r *RotateY) PDFValue(origin core.Point3, direction core.Vec3) float64 {
	return PDFValue(r.Object, r.toObject(origin), r.toObject(direction))
}

// Random samples in object space and rotates the direction back to world space
func (r *RotateY) Random(origin core.Point3, sampler core.Sampler) core.Vec3 {
	return r.toWorld(RandomDirection(r.Object, r.toObject(origin), sampler))
}
