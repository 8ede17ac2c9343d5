package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// HittableList is a flat collection of objects tested linearly
type HittableList struct {
	Objects []Hittable
	bbox    core.AABB
}

// NewHittableList creates a list containing objects
func NewHittableList(objects ...Hittable) *HittableList {
	list := &HittableList{bbox: core.EmptyAABB()}
	list.Add(objects...)
	return list
}

// Add appends objects and grows the bounding box
func (l *HittableList) Add(objects ...Hittable) {
	for _, object := range objects {
		l.Objects = append(l.Objects, object)
		l.bbox = l.bbox.Union(object.BoundingBox())
	}
}

// Clear removes all objects
func (l *HittableList) Clear() {
	l.Objects = nil
	l.bbox = core.EmptyAABB()
}

// Len returns the number of objects
func (l *HittableList) Len() int {
	return len(l.Objects)
}

// Hit finds the closest hit among all objects
func (l *HittableList) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler, rec *material.HitRecord) bool {
	var tempRec material.HitRecord
	hitAnything := false
	closestSoFar := rayT.Max

	for _, object := range l.Objects {
		if object.Hit(ray, core.NewInterval(rayT.Min, closestSoFar), sampler, &tempRec) {
			hitAnything = true
			closestSoFar = tempRec.T
			*rec = tempRec
		}
	}

	return hitAnything
}

// BoundingBox returns the union of all object boxes
func (l *HittableList) BoundingBox() core.AABB {
	return l.bbox
}

// PDFValue averages the sampling density of every object with equal weight
func (l *HittableList) PDFValue(origin core.Point3, direction core.Vec3) float64 {
	if len(l.Objects) == 0 {
		return 0
	}

	weight := 1.0 / float64(len(l.Objects))
	sum := 0.0
	for _, object := range l.Objects {
		sum += weight * PDFValue(object, origin, direction)
	}
	return sum
}

// Random samples a direction toward a uniformly chosen object
func (l *HittableList) Random(origin core.Point3, sampler core.Sampler) core.Vec3 {
	if len(l.Objects) == 0 {
		return defaultSampleDirection
	}

	index := int(sampler.Get1D() * float64(len(l.Objects)))
	if index >= len(l.Objects) {
		index = len(l.Objects) - 1
	}
	return RandomDirection(l.Objects[index], origin, sampler)
}
