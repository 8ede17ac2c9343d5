package geometry

import (
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// BVHNode is a node in the Bounding Volume Hierarchy. Both children are
// always set; a single-object node references the same object twice.
type BVHNode struct {
	Left  Hittable
	Right Hittable
	bbox  core.AABB
}

// NewBVH constructs a BVH from a slice of objects.
// The input slice is copied so callers may keep using it in its original order.
func NewBVH(objects []Hittable) *BVHNode {
	if len(objects) == 0 {
		empty := NewHittableList()
		return &BVHNode{Left: empty, Right: empty, bbox: core.EmptyAABB()}
	}

	objectsCopy := make([]Hittable, len(objects))
	copy(objectsCopy, objects)

	return buildBVH(objectsCopy)
}

// NewBVHFromList constructs a BVH over the objects of a list
func NewBVHFromList(list *HittableList) *BVHNode {
	return NewBVH(list.Objects)
}

// buildBVH recursively splits objects at the median along the longest axis of their bounds
func buildBVH(objects []Hittable) *BVHNode {
	bbox := core.EmptyAABB()
	for _, object := range objects {
		bbox = bbox.Union(object.BoundingBox())
	}

	switch len(objects) {
	case 1:
		return &BVHNode{Left: objects[0], Right: objects[0], bbox: bbox}
	case 2:
		return &BVHNode{Left: objects[0], Right: objects[1], bbox: bbox}
	}

	sortByAxis(objects, bbox.LongestAxis())

	mid := len(objects) / 2
	return &BVHNode{
		Left:  buildBVH(objects[:mid]),
		Right: buildBVH(objects[mid:]),
		bbox:  bbox,
	}
}

// sortByAxis orders objects by the minimum of their bounds along axis.
// NaN bounds compare as equal so the stable sort keeps their relative order.
func sortByAxis(objects []Hittable, axis int) {
	sort.SliceStable(objects, func(i, j int) bool {
		return objects[i].BoundingBox().AxisInterval(axis).Min < objects[j].BoundingBox().AxisInterval(axis).Min
	})
}

// Hit tests the ray against the node's box, then both children, narrowing
// the window to the left hit before testing the right
func (n *BVHNode) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler, rec *material.HitRecord) bool {
	if !n.bbox.Hit(ray, rayT) {
		return false
	}

	hitLeft := n.Left.Hit(ray, rayT, sampler, rec)

	rightT := rayT
	if hitLeft {
		rightT = core.NewInterval(rayT.Min, rec.T)
	}
	hitRight := n.Right.Hit(ray, rightT, sampler, rec)

	return hitLeft || hitRight
}

// BoundingBox returns the union of both children's boxes
func (n *BVHNode) BoundingBox() core.AABB {
	return n.bbox
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes  int
	LeafObjects int // Non-BVH children, counted once per reference
	MaxDepth    int
	AvgDepth    float64
}

// Stats returns statistics about the BVH structure
func (n *BVHNode) Stats() BVHStats {
	stats := BVHStats{}
	n.collectStats(0, &stats)

	// Calculate average depth after collecting all data
	if stats.LeafObjects > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafObjects)
	}

	return stats
}

// collectStats recursively collects statistics about the BVH
func (n *BVHNode) collectStats(depth int, stats *BVHStats) {
	stats.TotalNodes++

	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	for _, child := range [2]Hittable{n.Left, n.Right} {
		if node, ok := child.(*BVHNode); ok {
			node.collectStats(depth+1, stats)
			continue
		}
		stats.LeafObjects++
		stats.AvgDepth += float64(depth + 1)
		if depth+1 > stats.MaxDepth {
			stats.MaxDepth = depth + 1
		}
	}
}
