package core

import (
	"math"
	"testing"
)

func TestAABB_Hit(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	window := NewInterval(0.001, math.Inf(1))

	tests := []struct {
		name     string
		ray      Ray
		expected bool
	}{
		{"Axis-aligned through center", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), true},
		{"Diagonal through center", NewRay(NewVec3(-5, -5, -5), NewVec3(1, 1, 1)), true},
		{"Parallel outside slab", NewRay(NewVec3(2, 0, -5), NewVec3(0, 0, 1)), false},
		{"Pointing away", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, -1)), false},
		{"Passing beside", NewRay(NewVec3(0, 3, -5), NewVec3(0, 0, 1)), false},
		{"Origin inside", NewRay(NewVec3(0, 0, 0), NewVec3(0.3, 0.2, 1)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray, window); got != tt.expected {
				t.Errorf("Hit = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestAABB_HitRespectsWindow(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	ray := NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1))

	// Box spans t in [4, 6]
	if box.Hit(ray, NewInterval(0.001, 3)) {
		t.Error("Expected miss when window ends before the box")
	}
	if box.Hit(ray, NewInterval(7, 10)) {
		t.Error("Expected miss when window starts after the box")
	}
	if !box.Hit(ray, NewInterval(5, 10)) {
		t.Error("Expected hit when window overlaps the box")
	}
}

func TestAABB_PlanarPadding(t *testing.T) {
	// A box with zero thickness in Y must still be hittable
	box := NewAABBFromPoints(NewVec3(-1, 0, -1), NewVec3(1, 0, 1))
	if box.Y.Size() < aabbPadding {
		t.Errorf("Planar axis not padded: size %g", box.Y.Size())
	}

	ray := NewRay(NewVec3(0, 5, 0), NewVec3(0, -1, 0))
	if !box.Hit(ray, NewInterval(0.001, math.Inf(1))) {
		t.Error("Expected ray to hit padded planar box")
	}
}

func TestAABB_LongestAxis(t *testing.T) {
	tests := []struct {
		name     string
		max      Vec3
		expected int
	}{
		{"X longest", NewVec3(3, 1, 1), 0},
		{"Y longest", NewVec3(1, 3, 1), 1},
		{"Z longest", NewVec3(1, 1, 3), 2},
		{"X ties Z", NewVec3(3, 1, 3), 2},
		{"Y ties Z", NewVec3(1, 3, 3), 2},
		{"X ties Y", NewVec3(3, 3, 1), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := NewAABBFromPoints(NewVec3(0, 0, 0), tt.max)
			if got := box.LongestAxis(); got != tt.expected {
				t.Errorf("LongestAxis = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestAABB_UnionAndOffset(t *testing.T) {
	a := NewAABBFromPoints(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewAABBFromPoints(NewVec3(2, -1, 0), NewVec3(3, 0, 1))

	u := a.Union(b)
	if u.Min() != NewVec3(0, -1, 0) || u.Max() != NewVec3(3, 1, 1) {
		t.Errorf("Union = %v..%v", u.Min(), u.Max())
	}

	if got := EmptyAABB().Union(a); got != a {
		t.Errorf("Empty union should be identity, got %v", got)
	}

	moved := a.Offset(NewVec3(10, 0, 0))
	if moved.Min() != NewVec3(10, 0, 0) || moved.Max() != NewVec3(11, 1, 1) {
		t.Errorf("Offset = %v..%v", moved.Min(), moved.Max())
	}
}
