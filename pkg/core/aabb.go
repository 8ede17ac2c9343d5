package core

// aabbPadding is the minimum thickness of every axis of a bounding box
const aabbPadding = 0.0001

// AABB represents an axis-aligned bounding box as three per-axis intervals.
// Every constructor pads thin axes so planar geometry still supports the slab test.
type AABB struct {
	X, Y, Z Interval
}

// EmptyAABB bounds nothing; it is the identity for Union
func EmptyAABB() AABB {
	return AABB{X: EmptyInterval(), Y: EmptyInterval(), Z: EmptyInterval()}
}

// UniverseAABB bounds everything
func UniverseAABB() AABB {
	return AABB{X: UniverseInterval(), Y: UniverseInterval(), Z: UniverseInterval()}
}

// NewAABB creates an AABB from per-axis intervals
func NewAABB(x, y, z Interval) AABB {
	box := AABB{X: x, Y: y, Z: z}
	box.padToMinimums()
	return box
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Point3) AABB {
	if len(points) == 0 {
		return EmptyAABB()
	}

	box := AABB{
		X: NewInterval(points[0].X, points[0].X),
		Y: NewInterval(points[0].Y, points[0].Y),
		Z: NewInterval(points[0].Z, points[0].Z),
	}
	for _, p := range points[1:] {
		box.X = box.X.Union(NewInterval(p.X, p.X))
		box.Y = box.Y.Union(NewInterval(p.Y, p.Y))
		box.Z = box.Z.Union(NewInterval(p.Z, p.Z))
	}

	box.padToMinimums()
	return box
}

// NewAABBFromBoxes creates an AABB that bounds both boxes
func NewAABBFromBoxes(a, b AABB) AABB {
	return a.Union(b)
}

// padToMinimums widens any axis thinner than the padding, centered on the axis
func (aabb *AABB) padToMinimums() {
	if aabb.X.Size() < aabbPadding && !aabb.X.IsEmpty() {
		aabb.X = aabb.X.Expand(aabbPadding)
	}
	if aabb.Y.Size() < aabbPadding && !aabb.Y.IsEmpty() {
		aabb.Y = aabb.Y.Expand(aabbPadding)
	}
	if aabb.Z.Size() < aabbPadding && !aabb.Z.IsEmpty() {
		aabb.Z = aabb.Z.Expand(aabbPadding)
	}
}

// AxisInterval returns the interval for axis 0 (X), 1 (Y) or 2 (Z)
func (aabb AABB) AxisInterval(axis int) Interval {
	switch axis {
	case 0:
		return aabb.X
	case 1:
		return aabb.Y
	default:
		return aabb.Z
	}
}

// Min returns the minimum corner
func (aabb AABB) Min() Point3 {
	return NewVec3(aabb.X.Min, aabb.Y.Min, aabb.Z.Min)
}

// Max returns the maximum corner
func (aabb AABB) Max() Point3 {
	return NewVec3(aabb.X.Max, aabb.Y.Max, aabb.Z.Max)
}

// Hit tests if a ray intersects with this AABB using the slab method.
// A zero direction component yields infinite slab bounds through IEEE division;
// the NaN produced by 0*Inf on a slab face leaves the window unchanged.
func (aabb AABB) Hit(ray Ray, rayT Interval) bool {
	tMin, tMax := rayT.Min, rayT.Max

	for axis := 0; axis < 3; axis++ {
		ax := aabb.AxisInterval(axis)
		invDirection := 1.0 / ray.Direction.Axis(axis)
		origin := ray.Origin.Axis(axis)

		t0 := (ax.Min - origin) * invDirection
		t1 := (ax.Max - origin) * invDirection
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}

		if tMax <= tMin {
			return false
		}
	}

	return true
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		X: aabb.X.Union(other.X),
		Y: aabb.Y.Union(other.Y),
		Z: aabb.Z.Union(other.Z),
	}
}

// Offset returns the box translated by offset
func (aabb AABB) Offset(offset Vec3) AABB {
	return AABB{
		X: aabb.X.Offset(offset.X),
		Y: aabb.Y.Offset(offset.Y),
		Z: aabb.Z.Offset(offset.Z),
	}
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Point3 {
	return aabb.Min().Add(aabb.Max()).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return NewVec3(aabb.X.Size(), aabb.Y.Size(), aabb.Z.Size())
}

// SurfaceArea returns the surface area of the AABB
func (aabb AABB) SurfaceArea() float64 {
	size := aabb.Size()
	return 2.0 * (size.X*size.Y + size.Y*size.Z + size.Z*size.X)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent.
// Ties go to Z against X, and to Z against Y.
func (aabb AABB) LongestAxis() int {
	x, y, z := aabb.X.Size(), aabb.Y.Size(), aabb.Z.Size()
	if x > y {
		if x > z {
			return 0
		}
		return 2
	}
	if y > z {
		return 1
	}
	return 2
}

// IsEmpty reports whether any axis is empty
func (aabb AABB) IsEmpty() bool {
	return aabb.X.IsEmpty() || aabb.Y.IsEmpty() || aabb.Z.IsEmpty()
}

// Corners returns the eight corners of the box
func (aabb AABB) Corners() [8]Point3 {
	var corners [8]Point3
	n := 0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				x := aabb.X.Min
				if i == 1 {
					x = aabb.X.Max
				}
				y := aabb.Y.Min
				if j == 1 {
					y = aabb.Y.Max
				}
				z := aabb.Z.Min
				if k == 1 {
					z = aabb.Z.Max
				}
				corners[n] = NewVec3(x, y, z)
				n++
			}
		}
	}
	return corners
}
