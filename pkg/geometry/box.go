package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewBox returns the six outward-facing quads of the axis-aligned box spanned by two opposite corners
func NewBox(a, b core.Point3, mat material.Material) *HittableList {
	sides := NewHittableList()

	min := core.NewVec3(math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z))
	max := core.NewVec3(math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z))

	dx := core.NewVec3(max.X-min.X, 0, 0)
	dy := core.NewVec3(0, max.Y-min.Y, 0)
	dz := core.NewVec3(0, 0, max.Z-min.Z)

	sides.Add(NewQuad(core.NewVec3(min.X, min.Y, max.Z), dx, dy, mat))          // front
	sides.Add(NewQuad(core.NewVec3(max.X, min.Y, max.Z), dz.Negate(), dy, mat)) // right
	sides.Add(NewQuad(core.NewVec3(max.X, min.Y, min.Z), dx.Negate(), dy, mat)) // back
	sides.Add(NewQuad(core.NewVec3(min.X, min.Y, min.Z), dz, dy, mat))          // left
	sides.Add(NewQuad(core.NewVec3(min.X, max.Y, max.Z), dx, dz.Negate(), mat)) // top
	sides.Add(NewQuad(core.NewVec3(min.X, min.Y, min.Z), dx, dz, mat))          // bottom

	return sides
}
