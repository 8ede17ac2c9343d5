package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// TriangleMesh represents a collection of triangles with efficient ray intersection
// It uses an internal BVH (Bounding Volume Hierarchy) for fast intersection tests
type TriangleMesh struct {
	triangles *HittableList // Individual triangles, also used for light sampling
	bvh       *BVHNode      // BVH for fast intersection
}

// TriangleMeshOptions contains optional parameters for triangle mesh creation
type TriangleMeshOptions struct {
	Materials []material.Material // Optional per-triangle materials
	Scale     float64             // Uniform scale applied before rotation, 0 means 1
	Rotation  *core.Vec3          // Optional rotation in radians about X, Y, Z
	Center    *core.Vec3          // Optional center point for rotation
}

// NewTriangleMesh creates a new triangle mesh from vertices and face indices
// vertices: array of 3D points
// faces: array of triangle indices (each group of 3 indices forms a triangle)
// mat: default material for all triangles
// options: optional parameters (can be nil for basic mesh)
func NewTriangleMesh(vertices []core.Vec3, faces []int, mat material.Material, options *TriangleMeshOptions) (*TriangleMesh, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("face indices must be a multiple of 3, got %d", len(faces))
	}

	numTriangles := len(faces) / 3
	if options != nil && options.Materials != nil && len(options.Materials) != numTriangles {
		return nil, fmt.Errorf("got %d materials for %d triangles", len(options.Materials), numTriangles)
	}

	workingVertices := transformVertices(vertices, options)

	triangles := NewHittableList()
	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]

		for _, idx := range []int{i0, i1, i2} {
			if idx < 0 || idx >= len(workingVertices) {
				return nil, fmt.Errorf("face %d: vertex index %d out of range [0, %d)", i, idx, len(workingVertices))
			}
		}

		triangleMaterial := mat
		if options != nil && options.Materials != nil {
			triangleMaterial = options.Materials[i]
		}

		triangles.Add(NewTriangle(workingVertices[i0], workingVertices[i1], workingVertices[i2], triangleMaterial))
	}

	return &TriangleMesh{
		triangles: triangles,
		bvh:       NewBVHFromList(triangles),
	}, nil
}

func transformVertices(vertices []core.Vec3, options *TriangleMeshOptions) []core.Vec3 {
	if options == nil || (options.Rotation == nil && (options.Scale == 0 || options.Scale == 1)) {
		return vertices
	}

	scale := options.Scale
	if scale == 0 {
		scale = 1
	}

	out := make([]core.Vec3, len(vertices))
	for i, vertex := range vertices {
		vertex = vertex.Multiply(scale)
		if options.Rotation != nil {
			// Translate to center, rotate, then translate back
			if options.Center != nil {
				vertex = vertex.Subtract(*options.Center)
			}
			vertex = rotateVertex(vertex, *options.Rotation)
			if options.Center != nil {
				vertex = vertex.Add(*options.Center)
			}
		}
		out[i] = vertex
	}
	return out
}

// Hit tests if a ray intersects with any triangle in the mesh
func (tm *TriangleMesh) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler, rec *material.HitRecord) bool {
	return tm.bvh.Hit(ray, rayT, sampler, rec)
}

// BoundingBox returns the axis-aligned bounding box for the entire mesh
func (tm *TriangleMesh) BoundingBox() core.AABB {
	return tm.bvh.BoundingBox()
}

// PDFValue averages the sampling density of all triangles
func (tm *TriangleMesh) PDFValue(origin core.Point3, direction core.Vec3) float64 {
	return tm.triangles.PDFValue(origin, direction)
}

// Random samples a direction toward a uniformly chosen triangle
func (tm *TriangleMesh) Random(origin core.Point3, sampler core.Sampler) core.Vec3 {
	return tm.triangles.Random(origin, sampler)
}

// GetTriangleCount returns the number of triangles in this mesh
func (tm *TriangleMesh) GetTriangleCount() int {
	return tm.triangles.Len()
}

// GetTriangles returns the individual triangles (for debugging or special operations)
func (tm *TriangleMesh) GetTriangles() []Hittable {
	return tm.triangles.Objects
}

// BVHStats returns statistics about the mesh's internal BVH
func (tm *TriangleMesh) BVHStats() BVHStats {
	return tm.bvh.Stats()
}

// rotateVertex applies rotation around X, Y, Z axes (in that order)
func rotateVertex(vertex, rotation core.Vec3) core.Vec3 {
	// Rotation around X axis
	if rotation.X != 0 {
		cos := math.Cos(rotation.X)
		sin := math.Sin(rotation.X)
		y := vertex.Y*cos - vertex.Z*sin
		z := vertex.Y*sin + vertex.Z*cos
		vertex = core.NewVec3(vertex.X, y, z)
	}

	// Rotation around Y axis
	if rotation.Y != 0 {
		cos := math.Cos(rotation.Y)
		sin := math.Sin(rotation.Y)
		x := vertex.X*cos + vertex.Z*sin
		z := -vertex.X*sin + vertex.Z*cos
		vertex = core.NewVec3(x, vertex.Y, z)
	}

	// Rotation around Z axis
	if rotation.Z != 0 {
		cos := math.Cos(rotation.Z)
		sin := math.Sin(rotation.Z)
		x := vertex.X*cos - vertex.Y*sin
		y := vertex.X*sin + vertex.Y*cos
		vertex = core.NewVec3(x, y, vertex.Z)
	}

	return vertex
}
