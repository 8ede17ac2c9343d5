package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	CameraConfig renderer.CameraConfig
	Objects      []geometry.Hittable    // Objects in the scene
	Lights       *geometry.HittableList // Objects sampled explicitly for direct lighting
}

// Options carries the inputs scene builders may need besides their own defaults
type Options struct {
	Seed     int64       // Seeds random placement and Perlin tables
	OBJPath  string      // Model loaded by the obj scene
	OBJScale float64     // Uniform model scale, 0 means the scene default
	Logger   core.Logger // Receives loader messages
}

// NewScene creates an empty scene with the given camera
func NewScene(cameraConfig renderer.CameraConfig) *Scene {
	return &Scene{
		CameraConfig: cameraConfig,
		Lights:       geometry.NewHittableList(),
	}
}

// Add appends objects to the scene
func (s *Scene) Add(objects ...geometry.Hittable) {
	s.Objects = append(s.Objects, objects...)
}

// AddLightTarget registers objects that should be sampled explicitly without
// adding them to the scene a second time
func (s *Scene) AddLightTarget(objects ...geometry.Sampleable) {
	for _, object := range objects {
		s.Lights.Add(object)
	}
}

// AddQuadLight adds a one-sided rectangular area light to the scene.
// The light faces along u x v.
func (s *Scene) AddQuadLight(corner, u, v core.Vec3, emission core.Vec3) *geometry.Quad {
	quadLight := geometry.NewQuad(corner, u, v, material.NewDiffuseLight(emission))
	s.Add(quadLight)
	s.AddLightTarget(quadLight)
	return quadLight
}

// AddSphereLight adds a spherical light to the scene
func (s *Scene) AddSphereLight(center core.Vec3, radius float64, emission core.Vec3) *geometry.Sphere {
	sphereLight := geometry.NewSphere(center, radius, material.NewDiffuseLight(emission))
	s.Add(sphereLight)
	s.AddLightTarget(sphereLight)
	return sphereLight
}

// AddDiscLight adds a one-sided emissive disc facing along normal and registers it as a light
func (s *Scene) AddDiscLight(center, normal core.Vec3, radius float64, emission core.Vec3) *geometry.Disc {
	discLight := geometry.NewDisc(center, normal, radius, material.NewDiffuseLight(emission))
	s.Add(discLight)
	s.AddLightTarget(discLight)
	return discLight
}

// World builds the acceleration structure and returns what the renderer needs.
// Call it once the scene is complete; the result is shared read-only by all workers.
func (s *Scene) World() renderer.World {
	world := renderer.World{Lights: s.Lights}
	if len(s.Objects) == 0 {
		world.Objects = geometry.NewHittableList()
	} else {
		world.Objects = geometry.NewBVH(s.Objects)
	}
	if world.Lights == nil {
		world.Lights = geometry.NewHittableList()
	}
	return world
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, object := range s.Objects {
		count += countPrimitives(object)
	}
	return count
}

// countPrimitives counts primitives in a single object, looking through
// composites and transforms
func countPrimitives(object geometry.Hittable) int {
	switch obj := object.(type) {
	case *geometry.TriangleMesh:
		return obj.GetTriangleCount()
	case *geometry.HittableList:
		count := 0
		for _, child := range obj.Objects {
			count += countPrimitives(child)
		}
		return count
	case *geometry.BVHNode:
		if obj.Left == obj.Right {
			return countPrimitives(obj.Left)
		}
		return countPrimitives(obj.Left) + countPrimitives(obj.Right)
	case *geometry.Translate:
		return countPrimitives(obj.Object)
	case *geometry.RotateY:
		return countPrimitives(obj.Object)
	case *geometry.ConstantMedium:
		return countPrimitives(obj.Boundary)
	default:
		return 1
	}
}

// baseCamera returns the settings most scenes share
func baseCamera() renderer.CameraConfig {
	config := renderer.DefaultCameraConfig()
	config.AspectRatio = 16.0 / 9.0
	config.ImageWidth = 400
	config.SamplesPerPixel = 100
	config.MaxDepth = 50
	config.VFov = 20
	config.FocusDistance = 10
	return config
}

// skyBackground is the light blue sky used by the outdoor scenes
func skyBackground() integrator.Background {
	return integrator.NewSolidBackground(core.NewVec3(0.70, 0.80, 1.00))
}

// randomRange returns a random number in [min, max)
func randomRange(sampler core.Sampler, min, max float64) float64 {
	return min + (max-min)*sampler.Get1D()
}

// randomColor returns a color with components in [min, max)
func randomColor(sampler core.Sampler, min, max float64) core.Vec3 {
	return core.NewVec3(randomRange(sampler, min, max), randomRange(sampler, min, max), randomRange(sampler, min, max))
}
