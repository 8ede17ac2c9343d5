package scene

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Cornell box dimensions (standard 555x555x555 units)
const boxSize = 555.0

// DefaultOBJScale is applied to models in the obj scene when no scale is given
const DefaultOBJScale = 50.0

// cornellCamera looks into the open side of the box
func cornellCamera() renderer.CameraConfig {
	config := baseCamera()
	config.AspectRatio = 1.0
	config.ImageWidth = 600
	config.Background = integrator.NewSolidBackground(core.Vec3{})
	config.VFov = 40
	config.LookFrom = core.NewVec3(278, 278, -800)
	config.LookAt = core.NewVec3(278, 278, 0)
	return config
}

var (
	cornellWhite = core.NewVec3(0.73, 0.73, 0.73)
	cornellRed   = core.NewVec3(0.65, 0.05, 0.05)
	cornellGreen = core.NewVec3(0.12, 0.45, 0.15)
)

// addCornellWalls adds the five walls of the box, shared by every Cornell variant
func addCornellWalls(s *Scene) *material.Lambertian {
	white := material.NewLambertian(cornellWhite)
	red := material.NewLambertian(cornellRed)
	green := material.NewLambertian(cornellGreen)

	s.Add(
		// Right wall (green) - YZ plane at x=boxSize
		geometry.NewQuad(core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize), green),
		// Left wall (red) - YZ plane at x=0
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize), red),
		// Floor
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), white),
		// Ceiling
		geometry.NewQuad(core.NewVec3(boxSize, boxSize, boxSize), core.NewVec3(-boxSize, 0, 0), core.NewVec3(0, 0, -boxSize), white),
		// Back wall
		geometry.NewQuad(core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), white),
	)

	return white
}

// addCornellLight adds the standard ceiling light, facing down
func addCornellLight(s *Scene) {
	s.AddQuadLight(core.NewVec3(343, 554, 332), core.NewVec3(-130, 0, 0), core.NewVec3(0, 0, -105), core.NewVec3(15, 15, 15))
}

// placedBox returns an axis-aligned box from the origin to size, rotated about Y and moved into place
func placedBox(size core.Vec3, angle float64, offset core.Vec3, mat material.Material) geometry.Hittable {
	box := geometry.NewBox(core.NewVec3(0, 0, 0), size, mat)
	return geometry.NewTranslate(geometry.NewRotateY(box, angle), offset)
}

// NewCornellScene creates a Cornell box with a tall box and a glass sphere.
// Both the light and the sphere are sampled explicitly.
func NewCornellScene(opts Options) (*Scene, error) {
	s := NewScene(cornellCamera())
	white := addCornellWalls(s)
	addCornellLight(s)

	s.Add(placedBox(core.NewVec3(165, 330, 165), 15, core.NewVec3(265, 0, 295), white))

	glassCenter, glassRadius := core.NewVec3(190, 90, 190), 90.0
	s.Add(geometry.NewSphere(glassCenter, glassRadius, material.NewDielectric(1.5)))
	// Sampling target only; the proxy never shades anything
	s.AddLightTarget(geometry.NewSphere(glassCenter, glassRadius, material.NewEmptyMaterial()))

	return s, nil
}

// NewCornellSmokeScene creates a Cornell box whose two boxes are filled with
// dark smoke and light fog
func NewCornellSmokeScene(opts Options) (*Scene, error) {
	config := cornellCamera()
	config.SamplesPerPixel = 200

	s := NewScene(config)
	white := addCornellWalls(s)
	s.AddQuadLight(core.NewVec3(113, 554, 127), core.NewVec3(330, 0, 0), core.NewVec3(0, 0, 305), core.NewVec3(7, 7, 7))

	tall := placedBox(core.NewVec3(165, 330, 165), 15, core.NewVec3(265, 0, 295), white)
	short := placedBox(core.NewVec3(165, 165, 165), -18, core.NewVec3(130, 0, 65), white)
	s.Add(
		geometry.NewConstantMedium(tall, 0.01, core.NewVec3(0, 0, 0)),
		geometry.NewConstantMedium(short, 0.01, core.NewVec3(1, 1, 1)),
	)

	return s, nil
}

// NewOBJScene places an OBJ model inside the Cornell box
func NewOBJScene(opts Options) (*Scene, error) {
	if opts.OBJPath == "" {
		return nil, fmt.Errorf("the obj scene needs a model path")
	}

	scale := opts.OBJScale
	if scale == 0 {
		scale = DefaultOBJScale
	}

	mesh, err := loaders.LoadOBJ(opts.OBJPath, scale, opts.Logger)
	if err != nil {
		return nil, err
	}

	s := NewScene(cornellCamera())
	addCornellWalls(s)
	addCornellLight(s)
	s.Add(geometry.NewTranslate(mesh, core.NewVec3(100, 100, 400)))

	return s, nil
}
