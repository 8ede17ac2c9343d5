package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewQuadsScene creates five colored quads forming an open box around the camera's view
func NewQuadsScene(opts Options) (*Scene, error) {
	config := baseCamera()
	config.AspectRatio = 1.0
	config.Background = skyBackground()
	config.VFov = 80
	config.LookFrom = core.NewVec3(0, 0, 9)
	config.LookAt = core.NewVec3(0, 0, 0)

	s := NewScene(config)

	leftRed := material.NewLambertian(core.NewVec3(1.0, 0.2, 0.2))
	backGreen := material.NewLambertian(core.NewVec3(0.2, 1.0, 0.2))
	rightBlue := material.NewLambertian(core.NewVec3(0.2, 0.2, 1.0))
	upperOrange := material.NewLambertian(core.NewVec3(1.0, 0.5, 0.0))
	lowerTeal := material.NewLambertian(core.NewVec3(0.2, 0.8, 0.8))

	s.Add(
		geometry.NewQuad(core.NewVec3(-3, -2, 5), core.NewVec3(0, 0, -4), core.NewVec3(0, 4, 0), leftRed),
		geometry.NewQuad(core.NewVec3(-2, -2, 0), core.NewVec3(4, 0, 0), core.NewVec3(0, 4, 0), backGreen),
		geometry.NewQuad(core.NewVec3(3, -2, 1), core.NewVec3(0, 0, 4), core.NewVec3(0, 4, 0), rightBlue),
		geometry.NewQuad(core.NewVec3(-2, 3, 1), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, 4), upperOrange),
		geometry.NewQuad(core.NewVec3(-2, -3, 5), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, -4), lowerTeal),
	)

	return s, nil
}

// NewSimpleLightScene creates the marble spheres in the dark, lit by a
// rectangular light and a spherical light
func NewSimpleLightScene(opts Options) (*Scene, error) {
	config := baseCamera()
	config.Background = integrator.NewSolidBackground(core.Vec3{})
	config.LookFrom = core.NewVec3(26, 3, 6)
	config.LookAt = core.NewVec3(0, 2, 0)

	s := NewScene(config)
	addPerlinSpheres(s, opts)

	emission := core.NewVec3(4, 4, 4)
	s.AddSphereLight(core.NewVec3(0, 7, 0), 2, emission)
	s.AddQuadLight(core.NewVec3(3, 1, -2), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), emission)

	return s, nil
}
