package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// EarthTexture is the image wrapped around the earth spheres
const EarthTexture = "earthmap.jpg"

// outdoorCamera looks at the origin from the default vantage point of the texture scenes
func outdoorCamera() renderer.CameraConfig {
	config := baseCamera()
	config.Background = skyBackground()
	config.LookFrom = core.NewVec3(13, 2, 3)
	config.LookAt = core.NewVec3(0, 0, 0)
	return config
}

// NewCheckeredScene creates two large spheres sharing a spatial checker texture
func NewCheckeredScene(opts Options) (*Scene, error) {
	s := NewScene(outdoorCamera())

	checker := material.NewTexturedLambertian(
		material.NewCheckerTextureFromColors(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9)),
	)
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, checker),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, checker),
	)

	return s, nil
}

// NewEarthScene creates a single image-textured globe. A missing image renders magenta.
func NewEarthScene(opts Options) (*Scene, error) {
	config := outdoorCamera()
	config.LookFrom = core.NewVec3(0, 0, 12)

	s := NewScene(config)
	earth := material.NewTexturedLambertian(loaders.LoadImageTexture(EarthTexture, opts.Logger))
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 2, earth))

	return s, nil
}

// addPerlinSpheres adds a marbled ground and a marbled sphere resting on it
func addPerlinSpheres(s *Scene, opts Options) {
	noise := material.NewNoiseTexture(4, core.NewSeededSampler(opts.Seed))
	marble := material.NewTexturedLambertian(noise)
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	)
}

// NewPerlinScene creates the marble spheres lit by the sky
func NewPerlinScene(opts Options) (*Scene, error) {
	s := NewScene(outdoorCamera())
	addPerlinSpheres(s, opts)
	return s, nil
}

// NewUVScene shows the surface parameterization of each primitive with a UV
// debug texture, standing on an image-space checkerboard and lit by a disc light
func NewUVScene(opts Options) (*Scene, error) {
	config := baseCamera()
	config.Background = integrator.NewSolidBackground(core.NewVec3(0.05, 0.05, 0.05))
	config.LookFrom = core.NewVec3(0, 4, 12)
	config.LookAt = core.NewVec3(0, 1, 0)
	config.VFov = 30

	s := NewScene(config)

	uv := material.NewTexturedLambertian(material.NewUVDebugTexture(64, 64))
	floor := material.NewTexturedLambertian(
		material.NewCheckerboardTexture(64, 64, 8, core.NewVec3(0.8, 0.8, 0.8), core.NewVec3(0.1, 0.1, 0.1)),
	)

	s.Add(
		geometry.NewDisc(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 6, floor),
		geometry.NewSphere(core.NewVec3(-1.5, 1, 0), 1, uv),
		geometry.NewQuad(core.NewVec3(0.5, 0, -0.5), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), uv),
	)
	s.AddDiscLight(core.NewVec3(0, 6, 2), core.NewVec3(0, -1, 0), 1.5, core.NewVec3(6, 6, 6))

	return s, nil
}
