package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewFinalScene creates the showcase scene: a field of boxes, a moving
// sphere, glass and metal, scattering volumes, textures and a
// rotated cluster of small spheres
func NewFinalScene(opts Options) (*Scene, error) {
	config := baseCamera()
	config.AspectRatio = 1.0
	config.ImageWidth = 400
	config.SamplesPerPixel = 250
	config.MaxDepth = 4
	config.Background = integrator.NewSolidBackground(core.Vec3{})
	config.VFov = 40
	config.LookFrom = core.NewVec3(478, 278, -600)
	config.LookAt = core.NewVec3(278, 278, 0)

	s := NewScene(config)
	random := core.NewSeededSampler(opts.Seed)

	// Ground of boxes with random heights
	ground := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))
	const boxesPerSide = 20
	boxes := make([]geometry.Hittable, 0, boxesPerSide*boxesPerSide)
	for i := 0; i < boxesPerSide; i++ {
		for j := 0; j < boxesPerSide; j++ {
			w := 100.0
			x0 := -1000.0 + float64(i)*w
			z0 := -1000.0 + float64(j)*w
			y1 := randomRange(random, 1, 101)
			boxes = append(boxes, geometry.NewBox(core.NewVec3(x0, 0, z0), core.NewVec3(x0+w, y1, z0+w), ground))
		}
	}
	s.Add(geometry.NewBVH(boxes))

	s.AddQuadLight(core.NewVec3(123, 554, 147), core.NewVec3(300, 0, 0), core.NewVec3(0, 0, 265), core.NewVec3(7, 7, 7))

	center1 := core.NewVec3(400, 400, 200)
	center2 := center1.Add(core.NewVec3(30, 0, 0))
	s.Add(
		geometry.NewMovingSphere(center1, center2, 50, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1))),
		geometry.NewSphere(core.NewVec3(260, 150, 45), 50, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 1.0)),
	)

	// Glass shell filled with blue scattering medium
	boundary := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, material.NewDielectric(1.5))
	s.Add(boundary, geometry.NewConstantMedium(boundary, 0.2, core.NewVec3(0.2, 0.4, 0.9)))

	// Thin mist over everything
	mist := geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, material.NewDielectric(1.5))
	s.Add(geometry.NewConstantMedium(mist, 0.0001, core.NewVec3(1, 1, 1)))

	earth := material.NewTexturedLambertian(loaders.LoadImageTexture(EarthTexture, opts.Logger))
	s.Add(geometry.NewSphere(core.NewVec3(400, 200, 400), 100, earth))

	marble := material.NewTexturedLambertian(material.NewNoiseTexture(0.2, random))
	s.Add(geometry.NewSphere(core.NewVec3(220, 280, 300), 80, marble))

	// Cluster of small white spheres
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	const clusterSize = 1000
	cluster := make([]geometry.Hittable, 0, clusterSize)
	for j := 0; j < clusterSize; j++ {
		cluster = append(cluster, geometry.NewSphere(randomColor(random, 0, 165), 10, white))
	}
	s.Add(geometry.NewTranslate(geometry.NewRotateY(geometry.NewBVH(cluster), 15), core.NewVec3(-100, 270, 395)))

	return s, nil
}
