package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewGroundScene creates a small test scene: a diffuse, a glass and a metal
// sphere resting on a large ground sphere under a gradient sky
func NewGroundScene(opts Options) (*Scene, error) {
	config := baseCamera()
	config.LookFrom = core.NewVec3(-2, 2, 1)
	config.LookAt = core.NewVec3(0, 0, -1)
	config.Background = integrator.NewGradientBackground(core.NewVec3(0.5, 0.7, 1.0), core.NewVec3(1.0, 1.0, 1.0))
	config.FocusDistance = config.LookFrom.Subtract(config.LookAt).Length()

	s := NewScene(config)

	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	glass := material.NewDielectric(1.50)
	bubble := material.NewDielectric(1.00 / 1.50) // Air inside the glass shell
	metal := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0)

	s.Add(
		geometry.NewSphere(core.NewVec3(0.0, -100.5, -1.0), 100.0, ground),
		geometry.NewSphere(core.NewVec3(0.0, 0.0, -1.2), 0.5, center),
		geometry.NewSphere(core.NewVec3(-1.0, 0.0, -1.0), 0.5, glass),
		geometry.NewSphere(core.NewVec3(-1.0, 0.0, -1.0), 0.4, bubble),
		geometry.NewSphere(core.NewVec3(1.0, 0.0, -1.0), 0.5, metal),
	)

	return s, nil
}

// NewSpheresScene creates the classic field of small random spheres around
// three large ones. The diffuse spheres bounce upward during the exposure.
func NewSpheresScene(opts Options) (*Scene, error) {
	config := baseCamera()
	config.Background = skyBackground()
	config.LookFrom = core.NewVec3(13, 2, 3)
	config.LookAt = core.NewVec3(0, 0, 0)
	config.DefocusAngle = 0.6
	config.FocusDistance = 10

	s := NewScene(config)
	random := core.NewSeededSampler(opts.Seed)

	checker := material.NewCheckerTextureFromColors(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(checker)))

	clearing := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Get1D()
			center := core.NewVec3(float64(a)+0.9*random.Get1D(), 0.2, float64(b)+0.9*random.Get1D())

			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				// diffuse
				albedo := randomColor(random, 0, 1).MultiplyVec(randomColor(random, 0, 1))
				center2 := center.Add(core.NewVec3(0, randomRange(random, 0, 0.5), 0))
				s.Add(geometry.NewMovingSphere(center, center2, 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				// metal
				albedo := randomColor(random, 0.5, 1)
				fuzz := randomRange(random, 0, 0.5)
				s.Add(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				// glass
				s.Add(geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return s, nil
}
