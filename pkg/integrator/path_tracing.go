package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/pdf"
)

// hitEpsilon offsets the start of every ray to avoid self-intersection
const hitEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing with
// light sampling mixed into the material's scattering distribution
type PathTracingIntegrator struct {
	config     SamplingConfig
	background Background
}

// NewPathTracingIntegrator creates a new path tracing integrator.
// A nil background renders escaping rays black.
func NewPathTracingIntegrator(config SamplingConfig, background Background) *PathTracingIntegrator {
	if background == nil {
		background = NewSolidBackground(core.Vec3{})
	}
	return &PathTracingIntegrator{
		config:     config,
		background: background,
	}
}

// RayColor computes the color for a single camera ray. The path is followed
// iteratively while a throughput multiplier accumulates the attenuation of
// every bounce.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Hittable, lights *geometry.HittableList, sampler core.Sampler) core.Vec3 {
	color := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)
	sampleLights := lights != nil && lights.Len() > 0

	for bounce := 0; bounce < pt.config.MaxDepth; bounce++ {
		var hit material.HitRecord
		if !world.Hit(ray, core.NewInterval(hitEpsilon, math.Inf(1)), sampler, &hit) {
			return color.Add(throughput.MultiplyVec(pt.background.Radiance(ray)))
		}

		// Geometry without a material absorbs everything
		if hit.Material == nil {
			return color
		}

		// Start with emitted light from the hit material
		color = color.Add(throughput.MultiplyVec(material.EmittedLight(hit.Material, ray, &hit)))

		scatter, didScatter := hit.Material.Scatter(ray, &hit, sampler)
		if !didScatter {
			return color
		}

		if scatter.SkipPDF {
			throughput = throughput.MultiplyVec(scatter.Attenuation)
			ray = scatter.SkipPDFRay
		} else {
			var ok bool
			ray, throughput, ok = pt.sampleScatter(ray, &hit, scatter, throughput, lights, sampleLights, sampler)
			if !ok {
				return color
			}
		}

		if throughput.IsBlack() {
			return color
		}

		survive, compensation := pt.applyRussianRoulette(bounce, throughput, sampler)
		if !survive {
			return color
		}
		throughput = throughput.Multiply(compensation)
	}

	return color
}

// sampleScatter draws the next direction from the mixture of light and material
// densities and weights the throughput by the importance-sampling ratio.
// Returns false when the density is zero or undefined.
func (pt *PathTracingIntegrator) sampleScatter(ray core.Ray, hit *material.HitRecord, scatter material.ScatterRecord, throughput core.Vec3, lights *geometry.HittableList, sampleLights bool, sampler core.Sampler) (core.Ray, core.Vec3, bool) {
	if scatter.PDF == nil {
		return ray, throughput, false
	}

	var scatterPDF pdf.PDF = scatter.PDF
	if sampleLights {
		scatterPDF = pdf.NewMixturePDF(pdf.NewHittablePDF(lights, hit.Point), scatter.PDF)
	}

	scattered := core.NewRayWithTime(hit.Point, scatterPDF.Generate(sampler), ray.Time)
	pdfValue := scatterPDF.Value(scattered.Direction)
	if !(pdfValue > 0) || math.IsInf(pdfValue, 0) {
		return ray, throughput, false
	}

	scatteringPDF := hit.Material.ScatteringPDF(ray, hit, scattered)
	weight := scatteringPDF / pdfValue
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return ray, throughput, false
	}

	return scattered, throughput.MultiplyVec(scatter.Attenuation).Multiply(weight), true
}

// applyRussianRoulette decides whether a path survives after the configured
// number of bounces and returns the compensation factor for survivors
func (pt *PathTracingIntegrator) applyRussianRoulette(bounce int, throughput core.Vec3, sampler core.Sampler) (bool, float64) {
	minBounces := pt.config.RussianRouletteMinBounces
	if minBounces <= 0 || bounce+1 < minBounces {
		return true, 1.0
	}

	// Conservative bounds keep the compensation factor between 1.05x and 2.0x
	survivalProb := math.Min(0.95, math.Max(0.5, throughput.Luminance()))
	if sampler.Get1D() > survivalProb {
		return false, 0.0
	}

	return true, 1.0 / survivalProb
}
