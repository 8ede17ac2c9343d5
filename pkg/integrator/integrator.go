package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray.
	// lights lists the objects sampled explicitly for direct lighting and may be empty.
	RayColor(ray core.Ray, world geometry.Hittable, lights *geometry.HittableList, sampler core.Sampler) core.Vec3
}

// SamplingConfig controls path termination
type SamplingConfig struct {
	MaxDepth int // Maximum number of surface interactions per path

	// RussianRouletteMinBounces enables Russian roulette after this many
	// bounces. 0 disables it and paths only end at MaxDepth.
	RussianRouletteMinBounces int
}

// Background supplies the radiance for rays that escape the scene
type Background interface {
	Radiance(ray core.Ray) core.Vec3
}

// SolidBackground returns the same color in every direction
type SolidBackground struct {
	Color core.Vec3
}

// NewSolidBackground creates a constant background
func NewSolidBackground(color core.Vec3) SolidBackground {
	return SolidBackground{Color: color}
}

// Radiance returns the constant color
func (b SolidBackground) Radiance(ray core.Ray) core.Vec3 {
	return b.Color
}

// GradientBackground blends vertically between two colors
type GradientBackground struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// NewGradientBackground creates a sky gradient
func NewGradientBackground(top, bottom core.Vec3) GradientBackground {
	return GradientBackground{Top: top, Bottom: bottom}
}

// Radiance returns a gradient color based on ray direction
func (b GradientBackground) Radiance(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return b.Bottom.Multiply(1.0 - t).Add(b.Top.Multiply(t))
}
