package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}

// CheckerTexture alternates two textures in a 3D checker pattern of cubes
type CheckerTexture struct {
	invScale float64
	Even     Texture
	Odd      Texture
}

// NewCheckerTexture creates a spatial checker with cells of size scale
func NewCheckerTexture(scale float64, even, odd Texture) *CheckerTexture {
	return &CheckerTexture{invScale: 1.0 / scale, Even: even, Odd: odd}
}

// NewCheckerTextureFromColors creates a spatial checker from two solid colors
func NewCheckerTextureFromColors(scale float64, even, odd core.Vec3) *CheckerTexture {
	return NewCheckerTexture(scale, NewSolidColor(even), NewSolidColor(odd))
}

// Evaluate picks even or odd by the parity of the cell containing point
func (c *CheckerTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	x := int(math.Floor(c.invScale * point.X))
	y := int(math.Floor(c.invScale * point.Y))
	z := int(math.Floor(c.invScale * point.Z))

	if (x+y+z)%2 == 0 {
		return c.Even.Evaluate(uv, point)
	}
	return c.Odd.Evaluate(uv, point)
}

// NoiseTexture is a marble-like pattern driven by Perlin turbulence
type NoiseTexture struct {
	noise *Perlin
	scale float64
}

// NewNoiseTexture creates a noise texture; the sampler seeds the Perlin tables
func NewNoiseTexture(scale float64, sampler core.Sampler) *NoiseTexture {
	return &NoiseTexture{noise: NewPerlin(sampler), scale: scale}
}

// Evaluate returns a gray level of 0.5*(1 + sin(scale*z + 10*turb(p)))
func (n *NoiseTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	gray := 0.5 * (1 + math.Sin(n.scale*point.Z+10*n.noise.Turbulence(point, 7)))
	return core.NewVec3(gray, gray, gray)
}
