package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

const perlinPointCount = 256

// Perlin generates gradient noise from random unit vectors on a lattice
type Perlin struct {
	randVec [perlinPointCount]core.Vec3
	permX   [perlinPointCount]int
	permY   [perlinPointCount]int
	permZ   [perlinPointCount]int
}

// NewPerlin builds the lattice vectors and permutation tables from sampler
func NewPerlin(sampler core.Sampler) *Perlin {
	p := &Perlin{}
	for i := range p.randVec {
		p.randVec[i] = core.RandomVec3(sampler, -1, 1).Normalize()
	}
	generatePerm(&p.permX, sampler)
	generatePerm(&p.permY, sampler)
	generatePerm(&p.permZ, sampler)
	return p
}

// Noise returns smooth noise in roughly [-1, 1] at point
func (p *Perlin) Noise(point core.Point3) float64 {
	u := point.X - math.Floor(point.X)
	v := point.Y - math.Floor(point.Y)
	w := point.Z - math.Floor(point.Z)

	// Bias keeps the lattice index non-negative for points near the origin
	i := int(math.Floor(point.X) + 10000)
	j := int(math.Floor(point.Y) + 10000)
	k := int(math.Floor(point.Z) + 10000)

	var c [2][2][2]core.Vec3
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				idx := p.permX[(i+di)&255] ^ p.permY[(j+dj)&255] ^ p.permZ[(k+dk)&255]
				c[di][dj][dk] = p.randVec[idx]
			}
		}
	}

	return trilinearInterp(&c, u, v, w)
}

// Turbulence sums depth octaves of noise with halving weight and returns the magnitude
func (p *Perlin) Turbulence(point core.Point3, depth int) float64 {
	accum := 0.0
	weight := 1.0
	for i := 0; i < depth; i++ {
		accum += weight * p.Noise(point)
		weight *= 0.5
		point = point.Multiply(2)
	}
	return math.Abs(accum)
}

// generatePerm fills perm with a Fisher-Yates shuffle of 0..n-1
func generatePerm(perm *[perlinPointCount]int, sampler core.Sampler) {
	for i := range perm {
		perm[i] = i
	}
	for i := perlinPointCount - 1; i > 0; i-- {
		target := core.RandomInt(sampler, 0, i)
		perm[i], perm[target] = perm[target], perm[i]
	}
}

func trilinearInterp(c *[2][2][2]core.Vec3, u, v, w float64) float64 {
	// Hermite smoothing removes grid artifacts
	uu := u * u * (3 - 2*u)
	vv := v * v * (3 - 2*v)
	ww := w * w * (3 - 2*w)

	accum := 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				fi, fj, fk := float64(i), float64(j), float64(k)
				weightV := core.NewVec3(u-fi, v-fj, w-fk)
				weight := (fi*uu + (1-fi)*(1-uu)) *
					(fj*vv + (1-fj)*(1-vv)) *
					(fk*ww + (1-fk)*(1-ww))
				accum += weight * weightV.Dot(c[i][j][k])
			}
		}
	}
	return accum
}
