package renderer

import (
	"context"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	camera     *Camera
	world      World
	integrator integrator.Integrator
}

// NewTileRenderer creates a new tile renderer with the given camera, world and integrator
func NewTileRenderer(camera *Camera, world World, integratorInst integrator.Integrator) *TileRenderer {
	return &TileRenderer{
		camera:     camera,
		world:      world,
		integrator: integratorInst,
	}
}

// RenderTile renders every pixel of tile into fb. The context is checked
// between scanlines; on cancellation the partially rendered tile is left in fb.
func (tr *TileRenderer) RenderTile(ctx context.Context, tile *Tile, fb *Framebuffer, sampler core.Sampler) (RenderStats, error) {
	bounds := tile.Bounds
	stats := RenderStats{Tiles: 1, SamplesPerPixel: tr.camera.SamplesPerPixel()}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			ps := tr.samplePixel(i, j, sampler)
			fb.Set(i, j, ps.GetColor())

			stats.TotalPixels++
			stats.TotalSamples += ps.SampleCount
			stats.NaNSamples += ps.NaNCount
		}
	}

	return stats, nil
}

// samplePixel takes one sample in every stratum of the pixel's sqrt(spp) x sqrt(spp) grid
func (tr *TileRenderer) samplePixel(i, j int, sampler core.Sampler) PixelStats {
	var ps PixelStats
	sqrtSpp := tr.camera.SqrtSPP()

	for sj := 0; sj < sqrtSpp; sj++ {
		for si := 0; si < sqrtSpp; si++ {
			ray := tr.camera.GetRay(i, j, si, sj, sampler)
			ps.AddSample(tr.integrator.RayColor(ray, tr.world.Objects, tr.world.Lights, sampler))
		}
	}

	return ps
}
