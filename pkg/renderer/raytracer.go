package renderer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// World bundles what a render needs besides the camera
type World struct {
	Objects geometry.Hittable      // Everything rays can hit, usually a BVH
	Lights  *geometry.HittableList // Objects sampled explicitly, may be empty
}

// RenderOptions configures how a render is scheduled
type RenderOptions struct {
	TileSize   int   // Size of each tile in pixels
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Base random seed; tile i uses Seed+i

	// RussianRouletteMinBounces lets paths end early after this many bounces (0 = off)
	RussianRouletteMinBounces int
}

// DefaultRenderOptions returns sensible default values
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		TileSize:   32,
		NumWorkers: 0, // Auto-detect CPU count
		Seed:       42,
	}
}

// Raytracer renders a world through a camera into a framebuffer
type Raytracer struct {
	camera     *Camera
	world      World
	integrator integrator.Integrator
	options    RenderOptions
	logger     core.Logger
}

// NewRaytracer creates a raytracer using path tracing with the camera's depth and background
func NewRaytracer(config CameraConfig, world World, options RenderOptions, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.DiscardLogger
	}
	if world.Objects == nil {
		world.Objects = geometry.NewHittableList()
	}

	return &Raytracer{
		camera: NewCamera(config),
		world:  world,
		integrator: integrator.NewPathTracingIntegrator(
			integrator.SamplingConfig{
				MaxDepth:                  config.MaxDepth,
				RussianRouletteMinBounces: options.RussianRouletteMinBounces,
			},
			config.Background,
		),
		options: options,
		logger:  logger,
	}
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.integrator = integratorInst
}

// Camera returns the camera rays are generated from
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// Render renders the full image. Tiles are rendered in parallel and each one
// draws from its own seeded generator, so the result does not depend on
// scheduling. If ctx is cancelled the partial framebuffer is returned with
// ctx's error.
func (rt *Raytracer) Render(ctx context.Context) (*Framebuffer, RenderStats, error) {
	startTime := time.Now()

	width, height := rt.camera.ImageWidth(), rt.camera.ImageHeight()
	fb := NewFramebuffer(width, height)
	tiles := NewTileGrid(width, height, rt.options.TileSize)
	pool := NewWorkerPool(rt.options.NumWorkers)
	tileRenderer := NewTileRenderer(rt.camera, rt.world, rt.integrator)

	rt.logger.Printf("Rendering %dx%d, %d samples per pixel, %d tiles on %d workers\n",
		width, height, rt.camera.SamplesPerPixel(), len(tiles), pool.GetNumWorkers())

	var (
		mu        sync.Mutex
		stats     = RenderStats{SamplesPerPixel: rt.camera.SamplesPerPixel(), Workers: pool.GetNumWorkers()}
		completed int
		reported  int
	)

	err := pool.Run(ctx, tiles, func(ctx context.Context, tile *Tile) error {
		sampler := core.NewSeededSampler(rt.options.Seed + int64(tile.ID))
		tileStats, err := tileRenderer.RenderTile(ctx, tile, fb, sampler)

		mu.Lock()
		defer mu.Unlock()
		stats.Merge(tileStats)
		if err != nil {
			return err
		}

		completed++
		if percent := completed * 100 / len(tiles); percent/10 > reported/10 {
			reported = percent
			rt.logger.Printf("  %3d%% (%d/%d tiles, %v)\n", percent, completed, len(tiles), time.Since(startTime).Round(time.Millisecond))
		}
		return nil
	})

	stats.Duration = time.Since(startTime)
	if err != nil {
		rt.logger.Printf("Render stopped after %v: %v\n", stats.Duration, err)
		return fb, stats, err
	}

	if stats.NaNSamples > 0 {
		rt.logger.Printf("Suppressed NaN in %d samples\n", stats.NaNSamples)
	}
	rt.logger.Printf("Render complete in %v\n", stats.Duration)
	return fb, stats, nil
}
