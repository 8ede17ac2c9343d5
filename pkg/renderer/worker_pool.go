package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// TileFunc renders a single tile
type TileFunc func(ctx context.Context, tile *Tile) error

// WorkerPool renders tiles in parallel with a bounded number of goroutines
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// A non-positive count uses one worker per CPU.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run calls render for every tile and waits for all of them. The first error
// cancels the context passed to the remaining tiles and is returned.
func (wp *WorkerPool) Run(ctx context.Context, tiles []*Tile, render TileFunc) error {
	g, tileCtx := errgroup.WithContext(ctx)
	g.SetLimit(wp.numWorkers)

	for _, tile := range tiles {
		if tileCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := tileCtx.Err(); err != nil {
				return err
			}
			return render(tileCtx, tile)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	// Tiles skipped after cancellation report nothing, so check the caller's context too
	return ctx.Err()
}
