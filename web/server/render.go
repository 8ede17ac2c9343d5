package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// RenderingPipeline contains the configured scene and raytracer
type RenderingPipeline struct {
	Scene     *scene.Scene
	Raytracer *renderer.Raytracer
}

// setupRenderingPipeline builds the requested scene and applies the request overrides
func (s *Server) setupRenderingPipeline(req *RenderRequest, logger *WebLogger) (*RenderingPipeline, error) {
	options := renderer.DefaultRenderOptions()
	if req.Seed != 0 {
		options.Seed = req.Seed
	}

	sceneObj, err := scene.Build(req.Scene, scene.Options{Seed: options.Seed, Logger: logger})
	if err != nil {
		return nil, err
	}

	config := sceneObj.CameraConfig
	if req.Width > 0 {
		config.ImageWidth = req.Width
	}
	if req.SamplesPerPixel > 0 {
		config.SamplesPerPixel = req.SamplesPerPixel
	}
	if req.MaxDepth > 0 {
		config.MaxDepth = req.MaxDepth
	}

	return &RenderingPipeline{
		Scene:     sceneObj,
		Raytracer: renderer.NewRaytracer(config, sceneObj.World(), options, logger),
	}, nil
}

// handleRender renders the requested scene and responds with a PNG. If the
// render times out the partial image is sent with X-Render-Partial set.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	logger := NewWebLogger(newRenderID(), s.logger)
	pipeline, err := s.setupRenderingPipeline(req, logger)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, scene.ErrUnknownScene) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.renderTimeout)
	defer cancel()

	fb, stats, err := pipeline.Raytracer.Render(ctx)
	partial := false
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		partial = true
	case err != nil:
		// Client went away, nobody to answer
		logger.Printf("Render aborted: %v\n", err)
		return
	}

	var buf bytes.Buffer
	if err := fb.WritePNG(&buf); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	w.Header().Set("X-Render-Duration", stats.Duration.Round(time.Millisecond).String())
	w.Header().Set("X-Render-Partial", strconv.FormatBool(partial))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func newRenderID() string {
	return fmt.Sprintf("render-%d", time.Now().UnixNano())
}
