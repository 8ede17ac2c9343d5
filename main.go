package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// cliOptions are the flags that do not map to a render setting
type cliOptions struct {
	configPath string
	cpuProfile string
	list       bool
	help       bool
}

func main() {
	cfg, opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if opts.help {
		printHelp(os.Stdout)
		return
	}
	if opts.list {
		listScenes(os.Stdout)
		return
	}

	if opts.cpuProfile != "" {
		f, err := os.Create(opts.cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	cfg, err = loadConfig(opts.configPath, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(context.Background(), cfg, renderer.NewDefaultLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newFlagSet binds every command line flag to cfg, opts and background
func newFlagSet(cfg *config.Config, opts *cliOptions, background *string) *flag.FlagSet {
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)

	fs.StringVar(&opts.configPath, "config", "", "TOML configuration file")
	fs.StringVar(&opts.cpuProfile, "cpuprofile", "", "Write a CPU profile to this file")
	fs.BoolVar(&opts.list, "list", false, "List available scenes")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	fs.StringVar(&cfg.Scene, "scene", "", "Scene to render (default \"spheres\")")
	fs.StringVar(&cfg.Output, "output", "", "Output file (default \"output.ppm\")")
	fs.StringVar(&cfg.Format, "format", "", "Output format: ppm or png (default from the output extension)")
	fs.IntVar(&cfg.Width, "width", 0, "Image width in pixels (default from scene)")
	fs.IntVar(&cfg.SamplesPerPixel, "spp", 0, "Samples per pixel (default from scene)")
	fs.IntVar(&cfg.MaxDepth, "depth", 0, "Maximum bounces per path (default from scene)")
	fs.IntVar(&cfg.RRMinBounces, "rr", 0, "Start Russian roulette after this many bounces (default off)")
	fs.Int64Var(&cfg.Seed, "seed", 0, "Random seed (default 42)")
	fs.IntVar(&cfg.Workers, "workers", 0, "Number of parallel workers (default: one per CPU)")
	fs.IntVar(&cfg.TileSize, "tile", 0, "Tile size in pixels (default 32)")
	fs.DurationVar(&cfg.Timeout.Duration, "timeout", 0, "Stop rendering after this long and keep the partial image")
	fs.StringVar(&cfg.OBJPath, "obj", "", "OBJ model for the obj scene")
	fs.Float64Var(&cfg.OBJScale, "obj-scale", 0, "Uniform scale for the OBJ model")
	fs.StringVar(background, "background", "", "Background color as r,g,b overriding the scene's")

	return fs
}

// parseFlags reads command line flags into a config holding only the values that were set
func parseFlags(args []string, output io.Writer) (config.Config, cliOptions, error) {
	var cfg config.Config
	var opts cliOptions
	var background string

	fs := newFlagSet(&cfg, &opts, &background)
	fs.SetOutput(output)
	if err := fs.Parse(args); err != nil {
		return config.Config{}, cliOptions{}, err
	}
	if fs.NArg() > 0 {
		return config.Config{}, cliOptions{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if background != "" {
		var r, g, b float64
		if _, err := fmt.Sscanf(background, "%g,%g,%g", &r, &g, &b); err != nil {
			return config.Config{}, cliOptions{}, fmt.Errorf("invalid -background %q: want r,g,b", background)
		}
		cfg.Background = []float64{r, g, b}
	}

	return cfg, opts, nil
}

// loadConfig layers the defaults, the optional config file and the flags, in that order
func loadConfig(path string, flags config.Config) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		fileConfig, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = config.Merge(cfg, fileConfig)
	}
	cfg = config.Merge(cfg, flags)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// applyOverrides replaces scene camera defaults with the configured values
func applyOverrides(camera renderer.CameraConfig, cfg config.Config) renderer.CameraConfig {
	if cfg.Width > 0 {
		camera.ImageWidth = cfg.Width
	}
	if cfg.SamplesPerPixel > 0 {
		camera.SamplesPerPixel = cfg.SamplesPerPixel
	}
	if cfg.MaxDepth > 0 {
		camera.MaxDepth = cfg.MaxDepth
	}
	if color, ok := cfg.BackgroundColor(); ok {
		camera.Background = integrator.NewSolidBackground(color)
	}
	return camera
}

// renderOptions converts the scheduling settings, keeping defaults for unset values
func renderOptions(cfg config.Config) renderer.RenderOptions {
	options := renderer.DefaultRenderOptions()
	if cfg.TileSize > 0 {
		options.TileSize = cfg.TileSize
	}
	if cfg.Workers > 0 {
		options.NumWorkers = cfg.Workers
	}
	if cfg.Seed != 0 {
		options.Seed = cfg.Seed
	}
	options.RussianRouletteMinBounces = cfg.RRMinBounces
	return options
}

// run builds the configured scene, renders it and writes the image. When the
// timeout expires the partial image is still written.
func run(ctx context.Context, cfg config.Config, logger core.Logger) error {
	options := renderOptions(cfg)

	logger.Printf("Building scene %q...\n", cfg.Scene)
	s, err := scene.Build(cfg.Scene, scene.Options{
		Seed:     options.Seed,
		OBJPath:  cfg.OBJPath,
		OBJScale: cfg.OBJScale,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	logger.Printf("Scene has %d primitives\n", s.GetPrimitiveCount())

	if cfg.Timeout.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout.Duration)
		defer cancel()
	}

	raytracer := renderer.NewRaytracer(applyOverrides(s.CameraConfig, cfg), s.World(), options, logger)
	fb, stats, err := raytracer.Render(ctx)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		logger.Printf("Timeout after %v, writing partial image\n", cfg.Timeout.Duration)
	case err != nil:
		return fmt.Errorf("render failed: %w", err)
	}

	logger.Printf("Render completed in %v (%d pixels, %.1f samples per pixel)\n",
		stats.Duration.Round(time.Millisecond), stats.TotalPixels, stats.AverageSamples())

	if err := writeImage(cfg.Output, cfg.OutputFormat(), fb); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", cfg.Output)
	return nil
}

// writeImage encodes fb to path, creating the parent directory if needed
func writeImage(path, format string, fb *renderer.Framebuffer) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := fb.Write(file, format); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Path Tracer")
	fmt.Fprintln(w, "Usage: pathtracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	var cfg config.Config
	var opts cliOptions
	var background string
	fs := newFlagSet(&cfg, &opts, &background)
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprint(w, "Configuration file:")
	fmt.Fprint(w, config.Help+"\n")
	listScenes(w)
}

func listScenes(w io.Writer) {
	fmt.Fprintln(w, "Available scenes:")
	for _, group := range scene.ListAllScenes().Groups {
		fmt.Fprintf(w, "  %s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Fprintf(w, "    %-14s %s\n", info.ID, info.Description)
		}
	}
}
