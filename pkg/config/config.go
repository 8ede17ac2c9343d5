// Package config loads render settings from a TOML file.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/df07/go-pathtracer/pkg/core"
)

const Help = `
The configuration file is TOML with the following optional keys:
                         scene: name of the scene to render (see -list)
                        output: output file name
                        format: "ppm" or "png"; defaults to the output file extension
                         width: image width in pixels
             samples_per_pixel: samples per pixel, rounded down to a perfect square
                     max_depth: maximum number of bounces per path
  russian_roulette_min_bounces: start Russian roulette after this many bounces, 0 disables it
                          seed: base random seed
                       workers: number of parallel tile workers, 0 for one per CPU
                     tile_size: tile side length in pixels
                       timeout: stop rendering after this duration, e.g. "90s"
                      obj_path: OBJ model rendered by the "obj" scene
                     obj_scale: uniform scale applied to the OBJ model
                    background: [r, g, b] background color overriding the scene's

Zero or missing values keep the scene defaults. For example:

  scene = "cornell"
  output = "cornell.png"
  width = 600
  samples_per_pixel = 200
  timeout = "10m"
`

// Config holds render settings. Zero values mean "not set".
type Config struct {
	Scene           string    `toml:"scene"`
	Output          string    `toml:"output"`
	Format          string    `toml:"format"`
	Width           int       `toml:"width"`
	SamplesPerPixel int       `toml:"samples_per_pixel"`
	MaxDepth        int       `toml:"max_depth"`
	RRMinBounces    int       `toml:"russian_roulette_min_bounces"`
	Seed            int64     `toml:"seed"`
	Workers         int       `toml:"workers"`
	TileSize        int       `toml:"tile_size"`
	Timeout         Duration  `toml:"timeout"`
	OBJPath         string    `toml:"obj_path"`
	OBJScale        float64   `toml:"obj_scale"`
	Background      []float64 `toml:"background"`
}

// Duration is a time.Duration written as a Go duration string
type Duration struct {
	time.Duration
}

// UnmarshalText parses strings such as "1m30s"
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalText formats the duration
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the settings used when neither a file nor flags set a value
func Default() Config {
	return Config{
		Scene:  "spheres",
		Output: "output.ppm",
	}
}

// Load reads and validates a configuration file
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load %q: %w", path, err)
	}
	return cfg, nil
}

// Decode parses a configuration from r. Keys that do not map to a setting are an error.
func Decode(r io.Reader) (Config, error) {
	var cfg Config
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that can never render
func (c Config) Validate() error {
	switch c.Format {
	case "", "ppm", "png":
	default:
		return fmt.Errorf("format must be \"ppm\" or \"png\", got %q", c.Format)
	}

	for _, field := range []struct {
		name  string
		value int
	}{
		{"width", c.Width},
		{"samples_per_pixel", c.SamplesPerPixel},
		{"max_depth", c.MaxDepth},
		{"russian_roulette_min_bounces", c.RRMinBounces},
		{"workers", c.Workers},
		{"tile_size", c.TileSize},
	} {
		if field.value < 0 {
			return fmt.Errorf("%s must not be negative, got %d", field.name, field.value)
		}
	}

	if c.Timeout.Duration < 0 {
		return fmt.Errorf("timeout must not be negative, got %v", c.Timeout.Duration)
	}
	if c.OBJScale < 0 {
		return fmt.Errorf("obj_scale must not be negative, got %g", c.OBJScale)
	}
	if c.Background != nil && len(c.Background) != 3 {
		return fmt.Errorf("background must have 3 components, got %d", len(c.Background))
	}
	return nil
}

// Merge returns base with every set field of override applied on top
func Merge(base, override Config) Config {
	if override.Scene != "" {
		base.Scene = override.Scene
	}
	if override.Output != "" {
		base.Output = override.Output
	}
	if override.Format != "" {
		base.Format = override.Format
	}
	if override.Width != 0 {
		base.Width = override.Width
	}
	if override.SamplesPerPixel != 0 {
		base.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth != 0 {
		base.MaxDepth = override.MaxDepth
	}
	if override.RRMinBounces != 0 {
		base.RRMinBounces = override.RRMinBounces
	}
	if override.Seed != 0 {
		base.Seed = override.Seed
	}
	if override.Workers != 0 {
		base.Workers = override.Workers
	}
	if override.TileSize != 0 {
		base.TileSize = override.TileSize
	}
	if override.Timeout.Duration != 0 {
		base.Timeout = override.Timeout
	}
	if override.OBJPath != "" {
		base.OBJPath = override.OBJPath
	}
	if override.OBJScale != 0 {
		base.OBJScale = override.OBJScale
	}
	if override.Background != nil {
		base.Background = override.Background
	}
	return base
}

// OutputFormat returns the image format, falling back to the output file
// extension and then to PPM
func (c Config) OutputFormat() string {
	if c.Format != "" {
		return c.Format
	}
	if strings.EqualFold(filepath.Ext(c.Output), ".png") {
		return "png"
	}
	return "ppm"
}

// BackgroundColor returns the configured background, if any
func (c Config) BackgroundColor() (core.Vec3, bool) {
	if len(c.Background) != 3 {
		return core.Vec3{}, false
	}
	return core.NewVec3(c.Background[0], c.Background[1], c.Background[2]), true
}
