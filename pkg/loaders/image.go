package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"
	"path/filepath"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ImageDirEnv names a directory searched before the default locations
const ImageDirEnv = "RTW_IMAGES"

// imageSearchPaths are tried in order, relative to the working directory
var imageSearchPaths = []string{
	"",
	"images",
	"../images",
	"../../images",
	"../../../images",
	"../../../../images",
	"../../../../../images",
	"../../../../../../images",
}

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// LoadImage loads a PNG or JPEG image and converts it to Vec3 color array
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects PNG/JPEG from file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filename, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

// FindImage returns the first existing path for filename, looking in the
// RTW_IMAGES directory and then in images directories up to six levels above
// the working directory
func FindImage(filename string) (string, error) {
	var candidates []string
	if dir := os.Getenv(ImageDirEnv); dir != "" {
		candidates = append(candidates, filepath.Join(dir, filename))
	}
	for _, dir := range imageSearchPaths {
		candidates = append(candidates, filepath.Join(dir, filename))
	}

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("image %q not found in %d search locations", filename, len(candidates))
}

// LoadImageTexture finds and decodes filename into an image texture. Loading
// never fails: on error the problem is logged and the returned texture
// renders magenta.
func LoadImageTexture(filename string, logger core.Logger) *material.ImageTexture {
	path, err := FindImage(filename)
	if err != nil {
		logger.Printf("Could not load image file: %v\n", err)
		return material.NewMissingImageTexture()
	}

	data, err := LoadImage(path)
	if err != nil {
		logger.Printf("Could not load image file: %v\n", err)
		return material.NewMissingImageTexture()
	}

	logger.Printf("Loaded image %s (%dx%d)\n", path, data.Width, data.Height)
	return material.NewImageTexture(data.Width, data.Height, data.Pixels)
}
