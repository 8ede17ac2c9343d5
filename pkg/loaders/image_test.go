package loaders

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// writeTestPNG writes a 2x2 image with white, red, green and blue pixels
func writeTestPNG(t *testing.T, path string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
}

func checkColor(t *testing.T, name string, got, expected core.Vec3) {
	t.Helper()
	const tolerance = 0.01
	if abs(got.X-expected.X) > tolerance ||
		abs(got.Y-expected.Y) > tolerance ||
		abs(got.Z-expected.Z) > tolerance {
		t.Errorf("%s: expected %v, got %v", name, expected, got)
	}
}

// TestLoadImage creates a test PNG and verifies loading
func TestLoadImage(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test.png")
	writeTestPNG(t, testFile)

	imageData, err := LoadImage(testFile)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}

	if imageData.Width != 2 || imageData.Height != 2 {
		t.Errorf("Expected 2x2 image, got %dx%d", imageData.Width, imageData.Height)
	}
	if len(imageData.Pixels) != 4 {
		t.Fatalf("Expected 4 pixels, got %d", len(imageData.Pixels))
	}

	// Row-major order
	checkColor(t, "Top-left (white)", imageData.Pixels[0], core.NewVec3(1.0, 1.0, 1.0))
	checkColor(t, "Top-right (red)", imageData.Pixels[1], core.NewVec3(1.0, 0.0, 0.0))
	checkColor(t, "Bottom-left (green)", imageData.Pixels[2], core.NewVec3(0.0, 1.0, 0.0))
	checkColor(t, "Bottom-right (blue)", imageData.Pixels[3], core.NewVec3(0.0, 0.0, 1.0))
}

// TestLoadImageNotFound verifies error handling for missing files
func TestLoadImageNotFound(t *testing.T) {
	_, err := LoadImage("nonexistent.png")
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestLoadImageInvalidData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadImage(path); err == nil {
		t.Error("Expected decode error, got nil")
	}
}

func TestFindImage_EnvironmentDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "earth.png"))
	t.Setenv(ImageDirEnv, dir)

	path, err := FindImage("earth.png")
	if err != nil {
		t.Fatalf("FindImage failed: %v", err)
	}
	if path != filepath.Join(dir, "earth.png") {
		t.Errorf("Expected %s, got %s", filepath.Join(dir, "earth.png"), path)
	}
}

func TestFindImage_ParentImagesDirectory(t *testing.T) {
	root := t.TempDir()
	writeTestPNG(t, filepath.Join(root, "images", "earth.png"))
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ImageDirEnv, "")
	t.Chdir(nested)

	path, err := FindImage("earth.png")
	if err != nil {
		t.Fatalf("FindImage failed: %v", err)
	}
	if path != filepath.Join("..", "..", "images", "earth.png") {
		t.Errorf("Unexpected path %s", path)
	}
}

func TestLoadImageTexture(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "tex.png"))
	t.Setenv(ImageDirEnv, dir)

	tests := []struct {
		name     string
		filename string
		uv       core.Vec2
		expected core.Vec3
	}{
		// v=1 is the top row of the image
		{"Top-left", "tex.png", core.NewVec2(0.1, 0.9), core.NewVec3(1, 1, 1)},
		{"Bottom-right", "tex.png", core.NewVec2(0.9, 0.1), core.NewVec3(0, 0, 1)},
		{"Missing file is magenta", "missing.png", core.NewVec2(0.5, 0.5), material.MissingTextureColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tex := LoadImageTexture(tt.filename, core.DiscardLogger)
			checkColor(t, tt.name, tex.Evaluate(tt.uv, core.Vec3{}), tt.expected)
		})
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
