package renderer

import (
	"bytes"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestQuantizeComponent(t *testing.T) {
	tests := []struct {
		name     string
		linear   float64
		expected int
	}{
		{"Black", 0, 0},
		{"Quarter is half after gamma", 0.25, 128},
		{"White clamps below 256", 1, 255},
		{"Overexposed", 4, 255},
		{"Negative", -1, 0},
		{"NaN", math.NaN(), 0},
		{"Positive infinity", math.Inf(1), 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuantizeComponent(tt.linear); got != tt.expected {
				t.Errorf("QuantizeComponent(%v) = %d, expected %d", tt.linear, got, tt.expected)
			}
		})
	}
}

func TestFramebuffer_WritePPM(t *testing.T) {
	fb := NewFramebuffer(2, 1)
	fb.Set(0, 0, core.NewVec3(1, 0.25, 0))
	fb.Set(1, 0, core.NewVec3(math.NaN(), 0, 1))

	var buf bytes.Buffer
	if err := fb.WritePPM(&buf); err != nil {
		t.Fatalf("WritePPM failed: %v", err)
	}

	expected := "P3\n2 1\n255\n255 128 0\n0 0 255\n"
	if buf.String() != expected {
		t.Errorf("Unexpected PPM output:\n%q\nexpected:\n%q", buf.String(), expected)
	}
}

func TestFramebuffer_WritePNG(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.Set(2, 1, core.NewVec3(1, 1, 1))

	var buf bytes.Buffer
	if err := fb.Write(&buf, "png"); err != nil {
		t.Fatalf("Write png failed: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Fatalf("Expected 3x2 image, got %v", img.Bounds())
	}

	r, g, b, _ := img.At(2, 1).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("Expected white pixel, got %d %d %d", r>>8, g>>8, b>>8)
	}
	r, _, _, _ = img.At(0, 0).RGBA()
	if r != 0 {
		t.Errorf("Expected black pixel, got red %d", r>>8)
	}
}

func TestFramebuffer_WriteUnknownFormat(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	err := fb.Write(&bytes.Buffer{}, "exr")
	if err == nil || !strings.Contains(err.Error(), "exr") {
		t.Errorf("Expected unknown format error, got %v", err)
	}
}
