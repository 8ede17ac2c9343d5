package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Framebuffer holds the averaged linear radiance of every pixel, row-major from the top-left
type Framebuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFramebuffer creates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the color of pixel (x, y)
func (fb *Framebuffer) At(x, y int) core.Vec3 {
	return fb.Pixels[y*fb.Width+x]
}

// Set stores the color of pixel (x, y)
func (fb *Framebuffer) Set(x, y int, c core.Vec3) {
	fb.Pixels[y*fb.Width+x] = c
}

// linearToGamma applies gamma 2 to a linear component
func linearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// intensity is the interval quantized components are clamped to, so 1.0 maps to 255 not 256
var intensity = core.NewInterval(0.000, 0.999)

// QuantizeComponent converts a linear color component to an 8-bit value.
// NaN becomes 0, then the value is gamma corrected and clamped.
func QuantizeComponent(c float64) int {
	if math.IsNaN(c) {
		c = 0
	}
	return int(256 * intensity.Clamp(linearToGamma(c)))
}

// QuantizeColor converts a linear color to an 8-bit RGBA color
func QuantizeColor(c core.Vec3) color.RGBA {
	return color.RGBA{
		R: uint8(QuantizeComponent(c.X)),
		G: uint8(QuantizeComponent(c.Y)),
		B: uint8(QuantizeComponent(c.Z)),
		A: 255,
	}
}

// ToImage converts the framebuffer to an 8-bit image
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, QuantizeColor(fb.At(x, y)))
		}
	}
	return img
}

// WritePPM writes the framebuffer as an ASCII PPM (P3) image
func (fb *Framebuffer) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", fb.Width, fb.Height); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}

	for _, c := range fb.Pixels {
		r, g, b := QuantizeComponent(c.X), QuantizeComponent(c.Y), QuantizeComponent(c.Z)
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
			return fmt.Errorf("failed to write PPM pixel: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush PPM: %w", err)
	}
	return nil
}

// WritePNG writes the framebuffer as a PNG image
func (fb *Framebuffer) WritePNG(w io.Writer) error {
	if err := png.Encode(w, fb.ToImage()); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// Write encodes the framebuffer in the named format, "ppm" or "png"
func (fb *Framebuffer) Write(w io.Writer, format string) error {
	switch format {
	case "ppm", "":
		return fb.WritePPM(w)
	case "png":
		return fb.WritePNG(w)
	default:
		return fmt.Errorf("unknown image format %q", format)
	}
}
