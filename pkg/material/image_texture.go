package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// MissingTextureColor is returned by image textures that have no pixels
var MissingTextureColor = core.NewVec3(1, 0, 1)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x]
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// NewMissingImageTexture creates an image texture that renders as magenta
func NewMissingImageTexture() *ImageTexture {
	return &ImageTexture{}
}

// Evaluate samples the texture at given UV coordinates using nearest-neighbor filtering
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Width <= 0 || t.Height <= 0 || len(t.Pixels) < t.Width*t.Height {
		return MissingTextureColor
	}

	// Clamp UV to [0, 1]; V=0 is bottom, V=1 is top so flip for image rows
	u := core.NewInterval(0, 1).Clamp(uv.X)
	v := 1.0 - core.NewInterval(0, 1).Clamp(uv.Y)

	x := int(u * float64(t.Width))
	y := int(v * float64(t.Height))

	// Clamp to image bounds
	if x >= t.Width {
		x = t.Width - 1
	}
	if y >= t.Height {
		y = t.Height - 1
	}

	return t.Pixels[y*t.Width+x]
}
