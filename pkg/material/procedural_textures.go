package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// NewCheckerboardTexture creates a checkerboard in image space, unlike
// CheckerTexture which checks in world space
func NewCheckerboardTexture(width, height, checkSize int, color1, color2 core.Vec3) *ImageTexture {
	checkSize = max(checkSize, 1)
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/checkSize+y/checkSize)%2 == 0 {
				pixels[y*width+x] = color1
			} else {
				pixels[y*width+x] = color2
			}
		}
	}

	return NewImageTexture(width, height, pixels)
}

// NewUVDebugTexture creates a texture whose color at (u, v) is approximately
// (u, v, 0), so mapping mistakes show up as wrong hues
func NewUVDebugTexture(width, height int) *ImageTexture {
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		// Row 0 is the top of the image, where v = 1
		v := 1.0 - (float64(y)+0.5)/float64(height)
		for x := 0; x < width; x++ {
			u := (float64(x) + 0.5) / float64(width)
			pixels[y*width+x] = core.NewVec3(u, v, 0.0)
		}
	}

	return NewImageTexture(width, height, pixels)
}
