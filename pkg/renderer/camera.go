package renderer

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// CameraConfig contains all camera and image parameters
type CameraConfig struct {
	AspectRatio     float64               // Ratio of image width over height
	ImageWidth      int                   // Rendered image width in pixels
	SamplesPerPixel int                   // Rounded down to a perfect square for stratification
	MaxDepth        int                   // Maximum number of ray bounces into the scene
	Background      integrator.Background // Radiance of rays that escape the scene

	VFov     float64   // Vertical field of view in degrees
	LookFrom core.Vec3 // Camera position
	LookAt   core.Vec3 // Point the camera looks at
	VUp      core.Vec3 // Camera-relative "up" direction

	DefocusAngle  float64 // Variation angle of rays through each pixel, in degrees; 0 disables depth of field
	FocusDistance float64 // Distance from camera to the plane of perfect focus
}

// DefaultCameraConfig returns a camera at the origin looking down -Z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		AspectRatio:     1.0,
		ImageWidth:      100,
		SamplesPerPixel: 10,
		MaxDepth:        10,
		Background:      integrator.NewSolidBackground(core.Vec3{}),
		VFov:            90,
		LookFrom:        core.NewVec3(0, 0, 0),
		LookAt:          core.NewVec3(0, 0, -1),
		VUp:             core.NewVec3(0, 1, 0),
		DefocusAngle:    0,
		FocusDistance:   10,
	}
}

// Camera generates stratified primary rays through a thin lens
type Camera struct {
	config CameraConfig

	imageWidth   int
	imageHeight  int
	sqrtSpp      int     // Square root of the number of samples per pixel
	recipSqrtSpp float64 // 1 / sqrtSpp

	center      core.Point3
	pixel00     core.Point3 // Location of pixel 0, 0
	pixelDeltaU core.Vec3   // Offset to pixel to the right
	pixelDeltaV core.Vec3   // Offset to pixel below
	u, v, w     core.Vec3   // Camera frame basis vectors
	defocusU    core.Vec3   // Defocus disk horizontal radius
	defocusV    core.Vec3   // Defocus disk vertical radius
}

// NewCamera creates a camera from the configuration
func NewCamera(config CameraConfig) *Camera {
	c := &Camera{config: config}

	c.imageWidth = max(1, config.ImageWidth)
	aspectRatio := config.AspectRatio
	if aspectRatio <= 0 {
		aspectRatio = 1.0
	}
	c.imageHeight = max(1, int(float64(c.imageWidth)/aspectRatio))

	c.sqrtSpp = max(1, int(math.Sqrt(float64(config.SamplesPerPixel))))
	c.recipSqrtSpp = 1.0 / float64(c.sqrtSpp)

	c.center = config.LookFrom

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = 10
	}

	// Determine viewport dimensions
	theta := core.DegreesToRadians(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * focusDistance
	viewportWidth := viewportHeight * (float64(c.imageWidth) / float64(c.imageHeight))

	// Calculate the u,v,w unit basis vectors for the camera coordinate frame
	c.w = config.LookFrom.Subtract(config.LookAt).Normalize()
	c.u = config.VUp.Cross(c.w).Normalize()
	c.v = c.w.Cross(c.u)

	// Vectors across the horizontal and down the vertical viewport edges
	viewportU := c.u.Multiply(viewportWidth)
	viewportV := c.v.Negate().Multiply(viewportHeight)

	c.pixelDeltaU = viewportU.Divide(float64(c.imageWidth))
	c.pixelDeltaV = viewportV.Divide(float64(c.imageHeight))

	viewportUpperLeft := c.center.
		Subtract(c.w.Multiply(focusDistance)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	c.pixel00 = viewportUpperLeft.Add(c.pixelDeltaU.Add(c.pixelDeltaV).Multiply(0.5))

	defocusRadius := focusDistance * math.Tan(core.DegreesToRadians(config.DefocusAngle/2))
	c.defocusU = c.u.Multiply(defocusRadius)
	c.defocusV = c.v.Multiply(defocusRadius)

	return c
}

// ImageWidth returns the image width in pixels
func (c *Camera) ImageWidth() int {
	return c.imageWidth
}

// ImageHeight returns the image height derived from width and aspect ratio, at least 1
func (c *Camera) ImageHeight() int {
	return c.imageHeight
}

// SqrtSPP returns the side of the per-pixel stratification grid
func (c *Camera) SqrtSPP() int {
	return c.sqrtSpp
}

// SamplesPerPixel returns the number of samples actually taken per pixel
func (c *Camera) SamplesPerPixel() int {
	return c.sqrtSpp * c.sqrtSpp
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// GetCameraForward returns the direction the camera is looking
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}

// GetRay constructs a camera ray from the defocus disk directed at a randomly
// sampled point inside stratum (si, sj) of pixel (i, j)
func (c *Camera) GetRay(i, j, si, sj int, sampler core.Sampler) core.Ray {
	offset := c.sampleSquareStratified(si, sj, sampler)
	pixelSample := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(i) + offset.X)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offset.Y))

	origin := c.center
	if c.config.DefocusAngle > 0 {
		origin = c.defocusDiskSample(sampler)
	}

	direction := pixelSample.Subtract(origin)
	return core.NewRayWithTime(origin, direction, sampler.Get1D())
}

// sampleSquareStratified returns a point in the [-.5,-.5]-[+.5,+.5] unit
// square, restricted to sub-square (si, sj)
func (c *Camera) sampleSquareStratified(si, sj int, sampler core.Sampler) core.Vec2 {
	s := sampler.Get2D()
	px := (float64(si)+s.X)*c.recipSqrtSpp - 0.5
	py := (float64(sj)+s.Y)*c.recipSqrtSpp - 0.5
	return core.NewVec2(px, py)
}

// defocusDiskSample returns a random point on the camera defocus disk
func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Point3 {
	p := core.RandomInUnitDisk(sampler)
	return c.center.Add(c.defocusU.Multiply(p.X)).Add(c.defocusV.Multiply(p.Y))
}
