package camera

import (
	"math"
	"math/rand"

	"lumen/ray"
	"lumen/vmath/mat33"
	"lumen/vmath/vec3"
)

// PinholeCamera casts every ray from Center.  The columns of ApertureToWorld
// are the camera's right, up, and eye (forward) axes in world space.
type PinholeCamera struct {
	Center          vec3.T
	ApertureToWorld mat33.T

	// Field of view, in degrees.
	FOV float64
}

// NewPinhole returns a camera at center looking down +Z with +Y up.
func NewPinhole(center vec3.T, fov float64) *PinholeCamera {
	return &PinholeCamera{
		Center:          center,
		ApertureToWorld: mat33.Identity(),
		FOV:             fov,
	}
}

// PixelToRay returns a ray through a uniformly jittered point inside pixel
// (col, row).  Row 0 is the top of the image.
func (c *PinholeCamera) PixelToRay(col, row, imgCols, imgRows int, rng *rand.Rand) ray.Ray {
	fovAdjustment := math.Tan(c.FOV * math.Pi / 180 / 2)
	aspectRatio := float64(imgCols) / float64(imgRows)

	apertureCoords := vec3.T{
		((float64(col)+rng.Float64())/float64(imgCols)*2 - 1) * aspectRatio * fovAdjustment,
		(1 - (float64(row)+rng.Float64())/float64(imgRows)*2) * fovAdjustment,
		1.0,
	}

	return ray.New(c.Center, mat33.MulMV(c.ApertureToWorld, apertureCoords))
}

func (c *PinholeCamera) Right() vec3.T {
	return c.ApertureToWorld.Column(0)
}

func (c *PinholeCamera) Up() vec3.T {
	return c.ApertureToWorld.Column(1)
}

func (c *PinholeCamera) Eye() vec3.T {
	return c.ApertureToWorld.Column(2)
}

func (c *PinholeCamera) SetEye(newEye vec3.T) {
	c.ApertureToWorld.SetColumn(2, vec3.Normalize(newEye))
	c.SetUp(c.Up())
}

func (c *PinholeCamera) SetUp(newUp vec3.T) {
	// If newUp is parallel to the eye, keep the old up if it still works, or
	// else take any perpendicular.
	var up vec3.T
	for _, candidate := range []vec3.T{newUp, c.Up(), {0, 1, 0}, {1, 0, 0}} {
		var ok bool
		if up, ok = vec3.NormalizeChecked(vec3.Reject(c.Eye(), candidate)); ok {
			break
		}
	}
	c.ApertureToWorld.SetColumn(1, up)

	// Right-handed camera space: right = up x eye.
	c.ApertureToWorld.SetColumn(0, vec3.CProd(up, c.Eye()))
}

// LookAt points the camera at target.
func (c *PinholeCamera) LookAt(target, up vec3.T) {
	c.SetEye(vec3.SubVV(target, c.Center))
	c.SetUp(up)
}
