// Package render projects the scene for the terminal front-end: a
// perspective camera and a character-cell canvas with a depth test.
package render

import (
	"math"

	"github.com/ansipixels/twincam/math3d"
)

// Camera is a perspective camera defined by a position and a look-at target.
type Camera struct {
	Position math3d.Vec3
	Target   math3d.Vec3

	// Projection parameters
	FOV         float64 // Vertical field of view in radians
	AspectRatio float64 // Width / Height
	Near        float64
	Far         float64

	// Cached matrices (computed on demand)
	viewMatrix     math3d.Mat4
	projMatrix     math3d.Mat4
	viewProjMatrix math3d.Mat4
	viewDirty      bool
	projDirty      bool
	vpDirty        bool
}

// NewCamera creates a camera with default settings.
func NewCamera() *Camera {
	return &Camera{
		Position:    math3d.V3(0, 10, 10),
		FOV:         math.Pi / 3, // 60 degrees
		AspectRatio: 16.0 / 9.0,
		Near:        0.1,
		Far:         1000,
		viewDirty:   true,
		projDirty:   true,
	}
}

// SetPose sets position and look-at target together.
func (c *Camera) SetPose(position, target math3d.Vec3) {
	c.Position = position
	c.Target = target
	c.viewDirty = true
}

// SetFOV sets the field of view (in radians).
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.projDirty = true
}

// SetAspectRatio sets the aspect ratio.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.projDirty = true
}

// SetClipPlanes sets the near and far clipping planes.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
	c.projDirty = true
}

// Forward returns the unit view direction.
func (c *Camera) Forward() math3d.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}

// ViewMatrix returns the view matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		c.viewMatrix = math3d.LookAt(c.Position, c.Target, math3d.Up())
		c.viewDirty = false
		c.vpDirty = true
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		c.projMatrix = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
		c.projDirty = false
		c.vpDirty = true
	}
	return c.projMatrix
}

// ViewProjectionMatrix returns the combined view-projection matrix.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	view := c.ViewMatrix()
	proj := c.ProjectionMatrix()
	if c.vpDirty {
		c.viewProjMatrix = proj.Mul(view)
		c.vpDirty = false
	}
	return c.viewProjMatrix
}

// WorldToScreen transforms a world point to screen coordinates.
// Returns (screenX, screenY, depth, visible).
func (c *Camera) WorldToScreen(worldPos math3d.Vec3, screenWidth, screenHeight int) (x, y, depth float64, visible bool) {
	clipPos := c.ViewProjectionMatrix().MulVec4(math3d.V4FromV3(worldPos, 1))

	// Behind the camera
	if clipPos.W <= 0 {
		return 0, 0, 0, false
	}

	ndc := clipPos.PerspectiveDivide()
	if ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 || ndc.Z < -1 || ndc.Z > 1 {
		return 0, 0, 0, false
	}

	x = (ndc.X + 1) * 0.5 * float64(screenWidth)
	y = (1 - ndc.Y) * 0.5 * float64(screenHeight) // Y is flipped
	return x, y, ndc.Z, true
}

// ScreenRay returns the world-space ray through a screen position.
func (c *Camera) ScreenRay(screenX, screenY float64, screenWidth, screenHeight int) math3d.Ray {
	ndcX := 2*screenX/float64(screenWidth) - 1
	ndcY := 1 - 2*screenY/float64(screenHeight)

	forward := c.Forward()
	right := forward.Cross(math3d.Up()).Normalize()
	if right.LenSq() == 0 {
		right = math3d.V3(1, 0, 0)
	}
	up := right.Cross(forward)

	scale := math.Tan(c.FOV / 2)
	dir := forward.
		Add(right.Scale(ndcX * scale * c.AspectRatio)).
		Add(up.Scale(ndcY * scale)).
		Normalize()
	return math3d.Ray{Origin: c.Position, Direction: dir}
}
