package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultFOV  = 75
	DefaultNear = 0.1
	DefaultFar  = 1000
)

// Camera is a perspective camera. FOV is the vertical field of view in
// degrees. Call UpdateProjection after changing FOV, Aspect, Near or Far.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	FOV      float32
	Aspect   float32
	Near     float32
	Far      float32

	projection mgl32.Mat4
}

func NewCamera(fov, aspect, near, far float32) *Camera {
	c := &Camera{
		Up:     mgl32.Vec3{0, 1, 0},
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
	}
	c.UpdateProjection()
	return c
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target mgl32.Vec3) {
	c.Target = target
}

// UpdateProjection recomputes the projection matrix.
func (c *Camera) UpdateProjection() {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// Projection returns the matrix computed by the last UpdateProjection.
func (c *Camera) Projection() mgl32.Mat4 { return c.projection }

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.ViewUp())
}

// ViewUp is Up, or -Z (+Z when looking up) when the camera looks along Up.
func (c *Camera) ViewUp() mgl32.Vec3 {
	up := c.Up
	if up.Len() == 0 {
		up = mgl32.Vec3{0, 1, 0}
	}
	up = up.Normalize()
	f := c.Forward()
	if d := f.Dot(up); d > 0.999 || d < -0.999 {
		if d < 0 {
			return mgl32.Vec3{0, 0, -1}
		}
		return mgl32.Vec3{0, 0, 1}
	}
	return up
}

// Forward is the normalized viewing direction.
func (c *Camera) Forward() mgl32.Vec3 {
	d := c.Target.Sub(c.Position)
	if d.Len() == 0 {
		return mgl32.Vec3{0, 0, -1}
	}
	return d.Normalize()
}

// Right is the normalized screen-right direction in world space.
func (c *Camera) Right() mgl32.Vec3 {
	r := c.Forward().Cross(c.ViewUp())
	if r.Len() == 0 {
		return mgl32.Vec3{1, 0, 0}
	}
	return r.Normalize()
}

// ScreenUp is the normalized screen-up direction in world space.
func (c *Camera) ScreenUp() mgl32.Vec3 {
	return c.Right().Cross(c.Forward()).Normalize()
}

// Distance returns the distance from position to target.
func (c *Camera) Distance() float32 {
	return c.Target.Sub(c.Position).Len()
}

// Project maps a world point to screen coordinates with the origin at the
// top-left corner. Depth is the normalized device depth in [-1, 1]. ok is
// false for points behind the camera or that do not project to a finite
// point.
func (c *Camera) Project(p mgl32.Vec3, width, height int) (x, y, depth float32, ok bool) {
	clip := c.projection.Mul4(c.View()).Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	x = (ndc.X() + 1) / 2 * float32(width)
	y = (1 - ndc.Y()) / 2 * float32(height)
	if !finite(x) || !finite(y) || !finite(ndc.Z()) {
		return 0, 0, 0, false
	}
	return x, y, ndc.Z(), true
}

// Ray returns the world ray through the screen point (x, y), with the
// origin at the top-left corner.
func (c *Camera) Ray(x, y float32, width, height int) Ray {
	view := c.View()
	winY := float32(height) - y
	near, errNear := mgl32.UnProject(mgl32.Vec3{x, winY, 0}, view, c.projection, 0, 0, width, height)
	far, errFar := mgl32.UnProject(mgl32.Vec3{x, winY, 1}, view, c.projection, 0, 0, width, height)
	if errNear != nil || errFar != nil {
		return Ray{Origin: c.Position, Dir: c.Forward()}
	}
	dir := far.Sub(near)
	if dir.Len() == 0 || !finite(dir.Len()) {
		return Ray{Origin: c.Position, Dir: c.Forward()}
	}
	return Ray{Origin: c.Position, Dir: dir.Normalize()}
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
