package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	MinRadius = 0.5
	MaxRadius = 100.0
	MinPhi    = 1.0
	MaxPhi    = 179.0
)

// Viewport is the drawable area in pixels. YDown marks graphics APIs whose
// clip space Y points down; the projection and the ray caster both honor it.
type Viewport struct {
	Width  float32
	Height float32
	YDown  bool
}

func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}

func (v Viewport) Aspect() float32 {
	if v.Height <= 0 {
		return 1
	}
	return v.Width / v.Height
}

// OrbitCamera orbits Target on a sphere. Theta and Phi are in degrees, Phi
// measured from the +Y axis.
type OrbitCamera struct {
	Target mgl32.Vec3
	Up     mgl32.Vec3
	Radius float32
	Theta  float32
	Phi    float32

	Fov      float32 // vertical, degrees
	Near     float32
	Far      float32
	Viewport Viewport
}

func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Target:   mgl32.Vec3{0, 0, 0},
		Up:       mgl32.Vec3{0, 1, 0},
		Radius:   10,
		Theta:    0,
		Phi:      45,
		Fov:      45,
		Near:     0.1,
		Far:      1000,
		Viewport: Viewport{Width: 1280, Height: 720},
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (c *OrbitCamera) Orbit(dx, dy, sensitivity float32) {
	c.Theta += dx * sensitivity
	c.Phi = clamp(c.Phi-dy*sensitivity, MinPhi, MaxPhi)
}

// Pan slides the target in the camera plane. The step grows with the radius
// so panning feels the same at any zoom level.
func (c *OrbitCamera) Pan(dx, dy, sensitivity float32) {
	offset := c.Position().Sub(c.Target)
	right := offset.Cross(c.Up)
	if right.Len() == 0 {
		return
	}
	right = right.Normalize()
	up := right.Cross(offset).Normalize()

	k := sensitivity * c.Radius * 0.1
	c.Target = c.Target.Add(right.Mul(-dx * k)).Add(up.Mul(dy * k))
}

func (c *OrbitCamera) Zoom(wheel float32) {
	c.Radius = clamp(c.Radius*(1-wheel*0.1), MinRadius, MaxRadius)
}

func (c *OrbitCamera) Position() mgl32.Vec3 {
	theta := mgl32.DegToRad(c.Theta)
	phi := mgl32.DegToRad(c.Phi)
	return c.Target.Add(mgl32.Vec3{
		c.Radius * math32.Sin(phi) * math32.Cos(theta),
		c.Radius * math32.Cos(phi),
		c.Radius * math32.Sin(phi) * math32.Sin(theta),
	})
}

func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target, c.Up)
}

func (c *OrbitCamera) ProjectionMatrix() mgl32.Mat4 {
	proj := mgl32.Perspective(mgl32.DegToRad(c.Fov), c.Viewport.Aspect(), c.Near, c.Far)
	if c.Viewport.YDown {
		proj[5] = -proj[5]
	}
	return proj
}

func (c *OrbitCamera) Resize(width, height int) {
	c.Viewport.Width = float32(width)
	c.Viewport.Height = float32(height)
}
