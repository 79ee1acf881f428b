package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func closeEnough(a, b, eps float32) bool {
	d := a - b
	return d < eps && d > -eps
}

func TestOrbitScenario(t *testing.T) {
	c := NewOrbitCamera()
	c.Theta, c.Phi, c.Radius = 0, 90, 10

	c.Orbit(10, 0, 0.5)

	assert.InDelta(t, 5, c.Theta, 1e-5)
	assert.InDelta(t, 90, c.Phi, 1e-5)
}

func TestOrbitClampsPhi(t *testing.T) {
	c := NewOrbitCamera()
	for _, dy := range []float32{-100000, -360, -1, 0, 1, 57, 360, 100000} {
		c.Orbit(0, dy, 0.5)
		if c.Phi < MinPhi || c.Phi > MaxPhi {
			t.Errorf("phi %f out of range after dy=%f", c.Phi, dy)
		}
	}

	c.Phi = 10
	c.Orbit(0, 1000, 1)
	assert.Equal(t, float32(MinPhi), c.Phi)
	c.Orbit(0, -1000, 1)
	assert.Equal(t, float32(MaxPhi), c.Phi)
}

func TestZoomClampsRadius(t *testing.T) {
	c := NewOrbitCamera()
	for _, wheel := range []float32{-1000, -5, -1, 0, 0.5, 1, 9, 100} {
		c.Zoom(wheel)
		if c.Radius < MinRadius || c.Radius > MaxRadius {
			t.Errorf("radius %f out of range after wheel=%f", c.Radius, wheel)
		}
	}

	c.Radius = 10
	c.Zoom(1)
	assert.InDelta(t, 9, c.Radius, 1e-5)
	c.Zoom(100)
	assert.Equal(t, float32(MinRadius), c.Radius)
	c.Zoom(-1000)
	assert.InDelta(t, 50.5, c.Radius, 1e-4, "0.5*(1+100) stays in range")

	c.Radius = 99
	c.Zoom(-1)
	assert.Equal(t, float32(MaxRadius), c.Radius)
}

func TestPositionSpherical(t *testing.T) {
	c := NewOrbitCamera()
	c.Theta, c.Phi, c.Radius = 0, 90, 10
	p := c.Position()
	if !closeEnough(p.X(), 10, 1e-4) || !closeEnough(p.Y(), 0, 1e-4) || !closeEnough(p.Z(), 0, 1e-4) {
		t.Errorf("expected (10,0,0), got %v", p)
	}

	c.Target = mgl32.Vec3{1, 2, 3}
	c.Theta = 90
	p = c.Position()
	if !closeEnough(p.X(), 1, 1e-4) || !closeEnough(p.Y(), 2, 1e-4) || !closeEnough(p.Z(), 13, 1e-4) {
		t.Errorf("expected (1,2,13), got %v", p)
	}
}

func TestPanMovesTargetInCameraPlane(t *testing.T) {
	c := NewOrbitCamera()
	c.Theta, c.Phi, c.Radius = 0, 90, 10

	c.Pan(1, 0, 1)
	assert.InDelta(t, 0, c.Target.X(), 1e-4)
	assert.InDelta(t, 0, c.Target.Y(), 1e-4)
	assert.InDelta(t, -1, c.Target.Z(), 1e-4)

	c.Target = mgl32.Vec3{}
	c.Pan(0, 1, 1)
	assert.InDelta(t, 1, c.Target.Y(), 1e-4)
}

func TestProjectionYDown(t *testing.T) {
	c := NewOrbitCamera()
	up := c.ProjectionMatrix()
	c.Viewport.YDown = true
	down := c.ProjectionMatrix()

	if up.At(1, 1) <= 0 {
		t.Fatalf("expected positive [1][1], got %f", up.At(1, 1))
	}
	assert.InDelta(t, -up.At(1, 1), down.At(1, 1), 1e-6)
	assert.Equal(t, up.At(0, 0), down.At(0, 0))
}

func TestViewMatrixLooksAtTarget(t *testing.T) {
	c := NewOrbitCamera()
	c.Target = mgl32.Vec3{2, 0, -1}
	v := c.ViewMatrix().Mul4x1(c.Target.Vec4(1))
	// target sits on the view axis, in front of the camera
	assert.InDelta(t, 0, v.X(), 1e-4)
	assert.InDelta(t, 0, v.Y(), 1e-4)
	assert.InDelta(t, -c.Radius, v.Z(), 1e-3)
}
