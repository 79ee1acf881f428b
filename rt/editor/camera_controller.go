package editor

import (
	"github.com/gekko3d/modeler/rt/core"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultOrbitSensitivity = 0.5
	DefaultPanSensitivity   = 0.01
)

type cameraDrag int

const (
	dragNone cameraDrag = iota
	dragOrbit
	dragPan
)

// CameraController turns mouse input into orbit, pan and zoom.
//
//	middle drag, or Alt+left drag   orbit
//	right drag, or Shift+middle     pan
//	wheel                           zoom
type CameraController struct {
	Camera           *core.OrbitCamera
	OrbitSensitivity float32
	PanSensitivity   float32

	drag   cameraDrag
	button MouseButton
	last   mgl32.Vec2
}

func NewCameraController(cam *core.OrbitCamera) *CameraController {
	return &CameraController{
		Camera:           cam,
		OrbitSensitivity: DefaultOrbitSensitivity,
		PanSensitivity:   DefaultPanSensitivity,
	}
}

// HandleInput reports whether the event was consumed by the camera.
func (c *CameraController) HandleInput(ev InputEvent) bool {
	switch ev.Type {
	case EventMouseDown:
		if c.drag != dragNone {
			return false
		}
		switch {
		case ev.Button == MouseMiddle && ev.Mods.Has(ModShift), ev.Button == MouseRight:
			c.drag = dragPan
		case ev.Button == MouseMiddle, ev.Button == MouseLeft && ev.Mods.Has(ModAlt):
			c.drag = dragOrbit
		default:
			return false
		}
		c.button = ev.Button
		c.last = ev.Pos()
		return true

	case EventMouseUp:
		if c.drag == dragNone || ev.Button != c.button {
			return false
		}
		c.drag = dragNone
		return true

	case EventMouseMove:
		if c.drag == dragNone {
			return false
		}
		delta := ev.Pos().Sub(c.last)
		c.last = ev.Pos()
		if c.drag == dragOrbit {
			c.Camera.Orbit(delta.X(), delta.Y(), c.OrbitSensitivity)
		} else {
			c.Camera.Pan(delta.X(), delta.Y(), c.PanSensitivity)
		}
		return true

	case EventMouseWheel:
		c.Camera.Zoom(ev.Wheel)
		return true

	case EventResize:
		if ev.Width > 0 && ev.Height > 0 {
			c.Camera.Resize(ev.Width, ev.Height)
		}
		return true
	}
	return false
}
