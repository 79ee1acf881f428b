package editor

import (
	"github.com/gekko3d/modeler/rt/core"

	"github.com/go-gl/mathgl/mgl32"
)

type Mode int

const (
	ModeSelect Mode = iota
	ModeMove
	ModeRotate
	ModeScale
	ModeAddVertex
	ModeCreateTriangle
)

func (m Mode) String() string {
	switch m {
	case ModeSelect:
		return "Select"
	case ModeMove:
		return "Move"
	case ModeRotate:
		return "Rotate"
	case ModeScale:
		return "Scale"
	case ModeAddVertex:
		return "Add Vertex"
	case ModeCreateTriangle:
		return "Create Triangle"
	}
	return "Unknown"
}

// IsTransform reports whether the mode drives a gizmo.
func (m Mode) IsTransform() bool {
	return m == ModeMove || m == ModeRotate || m == ModeScale
}

const (
	MoveSpeed   = 0.01
	RotateSpeed = 0.01
	ScaleSpeed  = 0.05
	MinScale    = 0.1
)

// Tools is the gizmo state: current mode, pivot and the armed handle of an
// in-progress drag.
type Tools struct {
	Hit HitTester

	mode        Mode
	position    mgl32.Vec3
	activeAxis  Axis
	interacting bool
	start       mgl32.Vec2
}

func NewTools() *Tools {
	return &Tools{Hit: DefaultHitTester(), activeAxis: AxisNone}
}

func (t *Tools) Mode() Mode { return t.mode }

// SetMode switches mode and drops any drag in progress.
func (t *Tools) SetMode(mode Mode) {
	t.mode = mode
	t.End()
}

func (t *Tools) Position() mgl32.Vec3     { return t.position }
func (t *Tools) SetPosition(p mgl32.Vec3) { t.position = p }
func (t *Tools) Interacting() bool        { return t.interacting }
func (t *Tools) StartPosition() mgl32.Vec2 { return t.start }

// ActiveAxis is AxisNone unless a drag is in progress.
func (t *Tools) ActiveAxis() Axis {
	if !t.interacting {
		return AxisNone
	}
	return t.activeAxis
}

// Begin hit-tests the gizmo and arms the handle under screen.
func (t *Tools) Begin(screen mgl32.Vec2, view, proj mgl32.Mat4, vp core.Viewport) bool {
	if !t.mode.IsTransform() {
		return false
	}
	axis := t.Hit.HitTest(t.mode, screen, t.position, view, proj, vp)
	if axis == AxisNone {
		return false
	}
	t.activeAxis = axis
	t.interacting = true
	t.start = screen
	return true
}

// End finishes a drag. Reports whether one was in progress.
func (t *Tools) End() bool {
	was := t.interacting
	t.interacting = false
	t.activeAxis = AxisNone
	return was
}

// Translation maps a mouse delta to a world offset along the active axis.
// Z follows horizontal motion.
func (t *Tools) Translation(delta mgl32.Vec2) mgl32.Vec3 {
	if t.mode != ModeMove {
		return mgl32.Vec3{}
	}
	switch t.ActiveAxis() {
	case AxisX:
		return mgl32.Vec3{delta.X() * MoveSpeed, 0, 0}
	case AxisY:
		return mgl32.Vec3{0, -delta.Y() * MoveSpeed, 0}
	case AxisZ:
		return mgl32.Vec3{0, 0, delta.X() * MoveSpeed}
	}
	return mgl32.Vec3{}
}

// Rotation returns an axis-angle vector: its direction is the axis and its
// length the angle in radians. The zero vector means no rotation.
func (t *Tools) Rotation(delta mgl32.Vec2) mgl32.Vec3 {
	if t.mode != ModeRotate {
		return mgl32.Vec3{}
	}
	switch t.ActiveAxis() {
	case AxisX:
		return mgl32.Vec3{delta.Y() * RotateSpeed, 0, 0}
	case AxisY:
		return mgl32.Vec3{0, delta.X() * RotateSpeed, 0}
	case AxisZ:
		return mgl32.Vec3{0, 0, delta.X() * RotateSpeed}
	}
	return mgl32.Vec3{}
}

// Scale returns per-axis factors, each at least MinScale.
func (t *Tools) Scale(delta mgl32.Vec2) mgl32.Vec3 {
	s := mgl32.Vec3{1, 1, 1}
	if t.mode != ModeScale {
		return s
	}
	f := 1 + delta.X()*ScaleSpeed
	if f < MinScale {
		f = MinScale
	}
	switch axis := t.ActiveAxis(); axis {
	case AxisX, AxisY, AxisZ:
		s[axis] = f
	case AxisUniform:
		s = mgl32.Vec3{f, f, f}
	}
	return s
}

// RotationMatrix turns an axis-angle vector into a matrix. Zero is identity.
func RotationMatrix(axisAngle mgl32.Vec3) mgl32.Mat4 {
	angle := axisAngle.Len()
	if angle == 0 {
		return mgl32.Ident4()
	}
	return mgl32.HomogRotate3D(angle, axisAngle.Mul(1/angle))
}
