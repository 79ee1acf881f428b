package editor

import (
	"github.com/gekko3d/modeler/rt/core"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type Axis int

const (
	AxisNone    Axis = -1
	AxisX       Axis = 0
	AxisY       Axis = 1
	AxisZ       Axis = 2
	AxisUniform Axis = 3
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	case AxisUniform:
		return "uniform"
	}
	return "none"
}

var worldAxes = [3]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// Screen directions of the move/scale handles. Z is a fixed diagonal rather
// than the projected world axis.
var screenAxes = [3]mgl32.Vec2{{1, 0}, {0, -1}, {-0.70710678, 0.70710678}}

const (
	DefaultGizmoPixels    = 80
	DefaultGizmoTolerance = 10

	ringSegments     = 48
	ringEdgeOnCosine = 0.1
)

// HitTester classifies screen positions against the gizmo handles.
type HitTester struct {
	PixelSize float32 // on-screen handle length and ring radius
	Tolerance float32 // pick slack in pixels
}

func DefaultHitTester() HitTester {
	return HitTester{PixelSize: DefaultGizmoPixels, Tolerance: DefaultGizmoTolerance}
}

// WorldSize is the world length that spans PixelSize pixels at the pivot's
// depth, so the gizmo keeps its on-screen size at any zoom.
func (h HitTester) WorldSize(pivot mgl32.Vec3, view, proj mgl32.Mat4, vp core.Viewport) float32 {
	if !vp.Valid() {
		return 1
	}
	distance := -view.Mul4x1(pivot.Vec4(1)).Z()
	if distance < 1e-3 {
		distance = 1e-3
	}
	f := math32.Abs(proj.At(1, 1))
	if f == 0 {
		return 1
	}
	tanHalfFov := 1 / f
	return 2 * tanHalfFov * distance / vp.Height * h.PixelSize
}

// HitTest returns the handle of mode under screen, or AxisNone. Pivots
// behind the camera never hit.
func (h HitTester) HitTest(mode Mode, screen mgl32.Vec2, pivot mgl32.Vec3, view, proj mgl32.Mat4, vp core.Viewport) Axis {
	center, _, ok := WorldToScreen(pivot, vp, view, proj)
	if !ok {
		return AxisNone
	}

	switch mode {
	case ModeMove:
		return h.nearestHandle(screen, center)
	case ModeScale:
		if screen.Sub(center).Len() <= h.Tolerance {
			return AxisUniform
		}
		return h.nearestHandle(screen, center)
	case ModeRotate:
		d := screen.Sub(center).Len()
		if math32.Abs(d-h.PixelSize) > h.Tolerance {
			return AxisNone
		}
		return h.ringAxis(screen, pivot, view, proj, vp)
	}
	return AxisNone
}

func (h HitTester) nearestHandle(screen, center mgl32.Vec2) Axis {
	best := AxisNone
	bestDist := float32(math32.MaxFloat32)
	for i, dir := range screenAxes {
		d := DistanceToSegment(screen, center, center.Add(dir.Mul(h.PixelSize)))
		if d < bestDist {
			best, bestDist = Axis(i), d
		}
	}
	if bestDist <= h.Tolerance {
		return best
	}
	return AxisNone
}

// ringAxis decides which of the three rings a click on the ring radius
// belongs to. The pick ray is intersected with every ring plane that is not
// seen edge-on; the ring whose hit lies closest to the ring radius wins.
// When every plane is edge-on, the ring facing the camera most is used.
func (h HitTester) ringAxis(screen mgl32.Vec2, pivot mgl32.Vec3, view, proj mgl32.Mat4, vp core.Viewport) Axis {
	ray, ok := ScreenToWorldRay(screen, vp, view, proj)
	if !ok {
		return AxisNone
	}
	radius := h.WorldSize(pivot, view, proj, vp)

	best := AxisNone
	bestErr := float32(math32.MaxFloat32)
	for i, n := range worldAxes {
		denom := n.Dot(ray.Direction)
		if math32.Abs(denom) <= ringEdgeOnCosine {
			continue
		}
		t := pivot.Sub(ray.Origin).Dot(n) / denom
		if t <= 0 {
			continue
		}
		miss := math32.Abs(ray.At(t).Sub(pivot).Len() - radius)
		if miss < bestErr {
			best, bestErr = Axis(i), miss
		}
	}
	if best != AxisNone {
		return best
	}

	toPivot := pivot.Sub(ray.Origin)
	if toPivot.Len() == 0 {
		return AxisY
	}
	toPivot = toPivot.Normalize()
	bestDot := float32(-1)
	for i, n := range worldAxes {
		if d := math32.Abs(n.Dot(toPivot)); d > bestDot {
			best, bestDot = Axis(i), d
		}
	}
	return best
}

// DistanceToSegment is the distance from p to segment ab.
func DistanceToSegment(p, a, b mgl32.Vec2) float32 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return p.Sub(a).Len()
	}
	t := p.Sub(a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Sub(a.Add(ab.Mul(t))).Len()
}

func axisColor(axis, active Axis) [4]float32 {
	if axis == active {
		return core.ColorActive
	}
	switch axis {
	case AxisX:
		return core.ColorX
	case AxisY:
		return core.ColorY
	case AxisZ:
		return core.ColorZ
	}
	return core.ColorUniform
}

// GizmoGeometry builds the handles of mode around pivot at the given world
// size. Select, AddVertex and CreateTriangle have no gizmo.
func GizmoGeometry(mode Mode, pivot mgl32.Vec3, size float32, active Axis) ([]core.LineSegment, []core.PointMarker) {
	var lines []core.LineSegment
	var points []core.PointMarker

	switch mode {
	case ModeMove, ModeScale:
		for i, dir := range worldAxes {
			axis := Axis(i)
			tip := pivot.Add(dir.Mul(size))
			lines = append(lines, core.LineSegment{From: pivot, To: tip, Color: axisColor(axis, active)})
			points = append(points, core.PointMarker{Position: tip, Size: size * 0.06, Color: axisColor(axis, active)})
		}
		if mode == ModeScale {
			points = append(points, core.PointMarker{Position: pivot, Size: size * 0.1, Color: axisColor(AxisUniform, active)})
		}
	case ModeRotate:
		for i, n := range worldAxes {
			lines = append(lines, ring(pivot, n, size, axisColor(Axis(i), active))...)
		}
	}
	return lines, points
}

func ring(center, normal mgl32.Vec3, radius float32, color [4]float32) []core.LineSegment {
	// any vector not parallel to the normal
	ref := mgl32.Vec3{0, 1, 0}
	if math32.Abs(normal.Dot(ref)) > 0.9 {
		ref = mgl32.Vec3{1, 0, 0}
	}
	u := normal.Cross(ref).Normalize()
	v := normal.Cross(u).Normalize()

	lines := make([]core.LineSegment, 0, ringSegments)
	prev := center.Add(u.Mul(radius))
	for i := 1; i <= ringSegments; i++ {
		a := float32(i) / ringSegments * 2 * math32.Pi
		next := center.Add(u.Mul(radius * math32.Cos(a))).Add(v.Mul(radius * math32.Sin(a)))
		lines = append(lines, core.LineSegment{From: prev, To: next, Color: color})
		prev = next
	}
	return lines
}
