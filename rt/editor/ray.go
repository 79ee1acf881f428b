package editor

import (
	"github.com/gekko3d/modeler/rt/core"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	parallelEpsilon = 1e-6
	triangleEpsilon = 1e-7
)

type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// ScreenToNDC maps a pixel (origin top-left) to normalized device coordinates.
func ScreenToNDC(screen mgl32.Vec2, vp core.Viewport) mgl32.Vec2 {
	nx := 2*screen.X()/vp.Width - 1
	ny := 1 - 2*screen.Y()/vp.Height
	if vp.YDown {
		ny = -ny
	}
	return mgl32.Vec2{nx, ny}
}

// NDCToScreen is the inverse of ScreenToNDC.
func NDCToScreen(ndc mgl32.Vec2, vp core.Viewport) mgl32.Vec2 {
	ny := ndc.Y()
	if vp.YDown {
		ny = -ny
	}
	return mgl32.Vec2{(ndc.X() + 1) * 0.5 * vp.Width, (1 - ny) * 0.5 * vp.Height}
}

// ScreenToWorldRay casts a ray from the eye through a pixel. It only fails
// when the viewport has no area.
func ScreenToWorldRay(screen mgl32.Vec2, vp core.Viewport, view, proj mgl32.Mat4) (Ray, bool) {
	if !vp.Valid() {
		return Ray{}, false
	}
	origin := view.Inv().Col(3).Vec3()

	ndc := ScreenToNDC(screen, vp)
	invVP := proj.Mul4(view).Inv()
	far := invVP.Mul4x1(mgl32.Vec4{ndc.X(), ndc.Y(), 1, 1})
	farPoint := far.Vec3()
	if far.W() != 0 {
		farPoint = farPoint.Mul(1 / far.W())
	}

	dir := farPoint.Sub(origin)
	if dir.Len() == 0 {
		return Ray{}, false
	}
	return Ray{Origin: origin, Direction: dir.Normalize()}, true
}

// WorldToScreen projects p to pixels. clipW is returned so callers can tell
// points behind the camera (clipW <= 0, ok false).
func WorldToScreen(p mgl32.Vec3, vp core.Viewport, view, proj mgl32.Mat4) (screen mgl32.Vec2, clipW float32, ok bool) {
	clip := proj.Mul4(view).Mul4x1(p.Vec4(1))
	clipW = clip.W()
	if clipW <= 0 || !vp.Valid() {
		return mgl32.Vec2{}, clipW, false
	}
	ndc := mgl32.Vec2{clip.X() / clipW, clip.Y() / clipW}
	return NDCToScreen(ndc, vp), clipW, true
}

// IntersectPlane returns the ray parameter of the hit. Hits behind the origin
// and near-parallel rays report false.
func IntersectPlane(r Ray, point, normal mgl32.Vec3) (float32, bool) {
	denom := normal.Dot(r.Direction)
	if math32.Abs(denom) < parallelEpsilon {
		return 0, false
	}
	t := point.Sub(r.Origin).Dot(normal) / denom
	if t <= 0 {
		return 0, false
	}
	return t, true
}

func IntersectGroundPlane(r Ray) (mgl32.Vec3, bool) {
	t, ok := IntersectPlane(r, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	if !ok {
		return mgl32.Vec3{}, false
	}
	return r.At(t), true
}

// IntersectTriangle is the Möller–Trumbore test. Both windings hit.
func IntersectTriangle(r Ray, a, b, c mgl32.Vec3) (float32, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	h := r.Direction.Cross(e2)
	det := e1.Dot(h)
	if math32.Abs(det) < triangleEpsilon {
		return 0, false
	}
	f := 1 / det
	s := r.Origin.Sub(a)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := f * r.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := f * e2.Dot(q)
	if t <= triangleEpsilon {
		return 0, false
	}
	return t, true
}

// DistanceToRay returns the perpendicular distance from p to the ray's line
// and how far along the ray the foot of the perpendicular lies.
func DistanceToRay(r Ray, p mgl32.Vec3) (dist, along float32) {
	v := p.Sub(r.Origin)
	along = v.Dot(r.Direction)
	return v.Sub(r.Direction.Mul(along)).Len(), along
}
