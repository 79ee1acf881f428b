package gpu

import (
	"testing"
	"unsafe"

	"github.com/gekko3d/modeler/rt/core"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestLineVertexLayout(t *testing.T) {
	assert.Equal(t, uintptr(28), unsafe.Sizeof(LineVertex{}))
	assert.Equal(t, uintptr(12), unsafe.Offsetof(LineVertex{}.Color))
}

func TestBuildLineVertices(t *testing.T) {
	red := [4]float32{1, 0, 0, 1}
	lines := []core.LineSegment{{From: mgl32.Vec3{0, 0, 0}, To: mgl32.Vec3{1, 0, 0}, Color: red}}
	points := []core.PointMarker{{Position: mgl32.Vec3{0, 1, 0}, Size: 0.5, Color: red}}

	got := BuildLineVertices(lines, points)
	if len(got) != 8 {
		t.Fatalf("expected 8 vertices, got %d", len(got))
	}
	assert.Equal(t, [3]float32{1, 0, 0}, got[1].Pos)
	assert.Equal(t, [3]float32{-0.5, 1, 0}, got[2].Pos)
	assert.Equal(t, [3]float32{0, 1, 0.5}, got[7].Pos)
	for _, v := range got {
		assert.Equal(t, red, v.Color)
	}

	assert.Empty(t, BuildLineVertices(nil, nil))
}

func TestViewProjectionDepthRange(t *testing.T) {
	cam := core.NewOrbitCamera()
	vp := ViewProjection(cam.ViewMatrix(), cam.ProjectionMatrix())

	depth := func(dist float32) float32 {
		eye := cam.Position()
		dir := cam.Target.Sub(eye).Normalize()
		clip := vp.Mul4x1(eye.Add(dir.Mul(dist)).Vec4(1))
		return clip.Z() / clip.W()
	}
	assert.InDelta(t, 0, depth(cam.Near), 1e-4)
	assert.InDelta(t, 1, depth(cam.Far), 1e-3)
	assert.Greater(t, depth(10), depth(1))
}
