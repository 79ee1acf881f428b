package editor

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/gekko3d/modeler/rt/core"
	"github.com/gekko3d/modeler/rt/model"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEditor() *Editor {
	return New(DefaultConfig(), core.NewOrbitCamera(), core.NewNopLogger())
}

func screenOf(t *testing.T, e *Editor, p mgl32.Vec3) mgl32.Vec2 {
	t.Helper()
	cam := e.Camera()
	s, _, ok := WorldToScreen(p, cam.Viewport, cam.ViewMatrix(), cam.ProjectionMatrix())
	require.True(t, ok, "point %v not visible", p)
	return s
}

func click(e *Editor, at mgl32.Vec2, mods Modifier) {
	e.HandleInput(MouseDown(MouseLeft, at.X(), at.Y(), mods))
	e.HandleInput(MouseUp(MouseLeft, at.X(), at.Y(), mods))
}

func center(e *Editor) mgl32.Vec2 {
	vp := e.Camera().Viewport
	return mgl32.Vec2{vp.Width / 2, vp.Height / 2}
}

type failingStore struct{}

func (failingStore) Load(string) (*model.Model, error) { return nil, errors.New("disk on fire") }
func (failingStore) Save(*model.Model, string) error { return errors.New("read-only") }

func TestModeKeys(t *testing.T) {
	e := newTestEditor()
	cases := []struct {
		key  Key
		want Mode
	}{
		{KeyG, ModeMove},
		{KeyR, ModeRotate},
		{KeyS, ModeScale},
		{KeyV, ModeAddVertex},
		{KeyT, ModeCreateTriangle},
		{KeyEscape, ModeSelect},
	}
	for _, c := range cases {
		assert.True(t, e.HandleInput(KeyDown(c.key, 0)))
		assert.Equal(t, c.want, e.Mode())
	}
	assert.False(t, e.HandleInput(KeyDown(KeyN, 0)), "plain N is not bound")
}

func TestEscapeClearsSelection(t *testing.T) {
	e := newTestEditor()
	id := e.Model().AddCustomVertex(mgl32.Vec3{})
	e.Selection().AddCustomVertex(id)
	e.Selection().ToggleTriangle(model.CustomTriangleRef(1), false)
	e.SetMode(ModeScale)

	e.HandleInput(KeyDown(KeyEscape, 0))
	assert.Equal(t, ModeSelect, e.Mode())
	assert.True(t, e.Selection().IsEmpty())
}

func TestAddVertexOnGroundPlane(t *testing.T) {
	e := newTestEditor()
	e.SetMode(ModeAddVertex)
	click(e, center(e), 0)

	verts := e.Model().CustomVertices()
	require.Len(t, verts, 1)
	assert.NotZero(t, verts[0].ID)
	if !verts[0].Position.ApproxEqualThreshold(mgl32.Vec3{}, 1e-3) {
		t.Errorf("expected vertex at origin, got %v", verts[0].Position)
	}
}

func TestAddVertexFallsBackAlongRay(t *testing.T) {
	e := newTestEditor()
	e.Camera().Phi = 80
	e.SetMode(ModeAddVertex)

	// top of the screen looks above the horizon
	click(e, mgl32.Vec2{640, 10}, 0)

	verts := e.Model().CustomVertices()
	require.Len(t, verts, 1)
	eye := e.Camera().Position()
	assert.InDelta(t, 10, verts[0].Position.Sub(eye).Len(), 1e-3)
	assert.Greater(t, verts[0].Position.Y(), eye.Y())
}

func TestClicksOnPanelAreIgnored(t *testing.T) {
	e := newTestEditor()
	e.SetMode(ModeAddVertex)
	click(e, mgl32.Vec2{100, 360}, 0)
	assert.Empty(t, e.Model().CustomVertices())
}

func TestSelectCustomVertexToggles(t *testing.T) {
	e := newTestEditor()
	id := e.Model().AddCustomVertex(mgl32.Vec3{})
	at := screenOf(t, e, mgl32.Vec3{})

	click(e, at, 0)
	assert.True(t, e.Selection().HasCustomVertex(id))
	click(e, at, 0)
	assert.False(t, e.Selection().HasCustomVertices())
}

func TestAdditiveSelectionPivotIsCentroid(t *testing.T) {
	e := newTestEditor()
	cam := e.Camera()
	cam.Target = mgl32.Vec3{2.5, 3.5, 4.5}
	cam.Radius = 20

	a := e.Model().AddCustomVertex(mgl32.Vec3{1, 2, 3})
	b := e.Model().AddCustomVertex(mgl32.Vec3{4, 5, 6})
	click(e, screenOf(t, e, mgl32.Vec3{1, 2, 3}), 0)
	click(e, screenOf(t, e, mgl32.Vec3{4, 5, 6}), ModShift)
	require.Equal(t, []uint32{a, b}, e.Selection().CustomVertexIDs())

	e.SetMode(ModeMove)
	if !e.Tools().Position().ApproxEqualThreshold(mgl32.Vec3{2.5, 3.5, 4.5}, 1e-5) {
		t.Errorf("expected pivot (2.5,3.5,4.5), got %v", e.Tools().Position())
	}

	// without shift the set is replaced
	e.SetMode(ModeSelect)
	click(e, screenOf(t, e, mgl32.Vec3{1, 2, 3}), 0)
	assert.Equal(t, []uint32{b}, e.Selection().CustomVertexIDs())
}

func TestSelectMeshThenVertex(t *testing.T) {
	e := newTestEditor()
	meshID := e.Model().AddMesh(&model.Mesh{
		Positions: []mgl32.Vec3{{-1, 0, -1}, {1, 0, -1}, {0, 0, 1}},
		Indices:   []uint32{0, 1, 2},
	})

	click(e, center(e), 0)
	id, ok := e.Selection().MeshID()
	require.True(t, ok)
	assert.Equal(t, meshID, id)
	assert.False(t, e.Selection().HasVertex())

	click(e, screenOf(t, e, mgl32.Vec3{0, 0, 1}), 0)
	idx, ok := e.Selection().VertexIndex()
	require.True(t, ok)
	assert.Equal(t, uint32(2), idx)
	assert.False(t, e.Selection().HasCustomVertices())

	// a miss keeps the selection
	click(e, mgl32.Vec2{1200, 40}, 0)
	assert.True(t, e.Selection().HasVertex())
}

func TestMoveDragTranslatesSelection(t *testing.T) {
	e := newTestEditor()
	id := e.Model().AddCustomVertex(mgl32.Vec3{})
	e.Selection().AddCustomVertex(id)
	e.HandleInput(KeyDown(KeyG, 0))

	c := screenOf(t, e, mgl32.Vec3{})
	start := c.Add(mgl32.Vec2{40, 0})
	require.True(t, e.HandleInput(MouseDown(MouseLeft, start.X(), start.Y(), 0)))
	assert.Equal(t, AxisX, e.Tools().ActiveAxis())

	e.HandleInput(MouseMove(start.X()+100, start.Y()+30, 0))
	p, _ := e.Model().CustomVertex(id)
	if !p.ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, 1e-4) {
		t.Errorf("expected (1,0,0), got %v", p)
	}
	assert.Equal(t, p, e.Tools().Position(), "pivot follows the selection")

	assert.True(t, e.HandleInput(MouseUp(MouseLeft, start.X()+100, start.Y()+30, 0)))
	assert.False(t, e.Tools().Interacting())
	assert.Equal(t, AxisNone, e.Tools().ActiveAxis())

	e.HandleInput(MouseMove(start.X()+300, start.Y(), 0))
	p2, _ := e.Model().CustomVertex(id)
	assert.Equal(t, p, p2, "no motion after release")
}

func TestModeChangeCancelsDrag(t *testing.T) {
	e := newTestEditor()
	id := e.Model().AddCustomVertex(mgl32.Vec3{})
	e.Selection().AddCustomVertex(id)
	e.SetMode(ModeMove)

	start := screenOf(t, e, mgl32.Vec3{}).Add(mgl32.Vec2{40, 0})
	require.True(t, e.HandleInput(MouseDown(MouseLeft, start.X(), start.Y(), 0)))
	e.HandleInput(KeyDown(KeyR, 0))
	assert.False(t, e.Tools().Interacting())

	e.HandleInput(MouseMove(start.X()+100, start.Y(), 0))
	p, _ := e.Model().CustomVertex(id)
	assert.Equal(t, mgl32.Vec3{}, p)
}

func TestRotateAndScaleAroundCentroid(t *testing.T) {
	e := newTestEditor()
	a := e.Model().AddCustomVertex(mgl32.Vec3{1, 0, 0})
	b := e.Model().AddCustomVertex(mgl32.Vec3{3, 0, 0})
	e.Selection().AddCustomVertex(a)
	e.Selection().AddCustomVertex(b)

	e.SetMode(ModeRotate)
	e.tools.activeAxis, e.tools.interacting = AxisY, true
	e.applyDrag(mgl32.Vec2{mgl32.DegToRad(90) / RotateSpeed, 0})

	pa, _ := e.Model().CustomVertex(a)
	pb, _ := e.Model().CustomVertex(b)
	assert.True(t, pa.ApproxEqualThreshold(mgl32.Vec3{2, 0, 1}, 1e-3), "got %v", pa)
	assert.True(t, pb.ApproxEqualThreshold(mgl32.Vec3{2, 0, -1}, 1e-3), "got %v", pb)

	e.SetMode(ModeScale)
	e.tools.activeAxis, e.tools.interacting = AxisUniform, true
	e.applyDrag(mgl32.Vec2{-1000, 0})
	pa, _ = e.Model().CustomVertex(a)
	assert.True(t, pa.ApproxEqualThreshold(mgl32.Vec3{2, 0, 0.1}, 1e-3), "got %v", pa)
}

func TestCreateTriangleStaging(t *testing.T) {
	e := newTestEditor()
	m := e.Model()
	pts := []mgl32.Vec3{{-1, 0, 0}, {1, 0, 0}, {0, 0, 1}}
	var ids []uint32
	for _, p := range pts {
		ids = append(ids, m.AddCustomVertex(p))
	}
	e.HandleInput(KeyDown(KeyT, 0))

	// toggling a pick out of the staging list
	click(e, screenOf(t, e, pts[0]), 0)
	click(e, screenOf(t, e, pts[0]), 0)
	assert.Empty(t, e.Staged())

	click(e, screenOf(t, e, pts[0]), 0)
	click(e, screenOf(t, e, pts[1]), 0)
	assert.Equal(t, ids[:2], e.Staged())
	click(e, screenOf(t, e, pts[2]), 0)

	assert.Empty(t, e.Staged())
	tris := m.CustomTriangles()
	require.Len(t, tris, 1)
	assert.Equal(t, [3]uint32{ids[0], ids[1], ids[2]}, tris[0].VertexIDs)

	// empty space does not stage anything
	click(e, mgl32.Vec2{1200, 40}, 0)
	assert.Empty(t, e.Staged())
}

func TestLeavingCreateTriangleDropsStaging(t *testing.T) {
	e := newTestEditor()
	e.Model().AddCustomVertex(mgl32.Vec3{})
	e.SetMode(ModeCreateTriangle)
	click(e, screenOf(t, e, mgl32.Vec3{}), 0)
	require.Len(t, e.Staged(), 1)

	e.SetMode(ModeSelect)
	assert.Empty(t, e.Staged())
}

func TestTriangleSelectAndReverse(t *testing.T) {
	e := newTestEditor()
	m := e.Model()
	a := m.AddCustomVertex(mgl32.Vec3{-2, 0, -2})
	b := m.AddCustomVertex(mgl32.Vec3{2, 0, -2})
	c := m.AddCustomVertex(mgl32.Vec3{0, 0, 2})
	tri := m.AddCustomTriangle(a, b, c)

	click(e, center(e), ModControl)
	require.True(t, e.Selection().HasTriangle(model.CustomTriangleRef(tri)))

	assert.True(t, e.HandleInput(KeyDown(KeyR, ModControl)))
	got, _ := m.CustomTriangle(tri)
	assert.Equal(t, [3]uint32{a, c, b}, got.VertexIDs)
	assert.Equal(t, ModeSelect, e.Mode(), "Ctrl+R does not switch to rotate")

	click(e, center(e), ModControl)
	assert.False(t, e.Selection().HasSelectedTriangles())
}

func TestDeleteSelected(t *testing.T) {
	e := newTestEditor()
	m := e.Model()
	a := m.AddCustomVertex(mgl32.Vec3{0, 0, 0})
	b := m.AddCustomVertex(mgl32.Vec3{1, 0, 0})
	c := m.AddCustomVertex(mgl32.Vec3{0, 0, 1})
	m.AddCustomTriangle(a, b, c)
	e.Selection().AddCustomVertex(a)

	e.HandleInput(KeyDown(KeyDelete, 0))
	assert.False(t, m.HasCustomVertex(a))
	assert.Empty(t, m.CustomTriangles())
	assert.False(t, e.Selection().HasCustomVertices())
}

func TestDeleteSelectedTriangleKeepsVertices(t *testing.T) {
	e := newTestEditor()
	m := e.Model()
	a := m.AddCustomVertex(mgl32.Vec3{-2, 0, -2})
	b := m.AddCustomVertex(mgl32.Vec3{2, 0, -2})
	c := m.AddCustomVertex(mgl32.Vec3{0, 0, 2})
	tri := m.AddCustomTriangle(a, b, c)

	click(e, center(e), ModControl)
	require.True(t, e.Selection().HasTriangle(model.CustomTriangleRef(tri)))

	e.HandleInput(KeyDown(KeyDelete, 0))
	assert.Empty(t, m.CustomTriangles())
	assert.Len(t, m.CustomVertices(), 3)
	assert.False(t, e.Selection().HasSelectedTriangles())
}

func TestDeleteDropsStagedVertex(t *testing.T) {
	e := newTestEditor()
	m := e.Model()
	pts := []mgl32.Vec3{{-1, 0, 0}, {1, 0, 0}, {0, 0, 1}, {0, 0, -1}}
	var ids []uint32
	for _, p := range pts {
		ids = append(ids, m.AddCustomVertex(p))
	}
	e.HandleInput(KeyDown(KeyT, 0))
	click(e, screenOf(t, e, pts[0]), 0)
	click(e, screenOf(t, e, pts[1]), 0)
	require.Equal(t, ids[:2], e.Staged())

	e.Selection().AddCustomVertex(ids[0])
	e.HandleInput(KeyDown(KeyDelete, 0))
	assert.Equal(t, ids[1:2], e.Staged())

	click(e, screenOf(t, e, pts[2]), 0)
	click(e, screenOf(t, e, pts[3]), 0)
	tris := m.CustomTriangles()
	require.Len(t, tris, 1)
	assert.Equal(t, [3]uint32{ids[1], ids[2], ids[3]}, tris[0].VertexIDs)
}

func TestSelectFaceInSelectedMesh(t *testing.T) {
	e := newTestEditor()
	meshID := e.Model().AddMesh(&model.Mesh{
		Positions: []mgl32.Vec3{{-1, 0, -1}, {1, 0, -1}, {1, 0, 1}, {-1, 0, 1}},
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
	})

	click(e, screenOf(t, e, mgl32.Vec3{0.5, 0, -0.3}), 0)
	require.True(t, e.Selection().HasMesh())
	assert.False(t, e.Selection().HasFace())

	click(e, screenOf(t, e, mgl32.Vec3{-0.5, 0, 0.3}), 0)
	face, ok := e.Selection().FaceIndex()
	require.True(t, ok)
	assert.Equal(t, uint32(1), face)
	id, _ := e.Selection().MeshID()
	assert.Equal(t, meshID, id)

	e.HandleInput(KeyDown(KeyG, 0))
	pivot := mgl32.Vec3{-1.0 / 3, 0, 1.0 / 3}
	if !e.Tools().Position().ApproxEqualThreshold(pivot, 1e-5) {
		t.Errorf("expected face centroid %v, got %v", pivot, e.Tools().Position())
	}

	start := screenOf(t, e, pivot).Add(mgl32.Vec2{40, 0})
	require.True(t, e.HandleInput(MouseDown(MouseLeft, start.X(), start.Y(), 0)))
	e.HandleInput(MouseMove(start.X()+100, start.Y(), 0))
	e.HandleInput(MouseUp(MouseLeft, start.X()+100, start.Y(), 0))

	mesh, _ := e.Model().Mesh(meshID)
	assert.Equal(t, mgl32.Vec3{1, 0, -1}, mesh.Positions[1], "corner outside the face stays put")
	for i, want := range map[int]mgl32.Vec3{0: {0, 0, -1}, 2: {2, 0, 1}, 3: {0, 0, 1}} {
		if !mesh.Positions[i].ApproxEqualThreshold(want, 1e-4) {
			t.Errorf("vertex %d: expected %v, got %v", i, want, mesh.Positions[i])
		}
	}
}

func TestLoadFailureKeepsModel(t *testing.T) {
	e := newTestEditor()
	e.SetStore(failingStore{})
	id := e.Model().AddCustomVertex(mgl32.Vec3{1, 1, 1})
	before := e.Model()

	assert.False(t, e.LoadModel("broken.gltf"))
	assert.Same(t, before, e.Model())
	assert.True(t, e.Model().HasCustomVertex(id))
	assert.Contains(t, e.Status(), "Load failed")
	assert.Empty(t, e.FilePath())

	assert.False(t, e.SaveModel("out.gltf"))
	assert.Contains(t, e.Status(), "Save failed")
}

func TestSaveNeedsPath(t *testing.T) {
	e := newTestEditor()
	assert.True(t, e.HandleInput(KeyDown(KeyS, ModControl)))
	assert.Equal(t, "Save failed: no file path", e.Status())
	assert.Equal(t, ModeSelect, e.Mode(), "Ctrl+S does not switch to scale")
	assert.Equal(t, []Change{ChangeFile}, e.Update(0))
}

func TestSaveLoadNew(t *testing.T) {
	e := newTestEditor()
	path := filepath.Join(t.TempDir(), "scene.gltf")
	id := e.Model().AddCustomVertex(mgl32.Vec3{1, 2, 3})

	require.True(t, e.SaveModel(path))
	assert.Equal(t, path, e.FilePath())
	assert.False(t, e.Model().Dirty())

	e.Model().AddCustomVertex(mgl32.Vec3{})
	require.True(t, e.SaveModel(""), "falls back to the current path")

	require.True(t, e.NewModel())
	assert.Empty(t, e.FilePath())
	assert.True(t, e.Model().IsEmpty())

	require.True(t, e.LoadModel(path))
	assert.Len(t, e.Model().CustomVertices(), 2)
	p, ok := e.Model().CustomVertex(id)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, p)
}

func TestChangesAreFlushedOncePerFrame(t *testing.T) {
	e := newTestEditor()
	var got []Change
	e.Subscribe(func(c Change) { got = append(got, c) })

	e.HandleInput(KeyDown(KeyG, 0))
	e.HandleInput(KeyDown(KeyR, 0))
	e.HandleInput(KeyDown(KeyO, ModControl))

	changes := e.Update(0.016)
	assert.Equal(t, []Change{ChangeMode, ChangeOpenRequested}, changes)
	assert.Equal(t, changes, got)
	assert.Nil(t, e.Update(0.016))
}

func TestDrainChangesSkipsSubscribers(t *testing.T) {
	e := newTestEditor()
	called := false
	e.Subscribe(func(Change) { called = true })

	e.SetMode(ModeAddVertex)
	click(e, center(e), 0)
	assert.Equal(t, []Change{ChangeMode, ChangeModel}, e.DrainChanges())
	assert.False(t, called)
	assert.Nil(t, e.Update(0))
}

func TestCameraInputThroughEditor(t *testing.T) {
	e := newTestEditor()
	cam := e.Camera()
	cam.Theta, cam.Phi = 0, 90

	assert.True(t, e.HandleInput(MouseDown(MouseMiddle, 500, 300, 0)))
	assert.True(t, e.HandleInput(MouseMove(510, 300, 0)))
	assert.True(t, e.HandleInput(MouseUp(MouseMiddle, 510, 300, 0)))
	assert.InDelta(t, 5, cam.Theta, 1e-5)
	assert.InDelta(t, 90, cam.Phi, 1e-5)

	r := cam.Radius
	e.HandleInput(MouseWheel(1))
	assert.InDelta(t, r*0.9, cam.Radius, 1e-4)

	e.HandleInput(Resize(800, 600))
	assert.Equal(t, float32(800), cam.Viewport.Width)
}

func TestAltLeftDragOrbitsInsteadOfSelecting(t *testing.T) {
	e := newTestEditor()
	id := e.Model().AddCustomVertex(mgl32.Vec3{})
	at := screenOf(t, e, mgl32.Vec3{})

	assert.True(t, e.HandleInput(MouseDown(MouseLeft, at.X(), at.Y(), ModAlt)))
	e.HandleInput(MouseMove(at.X()+20, at.Y(), ModAlt))
	e.HandleInput(MouseUp(MouseLeft, at.X()+20, at.Y(), ModAlt))

	assert.InDelta(t, 10, e.Camera().Theta, 1e-5)
	assert.False(t, e.Selection().HasCustomVertex(id))
}

func TestRenderDrawsGizmoOnlyWithTarget(t *testing.T) {
	e := newTestEditor()
	e.cfg.GridHalfExtent = 0
	var dl core.DrawList

	e.SetMode(ModeMove)
	e.Render(&dl)
	assert.Empty(t, dl.Lines, "no selection, no gizmo")

	id := e.Model().AddCustomVertex(mgl32.Vec3{})
	e.Selection().AddCustomVertex(id)
	e.SetMode(ModeSelect)
	e.SetMode(ModeMove)
	dl.Reset()
	e.Render(&dl)
	assert.Len(t, dl.Lines, 3, "one line per axis")
	require.Len(t, dl.Points, 4, "vertex marker plus three handle tips")
	assert.Equal(t, core.ColorSelected, dl.Points[0].Color)
}

func TestToggleMeshPreview(t *testing.T) {
	e := newTestEditor()
	e.cfg.GridHalfExtent = 0
	e.Model().AddMesh(&model.Mesh{
		Positions: []mgl32.Vec3{{-1, 0, -1}, {1, 0, -1}, {0, 0, 1}},
		Indices:   []uint32{0, 1, 2},
	})
	var dl core.DrawList
	e.Render(&dl)
	assert.Len(t, dl.Lines, 3)

	e.HandleInput(KeyDown(KeyP, 0))
	assert.False(t, e.ShowMeshes())
	dl.Reset()
	e.Render(&dl)
	assert.Empty(t, dl.Lines)
}
