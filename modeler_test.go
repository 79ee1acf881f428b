package modeler

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gekko3d/modeler/rt/core"
	"github.com/gekko3d/modeler/rt/editor"
	"github.com/gekko3d/modeler/rt/model"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHost() *Host {
	return NewHost(DefaultConfig(), core.NewNopLogger())
}

func saveModelFile(t *testing.T, path string, positions ...mgl32.Vec3) {
	t.Helper()
	m := model.New()
	for _, p := range positions {
		m.AddCustomVertex(p)
	}
	require.NoError(t, model.Save(m, path))
}

func TestF1TogglesEditor(t *testing.T) {
	h := newTestHost()
	h.Dispatch([]editor.InputEvent{
		editor.KeyDown(editor.KeyF1, 0),
		editor.KeyDown(editor.KeyG, 0),
		editor.Resize(640, 480),
	})
	assert.False(t, h.EditorEnabled())
	assert.Equal(t, editor.ModeSelect, h.Editor.Mode(), "keys are ignored while disabled")
	assert.Equal(t, float32(640), h.Editor.Camera().Viewport.Width, "resize still applies")

	h.Dispatch([]editor.InputEvent{editor.KeyDown(editor.KeyF1, 0), editor.KeyDown(editor.KeyG, 0)})
	assert.True(t, h.EditorEnabled())
	assert.Equal(t, editor.ModeMove, h.Editor.Mode())
}

func TestFrameFlushesToPanel(t *testing.T) {
	h := newTestHost()
	h.Dispatch([]editor.InputEvent{editor.KeyDown(editor.KeyV, 0)})
	h.Frame(0.016)

	l, _ := h.Panel.Label(LabelMode)
	assert.Equal(t, "Mode: Add Vertex", l.Text)
}

func TestOpenRequestUsesHook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.gltf")
	saveModelFile(t, path, mgl32.Vec3{1, 2, 3})

	h := newTestHost()
	asked := 0
	h.OnOpen = func() (string, bool) {
		asked++
		return path, true
	}
	h.Dispatch([]editor.InputEvent{editor.KeyDown(editor.KeyO, editor.ModControl)})
	h.Frame(0.016)

	assert.Equal(t, 1, asked)
	assert.Equal(t, path, h.Editor.FilePath())
	assert.Len(t, h.Editor.Model().CustomVertices(), 1)
	l, _ := h.Panel.Label(LabelFile)
	assert.Equal(t, "File: a.gltf", l.Text)
}

func TestOpenRequestWithoutHookReverts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "b.gltf")
	saveModelFile(t, path, mgl32.Vec3{})

	h := newTestHost()
	h.Open(path)
	h.Editor.Model().AddCustomVertex(mgl32.Vec3{5, 5, 5})

	h.Dispatch([]editor.InputEvent{editor.KeyDown(editor.KeyO, editor.ModControl)})
	h.Frame(0.016)
	assert.Len(t, h.Editor.Model().CustomVertices(), 1)
	assert.False(t, h.Editor.Model().Dirty())
}

func TestOpenMissingFileKeepsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.glb")
	h := newTestHost()
	h.Open(path)

	assert.Equal(t, path, h.Editor.FilePath())
	assert.True(t, h.Editor.Model().IsEmpty())

	h.Editor.Model().AddCustomVertex(mgl32.Vec3{})
	require.True(t, h.Editor.SaveModel(""))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestWatchReloadsCleanModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watched.gltf")
	saveModelFile(t, path, mgl32.Vec3{})

	h := newTestHost()
	require.NoError(t, h.EnableWatch())
	defer h.Watcher.Close()
	h.Open(path)
	require.Len(t, h.Editor.Model().CustomVertices(), 1)

	saveModelFile(t, path, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0})
	require.Eventually(t, func() bool {
		h.Frame(0.016)
		return len(h.Editor.Model().CustomVertices()) == 2
	}, 5*time.Second, 20*time.Millisecond)
}

func TestWatchKeepsDirtyModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dirty.gltf")
	saveModelFile(t, path, mgl32.Vec3{})

	h := newTestHost()
	h.Open(path)
	h.Editor.Model().AddCustomVertex(mgl32.Vec3{2, 0, 0})

	h.reload(path)
	assert.Len(t, h.Editor.Model().CustomVertices(), 2)
	assert.True(t, h.Editor.Model().Dirty())
}

func TestClockTick(t *testing.T) {
	start := time.Unix(10, 0)
	c := NewClock(start)
	assert.InDelta(t, 0.016, c.Tick(start.Add(16*time.Millisecond)), 1e-6)
	assert.InDelta(t, maxFrameDt.Seconds(), c.Tick(start.Add(10*time.Second)), 1e-6)
	assert.Equal(t, float32(0), c.Tick(start))
}
