package modeler

import (
	"github.com/gekko3d/modeler/rt/editor"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var glfwToKey = map[glfw.Key]editor.Key{
	glfw.KeyG:      editor.KeyG,
	glfw.KeyR:      editor.KeyR,
	glfw.KeyS:      editor.KeyS,
	glfw.KeyV:      editor.KeyV,
	glfw.KeyT:      editor.KeyT,
	glfw.KeyN:      editor.KeyN,
	glfw.KeyO:      editor.KeyO,
	glfw.KeyP:      editor.KeyP,
	glfw.KeyEscape: editor.KeyEscape,
	glfw.KeyDelete: editor.KeyDelete,
	glfw.KeyF1:     editor.KeyF1,
}

func translateKey(k glfw.Key) editor.Key {
	if key, ok := glfwToKey[k]; ok {
		return key
	}
	return editor.KeyUnknown
}

func translateMods(m glfw.ModifierKey) editor.Modifier {
	var mods editor.Modifier
	if m&glfw.ModShift != 0 {
		mods |= editor.ModShift
	}
	if m&(glfw.ModControl|glfw.ModSuper) != 0 {
		mods |= editor.ModControl
	}
	if m&glfw.ModAlt != 0 {
		mods |= editor.ModAlt
	}
	return mods
}

func translateButton(b glfw.MouseButton) (editor.MouseButton, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return editor.MouseLeft, true
	case glfw.MouseButtonRight:
		return editor.MouseRight, true
	case glfw.MouseButtonMiddle:
		return editor.MouseMiddle, true
	}
	return 0, false
}

// InputQueue buffers window callbacks as editor events until the frame loop
// drains them. Cursor positions are converted from window coordinates to
// framebuffer pixels so they match the camera viewport.
type InputQueue struct {
	events     []editor.InputEvent
	x, y       float32
	mods       editor.Modifier
	pixelRatio float32
}

func NewInputQueue() *InputQueue {
	return &InputQueue{pixelRatio: 1}
}

// Attach installs the callbacks on w. The callbacks run inside
// glfw.PollEvents on the frame thread.
func (q *InputQueue) Attach(w *glfw.Window) {
	q.updateRatio(w)
	w.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		q.Key(key, action, mods)
	})
	w.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		q.MouseButton(button, action, mods)
	})
	w.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		q.CursorPos(x, y)
	})
	w.SetScrollCallback(func(w *glfw.Window, _, yoff float64) {
		q.Scroll(yoff)
	})
	w.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		q.updateRatio(w)
		q.FramebufferSize(width, height)
	})
}

func (q *InputQueue) updateRatio(w *glfw.Window) {
	winW, _ := w.GetSize()
	fbW, _ := w.GetFramebufferSize()
	q.SetPixelRatio(fbW, winW)
}

// SetPixelRatio sets the framebuffer-to-window scale from the two widths.
func (q *InputQueue) SetPixelRatio(framebufferWidth, windowWidth int) {
	if framebufferWidth <= 0 || windowWidth <= 0 {
		q.pixelRatio = 1
		return
	}
	q.pixelRatio = float32(framebufferWidth) / float32(windowWidth)
}

func (q *InputQueue) Key(key glfw.Key, action glfw.Action, mods glfw.ModifierKey) {
	q.mods = translateMods(mods)
	if action == glfw.Release {
		return
	}
	k := translateKey(key)
	if k == editor.KeyUnknown {
		return
	}
	q.events = append(q.events, editor.KeyDown(k, q.mods))
}

func (q *InputQueue) MouseButton(button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	b, ok := translateButton(button)
	if !ok {
		return
	}
	q.mods = translateMods(mods)
	switch action {
	case glfw.Press:
		q.events = append(q.events, editor.MouseDown(b, q.x, q.y, q.mods))
	case glfw.Release:
		q.events = append(q.events, editor.MouseUp(b, q.x, q.y, q.mods))
	}
}

func (q *InputQueue) CursorPos(x, y float64) {
	q.x = float32(x) * q.pixelRatio
	q.y = float32(y) * q.pixelRatio
	q.events = append(q.events, editor.MouseMove(q.x, q.y, q.mods))
}

func (q *InputQueue) Scroll(yoff float64) {
	if yoff == 0 {
		return
	}
	q.events = append(q.events, editor.MouseWheel(float32(yoff)))
}

func (q *InputQueue) FramebufferSize(width, height int) {
	q.events = append(q.events, editor.Resize(width, height))
}

// Drain returns the buffered events in arrival order and empties the queue.
func (q *InputQueue) Drain() []editor.InputEvent {
	out := q.events
	q.events = nil
	return out
}
