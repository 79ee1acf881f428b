package editor

import "github.com/go-gl/mathgl/mgl32"

type EventType int

const (
	EventMouseDown EventType = iota
	EventMouseUp
	EventMouseMove
	EventMouseWheel
	EventKeyDown
	EventResize
)

type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModControl
	ModAlt
)

func (m Modifier) Has(flag Modifier) bool { return m&flag != 0 }

type Key int

const (
	KeyUnknown Key = iota
	KeyG
	KeyR
	KeyS
	KeyV
	KeyT
	KeyN
	KeyO
	KeyP
	KeyEscape
	KeyDelete
	KeyF1
)

// InputEvent is a host-agnostic input event. X and Y are window pixels with
// the origin at the top-left.
type InputEvent struct {
	Type   EventType
	Button MouseButton
	Key    Key
	Mods   Modifier
	X, Y   float32
	Wheel  float32
	Width  int
	Height int
}

func (e InputEvent) Pos() mgl32.Vec2 { return mgl32.Vec2{e.X, e.Y} }

func MouseDown(b MouseButton, x, y float32, mods Modifier) InputEvent {
	return InputEvent{Type: EventMouseDown, Button: b, X: x, Y: y, Mods: mods}
}

func MouseUp(b MouseButton, x, y float32, mods Modifier) InputEvent {
	return InputEvent{Type: EventMouseUp, Button: b, X: x, Y: y, Mods: mods}
}

func MouseMove(x, y float32, mods Modifier) InputEvent {
	return InputEvent{Type: EventMouseMove, X: x, Y: y, Mods: mods}
}

func MouseWheel(delta float32) InputEvent {
	return InputEvent{Type: EventMouseWheel, Wheel: delta}
}

func KeyDown(k Key, mods Modifier) InputEvent {
	return InputEvent{Type: EventKeyDown, Key: k, Mods: mods}
}

func Resize(width, height int) InputEvent {
	return InputEvent{Type: EventResize, Width: width, Height: height}
}
