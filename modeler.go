package modeler

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/gekko3d/modeler/rt/app"
	"github.com/gekko3d/modeler/rt/core"
	"github.com/gekko3d/modeler/rt/editor"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Host wires the editor to a window: it feeds queued input, flushes editor
// changes into the status panel, reloads the open file on external edits
// and draws the frame. Everything runs on the thread that calls Run.
type Host struct {
	Config  Config
	Editor  *editor.Editor
	Panel   *StatusPanel
	Input   *InputQueue
	Watcher *ModelWatcher

	// OnOpen, when set, supplies a path for Ctrl+O. Without it Ctrl+O
	// reloads the current file from disk.
	OnOpen func() (string, bool)

	log        core.Logger
	clock      *Clock
	enabled    bool
	debug      bool
	watched    string
	statsLabel func() string
}

func NewHost(cfg Config, log core.Logger) *Host {
	log = core.OrNop(log)
	ed := editor.New(cfg.Editor, cfg.NewCamera(), log)
	h := &Host{
		Config:  cfg,
		Editor:  ed,
		Input:   NewInputQueue(),
		log:     log,
		clock:   NewClock(time.Now()),
		enabled: true,
	}
	lineHeight := float32(cfg.UI.FontSize) * cfg.UI.TextScale * 1.2
	h.Panel = NewStatusPanel(ed, cfg.UI.TextScale, lineHeight)
	return h
}

func (h *Host) EditorEnabled() bool { return h.enabled }

// SetDebug shows the frame statistics label and turns on debug logging.
func (h *Host) SetDebug(on bool) {
	h.debug = on
	h.log.SetDebug(on)
	h.Panel.SetVisible(LabelStats, on)
}

// EnableWatch starts following the open file for external changes.
func (h *Host) EnableWatch() error {
	w, err := NewModelWatcher(DefaultWatchDebounce, h.log)
	if err != nil {
		return err
	}
	h.Watcher = w
	h.Editor.SetStore(mutingStore{watcher: w})
	h.syncWatch()
	return nil
}

func (h *Host) syncWatch() {
	if h.Watcher == nil || h.Editor.FilePath() == h.watched {
		return
	}
	if err := h.Watcher.Watch(h.Editor.FilePath()); err != nil {
		h.log.Warnf("%v", err)
		return
	}
	h.watched = h.Editor.FilePath()
}

// Dispatch routes input. F1 toggles the editor; while it is off, only
// resize events reach it so the camera keeps the window size.
func (h *Host) Dispatch(events []editor.InputEvent) {
	for _, ev := range events {
		if ev.Type == editor.EventKeyDown && ev.Key == editor.KeyF1 {
			h.enabled = !h.enabled
			h.log.Infof("editor enabled: %v", h.enabled)
			continue
		}
		if !h.enabled && ev.Type != editor.EventResize {
			continue
		}
		h.Editor.HandleInput(ev)
	}
}

// Frame runs the non-rendering half of a frame: external reloads, change
// flushing and host-level requests.
func (h *Host) Frame(dt float32) {
	if h.Watcher != nil {
		if path, ok := h.Watcher.Poll(); ok {
			h.reload(path)
		}
	}

	for _, c := range h.Editor.Update(dt) {
		switch c {
		case editor.ChangeOpenRequested:
			h.open()
		case editor.ChangeFile:
			h.syncWatch()
		}
	}
	// open() may have queued more changes
	h.Editor.Update(0)
	h.syncWatch()
}

func (h *Host) reload(path string) {
	if h.Editor.Model().Dirty() {
		h.log.Infof("%s changed on disk; keeping unsaved edits", path)
		return
	}
	h.log.Infof("%s changed on disk; reloading", path)
	h.Editor.LoadModel(path)
}

func (h *Host) open() {
	if h.OnOpen != nil {
		if path, ok := h.OnOpen(); ok {
			h.Editor.LoadModel(path)
		}
		return
	}
	if path := h.Editor.FilePath(); path != "" {
		h.Editor.LoadModel(path)
		return
	}
	h.log.Infof("open requested with no file; pass a path on the command line")
}

// Open loads path at startup. A missing file starts a new model that will
// be saved there.
func (h *Host) Open(path string) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		h.log.Infof("%s does not exist yet; it will be created on save", path)
		h.Editor.SetFilePath(path)
	} else if !h.Editor.LoadModel(path) {
		h.log.Warnf("starting with an empty model: %s", h.Editor.Status())
	}
	h.Editor.Update(0)
	h.syncWatch()
}

// Run opens the window and drives frames until it is closed.
func (h *Host) Run() error {
	win, err := createWindow(h.Config.Window)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer win.Destroy()

	renderer := app.NewApp(win, h.log)
	if err := renderer.Init(h.Config.UI.FontPath, h.Config.UI.FontSize); err != nil {
		h.log.Errorf("renderer: %v", err)
		return fmt.Errorf("init renderer: %w", err)
	}
	defer renderer.Release()

	if lh := renderer.LineHeight(h.Config.UI.TextScale); lh > 0 {
		h.Panel.LineHeight = lh
	}
	h.statsLabel = renderer.Profiler.StatsString

	fbW, fbH := win.GetFramebufferSize()
	h.Editor.HandleInput(editor.Resize(fbW, fbH))
	h.Input.Attach(win)
	if h.Watcher != nil {
		defer h.Watcher.Close()
	}

	h.clock = NewClock(time.Now())
	for !win.ShouldClose() {
		glfw.PollEvents()
		h.Dispatch(h.Input.Drain())
		h.Frame(h.clock.Tick(time.Now()))
		h.draw(renderer)
	}
	return nil
}

func (h *Host) draw(r *app.App) {
	if h.enabled {
		h.Editor.Render(r)
	}
	if h.debug && h.statsLabel != nil {
		h.Panel.SetText(LabelStats, h.statsLabel())
	}
	r.DrawText(h.Panel.Items()...)

	cam := h.Editor.Camera()
	r.Present(cam.ViewMatrix(), cam.ProjectionMatrix())
}
