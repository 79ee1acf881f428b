package app

import (
	"fmt"
	"time"

	"github.com/gekko3d/modeler/rt/core"
	"github.com/gekko3d/modeler/rt/gpu"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

var clearColor = wgpu.Color{R: 0.12, G: 0.12, B: 0.14, A: 1}

// App owns the window surface and the two overlay passes. It implements the
// editor's Renderer: DrawLines and DrawPoints collect into Overlay until
// Present submits the frame.
type App struct {
	Window   *glfw.Window
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	Surface  *wgpu.Surface
	Config   *wgpu.SurfaceConfiguration

	Lines *gpu.LinePass
	Text  *gpu.TextPass

	Overlay   core.DrawList
	TextItems []core.TextItem
	Profiler  *Profiler

	log core.Logger
}

func NewApp(window *glfw.Window, log core.Logger) *App {
	return &App{
		Window:   window,
		Profiler: NewProfiler(),
		log:      core.OrNop(log),
	}
}

// Init creates the device and both passes. A font that cannot be loaded
// only disables text.
func (a *App) Init(fontPath string, fontSize float64) error {
	a.Instance = wgpu.CreateInstance(nil)
	a.Surface = a.Instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(a.Window))

	adapter, err := a.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: a.Surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("request adapter: %w", err)
	}
	a.Adapter = adapter

	a.Device, err = adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: "Modeler Device"})
	if err != nil {
		return fmt.Errorf("request device: %w", err)
	}
	a.Queue = a.Device.GetQueue()

	width, height := a.Window.GetFramebufferSize()
	caps := a.Surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 {
		return fmt.Errorf("surface reports no formats")
	}
	a.Config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	a.Surface.Configure(adapter, a.Device, a.Config)

	if a.Lines, err = gpu.NewLinePass(a.Device, a.Config.Format); err != nil {
		return fmt.Errorf("line pass: %w", err)
	}

	atlas, err := core.NewTextAtlas(fontPath, fontSize)
	if err != nil {
		a.log.Warnf("text disabled: %v", err)
		return nil
	}
	if a.Text, err = gpu.NewTextPass(a.Device, a.Queue, a.Config.Format, atlas); err != nil {
		a.log.Warnf("text disabled: %v", err)
		a.Text = nil
	}
	a.log.Infof("renderer ready: %dx%d %v", width, height, a.Config.Format)
	return nil
}

func (a *App) Resize(w, h int) {
	if w <= 0 || h <= 0 || a.Config == nil {
		return
	}
	a.Config.Width = uint32(w)
	a.Config.Height = uint32(h)
	a.Surface.Configure(a.Adapter, a.Device, a.Config)
}

func (a *App) DrawLines(lines []core.LineSegment) { a.Overlay.DrawLines(lines) }
func (a *App) DrawPoints(points []core.PointMarker) { a.Overlay.DrawPoints(points) }

func (a *App) DrawText(items ...core.TextItem) {
	a.TextItems = append(a.TextItems, items...)
}

// Present uploads the collected overlay and labels, draws them over a
// cleared surface and resets the collectors for the next frame.
func (a *App) Present(view, proj mgl32.Mat4) {
	defer func() {
		a.Overlay.Reset()
		a.TextItems = a.TextItems[:0]
	}()

	a.Profiler.BeginScope("upload")
	vertices := gpu.BuildLineVertices(a.Overlay.Lines, a.Overlay.Points)
	a.Profiler.SetCount("vertices", len(vertices))
	if err := a.Lines.Update(a.Queue, gpu.ViewProjection(view, proj), vertices); err != nil {
		a.log.Errorf("line upload: %v", err)
	}
	if a.Text != nil {
		if err := a.Text.Update(a.Queue, a.TextItems, int(a.Config.Width), int(a.Config.Height)); err != nil {
			a.log.Errorf("text upload: %v", err)
		}
	}
	a.Profiler.EndScope("upload")

	nextTexture, err := a.Surface.GetCurrentTexture()
	if err != nil {
		a.log.Errorf("GetCurrentTexture failed: %v", err)
		return
	}
	defer nextTexture.Release()

	frameView, err := nextTexture.CreateView(nil)
	if err != nil {
		a.log.Errorf("CreateView failed: %v", err)
		return
	}
	defer frameView.Release()

	encoder, err := a.Device.CreateCommandEncoder(nil)
	if err != nil {
		a.log.Errorf("CreateCommandEncoder failed: %v", err)
		return
	}

	a.Profiler.BeginScope("encode")
	rPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       frameView,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: clearColor,
		}},
	})
	a.Lines.Draw(rPass)
	if a.Text != nil {
		a.Text.Draw(rPass)
	}
	if err := rPass.End(); err != nil {
		a.log.Errorf("render pass End failed: %v", err)
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		a.log.Errorf("encoder Finish failed: %v", err)
		return
	}
	a.Queue.Submit(cmd)
	a.Surface.Present()
	a.Profiler.EndScope("encode")
	a.Profiler.Frame(time.Now())
}

// LineHeight is the pixel height of one text line at scale, or 0 without
// text support.
func (a *App) LineHeight(scale float32) float32 {
	if a.Text == nil {
		return 0
	}
	return a.Text.Atlas.LineHeight(scale)
}

func (a *App) Release() {
	if a.Text != nil {
		a.Text.Release()
	}
	if a.Lines != nil {
		a.Lines.Release()
	}
	if a.Queue != nil {
		a.Queue.Release()
	}
	if a.Device != nil {
		a.Device.Release()
	}
	if a.Adapter != nil {
		a.Adapter.Release()
	}
	if a.Surface != nil {
		a.Surface.Release()
	}
	if a.Instance != nil {
		a.Instance.Release()
	}
}
