package modeler

import (
	"fmt"
	"os"

	"github.com/gekko3d/modeler/rt/core"
	"github.com/gekko3d/modeler/rt/editor"

	"github.com/pelletier/go-toml/v2"
)

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type CameraConfig struct {
	Radius float32 `toml:"radius"`
	Theta  float32 `toml:"theta"`
	Phi    float32 `toml:"phi"`
	Fov    float32 `toml:"fov"`
	Near   float32 `toml:"near"`
	Far    float32 `toml:"far"`
}

type UIConfig struct {
	FontPath  string  `toml:"font_path"` // empty uses the built-in face
	FontSize  float64 `toml:"font_size"`
	TextScale float32 `toml:"text_scale"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type Config struct {
	Window WindowConfig  `toml:"window"`
	Camera CameraConfig  `toml:"camera"`
	Editor editor.Config `toml:"editor"`
	UI     UIConfig      `toml:"ui"`
	Log    LogConfig     `toml:"log"`
}

func DefaultConfig() Config {
	cam := core.NewOrbitCamera()
	return Config{
		Window: WindowConfig{Width: 1280, Height: 720, Title: "Gekko Modeler"},
		Camera: CameraConfig{
			Radius: cam.Radius,
			Theta:  cam.Theta,
			Phi:    cam.Phi,
			Fov:    cam.Fov,
			Near:   cam.Near,
			Far:    cam.Far,
		},
		Editor: editor.DefaultConfig(),
		UI:     UIConfig{FontSize: 32, TextScale: 0.5},
		Log:    LogConfig{Level: "info"},
	}
}

// LoadConfig reads a TOML file over the defaults. Keys missing from the
// file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera clip range [%g, %g] is invalid", c.Camera.Near, c.Camera.Far)
	}
	if c.Editor.PickRadius <= 0 {
		return fmt.Errorf("editor pick_radius must be positive")
	}
	if _, err := core.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// NewCamera builds the orbit camera described by the camera section, with
// radius and angles clamped to the camera limits.
func (c Config) NewCamera() *core.OrbitCamera {
	cam := core.NewOrbitCamera()
	cam.Radius = c.Camera.Radius
	cam.Theta = c.Camera.Theta
	cam.Phi = c.Camera.Phi
	cam.Fov = c.Camera.Fov
	cam.Near = c.Camera.Near
	cam.Far = c.Camera.Far
	cam.Zoom(0)
	cam.Orbit(0, 0, 0)
	cam.Resize(c.Window.Width, c.Window.Height)
	return cam
}

func (c Config) Logger(prefix string) core.Logger {
	level, err := core.ParseLevel(c.Log.Level)
	if err != nil {
		level = core.LevelInfo
	}
	return core.NewDefaultLogger(prefix, level)
}
