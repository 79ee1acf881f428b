package modeler

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// windowSettings fills in defaults for a zero window section.
func windowSettings(c WindowConfig) WindowConfig {
	if c.Width <= 0 {
		c.Width = 1280
	}
	if c.Height <= 0 {
		c.Height = 720
	}
	if c.Title == "" {
		c.Title = "Gekko Modeler"
	}
	return c
}

// createWindow initializes GLFW and opens a resizable window without a
// client API; the surface is created by WebGPU. Callers must be on the
// main OS thread and call glfw.Terminate when done.
func createWindow(c WindowConfig) (*glfw.Window, error) {
	c = windowSettings(c)
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(c.Width, c.Height, c.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	return win, nil
}
