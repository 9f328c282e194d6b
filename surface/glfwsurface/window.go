// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glfwsurface

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/softwin"
	"github.com/gogpu/softwin/surface"
)

// WindowConfig describes a window opened by OpenWindow.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
	VSync  bool
}

// Window wraps a GLFW window and implements surface.Window.
//
// The window owns an OpenGL 3.3 core context. All methods, and every
// surface created for the window, must be used from the goroutine that
// called OpenWindow.
type Window struct {
	w        *glfw.Window
	id       uint64
	contexts contextRefs
}

// OpenWindow initializes GLFW, creates a window with an OpenGL context and
// loads the GL function pointers. It locks the calling goroutine to its OS
// thread, as GLFW requires.
func OpenWindow(cfg WindowConfig) (*Window, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfwsurface: init glfw: %w", err)
	}

	// GL 3.2+ core profile (Mac requires forward-compatible flag).
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 0)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfwsurface: create window: %w", err)
	}
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("glfwsurface: init gl: %w", err)
	}
	softwin.Logger().Info("glfwsurface: window opened",
		"title", cfg.Title,
		"gl", gl.GoStr(gl.GetString(gl.VERSION)))

	return &Window{w: win, id: surface.NextWindowID()}, nil
}

// ID implements surface.Window.
func (w *Window) ID() uint64 { return w.id }

// GLFW returns the underlying GLFW window for event callbacks.
func (w *Window) GLFW() *glfw.Window { return w.w }

// FramebufferSize returns the drawable size in physical pixels.
func (w *Window) FramebufferSize() (width, height int) {
	return w.w.GetFramebufferSize()
}

// Iconified reports whether the window is minimized.
func (w *Window) Iconified() bool {
	return w.w.GetAttrib(glfw.Iconified) == glfw.True
}

// ShouldClose reports whether the user asked to close the window.
func (w *Window) ShouldClose() bool { return w.w.ShouldClose() }

// PollEvents processes pending window events.
func (w *Window) PollEvents() { glfw.PollEvents() }

// Destroy closes the window and terminates GLFW. Renderers bound to the
// window must be closed first.
func (w *Window) Destroy() {
	w.w.Destroy()
	glfw.Terminate()
}
