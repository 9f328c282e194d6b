// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package glfwsurface presents frames in on-screen GLFW windows.
//
// Every frame is uploaded into an OpenGL texture as BGRA bytes (which is what
// a packed XRGB word looks like in little-endian memory) and blitted to the
// window's default framebuffer, followed by a buffer swap. No shaders are
// involved.
//
// Importing the package registers it as "glfw". Windows are opened with
// OpenWindow; the window's GL context is made current by NewContext.
package glfwsurface

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/softwin/surface"
)

func init() {
	surface.Register("glfw", 100, func() (surface.Backend, error) {
		return New(), nil
	}, nil)
}

// ErrNotGLFWWindow is returned when the window handle was not opened by this
// package.
var ErrNotGLFWWindow = errors.New("glfwsurface: window is not a *glfwsurface.Window")

// Backend presents into GLFW windows.
type Backend struct{}

// New creates a GLFW presentation backend.
func New() *Backend { return &Backend{} }

type glContext struct {
	backend *Backend
	window  *Window
	closed  bool
}

// NewContext makes the window's GL context current on the calling thread.
func (b *Backend) NewContext(w surface.Window) (surface.Context, error) {
	win, ok := w.(*Window)
	if !ok {
		return nil, ErrNotGLFWWindow
	}
	win.w.MakeContextCurrent()
	win.contexts.acquire()
	return &glContext{backend: b, window: win}, nil
}

// Close detaches the window's GL context when no other context of the
// window is live.
func (c *glContext) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if c.window.contexts.release() && glfw.GetCurrentContext() == c.window.w {
		glfw.DetachCurrentContext()
	}
	return nil
}

// NewSurface creates the upload texture and the framebuffer it is read
// through.
func (b *Backend) NewSurface(ctx surface.Context, _ surface.Window) (surface.Surface, error) {
	c, ok := ctx.(*glContext)
	if !ok || c.backend != b {
		return nil, surface.ErrForeignContext
	}
	if c.closed {
		return nil, surface.ErrClosed
	}

	s := &glSurface{ctx: c}
	gl.GenTextures(1, &s.texture)
	gl.BindTexture(gl.TEXTURE_2D, s.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenFramebuffers(1, &s.fbo)
	if err := glError("create surface"); err != nil {
		s.release()
		return nil, err
	}
	return s, nil
}

type glSurface struct {
	ctx     *glContext
	texture uint32
	fbo     uint32
	width   int
	height  int
	pixels  []uint32
	closed  bool
}

func (s *glSurface) Resize(width, height int) error {
	if s.closed {
		return surface.ErrClosed
	}
	if width < 1 || height < 1 {
		return surface.ErrInvalidSize
	}

	gl.BindTexture(gl.TEXTURE_2D, s.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0,
		gl.BGRA, gl.UNSIGNED_INT_8_8_8_8_REV, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, s.fbo)
	gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, s.texture, 0)
	status := gl.CheckFramebufferStatus(gl.READ_FRAMEBUFFER)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("glfwsurface: incomplete framebuffer: %#x", status)
	}
	if err := glError("resize"); err != nil {
		return err
	}

	s.width, s.height = width, height
	s.pixels = make([]uint32, width*height)
	return nil
}

// Buffer fails while the window is minimized or has a zero-sized
// framebuffer; the renderer drops those frames.
func (s *glSurface) Buffer() (surface.Buffer, error) {
	if s.closed {
		return nil, surface.ErrClosed
	}
	if s.pixels == nil {
		return nil, surface.ErrNotConfigured
	}
	if s.ctx.window.Iconified() {
		return nil, surface.ErrNotReady
	}
	if fw, fh := s.ctx.window.FramebufferSize(); fw == 0 || fh == 0 {
		return nil, surface.ErrNotReady
	}
	return &glBuffer{s: s}, nil
}

func (s *glSurface) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatBGRA8Unorm
}

func (s *glSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.release()
	return glError("close")
}

func (s *glSurface) release() {
	if s.fbo != 0 {
		gl.DeleteFramebuffers(1, &s.fbo)
		s.fbo = 0
	}
	if s.texture != 0 {
		gl.DeleteTextures(1, &s.texture)
		s.texture = 0
	}
	s.pixels = nil
}

type glBuffer struct {
	s *glSurface
}

func (b *glBuffer) Pixels() []uint32 { return b.s.pixels }

// Present uploads the pixels and blits them with the rows flipped, since GL
// framebuffers start at the bottom-left corner.
func (b *glBuffer) Present() error {
	s := b.s
	if s.closed {
		return surface.ErrClosed
	}
	w, h := int32(s.width), int32(s.height)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.BindTexture(gl.TEXTURE_2D, s.texture)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, w, h, gl.BGRA, gl.UNSIGNED_INT_8_8_8_8_REV, gl.Ptr(s.pixels))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	fw, fh := s.ctx.window.FramebufferSize()
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, s.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(0, 0, w, h, 0, int32(fh), int32(fw), 0, gl.COLOR_BUFFER_BIT, gl.NEAREST)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	if err := glError("present"); err != nil {
		return err
	}
	s.ctx.window.w.SwapBuffers()
	return nil
}

func glError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("glfwsurface: %s: gl error %#x", op, code)
	}
	return nil
}
