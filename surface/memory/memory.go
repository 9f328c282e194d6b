// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package memory provides a headless presentation backend that keeps frames
// in Go memory.
//
// It is the backend of choice for offscreen rendering and tests: every
// surface remembers the last presented frame, which can be read back as
// packed XRGB words or as an *image.RGBA.
//
// Importing the package registers it as "memory".
package memory

import (
	"image"
	"sync"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/softwin/internal/swizzle"
	"github.com/gogpu/softwin/surface"
)

func init() {
	surface.Register("memory", 10, func() (surface.Backend, error) {
		return New(), nil
	}, nil)
}

// Backend is an in-memory presentation backend.
//
// A Backend records every surface it creates so callers can inspect frames
// after the renderer that owned the surface has moved on.
type Backend struct {
	mu       sync.Mutex
	surfaces []*Surface
	contexts int
}

// New creates an in-memory backend.
func New() *Backend {
	return &Backend{}
}

// NewContext implements surface.Backend.
func (b *Backend) NewContext(w surface.Window) (surface.Context, error) {
	b.mu.Lock()
	b.contexts++
	b.mu.Unlock()
	return &Context{backend: b, window: w}, nil
}

// NewSurface implements surface.Backend.
func (b *Backend) NewSurface(ctx surface.Context, w surface.Window) (surface.Surface, error) {
	c, ok := ctx.(*Context)
	if !ok || c.backend != b {
		return nil, surface.ErrForeignContext
	}
	if c.closed {
		return nil, surface.ErrClosed
	}
	s := &Surface{window: w}
	b.mu.Lock()
	b.surfaces = append(b.surfaces, s)
	b.mu.Unlock()
	return s, nil
}

// Surfaces returns every surface created by the backend, oldest first.
func (b *Backend) Surfaces() []*Surface {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*Surface, len(b.surfaces))
	copy(out, b.surfaces)
	return out
}

// Last returns the most recently created surface, or nil.
func (b *Backend) Last() *Surface {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.surfaces) == 0 {
		return nil
	}
	return b.surfaces[len(b.surfaces)-1]
}

// Contexts returns how many contexts the backend has created.
func (b *Backend) Contexts() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.contexts
}

// Context is an in-memory presentation context.
type Context struct {
	backend *Backend
	window  surface.Window
	closed  bool
}

// Close implements surface.Context.
func (c *Context) Close() error {
	c.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (c *Context) Closed() bool { return c.closed }

// Surface is an in-memory presentable surface.
type Surface struct {
	window   surface.Window
	width    int
	height   int
	pixels   []uint32
	last     []uint32
	presents int
	resizes  int
	closed   bool
}

// Resize implements surface.Surface. The pixel storage is reallocated and
// the last presented frame is discarded.
func (s *Surface) Resize(width, height int) error {
	if s.closed {
		return surface.ErrClosed
	}
	if width < 1 || height < 1 {
		return surface.ErrInvalidSize
	}
	s.resizes++
	if width == s.width && height == s.height {
		return nil
	}
	s.width, s.height = width, height
	s.pixels = make([]uint32, width*height)
	s.last = nil
	return nil
}

// Buffer implements surface.Surface.
func (s *Surface) Buffer() (surface.Buffer, error) {
	if s.closed {
		return nil, surface.ErrClosed
	}
	if s.pixels == nil {
		return nil, surface.ErrNotConfigured
	}
	return &buffer{s: s}, nil
}

// Format implements surface.Surface.
func (s *Surface) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatBGRA8Unorm
}

// Close implements surface.Surface.
func (s *Surface) Close() error {
	s.closed = true
	return nil
}

// Window returns the window the surface was created for.
func (s *Surface) Window() surface.Window { return s.window }

// Size returns the surface dimensions.
func (s *Surface) Size() (width, height int) { return s.width, s.height }

// Closed reports whether Close has been called.
func (s *Surface) Closed() bool { return s.closed }

// Presents returns how many frames have been presented.
func (s *Surface) Presents() int { return s.presents }

// Resizes returns how many times Resize succeeded.
func (s *Surface) Resizes() int { return s.resizes }

// LastFrame returns a copy of the last presented frame, or nil if nothing
// has been presented since the last size change.
func (s *Surface) LastFrame() []uint32 {
	if s.last == nil {
		return nil
	}
	out := make([]uint32, len(s.last))
	copy(out, s.last)
	return out
}

// Snapshot returns the last presented frame as an opaque RGBA image,
// or nil if nothing has been presented.
func (s *Surface) Snapshot() *image.RGBA {
	if s.last == nil {
		return nil
	}
	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	if err := swizzle.XRGBToRGBA(img.Pix, s.last); err != nil {
		return nil
	}
	return img
}

type buffer struct {
	s *Surface
}

func (b *buffer) Pixels() []uint32 { return b.s.pixels }

func (b *buffer) Present() error {
	if b.s.closed {
		return surface.ErrClosed
	}
	if len(b.s.last) != len(b.s.pixels) {
		b.s.last = make([]uint32, len(b.s.pixels))
	}
	copy(b.s.last, b.s.pixels)
	b.s.presents++
	return nil
}
