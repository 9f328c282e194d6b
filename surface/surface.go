// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"

	"github.com/gogpu/gputypes"
)

// Window is an opaque handle to a native window.
//
// A Window is shared between the platform event loop and any renderer bound
// to it. Renderers never close it, and it must stay valid across any number
// of suspend/resume cycles.
type Window interface {
	// ID identifies the window in logs. It carries no other meaning.
	ID() uint64
}

// Context is a presentation context bound to a window.
//
// A Context owns whatever connection the platform needs before surfaces can
// be created (a display connection, a current GL context). It must outlive
// every Surface created from it.
type Context interface {
	// Close releases the context. Surfaces created from it must be closed
	// first. Close is idempotent.
	Close() error
}

// Surface is a presentable pixel target attached to a window.
//
// Surfaces are NOT thread-safe. They are driven from the goroutine that owns
// the window's event loop.
type Surface interface {
	// Resize sets the surface dimensions in physical pixels.
	// Both dimensions must be at least 1. Content is not preserved.
	Resize(width, height int) error

	// Buffer acquires the mutable presentable buffer for the next frame.
	// An error means the surface is momentarily unable to accept a frame
	// (not yet sized, minimized, still busy with the previous frame).
	Buffer() (Buffer, error)

	// Format reports the memory layout of Buffer pixels. Every built-in
	// backend presents gputypes.TextureFormatBGRA8Unorm, which is what a
	// packed XRGB word looks like in little-endian memory.
	Format() gputypes.TextureFormat

	// Close releases the surface. Close is idempotent.
	Close() error
}

// Buffer is the presentable pixel storage of a Surface for one frame.
//
// Each pixel is a packed 0x00RRGGBB word; the top byte is ignored by every
// backend. A Buffer must not be used after Present.
type Buffer interface {
	// Pixels returns width*height words in row-major order.
	Pixels() []uint32

	// Present hands the buffer to the compositor.
	Present() error
}

// Backend creates presentation contexts and surfaces for windows.
type Backend interface {
	// NewContext creates a presentation context for w.
	NewContext(w Window) (Context, error)

	// NewSurface creates a surface for w over ctx. ctx must have been
	// created by the same backend.
	NewSurface(ctx Context, w Window) (Surface, error)
}

// Common errors returned by backends.
var (
	// ErrClosed is returned when a closed context or surface is used.
	ErrClosed = errors.New("surface: closed")

	// ErrInvalidSize is returned by Resize for dimensions below 1.
	ErrInvalidSize = errors.New("surface: invalid size")

	// ErrNotConfigured is returned by Buffer before the first Resize.
	ErrNotConfigured = errors.New("surface: not configured")

	// ErrNotReady is returned by Buffer while the window cannot show a frame.
	ErrNotReady = errors.New("surface: window not ready")

	// ErrForeignContext is returned when a context from another backend is
	// passed to NewSurface.
	ErrForeignContext = errors.New("surface: context belongs to another backend")
)
