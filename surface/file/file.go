// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package file provides a presentation backend that writes every presented
// frame to disk as a BMP image.
//
// Frames are named frame-000000.bmp, frame-000001.bmp and so on, numbered per
// backend across all of its surfaces. The backend is meant for capturing
// output of headless runs.
//
// Importing the package registers it as "file", writing to the directory
// named by the SOFTWIN_FRAME_DIR environment variable (or the working
// directory when unset).
package file

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/bmp"

	"github.com/gogpu/softwin/internal/swizzle"
	"github.com/gogpu/softwin/surface"
)

// DirEnv names the environment variable read by the registered factory.
const DirEnv = "SOFTWIN_FRAME_DIR"

func init() {
	surface.Register("file", 5, func() (surface.Backend, error) {
		dir := os.Getenv(DirEnv)
		if dir == "" {
			dir = "."
		}
		return New(dir)
	}, nil)
}

// Backend writes presented frames into a directory.
type Backend struct {
	dir  string
	next int
}

// New creates a backend writing into dir, creating it if needed.
func New(dir string) (*Backend, error) {
	if dir == "" {
		return nil, errors.New("file: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("file: create frame directory: %w", err)
	}
	return &Backend{dir: dir}, nil
}

// Dir returns the output directory.
func (b *Backend) Dir() string { return b.dir }

// Written returns how many frames have been written.
func (b *Backend) Written() int { return b.next }

// FramePath returns the path frame n is written to.
func (b *Backend) FramePath(n int) string {
	return filepath.Join(b.dir, fmt.Sprintf("frame-%06d.bmp", n))
}

type fileContext struct {
	backend *Backend
	closed  bool
}

func (c *fileContext) Close() error {
	c.closed = true
	return nil
}

// NewContext implements surface.Backend.
func (b *Backend) NewContext(surface.Window) (surface.Context, error) {
	return &fileContext{backend: b}, nil
}

// NewSurface implements surface.Backend.
func (b *Backend) NewSurface(ctx surface.Context, _ surface.Window) (surface.Surface, error) {
	c, ok := ctx.(*fileContext)
	if !ok || c.backend != b {
		return nil, surface.ErrForeignContext
	}
	if c.closed {
		return nil, surface.ErrClosed
	}
	return &fileSurface{backend: b}, nil
}

type fileSurface struct {
	backend *Backend
	img     *image.RGBA
	pixels  []uint32
	closed  bool
}

func (s *fileSurface) Resize(width, height int) error {
	if s.closed {
		return surface.ErrClosed
	}
	if width < 1 || height < 1 {
		return surface.ErrInvalidSize
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	s.pixels = make([]uint32, width*height)
	return nil
}

func (s *fileSurface) Buffer() (surface.Buffer, error) {
	if s.closed {
		return nil, surface.ErrClosed
	}
	if s.pixels == nil {
		return nil, surface.ErrNotConfigured
	}
	return &fileBuffer{s: s}, nil
}

func (s *fileSurface) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatBGRA8Unorm
}

func (s *fileSurface) Close() error {
	s.closed = true
	return nil
}

type fileBuffer struct {
	s *fileSurface
}

func (b *fileBuffer) Pixels() []uint32 { return b.s.pixels }

func (b *fileBuffer) Present() (err error) {
	s := b.s
	if s.closed {
		return surface.ErrClosed
	}
	if err := swizzle.XRGBToRGBA(s.img.Pix, s.pixels); err != nil {
		return err
	}

	path := s.backend.FramePath(s.backend.next)
	f, err := os.Create(path) //nolint:gosec // path is built from the configured directory
	if err != nil {
		return fmt.Errorf("file: create frame: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("file: close frame: %w", cerr)
		}
	}()

	w := bufio.NewWriter(f)
	if err := bmp.Encode(w, s.img); err != nil {
		return fmt.Errorf("file: encode frame: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("file: write frame: %w", err)
	}
	s.backend.next++
	return nil
}
