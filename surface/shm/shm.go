// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build unix

// Package shm provides a presentation backend whose buffers live in a
// memory-mapped file, so another process can follow the frames as they are
// presented.
//
// The file starts with a 16-byte little-endian header followed by
// width*height packed XRGB words:
//
//	offset 0   magic "SWFB"
//	offset 4   width
//	offset 8   height
//	offset 12  sequence number of the last presented frame
//
// Readers poll the sequence number and copy the pixels when it changes.
//
// Importing the package registers it as "shm", mapping the file named by the
// SOFTWIN_SHM_PATH environment variable (a file in the temp directory when
// unset).
package shm

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unsafe"

	"github.com/gogpu/gputypes"
	"golang.org/x/sys/unix"

	"github.com/gogpu/softwin/surface"
)

// HeaderSize is the size of the frame header in bytes.
const HeaderSize = 16

// Magic identifies a softwin framebuffer file.
const Magic = "SWFB"

// PathEnv names the environment variable read by the registered factory.
const PathEnv = "SOFTWIN_SHM_PATH"

func init() {
	surface.Register("shm", 20, func() (surface.Backend, error) {
		path := os.Getenv(PathEnv)
		if path == "" {
			path = filepath.Join(os.TempDir(), fmt.Sprintf("softwin-%d.fb", os.Getpid()))
		}
		return New(path), nil
	}, nil)
}

// ErrBadHeader is returned by ReadFrame for files that are not framebuffers.
var ErrBadHeader = errors.New("shm: bad framebuffer header")

// Backend maps framebuffer files.
type Backend struct {
	path string
}

// New creates a backend mapping path. The file is created on the first
// Resize and truncated as the surface changes size.
func New(path string) *Backend {
	return &Backend{path: path}
}

// Path returns the framebuffer file path.
func (b *Backend) Path() string { return b.path }

type shmContext struct {
	backend *Backend
	file    *os.File
}

// NewContext implements surface.Backend. It opens (or creates) the file.
func (b *Backend) NewContext(surface.Window) (surface.Context, error) {
	f, err := os.OpenFile(b.path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("shm: open framebuffer: %w", err)
	}
	return &shmContext{backend: b, file: f}, nil
}

func (c *shmContext) Close() error {
	if c.file == nil {
		return nil
	}
	err := c.file.Close()
	c.file = nil
	return err
}

// NewSurface implements surface.Backend.
func (b *Backend) NewSurface(ctx surface.Context, _ surface.Window) (surface.Surface, error) {
	c, ok := ctx.(*shmContext)
	if !ok || c.backend != b {
		return nil, surface.ErrForeignContext
	}
	if c.file == nil {
		return nil, surface.ErrClosed
	}
	return &shmSurface{ctx: c}, nil
}

type shmSurface struct {
	ctx    *shmContext
	data   []byte
	pixels []uint32
	seq    uint32
	closed bool
}

func (s *shmSurface) Resize(width, height int) error {
	if s.closed || s.ctx.file == nil {
		return surface.ErrClosed
	}
	if width < 1 || height < 1 {
		return surface.ErrInvalidSize
	}
	if err := s.unmap(); err != nil {
		return err
	}

	size := HeaderSize + width*height*4
	if err := s.ctx.file.Truncate(int64(size)); err != nil {
		return fmt.Errorf("shm: truncate framebuffer: %w", err)
	}
	data, err := unix.Mmap(int(s.ctx.file.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return fmt.Errorf("shm: map framebuffer: %w", err)
	}

	copy(data[0:4], Magic)
	binary.LittleEndian.PutUint32(data[4:8], uint32(width))
	binary.LittleEndian.PutUint32(data[8:12], uint32(height))
	binary.LittleEndian.PutUint32(data[12:16], s.seq)

	s.data = data
	s.pixels = unsafe.Slice((*uint32)(unsafe.Pointer(&data[HeaderSize])), width*height)
	return nil
}

func (s *shmSurface) Buffer() (surface.Buffer, error) {
	if s.closed {
		return nil, surface.ErrClosed
	}
	if s.data == nil {
		return nil, surface.ErrNotConfigured
	}
	return &shmBuffer{s: s}, nil
}

func (s *shmSurface) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatBGRA8Unorm
}

func (s *shmSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.unmap()
}

func (s *shmSurface) unmap() error {
	if s.data == nil {
		return nil
	}
	data := s.data
	s.data, s.pixels = nil, nil
	if err := unix.Munmap(data); err != nil {
		return fmt.Errorf("shm: unmap framebuffer: %w", err)
	}
	return nil
}

type shmBuffer struct {
	s *shmSurface
}

// Pixels aliases the mapped file. Words are stored in host byte order,
// which is little-endian on every platform the backend supports.
func (b *shmBuffer) Pixels() []uint32 { return b.s.pixels }

func (b *shmBuffer) Present() error {
	s := b.s
	if s.closed || s.data == nil {
		return surface.ErrClosed
	}
	s.seq++
	binary.LittleEndian.PutUint32(s.data[12:16], s.seq)
	if err := unix.Msync(s.data, unix.MS_ASYNC); err != nil {
		return fmt.Errorf("shm: sync framebuffer: %w", err)
	}
	return nil
}

// Frame is a framebuffer snapshot read back from a file.
type Frame struct {
	Width    int
	Height   int
	Sequence uint32
	Pixels   []uint32
}

// ReadFrame reads the current contents of a framebuffer file.
func ReadFrame(path string) (*Frame, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // path is caller-provided intentionally
	if err != nil {
		return nil, err
	}
	if len(raw) < HeaderSize || string(raw[0:4]) != Magic {
		return nil, ErrBadHeader
	}
	f := &Frame{
		Width:    int(binary.LittleEndian.Uint32(raw[4:8])),
		Height:   int(binary.LittleEndian.Uint32(raw[8:12])),
		Sequence: binary.LittleEndian.Uint32(raw[12:16]),
	}
	n := f.Width * f.Height
	if len(raw) < HeaderSize+n*4 {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d", ErrBadHeader, len(raw), f.Width, f.Height)
	}
	f.Pixels = make([]uint32, n)
	for i := range f.Pixels {
		f.Pixels[i] = binary.LittleEndian.Uint32(raw[HeaderSize+i*4:])
	}
	return f, nil
}
