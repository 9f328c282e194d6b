// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package file

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/gogpu/softwin/surface"
)

func TestPresentWritesBMP(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	b, err := New(dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	w := surface.NewHeadlessWindow("file")
	ctx, err := b.NewContext(w)
	if err != nil {
		t.Fatal(err)
	}
	s, err := b.NewSurface(ctx, w)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Buffer(); !errors.Is(err, surface.ErrNotConfigured) {
		t.Errorf("Buffer() before Resize error = %v, want ErrNotConfigured", err)
	}
	if err := s.Resize(3, 2); err != nil {
		t.Fatal(err)
	}

	for frame := 0; frame < 2; frame++ {
		buf, err := s.Buffer()
		if err != nil {
			t.Fatalf("Buffer() error = %v", err)
		}
		px := buf.Pixels()
		for i := range px {
			px[i] = 0x000A141E
		}
		px[len(px)-1] = 0xFFFFFFFF
		if err := buf.Present(); err != nil {
			t.Fatalf("Present() error = %v", err)
		}
	}

	if b.Written() != 2 {
		t.Fatalf("Written() = %d, want 2", b.Written())
	}

	f, err := os.Open(b.FramePath(1))
	if err != nil {
		t.Fatalf("open frame: %v", err)
	}
	defer f.Close()

	img, err := bmp.Decode(f)
	if err != nil {
		t.Fatalf("bmp.Decode() error = %v", err)
	}
	if got := img.Bounds().Size(); got.X != 3 || got.Y != 2 {
		t.Errorf("frame size = %v, want 3x2", got)
	}
	r, g, bl, _ := img.At(0, 0).RGBA()
	if r>>8 != 0x0A || g>>8 != 0x14 || bl>>8 != 0x1E {
		t.Errorf("pixel (0,0) = %x,%x,%x, want 0a,14,1e", r>>8, g>>8, bl>>8)
	}
	r, g, bl, _ = img.At(2, 1).RGBA()
	if r>>8 != 0xFF || g>>8 != 0xFF || bl>>8 != 0xFF {
		t.Errorf("pixel (2,1) = %x,%x,%x, want white", r>>8, g>>8, bl>>8)
	}
}

func TestNewEmptyDir(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Error("New(\"\") should fail")
	}
}

func TestClosedSurface(t *testing.T) {
	b, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	w := surface.NewHeadlessWindow("file")
	ctx, _ := b.NewContext(w)
	s, _ := b.NewSurface(ctx, w)
	if err := s.Resize(1, 1); err != nil {
		t.Fatal(err)
	}
	_ = s.Close()

	if _, err := s.Buffer(); !errors.Is(err, surface.ErrClosed) {
		t.Errorf("Buffer() after Close error = %v, want ErrClosed", err)
	}
	if err := s.Resize(0, 1); !errors.Is(err, surface.ErrClosed) {
		t.Errorf("Resize() after Close error = %v, want ErrClosed", err)
	}
}

func TestInvalidSize(t *testing.T) {
	b, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	w := surface.NewHeadlessWindow("file")
	ctx, _ := b.NewContext(w)
	s, _ := b.NewSurface(ctx, w)
	if err := s.Resize(0, 0); !errors.Is(err, surface.ErrInvalidSize) {
		t.Errorf("Resize(0, 0) error = %v, want ErrInvalidSize", err)
	}
}
