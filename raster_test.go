package softwin

import (
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/scene"
)

func TestSceneRasterizerEmptyScene(t *testing.T) {
	r := NewSceneRasterizer()
	defer r.Close()

	if err := r.Rasterize(NewScene(0, 0), gg.NewPixmap(1, 1)); err != nil {
		t.Errorf("Rasterize() on a 0x0 scene error = %v, want nil", err)
	}
	if r.renderer != nil {
		t.Error("0x0 scene must not create a renderer")
	}
}

func TestSceneRasterizerSizeMismatch(t *testing.T) {
	r := NewSceneRasterizer()
	defer r.Close()

	if err := r.Rasterize(NewScene(8, 8), gg.NewPixmap(4, 4)); err == nil {
		t.Error("Rasterize() should fail when pixmap and scene sizes differ")
	}
}

func TestSceneRasterizerResize(t *testing.T) {
	r := NewSceneRasterizer()
	defer r.Close()

	for _, size := range [][2]int{{16, 16}, {32, 8}, {32, 8}, {5, 40}} {
		s := NewScene(uint16(size[0]), uint16(size[1]))
		s.Fill(scene.FillNonZero, scene.IdentityAffine(),
			scene.SolidBrush(gg.RGBA{B: 1, A: 1}),
			scene.NewRectShape(0, 0, float32(size[0]), float32(size[1])))

		dst := gg.NewPixmap(size[0], size[1])
		if err := r.Rasterize(s, dst); err != nil {
			t.Fatalf("Rasterize(%dx%d) error = %v", size[0], size[1], err)
		}
		if r.width != size[0] || r.height != size[1] {
			t.Errorf("renderer size = %dx%d, want %dx%d", r.width, r.height, size[0], size[1])
		}
	}
}

func TestSceneRasterizerDoesNotRepeatPreviousFrame(t *testing.T) {
	r := NewSceneRasterizer()
	defer r.Close()

	s := NewScene(64, 32)
	s.Fill(scene.FillNonZero, scene.IdentityAffine(),
		scene.SolidBrush(gg.RGBA{R: 1, A: 1}),
		scene.NewRectShape(0, 0, 64, 32))
	if err := r.Rasterize(s, gg.NewPixmap(64, 32)); err != nil {
		t.Fatal(err)
	}

	s.Reset()
	dst := gg.NewPixmap(64, 32)
	if err := r.Rasterize(s, dst); err != nil {
		t.Fatalf("Rasterize() of the reset scene error = %v", err)
	}
	for i, b := range dst.Data() {
		if b != 0 {
			t.Fatalf("byte %d of the empty frame = %d, want 0", i, b)
		}
	}
}

func TestSceneRasterizerReusableAfterClose(t *testing.T) {
	r := NewSceneRasterizer()

	if err := r.Rasterize(NewScene(4, 4), gg.NewPixmap(4, 4)); err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if r.renderer != nil {
		t.Error("Close must drop the renderer")
	}
	if err := r.Rasterize(NewScene(4, 4), gg.NewPixmap(4, 4)); err != nil {
		t.Errorf("Rasterize() after Close error = %v", err)
	}
	_ = r.Close()
}

func TestScene(t *testing.T) {
	s := NewScene(300, 200)

	if w, h := s.Size(); w != 300 || h != 200 {
		t.Errorf("Size() = %dx%d, want 300x200", w, h)
	}
	if s.PixelCount() != 60000 {
		t.Errorf("PixelCount() = %d, want 60000", s.PixelCount())
	}
	if !s.IsEmpty() {
		t.Error("new scene should be empty")
	}

	s.Fill(scene.FillNonZero, scene.IdentityAffine(),
		scene.SolidBrush(gg.RGBA{R: 1, A: 1}), scene.NewCircleShape(10, 10, 5))
	if s.IsEmpty() {
		t.Error("scene should have content after Fill")
	}

	s.Reset()
	if !s.IsEmpty() {
		t.Error("scene should be empty after Reset")
	}
	if w, h := s.Size(); w != 300 || h != 200 {
		t.Errorf("Reset changed size to %dx%d", w, h)
	}
}

func TestScenePixelCountNoOverflow(t *testing.T) {
	s := NewScene(65535, 65535)
	if got, want := s.PixelCount(), 65535*65535; got != want {
		t.Errorf("PixelCount() = %d, want %d", got, want)
	}
}
