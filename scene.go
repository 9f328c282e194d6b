package softwin

import (
	"github.com/gogpu/gg/scene"
)

// Scene is the per-frame draw command buffer handed to Render callbacks.
//
// It embeds a gg scene, so the full gg recording API (Fill, Stroke,
// PushLayer, PushClip, transforms) is available directly:
//
//	r.Render(func(s *softwin.Scene) {
//	    s.Fill(scene.FillNonZero, scene.IdentityAffine(),
//	        scene.SolidBrush(gg.RGBA{R: 1, A: 1}),
//	        scene.NewRectShape(0, 0, float32(s.Width()), float32(s.Height())))
//	})
//
// A Scene is bound to fixed dimensions. The renderer replaces it with a new
// one whenever the surface size changes, so callers must not keep a Scene
// beyond the callback it was passed to.
type Scene struct {
	*scene.Scene
	width  uint16
	height uint16
}

// NewScene creates an empty scene with the given dimensions.
func NewScene(width, height uint16) *Scene {
	return &Scene{
		Scene:  scene.NewScene(),
		width:  width,
		height: height,
	}
}

// Width returns the scene width in pixels.
func (s *Scene) Width() uint16 { return s.width }

// Height returns the scene height in pixels.
func (s *Scene) Height() uint16 { return s.height }

// Size returns width and height as a convenience.
func (s *Scene) Size() (width, height uint16) { return s.width, s.height }

// PixelCount returns width*height.
func (s *Scene) PixelCount() int { return int(s.width) * int(s.height) }

// Reset drops all recorded commands and keeps the dimensions.
func (s *Scene) Reset() {
	s.Scene.Reset()
}
