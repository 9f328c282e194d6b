package softwin

import (
	"fmt"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/scene"
)

// Rasterizer turns the commands recorded in a Scene into premultiplied
// RGBA8 pixels.
//
// Rasterize is called once per frame with a freshly allocated, transparent
// pixmap of exactly the scene's dimensions. It must not retain s or dst.
type Rasterizer interface {
	Rasterize(s *Scene, dst *gg.Pixmap) error

	// Close releases resources held between frames.
	Close() error
}

// SceneRasterizer rasterizes scenes with the gg tile renderer.
//
// The underlying renderer keeps a worker pool and a layer cache across
// frames. It is created on first use and resized whenever the scene
// dimensions change.
type SceneRasterizer struct {
	renderer *scene.Renderer
	opts     []scene.RendererOption
	width    int
	height   int
}

// NewSceneRasterizer creates a rasterizer backed by gg's scene renderer.
// The options are passed to scene.NewRenderer.
func NewSceneRasterizer(opts ...scene.RendererOption) *SceneRasterizer {
	return &SceneRasterizer{opts: opts}
}

// Rasterize implements Rasterizer. Scenes without commands leave dst
// untouched: the tile renderer keeps the tiles of its last frame and would
// composite them again.
func (r *SceneRasterizer) Rasterize(s *Scene, dst *gg.Pixmap) error {
	w, h := int(s.Width()), int(s.Height())
	if w == 0 || h == 0 {
		return nil
	}
	if dst.Width() != w || dst.Height() != h {
		return fmt.Errorf("softwin: pixmap is %dx%d, scene is %dx%d", dst.Width(), dst.Height(), w, h)
	}
	if s.IsEmpty() {
		return nil
	}

	switch {
	case r.renderer == nil:
		r.renderer = scene.NewRenderer(w, h, r.opts...)
		if r.renderer == nil {
			return fmt.Errorf("softwin: cannot create %dx%d scene renderer", w, h)
		}
	case r.width != w || r.height != h:
		r.renderer.Resize(w, h)
	}
	r.width, r.height = w, h

	return r.renderer.Render(dst, s.Scene)
}

// Close implements Rasterizer. The rasterizer can be used again afterwards;
// a new renderer is created on the next frame.
func (r *SceneRasterizer) Close() error {
	if r.renderer != nil {
		r.renderer.Close()
		r.renderer = nil
	}
	r.width, r.height = 0, 0
	return nil
}
