// Package softwin renders gg scenes into platform windows on the CPU.
//
// # Overview
//
// A WindowRenderer owns the presentation surface of one window. It follows
// the window through its life: the surface is created on Resume, resized with
// SetSize, torn down on Suspend, and recreated on the next Resume, while the
// window handle itself is kept throughout.
//
// Each call to Render runs a full frame:
//
//  1. acquire the surface's presentable buffer (frames are dropped silently
//     when the surface is not ready)
//  2. let the caller record draw commands into the Scene
//  3. rasterize the scene into a premultiplied RGBA8 gg.Pixmap
//  4. convert the pixmap into packed 0x00RRGGBB words
//  5. present the buffer and reset the scene
//  6. report the timing breakdown to a FrameReporter
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/gg"
//	    "github.com/gogpu/gg/scene"
//	    "github.com/gogpu/softwin"
//	    "github.com/gogpu/softwin/surface"
//	    "github.com/gogpu/softwin/surface/memory"
//	)
//
//	r := softwin.New(surface.NewHeadlessWindow("demo"), softwin.WithBackend(memory.New()))
//	defer r.Close()
//
//	if err := r.Resume(800, 600); err != nil {
//	    log.Fatal(err)
//	}
//	err := r.Render(func(s *softwin.Scene) {
//	    s.Fill(scene.FillNonZero, scene.IdentityAffine(),
//	        scene.SolidBrush(gg.RGBA{R: 0.2, G: 0.4, B: 0.8, A: 1}),
//	        scene.NewCircleShape(400, 300, 120))
//	})
//
// # Transparency
//
// Pixels with zero alpha are presented as 0xFFFFFFFF (opaque white). Any
// other pixel keeps its premultiplied color channels and drops alpha; there
// is no blending against a background.
//
// # Errors
//
// Failures the renderer cannot recover from (context or surface creation,
// resize, rasterization, conversion, present) are returned as *FatalError,
// whose Phase tells which step failed. They all match ErrFatal.
//
// # Logging
//
// softwin is silent by default. See SetLogger.
package softwin
