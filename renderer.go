package softwin

import (
	"errors"
	"log/slog"

	"github.com/gogpu/gg"

	"github.com/gogpu/softwin/internal/swizzle"
	"github.com/gogpu/softwin/surface"
)

// activeState holds the presentation resources of a resumed renderer.
// The context and surface are created together and released together,
// surface first.
type activeState struct {
	ctx     surface.Context
	surface surface.Surface
	width   int
	height  int
}

func (a *activeState) release() error {
	return errors.Join(a.surface.Close(), a.ctx.Close())
}

// WindowRenderer renders scenes into a platform window on the CPU.
//
// A renderer starts suspended. Resume binds a presentation surface to the
// window, Suspend releases it again, and Render runs one frame while the
// renderer is active:
//
//	r := softwin.New(win)
//	defer r.Close()
//
//	if err := r.Resume(800, 600); err != nil {
//	    return err
//	}
//	err := r.Render(func(s *softwin.Scene) {
//	    // record draw commands
//	})
//
// The window handle is shared: the renderer keeps it across any number of
// suspend/resume cycles and never closes it.
//
// WindowRenderer is NOT safe for concurrent use. Drive it from the goroutine
// running the window's event loop.
type WindowRenderer struct {
	// active must be released before the window handle is let go.
	active  *activeState
	window  surface.Window
	scene   *Scene
	opts    options
	last    FrameStats
	dropped uint64
}

// New creates a suspended renderer for window. It performs no I/O.
//
// New panics if window is nil.
func New(window surface.Window, opts ...Option) *WindowRenderer {
	if window == nil {
		panic("softwin: nil window")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.rasterizer == nil {
		o.rasterizer = NewSceneRasterizer()
	}

	return &WindowRenderer{
		window: window,
		scene:  NewScene(0, 0),
		opts:   o,
	}
}

// Window returns the window the renderer is bound to.
func (r *WindowRenderer) Window() surface.Window { return r.window }

// Scene returns the current scene buffer. It is replaced on every size
// change.
func (r *WindowRenderer) Scene() *Scene { return r.scene }

// IsActive reports whether the renderer holds a presentation surface.
func (r *WindowRenderer) IsActive() bool { return r.active != nil }

// SurfaceSize returns the dimensions of the active surface, or 0, 0 when
// suspended.
func (r *WindowRenderer) SurfaceSize() (width, height int) {
	if r.active == nil {
		return 0, 0
	}
	return r.active.width, r.active.height
}

// Stats returns the timings of the last rendered frame.
func (r *WindowRenderer) Stats() FrameStats { return r.last }

// DroppedFrames returns how many frames were skipped because the surface
// buffer could not be acquired.
func (r *WindowRenderer) DroppedFrames() uint64 { return r.dropped }

func (r *WindowRenderer) logger() *slog.Logger {
	if r.opts.logger != nil {
		return r.opts.logger
	}
	return Logger()
}

func (r *WindowRenderer) backend() (surface.Backend, error) {
	switch {
	case r.opts.backend != nil:
		return r.opts.backend, nil
	case r.opts.backendName != "":
		return surface.NewBackendByName(r.opts.backendName)
	default:
		return surface.NewBackend()
	}
}

// Resume creates a presentation context and surface for the window and
// sizes them to width x height.
//
// Resume is valid in either state. When the renderer is already active, the
// new resources are fully built before the old ones are released. Any
// failure is a *FatalError; partially built resources are released and the
// renderer is left exactly as it was.
func (r *WindowRenderer) Resume(width, height uint32) error {
	b, err := r.backend()
	if err != nil {
		return fatal(PhaseCreateContext, err)
	}

	ctx, err := b.NewContext(r.window)
	if err != nil {
		return fatal(PhaseCreateContext, err)
	}
	surf, err := b.NewSurface(ctx, r.window)
	if err != nil {
		r.warnRelease(ctx.Close())
		return fatal(PhaseCreateSurface, err)
	}

	next := &activeState{ctx: ctx, surface: surf}
	if err := r.resizeSurface(next, width, height); err != nil {
		r.warnRelease(next.release())
		return err
	}

	if r.active != nil {
		r.warnRelease(r.active.release())
	}
	r.active = next
	r.scene = r.newScene(width, height)

	r.logger().Info("softwin: resumed",
		"window", r.window.ID(),
		"width", width,
		"height", height,
		"format", surf.Format())
	return nil
}

// Suspend releases the presentation surface and context. The window handle
// is kept for a later Resume. Suspend is idempotent.
func (r *WindowRenderer) Suspend() {
	if r.active == nil {
		return
	}
	r.warnRelease(r.active.release())
	r.active = nil
	r.logger().Info("softwin: suspended", "window", r.window.ID())
}

// SetSize resizes the active surface to width x height and replaces the
// scene with an empty one of the same size. It does nothing while
// suspended.
//
// Zero surface dimensions are raised to 1; the scene keeps the requested
// dimensions, truncated to 16 bits, unless WithSymmetricClamp is set.
// A resize failure is a *FatalError and leaves the scene untouched.
func (r *WindowRenderer) SetSize(width, height uint32) error {
	if r.active == nil {
		return nil
	}
	if err := r.resizeSurface(r.active, width, height); err != nil {
		return err
	}
	r.scene = r.newScene(width, height)
	return nil
}

func (r *WindowRenderer) resizeSurface(a *activeState, width, height uint32) error {
	w, h := int(max(width, 1)), int(max(height, 1))
	if err := a.surface.Resize(w, h); err != nil {
		return fatal(PhaseResize, err)
	}
	a.width, a.height = w, h
	return nil
}

func (r *WindowRenderer) newScene(width, height uint32) *Scene {
	if r.opts.symmetricClamp {
		width, height = max(width, 1), max(height, 1)
	}
	return NewScene(uint16(width), uint16(height))
}

// Render runs one frame: drawFn records commands into the scene, the scene
// is rasterized, converted to the surface format and presented.
//
// Render does nothing while suspended. When the surface cannot hand out a
// buffer the frame is dropped silently and nil is returned. Rasterization,
// conversion and presentation failures are *FatalError values.
//
// drawFn must not keep the scene after it returns, and must not call Render.
func (r *WindowRenderer) Render(drawFn func(*Scene)) error {
	if r.active == nil {
		return nil
	}
	buf, err := r.active.surface.Buffer()
	if err != nil {
		r.dropped++
		r.logger().Debug("softwin: frame dropped", "window", r.window.ID(), "err", err)
		return nil
	}

	clock := r.opts.clock
	start := clock.Now()

	sc := r.scene
	pixmap := gg.NewPixmap(int(sc.Width()), int(sc.Height()))
	if drawFn != nil {
		drawFn(sc)
	}
	commandAt := clock.Now().Sub(start)

	if err := r.opts.rasterizer.Rasterize(sc, pixmap); err != nil {
		return fatal(PhaseRasterize, err)
	}
	renderAt := clock.Now().Sub(start)

	if err := swizzle.PremulToXRGB(buf.Pixels(), pixmap.Data()); err != nil {
		return fatal(PhaseConvert, err)
	}
	convertAt := clock.Now().Sub(start)

	if err := buf.Present(); err != nil {
		return fatal(PhasePresent, err)
	}
	presentAt := clock.Now().Sub(start)

	sc.Reset()

	r.last = newFrameStats(sc.Width(), sc.Height(), commandAt, renderAt, convertAt, presentAt)
	r.reporter().ReportFrame(r.last)
	return nil
}

func (r *WindowRenderer) reporter() FrameReporter {
	if r.opts.reporter != nil {
		return r.opts.reporter
	}
	return LogReporter(r.logger())
}

// Close releases the presentation resources and the rasterizer. The window
// handle is left to its owner. The renderer must not be used after Close.
func (r *WindowRenderer) Close() error {
	var errs []error
	if r.active != nil {
		errs = append(errs, r.active.release())
		r.active = nil
	}
	errs = append(errs, r.opts.rasterizer.Close())
	return errors.Join(errs...)
}

func (r *WindowRenderer) warnRelease(err error) {
	if err != nil {
		r.logger().Warn("softwin: release presentation resources", "window", r.window.ID(), "err", err)
	}
}
