package softwin

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/softwin/surface"
)

// fakeBackend implements surface.Backend with failure injection and a shared
// call log, so tests can check the order resources are created and released.
//
// Like a GL window, each window has one binding shared by all of its
// contexts: creating a context binds the window, and the binding is dropped
// when the window's last live context closes. Present fails on an unbound
// window.
type fakeBackend struct {
	log      []string
	contexts []*fakeContext
	surfaces []*fakeSurface

	live  map[surface.Window]int
	bound map[surface.Window]bool

	contextErr error
	surfaceErr error
	resizeErr  error
	bufferErr  error
	presentErr error
}

func (b *fakeBackend) record(format string, args ...any) {
	b.log = append(b.log, fmt.Sprintf(format, args...))
}

func (b *fakeBackend) NewContext(w surface.Window) (surface.Context, error) {
	if b.contextErr != nil {
		return nil, b.contextErr
	}
	c := &fakeContext{backend: b, id: len(b.contexts) + 1, window: w}
	b.contexts = append(b.contexts, c)
	if b.live == nil {
		b.live = make(map[surface.Window]int)
		b.bound = make(map[surface.Window]bool)
	}
	b.live[w]++
	b.bound[w] = true
	b.record("new context %d", c.id)
	return c, nil
}

func (b *fakeBackend) NewSurface(ctx surface.Context, w surface.Window) (surface.Surface, error) {
	if b.surfaceErr != nil {
		return nil, b.surfaceErr
	}
	c, ok := ctx.(*fakeContext)
	if !ok {
		return nil, surface.ErrForeignContext
	}
	s := &fakeSurface{backend: b, id: len(b.surfaces) + 1, ctx: c, window: w}
	b.surfaces = append(b.surfaces, s)
	b.record("new surface %d", s.id)
	return s, nil
}

func (b *fakeBackend) lastSurface() *fakeSurface {
	if len(b.surfaces) == 0 {
		return nil
	}
	return b.surfaces[len(b.surfaces)-1]
}

type fakeContext struct {
	backend *fakeBackend
	id      int
	window  surface.Window
	closed  bool
}

func (c *fakeContext) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	b := c.backend
	if b.live[c.window]--; b.live[c.window] == 0 {
		b.bound[c.window] = false
	}
	c.backend.record("close context %d", c.id)
	return nil
}

type fakeSurface struct {
	backend  *fakeBackend
	id       int
	ctx      *fakeContext
	window   surface.Window
	width    int
	height   int
	pixels   []uint32
	resizes  [][2]int
	presents int
	closed   bool
}

func (s *fakeSurface) Resize(width, height int) error {
	s.resizes = append(s.resizes, [2]int{width, height})
	if s.backend.resizeErr != nil {
		return s.backend.resizeErr
	}
	if width < 1 || height < 1 {
		return surface.ErrInvalidSize
	}
	s.width, s.height = width, height
	s.pixels = make([]uint32, width*height)
	s.backend.record("resize surface %d to %dx%d", s.id, width, height)
	return nil
}

func (s *fakeSurface) Buffer() (surface.Buffer, error) {
	if s.backend.bufferErr != nil {
		return nil, s.backend.bufferErr
	}
	if s.closed {
		return nil, surface.ErrClosed
	}
	return &fakeBuffer{s: s}, nil
}

func (s *fakeSurface) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatBGRA8Unorm
}

func (s *fakeSurface) Close() error {
	s.closed = true
	s.backend.record("close surface %d", s.id)
	return nil
}

type fakeBuffer struct {
	s *fakeSurface
}

func (b *fakeBuffer) Pixels() []uint32 { return b.s.pixels }

func (b *fakeBuffer) Present() error {
	if b.s.backend.presentErr != nil {
		return b.s.backend.presentErr
	}
	if !b.s.backend.bound[b.s.window] {
		return errWindowUnbound
	}
	b.s.presents++
	return nil
}

// fillRasterizer writes the same premultiplied RGBA8 value into every pixel,
// standing in for a scene that covers the whole frame with one color.
type fillRasterizer struct {
	color  [4]uint8
	err    error
	calls  int
	closed bool
}

func (f *fillRasterizer) Rasterize(s *Scene, dst *gg.Pixmap) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	data := dst.Data()
	for i := 0; i+3 < len(data); i += 4 {
		copy(data[i:i+4], f.color[:])
	}
	return nil
}

func (f *fillRasterizer) Close() error {
	f.closed = true
	return nil
}

// patternRasterizer writes a fixed sequence of pixels, repeated.
type patternRasterizer struct {
	pixels [][4]uint8
}

func (p *patternRasterizer) Rasterize(s *Scene, dst *gg.Pixmap) error {
	data := dst.Data()
	for i := 0; i*4 < len(data); i++ {
		copy(data[i*4:i*4+4], p.pixels[i%len(p.pixels)][:])
	}
	return nil
}

func (p *patternRasterizer) Close() error { return nil }

// sequenceClock returns the given offsets from a fixed origin, one per call,
// repeating the last one when exhausted.
type sequenceClock struct {
	origin  time.Time
	offsets []time.Duration
	calls   int
}

func newSequenceClock(offsets ...time.Duration) *sequenceClock {
	return &sequenceClock{origin: time.Unix(1_700_000_000, 0), offsets: offsets}
}

func (c *sequenceClock) Now() time.Time {
	i := min(c.calls, len(c.offsets)-1)
	c.calls++
	return c.origin.Add(c.offsets[i])
}

// recordingReporter collects reported frames.
type recordingReporter struct {
	frames []FrameStats
}

func (r *recordingReporter) ReportFrame(s FrameStats) {
	r.frames = append(r.frames, s)
}

var (
	errInjected      = errors.New("injected failure")
	errWindowUnbound = errors.New("window has no live context")
)
