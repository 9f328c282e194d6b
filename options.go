package softwin

import (
	"log/slog"
	"time"

	"github.com/gogpu/softwin/surface"
)

// Option configures a WindowRenderer during creation.
//
// Example:
//
//	// Best available backend, gg scene rasterizer
//	r := softwin.New(win)
//
//	// Explicit backend and a frame-time history
//	hist := softwin.NewFrameHistory(120)
//	r := softwin.New(win,
//	    softwin.WithBackend(memory.New()),
//	    softwin.WithFrameReporter(hist))
type Option func(*options)

// Clock supplies the timestamps used for frame timings.
// Implementations must be monotonic.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// options holds optional configuration for WindowRenderer creation.
type options struct {
	backend        surface.Backend
	backendName    string
	rasterizer     Rasterizer
	reporter       FrameReporter
	clock          Clock
	logger         *slog.Logger
	symmetricClamp bool
}

// defaultOptions returns the default renderer options.
func defaultOptions() options {
	return options{
		backend:    nil, // Resolved from the surface registry on Resume
		rasterizer: nil, // Will be set to the gg scene rasterizer if nil
		reporter:   nil, // Will log frames at debug level if nil
		clock:      systemClock{},
	}
}

// WithBackend sets the presentation backend.
// Without it, the highest priority backend in the surface registry is used.
func WithBackend(b surface.Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithBackendName selects a registered presentation backend by name.
// The lookup happens on every Resume. WithBackend takes precedence.
func WithBackendName(name string) Option {
	return func(o *options) {
		o.backendName = name
	}
}

// WithRasterizer sets the rasterizer that turns scenes into pixels.
// Use this to inject custom or test rasterizers.
func WithRasterizer(r Rasterizer) Option {
	return func(o *options) {
		o.rasterizer = r
	}
}

// WithFrameReporter sets the destination of per-frame timings.
// Combine several with MultiReporter.
func WithFrameReporter(r FrameReporter) Option {
	return func(o *options) {
		o.reporter = r
	}
}

// WithClock sets the clock frame timings are measured with.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger sets a logger for this renderer only, overriding Logger().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithSymmetricClamp makes SetSize clamp the scene dimensions to at least
// 1x1, like the surface dimensions.
//
// By default only the surface is clamped: SetSize(0, 0) yields a 1x1 surface
// and a 0x0 scene, and rendering such a frame fails with a PhaseConvert
// error because the pixel counts differ.
func WithSymmetricClamp(enabled bool) Option {
	return func(o *options) {
		o.symmetricClamp = enabled
	}
}
