package softwin

import (
	"log/slog"
	"sync/atomic"
)

// silent is in effect until SetLogger installs a logger, and again after
// SetLogger(nil).
var silent = slog.New(slog.DiscardHandler)

var pkgLogger atomic.Pointer[slog.Logger]

// SetLogger routes the log output of softwin and its surface backends to l.
// Passing nil silences them again, which is the default.
//
// Levels in use:
//   - [slog.LevelDebug]: per-frame timings, dropped frames
//   - [slog.LevelInfo]: resume, suspend, windows opened
//   - [slog.LevelWarn]: failures releasing a surface or context
//
// Renderers built with WithLogger keep their own logger. SetLogger may be
// called while other goroutines are logging.
//
//	softwin.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	pkgLogger.Store(l)
}

// Logger returns the logger installed by SetLogger, or a logger that
// discards everything.
func Logger() *slog.Logger {
	if l := pkgLogger.Load(); l != nil {
		return l
	}
	return silent
}
