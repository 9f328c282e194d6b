package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/urfave/cli"

	"github.com/gogpu/softwin"
	"github.com/gogpu/softwin/internal/config"
	"github.com/gogpu/softwin/surface"
	"github.com/gogpu/softwin/surface/file"
	"github.com/gogpu/softwin/surface/glfwsurface"
)

// runStats describes a finished run.
type runStats struct {
	Backend  string
	Attempts int
	Dropped  uint64
	Elapsed  time.Duration
}

// Render the animated demo scene.
func runDemo(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	setupLogging(ctx, cfg.Level())

	name, err := resolveBackend(cfg.Backend)
	if err != nil {
		return err
	}
	if err := os.Setenv(file.DirEnv, cfg.OutDir); err != nil {
		return err
	}
	if err := configureShm(cfg.ShmPath); err != nil {
		return err
	}

	// The backend is resolved once so that it outlives suspend/resume
	// cycles; the file backend keeps numbering frames across them.
	backend, err := surface.NewBackendByName(name)
	if err != nil {
		return err
	}

	hist := softwin.NewFrameHistory(cfg.HistorySize)
	opts := []softwin.Option{
		softwin.WithBackend(backend),
		softwin.WithFrameReporter(softwin.MultiReporter(hist, softwin.LogReporter(logger))),
		softwin.WithSymmetricClamp(cfg.SymmetricClamp),
	}

	var stats runStats
	if name == windowedBackend {
		stats, err = runWindowed(cfg, opts)
	} else {
		stats, err = runHeadless(cfg, opts)
	}
	stats.Backend = name

	printSummary(os.Stdout, stats, hist)

	if errors.Is(err, softwin.ErrFatal) {
		logger.Error("rendering stopped", "phase", softwin.PhaseOf(err).String(), "err", err)
	}
	return err
}

// loadConfig reads the config file, if any, and applies command line
// overrides.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := ctx.GlobalString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	if ctx.IsSet("backend") {
		cfg.Backend = ctx.String("backend")
	}
	if ctx.IsSet("width") {
		cfg.Window.Width = ctx.Int("width")
	}
	if ctx.IsSet("height") {
		cfg.Window.Height = ctx.Int("height")
	}
	if ctx.IsSet("frames") {
		cfg.Frames = ctx.Int("frames")
	}
	if ctx.IsSet("out") {
		cfg.OutDir = ctx.String("out")
	}
	if ctx.IsSet("shm") {
		cfg.ShmPath = ctx.String("shm")
	}
	if ctx.Bool("symmetric-clamp") {
		cfg.SymmetricClamp = true
	}
	if ctx.Bool("no-vsync") {
		cfg.Window.VSync = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func closeRenderer(r *softwin.WindowRenderer) {
	if err := r.Close(); err != nil {
		logger.Warn("close renderer", "err", err)
	}
}

// runHeadless renders into a headless backend. Halfway through, the
// renderer is suspended and resumed at half the size.
func runHeadless(cfg *config.Config, opts []softwin.Option) (runStats, error) {
	var stats runStats

	r := softwin.New(surface.NewHeadlessWindow(cfg.Window.Title), opts...)
	defer closeRenderer(r)

	frames := cfg.Frames
	if frames == 0 {
		frames = config.DefaultHeadlessFrames
	}
	w, h := uint32(cfg.Window.Width), uint32(cfg.Window.Height)
	if err := r.Resume(w, h); err != nil {
		return stats, err
	}

	start := time.Now()
	for i := 0; i < frames; i++ {
		if i == frames/2 && i > 0 {
			r.Suspend()
			w, h = max(w/2, 1), max(h/2, 1)
			if err := r.Resume(w, h); err != nil {
				return stats, err
			}
		}
		if err := r.Render(drawScene(float64(i) / 60)); err != nil {
			return stats, fmt.Errorf("frame %d: %w", i, err)
		}
		stats.Attempts++
	}

	stats.Dropped = r.DroppedFrames()
	stats.Elapsed = time.Since(start)
	return stats, nil
}

// runWindowed renders into a GLFW window until it is closed. Minimizing
// the window suspends the renderer; restoring it resumes.
func runWindowed(cfg *config.Config, opts []softwin.Option) (runStats, error) {
	var stats runStats

	win, err := glfwsurface.OpenWindow(glfwsurface.WindowConfig{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		VSync:  cfg.Window.VSync,
	})
	if err != nil {
		return stats, err
	}
	defer win.Destroy()

	r := softwin.New(win, opts...)
	defer closeRenderer(r)

	// Callbacks run inside PollEvents/WaitEvents on this goroutine.
	var eventErr error
	keep := func(err error) {
		if err != nil && eventErr == nil {
			eventErr = err
		}
	}
	win.GLFW().SetIconifyCallback(func(_ *glfw.Window, iconified bool) {
		if iconified {
			r.Suspend()
			return
		}
		fw, fh := win.FramebufferSize()
		keep(r.Resume(uint32(fw), uint32(fh)))
	})
	win.GLFW().SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		keep(r.SetSize(uint32(width), uint32(height)))
	})

	if !win.Iconified() {
		fw, fh := win.FramebufferSize()
		if err := r.Resume(uint32(fw), uint32(fh)); err != nil {
			return stats, err
		}
	}

	start := time.Now()
	for !win.ShouldClose() && (cfg.Frames == 0 || stats.Attempts < cfg.Frames) {
		if !r.IsActive() {
			glfw.WaitEvents()
		} else {
			win.PollEvents()
		}
		if eventErr != nil {
			return stats, eventErr
		}
		if !r.IsActive() {
			continue
		}

		if err := r.Render(drawScene(time.Since(start).Seconds())); err != nil {
			return stats, err
		}
		stats.Attempts++
	}

	stats.Dropped = r.DroppedFrames()
	stats.Elapsed = time.Since(start)
	return stats, nil
}
