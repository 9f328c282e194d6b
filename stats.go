package softwin

import (
	"log/slog"
	"sync"
	"time"
)

// FrameStats is the timing breakdown of one rendered frame.
type FrameStats struct {
	// Scene dimensions the frame was rendered at.
	Width  uint16
	Height uint16

	// Command is the time spent in the draw callback.
	Command time.Duration

	// Render is the time spent rasterizing the scene.
	Render time.Duration

	// Convert is the time spent converting pixels to the surface format.
	Convert time.Duration

	// Present is the time spent handing the frame to the compositor.
	Present time.Duration

	// Total is the sum of all phases.
	Total time.Duration

	// Millis is the same breakdown in whole milliseconds.
	Millis FrameMillis
}

// FrameMillis is a frame breakdown in whole milliseconds.
//
// Each phase is the difference between truncated cumulative marks, so the
// phases always add up to Total exactly and are never negative.
type FrameMillis struct {
	Total   int64
	Command int64
	Render  int64
	Convert int64
	Present int64
}

// newFrameStats builds stats from cumulative elapsed times measured from
// the start of the frame.
func newFrameStats(width, height uint16, command, render, convert, present time.Duration) FrameStats {
	cm := command.Milliseconds()
	rm := render.Milliseconds()
	vm := convert.Milliseconds()
	pm := present.Milliseconds()
	return FrameStats{
		Width:   width,
		Height:  height,
		Command: command,
		Render:  render - command,
		Convert: convert - render,
		Present: present - convert,
		Total:   present,
		Millis: FrameMillis{
			Total:   pm,
			Command: cm,
			Render:  rm - cm,
			Convert: vm - rm,
			Present: pm - vm,
		},
	}
}

// FrameReporter receives the timings of every rendered frame.
// Dropped frames are not reported.
type FrameReporter interface {
	ReportFrame(FrameStats)
}

// FrameReporterFunc adapts a function to FrameReporter.
type FrameReporterFunc func(FrameStats)

// ReportFrame implements FrameReporter.
func (f FrameReporterFunc) ReportFrame(s FrameStats) { f(s) }

type multiReporter []FrameReporter

func (m multiReporter) ReportFrame(s FrameStats) {
	for _, r := range m {
		r.ReportFrame(s)
	}
}

// MultiReporter fans frames out to several reporters, in order.
// Nil reporters are skipped.
func MultiReporter(reporters ...FrameReporter) FrameReporter {
	out := make(multiReporter, 0, len(reporters))
	for _, r := range reporters {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

type logReporter struct {
	logger *slog.Logger
}

// LogReporter logs every frame at debug level.
func LogReporter(l *slog.Logger) FrameReporter {
	return logReporter{logger: l}
}

func (r logReporter) ReportFrame(s FrameStats) {
	r.logger.Debug("softwin: frame",
		"total_ms", s.Millis.Total,
		"cmd_ms", s.Millis.Command,
		"render_ms", s.Millis.Render,
		"convert_ms", s.Millis.Convert,
		"present_ms", s.Millis.Present)
}

// FrameHistory keeps the timings of the most recent frames.
//
// FrameHistory is safe for concurrent use, so a stats overlay or a
// monitoring goroutine can read it while the render loop reports into it.
type FrameHistory struct {
	mu     sync.Mutex
	frames []FrameStats
	next   int
	full   bool
	total  uint64
}

// NewFrameHistory creates a history holding up to capacity frames.
// A capacity below 1 is raised to 1.
func NewFrameHistory(capacity int) *FrameHistory {
	if capacity < 1 {
		capacity = 1
	}
	return &FrameHistory{frames: make([]FrameStats, capacity)}
}

// ReportFrame implements FrameReporter.
func (h *FrameHistory) ReportFrame(s FrameStats) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.frames[h.next] = s
	h.next++
	if h.next == len(h.frames) {
		h.next = 0
		h.full = true
	}
	h.total++
}

// Frames returns the retained frames, oldest first.
func (h *FrameHistory) Frames() []FrameStats {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.full {
		out := make([]FrameStats, h.next)
		copy(out, h.frames[:h.next])
		return out
	}
	out := make([]FrameStats, 0, len(h.frames))
	out = append(out, h.frames[h.next:]...)
	out = append(out, h.frames[:h.next]...)
	return out
}

// Total returns how many frames have ever been reported.
func (h *FrameHistory) Total() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.total
}

// PhaseSummary aggregates one phase over the retained frames.
type PhaseSummary struct {
	Min time.Duration
	Avg time.Duration
	Max time.Duration
}

// Summary aggregates every phase over the retained frames.
type Summary struct {
	Frames  int
	Command PhaseSummary
	Render  PhaseSummary
	Convert PhaseSummary
	Present PhaseSummary
	Total   PhaseSummary
}

// Summary returns min/avg/max per phase over the retained frames.
// The zero Summary is returned when no frame has been reported.
func (h *FrameHistory) Summary() Summary {
	frames := h.Frames()
	if len(frames) == 0 {
		return Summary{}
	}

	pick := func(get func(FrameStats) time.Duration) PhaseSummary {
		ps := PhaseSummary{Min: get(frames[0]), Max: get(frames[0])}
		var sum time.Duration
		for _, f := range frames {
			d := get(f)
			ps.Min = min(ps.Min, d)
			ps.Max = max(ps.Max, d)
			sum += d
		}
		ps.Avg = sum / time.Duration(len(frames))
		return ps
	}

	return Summary{
		Frames:  len(frames),
		Command: pick(func(f FrameStats) time.Duration { return f.Command }),
		Render:  pick(func(f FrameStats) time.Duration { return f.Render }),
		Convert: pick(func(f FrameStats) time.Duration { return f.Convert }),
		Present: pick(func(f FrameStats) time.Duration { return f.Present }),
		Total:   pick(func(f FrameStats) time.Duration { return f.Total }),
	}
}
