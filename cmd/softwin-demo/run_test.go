package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gogpu/softwin"
	"github.com/gogpu/softwin/internal/config"
	"github.com/gogpu/softwin/internal/swizzle"
	"github.com/gogpu/softwin/surface"
	"github.com/gogpu/softwin/surface/memory"
)

func TestRunHeadless(t *testing.T) {
	cfg := config.Default()
	cfg.Window.Width, cfg.Window.Height = 64, 48
	cfg.Frames = 6

	backend := memory.New()
	hist := softwin.NewFrameHistory(16)
	stats, err := runHeadless(cfg, []softwin.Option{
		softwin.WithBackend(backend),
		softwin.WithFrameReporter(hist),
	})
	if err != nil {
		t.Fatalf("runHeadless() error = %v", err)
	}

	if stats.Attempts != 6 || hist.Total() != 6 {
		t.Errorf("attempts = %d, reported = %d, want 6 each", stats.Attempts, hist.Total())
	}

	surfaces := backend.Surfaces()
	if len(surfaces) != 2 {
		t.Fatalf("created %d surfaces, want 2 (one per resume)", len(surfaces))
	}
	if !surfaces[0].Closed() {
		t.Error("first surface should be closed by the mid-run suspend")
	}
	if w, h := surfaces[1].Size(); w != 32 || h != 24 {
		t.Errorf("second surface is %dx%d, want 32x24", w, h)
	}
	if surfaces[0].Presents() != 3 || surfaces[1].Presents() != 3 {
		t.Errorf("presents = %d, %d, want 3, 3", surfaces[0].Presents(), surfaces[1].Presents())
	}
}

func TestDrawSceneLeavesLeftQuarterTransparent(t *testing.T) {
	backend := memory.New()
	r := softwin.New(surface.NewHeadlessWindow("draw"), softwin.WithBackend(backend))
	defer r.Close()

	if err := r.Resume(80, 40); err != nil {
		t.Fatal(err)
	}
	if err := r.Render(drawScene(0)); err != nil {
		t.Fatal(err)
	}

	frame := backend.Last().LastFrame()
	if got := frame[20*80+5]; got != swizzle.Transparent {
		t.Errorf("left quarter pixel = %#08x, want transparent sentinel", got)
	}
	if got := frame[2*80+60]; got>>24 != 0 || got == swizzle.Transparent {
		t.Errorf("background pixel = %#08x, want an opaque XRGB value", got)
	}
}

func TestDrawSceneEmpty(t *testing.T) {
	s := softwin.NewScene(0, 0)
	drawScene(1)(s)
	if !s.IsEmpty() {
		t.Error("nothing should be drawn into a 0x0 scene")
	}
}

func TestPrintSummary(t *testing.T) {
	hist := softwin.NewFrameHistory(4)
	hist.ReportFrame(softwin.FrameStats{Render: 1500000, Total: 2000000})
	hist.ReportFrame(softwin.FrameStats{Render: 2500000, Total: 3000000})

	var buf bytes.Buffer
	printSummary(&buf, runStats{Backend: "memory", Attempts: 3, Dropped: 1}, hist)

	out := buf.String()
	for _, want := range []string{
		"backend memory: 2 frames presented, 1 dropped, 3 attempted",
		"Phase", "render", "1,500 µs", "2,500 µs", "total (2)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestPrintSummaryNoFrames(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, runStats{Backend: "file"}, softwin.NewFrameHistory(1))

	if strings.Contains(buf.String(), "Phase") {
		t.Errorf("empty run should not print a table:\n%s", buf.String())
	}
}

func TestResolveBackend(t *testing.T) {
	if name, err := resolveBackend("memory"); err != nil || name != "memory" {
		t.Errorf("resolveBackend(memory) = %q, %v", name, err)
	}
	if _, err := resolveBackend("no-such-backend"); err == nil {
		t.Error("resolveBackend() of an unknown name should fail")
	}
	if name, err := resolveBackend(""); err != nil || name != windowedBackend {
		t.Errorf("resolveBackend(\"\") = %q, %v; want the highest priority backend", name, err)
	}
}
