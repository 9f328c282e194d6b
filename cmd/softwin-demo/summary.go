package main

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/softwin"
)

// printSummary writes per-phase frame times over the retained history.
func printSummary(w io.Writer, stats runStats, hist *softwin.FrameHistory) {
	p := message.NewPrinter(language.English)
	sum := hist.Summary()

	var buf bytes.Buffer
	p.Fprintf(&buf, "\nbackend %s: %d frames presented, %d dropped, %d attempted in %s\n\n",
		stats.Backend, hist.Total(), stats.Dropped, stats.Attempts, stats.Elapsed.Round(time.Millisecond))
	if stats.Elapsed > 0 && hist.Total() > 0 {
		p.Fprintf(&buf, "%.1f frames/s\n\n", float64(hist.Total())/stats.Elapsed.Seconds())
	}

	if sum.Frames == 0 {
		_, _ = buf.WriteTo(w)
		return
	}

	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Phase", "Min", "Avg", "Max"})
	for _, row := range []struct {
		name string
		ps   softwin.PhaseSummary
	}{
		{"command", sum.Command},
		{"render", sum.Render},
		{"convert", sum.Convert},
		{"present", sum.Present},
	} {
		table.Append(phaseRow(p, row.name, row.ps))
	}
	table.SetFooter(phaseRow(p, fmt.Sprintf("total (%d)", sum.Frames), sum.Total))
	table.Render()

	_, _ = buf.WriteTo(w)
}

func phaseRow(p *message.Printer, name string, ps softwin.PhaseSummary) []string {
	us := func(d time.Duration) string {
		return p.Sprintf("%d µs", d.Microseconds())
	}
	return []string{name, us(ps.Min), us(ps.Avg), us(ps.Max)}
}
