// Copyright 2025 The strlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package present renders snapshots and reports for the terminal.
//
// Output depends on the verbosity:
//
//	quiet   one line per report
//	normal  headings, narration, before/after panels, insight and timing
//	debug   normal plus the classifier's decision trail
//
// When the writer is not a terminal, output is plain ASCII without color.
package present

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/kolkov/strlab/internal/config"
	"github.com/kolkov/strlab/internal/harness"
	"github.com/kolkov/strlab/internal/layout"
	"github.com/kolkov/strlab/internal/metrics"
)

// Printer writes rendered output.
type Printer struct {
	w         io.Writer
	verbosity config.Verbosity
	st        styles
}

// New creates a Printer writing to w.
func New(w io.Writer, v config.Verbosity) *Printer {
	return &Printer{
		w:         w,
		verbosity: v,
		st:        newStyles(newRenderer(w)),
	}
}

// Verbosity returns the configured verbosity.
func (p *Printer) Verbosity() config.Verbosity { return p.verbosity }

func (p *Printer) println(s string) {
	fmt.Fprintln(p.w, s)
}

// Heading prints a section title. Suppressed when quiet.
func (p *Printer) Heading(title string) {
	if p.verbosity < config.Normal {
		return
	}
	p.println("")
	p.println(p.st.title.Render(title))
	p.println(p.st.muted.Render(strings.Repeat("─", lipgloss.Width(title))))
}

// Narrate prints explanatory text. Suppressed when quiet.
func (p *Printer) Narrate(format string, args ...any) {
	if p.verbosity < config.Normal {
		return
	}
	p.println(fmt.Sprintf(format, args...))
}

// Snapshot prints a single snapshot panel. Suppressed when quiet.
func (p *Printer) Snapshot(title string, s layout.Snapshot) {
	if p.verbosity < config.Normal {
		return
	}
	p.println(p.snapshotPanel(title, s))
}

// Report prints an observed operation.
func (p *Printer) Report(rep harness.Report) {
	if rep.Err != nil {
		p.Failure(rep)
		return
	}
	if p.verbosity == config.Quiet {
		p.println(rep.String())
		return
	}

	p.println(fmt.Sprintf("%s %s %s",
		p.st.label.Render(rep.Operation+":"),
		p.st.value.Render(fmt.Sprintf("%q", rep.Input)),
		p.st.muted.Render(fmt.Sprintf("-> %q", rep.Output))))
	p.println(lipgloss.JoinHorizontal(lipgloss.Top,
		p.snapshotPanel("before", rep.Before),
		" ",
		p.snapshotPanel("after", rep.After)))
	p.println(p.insight(rep))
	if rep.Latency > 0 {
		p.println(p.st.muted.Render(fmt.Sprintf("  simulated latency %s", FormatDuration(rep.Latency))))
	}
	if p.verbosity >= config.Debug {
		p.println(p.st.muted.Render("  decision trail:"))
		for i, step := range rep.Decision.Trail {
			p.println(p.st.muted.Render(fmt.Sprintf("    %d. %s", i+1, step)))
		}
	}
}

// Failure prints a report whose operation could not be observed.
func (p *Printer) Failure(rep harness.Report) {
	if p.verbosity == config.Quiet {
		p.println(rep.String())
		return
	}
	body := p.st.err.Render(rep.Operation+" failed") + "\n" + rep.Err.Error()
	p.println(p.st.errBox.Render(body))
}

// insight states the outcome, whether it allocated and how long it took.
func (p *Printer) insight(rep harness.Report) string {
	class := rep.Decision.Class
	var note string
	if class.Allocates() {
		note = p.st.alloc.Render("NEW heap allocation")
	} else {
		note = p.st.noAlloc.Render("no new allocation")
	}
	line := fmt.Sprintf("  => %s, %s in %s",
		p.st.value.Render(class.String()), note, FormatDuration(rep.Elapsed))
	if rep.Growths > 0 {
		line += p.st.muted.Render(fmt.Sprintf(" (%d growth%s)", rep.Growths, plural(rep.Growths)))
	}
	return line
}

func (p *Printer) snapshotPanel(title string, s layout.Snapshot) string {
	kind := s.Kind.String()
	if s.Kind == layout.CopyOnWrite {
		kind += "/" + s.Branch.String()
	}
	where := "heap"
	if !s.Heap {
		where = "static"
	}
	rows := []string{
		p.st.title.Render(title) + " " + p.st.muted.Render(kind),
		p.row("object", s.Container.String()),
		p.row("data", s.Data.String()),
		p.row("len", fmt.Sprintf("%d bytes", s.Len)),
		p.row("cap", fmt.Sprintf("%d bytes", s.Cap)),
		p.row("storage", where),
		p.row("usage", UsageBar(s, 16)),
	}
	return p.st.panel.Render(strings.Join(rows, "\n"))
}

func (p *Printer) row(label, value string) string {
	return p.st.label.Render(fmt.Sprintf("%-8s", label)) + value
}

// Bytes prints the UTF-8 breakdown of s. Suppressed when quiet.
func (p *Printer) Bytes(s string) {
	if p.verbosity < config.Normal {
		return
	}
	p.println(ByteBreakdown(s))
}

// Summary prints the per-operation metrics summary.
func (p *Printer) Summary(sum []metrics.OperationSummary) {
	p.println(p.st.title.Render("operation summary"))
	p.println(SummaryTable(sum))
}

// FormatDuration renders d in ns below a microsecond, in µs below a
// millisecond and in ms otherwise.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%.2fµs", float64(d)/float64(time.Microsecond))
	default:
		return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
	}
}

// UsageBar renders the fraction of capacity in use, width cells wide.
func UsageBar(s layout.Snapshot, width int) string {
	u := s.Usage()
	filled := int(u*float64(width) + 0.5)
	filled = min(max(filled, 0), width)
	return fmt.Sprintf("[%s%s] %3.0f%%",
		strings.Repeat("█", filled), strings.Repeat("░", width-filled), u*100)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
