// Copyright 2025 The strlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package present

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Palette.
var (
	colorAccent  = lipgloss.Color("#2CD7C7")
	colorPrimary = lipgloss.Color("#20B9B4")
	colorBorder  = lipgloss.Color("#16858E")
	colorMuted   = lipgloss.Color("#5C7A84")
	colorAlloc   = lipgloss.Color("#F4D03F")
	colorError   = lipgloss.Color("#E74C3C")
)

type styles struct {
	title   lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	muted   lipgloss.Style
	alloc   lipgloss.Style
	noAlloc lipgloss.Style
	err     lipgloss.Style
	panel   lipgloss.Style
	errBox  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(colorAccent),
		label:   r.NewStyle().Foreground(colorPrimary),
		value:   r.NewStyle().Bold(true),
		muted:   r.NewStyle().Foreground(colorMuted),
		alloc:   r.NewStyle().Bold(true).Foreground(colorAlloc),
		noAlloc: r.NewStyle().Foreground(colorAccent),
		err:     r.NewStyle().Bold(true).Foreground(colorError),
		panel: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),
		errBox: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorError).
			Padding(0, 1),
	}
}

// newRenderer returns a renderer for w. Anything other than a terminal gets
// plain ASCII output with no escape sequences.
func newRenderer(w io.Writer) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if !isTerminal(w) {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
