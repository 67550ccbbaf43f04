// Copyright 2025 The strlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package present

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/kolkov/strlab/internal/metrics"
)

// ByteBreakdown lists every rune of s with its byte offset and encoding.
// Invalid bytes are listed individually as U+FFFD.
func ByteBreakdown(s string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("offset", "rune", "code point", "bytes", "width")

	for i, r := range s {
		size := utf8.RuneLen(r)
		if r == utf8.RuneError {
			_, size = utf8.DecodeRuneInString(s[i:])
		}
		t.Row(
			strconv.Itoa(i),
			strconv.QuoteRune(r),
			fmt.Sprintf("U+%04X", r),
			hexBytes(s[i:i+size]),
			strconv.Itoa(size),
		)
	}

	header := fmt.Sprintf("%q: %d bytes, %d runes", s, len(s), utf8.RuneCountInString(s))
	return header + "\n" + t.Render()
}

func hexBytes(s string) string {
	parts := make([]string, len(s))
	for i := 0; i < len(s); i++ {
		parts[i] = fmt.Sprintf("%02x", s[i])
	}
	return strings.Join(parts, " ")
}

// SummaryTable renders one row per operation.
func SummaryTable(sum []metrics.OperationSummary) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("operation", "runs", "mean", "outcomes", "failures")

	for _, s := range sum {
		t.Row(
			s.Operation,
			strconv.FormatUint(s.Runs, 10),
			FormatDuration(s.Mean()),
			outcomes(s.Classes),
			strconv.FormatUint(s.Failures, 10),
		)
	}
	return t.Render()
}

func outcomes(classes map[string]uint64) string {
	names := make([]string, 0, len(classes))
	for name := range classes {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%d", name, classes[name]))
	}
	return strings.Join(parts, " ")
}
