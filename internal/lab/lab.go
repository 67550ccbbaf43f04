// Copyright 2025 The strlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lab holds the guided scenarios.
//
// Each scenario builds text values, observes operations through the
// harness and hands the reports to the presentation layer. Scenarios hold
// no classification logic of their own.
package lab

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/kolkov/strlab/internal/clock"
	"github.com/kolkov/strlab/internal/harness"
	"github.com/kolkov/strlab/internal/present"
)

// ErrUnknownScenario is returned by Lookup and Run for unknown names.
var ErrUnknownScenario = errors.New("unknown scenario")

// Scenario is one guided demonstration.
type Scenario struct {
	Name  string
	Title string
	run   func(*Lab) error
}

// Lab runs scenarios against one harness and printer.
type Lab struct {
	h      *harness.Harness
	p      *present.Printer
	logger *zap.Logger
}

// New creates a Lab. A nil logger is replaced by a no-op logger.
func New(h *harness.Harness, p *present.Printer, logger *zap.Logger) *Lab {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Lab{h: h, p: p, logger: logger}
}

// Scenarios returns every scenario in presentation order.
func Scenarios() []Scenario {
	return []Scenario{
		{Name: "types", Title: "1. Text kinds and memory layout", run: (*Lab).types},
		{Name: "ownership", Title: "2. Ownership: moves and clones", run: (*Lab).ownership},
		{Name: "capacity", Title: "3. Capacity and reallocation", run: (*Lab).capacity},
		{Name: "cow", Title: "4. Copy-on-write", run: (*Lab).cow},
		{Name: "concurrent", Title: "5. Concurrent processing", run: (*Lab).concurrent},
		{Name: "transformations", Title: "6. Transformations with timing", run: (*Lab).transformations},
		{Name: "unicode", Title: "7. Unicode and UTF-8", run: (*Lab).unicode},
	}
}

// Names returns the scenario names in presentation order.
func Names() []string {
	all := Scenarios()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = s.Name
	}
	return names
}

// Lookup finds a scenario by name.
func Lookup(name string) (Scenario, error) {
	for _, s := range Scenarios() {
		if s.Name == name {
			return s, nil
		}
	}
	known := Names()
	sort.Strings(known)
	return Scenario{}, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownScenario, name, strings.Join(known, ", "))
}

// Run runs the named scenarios in the given order. With no names it runs
// all of them. A failing scenario is reported and the rest still run; the
// failures are returned joined.
func (l *Lab) Run(names ...string) error {
	var selected []Scenario
	if len(names) == 0 {
		selected = Scenarios()
	}
	for _, name := range names {
		s, err := Lookup(name)
		if err != nil {
			return err
		}
		selected = append(selected, s)
	}

	var errs []error
	for _, s := range selected {
		l.p.Heading(s.Title)
		l.logger.Debug("scenario started", zap.String("scenario", s.Name))
		if err := s.run(l); err != nil {
			l.logger.Error("scenario aborted", zap.String("scenario", s.Name), zap.Error(err))
			errs = append(errs, fmt.Errorf("scenario %s: %w", s.Name, err))
		}
	}
	return errors.Join(errs...)
}

// show prints rep. Precondition violations are returned so the scenario
// stops; a failed clock only fails the report.
func (l *Lab) show(rep harness.Report, err error) error {
	if rep.Operation != "" {
		l.p.Report(rep)
	}
	if err != nil && !errors.Is(err, clock.ErrUnavailable) {
		return err
	}
	return nil
}
