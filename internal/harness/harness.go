// Copyright 2025 The strlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package harness

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kolkov/strlab/internal/classify"
	"github.com/kolkov/strlab/internal/clock"
	"github.com/kolkov/strlab/internal/layout"
)

// Failure reasons passed to Recorder.ObserveFailure.
const (
	ReasonClock        = "clock"
	ReasonPrecondition = "precondition"
)

// Recorder receives one call per observed operation.
//
// *metrics.Collector implements Recorder.
type Recorder interface {
	ObserveOperation(op string, class classify.Class, elapsed time.Duration)
	ObserveFailure(op, reason string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveOperation(string, classify.Class, time.Duration) {}
func (nopRecorder) ObserveFailure(string, string)                         {}

// Harness observes text operations.
type Harness struct {
	clock    clock.Clock
	logger   *zap.Logger
	recorder Recorder
	sched    SchedulerConfig
}

// Option configures a Harness.
type Option func(*Harness)

// WithClock sets the time source. Default: clock.System().
func WithClock(c clock.Clock) Option {
	return func(h *Harness) { h.clock = c }
}

// WithLogger sets the logger. Default: a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(h *Harness) { h.logger = l }
}

// WithRecorder sets where completed and failed operations are recorded.
func WithRecorder(r Recorder) Option {
	return func(h *Harness) { h.recorder = r }
}

// WithScheduler sets the concurrent scheduler configuration.
func WithScheduler(cfg SchedulerConfig) Option {
	return func(h *Harness) { h.sched = cfg }
}

// New creates a Harness.
func New(opts ...Option) *Harness {
	h := &Harness{
		clock:    clock.System(),
		logger:   zap.NewNop(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.clock == nil {
		h.clock = clock.System()
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}
	if h.recorder == nil {
		h.recorder = nopRecorder{}
	}
	h.sched = h.sched.normalize()
	return h
}

// Observe runs fn on subject and reports what happened to its layout.
//
// fn returns the value to capture afterwards: subject itself when it works
// in place, or the value it produced. The returned error is a
// *classify.PreconditionError when the pair matches no rule, or wraps
// clock.ErrUnavailable when timing failed. In both cases the Report carries
// the same error in Err.
func (h *Harness) Observe(name string, subject layout.Text, fn func() layout.Text) (Report, error) {
	input := strings.Clone(subject.String())
	before := layout.Capture(subject)
	growths := growthsOf(subject)

	start, err := h.clock.Now()
	if err != nil {
		return h.fail(name, input, ReasonClock, fmt.Errorf("%s: reading start time: %w", name, err))
	}
	out := fn()
	end, err := h.clock.Now()
	if err != nil {
		return h.fail(name, input, ReasonClock, fmt.Errorf("%s: reading end time: %w", name, err))
	}
	elapsed := end.Sub(start)

	after := layout.Capture(out)
	h.logger.Debug("captured",
		zap.String("operation", name),
		zap.Stringer("before", before),
		zap.Stringer("after", after))

	decision, err := classify.Classify(before, after)
	if err != nil {
		return h.fail(name, input, ReasonPrecondition, err)
	}

	if out != subject {
		growths = 0
	}
	rep := Report{
		Operation: name,
		Input:     input,
		Output:    strings.Clone(out.String()),
		Before:    before,
		After:     after,
		Decision:  decision,
		Elapsed:   elapsed,
		Growths:   growthsOf(out) - growths,
	}
	h.recorder.ObserveOperation(name, decision.Class, elapsed)
	h.logger.Debug("classified",
		zap.String("operation", name),
		zap.Stringer("class", decision.Class),
		zap.Stringer("rule", decision.Rule),
		zap.Duration("elapsed", elapsed),
		zap.Strings("trail", decision.Trail))
	return rep, nil
}

func (h *Harness) fail(name, input, reason string, err error) (Report, error) {
	h.recorder.ObserveFailure(name, reason)
	if errors.Is(err, classify.ErrPrecondition) {
		h.logger.Error("classification precondition violated",
			zap.String("operation", name),
			zap.Error(err))
	} else {
		h.logger.Warn("operation not timed",
			zap.String("operation", name),
			zap.Error(err))
	}
	return Report{Operation: name, Input: input, Err: err}, err
}

func growthsOf(t layout.Text) int {
	switch v := t.(type) {
	case *layout.Buffer:
		return v.Growths()
	case *layout.Cow:
		return v.Growths()
	default:
		return 0
	}
}
