// Copyright 2025 The strlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package strlab

import (
	"github.com/kolkov/strlab/internal/classify"
	"github.com/kolkov/strlab/internal/clock"
	"github.com/kolkov/strlab/internal/harness"
	"github.com/kolkov/strlab/internal/layout"
)

// Text values and their layout.
type (
	Text     = layout.Text
	Buffer   = layout.Buffer
	View     = layout.View
	Frozen   = layout.Frozen
	Cow      = layout.Cow
	Kind     = layout.Kind
	Branch   = layout.Branch
	Addr     = layout.Addr
	Snapshot = layout.Snapshot
)

// Representation kinds.
const (
	OwnedGrowable  = layout.OwnedGrowable
	BorrowedView   = layout.BorrowedView
	OwnedImmutable = layout.OwnedImmutable
	CopyOnWrite    = layout.CopyOnWrite
)

// Classification.
type (
	Class             = classify.Class
	Rule              = classify.Rule
	Decision          = classify.Decision
	PreconditionError = classify.PreconditionError
)

// Classification outcomes.
const (
	Unchanged             = classify.Unchanged
	MutatedInPlace        = classify.MutatedInPlace
	ReallocatedInPlace    = classify.ReallocatedInPlace
	Cloned                = classify.Cloned
	Moved                 = classify.Moved
	DeferredCopyAvoided   = classify.DeferredCopyAvoided
	DeferredCopyTriggered = classify.DeferredCopyTriggered
)

// Observation.
type (
	Harness         = harness.Harness
	Option          = harness.Option
	Recorder        = harness.Recorder
	Report          = harness.Report
	Op              = harness.Op
	Params          = harness.Params
	WorkItem        = harness.WorkItem
	SchedulerConfig = harness.SchedulerConfig
	Clock           = clock.Clock
	Instant         = clock.Instant
)

// Catalogue operations.
const (
	OpReverse    = harness.OpReverse
	OpUppercase  = harness.OpUppercase
	OpRepeat     = harness.OpRepeat
	OpInterleave = harness.OpInterleave
	OpBracket    = harness.OpBracket
)

// Errors.
var (
	ErrPrecondition      = classify.ErrPrecondition
	ErrClockUnavailable  = clock.ErrUnavailable
	ErrUnknownOperation  = harness.ErrUnknownOperation
	ErrInvalidParameters = harness.ErrInvalidParams
)

// Constructors.
var (
	NewBuffer  = layout.NewBuffer
	BufferFrom = layout.BufferFrom
	Literal    = layout.Literal
	Borrow     = layout.Borrow
	Freeze     = layout.Freeze
	NewCow     = layout.NewCow
)

// Harness options.
var (
	WithClock     = harness.WithClock
	WithLogger    = harness.WithLogger
	WithRecorder  = harness.WithRecorder
	WithScheduler = harness.WithScheduler
)

// NewHarness creates a Harness. With no options it uses the system
// monotonic clock and discards logs.
func NewHarness(opts ...Option) *Harness {
	return harness.New(opts...)
}

// Capture records the layout of t without modifying it.
func Capture(t Text) Snapshot {
	return layout.Capture(t)
}

// Classify determines what happened between two snapshots of a value.
func Classify(before, after Snapshot) (Decision, error) {
	return classify.Classify(before, after)
}

// ParseOp validates a catalogue operation name.
func ParseOp(name string) (Op, error) {
	return harness.ParseOp(name)
}
