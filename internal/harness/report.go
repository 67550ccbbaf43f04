// Copyright 2025 The strlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package harness

import (
	"fmt"
	"time"

	"github.com/kolkov/strlab/internal/classify"
	"github.com/kolkov/strlab/internal/layout"
)

// Report is the outcome of one observed operation.
type Report struct {
	// Operation names what ran ("reverse", "clone", ...).
	Operation string

	// Input and Output are copies of the contents before and after.
	Input  string
	Output string

	// Before and After are the snapshots taken around the operation.
	Before layout.Snapshot
	After  layout.Snapshot

	// Decision is the classification of the snapshot pair.
	Decision classify.Decision

	// Elapsed is the time between the two clock readings, at least
	// clock.Resolution.
	Elapsed time.Duration

	// Latency is the simulated delay of a concurrent unit, zero otherwise.
	Latency time.Duration

	// Growths counts reallocations of the output value during the operation.
	Growths int

	// Err is set when the operation could not be observed. The remaining
	// fields other than Operation, Input and Latency are then zero.
	Err error
}

// Class returns the classification outcome.
func (r Report) Class() classify.Class {
	return r.Decision.Class
}

// Allocated reports whether the operation made a new heap allocation.
func (r Report) Allocated() bool {
	return r.Err == nil && r.Decision.Class.Allocates()
}

// String returns a one-line summary.
func (r Report) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s(%q): failed: %v", r.Operation, r.Input, r.Err)
	}
	return fmt.Sprintf("%s(%q) = %q: %s in %s", r.Operation, r.Input, r.Output, r.Decision.Class, r.Elapsed)
}
