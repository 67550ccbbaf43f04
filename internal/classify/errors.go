// Copyright 2025 The strlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package classify

import (
	"errors"
	"fmt"

	"github.com/kolkov/strlab/internal/layout"
)

// ErrPrecondition is wrapped by every *PreconditionError.
var ErrPrecondition = errors.New("classifier precondition violated")

// PreconditionError reports a snapshot pair that no rule can explain.
//
// Fields:
//   - Rule: the rule whose precondition failed (RuleNone if nothing matched)
//   - Reason: what was observed
//   - Before, After: the offending snapshots
//
// Example output:
//
//	rule 3 (reallocation): capacity grew 5 -> 6, below the doubling policy
//	  before: OwnedGrowable obj=0x... ptr=0x... len=5 cap=5
//	  after:  OwnedGrowable obj=0x... ptr=0x... len=6 cap=6
//
// Thread Safety: Immutable after creation, safe for concurrent use.
type PreconditionError struct {
	Rule   Rule
	Reason string
	Before layout.Snapshot
	After  layout.Snapshot
}

// Error implements the error interface.
func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s\n  before: %s\n  after:  %s", e.Rule, e.Reason, e.Before, e.After)
}

// Unwrap returns ErrPrecondition.
func (e *PreconditionError) Unwrap() error {
	return ErrPrecondition
}

func violation(rule Rule, before, after layout.Snapshot, format string, args ...any) *PreconditionError {
	return &PreconditionError{
		Rule:   rule,
		Reason: fmt.Sprintf(format, args...),
		Before: before,
		After:  after,
	}
}
