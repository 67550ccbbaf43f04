// Copyright 2025 The strlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package classify

// Class is the behavioral category of an operation.
type Class int

const (
	// Unchanged means no observable change to descriptor, storage or content.
	Unchanged Class = iota
	// Moved means ownership was transferred: same storage, new descriptor.
	Moved
	// Cloned means an independent copy now exists alongside the original.
	Cloned
	// MutatedInPlace means the contents changed within the same storage.
	MutatedInPlace
	// ReallocatedInPlace means growth moved the storage; the descriptor kept its identity.
	ReallocatedInPlace
	// DeferredCopyAvoided means a copy-on-write value was only read.
	DeferredCopyAvoided
	// DeferredCopyTriggered means a copy-on-write value made its one copy.
	DeferredCopyTriggered
)

// String returns the name of the class.
func (c Class) String() string {
	switch c {
	case Unchanged:
		return "Unchanged"
	case Moved:
		return "Moved"
	case Cloned:
		return "Cloned"
	case MutatedInPlace:
		return "MutatedInPlace"
	case ReallocatedInPlace:
		return "ReallocatedInPlace"
	case DeferredCopyAvoided:
		return "DeferredCopyAvoided"
	case DeferredCopyTriggered:
		return "DeferredCopyTriggered"
	default:
		return "Unknown"
	}
}

// Allocates reports whether the class implies a new heap allocation.
func (c Class) Allocates() bool {
	switch c {
	case Cloned, ReallocatedInPlace, DeferredCopyTriggered:
		return true
	default:
		return false
	}
}

// Classes lists every class in declaration order.
func Classes() []Class {
	return []Class{
		Unchanged,
		Moved,
		Cloned,
		MutatedInPlace,
		ReallocatedInPlace,
		DeferredCopyAvoided,
		DeferredCopyTriggered,
	}
}

// Rule numbers a classification rule.
type Rule int

const (
	// RuleNone is reported when no rule applies.
	RuleNone Rule = iota
	// RuleUnchanged detects the absence of change.
	RuleUnchanged
	// RuleInPlace detects mutation within the same storage.
	RuleInPlace
	// RuleRealloc detects growth-triggered reallocation.
	RuleRealloc
	// RuleClone detects independent copies.
	RuleClone
	// RuleMove detects ownership transfer.
	RuleMove
	// RuleDeferredCopy handles copy-on-write branch transitions.
	RuleDeferredCopy
)

// String returns the rule number and name.
func (r Rule) String() string {
	switch r {
	case RuleUnchanged:
		return "rule 1 (unchanged)"
	case RuleInPlace:
		return "rule 2 (in-place)"
	case RuleRealloc:
		return "rule 3 (reallocation)"
	case RuleClone:
		return "rule 4 (clone)"
	case RuleMove:
		return "rule 5 (move)"
	case RuleDeferredCopy:
		return "rule 6 (copy-on-write)"
	default:
		return "no rule"
	}
}
