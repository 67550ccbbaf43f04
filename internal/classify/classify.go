// Copyright 2025 The strlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package classify

import (
	"fmt"

	"github.com/kolkov/strlab/internal/layout"
)

// Decision is the outcome of classifying one snapshot pair.
type Decision struct {
	// Class is the behavioral category.
	Class Class

	// Rule is the rule that produced Class.
	Rule Rule

	// Trail lists the checks made, in order, ending with the match.
	Trail []string

	// WastedBefore and WastedAfter are Cap - Len of each snapshot.
	WastedBefore int
	WastedAfter  int
}

// Classify determines what happened between before and after.
//
// It returns a *PreconditionError when no rule covers the pair.
func Classify(before, after layout.Snapshot) (Decision, error) {
	d := &decider{before: before, after: after}
	class, rule, err := d.decide()
	if err != nil {
		return Decision{}, err
	}
	d.note("matched %s -> %s", rule, class)
	return Decision{
		Class:        class,
		Rule:         rule,
		Trail:        d.trail,
		WastedBefore: before.Wasted(),
		WastedAfter:  after.Wasted(),
	}, nil
}

// decider carries the snapshot pair and the trail through the rules.
type decider struct {
	before, after layout.Snapshot
	trail         []string
}

func (d *decider) note(format string, args ...any) {
	d.trail = append(d.trail, fmt.Sprintf(format, args...))
}

func (d *decider) decide() (Class, Rule, error) {
	b, a := d.before, d.after
	sameContainer := a.Container == b.Container
	sameData := a.Data == b.Data

	if b.Kind == layout.CopyOnWrite && a.Kind == layout.CopyOnWrite {
		class, done, err := d.deferredCopy()
		if err != nil || done {
			return class, RuleDeferredCopy, err
		}
	}

	d.note("rule 1: container %v, data %v, len %v, cap %v, content %v",
		same(sameContainer), same(sameData), same(a.Len == b.Len), same(a.Cap == b.Cap),
		same(a.Fingerprint == b.Fingerprint))
	if sameContainer && sameData && a.Len == b.Len && a.Cap == b.Cap && a.Fingerprint == b.Fingerprint {
		return Unchanged, RuleUnchanged, nil
	}

	if sameContainer && sameData {
		return d.inPlace()
	}

	if sameContainer {
		return d.realloc()
	}

	if !sameData {
		d.note("rule 4: kind %s -> %s, len %d -> %d", b.Kind, a.Kind, b.Len, a.Len)
		if a.Kind == b.Kind && a.Len == b.Len {
			return Cloned, RuleClone, nil
		}
		return Unchanged, RuleNone, violation(RuleNone, b, a,
			"new descriptor and new storage, but kind %s -> %s or length %d -> %d differs; no rule covers a conversion",
			b.Kind, a.Kind, b.Len, a.Len)
	}

	return d.move()
}

// deferredCopy applies rule 6. done is false when the owned branch should
// continue through the general rules.
func (d *decider) deferredCopy() (class Class, done bool, err error) {
	b, a := d.before, d.after
	d.note("rule 6: branch %s -> %s", b.Branch, a.Branch)

	switch {
	case b.Branch == layout.BranchBorrowed && a.Branch == layout.BranchBorrowed:
		if a.Data == b.Data && a.Len == b.Len && a.Fingerprint == b.Fingerprint {
			return DeferredCopyAvoided, true, nil
		}
		return Unchanged, true, violation(RuleDeferredCopy, b, a,
			"borrowed branch changed without mutable access (data %s -> %s)", b.Data, a.Data)

	case b.Branch == layout.BranchBorrowed && a.Branch == layout.BranchOwned:
		if a.Data != b.Data {
			return DeferredCopyTriggered, true, nil
		}
		return Unchanged, true, violation(RuleDeferredCopy, b, a,
			"switched to owned branch but kept borrowed storage %s", b.Data)

	case b.Branch == layout.BranchOwned && a.Branch == layout.BranchBorrowed:
		return Unchanged, true, violation(RuleDeferredCopy, b, a,
			"owned branch reverted to borrowed")

	default:
		d.note("rule 6: owned branch, continuing as growable storage")
		return Unchanged, false, nil
	}
}

// inPlace applies rule 2: same descriptor, same storage.
func (d *decider) inPlace() (Class, Rule, error) {
	b, a := d.before, d.after
	d.note("rule 2: cap %d -> %d, len %d -> %d", b.Cap, a.Cap, b.Len, a.Len)

	switch {
	case a.Cap == b.Cap:
		return MutatedInPlace, RuleInPlace, nil
	case a.Cap > b.Cap && a.Len <= b.Cap:
		return MutatedInPlace, RuleInPlace, nil
	case a.Cap > b.Cap:
		return Unchanged, RuleInPlace, violation(RuleInPlace, b, a,
			"capacity grew %d -> %d past the old capacity without moving storage %s", b.Cap, a.Cap, b.Data)
	default:
		return Unchanged, RuleInPlace, violation(RuleInPlace, b, a,
			"capacity shrank %d -> %d while storage stayed at %s", b.Cap, a.Cap, b.Data)
	}
}

// realloc applies rule 3: same descriptor, new storage.
func (d *decider) realloc() (Class, Rule, error) {
	b, a := d.before, d.after
	d.note("rule 3: growable %v -> %v, cap %d -> %d", growable(b), growable(a), b.Cap, a.Cap)

	if !growable(b) || !growable(a) {
		return Unchanged, RuleRealloc, violation(RuleRealloc, b, a,
			"storage moved %s -> %s under a %s descriptor that cannot grow", b.Data, a.Data, b.Kind)
	}
	if a.Cap <= b.Cap {
		return Unchanged, RuleRealloc, violation(RuleRealloc, b, a,
			"storage moved %s -> %s without capacity growth (%d -> %d)", b.Data, a.Data, b.Cap, a.Cap)
	}
	if a.Cap < 2*b.Cap {
		return Unchanged, RuleRealloc, violation(RuleRealloc, b, a,
			"capacity grew %d -> %d, below the doubling policy", b.Cap, a.Cap)
	}
	return ReallocatedInPlace, RuleRealloc, nil
}

// move applies rule 5: new descriptor, same storage.
//
// Equal addresses on differing content mean two distinct allocations
// occupied the same address (storage freed and reused). That is reported as
// a violation rather than guessed at.
func (d *decider) move() (Class, Rule, error) {
	b, a := d.before, d.after
	d.note("rule 5: kind %s -> %s, len %d -> %d, cap %d -> %d, content %v",
		b.Kind, a.Kind, b.Len, a.Len, b.Cap, a.Cap, same(a.Fingerprint == b.Fingerprint))

	if a.Kind == b.Kind && a.Len == b.Len && a.Cap == b.Cap && a.Fingerprint == b.Fingerprint {
		return Moved, RuleMove, nil
	}
	return Unchanged, RuleMove, violation(RuleMove, b, a,
		"address collision: storage %s shared by distinct values", b.Data)
}

// growable reports whether s describes storage that may reallocate.
func growable(s layout.Snapshot) bool {
	return s.Kind == layout.OwnedGrowable ||
		(s.Kind == layout.CopyOnWrite && s.Branch == layout.BranchOwned)
}

func same(ok bool) string {
	if ok {
		return "same"
	}
	return "differs"
}
