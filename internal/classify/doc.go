// Copyright 2025 The strlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package classify decides what an operation did to a text value.
//
// Given a snapshot taken before an operation and one taken after it,
// [Classify] returns a [Decision] naming one [Class]:
//
//	Unchanged              nothing observable changed
//	Moved                  same storage, new descriptor
//	Cloned                 new descriptor, new storage, same kind and length
//	MutatedInPlace         same descriptor and storage, contents changed
//	ReallocatedInPlace     same descriptor, storage moved by doubling growth
//	DeferredCopyAvoided    copy-on-write stayed borrowed
//	DeferredCopyTriggered  copy-on-write switched to owned storage
//
// # Rules
//
// Rules are tried in order and the first match wins. The copy-on-write rule
// runs first whenever both snapshots are CopyOnWrite, because a read-only
// borrowed path would otherwise look Unchanged:
//
//	6  CopyOnWrite branch transitions
//	1  Unchanged
//	2  in-place mutation (same descriptor, same storage)
//	3  growth reallocation (same descriptor, new storage, cap >= 2x)
//	4  clone (new descriptor, new storage, same kind, same length)
//	5  move (new descriptor, same storage, same content)
//
// A pair no rule covers is a defect in the introspection logic, not a
// runtime condition. Classify reports it as a *PreconditionError naming the
// rule that could not be satisfied; callers abort the step rather than
// continue with an unexplained snapshot pair.
//
// Wasted space (Cap - Len) is recorded on the Decision for display only and
// never influences the outcome.
package classify
