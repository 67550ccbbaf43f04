// Copyright 2025 The strlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package harness runs text operations under observation.
//
// Every observed operation follows the same sequence:
//
//  1. Capture a snapshot of the subject value
//  2. Read the clock
//  3. Run the operation
//  4. Read the clock
//  5. Capture a snapshot of the resulting value
//  6. Classify the snapshot pair
//
// The result is a [Report]. Nothing runs between the two clock readings
// except the operation itself, and the snapshot pair is never classified
// if either capture or clock reading failed.
//
// # Operations
//
// The built-in catalogue ([Op]) works on an owned copy of its input:
//
//	reverse     rune-wise reversal into a new exact-capacity value   -> Cloned
//	uppercase   Unicode uppercase written back in place              -> MutatedInPlace / ReallocatedInPlace / Unchanged
//	repeat      the value appended to itself Count-1 times           -> ReallocatedInPlace when it outgrows capacity
//	interleave  runes alternated with Params.Other                   -> ReallocatedInPlace when Other is non-empty
//	bracket     "[" + value + "]"                                    -> ReallocatedInPlace
//
// Ownership demonstrations ([Harness.Clone], [Harness.Move], [Harness.Push],
// [Harness.CowRead], [Harness.CowWrite]) observe the layout primitives
// directly.
//
// # Concurrency
//
// [Harness.RunConcurrent] runs one bracket operation per work item on a
// bounded worker pool. Each unit owns its value exclusively. Reports come
// back in input order regardless of completion order.
//
// Thread Safety: A Harness is safe for concurrent use provided its Clock
// and Recorder are.
package harness
