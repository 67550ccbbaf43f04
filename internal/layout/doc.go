// Copyright 2025 The strlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package layout captures the physical layout of text values.
//
// A text value is one of four representation kinds, modelled as a closed
// set of types in this package:
//
//	Buffer  OwnedGrowable   exclusive, mutable, heap-backed, may reallocate
//	View    BorrowedView    non-owning reference into storage owned elsewhere
//	Frozen  OwnedImmutable  exact-size heap storage, never grows
//	Cow     CopyOnWrite     starts borrowed, becomes owned on first mutation
//
// # Snapshots
//
// [Capture] records a [Snapshot] of any of the four kinds:
//   - Container: identity of the descriptor (the *Buffer, *View, ...)
//   - Data: identity of the first byte of the backing storage
//   - Len, Cap: byte counts (Cap == Len for views and frozen values)
//   - Heap: false only for views declared static with [Literal]
//   - Fingerprint: FNV-1a hash of the content bytes
//
// Capture is a pure read. It performs no allocation and never changes the
// address or capacity of the value it observes. For a [Cow] it reports the
// branch that is active at capture time and never forces the owned branch.
//
// # Addresses
//
// Addresses are exposed as [Addr], an opaque token that can be compared for
// equality and ordering but is never turned back into a pointer. Empty
// storage has no address: Data is zero whenever nothing is allocated.
//
// # Growth
//
// Buffer grows by doubling: when an append needs more room than the current
// capacity, the new capacity is max(2*cap, need, 8). Every growth moves the
// bytes to a new allocation while the descriptor keeps its identity.
//
// Example:
//
//	b := layout.NewBuffer(5)
//	b.AppendString("Hello")
//	before := layout.Capture(b)
//	b.AppendString(" World") // exceeds capacity 5
//	after := layout.Capture(b)
//	// after.Cap == 11, after.Data != before.Data, after.Container == before.Container
package layout
