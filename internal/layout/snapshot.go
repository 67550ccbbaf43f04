// Copyright 2025 The strlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"fmt"
	"unsafe"
)

// Snapshot is the physical state of one text value at one instant.
//
// Invariant: 0 <= Len <= Cap. Views, frozen values and borrowed Cows have
// Cap == Len.
type Snapshot struct {
	Kind        Kind
	Branch      Branch // BranchNone unless Kind == CopyOnWrite
	Container   Addr   // descriptor identity
	Data        Addr   // first byte of the backing storage, 0 if none
	Len         int
	Cap         int
	Heap        bool
	Fingerprint uint64 // FNV-1a of the content bytes
}

// Wasted returns the unused capacity in bytes.
func (s Snapshot) Wasted() int {
	return s.Cap - s.Len
}

// Usage returns Len/Cap as a fraction in [0, 1]. Zero capacity reports 0.
func (s Snapshot) Usage() float64 {
	if s.Cap == 0 {
		return 0
	}
	return float64(s.Len) / float64(s.Cap)
}

// String returns a one-line summary for logs and debugging.
func (s Snapshot) String() string {
	kind := s.Kind.String()
	if s.Branch != BranchNone {
		kind += "/" + s.Branch.String()
	}
	return fmt.Sprintf("%s obj=%s ptr=%s len=%d cap=%d", kind, s.Container, s.Data, s.Len, s.Cap)
}

// Capture records the layout of t without modifying it.
//
// Capture performs no heap allocation. For a Cow it reports the active
// branch; the owned branch is never forced into existence.
func Capture(t Text) Snapshot {
	switch v := t.(type) {
	case *Buffer:
		return Snapshot{
			Kind:        OwnedGrowable,
			Container:   addrOf(v),
			Data:        bytesAddr(v.buf),
			Len:         len(v.buf),
			Cap:         cap(v.buf),
			Heap:        true,
			Fingerprint: fingerprintBytes(v.buf),
		}
	case *View:
		return Snapshot{
			Kind:        BorrowedView,
			Container:   addrOf(v),
			Data:        stringAddr(v.s),
			Len:         len(v.s),
			Cap:         len(v.s),
			Heap:        !v.static,
			Fingerprint: fingerprint(v.s),
		}
	case *Frozen:
		return Snapshot{
			Kind:        OwnedImmutable,
			Container:   addrOf(v),
			Data:        stringAddr(v.s),
			Len:         len(v.s),
			Cap:         len(v.s),
			Heap:        true,
			Fingerprint: fingerprint(v.s),
		}
	case *Cow:
		return captureCow(v)
	}
	// Unreachable for the closed set; a nil Text lands here.
	panic(fmt.Sprintf("layout: cannot capture %T", t))
}

func captureCow(c *Cow) Snapshot {
	if c.owned != nil {
		return Snapshot{
			Kind:        CopyOnWrite,
			Branch:      BranchOwned,
			Container:   addrOf(c),
			Data:        bytesAddr(c.owned.buf),
			Len:         len(c.owned.buf),
			Cap:         cap(c.owned.buf),
			Heap:        true,
			Fingerprint: fingerprintBytes(c.owned.buf),
		}
	}
	s := c.borrowed.s
	return Snapshot{
		Kind:        CopyOnWrite,
		Branch:      BranchBorrowed,
		Container:   addrOf(c),
		Data:        stringAddr(s),
		Len:         len(s),
		Cap:         len(s),
		Heap:        !c.borrowed.static,
		Fingerprint: fingerprint(s),
	}
}

// FNV-1a 64-bit parameters.
const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

// fingerprint hashes s with FNV-1a without allocating.
func fingerprint(s string) uint64 {
	h := uint64(fnvOffset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime64
	}
	return h
}

func fingerprintBytes(b []byte) uint64 {
	return fingerprint(unsafe.String(unsafe.SliceData(b), len(b)))
}
