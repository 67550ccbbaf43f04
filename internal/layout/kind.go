// Copyright 2025 The strlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"fmt"
	"unsafe"
)

// Kind identifies the representation of a text value.
type Kind uint8

const (
	// OwnedGrowable is exclusive, mutable, heap-backed storage ([Buffer]).
	OwnedGrowable Kind = iota + 1
	// BorrowedView is a non-owning reference into external storage ([View]).
	BorrowedView
	// OwnedImmutable is exact-size heap storage with no slack ([Frozen]).
	OwnedImmutable
	// CopyOnWrite is a deferred-copy value ([Cow]).
	CopyOnWrite
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case OwnedGrowable:
		return "OwnedGrowable"
	case BorrowedView:
		return "BorrowedView"
	case OwnedImmutable:
		return "OwnedImmutable"
	case CopyOnWrite:
		return "CopyOnWrite"
	default:
		return "Unknown"
	}
}

// Branch is the active side of a CopyOnWrite value.
type Branch uint8

const (
	// BranchNone is used for every kind other than CopyOnWrite.
	BranchNone Branch = iota
	// BranchBorrowed means the value still references foreign storage.
	BranchBorrowed
	// BranchOwned means the deferred copy has happened.
	BranchOwned
)

// String returns the name of the branch.
func (b Branch) String() string {
	switch b {
	case BranchNone:
		return ""
	case BranchBorrowed:
		return "Borrowed"
	case BranchOwned:
		return "Owned"
	default:
		return "?"
	}
}

// Addr is an opaque identity token for a storage location.
//
// Two Addr values can be compared with == and <. An Addr is never converted
// back into a pointer and does not keep the storage alive.
type Addr uintptr

// String formats the address as a 0x-prefixed, zero-padded hex number.
func (a Addr) String() string {
	return fmt.Sprintf("0x%016x", uint64(a))
}

// IsZero reports whether the token refers to no storage.
func (a Addr) IsZero() bool {
	return a == 0
}

// addrOf returns the identity of a descriptor.
func addrOf[T any](p *T) Addr {
	return Addr(uintptr(unsafe.Pointer(p)))
}

// bytesAddr returns the identity of the first byte of a slice's backing array.
// Slices without capacity share the runtime's zero-size base, so they report 0.
func bytesAddr(b []byte) Addr {
	if cap(b) == 0 {
		return 0
	}
	return Addr(uintptr(unsafe.Pointer(unsafe.SliceData(b))))
}

// stringAddr returns the identity of the first byte of a string.
func stringAddr(s string) Addr {
	if len(s) == 0 {
		return 0
	}
	return Addr(uintptr(unsafe.Pointer(unsafe.StringData(s))))
}
