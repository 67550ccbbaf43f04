// Copyright 2025 The strlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"unicode/utf8"
	"unsafe"
)

// minGrowCap is the smallest capacity a growing Buffer allocates.
const minGrowCap = 8

// Buffer is an owned, growable text value.
//
// The Buffer struct is the descriptor; its bytes live in a separate
// allocation that is replaced whenever an append needs more room than the
// current capacity. Growth follows the doubling policy described in the
// package documentation.
//
// Thread Safety: NOT safe for concurrent use. Each Buffer has one owner.
type Buffer struct {
	buf     []byte
	growths int  // reallocations performed by this descriptor
	moved   bool // storage was transferred away by Move
}

// NewBuffer returns an empty Buffer with room for capacity bytes.
//
// A zero capacity allocates nothing; the first append allocates.
func NewBuffer(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{buf: make([]byte, 0, capacity)}
}

// BufferFrom copies s into a new Buffer whose capacity equals len(s).
func BufferFrom(s string) *Buffer {
	b := &Buffer{buf: make([]byte, len(s))}
	copy(b.buf, s)
	return b
}

// Len returns the length in bytes.
func (b *Buffer) Len() int { return len(b.buf) }

// Cap returns the allocated capacity in bytes.
func (b *Buffer) Cap() int { return cap(b.buf) }

// String returns a copy of the contents.
func (b *Buffer) String() string { return string(b.buf) }

// Growths returns how many times the backing storage has been reallocated.
func (b *Buffer) Growths() int { return b.growths }

// Moved reports whether the storage has been transferred with Move.
func (b *Buffer) Moved() bool { return b.moved }

func (b *Buffer) text() {}

// Reserve makes room for at least n more bytes using the growth policy.
func (b *Buffer) Reserve(n int) {
	if n > 0 {
		b.grow(n)
	}
}

// AppendString appends s, reallocating if the capacity is exceeded.
func (b *Buffer) AppendString(s string) {
	b.grow(len(s))
	b.buf = append(b.buf, s...)
}

// AppendByte appends a single byte.
func (b *Buffer) AppendByte(c byte) {
	b.grow(1)
	b.buf = append(b.buf, c)
}

// AppendRune appends the UTF-8 encoding of r. Invalid runes are written
// as utf8.RuneError.
func (b *Buffer) AppendRune(r rune) {
	n := utf8.RuneLen(r)
	if n < 0 {
		n = utf8.RuneLen(utf8.RuneError)
	}
	b.grow(n)
	b.buf = utf8.AppendRune(b.buf, r)
}

// SetString replaces the contents with s. The existing storage is reused
// when s fits; otherwise the Buffer grows.
func (b *Buffer) SetString(s string) {
	b.mustLive()
	b.buf = b.buf[:0]
	b.AppendString(s)
}

// Truncate discards all but the first n bytes. Capacity is kept.
func (b *Buffer) Truncate(n int) {
	b.mustLive()
	if n < 0 || n > len(b.buf) {
		panic("layout: truncation out of range")
	}
	b.buf = b.buf[:n]
}

// UpperASCII folds ASCII lowercase letters to uppercase in place.
// Length, capacity and address never change.
func (b *Buffer) UpperASCII() {
	b.mustLive()
	for i, c := range b.buf {
		if 'a' <= c && c <= 'z' {
			b.buf[i] = c - ('a' - 'A')
		}
	}
}

// Clone returns an independent Buffer with a new allocation sized exactly
// to the current length. Both values are live afterwards.
//
// An empty Buffer clones into minGrowCap bytes of fresh storage, so the
// clone never shares the zero address with its source.
func (b *Buffer) Clone() *Buffer {
	b.mustLive()
	nb := ownedStorage(len(b.buf))
	copy(nb.buf, b.buf)
	return nb
}

// Move transfers the storage to a new descriptor without copying bytes.
//
// The receiver is retired: it reports zero length and capacity, and any
// further mutation panics. The new descriptor starts with a zero growth count.
func (b *Buffer) Move() *Buffer {
	b.mustLive()
	nb := &Buffer{buf: b.buf}
	b.buf = nil
	b.moved = true
	return nb
}

// Freeze returns an exact-size immutable copy of the contents.
func (b *Buffer) Freeze() *Frozen {
	return &Frozen{s: string(b.buf)}
}

// View borrows the current bytes without copying.
//
// The returned View aliases the Buffer's storage and must not be used after
// the Buffer is mutated.
func (b *Buffer) View() *View {
	return &View{s: unsafe.String(unsafe.SliceData(b.buf), len(b.buf))}
}

// grow ensures there is room for n more bytes.
func (b *Buffer) grow(n int) {
	b.mustLive()
	need := len(b.buf) + n
	if need <= cap(b.buf) {
		return
	}
	nb := make([]byte, len(b.buf), growCap(cap(b.buf), need))
	copy(nb, b.buf)
	b.buf = nb
	b.growths++
}

// ownedStorage returns a Buffer of length n over new storage sized to n,
// or minGrowCap when n is zero.
func ownedStorage(n int) *Buffer {
	if n == 0 {
		return NewBuffer(minGrowCap)
	}
	return &Buffer{buf: make([]byte, n)}
}

// growCap returns the capacity chosen when need exceeds old.
func growCap(old, need int) int {
	return max(2*old, need, minGrowCap)
}

func (b *Buffer) mustLive() {
	if b.moved {
		panic("layout: use of moved Buffer")
	}
}
