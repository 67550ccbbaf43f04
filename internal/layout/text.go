// Copyright 2025 The strlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import "strings"

// Text is a text value of one of the four representation kinds.
//
// The set is closed: only *Buffer, *View, *Frozen and *Cow implement Text.
type Text interface {
	// Len returns the length in bytes.
	Len() int
	// String returns the contents. For views it aliases the borrowed bytes.
	String() string

	text()
}

// View is a borrowed, non-owning text value.
type View struct {
	s      string
	static bool
}

// Literal borrows a string constant. Its bytes live in the binary's
// read-only data, so the view reports Heap == false.
//
// Only pass string literals or other constants; the package has no way to
// verify where the bytes actually live.
func Literal(s string) *View {
	return &View{s: s, static: true}
}

// Borrow views dynamically allocated text.
func Borrow(s string) *View {
	return &View{s: s}
}

// Len returns the length in bytes.
func (v *View) Len() int { return len(v.s) }

// String returns the borrowed string without copying.
func (v *View) String() string { return v.s }

// Static reports whether the view was created with Literal.
func (v *View) Static() bool { return v.static }

// Slice reborrows bytes [i, j) of the same storage.
func (v *View) Slice(i, j int) *View {
	return &View{s: v.s[i:j], static: v.static}
}

func (v *View) text() {}

// Frozen is an owned, immutable text value with no spare capacity.
type Frozen struct {
	s string
}

// Freeze copies s into a new exact-size allocation.
func Freeze(s string) *Frozen {
	return &Frozen{s: strings.Clone(s)}
}

// Len returns the length in bytes.
func (f *Frozen) Len() int { return len(f.s) }

// String returns the contents.
func (f *Frozen) String() string { return f.s }

func (f *Frozen) text() {}

// Cow is a copy-on-write text value.
//
// It starts on the borrowed branch and switches to an owned Buffer the
// first time ToMut is called. The switch copies the borrowed bytes exactly
// once; later calls return the same Buffer.
type Cow struct {
	borrowed *View
	owned    *Buffer
}

// NewCow starts a Cow on the borrowed branch over v.
func NewCow(v *View) *Cow {
	return &Cow{borrowed: v}
}

// Owned reports whether the deferred copy has happened.
func (c *Cow) Owned() bool { return c.owned != nil }

// Len returns the length in bytes of the active branch.
func (c *Cow) Len() int {
	if c.owned != nil {
		return c.owned.Len()
	}
	return c.borrowed.Len()
}

// String returns the contents of the active branch. Reading never
// triggers the copy.
func (c *Cow) String() string {
	if c.owned != nil {
		return c.owned.String()
	}
	return c.borrowed.String()
}

// Growths returns the reallocations of the owned branch, 0 while borrowed.
func (c *Cow) Growths() int {
	if c.owned != nil {
		return c.owned.Growths()
	}
	return 0
}

// ToMut returns mutable access, copying the borrowed bytes on first use.
// The owned branch always has storage of its own, even when empty.
func (c *Cow) ToMut() *Buffer {
	if c.owned == nil {
		c.owned = ownedStorage(len(c.borrowed.s))
		copy(c.owned.buf, c.borrowed.s)
		c.borrowed = nil
	}
	return c.owned
}

func (c *Cow) text() {}
