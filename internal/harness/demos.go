// Copyright 2025 The strlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package harness

import "github.com/kolkov/strlab/internal/layout"

// Clone observes b.Clone(). Both values stay live; the clone is returned.
func (h *Harness) Clone(b *layout.Buffer) (*layout.Buffer, Report, error) {
	var c *layout.Buffer
	rep, err := h.Observe("clone", b, func() layout.Text {
		c = b.Clone()
		return c
	})
	return c, rep, err
}

// Move observes b.Move(). b is retired; the new owner is returned.
func (h *Harness) Move(b *layout.Buffer) (*layout.Buffer, Report, error) {
	var m *layout.Buffer
	rep, err := h.Observe("move", b, func() layout.Text {
		m = b.Move()
		return m
	})
	return m, rep, err
}

// Push observes appending s to b in place.
func (h *Harness) Push(b *layout.Buffer, s string) (Report, error) {
	return h.Observe("push", b, func() layout.Text {
		b.AppendString(s)
		return b
	})
}

// CowRead observes a read of c. Reading never triggers the copy.
func (h *Harness) CowRead(c *layout.Cow) (Report, error) {
	return h.Observe("cow-read", c, func() layout.Text {
		_ = c.Len()
		_ = c.String()
		return c
	})
}

// CowWrite observes appending suffix through c.ToMut().
func (h *Harness) CowWrite(c *layout.Cow, suffix string) (Report, error) {
	return h.Observe("cow-write", c, func() layout.Text {
		c.ToMut().AppendString(suffix)
		return c
	})
}
