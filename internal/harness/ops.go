// Copyright 2025 The strlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package harness

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kolkov/strlab/internal/layout"
)

// Op names a catalogue operation.
type Op string

// Catalogue operations.
const (
	OpReverse    Op = "reverse"
	OpUppercase  Op = "uppercase"
	OpRepeat     Op = "repeat"
	OpInterleave Op = "interleave"
	OpBracket    Op = "bracket"
)

// Ops returns the catalogue in presentation order.
func Ops() []Op {
	return []Op{OpReverse, OpUppercase, OpRepeat, OpInterleave, OpBracket}
}

var (
	// ErrUnknownOperation is returned by ParseOp and Run for names outside
	// the catalogue.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrInvalidParams is returned by Run when Params do not fit the operation.
	ErrInvalidParams = errors.New("invalid operation parameters")
)

// ParseOp validates an operation name.
func ParseOp(name string) (Op, error) {
	for _, op := range Ops() {
		if string(op) == name {
			return op, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnknownOperation, name, opNames())
}

func opNames() string {
	names := make([]string, 0, len(Ops()))
	for _, op := range Ops() {
		names = append(names, string(op))
	}
	return strings.Join(names, ", ")
}

// Params carries the operation arguments.
type Params struct {
	// Count is the number of copies for repeat. Zero empties the value.
	Count int

	// Other is the text interleaved with the input.
	Other string
}

// Run applies op to an owned copy of input and reports the result.
func (h *Harness) Run(op Op, input string, p Params) (Report, error) {
	apply, err := catalogue(op, p)
	if err != nil {
		return Report{}, err
	}
	work := layout.BufferFrom(input)
	return h.Observe(string(op), work, func() layout.Text {
		return apply(work)
	})
}

func catalogue(op Op, p Params) (func(*layout.Buffer) layout.Text, error) {
	switch op {
	case OpReverse:
		return reverse, nil
	case OpUppercase:
		return uppercase, nil
	case OpRepeat:
		if p.Count < 0 {
			return nil, fmt.Errorf("%w: repeat count %d is negative", ErrInvalidParams, p.Count)
		}
		return repeat(p.Count), nil
	case OpInterleave:
		return interleave(p.Other), nil
	case OpBracket:
		return bracket, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}
}

// reverse produces a new value holding the runes of b in reverse order.
// Bytes are copied per rune, so invalid sequences keep their length.
func reverse(b *layout.Buffer) layout.Text {
	s := b.View().String()
	if s == "" {
		return b.Clone()
	}
	out := layout.NewBuffer(len(s))
	for i := len(s); i > 0; {
		_, size := utf8.DecodeLastRuneInString(s[:i])
		out.AppendString(s[i-size : i])
		i -= size
	}
	return out
}

func uppercase(b *layout.Buffer) layout.Text {
	b.SetString(strings.ToUpper(b.View().String()))
	return b
}

func repeat(count int) func(*layout.Buffer) layout.Text {
	return func(b *layout.Buffer) layout.Text {
		if count == 0 {
			b.Truncate(0)
			return b
		}
		// The view keeps the original bytes alive across reallocation.
		unit := b.View().String()
		for i := 1; i < count; i++ {
			b.AppendString(unit)
		}
		return b
	}
}

func interleave(other string) func(*layout.Buffer) layout.Text {
	return func(b *layout.Buffer) layout.Text {
		s := b.String()
		b.Truncate(0)
		i, j := 0, 0
		for i < len(s) || j < len(other) {
			if i < len(s) {
				_, n := utf8.DecodeRuneInString(s[i:])
				b.AppendString(s[i : i+n])
				i += n
			}
			if j < len(other) {
				_, n := utf8.DecodeRuneInString(other[j:])
				b.AppendString(other[j : j+n])
				j += n
			}
		}
		return b
	}
}

func bracket(b *layout.Buffer) layout.Text {
	b.SetString("[" + b.View().String() + "]")
	return b
}
