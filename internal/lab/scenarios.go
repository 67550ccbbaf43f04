// Copyright 2025 The strlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lab

import (
	"time"
	"unicode/utf8"
	"unsafe"

	"github.com/kolkov/strlab/internal/harness"
	"github.com/kolkov/strlab/internal/layout"
)

func (l *Lab) types() error {
	literal := layout.Literal("Gopher")
	l.p.Narrate("A literal view borrows bytes from the binary's read-only data.")
	l.p.Snapshot("literal view", layout.Capture(literal))

	owned := layout.BufferFrom("Gophers everywhere")
	owned.Reserve(6)
	l.p.Narrate("A buffer owns heap storage with room to grow.")
	l.p.Snapshot("owned buffer", layout.Capture(owned))

	frozen := layout.Freeze("Ferris")
	l.p.Narrate("A frozen value owns exact-size storage and never grows.")
	l.p.Snapshot("frozen", layout.Capture(frozen))

	cow := layout.NewCow(literal)
	l.p.Narrate("A copy-on-write value borrows until its first write.")
	l.p.Snapshot("copy-on-write", layout.Capture(cow))

	l.p.Narrate("Descriptor sizes: string %d bytes (ptr + len), []byte %d bytes (ptr + len + cap).",
		unsafe.Sizeof(""), unsafe.Sizeof([]byte(nil)))
	l.p.Bytes(literal.String())
	return nil
}

func (l *Lab) ownership() error {
	l.p.Narrate("Moving transfers the storage; nothing is copied.")
	original := layout.BufferFrom("Hello, ownership!")
	moved, rep, err := l.h.Move(original)
	if err := l.show(rep, err); err != nil {
		return err
	}

	l.p.Narrate("Cloning copies every byte into a new allocation.")
	_, rep, err = l.h.Clone(moved)
	return l.show(rep, err)
}

func (l *Lab) capacity() error {
	b := layout.NewBuffer(5)
	b.AppendString("Hello")
	l.p.Narrate("The buffer is full: len 5, cap 5. Appending must reallocate.")
	if err := l.show(l.h.Push(b, " Go")); err != nil {
		return err
	}
	l.p.Narrate("Capacity at least doubled, so the next append fits in place.")
	if err := l.show(l.h.Push(b, "!")); err != nil {
		return err
	}

	reserved := layout.NewBuffer(0)
	reserved.Reserve(32)
	l.p.Narrate("Reserving up front avoids the reallocation entirely.")
	return l.show(l.h.Push(reserved, "Hello World!"))
}

func (l *Lab) cow() error {
	c := layout.NewCow(layout.Literal("borrowed text"))

	l.p.Narrate("Reading a copy-on-write value never copies.")
	if err := l.show(l.h.CowRead(c)); err != nil {
		return err
	}
	l.p.Narrate("The first write copies the borrowed bytes into owned storage.")
	if err := l.show(l.h.CowWrite(c, " [modified]")); err != nil {
		return err
	}
	l.p.Narrate("Later writes go to the owned storage.")
	return l.show(l.h.CowWrite(c, "!"))
}

// concurrentItems are the units of the concurrent scenario.
var concurrentItems = []harness.WorkItem{
	{Input: "fetch", Latency: 30 * time.Millisecond},
	{Input: "call", Latency: 10 * time.Millisecond},
	{Input: "read", Latency: 20 * time.Millisecond},
}

func (l *Lab) concurrent() error {
	return l.Batch(concurrentItems)
}

// Batch runs items concurrently and prints the reports in input order.
func (l *Lab) Batch(items []harness.WorkItem) error {
	l.p.Narrate("Launching %d independent units; each owns its value.", len(items))
	start := time.Now()
	reports, err := l.h.RunConcurrent(items)
	wall := time.Since(start)
	for _, rep := range reports {
		l.p.Report(rep)
	}
	var sum time.Duration
	for _, it := range items {
		sum += it.Latency
	}
	l.p.Narrate("Wall time %s against %s of summed latency.", wall.Round(time.Millisecond), sum)
	return err
}

// transformStep is one catalogue operation shown by the transformations
// scenario.
type transformStep struct {
	note   string
	op     harness.Op
	input  string
	params harness.Params
}

func transformationSteps() []transformStep {
	return []transformStep{
		{note: "Reversal builds a new value of the same size.", op: harness.OpReverse, input: "Hello, World!"},
		{note: "Case mapping is Unicode-aware and may change the byte length.", op: harness.OpUppercase, input: "Straße"},
		{note: "Repetition appends in place and grows as needed.", op: harness.OpRepeat, input: "Go ", params: harness.Params{Count: 5}},
		{note: "Interleaving alternates runes of two texts.", op: harness.OpInterleave, input: "GOPHER", params: harness.Params{Other: "gopher"}},
		{note: "Bracketing always outgrows an exact-size buffer.", op: harness.OpBracket, input: "Go"},
	}
}

func (l *Lab) transformations() error {
	return l.transform(transformationSteps())
}

// transform runs steps in order. A reversal is followed by the byte
// breakdown of the value it produced.
func (l *Lab) transform(steps []transformStep) error {
	for _, s := range steps {
		l.p.Narrate(s.note)
		rep, err := l.h.Run(s.op, s.input, s.params)
		if err := l.show(rep, err); err != nil {
			return err
		}
		if rep.Err != nil {
			continue
		}
		switch {
		case s.op == harness.OpReverse:
			l.p.Bytes(rep.Output)
		case s.op == harness.OpUppercase && len(rep.Output) != len(rep.Input):
			l.p.Narrate("Byte length changed %d -> %d.", len(rep.Input), len(rep.Output))
		}
	}
	return nil
}

func (l *Lab) unicode() error {
	for _, s := range []string{"Gopher", "日本語", "Go 🚀"} {
		l.p.Bytes(s)
	}

	mixed := "Go 🚀"
	l.p.Narrate("%q is %d bytes but %d runes; byte 4 falls inside the rocket.",
		mixed, len(mixed), utf8.RuneCountInString(mixed))
	i := 0
	for _, r := range mixed {
		l.p.Narrate("  rune[%d] = %q (%d bytes)", i, r, utf8.RuneLen(r))
		i++
	}
	return nil
}
