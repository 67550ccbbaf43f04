// Copyright 2025 The strlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package clock provides the monotonic time source used to time operations.
//
// An Instant is a single monotonic reading. Two instants from the same
// Clock subtract to a Duration with nanosecond resolution:
//
//	start, err := c.Now()
//	...
//	end, err := c.Now()
//	elapsed := end.Sub(start)
//
// Readings without a monotonic component (wall-clock only) are rejected with
// ErrUnavailable, because wall-clock differences can jump or go backwards.
package clock

import (
	"errors"
	"strconv"
	"time"
)

// ErrUnavailable reports that the monotonic clock could not be read.
var ErrUnavailable = errors.New("monotonic clock unavailable")

// Resolution is the smallest elapsed time reported by Sub.
const Resolution = time.Nanosecond

// Clock reads monotonic instants.
//
// Thread Safety: implementations must be safe for concurrent use; the
// clock is the only state shared between concurrent units.
type Clock interface {
	Now() (Instant, error)
}

// Instant is a monotonic clock reading.
type Instant struct {
	t time.Time
}

// At wraps t as an Instant. It is intended for Clock implementations.
func At(t time.Time) Instant {
	return Instant{t: t}
}

// Sub returns the elapsed time from start to i.
//
// Measurements below the clock's resolution are reported as Resolution so
// that every measured operation has a positive duration.
func (i Instant) Sub(start Instant) time.Duration {
	d := i.t.Sub(start.t)
	if d < Resolution {
		return Resolution
	}
	return d
}

// IsZero reports whether the instant was never read.
func (i Instant) IsZero() bool {
	return i.t.IsZero()
}

// String returns the reading as nanoseconds on the wall clock.
// Only used for debugging output.
func (i Instant) String() string {
	return strconv.FormatInt(i.t.UnixNano(), 10) + "ns"
}

// System returns the process-wide monotonic clock.
func System() Clock {
	return systemClock{}
}

type systemClock struct{}

// Now reads time.Now and verifies it carries a monotonic reading.
//
// Round(0) strips the monotonic component, so a reading that compares equal
// to its rounded self never had one.
func (systemClock) Now() (Instant, error) {
	now := time.Now()
	if now == now.Round(0) {
		return Instant{}, ErrUnavailable
	}
	return Instant{t: now}, nil
}

// Func adapts a function to the Clock interface.
type Func func() (Instant, error)

// Now calls f.
func (f Func) Now() (Instant, error) {
	return f()
}
