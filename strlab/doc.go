// Copyright 2025 The strlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package strlab shows what text operations do to memory.
//
// It captures the physical layout of a text value (where its bytes live,
// how many there are, how much room is left) before and after an
// operation, and classifies the difference: did the operation work in
// place, reallocate, produce a copy, transfer ownership, or defer a copy?
//
// # Text kinds
//
// Four representation kinds are supported:
//
//	*Buffer  owned, growable heap storage (NewBuffer, BufferFrom)
//	*View    borrowed bytes owned elsewhere (Literal, Borrow)
//	*Frozen  owned, exact-size, immutable (Freeze)
//	*Cow     borrowed until the first write (NewCow)
//
// # Observing operations
//
//	h := strlab.NewHarness()
//	rep, err := h.Run(strlab.OpReverse, "Hello, World!", strlab.Params{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(rep.Output, rep.Class()) // !dlroW ,olleH Cloned
//
// Each [Report] carries both snapshots, the [Decision] with its rule and
// trail, and the elapsed time measured on a monotonic clock.
//
// # Classification
//
// [Classify] can also be called directly on two snapshots taken with
// [Capture]. Pairs that match no rule produce a *PreconditionError; the
// classifier never guesses.
//
// # Concurrency
//
// Harness.RunConcurrent runs independent units on a bounded worker pool and
// returns their reports in input order.
//
// # Limitations
//
// strlab is an instructional tool. It is not a profiler and does not track
// allocations outside the values it observes.
package strlab
