// Copyright 2025 The strlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package main implements the strlab CLI.
//
// Usage:
//
//	strlab                               # run every scenario
//	strlab demo capacity cow --metrics   # selected scenarios plus a summary
//	strlab run reverse "Hello, World!"   # one catalogue operation
//	strlab concurrent --file batch.yaml  # concurrent units from a batch file
//	strlab inspect --kind cow "text"     # layout of a single value
//	strlab version
//
// Verbosity is set with --verbosity (quiet, normal, debug) or the
// STRLAB_VERBOSITY environment variable; the flag wins.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
