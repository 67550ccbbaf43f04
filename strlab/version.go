// Copyright 2025 The strlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package strlab

import (
	"fmt"
	"runtime"

	"golang.org/x/mod/semver"
)

// Version is the semantic version of this release.
const Version = "v0.1.0"

// Info describes the build.
type Info struct {
	// Version is the full semantic version.
	Version string

	// Major is the major version prefix, e.g. "v0".
	Major string

	// GoVersion is the toolchain the binary was built with.
	GoVersion string
}

// String formats the info for a version command.
func (i Info) String() string {
	return fmt.Sprintf("strlab %s (%s)", i.Version, i.GoVersion)
}

// GetInfo returns build information.
func GetInfo() Info {
	return Info{
		Version:   Version,
		Major:     semver.Major(Version),
		GoVersion: runtime.Version(),
	}
}

// Satisfies reports whether this release is at least minimum and shares
// its major version. minimum must be a valid semantic version with a
// leading "v".
func Satisfies(minimum string) (bool, error) {
	if !semver.IsValid(minimum) {
		return false, fmt.Errorf("invalid version %q", minimum)
	}
	return semver.Major(minimum) == semver.Major(Version) &&
		semver.Compare(Version, minimum) >= 0, nil
}
