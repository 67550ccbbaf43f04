// Copyright 2025 The strlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config resolves the CLI configuration.
//
// Values come from, in order of precedence: command-line flags, STRLAB_*
// environment variables, defaults. The engine packages never read
// configuration; they receive what they need through options.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Environment variables.
const (
	EnvVerbosity = "STRLAB_VERBOSITY"
	EnvWorkers   = "STRLAB_WORKERS"
)

// Verbosity controls how much the presentation layer and the logger emit.
type Verbosity int

const (
	// Quiet prints results only; the logger emits warnings and errors.
	Quiet Verbosity = iota
	// Normal adds narration and panels.
	Normal
	// Debug adds decision trails and debug logs.
	Debug
)

// ErrInvalidVerbosity is returned for names other than quiet, normal, debug.
var ErrInvalidVerbosity = errors.New("invalid verbosity")

// ParseVerbosity parses a verbosity name, case-insensitively.
func ParseVerbosity(s string) (Verbosity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quiet":
		return Quiet, nil
	case "normal":
		return Normal, nil
	case "debug":
		return Debug, nil
	default:
		return Normal, fmt.Errorf("%w: %q (want quiet, normal or debug)", ErrInvalidVerbosity, s)
	}
}

// String returns the verbosity name.
func (v Verbosity) String() string {
	switch v {
	case Quiet:
		return "quiet"
	case Normal:
		return "normal"
	case Debug:
		return "debug"
	default:
		return "unknown"
	}
}

// Config is the resolved CLI configuration.
type Config struct {
	// Verbosity of output and logs. Default: Normal.
	Verbosity Verbosity

	// Workers bounds concurrent operations. Default: runtime.GOMAXPROCS(0).
	Workers int
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Verbosity: Normal,
		Workers:   runtime.GOMAXPROCS(0),
	}
}

// Flags carries the command-line values. A nil field was not set.
type Flags struct {
	Verbosity *string
	Workers   *int
}

// Resolve merges flags over the environment over defaults.
func Resolve(f Flags) (Config, error) {
	return resolve(f, os.LookupEnv)
}

func resolve(f Flags, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if f.Verbosity != nil {
		v, err := ParseVerbosity(*f.Verbosity)
		if err != nil {
			return Config{}, fmt.Errorf("--verbosity: %w", err)
		}
		cfg.Verbosity = v
	} else if s, ok := lookup(EnvVerbosity); ok {
		v, err := ParseVerbosity(s)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvVerbosity, err)
		}
		cfg.Verbosity = v
	}

	if f.Workers != nil {
		cfg.Workers = *f.Workers
	} else if s, ok := lookup(EnvWorkers); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvWorkers, err)
		}
		cfg.Workers = n
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}

	return cfg, nil
}

// LogLevel maps the verbosity to a zap level.
func (c Config) LogLevel() zapcore.Level {
	switch c.Verbosity {
	case Quiet:
		return zapcore.WarnLevel
	case Debug:
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}

// Logger builds the process logger. Logs go to stderr so they never mix
// with the rendered output on stdout.
func (c Config) Logger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(c.LogLevel())
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.DisableStacktrace = c.Verbosity != Debug
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
