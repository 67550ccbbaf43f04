// Copyright 2025 The strlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kolkov/strlab/internal/config"
	"github.com/kolkov/strlab/internal/harness"
	"github.com/kolkov/strlab/internal/lab"
	"github.com/kolkov/strlab/internal/present"
)

// app holds the state shared by all commands once flags are parsed.
type app struct {
	verbosity string
	workers   int

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "strlab",
		Short: "Text memory introspection laboratory",
		Long: `strlab shows what text operations do to memory.

It captures where a value's bytes live before and after an operation and
classifies the difference: in place, reallocated, cloned, moved, or a
deferred copy avoided or triggered.

Run without arguments to walk through every scenario.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.lab(cmd, nil).Run()
		},
	}

	root.PersistentFlags().StringVar(&a.verbosity, "verbosity", "normal",
		"output verbosity: quiet, normal or debug (env "+config.EnvVerbosity+")")
	root.PersistentFlags().IntVar(&a.workers, "workers", 0,
		"concurrent operations in flight, 0 for GOMAXPROCS (env "+config.EnvWorkers+")")

	root.AddCommand(
		newDemoCmd(a),
		newRunCmd(a),
		newConcurrentCmd(a),
		newInspectCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup resolves the configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	var flags config.Flags
	if f := cmd.Flags().Lookup("verbosity"); f != nil && f.Changed {
		flags.Verbosity = &a.verbosity
	}
	if f := cmd.Flags().Lookup("workers"); f != nil && f.Changed {
		flags.Workers = &a.workers
	}

	cfg, err := config.Resolve(flags)
	if err != nil {
		return err
	}
	logger, err := cfg.Logger()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	a.logger.Debug("configuration resolved",
		zap.Stringer("verbosity", cfg.Verbosity),
		zap.Int("workers", cfg.Workers))
	return nil
}

func (a *app) printer(cmd *cobra.Command) *present.Printer {
	return present.New(cmd.OutOrStdout(), a.cfg.Verbosity)
}

func (a *app) harness(opts ...harness.Option) *harness.Harness {
	base := []harness.Option{
		harness.WithLogger(a.logger),
		harness.WithScheduler(harness.SchedulerConfig{Workers: a.cfg.Workers}),
	}
	return harness.New(append(base, opts...)...)
}

func (a *app) lab(cmd *cobra.Command, h *harness.Harness) *lab.Lab {
	if h == nil {
		h = a.harness()
	}
	return lab.New(h, a.printer(cmd), a.logger)
}
