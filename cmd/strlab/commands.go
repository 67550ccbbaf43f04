// Copyright 2025 The strlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kolkov/strlab/internal/config"
	"github.com/kolkov/strlab/internal/harness"
	"github.com/kolkov/strlab/internal/lab"
	"github.com/kolkov/strlab/internal/layout"
	"github.com/kolkov/strlab/internal/metrics"
	"github.com/kolkov/strlab/strlab"
)

func newDemoCmd(a *app) *cobra.Command {
	var withMetrics bool

	cmd := &cobra.Command{
		Use:   "demo [scenario...]",
		Short: "Run guided scenarios",
		Long: `Runs the named scenarios in order, or all of them.

Scenarios: ` + strings.Join(lab.Names(), ", "),
		ValidArgs: lab.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !withMetrics {
				return a.lab(cmd, nil).Run(args...)
			}

			collector := metrics.New()
			h := a.harness(harness.WithRecorder(collector))
			runErr := a.lab(cmd, h).Run(args...)

			summary, err := collector.Summary()
			if err != nil {
				return errors.Join(runErr, fmt.Errorf("gathering metrics: %w", err))
			}
			a.printer(cmd).Summary(summary)
			return runErr
		},
	}
	cmd.Flags().BoolVar(&withMetrics, "metrics", false, "print a per-operation summary afterwards")
	return cmd
}

func newRunCmd(a *app) *cobra.Command {
	var p harness.Params

	cmd := &cobra.Command{
		Use:   "run <operation> <input>",
		Short: "Observe one catalogue operation",
		Long: `Observes one operation on an owned copy of input.

Operations: reverse, uppercase, repeat (--count), interleave (--other), bracket`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := harness.ParseOp(args[0])
			if err != nil {
				return err
			}
			rep, err := a.harness().Run(op, args[1], p)
			if rep.Operation != "" {
				a.printer(cmd).Report(rep)
			}
			return err
		},
	}
	cmd.Flags().IntVar(&p.Count, "count", 2, "copies for repeat")
	cmd.Flags().StringVar(&p.Other, "other", "", "text interleaved with the input")
	return cmd
}

func newConcurrentCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "concurrent [input...]",
		Short: "Run independent units concurrently",
		Long: `Runs one bracket operation per unit on a bounded worker pool.

Units come from --file (a YAML list of {input, latency} items) or from the
arguments, which run with no simulated latency.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var items []harness.WorkItem
			switch {
			case file != "" && len(args) > 0:
				return errors.New("use either --file or input arguments, not both")
			case file != "":
				loaded, err := lab.LoadBatchFile(file)
				if err != nil {
					return err
				}
				items = loaded
			case len(args) > 0:
				for _, in := range args {
					items = append(items, harness.WorkItem{Input: in})
				}
			default:
				return errors.New("no units: pass --file or input arguments")
			}
			return a.lab(cmd, nil).Batch(items)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML batch file")
	return cmd
}

func newInspectCmd(a *app) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "inspect <text>",
		Short: "Show the layout and UTF-8 encoding of a value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := textOfKind(kind, args[0])
			if err != nil {
				return err
			}
			p := a.printer(cmd)
			s := layout.Capture(t)
			p.Snapshot(kind, s)
			if p.Verbosity() == config.Quiet {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			p.Bytes(t.String())
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "buffer", "value kind: buffer, view, frozen or cow")
	return cmd
}

// textOfKind materializes s as the requested kind.
func textOfKind(kind, s string) (layout.Text, error) {
	switch kind {
	case "buffer":
		return layout.BufferFrom(s), nil
	case "view":
		return layout.Borrow(s), nil
	case "frozen":
		return layout.Freeze(s), nil
	case "cow":
		return layout.NewCow(layout.Borrow(s)), nil
	default:
		return nil, fmt.Errorf("unknown kind %q (want buffer, view, frozen or cow)", kind)
	}
}

func newVersionCmd() *cobra.Command {
	var minimum string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := strlab.GetInfo()
			fmt.Fprintln(cmd.OutOrStdout(), info)
			if minimum == "" {
				return nil
			}
			ok, err := strlab.Satisfies(minimum)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("strlab %s does not satisfy %s", info.Version, minimum)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&minimum, "require", "", "fail unless this release satisfies the given version")
	return cmd
}
