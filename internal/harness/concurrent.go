// Copyright 2025 The strlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package harness

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/kolkov/strlab/internal/classify"
)

// SchedulerConfig configures RunConcurrent.
//
// Usage:
//
//	// Default: one worker per GOMAXPROCS
//	h := harness.New()
//
//	// At most 4 operations in flight
//	h := harness.New(harness.WithScheduler(harness.SchedulerConfig{Workers: 4}))
type SchedulerConfig struct {
	// Workers bounds the number of operations running at once. Latency
	// waits are not bounded and always overlap.
	// Default: runtime.GOMAXPROCS(0).
	Workers int

	// Operation applied by each unit.
	// Default: OpBracket.
	Operation Op

	// Params passed to Operation.
	Params Params
}

func (c SchedulerConfig) normalize() SchedulerConfig {
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Operation == "" {
		c.Operation = OpBracket
	}
	return c
}

// WorkItem is one unit of concurrent work.
type WorkItem struct {
	// Input is copied into a value owned by the unit.
	Input string

	// Latency is slept before the unit takes a worker slot.
	Latency time.Duration
}

// RunConcurrent runs one unit per item and returns the reports in input
// order once every unit has completed.
//
// Units share nothing but the Harness. A unit whose clock fails keeps its
// error in Report.Err and does not affect the others. Classification
// precondition violations are also returned, joined, as the error.
func (h *Harness) RunConcurrent(items []WorkItem) ([]Report, error) {
	cfg := h.sched
	if _, err := catalogue(cfg.Operation, cfg.Params); err != nil {
		return nil, err
	}

	batch := uuid.NewString()
	log := h.logger.With(zap.String("batch", batch))
	log.Debug("dispatching units",
		zap.Int("units", len(items)),
		zap.Int("workers", cfg.Workers),
		zap.String("operation", string(cfg.Operation)))

	reports := make([]Report, len(items))

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	ctx := context.Background()

	var g errgroup.Group
	for i, item := range items {
		g.Go(func() error {
			time.Sleep(item.Latency)
			if err := sem.Acquire(ctx, 1); err != nil {
				return err
			}
			rep, _ := h.Run(cfg.Operation, item.Input, cfg.Params)
			sem.Release(1)

			rep.Latency = item.Latency
			reports[i] = rep
			log.Debug("unit completed",
				zap.Int("unit", i),
				zap.Duration("latency", item.Latency),
				zap.Stringer("class", rep.Decision.Class),
				zap.Error(rep.Err))
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for i, rep := range reports {
		if errors.Is(rep.Err, classify.ErrPrecondition) {
			errs = append(errs, fmt.Errorf("unit %d: %w", i, rep.Err))
		}
	}
	return reports, errors.Join(errs...)
}
