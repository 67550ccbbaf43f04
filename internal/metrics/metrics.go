// Copyright 2025 The strlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics aggregates harness reports into prometheus collectors.
//
// The collectors live in a private registry and are gathered in-process to
// print a per-operation summary; nothing is exposed over the network.
//
// Metrics:
//   - strlab_operation_duration_seconds{operation}: histogram of elapsed time
//   - strlab_classifications_total{operation,class}: counter per outcome
//   - strlab_operation_failures_total{operation,reason}: failed steps
package metrics

import (
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/kolkov/strlab/internal/classify"
)

const namespace = "strlab"

// Collector records one observation per harness report.
//
// Thread Safety: Safe for concurrent use; concurrent units share one
// Collector.
type Collector struct {
	registry  *prometheus.Registry
	durations *prometheus.HistogramVec
	classes   *prometheus.CounterVec
	failures  *prometheus.CounterVec
}

// New creates a Collector registered in its own registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Elapsed time of instrumented text operations.",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 10, 8), // 100ns .. 1s
		}, []string{"operation"}),
		classes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifications_total",
			Help:      "Operations by classification outcome.",
		}, []string{"operation", "class"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_failures_total",
			Help:      "Operations that could not produce a report.",
		}, []string{"operation", "reason"}),
	}
	c.registry.MustRegister(c.durations, c.classes, c.failures)
	return c
}

// Registry returns the registry holding the collectors.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveOperation records a completed, classified operation.
func (c *Collector) ObserveOperation(op string, class classify.Class, elapsed time.Duration) {
	c.durations.WithLabelValues(op).Observe(elapsed.Seconds())
	c.classes.WithLabelValues(op, class.String()).Inc()
}

// ObserveFailure records an operation that failed with the given reason.
func (c *Collector) ObserveFailure(op, reason string) {
	c.failures.WithLabelValues(op, reason).Inc()
}

// OperationSummary aggregates every observation of one operation.
type OperationSummary struct {
	Operation string
	Runs      uint64
	Total     time.Duration
	Classes   map[string]uint64
	Failures  uint64
}

// Mean returns the average elapsed time per run.
func (s OperationSummary) Mean() time.Duration {
	if s.Runs == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Runs)
}

// Summary gathers the registry and returns one entry per operation,
// sorted by operation name.
func (c *Collector) Summary() ([]OperationSummary, error) {
	families, err := c.registry.Gather()
	if err != nil {
		return nil, err
	}

	byOp := make(map[string]*OperationSummary)
	entry := func(op string) *OperationSummary {
		s, ok := byOp[op]
		if !ok {
			s = &OperationSummary{Operation: op, Classes: make(map[string]uint64)}
			byOp[op] = s
		}
		return s
	}

	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := labelMap(m)
			s := entry(labels["operation"])
			switch mf.GetName() {
			case namespace + "_operation_duration_seconds":
				h := m.GetHistogram()
				s.Runs += h.GetSampleCount()
				s.Total += time.Duration(h.GetSampleSum() * float64(time.Second))
			case namespace + "_classifications_total":
				s.Classes[labels["class"]] += uint64(m.GetCounter().GetValue())
			case namespace + "_operation_failures_total":
				s.Failures += uint64(m.GetCounter().GetValue())
			}
		}
	}

	out := make([]OperationSummary, 0, len(byOp))
	for _, s := range byOp {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Operation < out[j].Operation })
	return out, nil
}

func labelMap(m *dto.Metric) map[string]string {
	labels := make(map[string]string, len(m.GetLabel()))
	for _, lp := range m.GetLabel() {
		labels[lp.GetName()] = lp.GetValue()
	}
	return labels
}
