// Copyright 2025 The strlab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lab

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kolkov/strlab/internal/harness"
)

// ErrInvalidBatch is returned for batch files that parse but do not
// describe runnable work.
var ErrInvalidBatch = errors.New("invalid batch")

// batchItem is one entry of a batch file:
//
//	- input: fetch
//	  latency: 30ms
type batchItem struct {
	Input   string        `yaml:"input"`
	Latency time.Duration `yaml:"latency"`
}

// LoadBatch decodes a YAML list of work items. Unknown keys are rejected.
func LoadBatch(r io.Reader) ([]harness.WorkItem, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var raw []batchItem
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidBatch)
		}
		return nil, fmt.Errorf("decoding batch: %w", err)
	}

	items := make([]harness.WorkItem, len(raw))
	for i, it := range raw {
		if it.Latency < 0 {
			return nil, fmt.Errorf("%w: item %d: negative latency %s", ErrInvalidBatch, i, it.Latency)
		}
		items[i] = harness.WorkItem{Input: it.Input, Latency: it.Latency}
	}
	return items, nil
}

// LoadBatchFile reads a batch from path.
func LoadBatchFile(path string) ([]harness.WorkItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening batch: %w", err)
	}
	defer f.Close()

	items, err := LoadBatch(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}
