// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package extractor

import (
	"log/slog"
	"slices"

	"github.com/NVIDIA/snapraid-metrics/pkg/defaults"
	"github.com/NVIDIA/snapraid-metrics/pkg/emitter"
	"github.com/NVIDIA/snapraid-metrics/pkg/redact"
	"github.com/NVIDIA/snapraid-metrics/pkg/snapraid"
)

// Supported operation names.
const (
	OpSmart  = "smart"
	OpScrub  = "scrub"
	OpSync   = "sync"
	OpDiff   = "diff"
	OpStatus = "status"
)

// Env carries the per-run sinks an extractor writes through.
type Env struct {
	Emitter  *emitter.Emitter
	Redactor *redact.Redactor
}

// Extractor converts one operation's output into samples on env.Emitter.
type Extractor interface {
	// Operation returns the snapraid operation this extractor handles.
	Operation() string

	// Extract declares the operation's metrics and samples whatever it
	// can find in inv.Stdout.
	Extract(inv *snapraid.Invocation, env *Env)
}

var operations = []string{OpSmart, OpScrub, OpSync, OpDiff, OpStatus}

var registry = map[string]Extractor{
	OpSmart:  &SmartExtractor{},
	OpScrub:  NewScanExtractor(OpScrub),
	OpSync:   NewScanExtractor(OpSync),
	OpDiff:   &DiffExtractor{},
	OpStatus: &StatusExtractor{},
}

// ForOperation returns the extractor registered for name.
func ForOperation(name string) (Extractor, bool) {
	ex, ok := registry[name]
	return ex, ok
}

// Operations lists the supported operations in canonical order.
func Operations() []string {
	return slices.Clone(operations)
}

// IsOperation reports whether name is a supported operation.
func IsOperation(name string) bool {
	_, ok := registry[name]
	return ok
}

// MetricName builds the exported name for an operation-scoped metric.
func MetricName(operation, suffix string) string {
	return defaults.MetricPrefix + operation + "_" + suffix
}

func (e *Env) declare(name, help string) {
	if err := e.Emitter.Declare(name, help); err != nil {
		slog.Error("failed to declare metric", "metric", name, "error", err)
	}
}

func (e *Env) sample(name string, labels emitter.Labels, value float64) {
	if err := e.Emitter.Sample(name, labels, value); err != nil {
		slog.Error("failed to emit sample", "metric", name, "error", err)
	}
}

func (e *Env) redact(raw string) string {
	return e.Redactor.Redact(raw)
}
