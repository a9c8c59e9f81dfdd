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

package orchestrator

import (
	"context"
	"log/slog"
	"time"

	"github.com/NVIDIA/snapraid-metrics/pkg/defaults"
	"github.com/NVIDIA/snapraid-metrics/pkg/extractor"
	"github.com/NVIDIA/snapraid-metrics/pkg/snapraid"
)

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithDefaultArgs sets the per-operation arguments placed before caller
// arguments.
func WithDefaultArgs(args map[string][]string) Option {
	return func(o *Orchestrator) {
		o.defaultArgs = args
	}
}

// WithDryRun skips tool execution; extractors still run over empty output.
func WithDryRun(dryRun bool) Option {
	return func(o *Orchestrator) {
		o.dryRun = dryRun
	}
}

// WithClock overrides the time source used for dry-run invocations and
// last-ran timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// Orchestrator executes requests one at a time against a shared Env.
type Orchestrator struct {
	runner      snapraid.Runner
	env         *extractor.Env
	defaultArgs map[string][]string
	dryRun      bool
	now         func() time.Time
}

// New creates an Orchestrator that invokes runner and emits through env.
func New(runner snapraid.Runner, env *extractor.Env, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		runner: runner,
		env:    env,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes req and emits its metrics. The returned invocation carries
// the exit status after diff remapping.
func (o *Orchestrator) Run(ctx context.Context, req Request) *snapraid.Invocation {
	args := MergeArgs(o.defaultArgs[req.Operation], req.Args)

	var inv *snapraid.Invocation
	if o.dryRun {
		now := o.now()
		inv = &snapraid.Invocation{
			Operation: req.Operation,
			Args:      args,
			Start:     now,
			End:       now,
			DryRun:    true,
		}
		slog.Info("operation skipped (dry-run)",
			"operation", req.Operation,
			"command", inv.CommandLine())
	} else {
		inv = o.runner.Execute(ctx, req.Operation, args)
	}

	if inv.Operation == extractor.OpDiff && inv.ExitStatus == defaults.ExitStatusDiffChanges {
		inv.SyncRequired = true
		inv.ExitStatus = defaults.ExitStatusSuccess
		slog.Debug("diff reported changes", "operation", inv.Operation)
	}

	o.emitBaseline(inv)

	ex, ok := extractor.ForOperation(inv.Operation)
	if !ok {
		slog.Warn("no extractor for operation", "operation", inv.Operation)
		return inv
	}
	ex.Extract(inv, o.env)
	return inv
}

func (o *Orchestrator) emitBaseline(inv *snapraid.Invocation) {
	completed := inv.End
	if completed.IsZero() {
		completed = o.now()
	}

	em := o.env.Emitter
	baseline := []struct {
		suffix string
		help   string
		value  float64
	}{
		{"exit_status", "Exit status of the last " + inv.Operation + " run; 124 means it timed out.", float64(inv.ExitStatus)},
		{"last_ran", "Completion time of the last " + inv.Operation + " run in epoch milliseconds.", float64(completed.UnixMilli())},
		{"duration_seconds", "Duration of the last " + inv.Operation + " run in seconds.", float64(inv.DurationMillis()) / 1000},
	}

	for _, b := range baseline {
		name := extractor.MetricName(inv.Operation, b.suffix)
		if err := em.Declare(name, b.help); err != nil {
			slog.Error("failed to declare metric", "metric", name, "error", err)
			continue
		}
		if err := em.Sample(name, nil, b.value); err != nil {
			slog.Error("failed to emit sample", "metric", name, "error", err)
		}
	}
}
