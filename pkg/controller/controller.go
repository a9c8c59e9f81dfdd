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

package controller

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/NVIDIA/snapraid-metrics/pkg/config"
	"github.com/NVIDIA/snapraid-metrics/pkg/defaults"
	"github.com/NVIDIA/snapraid-metrics/pkg/emitter"
	"github.com/NVIDIA/snapraid-metrics/pkg/errors"
	"github.com/NVIDIA/snapraid-metrics/pkg/extractor"
	"github.com/NVIDIA/snapraid-metrics/pkg/orchestrator"
	"github.com/NVIDIA/snapraid-metrics/pkg/redact"
	"github.com/NVIDIA/snapraid-metrics/pkg/snapraid"
)

const versionDefault = "dev"

// Option configures a Controller.
type Option func(*Controller)

// WithVersion sets the version reported in logs and collector metrics.
func WithVersion(v string) Option {
	return func(c *Controller) {
		c.version = v
	}
}

// WithRunner replaces the exec-based runner, mainly for tests.
func WithRunner(r snapraid.Runner) Option {
	return func(c *Controller) {
		c.runner = r
	}
}

// WithStdout sets where metrics stream when no output file is configured.
func WithStdout(w io.Writer) Option {
	return func(c *Controller) {
		c.stdout = w
	}
}

// WithConsole sets where tool output is mirrored in verbose mode.
func WithConsole(w io.Writer) Option {
	return func(c *Controller) {
		c.console = w
	}
}

// WithEUID overrides the effective user id lookup.
func WithEUID(f func() int) Option {
	return func(c *Controller) {
		c.geteuid = f
	}
}

// WithLookPath overrides how the snapraid executable is located.
func WithLookPath(f func(string) (string, error)) Option {
	return func(c *Controller) {
		c.lookPath = f
	}
}

// Controller runs a chain of operations and publishes their metrics.
type Controller struct {
	cfg     *config.Config
	version string

	runner   snapraid.Runner
	stdout   io.Writer
	console  io.Writer
	geteuid  func() int
	lookPath func(string) (string, error)
}

// New creates a Controller for cfg.
func New(cfg *config.Config, opts ...Option) *Controller {
	c := &Controller{
		cfg:      cfg,
		version:  versionDefault,
		stdout:   os.Stdout,
		console:  os.Stderr,
		geteuid:  os.Geteuid,
		lookPath: snapraid.LookPath,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes reqs in order and publishes the metrics. The returned status
// is the last non-zero operation status, or 0. A non-nil error means the run
// could not start or its output could not be published.
func (c *Controller) Run(ctx context.Context, reqs []orchestrator.Request) (int, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := slog.With("run_id", runID)

	toolPath, err := c.checkPreconditions()
	if err != nil {
		log.Error("precondition failed", "error", err)
		return 1, err
	}

	log.Info("starting run",
		"version", c.version,
		"operations", len(reqs),
		"config", c.cfg.String())

	var emOpts []emitter.Option
	if c.cfg.Output == "" {
		emOpts = append(emOpts, emitter.WithLiveOutput(c.stdout))
	}
	em := emitter.New(emOpts...)
	rd := redact.New(c.cfg.Redact)

	runner := c.runner
	if runner == nil {
		runner = c.newExecRunner(toolPath, runID)
	}

	orch := orchestrator.New(runner, &extractor.Env{Emitter: em, Redactor: rd},
		orchestrator.WithDefaultArgs(c.cfg.DefaultArgs()),
		orchestrator.WithDryRun(c.cfg.DryRun))

	var metrics *runMetrics
	if c.cfg.CollectorMetrics {
		metrics = newRunMetrics(c.version)
	}

	status := defaults.ExitStatusSuccess
	for _, req := range reqs {
		inv := orch.Run(ctx, req)
		if metrics != nil {
			metrics.observe(inv)
		}

		if inv.Succeeded() {
			log.Info("operation completed", "operation", inv.Operation, "duration", inv.Duration().String())
			continue
		}
		status = inv.ExitStatus
		log.Warn("operation failed",
			"operation", inv.Operation,
			"exit_status", inv.ExitStatus,
			"timed_out", inv.TimedOut,
			"log", inv.LogPath)
	}

	if metrics != nil {
		metrics.runDuration.Set(time.Since(start).Seconds())
		if err := em.AppendGathered(metrics.registry); err != nil {
			log.Error("failed to append collector metrics", "error", err)
		}
	}

	if err := em.Finalize(c.cfg.Output); err != nil {
		log.Error("failed to publish metrics", "output", c.cfg.Output, "error", err)
		return 1, err
	}

	log.Info("run finished",
		"status", status,
		"samples", em.SampleCount(),
		"redacted", rd.Len(),
		"output", c.cfg.Output,
		"duration", time.Since(start).String())
	return status, nil
}

// checkPreconditions validates the environment and returns the resolved
// tool path. Nothing is written when it fails.
func (c *Controller) checkPreconditions() (string, error) {
	dry := c.cfg.DryRun

	if c.cfg.RequireRoot && !dry {
		if euid := c.geteuid(); euid != 0 {
			return "", errors.NewWithContext(errors.ErrCodeUnauthorized, "snapraid-metrics must run as root",
				map[string]any{"euid": euid})
		}
	}

	toolPath := c.cfg.Snapraid
	if !dry {
		resolved, err := c.lookPath(c.cfg.Snapraid)
		if err != nil {
			return "", errors.WrapWithContext(errors.ErrCodeNotFound, "snapraid executable not found", err,
				map[string]any{"path": c.cfg.Snapraid})
		}
		toolPath = resolved
	}

	if err := emitter.CheckTarget(c.cfg.Output); err != nil {
		return "", err
	}

	// Creating the log directory is the only check with a side effect, so it runs last.
	if c.cfg.LogDir != "" && !dry {
		if err := os.MkdirAll(c.cfg.LogDir, defaults.LogDirMode); err != nil {
			return "", errors.WrapWithContext(errors.ErrCodeUnavailable, "log directory cannot be created", err,
				map[string]any{"path": c.cfg.LogDir})
		}
	}
	return toolPath, nil
}

func (c *Controller) newExecRunner(toolPath, runID string) snapraid.Runner {
	opts := []snapraid.Option{
		snapraid.WithTimeout(c.cfg.TimeoutDuration()),
		snapraid.WithLogDir(c.cfg.LogDir),
		snapraid.WithRunID(runID),
		snapraid.WithJournal(c.cfg.Journal),
	}
	if c.cfg.Verbose {
		opts = append(opts, snapraid.WithConsole(c.console))
	}
	return snapraid.NewExecRunner(toolPath, opts...)
}
