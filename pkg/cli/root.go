/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/snapraid-metrics/pkg/controller"
	"github.com/NVIDIA/snapraid-metrics/pkg/logging"
	"github.com/NVIDIA/snapraid-metrics/pkg/orchestrator"
)

const (
	name           = "snapraid-metrics"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Execute runs the command line and exits with the run's status.
// This is called by main.main().
func Execute() {
	// Flags are not parsed yet; LOG_LEVEL applies until Before reconfigures.
	logging.SetDefaultStructuredLogger(name, version)

	ctx, cancel := context.WithCancel(context.Background())

	// Handle SIGINT/SIGTERM; cancelling kills the running snapraid child.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		slog.Warn("received signal, stopping current operation", "signal", sig.String())
		cancel()
	}()

	status := Run(ctx, os.Args, os.Stdout)
	cancel()
	os.Exit(status)
}

// Run executes args (including the program name) and returns the process
// exit status. Metrics stream to stdout when no output file is configured.
func Run(ctx context.Context, args []string, stdout io.Writer) int {
	var status int
	if err := newRootCmd(stdout, &status).Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return status
}

func newRootCmd(stdout io.Writer, status *int) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     "Publish SnapRAID operation results as Prometheus textfile metrics",
		Version:   fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		ArgsUsage: "[--] <operation> [args...] [<operation> [args...]]...",
		Description: `Runs one or more snapraid operations in order and converts their reports
into Prometheus gauges. With --output the metrics are written atomically to a
textfile collector file; otherwise they stream to stdout.

Supported operations: smart, scrub, sync, diff, status. Without operations
the chain is "smart". Use "--" before the chain when operations take
arguments starting with "-":

  snapraid-metrics -o /var/lib/node_exporter/snapraid.prom -- scrub -p 10 sync

The exit status is 0 when every operation succeeded, otherwise the status of
the last failed operation (124 for a timeout). A diff that finds changes
counts as success and sets snapraid_diff_sync_required.`,
		HideHelpCommand: true,
		Flags:           rootFlags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date)
			return ctx, nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			tokens := cmd.Args().Slice()
			if len(tokens) > 0 && tokens[0] == orchestrator.ArgSeparator {
				tokens = tokens[1:]
			}
			if len(tokens) == 0 {
				tokens = []string{orchestrator.DefaultOperation}
			}
			reqs, err := orchestrator.ParseChain(tokens)
			if err != nil {
				return err
			}

			ctrl := controller.New(cfg,
				controller.WithVersion(version),
				controller.WithStdout(stdout))
			st, err := ctrl.Run(ctx, reqs)
			*status = st
			return err
		},
	}
}
