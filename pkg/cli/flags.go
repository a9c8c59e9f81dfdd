/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/snapraid-metrics/pkg/config"
	"github.com/NVIDIA/snapraid-metrics/pkg/extractor"
	"github.com/NVIDIA/snapraid-metrics/pkg/logging"
)

const envPrefix = "SNAPRAID_METRICS_"

func envVar(flag string) cli.ValueSourceChain {
	return cli.EnvVars(envPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_")))
}

func argsFlagName(op string) string {
	return op + "-args"
}

func rootFlags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML config file",
			Sources: envVar("config"),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "textfile collector path (default: stream to stdout)",
			Sources: envVar("output"),
		},
		&cli.StringFlag{
			Name:    "snapraid",
			Usage:   "snapraid executable (default: snapraid on $PATH)",
			Sources: envVar("snapraid"),
		},
		&cli.StringFlag{
			Name:    "log-dir",
			Usage:   "directory for per-operation run logs, empty disables them",
			Sources: envVar("log-dir"),
		},
		&cli.BoolFlag{
			Name:    "dry-run",
			Aliases: []string{"n"},
			Usage:   "skip snapraid and emit default-valued metrics",
			Sources: envVar("dry-run"),
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Usage:   "mirror snapraid output to stderr",
			Sources: envVar("verbose"),
		},
		&cli.BoolFlag{
			Name:    "redact",
			Usage:   "replace disk serial numbers with stable hashes",
			Sources: envVar("redact"),
		},
		&cli.IntFlag{
			Name:    "timeout",
			Usage:   "per-operation timeout in seconds, 0 disables it",
			Sources: envVar("timeout"),
		},
		&cli.BoolFlag{
			Name:    "collector-metrics",
			Usage:   "append the collector's own metrics (default: true)",
			Sources: envVar("collector-metrics"),
		},
		&cli.BoolFlag{
			Name:    "journal",
			Usage:   "send one journald entry per operation",
			Sources: envVar("journal"),
		},
		&cli.BoolFlag{
			Name:    "require-root",
			Usage:   "fail unless running as root (default: true)",
			Sources: envVar("require-root"),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "log level (debug, info, warn, error)",
			Sources: cli.EnvVars(logging.EnvLogLevel),
		},
	}

	for _, op := range extractor.Operations() {
		name := argsFlagName(op)
		flags = append(flags, &cli.StringFlag{
			Name:    name,
			Usage:   "default arguments for " + op + ", placed before chain arguments",
			Sources: envVar(name),
		})
	}
	return flags
}

// loadConfig builds the run configuration: defaults, then the config file,
// then any flag or environment value that was explicitly set.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg := config.New()
	if path := cmd.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cmd.IsSet("output") {
		cfg.Output = cmd.String("output")
	}
	if cmd.IsSet("snapraid") {
		cfg.Snapraid = cmd.String("snapraid")
	}
	if cmd.IsSet("log-dir") {
		cfg.LogDir = cmd.String("log-dir")
	}
	if cmd.IsSet("dry-run") {
		cfg.DryRun = cmd.Bool("dry-run")
	}
	if cmd.IsSet("verbose") {
		cfg.Verbose = cmd.Bool("verbose")
	}
	if cmd.IsSet("redact") {
		cfg.Redact = cmd.Bool("redact")
	}
	if cmd.IsSet("timeout") {
		cfg.Timeout = int(cmd.Int("timeout"))
	}
	if cmd.IsSet("collector-metrics") {
		cfg.CollectorMetrics = cmd.Bool("collector-metrics")
	}
	if cmd.IsSet("journal") {
		cfg.Journal = cmd.Bool("journal")
	}
	if cmd.IsSet("require-root") {
		cfg.RequireRoot = cmd.Bool("require-root")
	}
	for _, op := range extractor.Operations() {
		if name := argsFlagName(op); cmd.IsSet(name) {
			cfg.SetArgs(op, cmd.String(name))
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
