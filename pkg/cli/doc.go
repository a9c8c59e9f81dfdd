// Package cli implements the snapraid-metrics command line.
//
// # Usage
//
//	snapraid-metrics [flags] [--] <operation> [args...] [<operation> [args...]]...
//
// Runs the requested snapraid operations (smart, scrub, sync, diff, status)
// one after another and publishes their results as Prometheus gauges. The
// chain defaults to "smart".
//
// # Flags
//
//	--config, -c         YAML config file
//	--output, -o         textfile collector path (default: stdout)
//	--snapraid           snapraid executable (default: snapraid on $PATH)
//	--log-dir            run log directory (default: /var/log/snapraid-metrics)
//	--dry-run, -n        skip snapraid, emit default-valued metrics
//	--verbose            mirror snapraid output to stderr
//	--redact             hash disk serial numbers
//	--timeout            per-operation timeout in seconds (0: none)
//	--<op>-args          default arguments for an operation
//	--collector-metrics  append collector self-metrics (default: true)
//	--journal            send one journald entry per operation
//	--require-root       require effective uid 0 (default: true)
//	--log-level          debug, info, warn, error
//
// Command-line values override the config file. Every flag can also be set
// through an environment variable named SNAPRAID_METRICS_ followed by the
// flag name in upper case with dashes replaced by underscores, for example
// SNAPRAID_METRICS_LOG_DIR. The log level uses LOG_LEVEL.
//
// # Exit Codes
//
//	0    all operations succeeded
//	1    configuration, precondition, or publish failure
//	N    status of the last failed operation (124: timed out)
package cli
