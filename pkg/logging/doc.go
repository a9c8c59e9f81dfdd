// Package logging provides structured logging utilities for snapraid-metrics.
//
// # Overview
//
// This package wraps the standard library slog package with project defaults
// so every component logs the same way. It supports environment-based log
// level configuration, module/version context injection, and source location
// tracking for debug logs.
//
// Logs always go to stderr. In streaming mode the metrics themselves are
// written to stdout, so nothing else may write there.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Potentially problematic situations (e.g. an operation timed out)
//   - ERROR: Failures requiring attention
//
// # Usage
//
//	logging.SetDefaultStructuredLoggerWithLevel("snapraid-metrics", version, "debug")
//	slog.Info("operation completed", "operation", "sync", "exit_status", 0)
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity when no
// explicit level is given:
//
//	LOG_LEVEL=debug snapraid-metrics sync
//
// # Output Format
//
// All logs are written to stderr in JSON format:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "operation completed",
//	    "module": "snapraid-metrics",
//	    "version": "v1.0.0",
//	    "operation": "sync"
//	}
package logging
