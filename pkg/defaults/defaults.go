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

package defaults

import "time"

// External tool defaults.
const (
	// ToolPath is the snapraid executable resolved on $PATH when no
	// alternate path is configured.
	ToolPath = "snapraid"

	// LogDir is the default directory for per-operation run logs.
	LogDir = "/var/log/snapraid-metrics"

	// LogFilePrefix prefixes every run log file name.
	LogFilePrefix = "snapraid"

	// LogTimestampLayout is the timestamp embedded in run log file names.
	LogTimestampLayout = "20060102-150405"
)

// Exit status conventions shared by the orchestrator and the controller.
const (
	// ExitStatusSuccess is the status of a successful operation.
	ExitStatusSuccess = 0

	// ExitStatusDiffChanges is snapraid's diff status for "differences found".
	ExitStatusDiffChanges = 2

	// ExitStatusTimeout is reported when an operation is killed after its timeout.
	ExitStatusTimeout = 124

	// ExitStatusNotExecuted is reported when the tool could not be started.
	ExitStatusNotExecuted = 127

	// ExitStatusSignalBase is added to the signal number of a killed child.
	ExitStatusSignalBase = 128
)

// Timeouts for process execution.
const (
	// OperationTimeout is the default per-operation timeout; zero disables it.
	OperationTimeout = 0 * time.Second

	// PipeDrainTimeout bounds how long output pipes are drained after the
	// tool has exited.
	PipeDrainTimeout = 5 * time.Second
)

// Metric naming and redaction.
const (
	// MetricPrefix prefixes every metric produced from snapraid output.
	MetricPrefix = "snapraid_"

	// CollectorMetricPrefix prefixes the collector's own metrics.
	CollectorMetricPrefix = "snapraid_metrics_collector_"

	// RedactionPrefix tags every redacted label value.
	RedactionPrefix = "redacted_"

	// RedactionHexLength is the number of digest hex characters kept.
	RedactionHexLength = 12
)

// Output file settings.
const (
	// OutputFileMode is the permission of the published metrics file.
	OutputFileMode = 0o644

	// LogDirMode is the permission used when creating the log directory.
	LogDirMode = 0o755
)
