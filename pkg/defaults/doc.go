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

// Package defaults provides centralized configuration constants for snapraid-metrics.
//
// This package defines default paths, exit codes, timeouts, and naming
// conventions used across the codebase. Centralizing these values keeps the
// command surface, the orchestrator, and the tests in agreement.
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/NVIDIA/snapraid-metrics/pkg/defaults"
//
//	if inv.ExitStatus == defaults.ExitStatusTimeout {
//	    slog.Warn("operation timed out")
//	}
//
// # Exit Status Conventions
//
//   - 0: success
//   - 2: diff found differences (remapped to 0 by the orchestrator)
//   - 124: the orchestrator killed the operation after its timeout
//   - 127: the snapraid binary could not be started
package defaults
