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

// Package snapraid runs snapraid operations and captures their output.
//
// The Runner interface is the boundary to the external tool: given an
// operation name and its arguments it returns a completed Invocation holding
// the captured stdout and stderr, the exit status, and timing. Execution
// failures never surface as Go errors; they are reported through the exit
// status (124 for a timeout, 127 when the binary could not be started) so the
// caller can still extract metrics from whatever output was captured.
//
// ExecRunner is the production implementation. It drains stdout and stderr
// concurrently, mirrors them to an optional console writer, and records every
// invocation in a timestamped log file with a per-operation "latest" symlink.
package snapraid
