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

// Package config holds the settings of a snapraid-metrics run.
//
// Settings come from three layers, lowest precedence first: built-in
// defaults (New), an optional YAML file (Load), and command-line flags or
// SNAPRAID_METRICS_* environment variables applied by the CLI.
//
// Example file:
//
//	output: /var/lib/node_exporter/textfile/snapraid.prom
//	log_dir: /var/log/snapraid-metrics
//	redact: true
//	timeout: 21600
//	args:
//	  scrub: "-p 10 -o 30"
//	  sync: "--force-zero"
//
// Unknown keys are rejected so that a typo does not silently fall back to a
// default.
package config
