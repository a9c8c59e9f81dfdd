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

// Package orchestrator runs a single snapraid operation end to end.
//
// For each Request the Orchestrator merges the configured default arguments
// with the caller's, invokes the tool through a snapraid.Runner (or skips it
// in dry-run mode), applies the diff exit-status rule, emits the baseline
// metrics every operation shares, and hands the invocation to the matching
// extractor.
//
// Operation chains arrive as a flat token list:
//
//	reqs, err := orchestrator.ParseChain([]string{"scrub", "-p", "10", "sync"})
//	// reqs: [{scrub [-p 10]} {sync []}]
//
// A "--" token makes every remaining token an argument of the current
// operation, which allows passing arguments that collide with operation
// names.
package orchestrator
