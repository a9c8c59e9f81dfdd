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

// Package emitter accumulates metric declarations and samples in the Prometheus
// text exposition format and publishes them for a textfile collector.
//
// An Emitter is created once per collection run and passed to every extractor.
// Each metric name is declared once (HELP and TYPE lines) before its first
// sample. Rendered lines are kept in an ordered, append-only buffer:
//
//	e := emitter.New(emitter.WithLiveOutput(os.Stdout))
//	_ = e.Declare("snapraid_sync_file_errors", "Number of file errors reported by sync")
//	_ = e.Sample("snapraid_sync_file_errors", nil, 0)
//
// With a live output configured every line is also written as soon as it is
// rendered ("streaming mode"). Otherwise the buffer is published at the end of
// the run with Finalize, which writes a temporary file in the target directory
// and renames it over the target so scrapers never observe a partial file.
package emitter
