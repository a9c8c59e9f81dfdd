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

// Package extractor turns captured snapraid output into gauge samples.
//
// Each supported operation has an Extractor that declares its complete
// metric set up front and then scans the invocation's stdout. Extraction
// never fails: a field that cannot be found or parsed degrades to its
// documented default, or is omitted when it has no meaningful default, so a
// partially readable report still yields a usable snapshot.
//
// Usage:
//
//	ex, ok := extractor.ForOperation("smart")
//	if ok {
//	    ex.Extract(inv, &extractor.Env{Emitter: em, Redactor: rd})
//	}
//
// Scalar fields are described by rule tables: each rule names a metric, a
// finder that scans the report lines, and the default reported when the
// finder comes back empty.
package extractor
