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

// Package units converts the sizes, percentages, and durations printed by
// snapraid into canonical numeric units: bytes, percent, and seconds.
//
// None of the functions in this package return errors. A value that cannot be
// parsed is reported as absent (PercentageValue) or as zero (DurationToSeconds),
// so a single odd field never aborts a collection run.
package units
