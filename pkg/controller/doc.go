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

// Package controller drives one snapraid-metrics run.
//
// A run checks its preconditions, executes the requested operations in
// order, and publishes the collected metrics once at the end:
//
//	ctrl := controller.New(cfg, controller.WithVersion(version))
//	status, err := ctrl.Run(ctx, requests)
//
// Precondition failures (missing privilege, tool not found, unusable log or
// output directory) abort the run before any operation starts and before
// any metrics are written. Operation failures never abort the chain; the
// last non-zero operation status becomes the run's status.
package controller
