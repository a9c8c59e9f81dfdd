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

package snapraid

import (
	"context"
	"strings"
	"time"
)

// Invocation is one run of one snapraid operation. It is filled in once by a
// Runner and is read-only afterwards.
type Invocation struct {
	// Operation is the snapraid sub-command, e.g. "sync".
	Operation string

	// Args are the arguments passed after the operation name.
	Args []string

	Start time.Time
	End   time.Time

	// ExitStatus is the process exit code; 124 means the operation timed out.
	ExitStatus int

	Stdout string
	Stderr string

	TimedOut bool
	DryRun   bool

	// SyncRequired is set by the orchestrator for a diff that found changes.
	SyncRequired bool

	// LogPath is the run log written for this invocation, if any.
	LogPath string
}

// Duration returns the wall-clock time the invocation took.
func (i *Invocation) Duration() time.Duration {
	if i.End.Before(i.Start) {
		return 0
	}
	return i.End.Sub(i.Start)
}

// DurationMillis returns Duration in whole milliseconds.
func (i *Invocation) DurationMillis() int64 {
	return i.Duration().Milliseconds()
}

// Succeeded reports whether the invocation exited with status 0.
func (i *Invocation) Succeeded() bool {
	return i.ExitStatus == 0
}

// Argv returns the full argument vector passed to the tool.
func (i *Invocation) Argv() []string {
	return append([]string{i.Operation}, i.Args...)
}

// CommandLine renders Argv for logs.
func (i *Invocation) CommandLine() string {
	return strings.Join(i.Argv(), " ")
}

// Runner executes snapraid operations.
type Runner interface {
	Execute(ctx context.Context, operation string, args []string) *Invocation
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, operation string, args []string) *Invocation

// Execute calls f.
func (f RunnerFunc) Execute(ctx context.Context, operation string, args []string) *Invocation {
	return f(ctx, operation, args)
}
