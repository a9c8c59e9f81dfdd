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

package orchestrator

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/snapraid-metrics/pkg/emitter"
	"github.com/NVIDIA/snapraid-metrics/pkg/extractor"
	"github.com/NVIDIA/snapraid-metrics/pkg/redact"
	"github.com/NVIDIA/snapraid-metrics/pkg/snapraid"
)

var fixedStart = time.Date(2025, 6, 1, 3, 0, 0, 0, time.UTC)

// fakeRunner records calls and returns a canned invocation.
type fakeRunner struct {
	calls  []snapraid.Invocation
	status int
	stdout string
}

func (f *fakeRunner) Execute(_ context.Context, operation string, args []string) *snapraid.Invocation {
	f.calls = append(f.calls, snapraid.Invocation{Operation: operation, Args: args})
	return &snapraid.Invocation{
		Operation:  operation,
		Args:       args,
		Start:      fixedStart,
		End:        fixedStart.Add(2500 * time.Millisecond),
		ExitStatus: f.status,
		Stdout:     f.stdout,
	}
}

func newEnv() *extractor.Env {
	return &extractor.Env{Emitter: emitter.New(), Redactor: redact.New(false)}
}

func TestRunEmitsBaselineAndExtracts(t *testing.T) {
	runner := &fakeRunner{stdout: "    10 updated\n     2 file errors\n"}
	env := newEnv()
	o := New(runner, env, WithDefaultArgs(map[string][]string{"sync": {"-v"}}))

	inv := o.Run(context.Background(), Request{Operation: "sync", Args: []string{"--force-zero"}})

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"-v", "--force-zero"}, runner.calls[0].Args)
	assert.Equal(t, 0, inv.ExitStatus)

	lines := env.Emitter.Lines()
	assert.Contains(t, lines, "snapraid_sync_exit_status 0")
	assert.Contains(t, lines, "snapraid_sync_last_ran 1748746802500")
	assert.Contains(t, lines, "snapraid_sync_duration_seconds 2.5")
	assert.Contains(t, lines, "snapraid_sync_updated 10")
	assert.Contains(t, lines, "snapraid_sync_file_errors 2")

	// Baseline declarations come before extractor output.
	assert.Equal(t, "# HELP snapraid_sync_exit_status Exit status of the last sync run; 124 means it timed out.", lines[0])
}

func TestRunDiffRemapsExitStatus(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		wantStatus   int
		wantRequired bool
	}{
		{"changes found", 2, 0, true},
		{"no changes", 0, 0, false},
		{"failure", 1, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnv()
			o := New(&fakeRunner{status: tt.status}, env)

			inv := o.Run(context.Background(), Request{Operation: "diff"})
			assert.Equal(t, tt.wantStatus, inv.ExitStatus)
			assert.Equal(t, tt.wantRequired, inv.SyncRequired)

			lines := env.Emitter.Lines()
			assert.Contains(t, lines, "snapraid_diff_exit_status "+emitter.FormatValue(float64(tt.wantStatus)))
			want := "snapraid_diff_sync_required 0"
			if tt.wantRequired {
				want = "snapraid_diff_sync_required 1"
			}
			assert.Contains(t, lines, want)
		})
	}
}

func TestRunExitStatus2OnlyRemappedForDiff(t *testing.T) {
	env := newEnv()
	inv := New(&fakeRunner{status: 2}, env).Run(context.Background(), Request{Operation: "sync"})

	assert.Equal(t, 2, inv.ExitStatus)
	assert.False(t, inv.SyncRequired)
	assert.Contains(t, env.Emitter.Lines(), "snapraid_sync_exit_status 2")
}

func TestRunDryRunSkipsRunner(t *testing.T) {
	runner := &fakeRunner{status: 1, stdout: "    10 updated\n"}
	env := newEnv()
	clock := func() time.Time { return fixedStart }
	o := New(runner, env, WithDryRun(true), WithClock(clock),
		WithDefaultArgs(map[string][]string{"scrub": {"-p", "5"}}))

	inv := o.Run(context.Background(), Request{Operation: "scrub"})

	assert.Empty(t, runner.calls)
	assert.True(t, inv.DryRun)
	assert.Equal(t, 0, inv.ExitStatus)
	assert.Empty(t, inv.Stdout)
	assert.Equal(t, []string{"-p", "5"}, inv.Args)

	lines := env.Emitter.Lines()
	assert.Contains(t, lines, "snapraid_scrub_exit_status 0")
	assert.Contains(t, lines, "snapraid_scrub_duration_seconds 0")
	assert.Contains(t, lines, "snapraid_scrub_last_ran 1748746800000")
	assert.Contains(t, lines, "snapraid_scrub_updated 0")
	assert.True(t, env.Emitter.Declared("snapraid_scrub_scan_time_seconds"))
}

func TestRunTimeoutSurfacesAsStatus(t *testing.T) {
	env := newEnv()
	runner := snapraid.RunnerFunc(func(_ context.Context, op string, args []string) *snapraid.Invocation {
		return &snapraid.Invocation{
			Operation:  op,
			Args:       args,
			Start:      fixedStart,
			End:        fixedStart.Add(time.Second),
			ExitStatus: 124,
			TimedOut:   true,
			Stdout:     "Scanned d1 in 1 seconds\n",
		}
	})

	inv := New(runner, env).Run(context.Background(), Request{Operation: "scrub"})

	assert.Equal(t, 124, inv.ExitStatus)
	lines := env.Emitter.Lines()
	assert.Contains(t, lines, "snapraid_scrub_exit_status 124")
	assert.Contains(t, lines, `snapraid_scrub_scan_time_seconds{disk="d1"} 1`)
}

func TestRunMissingEndUsesClock(t *testing.T) {
	env := newEnv()
	runner := snapraid.RunnerFunc(func(_ context.Context, op string, _ []string) *snapraid.Invocation {
		return &snapraid.Invocation{Operation: op}
	})
	clock := func() time.Time { return fixedStart }

	New(runner, env, WithClock(clock)).Run(context.Background(), Request{Operation: "status"})

	assert.Contains(t, env.Emitter.Lines(), "snapraid_status_last_ran 1748746800000")
}

func TestRunTwoOperationsShareEmitter(t *testing.T) {
	env := newEnv()
	o := New(&fakeRunner{stdout: "   5 equal\n"}, env)

	o.Run(context.Background(), Request{Operation: "diff"})
	o.Run(context.Background(), Request{Operation: "status"})

	var help []string
	for _, l := range env.Emitter.Lines() {
		if strings.HasPrefix(l, "# HELP ") {
			help = append(help, strings.Fields(l)[2])
		}
	}
	seen := make(map[string]bool)
	for _, h := range help {
		assert.False(t, seen[h], "duplicate HELP for %s", h)
		seen[h] = true
	}
	assert.True(t, seen["snapraid_diff_exit_status"])
	assert.True(t, seen["snapraid_status_exit_status"])
}
