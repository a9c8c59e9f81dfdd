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
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/NVIDIA/snapraid-metrics/pkg/defaults"
)

const (
	streamStdout = "stdout"
	streamStderr = "stderr"
)

// runLog is the persisted record of one invocation. A nil *runLog discards
// everything, so callers do not need to check whether logging is enabled.
type runLog struct {
	path string

	mu   sync.Mutex
	file *os.File
}

// LogFileName returns the timestamped log file name for an operation.
func LogFileName(operation string, t time.Time) string {
	return fmt.Sprintf("%s-%s-%s.log", defaults.LogFilePrefix, operation, t.Format(defaults.LogTimestampLayout))
}

// LatestLogName returns the name of the "latest" pointer for an operation.
func LatestLogName(operation string) string {
	return fmt.Sprintf("%s-%s-latest.log", defaults.LogFilePrefix, operation)
}

func createRunLog(dir string, inv *Invocation, runID, toolPath string) (*runLog, error) {
	if err := os.MkdirAll(dir, defaults.LogDirMode); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	name := LogFileName(inv.Operation, inv.Start)
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	rl := &runLog{path: path, file: f}
	rl.printf("# run_id: %s\n", runID)
	rl.printf("# command: %s %s\n", toolPath, inv.CommandLine())
	rl.printf("# start: %s\n", inv.Start.Format(time.RFC3339))

	if err := updateLatest(dir, name, LatestLogName(inv.Operation)); err != nil {
		slog.Warn("failed to update latest log link", "operation", inv.Operation, "error", err)
	}
	return rl, nil
}

// updateLatest points link at target by renaming a fresh symlink over it.
func updateLatest(dir, target, link string) error {
	tmp := filepath.Join(dir, "."+link+".tmp")
	_ = os.Remove(tmp)
	if err := os.Symlink(target, tmp); err != nil {
		return err
	}
	if err := os.Rename(tmp, filepath.Join(dir, link)); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func (l *runLog) printf(format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := fmt.Fprintf(l.file, format, args...); err != nil {
		slog.Debug("run log write failed", "path", l.path, "error", err)
	}
}

func (l *runLog) line(stream, text string) {
	l.printf("[%s] %s\n", stream, text)
}

func (l *runLog) finish(inv *Invocation) {
	l.printf("# end: %s\n", inv.End.Format(time.RFC3339))
	l.printf("# exit_status: %d\n", inv.ExitStatus)
	l.printf("# duration: %s\n", inv.Duration())
	if inv.TimedOut {
		l.printf("# timed_out: true\n")
	}
}

// Close closes the log file.
func (l *runLog) Close() {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.file.Close(); err != nil {
		slog.Debug("run log close failed", "path", l.path, "error", err)
	}
}
