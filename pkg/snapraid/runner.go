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
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/snapraid-metrics/pkg/defaults"
)

const maxLineSize = 1 << 20 // 1MB

// Option configures an ExecRunner.
type Option func(*ExecRunner)

// WithTimeout kills an operation after d; zero disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *ExecRunner) {
		r.timeout = d
	}
}

// WithConsole mirrors the tool's output to w as it is produced.
func WithConsole(w io.Writer) Option {
	return func(r *ExecRunner) {
		r.console = w
	}
}

// WithLogDir writes a run log per invocation under dir.
func WithLogDir(dir string) Option {
	return func(r *ExecRunner) {
		r.logDir = dir
	}
}

// WithRunID tags run logs and journal entries with id.
func WithRunID(id string) Option {
	return func(r *ExecRunner) {
		r.runID = id
	}
}

// WithJournal sends one journald entry per invocation when journald is reachable.
func WithJournal(enabled bool) Option {
	return func(r *ExecRunner) {
		r.journal = enabled
	}
}

// ExecRunner runs the snapraid binary as a child process.
type ExecRunner struct {
	path    string
	timeout time.Duration
	console io.Writer
	logDir  string
	runID   string
	journal bool

	mu sync.Mutex
}

// NewExecRunner creates a runner for the snapraid binary at path.
func NewExecRunner(path string, opts ...Option) *ExecRunner {
	r := &ExecRunner{
		path:    path,
		timeout: defaults.OperationTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Execute runs `snapraid <operation> <args...>` and returns the completed invocation.
func (r *ExecRunner) Execute(ctx context.Context, operation string, args []string) *Invocation {
	inv := &Invocation{
		Operation: operation,
		Args:      args,
		Start:     time.Now(),
	}

	runCtx := ctx
	cancel := context.CancelFunc(func() {})
	if r.timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, r.timeout)
	}
	defer cancel()

	rl := r.openLog(inv)
	defer rl.Close()

	slog.Info("running operation",
		"operation", operation,
		"command", r.path+" "+inv.CommandLine(),
		"timeout", r.timeout)

	cmd := exec.CommandContext(runCtx, r.path, inv.Argv()...)
	cmd.WaitDelay = defaults.PipeDrainTimeout

	var stdout, stderr bytes.Buffer
	err := r.run(cmd, rl, &stdout, &stderr)

	inv.End = time.Now()
	inv.Stdout = stdout.String()
	inv.Stderr = stderr.String()

	switch {
	case r.timeout > 0 && stderrors.Is(runCtx.Err(), context.DeadlineExceeded):
		inv.TimedOut = true
		inv.ExitStatus = defaults.ExitStatusTimeout
		slog.Warn("operation timed out",
			"event", "operation_timeout",
			"operation", operation,
			"timeout", r.timeout)
	case err == nil:
		inv.ExitStatus = defaults.ExitStatusSuccess
	default:
		inv.ExitStatus = exitStatus(err)
	}

	rl.finish(inv)
	r.notifyJournal(inv)

	slog.Info("operation finished",
		"operation", operation,
		"exit_status", inv.ExitStatus,
		"duration", inv.Duration().String(),
		"timed_out", inv.TimedOut)
	return inv
}

func (r *ExecRunner) run(cmd *exec.Cmd, rl *runLog, stdout, stderr *bytes.Buffer) error {
	outW := r.newLineWriter(streamStdout, stdout, rl)
	errW := r.newLineWriter(streamStderr, stderr, rl)
	configureProcess(cmd)

	outR, outPipe, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("failed to open stdout pipe: %w", err)
	}
	defer outR.Close()
	errR, errPipe, err := os.Pipe()
	if err != nil {
		outPipe.Close()
		return fmt.Errorf("failed to open stderr pipe: %w", err)
	}
	defer errR.Close()

	cmd.Stdout = outPipe
	cmd.Stderr = errPipe
	startErr := cmd.Start()
	// The child holds its own copies of the write ends.
	outPipe.Close()
	errPipe.Close()

	if startErr != nil {
		slog.Error("failed to start snapraid", "path", cmd.Path, "error", startErr)
		fmt.Fprintf(stderr, "%v\n", startErr)
		rl.line(streamStderr, startErr.Error())
		return startErr
	}

	var g errgroup.Group
	g.Go(func() error { return copyLines(outW, outR) })
	g.Go(func() error { return copyLines(errW, errR) })

	waitErr := cmd.Wait()

	// A grandchild may still hold the pipes open after the tool exits.
	drained := make(chan error, 1)
	go func() { drained <- g.Wait() }()

	timer := time.NewTimer(defaults.PipeDrainTimeout)
	defer timer.Stop()

	select {
	case err := <-drained:
		if err != nil {
			slog.Warn("failed to read operation output", "error", err)
		}
	case <-timer.C:
		slog.Warn("operation output not closed after exit",
			"path", cmd.Path,
			"drain_timeout", defaults.PipeDrainTimeout)
		outR.Close()
		errR.Close()
		<-drained
	}

	outW.Flush()
	errW.Flush()
	return waitErr
}

// copyLines feeds src into w until EOF or until src is closed.
func copyLines(w *lineWriter, src io.Reader) error {
	if _, err := io.Copy(w, src); err != nil && !stderrors.Is(err, os.ErrClosed) {
		return err
	}
	return nil
}

func (r *ExecRunner) newLineWriter(stream string, dst *bytes.Buffer, rl *runLog) *lineWriter {
	return &lineWriter{
		max: maxLineSize,
		emit: func(line string) {
			r.mu.Lock()
			dst.WriteString(line)
			dst.WriteByte('\n')
			if r.console != nil {
				fmt.Fprintln(r.console, line)
			}
			rl.line(stream, line)
			r.mu.Unlock()
		},
	}
}

// lineWriter splits written bytes into lines with scanLines. Lines longer
// than max are cut into max-sized pieces. Write never fails, so the pipe is
// always drained.
type lineWriter struct {
	max  int
	emit func(line string)
	buf  []byte
	cut  bool
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	w.consume(false)
	return len(p), nil
}

// Flush emits any trailing partial line.
func (w *lineWriter) Flush() {
	w.consume(true)
}

func (w *lineWriter) consume(atEOF bool) {
	off := 0
	for off < len(w.buf) {
		advance, tok, _ := scanLines(w.buf[off:], atEOF)
		if advance == 0 {
			break
		}
		w.emit(string(tok))
		off += advance
	}

	for len(w.buf)-off > w.max {
		if !w.cut {
			slog.Warn("operation output line too long, cutting", "max_bytes", w.max)
			w.cut = true
		}
		w.emit(string(w.buf[off : off+w.max]))
		off += w.max
	}

	n := copy(w.buf, w.buf[off:])
	w.buf = w.buf[:n]
}

// scanLines splits on \n and on bare \r, so progress lines that snapraid
// redraws in place become separate lines.
func scanLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		advance := i + 1
		if data[i] == '\r' {
			if i+1 < len(data) {
				if data[i+1] == '\n' {
					advance++
				}
			} else if !atEOF {
				// Need more data to know whether \n follows.
				return 0, nil, nil
			}
		}
		return advance, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// exitStatus maps a Wait error to a shell-style exit status.
func exitStatus(err error) int {
	var exitErr *exec.ExitError
	if !stderrors.As(err, &exitErr) {
		return defaults.ExitStatusNotExecuted
	}
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return defaults.ExitStatusSignalBase + int(ws.Signal())
	}
	if code := exitErr.ExitCode(); code >= 0 {
		return code
	}
	return 1
}

func (r *ExecRunner) openLog(inv *Invocation) *runLog {
	if r.logDir == "" {
		return nil
	}
	rl, err := createRunLog(r.logDir, inv, r.runID, r.path)
	if err != nil {
		slog.Warn("failed to create run log", "dir", r.logDir, "operation", inv.Operation, "error", err)
		return nil
	}
	inv.LogPath = rl.path
	return rl
}

// LookPath resolves the snapraid binary.
func LookPath(path string) (string, error) {
	resolved, err := exec.LookPath(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(resolved); err != nil {
		return "", err
	}
	return resolved, nil
}
