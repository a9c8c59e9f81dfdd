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

package emitter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/NVIDIA/snapraid-metrics/pkg/defaults"
	"github.com/NVIDIA/snapraid-metrics/pkg/errors"
)

// CheckTarget verifies that the directory of path exists and is writable.
// It runs before any operation so a permissions problem cannot discard the
// output of a completed run. An empty path (streaming mode) is always valid.
func CheckTarget(path string) error {
	if path == "" {
		return nil
	}

	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "output path is a directory",
			map[string]any{"path": path})
	}

	dir := filepath.Dir(path)
	fi, err := os.Stat(dir)
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeUnavailable, "output directory does not exist", err,
			map[string]any{"dir": dir})
	}
	if !fi.IsDir() {
		return errors.NewWithContext(errors.ErrCodeUnavailable, "output directory is not a directory",
			map[string]any{"dir": dir})
	}

	probe, err := os.CreateTemp(dir, ".snapraid-metrics-probe-*")
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeUnavailable, "output directory is not writable", err,
			map[string]any{"dir": dir})
	}
	name := probe.Name()
	_ = probe.Close()
	if err := os.Remove(name); err != nil {
		slog.Warn("failed to remove write probe", "path", name, "error", err)
	}
	return nil
}

// Finalize publishes the buffer to path. The buffer is written to a temporary
// file in the same directory and renamed over path, so the rename is atomic
// and readers only ever see a complete file. An empty path is a no-op.
func (e *Emitter) Finalize(path string) error {
	if path == "" {
		return nil
	}
	return writeFileAtomic(path, e.Bytes())
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal, "failed to create temp file", err,
			map[string]any{"dir": dir})
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(errors.ErrCodeInternal, "failed to write metrics", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrap(errors.ErrCodeInternal, "failed to sync metrics", err)
	}
	if err := tmp.Chmod(defaults.OutputFileMode); err != nil {
		_ = tmp.Close()
		return errors.Wrap(errors.ErrCodeInternal, "failed to set metrics file mode", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to close metrics file", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, fmt.Sprintf("failed to publish metrics to %s", path), err)
	}

	success = true
	slog.Debug("metrics published", "path", path, "bytes", len(data))
	return nil
}
