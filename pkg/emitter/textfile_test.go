package emitter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/snapraid-metrics/pkg/errors"
)

func TestCheckTarget(t *testing.T) {
	dir := t.TempDir()

	assert.NoError(t, CheckTarget(""))
	assert.NoError(t, CheckTarget(filepath.Join(dir, "snapraid.prom")))

	err := CheckTarget(filepath.Join(dir, "missing", "snapraid.prom"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnavailable, errors.CodeOf(err))

	err = CheckTarget(dir)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))

	file := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))
	err = CheckTarget(filepath.Join(file, "snapraid.prom"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnavailable, errors.CodeOf(err))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "write probe must be removed")
}

func TestCheckTargetNotWritable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses directory permissions")
	}
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	err := CheckTarget(filepath.Join(dir, "snapraid.prom"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnavailable, errors.CodeOf(err))
}

func TestFinalizeNoPath(t *testing.T) {
	e := New()
	require.NoError(t, e.Declare("m", "help"))
	assert.NoError(t, e.Finalize(""))
}

func TestFinalizeAtomic(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "snapraid.prom")
	require.NoError(t, os.WriteFile(target, []byte("old\n"), 0o644))

	e := New()
	require.NoError(t, e.Declare("snapraid_sync_exit_status", "Exit status of the last sync"))
	require.NoError(t, e.Sample("snapraid_sync_exit_status", nil, 0))
	require.NoError(t, e.Finalize(target))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, string(e.Bytes()), string(got))

	fi, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), fi.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.False(t, strings.HasSuffix(entry.Name(), ".tmp"), "temp file left behind: %s", entry.Name())
	}
}

func TestFinalizeRenameFailureRemovesTemp(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "snapraid.prom")
	// A non-empty directory at the target path makes the rename fail.
	require.NoError(t, os.MkdirAll(filepath.Join(target, "keep"), 0o755))

	e := New()
	require.NoError(t, e.Declare("m", "help"))

	err := e.Finalize(target)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInternal, errors.CodeOf(err))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "snapraid.prom", entries[0].Name())
}

func TestFinalizeMissingDirectory(t *testing.T) {
	target := filepath.Join(t.TempDir(), "gone", "snapraid.prom")

	e := New()
	require.NoError(t, e.Declare("m", "help"))

	err := e.Finalize(target)
	require.Error(t, err)
	_, statErr := os.Stat(target)
	assert.True(t, os.IsNotExist(statErr))
}
