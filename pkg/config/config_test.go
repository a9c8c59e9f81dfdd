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

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/snapraid-metrics/pkg/defaults"
	"github.com/NVIDIA/snapraid-metrics/pkg/errors"
)

func TestNewDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, defaults.ToolPath, cfg.Snapraid)
	assert.Equal(t, defaults.LogDir, cfg.LogDir)
	assert.Empty(t, cfg.Output)
	assert.Zero(t, cfg.Timeout)
	assert.True(t, cfg.CollectorMetrics)
	assert.True(t, cfg.RequireRoot)
	assert.False(t, cfg.DryRun)
	assert.NotNil(t, cfg.Args)
	assert.NoError(t, cfg.Validate())
}

func TestDecode(t *testing.T) {
	input := `
output: /var/lib/node_exporter/snapraid.prom
snapraid: /usr/local/bin/snapraid
redact: true
timeout: 3600
collector_metrics: false
args:
  scrub: "-p 10  -o 30"
  sync: ""
`
	cfg, err := Decode(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/node_exporter/snapraid.prom", cfg.Output)
	assert.Equal(t, "/usr/local/bin/snapraid", cfg.Snapraid)
	assert.True(t, cfg.Redact)
	assert.False(t, cfg.CollectorMetrics)
	assert.Equal(t, time.Hour, cfg.TimeoutDuration())
	// Unset keys keep their defaults.
	assert.Equal(t, defaults.LogDir, cfg.LogDir)
	assert.True(t, cfg.RequireRoot)

	assert.Equal(t, map[string][]string{"scrub": {"-p", "10", "-o", "30"}}, cfg.DefaultArgs())
}

func TestDecodeEmpty(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, New(), cfg)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("outptu: /tmp/x.prom\n"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dry_run: true\nlog_dir: \"\"\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.DryRun)
	assert.Empty(t, cfg.LogDir)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeout: [1\n"), 0o600))
	_, err = Load(path)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"negative timeout", func(c *Config) { c.Timeout = -1 }, true},
		{"empty snapraid", func(c *Config) { c.Snapraid = " " }, true},
		{"unknown operation args", func(c *Config) { c.Args["fix"] = "-v" }, true},
		{"known operation args", func(c *Config) { c.Args["status"] = "-v" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSetArgs(t *testing.T) {
	cfg := New()
	cfg.SetArgs("scrub", "-p 5")
	assert.Equal(t, []string{"-p", "5"}, cfg.DefaultArgs()["scrub"])

	cfg.SetArgs("scrub", "  ")
	_, ok := cfg.DefaultArgs()["scrub"]
	assert.False(t, ok)

	var empty Config
	empty.SetArgs("sync", "-v")
	assert.Equal(t, "-v", empty.Args["sync"])
}

func TestString(t *testing.T) {
	cfg := New()
	cfg.SetArgs("sync", "-v")
	cfg.SetArgs("diff", "-a")
	s := cfg.String()
	assert.Contains(t, s, `snapraid="snapraid"`)
	assert.Contains(t, s, "args=[diff=-a sync=-v]")
}
