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
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/snapraid-metrics/pkg/defaults"
	"github.com/NVIDIA/snapraid-metrics/pkg/errors"
	"github.com/NVIDIA/snapraid-metrics/pkg/extractor"
)

// Config holds run configuration.
type Config struct {
	// Output is the textfile path; empty streams metrics to stdout.
	Output string `yaml:"output"`

	// Snapraid is the tool executable, resolved on $PATH when not absolute.
	Snapraid string `yaml:"snapraid"`

	// LogDir receives per-operation run logs; empty disables them.
	LogDir string `yaml:"log_dir"`

	DryRun  bool `yaml:"dry_run"`
	Verbose bool `yaml:"verbose"`
	Redact  bool `yaml:"redact"`

	// Timeout is the per-operation limit in seconds; 0 means none.
	Timeout int `yaml:"timeout"`

	CollectorMetrics bool `yaml:"collector_metrics"`
	Journal          bool `yaml:"journal"`
	RequireRoot      bool `yaml:"require_root"`

	// Args maps an operation to default arguments, whitespace separated.
	Args map[string]string `yaml:"args"`
}

// New returns a Config with defaults.
func New() *Config {
	return &Config{
		Snapraid:         defaults.ToolPath,
		LogDir:           defaults.LogDir,
		Timeout:          int(defaults.OperationTimeout / time.Second),
		CollectorMetrics: true,
		RequireRoot:      true,
		Args:             map[string]string{},
	}
}

// Load reads the YAML file at path over the defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to open config file", err,
			map[string]any{"path": path})
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to load config file", err,
			map[string]any{"path": path})
	}
	return cfg, nil
}

// Decode reads YAML from r over the defaults. An empty document yields the
// defaults.
func Decode(r io.Reader) (*Config, error) {
	cfg := New()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML: %w", err)
	}
	if cfg.Args == nil {
		cfg.Args = map[string]string{}
	}
	return cfg, nil
}

// Validate checks the configuration for values no run can use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Snapraid) == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "snapraid path must not be empty")
	}
	if c.Timeout < 0 {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "timeout must not be negative",
			map[string]any{"timeout": c.Timeout})
	}
	for op := range c.Args {
		if !extractor.IsOperation(op) {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest, "default arguments for unknown operation",
				map[string]any{"operation": op, "supported": extractor.Operations()})
		}
	}
	return nil
}

// TimeoutDuration returns the per-operation timeout.
func (c *Config) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// SetArgs sets the default arguments of op; an empty value clears them.
func (c *Config) SetArgs(op, args string) {
	if c.Args == nil {
		c.Args = map[string]string{}
	}
	if strings.TrimSpace(args) == "" {
		delete(c.Args, op)
		return
	}
	c.Args[op] = args
}

// DefaultArgs returns the tokenized default arguments per operation.
func (c *Config) DefaultArgs() map[string][]string {
	out := make(map[string][]string, len(c.Args))
	for op, s := range c.Args {
		if f := strings.Fields(s); len(f) > 0 {
			out[op] = f
		}
	}
	return out
}

// String renders the effective settings for logging.
func (c *Config) String() string {
	ops := make([]string, 0, len(c.Args))
	for op := range c.Args {
		ops = append(ops, op+"="+c.Args[op])
	}
	sort.Strings(ops)
	return fmt.Sprintf("output=%q snapraid=%q log_dir=%q dry_run=%t redact=%t timeout=%ds args=[%s]",
		c.Output, c.Snapraid, c.LogDir, c.DryRun, c.Redact, c.Timeout, strings.Join(ops, " "))
}
