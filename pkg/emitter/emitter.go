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
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/prometheus/common/model"

	"github.com/NVIDIA/snapraid-metrics/pkg/errors"
)

// TypeGauge is the only metric type produced from snapraid output.
const TypeGauge = "gauge"

// Label is a single label key/value pair.
type Label struct {
	Key   string
	Value string
}

// Labels is an ordered label set; rendering preserves insertion order.
type Labels []Label

// L builds Labels from alternating key/value arguments. A trailing key
// without a value is ignored.
func L(kv ...string) Labels {
	ls := make(Labels, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		ls = append(ls, Label{Key: kv[i], Value: kv[i+1]})
	}
	return ls
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithLiveOutput streams every rendered line to w as it is produced.
func WithLiveOutput(w io.Writer) Option {
	return func(e *Emitter) {
		e.live = w
	}
}

// Emitter owns the metrics buffer of one run. It is not safe for concurrent use.
type Emitter struct {
	live     io.Writer
	lines    []string
	declared map[string]string
	samples  int
}

// New creates an empty Emitter.
func New(opts ...Option) *Emitter {
	e := &Emitter{
		declared: make(map[string]string),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Streaming reports whether lines are written live.
func (e *Emitter) Streaming() bool {
	return e.live != nil
}

// Declare registers name as a gauge with the given help text. Only the first
// call for a name renders the HELP and TYPE lines.
func (e *Emitter) Declare(name, help string) error {
	if _, ok := e.declared[name]; ok {
		return nil
	}
	if !model.IsValidLegacyMetricName(name) {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "invalid metric name",
			map[string]any{"name": name})
	}
	e.declared[name] = help

	if err := e.append(fmt.Sprintf("# HELP %s %s", name, escapeHelp(help))); err != nil {
		return err
	}
	return e.append(fmt.Sprintf("# TYPE %s %s", name, TypeGauge))
}

// Declared reports whether name has been declared in this run.
func (e *Emitter) Declared(name string) bool {
	_, ok := e.declared[name]
	return ok
}

// Sample renders one sample line for a declared metric.
func (e *Emitter) Sample(name string, labels Labels, value float64) error {
	if _, ok := e.declared[name]; !ok {
		return errors.NewWithContext(errors.ErrCodeInternal, "sample for undeclared metric",
			map[string]any{"name": name})
	}

	var b strings.Builder
	b.WriteString(name)
	if len(labels) > 0 {
		seen := make(map[string]struct{}, len(labels))
		b.WriteByte('{')
		for i, l := range labels {
			if !validLabelName(l.Key) {
				return errors.NewWithContext(errors.ErrCodeInvalidRequest, "invalid label name",
					map[string]any{"name": name, "label": l.Key})
			}
			if _, dup := seen[l.Key]; dup {
				return errors.NewWithContext(errors.ErrCodeInvalidRequest, "duplicate label name",
					map[string]any{"name": name, "label": l.Key})
			}
			seen[l.Key] = struct{}{}
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(l.Key)
			b.WriteString(`="`)
			b.WriteString(escapeLabelValue(l.Value))
			b.WriteByte('"')
		}
		b.WriteByte('}')
	}
	b.WriteByte(' ')
	b.WriteString(FormatValue(value))

	e.samples++
	return e.append(b.String())
}

// SampleCount returns the number of samples rendered so far.
func (e *Emitter) SampleCount() int {
	return e.samples
}

// Lines returns a copy of the rendered lines.
func (e *Emitter) Lines() []string {
	out := make([]string, len(e.lines))
	copy(out, e.lines)
	return out
}

// Bytes returns the buffer as exposition text, one line per entry.
func (e *Emitter) Bytes() []byte {
	if len(e.lines) == 0 {
		return nil
	}
	return []byte(strings.Join(e.lines, "\n") + "\n")
}

func (e *Emitter) append(line string) error {
	e.lines = append(e.lines, line)
	if e.live == nil {
		return nil
	}
	if _, err := io.WriteString(e.live, line+"\n"); err != nil {
		slog.Error("failed to stream metric line", "error", err)
		return errors.Wrap(errors.ErrCodeInternal, "failed to stream metric line", err)
	}
	return nil
}

// FormatValue renders v without loss; integral values have no decimal point.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func validLabelName(name string) bool {
	return name != "" && !strings.Contains(name, ":") && model.IsValidLegacyMetricName(name)
}

// escapeLabelValue escapes backslash, newline, and double quote.
func escapeLabelValue(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, "\n", `\n`)
	value = strings.ReplaceAll(value, `"`, `\"`)
	return value
}

// escapeHelp escapes backslash and newline as required for HELP text.
func escapeHelp(help string) string {
	help = strings.ReplaceAll(help, `\`, `\\`)
	return strings.ReplaceAll(help, "\n", `\n`)
}
