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
	"bytes"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/NVIDIA/snapraid-metrics/pkg/errors"
)

// AppendGathered renders the families collected by g and appends them to the
// buffer. Families whose name was already declared are rejected so the output
// never carries two HELP lines for one metric.
func (e *Emitter) AppendGathered(g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to gather collector metrics", err)
	}

	for _, mf := range families {
		name := mf.GetName()
		if e.Declared(name) {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest, "metric already declared",
				map[string]any{"name": name})
		}

		var buf bytes.Buffer
		if _, err := expfmt.MetricFamilyToText(&buf, mf); err != nil {
			return errors.WrapWithContext(errors.ErrCodeInternal, "failed to render metric family", err,
				map[string]any{"name": name})
		}
		e.declared[name] = mf.GetHelp()
		e.samples += len(mf.GetMetric())

		for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
			if err := e.append(line); err != nil {
				return err
			}
		}
	}
	return nil
}
