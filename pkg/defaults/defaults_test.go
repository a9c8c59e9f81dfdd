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

package defaults

import (
	"strings"
	"testing"
	"time"
)

func TestExitStatusConstants(t *testing.T) {
	tests := []struct {
		name  string
		value int
		want  int
	}{
		{"ExitStatusSuccess", ExitStatusSuccess, 0},
		{"ExitStatusDiffChanges", ExitStatusDiffChanges, 2},
		{"ExitStatusTimeout", ExitStatusTimeout, 124},
		{"ExitStatusNotExecuted", ExitStatusNotExecuted, 127},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != tt.want {
				t.Errorf("%s = %d, want %d", tt.name, tt.value, tt.want)
			}
		})
	}
}

func TestTimeoutRelationships(t *testing.T) {
	if OperationTimeout < 0 {
		t.Errorf("OperationTimeout (%v) must not be negative", OperationTimeout)
	}
	if PipeDrainTimeout <= 0 || PipeDrainTimeout > time.Minute {
		t.Errorf("PipeDrainTimeout (%v) outside expected range", PipeDrainTimeout)
	}
}

func TestMetricPrefixes(t *testing.T) {
	if !strings.HasPrefix(CollectorMetricPrefix, MetricPrefix) {
		t.Errorf("CollectorMetricPrefix %q should extend MetricPrefix %q", CollectorMetricPrefix, MetricPrefix)
	}
	if !strings.HasSuffix(MetricPrefix, "_") {
		t.Errorf("MetricPrefix %q should end with an underscore", MetricPrefix)
	}
	if RedactionHexLength <= 0 || RedactionHexLength > 64 {
		t.Errorf("RedactionHexLength %d outside sha256 hex length", RedactionHexLength)
	}
}
