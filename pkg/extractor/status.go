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

package extractor

import (
	"regexp"
	"strings"

	"github.com/NVIDIA/snapraid-metrics/pkg/snapraid"
)

var (
	syncInProgressRe = regexp.MustCompile(`(?i)sync (is )?in progress`)
	daysRe           = regexp.MustCompile(`\b(\d+)\s+days?\b`)
)

// Status fields depend on report wording; a phrase that is not found yields
// 0 instead of an error.
var statusRules = []rule{
	{
		name: MetricName(OpStatus, "sync_in_progress"),
		help: "Whether a sync is currently in progress (1) or not (0).",
		find: syncInProgress,
	},
	{
		name: MetricName(OpStatus, "oldest_scrub_days"),
		help: "Age in days of the oldest scrubbed block.",
		find: firstMatch(daysRe),
	},
	{
		name: MetricName(OpStatus, "unscrubbed_percent"),
		help: "Percentage of the array that is not scrubbed.",
		find: firstContaining("not scrubbed", firstPercent),
	},
	{
		name: MetricName(OpStatus, "fragmentation_percent"),
		help: "Fragmentation percentage reported by status.",
		find: firstContaining("fragment", firstPercent),
	},
}

// StatusExtractor reads the array summary printed by "snapraid status".
type StatusExtractor struct{}

func (x *StatusExtractor) Operation() string { return OpStatus }

func (x *StatusExtractor) Extract(inv *snapraid.Invocation, env *Env) {
	declareRules(env, statusRules)
	applyRules(env, statusRules, splitLines(inv.Stdout))
}

func syncInProgress(lines []string) (float64, bool) {
	for _, l := range lines {
		if !syncInProgressRe.MatchString(l) {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(l), "No") {
			continue
		}
		return 1, true
	}
	return 0, false
}
