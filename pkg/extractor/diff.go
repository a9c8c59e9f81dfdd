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
	"github.com/NVIDIA/snapraid-metrics/pkg/snapraid"
)

var diffNouns = []string{"equal", "added", "removed", "updated", "moved", "copied"}

var diffRules = func() []rule {
	rules := make([]rule, 0, len(diffNouns))
	for _, noun := range diffNouns {
		rules = append(rules, rule{
			name: MetricName(OpDiff, noun),
			help: "Number of files " + noun + " since the last sync.",
			find: countOf(noun),
		})
	}
	return rules
}()

// DiffExtractor reads the change summary printed by "snapraid diff".
type DiffExtractor struct{}

func (x *DiffExtractor) Operation() string { return OpDiff }

// Extract emits the change counts and the sync-required flag, which comes
// from the invocation rather than the report text.
func (x *DiffExtractor) Extract(inv *snapraid.Invocation, env *Env) {
	syncName := MetricName(OpDiff, "sync_required")
	declareRules(env, diffRules)
	env.declare(syncName, "Whether diff found changes that require a sync (1) or not (0).")

	applyRules(env, diffRules, splitLines(inv.Stdout))

	required := 0.0
	if inv.SyncRequired {
		required = 1
	}
	env.sample(syncName, nil, required)
}
