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

	"github.com/NVIDIA/snapraid-metrics/pkg/emitter"
	"github.com/NVIDIA/snapraid-metrics/pkg/snapraid"
	"github.com/NVIDIA/snapraid-metrics/pkg/units"
)

const completedWord = "completed"

var (
	scannedRe  = regexp.MustCompile(`^\s*Scanned\s+(\S+)\s+in\s+(\d+(?:\.\d+)?)\s+seconds?`)
	volumeRe   = regexp.MustCompile(`\d+(?:\.\d+)?\s*(?:[kKMGT]i?B|[KMGT]|B)\b`)
	elapsedRe  = regexp.MustCompile(`\b(\d+:\d{2}(?::\d{2})?)\b`)
	errorKinds = []struct{ suffix, phrase, help string }{
		{"file_errors", "file errors", "File errors reported by the last run."},
		{"io_errors", "io errors", "Input/output errors reported by the last run."},
		{"data_errors", "data errors", "Data errors reported by the last run."},
	}
	summaryNouns = []string{"updated", "removed", "added", "copied", "restored", "scrubbed", "verified"}
)

// ScanExtractor handles scrub and sync, whose reports share one layout and
// differ only in metric prefix.
type ScanExtractor struct {
	op    string
	rules []rule
}

// NewScanExtractor creates a scrub/sync style extractor for op.
func NewScanExtractor(op string) *ScanExtractor {
	x := &ScanExtractor{op: op}

	for _, k := range errorKinds {
		x.rules = append(x.rules, rule{
			name: MetricName(op, k.suffix),
			help: k.help,
			find: firstContaining(k.phrase, leadingInt),
		})
	}

	x.rules = append(x.rules,
		rule{
			name: MetricName(op, "completion_percent"),
			help: "Completion percentage from the final progress line.",
			find: firstContaining(completedWord, firstPercent),
		},
		rule{
			name: MetricName(op, "accessed_bytes"),
			help: "Bytes accessed according to the final progress line.",
			find: firstContaining(completedWord, accessedBytes),
		},
		rule{
			name: MetricName(op, "elapsed_seconds"),
			help: "Elapsed time in seconds according to the final progress line.",
			find: firstContaining(completedWord, elapsedSeconds),
		},
	)

	for _, noun := range summaryNouns {
		x.rules = append(x.rules, rule{
			name: MetricName(op, noun),
			help: "Number of files " + noun + " by the last run.",
			find: countOf(noun),
		})
	}
	return x
}

func (x *ScanExtractor) Operation() string { return x.op }

func (x *ScanExtractor) Extract(inv *snapraid.Invocation, env *Env) {
	scanName := MetricName(x.op, "scan_time_seconds")
	env.declare(scanName, "Seconds spent scanning each disk.")
	declareRules(env, x.rules)

	lines := splitLines(inv.Stdout)
	for _, s := range scanTimes(lines) {
		env.sample(scanName, emitter.L("disk", s.disk), s.seconds)
	}
	applyRules(env, x.rules, lines)
}

type scanTime struct {
	disk    string
	seconds float64
}

// scanTimes collects "Scanned <disk> in <n> seconds" lines. A disk scanned
// twice keeps its first position and its last value.
func scanTimes(lines []string) []scanTime {
	var out []scanTime
	index := make(map[string]int)
	for _, l := range lines {
		m := scannedRe.FindStringSubmatch(l)
		if m == nil {
			continue
		}
		v, ok := parseFloat(m[2])
		if !ok {
			continue
		}
		if i, seen := index[m[1]]; seen {
			out[i].seconds = v
			continue
		}
		index[m[1]] = len(out)
		out = append(out, scanTime{disk: m[1], seconds: v})
	}
	return out
}

func accessedBytes(line string) (float64, bool) {
	n, unit, ok := units.ParseSize(volumeRe.FindString(line))
	if !ok {
		return 0, false
	}
	return float64(units.SizeToBytes(n, unit)), true
}

func elapsedSeconds(line string) (float64, bool) {
	m := elapsedRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	return float64(units.DurationToSeconds(m[1])), true
}
