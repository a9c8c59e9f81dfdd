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
	"strconv"
	"strings"

	"github.com/NVIDIA/snapraid-metrics/pkg/units"
)

var (
	leadingIntRe   = regexp.MustCompile(`^\s*(\d+)`)
	percentTokenRe = regexp.MustCompile(`(\d+(?:\.\d+)?)%`)
)

// finder scans report lines and returns a value when it finds one.
type finder func(lines []string) (float64, bool)

// rule binds a metric to the finder that produces its value.
type rule struct {
	name  string
	help  string
	find  finder
	empty float64
}

// declareRules declares every metric in rules.
func declareRules(env *Env, rules []rule) {
	for _, r := range rules {
		env.declare(r.name, r.help)
	}
}

// applyRules emits one sample per rule, falling back to its default.
func applyRules(env *Env, rules []rule, lines []string) {
	for _, r := range rules {
		v, ok := r.find(lines)
		if !ok {
			v = r.empty
		}
		env.sample(r.name, nil, v)
	}
}

// splitLines splits captured output into lines with trailing CR removed.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	parts := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, p := range parts {
		parts[i] = strings.TrimRight(p, "\r")
	}
	return parts
}

// firstContaining finds the first line containing phrase and hands it to
// parse. A matching line that parse rejects does not continue the search.
func firstContaining(phrase string, parse func(line string) (float64, bool)) finder {
	return func(lines []string) (float64, bool) {
		for _, l := range lines {
			if strings.Contains(l, phrase) {
				return parse(l)
			}
		}
		return 0, false
	}
}

// firstMatch returns the first capture of re across all lines.
func firstMatch(re *regexp.Regexp) finder {
	return func(lines []string) (float64, bool) {
		for _, l := range lines {
			if m := re.FindStringSubmatch(l); m != nil {
				return parseFloat(m[1])
			}
		}
		return 0, false
	}
}

// countOf matches summary lines such as "   12 updated".
func countOf(noun string) finder {
	return firstMatch(regexp.MustCompile(`^\s*(\d+)\s+` + regexp.QuoteMeta(noun) + `\b`))
}

func leadingInt(line string) (float64, bool) {
	m := leadingIntRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	return parseFloat(m[1])
}

func firstPercent(line string) (float64, bool) {
	m := percentTokenRe.FindString(line)
	if m == "" {
		return 0, false
	}
	return units.PercentageValue(m)
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
