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

	"golang.org/x/text/cases"

	"github.com/NVIDIA/snapraid-metrics/pkg/emitter"
	"github.com/NVIDIA/snapraid-metrics/pkg/snapraid"
	"github.com/NVIDIA/snapraid-metrics/pkg/units"
)

const (
	// smart reports disk sizes in decimal terabytes.
	smartSizeUnit = "TB"

	placeholder = "-"

	totalFailPhrase = "Probability that at least one disk is going to fail"
)

var (
	signedIntRe   = regexp.MustCompile(`^-?\d+$`)
	unsignedIntRe = regexp.MustCompile(`^\d+$`)
	decimalRe     = regexp.MustCompile(`^\d+(\.\d+)?$`)

	warningWords = []string{"warning", "alert", "critical"}
)

// smartColumn is one numeric column of the smart table.
type smartColumn struct {
	suffix string
	help   string
	value  func(r smartRow) (float64, bool)
}

var smartColumns = []smartColumn{
	{
		suffix: "disk_temperature_celsius",
		help:   "Disk temperature in degrees Celsius as reported by snapraid smart.",
		value:  func(r smartRow) (float64, bool) { return matchNumber(signedIntRe, r.temp) },
	},
	{
		suffix: "disk_power_on_days",
		help:   "Disk power-on time in days.",
		value:  func(r smartRow) (float64, bool) { return matchNumber(unsignedIntRe, r.days) },
	},
	{
		suffix: "disk_error_count",
		help:   "Error count reported by the disk.",
		value:  func(r smartRow) (float64, bool) { return matchNumber(unsignedIntRe, r.errors) },
	},
	{
		suffix: "disk_fail_probability",
		help:   "Estimated probability in percent that the disk fails within a year.",
		value:  func(r smartRow) (float64, bool) { return units.PercentageValue(r.fp) },
	},
	{
		suffix: "disk_size_bytes",
		help:   "Disk size in bytes.",
		value: func(r smartRow) (float64, bool) {
			n, ok := matchNumber(decimalRe, r.size)
			if !ok {
				return 0, false
			}
			return float64(units.SizeToBytes(n, smartSizeUnit)), true
		},
	},
}

type smartRow struct {
	temp, days, errors, fp, size string

	serial, device, disk string
}

// SmartExtractor reads the disk health table printed by "snapraid smart".
type SmartExtractor struct{}

func (x *SmartExtractor) Operation() string { return OpSmart }

func (x *SmartExtractor) Extract(inv *snapraid.Invocation, env *Env) {
	for _, c := range smartColumns {
		env.declare(MetricName(OpSmart, c.suffix), c.help)
	}
	totalName := MetricName(OpSmart, "total_fail_probability")
	warningsName := MetricName(OpSmart, "warnings")
	env.declare(totalName, "Estimated probability in percent that at least one disk fails within a year.")
	env.declare(warningsName, "Number of report lines containing a warning keyword.")

	lines := splitLines(inv.Stdout)
	rows := parseSmartTable(lines)

	// Samples of one family stay contiguous.
	for _, c := range smartColumns {
		name := MetricName(OpSmart, c.suffix)
		for _, r := range rows {
			if v, ok := c.value(r); ok {
				env.sample(name, r.labels(env), v)
			}
		}
	}

	total, _ := firstContaining(totalFailPhrase, firstPercent)(lines)
	env.sample(totalName, nil, total)
	env.sample(warningsName, nil, float64(countWarnings(lines)))
}

func (r smartRow) labels(env *Env) emitter.Labels {
	return emitter.L(
		"disk", r.disk,
		"device", r.device,
		"serial", env.redact(r.serial),
		"size", r.size,
	)
}

// parseSmartTable returns the rows found between the first two dashed
// separator lines. Rows without a disk name or device are skipped.
func parseSmartTable(lines []string) []smartRow {
	var rows []smartRow
	inTable := false
	for _, l := range lines {
		if isSeparator(l) {
			if inTable {
				break
			}
			inTable = true
			continue
		}
		if !inTable {
			continue
		}

		f := strings.Fields(l)
		if len(f) < 7 {
			continue
		}
		n := len(f)
		r := smartRow{
			temp:   f[0],
			days:   f[1],
			errors: f[2],
			fp:     f[3],
			size:   f[4],
			serial: strings.Join(f[5:n-2], " "),
			device: f[n-2],
			disk:   f[n-1],
		}
		if r.disk == placeholder || r.device == placeholder {
			continue
		}
		if r.serial == placeholder {
			r.serial = ""
		}
		rows = append(rows, r)
	}
	return rows
}

func isSeparator(line string) bool {
	s := strings.TrimSpace(line)
	return len(s) >= 3 && strings.Trim(s, "-") == ""
}

func countWarnings(lines []string) int {
	fold := cases.Fold()
	count := 0
	for _, l := range lines {
		folded := fold.String(l)
		for _, w := range warningWords {
			if strings.Contains(folded, w) {
				count++
				break
			}
		}
	}
	return count
}

func matchNumber(re *regexp.Regexp, s string) (float64, bool) {
	if !re.MatchString(s) {
		return 0, false
	}
	return parseFloat(s)
}
