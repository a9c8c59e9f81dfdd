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

package units

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	percentRe = regexp.MustCompile(`^\d+(\.\d+)?$`)
	sizeRe    = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([A-Za-z]+)$`)
)

const (
	kilo = 1000
	kibi = 1024
)

// multipliers maps a unit suffix to its byte multiplier. Bare K/M/G/T are
// binary because older snapraid releases printed them that way.
var multipliers = map[string]float64{
	"B": 1,

	"kB": kilo,
	"KB": kilo,
	"MB": kilo * kilo,
	"GB": kilo * kilo * kilo,
	"TB": kilo * kilo * kilo * kilo,

	"KiB": kibi,
	"MiB": kibi * kibi,
	"GiB": kibi * kibi * kibi,
	"TiB": kibi * kibi * kibi * kibi,

	"K": kibi,
	"M": kibi * kibi,
	"G": kibi * kibi * kibi,
	"T": kibi * kibi * kibi * kibi,
}

// PercentageValue strips a trailing percent sign and returns the value when
// the remainder is a non-negative decimal. The boolean is false when there is
// no value; callers must omit the sample rather than report zero.
func PercentageValue(text string) (float64, bool) {
	s := strings.TrimSuffix(strings.TrimSpace(text), "%")
	if !percentRe.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Multiplier returns the byte multiplier for unit and whether the unit is known.
func Multiplier(unit string) (float64, bool) {
	m, ok := multipliers[strings.TrimSpace(unit)]
	return m, ok
}

// SizeToBytes converts n of the given unit to bytes, rounded to the nearest
// byte. Unknown units are treated as raw bytes.
func SizeToBytes(n float64, unit string) int64 {
	m, ok := Multiplier(unit)
	if !ok {
		m = 1
	}
	return int64(math.Round(n * m))
}

// ParseSize splits a "<number> <unit>" token such as "12.5 GiB" or "300MB".
func ParseSize(text string) (float64, string, bool) {
	m := sizeRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0, "", false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, "", false
	}
	return n, m[2], true
}

// DurationToSeconds converts MM:SS or HH:MM:SS into whole seconds. Each
// component may be fractional. Unparseable input yields 0.
func DurationToSeconds(text string) int64 {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0
	}

	var total float64
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil || v < 0 {
			return 0
		}
		total = total*60 + v
	}
	return int64(math.Round(total))
}
