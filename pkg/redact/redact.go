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

// Package redact pseudonymizes identifying label values, such as disk serial
// numbers, so metrics can be shared without exposing hardware identities.
//
// A Redactor lives for exactly one collection run. Within that run the same
// raw value always maps to the same pseudonym; nothing is persisted, so
// pseudonyms are not stable across runs.
package redact

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/NVIDIA/snapraid-metrics/pkg/defaults"
)

// Redactor maps raw identifiers to stable pseudonyms for the duration of a run.
// It is not safe for concurrent use; a run is strictly sequential.
type Redactor struct {
	enabled bool
	cache   map[string]string
}

// New creates a Redactor. When enabled is false Redact returns its input.
func New(enabled bool) *Redactor {
	return &Redactor{
		enabled: enabled,
		cache:   make(map[string]string),
	}
}

// Enabled reports whether redaction is active.
func (r *Redactor) Enabled() bool {
	return r != nil && r.enabled
}

// Redact returns the display value for raw. The empty string is never hashed.
func (r *Redactor) Redact(raw string) string {
	if !r.Enabled() || raw == "" {
		return raw
	}
	if v, ok := r.cache[raw]; ok {
		return v
	}

	sum := sha256.Sum256([]byte(raw))
	v := defaults.RedactionPrefix + hex.EncodeToString(sum[:])[:defaults.RedactionHexLength]
	r.cache[raw] = v
	return v
}

// Len returns the number of distinct values redacted so far.
func (r *Redactor) Len() int {
	if r == nil {
		return 0
	}
	return len(r.cache)
}
