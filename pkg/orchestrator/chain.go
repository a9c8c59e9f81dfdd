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

package orchestrator

import (
	"slices"
	"strings"

	"github.com/NVIDIA/snapraid-metrics/pkg/errors"
	"github.com/NVIDIA/snapraid-metrics/pkg/extractor"
)

// ArgSeparator ends operation-name recognition within a chain.
const ArgSeparator = "--"

// DefaultOperation runs when no chain is given.
const DefaultOperation = extractor.OpSmart

// Request is one operation in a chain with its caller-supplied arguments.
type Request struct {
	Operation string
	Args      []string
}

// String renders the request as it would appear on the command line.
func (r Request) String() string {
	return strings.Join(append([]string{r.Operation}, r.Args...), " ")
}

// ParseChain splits tokens into requests. Each operation name starts a new
// request; the tokens after it, up to the next operation name, are its
// arguments. Operations may not repeat.
func ParseChain(tokens []string) ([]Request, error) {
	if len(tokens) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "no operation requested")
	}

	var reqs []Request
	seen := make(map[string]bool)
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if tok == ArgSeparator {
			if len(reqs) == 0 {
				return nil, errors.New(errors.ErrCodeInvalidRequest, "argument separator before any operation")
			}
			last := &reqs[len(reqs)-1]
			last.Args = append(last.Args, tokens[i+1:]...)
			break
		}

		if extractor.IsOperation(tok) {
			if seen[tok] {
				return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "operation requested more than once",
					map[string]any{"operation": tok})
			}
			seen[tok] = true
			reqs = append(reqs, Request{Operation: tok})
			continue
		}

		if len(reqs) == 0 {
			if strings.HasPrefix(tok, "-") {
				return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "argument given before any operation",
					map[string]any{"argument": tok})
			}
			return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "unknown operation",
				map[string]any{"operation": tok, "supported": extractor.Operations()})
		}

		last := &reqs[len(reqs)-1]
		last.Args = append(last.Args, tok)
	}
	return reqs, nil
}

// MergeArgs returns defaults followed by caller arguments.
func MergeArgs(defaults, caller []string) []string {
	return append(slices.Clone(defaults), caller...)
}
