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

package snapraid

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/coreos/go-systemd/v22/journal"
)

// notifyJournal records the outcome of inv in the systemd journal.
func (r *ExecRunner) notifyJournal(inv *Invocation) {
	if !r.journal || !journal.Enabled() {
		return
	}

	pri := journal.PriInfo
	switch {
	case inv.TimedOut:
		pri = journal.PriWarning
	case !inv.Succeeded():
		pri = journal.PriErr
	}

	msg := fmt.Sprintf("snapraid %s finished with exit status %d", inv.Operation, inv.ExitStatus)
	err := journal.Send(msg, pri, journalFields(inv, r.runID))
	if err != nil {
		slog.Debug("failed to send journal entry", "operation", inv.Operation, "error", err)
	}
}

func journalFields(inv *Invocation, runID string) map[string]string {
	fields := map[string]string{
		"SNAPRAID_OPERATION":   inv.Operation,
		"SNAPRAID_EXIT_STATUS": strconv.Itoa(inv.ExitStatus),
		"SNAPRAID_DURATION_MS": strconv.FormatInt(inv.DurationMillis(), 10),
		"SNAPRAID_RUN_ID":      runID,
	}
	if inv.LogPath != "" {
		fields["SNAPRAID_LOG"] = inv.LogPath
	}
	return fields
}
