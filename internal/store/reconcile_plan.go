// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-story-sync/internal/utils"
	"github.com/MKhiriev/go-story-sync/models"
)

// PlanReconcile classifies a full remote snapshot against the local replica
// state. It is a pure, in-memory operation.
//
// It builds O(1) lookup indexes from the input slices, then makes two linear
// passes:
//
//   - Pass 1 (over remote): every remote story is Added (unknown locally),
//     Changed (content fingerprint differs) or Unchanged. Entries without an
//     id are counted as Skipped. When the snapshot repeats an id, the last
//     occurrence wins.
//   - Pass 2 (over local): every local id absent from the snapshot and not
//     listed in retain is Removed.
//
// ctx cancellation is checked at the start of each iteration.
func PlanReconcile(
	ctx context.Context,
	local []models.StoryState,
	remote []models.Story,
	retain []string,
) (models.ReconcilePlan, error) {
	var plan models.ReconcilePlan

	localIndex := make(map[string]models.StoryState, len(local))
	for _, ls := range local {
		localIndex[ls.ID] = ls
	}

	retainIndex := make(map[string]struct{}, len(retain))
	for _, id := range retain {
		retainIndex[id] = struct{}{}
	}

	remoteIndex := make(map[string]int, len(remote))
	order := make([]string, 0, len(remote))
	for i, rs := range remote {
		if strings.TrimSpace(rs.ID) == "" {
			plan.Skipped++
			continue
		}
		if _, seen := remoteIndex[rs.ID]; !seen {
			order = append(order, rs.ID)
		}
		remoteIndex[rs.ID] = i
	}

	// ── Pass 1: remote stories ───────────────────────────────────────────────
	for _, id := range order {
		if err := ctx.Err(); err != nil {
			return models.ReconcilePlan{}, err
		}

		rs := remote[remoteIndex[id]]
		ls, existsLocally := localIndex[id]

		switch {
		case !existsLocally:
			plan.Added = append(plan.Added, rs)
		case ls.Fingerprint != utils.StoryFingerprint(rs):
			plan.Changed = append(plan.Changed, rs)
		default:
			plan.Unchanged = append(plan.Unchanged, id)
		}
	}

	// ── Pass 2: local-only stories ───────────────────────────────────────────
	for _, ls := range local {
		if err := ctx.Err(); err != nil {
			return models.ReconcilePlan{}, err
		}

		if _, existsRemotely := remoteIndex[ls.ID]; existsRemotely {
			continue
		}
		if _, retained := retainIndex[ls.ID]; retained {
			continue
		}

		plan.Removed = append(plan.Removed, ls.ID)
	}

	return plan, nil
}
