package publish

import (
	"sort"
	"time"

	"github.com/wickers-data/catalog/pkg/types"
)

// ActiveSnapshot returns the snapshot that should be active at the given
// time: among non-future, non-archived snapshots, the one with the most
// recent effective date. Returns nil when no snapshot is eligible.
//
// Tie-break for identical effective dates: most recent published date,
// then highest ID. Deterministic rather than sort-order-dependent.
func ActiveSnapshot(snapshots []types.Snapshot, now time.Time) *types.Snapshot {
	var eligible []types.Snapshot
	for _, s := range snapshots {
		if s.Status != types.SnapshotArchived && !s.EffectiveDate.After(now) {
			eligible = append(eligible, s)
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	sort.Slice(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		if !a.EffectiveDate.Equal(b.EffectiveDate) {
			return a.EffectiveDate.After(b.EffectiveDate)
		}
		if !a.PublishedDate.Equal(b.PublishedDate) {
			return a.PublishedDate.After(b.PublishedDate)
		}
		return a.ID > b.ID
	})

	winner := eligible[0]
	return &winner
}

// UpdateStatuses applies the full status transition pass over the snapshot
// set and returns a new list. Future snapshots are scheduled; the
// ActiveSnapshot winner is active; every other eligible snapshot is
// archived (superseded). Snapshots already archived are never reconsidered.
// Pure and idempotent; at most one snapshot leaves the pass active.
func UpdateStatuses(snapshots []types.Snapshot, now time.Time) []types.Snapshot {
	active := ActiveSnapshot(snapshots, now)

	out := make([]types.Snapshot, len(snapshots))
	for i, s := range snapshots {
		if s.Status == types.SnapshotArchived {
			out[i] = s
			continue
		}

		switch {
		case s.EffectiveDate.After(now):
			s.Status = types.SnapshotScheduled
		case active != nil && s.ID == active.ID:
			s.Status = types.SnapshotActive
		default:
			s.Status = types.SnapshotArchived
		}
		out[i] = s
	}
	return out
}

// Stats summarizes a snapshot set.
//
// LatestVersion reports the last well-formed version in array order, not
// the numerically highest; this matches the reporting surface it feeds,
// which is inconsistent with NextVersion's ordering. Kept as-is pending a
// product-owner decision.
func Stats(snapshots []types.Snapshot) types.SnapshotStats {
	stats := types.SnapshotStats{
		TotalSnapshots: len(snapshots),
		LatestVersion:  "0.0.0",
	}

	var nextScheduled *time.Time
	for _, s := range snapshots {
		switch s.Status {
		case types.SnapshotScheduled:
			stats.ScheduledCount++
			ed := s.EffectiveDate
			if nextScheduled == nil || ed.Before(*nextScheduled) {
				nextScheduled = &ed
			}
		case types.SnapshotActive:
			stats.ActiveCount++
		case types.SnapshotArchived:
			stats.ArchivedCount++
		}

		if versionPattern.MatchString(s.Version) {
			stats.LatestVersion = s.Version
		}
	}

	stats.NextScheduledDate = nextScheduled
	return stats
}
