package publish

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wickers-data/catalog/pkg/types"
)

var lifecycleNow = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

// snap builds a snapshot with the fields the lifecycle pass reads.
func snap(id, status string, effective, published time.Time) types.Snapshot {
	return types.Snapshot{
		ID:            id,
		Version:       "1.0.0",
		EffectiveDate: effective,
		PublishedDate: published,
		Status:        status,
	}
}

func TestActiveSnapshot(t *testing.T) {
	now := lifecycleNow

	t.Run("no snapshots", func(t *testing.T) {
		assert.Nil(t, ActiveSnapshot(nil, now))
	})

	t.Run("latest non-future effective date wins", func(t *testing.T) {
		snapshots := []types.Snapshot{
			snap("s1", types.SnapshotActive, now.Add(-3*time.Hour), now.Add(-3*time.Hour)),
			snap("s2", types.SnapshotActive, now.Add(-1*time.Hour), now.Add(-1*time.Hour)),
			snap("s3", types.SnapshotScheduled, now.Add(time.Hour), now),
		}
		active := ActiveSnapshot(snapshots, now)
		require.NotNil(t, active)
		assert.Equal(t, "s2", active.ID)
	})

	t.Run("archived snapshots are ineligible", func(t *testing.T) {
		snapshots := []types.Snapshot{
			snap("s1", types.SnapshotArchived, now.Add(-1*time.Hour), now),
			snap("s2", types.SnapshotActive, now.Add(-2*time.Hour), now),
		}
		active := ActiveSnapshot(snapshots, now)
		require.NotNil(t, active)
		assert.Equal(t, "s2", active.ID)
	})

	t.Run("all future", func(t *testing.T) {
		snapshots := []types.Snapshot{
			snap("s1", types.SnapshotScheduled, now.Add(time.Hour), now),
		}
		assert.Nil(t, ActiveSnapshot(snapshots, now))
	})

	t.Run("effective date exactly now is eligible", func(t *testing.T) {
		snapshots := []types.Snapshot{
			snap("s1", types.SnapshotScheduled, now, now),
		}
		active := ActiveSnapshot(snapshots, now)
		require.NotNil(t, active)
		assert.Equal(t, "s1", active.ID)
	})

	t.Run("tie-break by published date then ID", func(t *testing.T) {
		effective := now.Add(-time.Hour)
		snapshots := []types.Snapshot{
			snap("s1", types.SnapshotActive, effective, now.Add(-2*time.Hour)),
			snap("s2", types.SnapshotActive, effective, now.Add(-1*time.Hour)),
		}
		active := ActiveSnapshot(snapshots, now)
		require.NotNil(t, active)
		assert.Equal(t, "s2", active.ID)

		// Identical published dates fall back to the highest ID.
		snapshots[1].PublishedDate = snapshots[0].PublishedDate
		active = ActiveSnapshot(snapshots, now)
		require.NotNil(t, active)
		assert.Equal(t, "s2", active.ID)
	})

	t.Run("returns a copy", func(t *testing.T) {
		snapshots := []types.Snapshot{
			snap("s1", types.SnapshotActive, now.Add(-time.Hour), now),
		}
		active := ActiveSnapshot(snapshots, now)
		active.Status = types.SnapshotArchived
		assert.Equal(t, types.SnapshotActive, snapshots[0].Status)
	})
}

func TestUpdateStatuses(t *testing.T) {
	now := lifecycleNow

	t.Run("full pass", func(t *testing.T) {
		snapshots := []types.Snapshot{
			snap("s1", types.SnapshotActive, now.Add(-3*time.Hour), now.Add(-3*time.Hour)),
			snap("s2", types.SnapshotScheduled, now.Add(-1*time.Hour), now.Add(-1*time.Hour)),
			snap("s3", types.SnapshotScheduled, now.Add(time.Hour), now),
			snap("s4", types.SnapshotArchived, now.Add(-30*time.Minute), now),
		}

		updated := UpdateStatuses(snapshots, now)

		assert.Equal(t, types.SnapshotArchived, updated[0].Status, "superseded snapshot archives")
		assert.Equal(t, types.SnapshotActive, updated[1].Status, "due snapshot activates")
		assert.Equal(t, types.SnapshotScheduled, updated[2].Status, "future snapshot stays scheduled")
		assert.Equal(t, types.SnapshotArchived, updated[3].Status, "archived is terminal")
	})

	t.Run("archived never reactivates", func(t *testing.T) {
		// The archived snapshot has the latest effective date but must not win.
		snapshots := []types.Snapshot{
			snap("s1", types.SnapshotArchived, now.Add(-1*time.Hour), now),
			snap("s2", types.SnapshotActive, now.Add(-2*time.Hour), now),
		}
		updated := UpdateStatuses(snapshots, now)
		assert.Equal(t, types.SnapshotArchived, updated[0].Status)
		assert.Equal(t, types.SnapshotActive, updated[1].Status)
	})

	t.Run("at most one active", func(t *testing.T) {
		snapshots := []types.Snapshot{
			snap("s1", types.SnapshotActive, now.Add(-3*time.Hour), now),
			snap("s2", types.SnapshotActive, now.Add(-2*time.Hour), now),
			snap("s3", types.SnapshotActive, now.Add(-1*time.Hour), now),
		}
		updated := UpdateStatuses(snapshots, now)

		activeCount := 0
		for _, s := range updated {
			if s.Status == types.SnapshotActive {
				activeCount++
			}
		}
		assert.Equal(t, 1, activeCount)
	})

	t.Run("idempotent", func(t *testing.T) {
		snapshots := []types.Snapshot{
			snap("s1", types.SnapshotActive, now.Add(-2*time.Hour), now),
			snap("s2", types.SnapshotScheduled, now.Add(time.Hour), now),
		}
		once := UpdateStatuses(snapshots, now)
		twice := UpdateStatuses(once, now)
		assert.Equal(t, once, twice)
	})

	t.Run("input not mutated", func(t *testing.T) {
		snapshots := []types.Snapshot{
			snap("s1", types.SnapshotScheduled, now.Add(-time.Hour), now),
		}
		UpdateStatuses(snapshots, now)
		assert.Equal(t, types.SnapshotScheduled, snapshots[0].Status)
	})
}

func TestStats(t *testing.T) {
	now := lifecycleNow

	t.Run("empty set", func(t *testing.T) {
		stats := Stats(nil)
		assert.Equal(t, 0, stats.TotalSnapshots)
		assert.Equal(t, "0.0.0", stats.LatestVersion)
		assert.Nil(t, stats.NextScheduledDate)
	})

	t.Run("counts and next scheduled", func(t *testing.T) {
		early := now.Add(time.Hour)
		late := now.Add(2 * time.Hour)
		snapshots := []types.Snapshot{
			snap("s1", types.SnapshotArchived, now.Add(-2*time.Hour), now),
			snap("s2", types.SnapshotActive, now.Add(-1*time.Hour), now),
			snap("s3", types.SnapshotScheduled, late, now),
			snap("s4", types.SnapshotScheduled, early, now),
		}

		stats := Stats(snapshots)
		assert.Equal(t, 4, stats.TotalSnapshots)
		assert.Equal(t, 1, stats.ArchivedCount)
		assert.Equal(t, 1, stats.ActiveCount)
		assert.Equal(t, 2, stats.ScheduledCount)
		require.NotNil(t, stats.NextScheduledDate)
		assert.Equal(t, early, *stats.NextScheduledDate)
	})

	t.Run("latest version follows array order", func(t *testing.T) {
		// The last well-formed version wins even when a higher one
		// appears earlier in the list.
		snapshots := []types.Snapshot{
			{Version: "2.0.0"},
			{Version: "not-a-version"},
			{Version: "1.0.3"},
		}
		stats := Stats(snapshots)
		assert.Equal(t, "1.0.3", stats.LatestVersion)
	})
}
