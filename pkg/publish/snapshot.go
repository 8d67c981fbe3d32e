package publish

import (
	"strings"
	"time"

	"github.com/wickers-data/catalog/pkg/types"
)

// SnapshotID derives a snapshot ID from the creation timestamp,
// millisecond granularity: snapshot_2026-08-28_14-03-21-457.
func SnapshotID(now time.Time) string {
	ts := now.UTC().Format("2006-01-02T15:04:05.000")
	ts = strings.NewReplacer(":", "-", ".", "-", "T", "_").Replace(ts)
	return "snapshot_" + ts
}

// NewSnapshot captures the product working set as an immutable snapshot.
// Products are deep-copied so later working-set edits cannot reach the
// snapshot. The version is derived from existing snapshots; the initial
// status is scheduled when the effective date is strictly in the future,
// active otherwise. The full recompute pass supersedes this initial
// assignment once more snapshots exist.
func NewSnapshot(products []types.Product, effectiveDate time.Time, publishedBy, notes string, existing []types.Snapshot, now time.Time) types.Snapshot {
	cloned := make([]types.Product, len(products))
	for i, p := range products {
		cloned[i] = p.Clone()
	}

	status := types.SnapshotActive
	if effectiveDate.After(now) {
		status = types.SnapshotScheduled
	}

	return types.Snapshot{
		ID:            SnapshotID(now),
		Version:       NextVersion(existing),
		EffectiveDate: effectiveDate,
		PublishedDate: now,
		Status:        status,
		PublishedBy:   publishedBy,
		Notes:         notes,
		ProductCount:  len(cloned),
		Products:      cloned,
	}
}
