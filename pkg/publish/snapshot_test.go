package publish

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wickers-data/catalog/pkg/types"
)

func TestSnapshotID(t *testing.T) {
	now := time.Date(2026, 8, 28, 14, 3, 21, 457_000_000, time.UTC)
	assert.Equal(t, "snapshot_2026-08-28_14-03-21-457", SnapshotID(now))

	// Millisecond granularity keeps distinct instants distinct.
	later := now.Add(time.Millisecond)
	assert.NotEqual(t, SnapshotID(now), SnapshotID(later))
}

func TestNewSnapshot(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	products := []types.Product{
		types.MustProduct(`{"styleCode":"A"}`),
		types.MustProduct(`{"styleCode":"B"}`),
	}

	t.Run("immediate effective date is active", func(t *testing.T) {
		s := NewSnapshot(products, now, "jdoe", "notes", nil, now)
		assert.Equal(t, types.SnapshotActive, s.Status)
		assert.Equal(t, "1.0.0", s.Version)
		assert.Equal(t, "jdoe", s.PublishedBy)
		assert.Equal(t, 2, s.ProductCount)
		assert.Equal(t, now, s.PublishedDate)
	})

	t.Run("future effective date is scheduled", func(t *testing.T) {
		s := NewSnapshot(products, now.Add(time.Hour), "", "", nil, now)
		assert.Equal(t, types.SnapshotScheduled, s.Status)
	})

	t.Run("past effective date is active", func(t *testing.T) {
		s := NewSnapshot(products, now.Add(-time.Hour), "", "", nil, now)
		assert.Equal(t, types.SnapshotActive, s.Status)
	})

	t.Run("products are deep copied", func(t *testing.T) {
		s := NewSnapshot(products, now, "", "", nil, now)
		s.Products[0].Raw()[2] = 'X'
		assert.Equal(t, "A", products[0].StyleCode())
	})

	t.Run("version derived from existing snapshots", func(t *testing.T) {
		existing := []types.Snapshot{{Version: "1.0.4"}}
		s := NewSnapshot(products, now, "", "", existing, now)
		assert.Equal(t, "1.0.5", s.Version)
	})
}
