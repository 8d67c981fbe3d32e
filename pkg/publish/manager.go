package publish

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/wickers-data/catalog/pkg/types"
)

// Manager governs the snapshot lifecycle against an injected Store. All
// status computation is delegated to the pure functions in this package;
// the manager adds persistence, audit events, and logging.
type Manager struct {
	store types.Store
	log   zerolog.Logger
	now   func() time.Time
}

// NewManager returns a Manager using the wall clock.
func NewManager(store types.Store, log zerolog.Logger) *Manager {
	return &Manager{
		store: store,
		log:   log,
		now:   time.Now,
	}
}

// Snapshots returns every stored snapshot.
func (m *Manager) Snapshots() ([]types.Snapshot, error) {
	table, err := m.store.GetTable(types.TableSnapshots)
	if err != nil {
		return nil, fmt.Errorf("get snapshots table: %w", err)
	}
	entities, err := table.Fetch(nil)
	if err != nil {
		return nil, fmt.Errorf("fetch snapshots: %w", err)
	}
	out := make([]types.Snapshot, 0, len(entities))
	for _, e := range entities {
		s, ok := e.(*types.Snapshot)
		if !ok {
			return nil, types.ErrInvalidData
		}
		out = append(out, *s)
	}
	return out, nil
}

// Published returns the snapshot collection together with the current
// active snapshot ID. The ID is recomputed from the list on every call,
// so the cached value can never drift from the derivation.
func (m *Manager) Published() (types.PublishedSnapshots, error) {
	snapshots, err := m.Snapshots()
	if err != nil {
		return types.PublishedSnapshots{}, err
	}
	ps := types.PublishedSnapshots{Snapshots: snapshots}
	if active := ActiveSnapshot(snapshots, m.now()); active != nil {
		ps.CurrentActiveSnapshotID = active.ID
	}
	return ps, nil
}

// Publish captures the given working set as a new snapshot, persists it,
// recomputes statuses across the whole set, and records an audit event.
func (m *Manager) Publish(products []types.Product, effectiveDate time.Time, publishedBy, notes string) (*types.Snapshot, error) {
	existing, err := m.Snapshots()
	if err != nil {
		return nil, err
	}

	snapshot := NewSnapshot(products, effectiveDate, publishedBy, notes, existing, m.now())

	table, err := m.store.GetTable(types.TableSnapshots)
	if err != nil {
		return nil, fmt.Errorf("get snapshots table: %w", err)
	}
	if _, err := table.Set(snapshot.ID, &snapshot); err != nil {
		return nil, fmt.Errorf("persist snapshot: %w", err)
	}

	m.recordEvent(snapshot.ID, types.EventPublished, publishedBy)
	m.log.Info().
		Str("snapshot_id", snapshot.ID).
		Str("version", snapshot.Version).
		Time("effective_date", snapshot.EffectiveDate).
		Int("products", snapshot.ProductCount).
		Msg("snapshot published")

	// Adding a snapshot can demote the previously active one.
	if _, err := m.RefreshStatuses(); err != nil {
		return nil, err
	}

	saved, err := m.Get(snapshot.ID)
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Get returns a stored snapshot by ID.
func (m *Manager) Get(id string) (*types.Snapshot, error) {
	table, err := m.store.GetTable(types.TableSnapshots)
	if err != nil {
		return nil, fmt.Errorf("get snapshots table: %w", err)
	}
	entity, err := table.Get(id)
	if err != nil {
		return nil, err
	}
	s, ok := entity.(*types.Snapshot)
	if !ok {
		return nil, types.ErrInvalidData
	}
	return s, nil
}

// Active returns the currently active snapshot, or nil when no snapshot
// is eligible. Absence is an explicit nil, not an error.
func (m *Manager) Active() (*types.Snapshot, error) {
	snapshots, err := m.Snapshots()
	if err != nil {
		return nil, err
	}
	return ActiveSnapshot(snapshots, m.now()), nil
}

// RefreshStatuses runs the status transition pass over the stored set and
// persists the snapshots whose status changed. Returns the change count.
func (m *Manager) RefreshStatuses() (int, error) {
	snapshots, err := m.Snapshots()
	if err != nil {
		return 0, err
	}

	updated := UpdateStatuses(snapshots, m.now())

	table, err := m.store.GetTable(types.TableSnapshots)
	if err != nil {
		return 0, fmt.Errorf("get snapshots table: %w", err)
	}

	changed := 0
	for i := range updated {
		if updated[i].Status == snapshots[i].Status {
			continue
		}
		if _, err := table.Set(updated[i].ID, &updated[i]); err != nil {
			return changed, fmt.Errorf("persist status of %s: %w", updated[i].ID, err)
		}
		changed++

		m.log.Info().
			Str("snapshot_id", updated[i].ID).
			Str("from", snapshots[i].Status).
			Str("to", updated[i].Status).
			Msg("snapshot status changed")
		if updated[i].Status == types.SnapshotActive {
			m.recordEvent(updated[i].ID, types.EventActivated, "")
		}
	}
	return changed, nil
}

// Archive marks a snapshot archived. One-way: the refresh pass never
// reconsiders archived snapshots.
func (m *Manager) Archive(id, actor string) error {
	snapshot, err := m.Get(id)
	if err != nil {
		return err
	}
	if snapshot.Status == types.SnapshotArchived {
		return nil // idempotent
	}
	snapshot.Archive()

	table, err := m.store.GetTable(types.TableSnapshots)
	if err != nil {
		return fmt.Errorf("get snapshots table: %w", err)
	}
	if _, err := table.Set(id, snapshot); err != nil {
		return fmt.Errorf("persist archive of %s: %w", id, err)
	}
	m.recordEvent(id, types.EventArchived, actor)

	// Archiving the active snapshot may promote another one.
	_, err = m.RefreshStatuses()
	return err
}

// Stats summarizes the stored snapshot set.
func (m *Manager) Stats() (types.SnapshotStats, error) {
	snapshots, err := m.Snapshots()
	if err != nil {
		return types.SnapshotStats{}, err
	}
	return Stats(snapshots), nil
}

// DiffAgainst compares the working set against a stored snapshot.
func (m *Manager) DiffAgainst(wip []types.Product, snapshotID string) (Diff, error) {
	snapshot, err := m.Get(snapshotID)
	if err != nil {
		return Diff{}, err
	}
	return Compare(wip, snapshot.Products), nil
}

// recordEvent appends a publish audit event. Event persistence failures
// are logged, not propagated; the lifecycle operation itself succeeded.
func (m *Manager) recordEvent(snapshotID, action, actor string) {
	table, err := m.store.GetTable(types.TablePublishEvents)
	if err != nil {
		m.log.Warn().Err(err).Msg("publish events table unavailable")
		return
	}
	event := &types.PublishEvent{
		SnapshotID: snapshotID,
		Action:     action,
		Actor:      actor,
		CreatedAt:  m.now(),
	}
	if _, err := table.Set("", event); err != nil {
		m.log.Warn().Err(err).Str("snapshot_id", snapshotID).Msg("record publish event failed")
	}
}
