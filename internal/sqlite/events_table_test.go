package sqlite

import (
	"testing"
	"time"

	"github.com/wickers-data/catalog/pkg/types"
)

func TestEventsTable_SetAndGet(t *testing.T) {
	b := setupBackend(t)
	table, err := b.GetTable(types.TablePublishEvents)
	if err != nil {
		t.Fatalf("GetTable failed: %v", err)
	}

	event := &types.PublishEvent{
		SnapshotID: "snapshot_x",
		Action:     types.EventPublished,
		Actor:      "jdoe",
	}
	id, err := table.Set("", event)
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated id")
	}
	if event.CreatedAt.IsZero() {
		t.Error("zero CreatedAt not stamped")
	}

	entity, err := table.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	got := entity.(*types.PublishEvent)
	if got.SnapshotID != "snapshot_x" || got.Action != types.EventPublished || got.Actor != "jdoe" {
		t.Errorf("event fields did not survive: %+v", got)
	}
}

func TestEventsTable_SetInvalid(t *testing.T) {
	b := setupBackend(t)
	table, _ := b.GetTable(types.TablePublishEvents)

	if _, err := table.Set("", "not an event"); err != types.ErrInvalidData {
		t.Errorf("expected ErrInvalidData for wrong type, got %v", err)
	}
	if _, err := table.Set("", &types.PublishEvent{Action: types.EventPublished}); err != types.ErrInvalidData {
		t.Errorf("expected ErrInvalidData for missing snapshot id, got %v", err)
	}
	if _, err := table.Set("", &types.PublishEvent{SnapshotID: "snapshot_x"}); err != types.ErrInvalidData {
		t.Errorf("expected ErrInvalidData for missing action, got %v", err)
	}
}

func TestEventsTable_FetchFilters(t *testing.T) {
	b := setupBackend(t)
	table, _ := b.GetTable(types.TablePublishEvents)

	base := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	events := []*types.PublishEvent{
		{SnapshotID: "snapshot_a", Action: types.EventPublished, CreatedAt: base},
		{SnapshotID: "snapshot_a", Action: types.EventArchived, CreatedAt: base.Add(time.Minute)},
		{SnapshotID: "snapshot_b", Action: types.EventPublished, CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, e := range events {
		if _, err := table.Set("", e); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	entities, err := table.Fetch(map[string]any{"snapshot_id": "snapshot_a"})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(entities) != 2 {
		t.Fatalf("expected 2 events, got %d", len(entities))
	}
	// Creation order.
	if entities[0].(*types.PublishEvent).Action != types.EventPublished {
		t.Error("events not in creation order")
	}

	entities, err = table.Fetch(map[string]any{"snapshot_id": "snapshot_a", "action": types.EventArchived})
	if err != nil {
		t.Fatalf("Fetch with combined filter failed: %v", err)
	}
	if len(entities) != 1 {
		t.Errorf("expected 1 event, got %d", len(entities))
	}

	if _, err := table.Fetch(map[string]any{"action": 42}); err != types.ErrInvalidFilter {
		t.Errorf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestEventsTable_Delete(t *testing.T) {
	b := setupBackend(t)
	table, _ := b.GetTable(types.TablePublishEvents)

	id, err := table.Set("", &types.PublishEvent{SnapshotID: "snapshot_x", Action: types.EventPublished})
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := table.Delete(id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := table.Get(id); err != types.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
