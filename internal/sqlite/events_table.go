// Publish-events table accessor: audit log of snapshot lifecycle actions.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/wickers-data/catalog/pkg/types"
)

// Compile-time interface check: eventsTable must implement Table.
var _ types.Table = (*eventsTable)(nil)

// eventsTable implements the Table interface for publish audit events.
// Events are append-oriented; updates are not expected but Set upserts to
// keep the Table contract uniform.
type eventsTable struct {
	backend *Backend
}

// Get retrieves an event by ID.
func (et *eventsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	et.backend.mu.RLock()
	defer et.backend.mu.RUnlock()
	if !et.backend.attached {
		return nil, types.ErrStoreDetached
	}

	row := et.backend.db.QueryRow(
		"SELECT event_id, snapshot_id, action, actor, created_at FROM publish_events WHERE event_id = ?", id,
	)
	event, err := hydrateEvent(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting event %s: %w", id, err)
	}
	return event, nil
}

// Set persists an event. When id is empty a new UUID v7 is generated and
// a zero CreatedAt is stamped with the current time.
func (et *eventsTable) Set(id string, data any) (string, error) {
	event, ok := data.(*types.PublishEvent)
	if !ok {
		return "", types.ErrInvalidData
	}
	if event.SnapshotID == "" || event.Action == "" {
		return "", types.ErrInvalidData
	}
	if id == "" {
		id = newUUID()
		event.EventID = id
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	et.backend.mu.Lock()
	defer et.backend.mu.Unlock()
	if !et.backend.attached {
		return "", types.ErrStoreDetached
	}

	_, err := et.backend.db.Exec(
		`INSERT INTO publish_events (event_id, snapshot_id, action, actor, created_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(event_id) DO UPDATE SET snapshot_id = excluded.snapshot_id, action = excluded.action, actor = excluded.actor, created_at = excluded.created_at`,
		id, event.SnapshotID, event.Action, event.Actor, event.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("persisting event %s: %w", id, err)
	}

	if err := et.persistJSONL(); err != nil {
		return "", fmt.Errorf("persisting publish_events.jsonl: %w", err)
	}
	return id, nil
}

// Delete removes an event by ID.
func (et *eventsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	et.backend.mu.Lock()
	defer et.backend.mu.Unlock()
	if !et.backend.attached {
		return types.ErrStoreDetached
	}

	res, err := et.backend.db.Exec("DELETE FROM publish_events WHERE event_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting event %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting event %s: %w", id, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}

	if err := et.persistJSONL(); err != nil {
		return fmt.Errorf("persisting publish_events.jsonl: %w", err)
	}
	return nil
}

// Fetch returns events in creation order. Supported filter keys:
// "snapshot_id" and "action" (string).
func (et *eventsTable) Fetch(filter map[string]any) ([]any, error) {
	et.backend.mu.RLock()
	defer et.backend.mu.RUnlock()
	if !et.backend.attached {
		return nil, types.ErrStoreDetached
	}

	query := "SELECT event_id, snapshot_id, action, actor, created_at FROM publish_events"
	var conditions []string
	var args []any

	if filter != nil {
		for _, key := range []string{"snapshot_id", "action"} {
			if v, ok := filter[key]; ok {
				s, ok := v.(string)
				if !ok {
					return nil, types.ErrInvalidFilter
				}
				conditions = append(conditions, key+" = ?")
				args = append(args, s)
			}
		}
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at ASC, event_id ASC"

	rows, err := et.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching events: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		event, err := hydrateEvent(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("hydrating event: %w", err)
		}
		results = append(results, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return results, nil
}

// hydrateEvent converts an event row into a *types.PublishEvent.
func hydrateEvent(scan func(dest ...any) error) (*types.PublishEvent, error) {
	var e types.PublishEvent
	var createdAt string
	if err := scan(&e.EventID, &e.SnapshotID, &e.Action, &e.Actor, &createdAt); err != nil {
		return nil, err
	}
	var err error
	e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &e, nil
}

// persistJSONL writes every event row to publish_events.jsonl atomically.
// The caller must hold the backend lock.
func (et *eventsTable) persistJSONL() error {
	rows, err := et.backend.db.Query(
		"SELECT event_id, snapshot_id, action, actor, created_at FROM publish_events ORDER BY created_at ASC, event_id ASC",
	)
	if err != nil {
		return fmt.Errorf("querying events for JSONL: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var rec publishEventJSON
		if err := rows.Scan(&rec.EventID, &rec.SnapshotID, &rec.Action, &rec.Actor, &rec.CreatedAt); err != nil {
			return fmt.Errorf("scanning event for JSONL: %w", err)
		}
		out, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshaling event for JSONL: %w", err)
		}
		records = append(records, out)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating events for JSONL: %w", err)
	}

	return writeJSONL(jsonlPath(et.backend.config.DataDir, "publish_events.jsonl"), records)
}
