// Snapshots table accessor: published catalog snapshots.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/wickers-data/catalog/pkg/types"
)

// Compile-time interface check: snapshotsTable must implement Table.
var _ types.Table = (*snapshotsTable)(nil)

// snapshotsTable implements the Table interface for snapshots. Rows keep
// the snapshot's product deep copy as an embedded JSON array; Fetch order
// is publication order, which is also the array order the stats surface
// depends on.
type snapshotsTable struct {
	backend *Backend
}

// Get retrieves a snapshot by ID.
func (st *snapshotsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	st.backend.mu.RLock()
	defer st.backend.mu.RUnlock()
	if !st.backend.attached {
		return nil, types.ErrStoreDetached
	}

	row := st.backend.db.QueryRow(
		"SELECT snapshot_id, version, effective_date, published_date, status, published_by, notes, product_count, products FROM snapshots WHERE snapshot_id = ?",
		id,
	)
	snapshot, err := hydrateSnapshot(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting snapshot %s: %w", id, err)
	}
	return snapshot, nil
}

// Set persists a snapshot. The snapshot carries its own timestamp-derived
// ID; when id is empty it is taken from the entity.
func (st *snapshotsTable) Set(id string, data any) (string, error) {
	snapshot, ok := data.(*types.Snapshot)
	if !ok {
		return "", types.ErrInvalidData
	}
	if id == "" {
		id = snapshot.ID
	}
	if id == "" || (snapshot.ID != "" && snapshot.ID != id) {
		return "", types.ErrInvalidData
	}
	if !validSnapshotStatus(snapshot.Status) {
		return "", types.ErrInvalidStatus
	}

	st.backend.mu.Lock()
	defer st.backend.mu.Unlock()
	if !st.backend.attached {
		return "", types.ErrStoreDetached
	}

	productsJSON, err := marshalProducts(snapshot.Products)
	if err != nil {
		return "", fmt.Errorf("marshaling snapshot products: %w", err)
	}

	var exists int
	err = st.backend.db.QueryRow(
		"SELECT 1 FROM snapshots WHERE snapshot_id = ?", id,
	).Scan(&exists)
	if err != nil && err != sql.ErrNoRows {
		return "", fmt.Errorf("checking snapshot existence: %w", err)
	}

	effective := snapshot.EffectiveDate.UTC().Format(time.RFC3339Nano)
	published := snapshot.PublishedDate.UTC().Format(time.RFC3339Nano)

	if err == nil {
		_, err = st.backend.db.Exec(
			"UPDATE snapshots SET version = ?, effective_date = ?, published_date = ?, status = ?, published_by = ?, notes = ?, product_count = ?, products = ? WHERE snapshot_id = ?",
			snapshot.Version, effective, published, snapshot.Status,
			snapshot.PublishedBy, snapshot.Notes, snapshot.ProductCount, productsJSON, id,
		)
	} else {
		_, err = st.backend.db.Exec(
			"INSERT INTO snapshots (snapshot_id, version, effective_date, published_date, status, published_by, notes, product_count, products) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
			id, snapshot.Version, effective, published, snapshot.Status,
			snapshot.PublishedBy, snapshot.Notes, snapshot.ProductCount, productsJSON,
		)
	}
	if err != nil {
		return "", fmt.Errorf("persisting snapshot %s: %w", id, err)
	}

	if err := st.persistJSONL(); err != nil {
		return "", fmt.Errorf("persisting snapshots.jsonl: %w", err)
	}
	return id, nil
}

// Delete removes a snapshot by ID.
func (st *snapshotsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	st.backend.mu.Lock()
	defer st.backend.mu.Unlock()
	if !st.backend.attached {
		return types.ErrStoreDetached
	}

	res, err := st.backend.db.Exec("DELETE FROM snapshots WHERE snapshot_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting snapshot %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting snapshot %s: %w", id, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}

	if err := st.persistJSONL(); err != nil {
		return fmt.Errorf("persisting snapshots.jsonl: %w", err)
	}
	return nil
}

// Fetch returns snapshots in publication order. Supported filter keys:
// "status" (string), "statuses" ([]string), "limit"/"offset" (int).
func (st *snapshotsTable) Fetch(filter map[string]any) ([]any, error) {
	st.backend.mu.RLock()
	defer st.backend.mu.RUnlock()
	if !st.backend.attached {
		return nil, types.ErrStoreDetached
	}

	query := "SELECT snapshot_id, version, effective_date, published_date, status, published_by, notes, product_count, products FROM snapshots"
	var conditions []string
	var args []any

	if filter != nil {
		if v, ok := filter["status"]; ok {
			status, ok := v.(string)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			conditions = append(conditions, "status = ?")
			args = append(args, status)
		}
		if v, ok := filter["statuses"]; ok {
			statuses, ok := v.([]string)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			if len(statuses) > 0 {
				placeholders := make([]string, len(statuses))
				for i, s := range statuses {
					placeholders[i] = "?"
					args = append(args, s)
				}
				conditions = append(conditions, "status IN ("+strings.Join(placeholders, ", ")+")")
			}
		}
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY published_date ASC, snapshot_id ASC"

	limitSQL, err := limitOffsetSQL(filter)
	if err != nil {
		return nil, err
	}
	query += limitSQL

	rows, err := st.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching snapshots: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		snapshot, err := hydrateSnapshot(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("hydrating snapshot: %w", err)
		}
		results = append(results, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshots: %w", err)
	}
	return results, nil
}

// hydrateSnapshot converts a snapshot row into a *types.Snapshot.
func hydrateSnapshot(scan func(dest ...any) error) (*types.Snapshot, error) {
	var s types.Snapshot
	var effective, published, productsJSON string
	if err := scan(&s.ID, &s.Version, &effective, &published, &s.Status,
		&s.PublishedBy, &s.Notes, &s.ProductCount, &productsJSON); err != nil {
		return nil, err
	}

	var err error
	s.EffectiveDate, err = time.Parse(time.RFC3339Nano, effective)
	if err != nil {
		return nil, fmt.Errorf("parsing effective_date: %w", err)
	}
	s.PublishedDate, err = time.Parse(time.RFC3339Nano, published)
	if err != nil {
		return nil, fmt.Errorf("parsing published_date: %w", err)
	}
	if err := json.Unmarshal([]byte(productsJSON), &s.Products); err != nil {
		return nil, fmt.Errorf("parsing snapshot products: %w", err)
	}
	return &s, nil
}

// marshalProducts serializes a snapshot's product list for storage.
func marshalProducts(products []types.Product) (string, error) {
	if products == nil {
		products = []types.Product{}
	}
	data, err := json.Marshal(products)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// validSnapshotStatus checks a status value before persistence.
func validSnapshotStatus(status string) bool {
	switch status {
	case types.SnapshotScheduled, types.SnapshotActive, types.SnapshotArchived:
		return true
	}
	return false
}

// persistJSONL writes every snapshot row to snapshots.jsonl atomically.
// The caller must hold the backend lock.
func (st *snapshotsTable) persistJSONL() error {
	rows, err := st.backend.db.Query(
		"SELECT snapshot_id, version, effective_date, published_date, status, published_by, notes, product_count, products FROM snapshots ORDER BY published_date ASC, snapshot_id ASC",
	)
	if err != nil {
		return fmt.Errorf("querying snapshots for JSONL: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var rec snapshotJSON
		var productsJSON string
		if err := rows.Scan(&rec.SnapshotID, &rec.Version, &rec.EffectiveDate, &rec.PublishedDate,
			&rec.Status, &rec.PublishedBy, &rec.Notes, &rec.ProductCount, &productsJSON); err != nil {
			return fmt.Errorf("scanning snapshot for JSONL: %w", err)
		}
		if err := json.Unmarshal([]byte(productsJSON), &rec.Products); err != nil {
			return fmt.Errorf("parsing snapshot products for JSONL: %w", err)
		}
		out, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshaling snapshot for JSONL: %w", err)
		}
		records = append(records, out)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating snapshots for JSONL: %w", err)
	}

	return writeJSONL(jsonlPath(st.backend.config.DataDir, "snapshots.jsonl"), records)
}
