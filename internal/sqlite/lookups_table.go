// Lookups table accessor: reference data for dropdowns and validation.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wickers-data/catalog/pkg/types"
)

// Compile-time interface check: lookupsTable must implement Table.
var _ types.Table = (*lookupsTable)(nil)

// lookupsTable implements the Table interface for lookup rows.
type lookupsTable struct {
	backend *Backend
}

// Get retrieves a lookup by ID.
func (lt *lookupsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	lt.backend.mu.RLock()
	defer lt.backend.mu.RUnlock()
	if !lt.backend.attached {
		return nil, types.ErrStoreDetached
	}

	var l types.Lookup
	err := lt.backend.db.QueryRow(
		"SELECT lookup_id, name, table_name, ordinal FROM lookups WHERE lookup_id = ?", id,
	).Scan(&l.LookupID, &l.Name, &l.TableName, &l.Ordinal)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting lookup %s: %w", id, err)
	}
	return &l, nil
}

// Set persists a lookup. When id is empty a new UUID v7 is generated.
func (lt *lookupsTable) Set(id string, data any) (string, error) {
	lookup, ok := data.(*types.Lookup)
	if !ok {
		return "", types.ErrInvalidData
	}
	if lookup.Name == "" || lookup.TableName == "" {
		return "", types.ErrInvalidData
	}
	if id == "" {
		id = newUUID()
		lookup.LookupID = id
	}

	lt.backend.mu.Lock()
	defer lt.backend.mu.Unlock()
	if !lt.backend.attached {
		return "", types.ErrStoreDetached
	}

	_, err := lt.backend.db.Exec(
		`INSERT INTO lookups (lookup_id, name, table_name, ordinal) VALUES (?, ?, ?, ?)
		 ON CONFLICT(lookup_id) DO UPDATE SET name = excluded.name, table_name = excluded.table_name, ordinal = excluded.ordinal`,
		id, lookup.Name, lookup.TableName, lookup.Ordinal,
	)
	if err != nil {
		return "", fmt.Errorf("persisting lookup %s: %w", id, err)
	}

	if err := lt.persistJSONL(); err != nil {
		return "", fmt.Errorf("persisting lookups.jsonl: %w", err)
	}
	return id, nil
}

// Delete removes a lookup by ID.
func (lt *lookupsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	lt.backend.mu.Lock()
	defer lt.backend.mu.Unlock()
	if !lt.backend.attached {
		return types.ErrStoreDetached
	}

	res, err := lt.backend.db.Exec("DELETE FROM lookups WHERE lookup_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting lookup %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting lookup %s: %w", id, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}

	if err := lt.persistJSONL(); err != nil {
		return fmt.Errorf("persisting lookups.jsonl: %w", err)
	}
	return nil
}

// Fetch returns lookups grouped by logical table, then ordinal. Supported
// filter key: "table_name" (string).
func (lt *lookupsTable) Fetch(filter map[string]any) ([]any, error) {
	lt.backend.mu.RLock()
	defer lt.backend.mu.RUnlock()
	if !lt.backend.attached {
		return nil, types.ErrStoreDetached
	}

	query := "SELECT lookup_id, name, table_name, ordinal FROM lookups"
	var conditions []string
	var args []any

	if filter != nil {
		if v, ok := filter["table_name"]; ok {
			tableName, ok := v.(string)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			conditions = append(conditions, "table_name = ?")
			args = append(args, tableName)
		}
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY table_name ASC, ordinal ASC"

	rows, err := lt.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching lookups: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		var l types.Lookup
		if err := rows.Scan(&l.LookupID, &l.Name, &l.TableName, &l.Ordinal); err != nil {
			return nil, fmt.Errorf("scanning lookup: %w", err)
		}
		results = append(results, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lookups: %w", err)
	}
	return results, nil
}

// persistJSONL writes every lookup row to lookups.jsonl atomically.
// The caller must hold the backend lock.
func (lt *lookupsTable) persistJSONL() error {
	rows, err := lt.backend.db.Query(
		"SELECT lookup_id, name, table_name, ordinal FROM lookups ORDER BY table_name ASC, ordinal ASC",
	)
	if err != nil {
		return fmt.Errorf("querying lookups for JSONL: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var rec lookupJSON
		if err := rows.Scan(&rec.LookupID, &rec.Name, &rec.TableName, &rec.Ordinal); err != nil {
			return fmt.Errorf("scanning lookup for JSONL: %w", err)
		}
		out, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshaling lookup for JSONL: %w", err)
		}
		records = append(records, out)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating lookups for JSONL: %w", err)
	}

	return writeJSONL(jsonlPath(lt.backend.config.DataDir, "lookups.jsonl"), records)
}
