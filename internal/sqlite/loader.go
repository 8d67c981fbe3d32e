// JSONL loading for startup.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// jsonlTableMapping maps JSONL filenames to their SQLite tables and column
// lists.
var jsonlTableMapping = []struct {
	file    string
	table   string
	columns []string
}{
	{"products.jsonl", "products", []string{"style_code", "name", "data", "created_at", "updated_at"}},
	{"snapshots.jsonl", "snapshots", []string{"snapshot_id", "version", "effective_date", "published_date", "status", "published_by", "notes", "product_count", "products"}},
	{"lookups.jsonl", "lookups", []string{"lookup_id", "name", "table_name", "ordinal"}},
	{"publish_events.jsonl", "publish_events", []string{"event_id", "snapshot_id", "action", "actor", "created_at"}},
}

// loadAllJSONL reads each JSONL file from dataDir and inserts records into
// the corresponding SQLite tables. Loading is transactional: all files
// load or the database stays empty. Malformed lines were already skipped
// by readJSONL; unknown fields in records are silently ignored, so newer
// generations of the files still load.
func loadAllJSONL(db *sql.DB, dataDir string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	for _, mapping := range jsonlTableMapping {
		path := filepath.Join(dataDir, mapping.file)
		records, err := readJSONL(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", mapping.file, err)
		}
		if len(records) == 0 {
			continue
		}
		if err := insertRecords(tx, mapping.table, mapping.columns, records); err != nil {
			return fmt.Errorf("loading %s into %s: %w", mapping.file, mapping.table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

// insertRecords inserts parsed JSONL records into a SQLite table. Only the
// listed columns are extracted; composite values (the embedded product
// data, snapshot product arrays) are stored in their serialized form.
func insertRecords(tx *sql.Tx, table string, columns []string, records []json.RawMessage) error {
	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	insertSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	for _, rec := range records {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(rec, &fields); err != nil {
			continue // skip records that are not objects
		}
		args := make([]any, len(columns))
		for i, col := range columns {
			raw, ok := fields[col]
			if !ok {
				args[i] = nil
				continue
			}
			args[i] = rawToArg(raw)
		}
		if _, err := tx.Exec(insertSQL, args...); err != nil {
			return fmt.Errorf("inserting into %s: %w", table, err)
		}
	}
	return nil
}

// rawToArg converts a raw JSON field into a driver argument: scalars
// become their Go value, objects and arrays stay serialized.
func rawToArg(raw json.RawMessage) any {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	switch v.(type) {
	case nil, bool, float64, string:
		return v
	default:
		return string(raw)
	}
}
