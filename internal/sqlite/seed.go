// This file implements default lookup seeding on backend attach.
package sqlite

import (
	"fmt"
)

// defaultLookup describes a lookup row to seed on first startup.
type defaultLookup struct {
	name      string
	tableName string
	ordinal   int
}

// defaultLookups defines the reference rows seeded when the lookups table
// is empty. Grouped by logical table: brands, categories, program types.
var defaultLookups = []defaultLookup{
	{"Wickers", "brands", 0},
	{"Northway", "brands", 1},
	{"Fieldline", "brands", 2},

	{"Apparel", "categories", 0},
	{"Footwear", "categories", 1},
	{"Accessories", "categories", 2},
	{"Equipment", "categories", 3},

	{"Core", "program_types", 0},
	{"Seasonal", "program_types", 1},
	{"Collaboration", "program_types", 2},
	{"Clearance", "program_types", 3},
}

// seedLookups inserts the default lookup rows if the lookups table is
// empty (first run). Seeding is idempotent: it only runs when
// lookups.jsonl was empty on startup. The caller must hold the backend
// lock; the backend need not be attached yet.
func (b *Backend) seedLookups() error {
	var count int
	if err := b.db.QueryRow("SELECT COUNT(*) FROM lookups").Scan(&count); err != nil {
		return fmt.Errorf("counting lookups: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, dl := range defaultLookups {
		_, err = tx.Exec(
			"INSERT INTO lookups (lookup_id, name, table_name, ordinal) VALUES (?, ?, ?, ?)",
			newUUID(), dl.name, dl.tableName, dl.ordinal,
		)
		if err != nil {
			return fmt.Errorf("seeding lookup %s/%s: %w", dl.tableName, dl.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}

	lt := &lookupsTable{backend: b}
	if err := lt.persistJSONL(); err != nil {
		return fmt.Errorf("persisting seeded lookups: %w", err)
	}
	return nil
}
