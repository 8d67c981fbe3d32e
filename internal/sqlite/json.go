// JSON record structures for SQLite backend persistence.
// These structures define the JSONL record format for the data files.
package sqlite

import "encoding/json"

// productJSON represents a product in products.jsonl. Data carries the
// raw product record; style_code and name are denormalized for querying.
type productJSON struct {
	StyleCode string          `json:"style_code"`
	Name      string          `json:"name"`
	Data      json.RawMessage `json:"data"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

// snapshotJSON represents a snapshot in snapshots.jsonl. Products is the
// embedded deep copy taken at publish time.
type snapshotJSON struct {
	SnapshotID    string            `json:"snapshot_id"`
	Version       string            `json:"version"`
	EffectiveDate string            `json:"effective_date"`
	PublishedDate string            `json:"published_date"`
	Status        string            `json:"status"`
	PublishedBy   string            `json:"published_by"`
	Notes         string            `json:"notes"`
	ProductCount  int               `json:"product_count"`
	Products      []json.RawMessage `json:"products"`
}

// lookupJSON represents a lookup row in lookups.jsonl.
type lookupJSON struct {
	LookupID  string `json:"lookup_id"`
	Name      string `json:"name"`
	TableName string `json:"table_name"`
	Ordinal   int    `json:"ordinal"`
}

// publishEventJSON represents an audit record in publish_events.jsonl.
type publishEventJSON struct {
	EventID    string `json:"event_id"`
	SnapshotID string `json:"snapshot_id"`
	Action     string `json:"action"`
	Actor      string `json:"actor"`
	CreatedAt  string `json:"created_at"`
}
