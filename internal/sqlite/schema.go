package sqlite

// Schema DDL for all tables. The schema is rebuilt on every attach from
// the JSONL files, so no migration story is needed here.
const (
	createProducts = `CREATE TABLE products (
    style_code TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    data TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createSnapshots = `CREATE TABLE snapshots (
    snapshot_id TEXT PRIMARY KEY,
    version TEXT NOT NULL,
    effective_date TEXT NOT NULL,
    published_date TEXT NOT NULL,
    status TEXT NOT NULL,
    published_by TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    product_count INTEGER NOT NULL,
    products TEXT NOT NULL
);`

	createLookups = `CREATE TABLE lookups (
    lookup_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    table_name TEXT NOT NULL,
    ordinal INTEGER NOT NULL
);`

	createPublishEvents = `CREATE TABLE publish_events (
    event_id TEXT PRIMARY KEY,
    snapshot_id TEXT NOT NULL,
    action TEXT NOT NULL,
    actor TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);`
)

// allSchemas lists the DDL statements executed on attach.
var allSchemas = []string{
	createProducts,
	createSnapshots,
	createLookups,
	createPublishEvents,
}
