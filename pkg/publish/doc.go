// Package publish implements the catalog snapshot lifecycle: creating
// immutable, versioned snapshots of the product working set, deriving
// scheduled/active/archived statuses from effective dates, diffing the
// working set against a published snapshot, and exporting snapshot
// contents. Status computation is pure; persistence goes through the
// injected types.Store.
package publish
