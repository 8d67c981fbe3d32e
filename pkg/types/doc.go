// Package types defines the catalog entity types (products, attribute
// definitions, snapshots, lookups), the Store and Table storage interfaces,
// and the standard errors shared across the catalog service.
package types
