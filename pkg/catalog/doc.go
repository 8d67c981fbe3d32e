// Package catalog implements the attribute metadata catalog and the
// product filter/search engine. An Engine binds an attribute-definition
// document and decides, per product, filter and search membership using
// the match semantics of each attribute's data type. All operations are
// pure over in-memory collections; lookup misses degrade to empty results
// rather than errors.
package catalog
