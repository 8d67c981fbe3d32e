package types

// Lookup is a reference-data row backing dropdowns and validation lists.
// TableName groups lookups by the logical list they belong to (brands,
// categories, program types).
type Lookup struct {
	LookupID  string `json:"lookup_id"`
	Name      string `json:"name"`
	TableName string `json:"table_name"`
	Ordinal   int    `json:"ordinal"`
}
