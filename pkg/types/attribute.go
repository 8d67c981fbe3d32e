package types

// Attribute data types. The data type decides filter match semantics:
// multi-select values are arrays matched by containment, single-select
// values are matched by equality, and text values by case-insensitive
// substring.
const (
	DataTypeSingleSelect = "single-select"
	DataTypeMultiSelect  = "multi-select"
	DataTypeText         = "text"
)

// AttributeDisplay carries optional rendering hints for an attribute.
type AttributeDisplay struct {
	Badge      bool   `json:"badge,omitempty"`
	BadgeColor string `json:"badgeColor,omitempty"`
	Separator  string `json:"separator,omitempty"`
}

// AttributeDefinition describes a product field's display and query
// capabilities. ID is the stable key used in the nested attributes map of
// new-structure products; Key is the legacy flat field name.
type AttributeDefinition struct {
	ID           string            `json:"id"`
	Key          string            `json:"key"`
	Label        string            `json:"label"`
	DataType     string            `json:"dataType"`
	Filterable   bool              `json:"filterable"`
	Searchable   bool              `json:"searchable"`
	Sortable     bool              `json:"sortable"`
	ShowInList   bool              `json:"showInList"`
	ShowInDetail bool              `json:"showInDetail"`
	DetailTab    string            `json:"detailTab,omitempty"`
	Order        int               `json:"order"`
	Display      *AttributeDisplay `json:"display,omitempty"`
}

// AttributeSet is the attribute-definition document: a versioned list of
// definitions plus the sentinel values treated as empty everywhere
// (filtering, search, formatting). Loaded once at startup and immutable
// thereafter.
type AttributeSet struct {
	Version     string                `json:"version"`
	LastUpdated string                `json:"lastUpdated"`
	EmptyValues []string              `json:"emptyValues"`
	Attributes  []AttributeDefinition `json:"attributes"`
}
