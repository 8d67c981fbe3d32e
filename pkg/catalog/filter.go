package catalog

import (
	"strings"

	"github.com/wickers-data/catalog/pkg/types"
)

// MatchesFilter reports whether a product value matches a filter value
// under the given data type. Empty product values never match, regardless
// of the filter value.
//
// multi-select: the value array contains the filter value; a scalar value
// falls back to direct equality. single-select: exact equality. text:
// case-insensitive substring.
func (e *Engine) MatchesFilter(productValue any, filterValue, dataType string) bool {
	if e.IsEmpty(productValue) {
		return false
	}

	switch dataType {
	case types.DataTypeMultiSelect:
		if arr, ok := productValue.([]any); ok {
			for _, el := range arr {
				if s, ok := el.(string); ok && s == filterValue {
					return true
				}
			}
			return false
		}
		s, ok := productValue.(string)
		return ok && s == filterValue

	case types.DataTypeSingleSelect:
		s, ok := productValue.(string)
		return ok && s == filterValue

	default:
		// Text: substring match, case-insensitive.
		return strings.Contains(
			strings.ToLower(stringify(productValue)),
			strings.ToLower(filterValue),
		)
	}
}

// MatchesSearch reports whether a product matches a free-text query. A
// blank query matches vacuously. Otherwise the lowercased query must be a
// substring of a core field (style code, name) or of any searchable
// attribute's value, scalar or array element.
func (e *Engine) MatchesSearch(p types.Product, query string) bool {
	if strings.TrimSpace(query) == "" {
		return true
	}
	q := strings.ToLower(query)

	for _, core := range []string{p.StyleCode(), p.Name()} {
		if core != "" && strings.Contains(strings.ToLower(core), q) {
			return true
		}
	}

	for _, attr := range e.Searchable() {
		value := p.AttributeValue(attr)
		if e.IsEmpty(value) {
			continue
		}
		if arr, ok := value.([]any); ok {
			for _, el := range arr {
				if strings.Contains(strings.ToLower(stringify(el)), q) {
					return true
				}
			}
			continue
		}
		if strings.Contains(strings.ToLower(stringify(value)), q) {
			return true
		}
	}

	return false
}

// ApplyFilters returns the products passing the search predicate and every
// active filter. Filters with empty values are inactive and skipped, as
// are filters referencing unknown attribute IDs.
func (e *Engine) ApplyFilters(products []types.Product, filters map[string]string, query string) []types.Product {
	out := make([]types.Product, 0, len(products))

	for _, p := range products {
		if query != "" && !e.MatchesSearch(p, query) {
			continue
		}

		keep := true
		for attrID, filterValue := range filters {
			if filterValue == "" {
				continue
			}
			attr, ok := e.byID[attrID]
			if !ok {
				continue
			}
			if !e.MatchesFilter(p.AttributeValue(attr), filterValue, attr.DataType) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, p)
		}
	}

	return out
}
