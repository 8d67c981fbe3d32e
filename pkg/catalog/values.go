package catalog

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/wickers-data/catalog/pkg/types"
)

// defaultSeparator joins array values for display when the attribute
// carries no separator hint.
const defaultSeparator = " : "

// IsEmpty reports whether a product value counts as empty: nil, a blank or
// sentinel string, or an array whose elements are all sentinels. Every
// filtering, search, and formatting decision goes through this predicate.
func (e *Engine) IsEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		if strings.TrimSpace(v) == "" {
			return true
		}
		return e.sentinels[v]
	case []any:
		if len(v) == 0 {
			return true
		}
		for _, el := range v {
			s, ok := el.(string)
			if !ok || !e.sentinels[s] {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// FormatValue renders a product value for display. Empty values render as
// "". Arrays drop sentinel elements and join the rest with the attribute's
// display separator.
func (e *Engine) FormatValue(value any, attr types.AttributeDefinition) string {
	if e.IsEmpty(value) {
		return ""
	}
	if arr, ok := value.([]any); ok {
		sep := defaultSeparator
		if attr.Display != nil && attr.Display.Separator != "" {
			sep = attr.Display.Separator
		}
		var parts []string
		for _, el := range arr {
			if s, ok := el.(string); ok && e.sentinels[s] {
				continue
			}
			parts = append(parts, stringify(el))
		}
		return strings.Join(parts, sep)
	}
	return stringify(value)
}

// stringify renders a scalar product value as a string. Composite values
// fall back to their JSON form.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(data)
	}
}
