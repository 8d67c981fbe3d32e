package types

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// Product field names. The catalog carries two product generations: the
// legacy flat shape ("Style Code", "Category", ...) and the new shape
// (styleCode plus a nested attributes map keyed by attribute ID). Product
// keeps the raw JSON and resolves fields dynamically so both shapes flow
// through the same code paths.
const (
	fieldStyleCode       = "styleCode"
	fieldLegacyStyleCode = "Style Code"
	fieldName            = "name"
	fieldLegacyName      = "Name"
	fieldAttributes      = "attributes"
)

// ErrInvalidProduct is returned when raw bytes are not a JSON object.
var ErrInvalidProduct = errors.New("product must be a JSON object")

// Product is a loosely-shaped catalog record backed by its raw JSON form.
// The style code is the stable natural identifier, used as the join and
// diff key across collections.
type Product struct {
	raw json.RawMessage
}

// NewProduct wraps raw JSON bytes as a Product.
// Returns ErrInvalidProduct if the bytes are not a JSON object.
func NewProduct(raw []byte) (Product, error) {
	if !gjson.ValidBytes(raw) || !gjson.ParseBytes(raw).IsObject() {
		return Product{}, ErrInvalidProduct
	}
	cp := make([]byte, len(raw))
	copy(cp, raw)
	return Product{raw: cp}, nil
}

// MustProduct wraps raw JSON bytes as a Product and panics on malformed
// input. Intended for tests and fixtures.
func MustProduct(raw string) Product {
	p, err := NewProduct([]byte(raw))
	if err != nil {
		panic(err)
	}
	return p
}

// Raw returns the product's raw JSON bytes. Callers must not modify the
// returned slice.
func (p Product) Raw() []byte {
	return p.raw
}

// Clone returns a deep copy of the product. Products are raw-byte backed,
// so a byte copy is a full structural clone.
func (p Product) Clone() Product {
	cp := make([]byte, len(p.raw))
	copy(cp, p.raw)
	return Product{raw: cp}
}

// MarshalJSON emits the product's raw JSON unmodified.
func (p Product) MarshalJSON() ([]byte, error) {
	if p.raw == nil {
		return []byte("null"), nil
	}
	return p.raw, nil
}

// UnmarshalJSON stores the raw JSON form.
func (p *Product) UnmarshalJSON(data []byte) error {
	np, err := NewProduct(data)
	if err != nil {
		return err
	}
	*p = np
	return nil
}

// StyleCode returns the product's style code, preferring the new field
// name over the legacy one. A product missing both degrades to "".
func (p Product) StyleCode() string {
	if r := gjson.GetBytes(p.raw, fieldStyleCode); r.Exists() && r.String() != "" {
		return r.String()
	}
	return gjson.GetBytes(p.raw, escapePath(fieldLegacyStyleCode)).String()
}

// Name returns the product's display name from either shape, or "".
func (p Product) Name() string {
	if r := gjson.GetBytes(p.raw, fieldName); r.Exists() && r.String() != "" {
		return r.String()
	}
	return gjson.GetBytes(p.raw, escapePath(fieldLegacyName)).String()
}

// AttributeValue resolves the product's value for the given attribute,
// checking the nested attributes map by attribute ID first and the legacy
// flat field by key second. Returns nil when neither is present.
func (p Product) AttributeValue(attr AttributeDefinition) any {
	if r := gjson.GetBytes(p.raw, fieldAttributes+"."+escapePath(attr.ID)); r.Exists() {
		return decodeResult(r)
	}
	if attr.Key != "" {
		if r := gjson.GetBytes(p.raw, escapePath(attr.Key)); r.Exists() {
			return decodeResult(r)
		}
	}
	return nil
}

// Field returns the canonical serialized form of a top-level field and
// whether the field exists. The value is parsed and re-marshaled so that
// source-text variations (number formatting, whitespace) collapse to one
// form; two fields are equal iff their canonical serializations match,
// which is what the diff engine compares.
func (p Product) Field(key string) (string, bool) {
	r := gjson.GetBytes(p.raw, escapePath(key))
	if !r.Exists() {
		return "", false
	}
	var v any
	if err := json.Unmarshal([]byte(r.Raw), &v); err != nil {
		return r.Raw, true
	}
	out, err := json.Marshal(v)
	if err != nil {
		return r.Raw, true
	}
	return string(out), true
}

// Keys returns the product's top-level field names, sorted.
func (p Product) Keys() []string {
	var keys []string
	gjson.ParseBytes(p.raw).ForEach(func(key, _ gjson.Result) bool {
		keys = append(keys, key.String())
		return true
	})
	sort.Strings(keys)
	return keys
}

// decodeResult converts a gjson result into a plain Go value: nil, bool,
// float64, string, []any, or map[string]any.
func decodeResult(r gjson.Result) any {
	switch {
	case r.Type == gjson.Null:
		return nil
	case r.IsArray():
		arr := r.Array()
		out := make([]any, 0, len(arr))
		for _, el := range arr {
			out = append(out, decodeResult(el))
		}
		return out
	case r.IsObject():
		out := make(map[string]any)
		r.ForEach(func(key, value gjson.Result) bool {
			out[key.String()] = decodeResult(value)
			return true
		})
		return out
	default:
		return r.Value()
	}
}

// escapePath escapes gjson path metacharacters in a literal field name.
// Legacy field names contain spaces and punctuation ("Style Code",
// "Tags/Attributes"); dots and wildcards must not act as path syntax.
func escapePath(key string) string {
	var b strings.Builder
	for _, c := range key {
		switch c {
		case '.', '*', '?', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}
