package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"

	"github.com/wickers-data/catalog/pkg/types"
)

//go:embed attributes_schema.json
var attributesSchemaJSON []byte

//go:embed attribute_definitions.json
var defaultDefinitionsJSON []byte

// Definition document errors.
var (
	ErrInvalidDefinitions = errors.New("invalid attribute definitions document")
	ErrDuplicateAttribute = errors.New("duplicate attribute ID")
)

// Parse validates raw JSON against the attribute-definition schema and
// decodes it into an AttributeSet. Duplicate attribute IDs are rejected;
// uniqueness is what makes ID a stable lookup key.
func Parse(data []byte) (*types.AttributeSet, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinitions, err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(attributesSchemaJSON)
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}
	if !result.Valid() {
		var msg string
		for i, desc := range result.Errors() {
			if i > 0 {
				msg += "; "
			}
			msg += fmt.Sprintf("%s: %s", desc.Field(), desc.Description())
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidDefinitions, msg)
	}

	var set types.AttributeSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinitions, err)
	}

	seen := make(map[string]bool, len(set.Attributes))
	for _, attr := range set.Attributes {
		if seen[attr.ID] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateAttribute, attr.ID)
		}
		seen[attr.ID] = true
	}

	return &set, nil
}

// LoadFile parses an attribute-definition document from disk.
func LoadFile(path string) (*types.AttributeSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading definitions %s: %w", path, err)
	}
	return Parse(data)
}

// LoadDefault parses the embedded attribute-definition document.
func LoadDefault() (*types.AttributeSet, error) {
	return Parse(defaultDefinitionsJSON)
}
