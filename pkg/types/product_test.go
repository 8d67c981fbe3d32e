package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "valid object", raw: `{"styleCode":"ABC-1"}`},
		{name: "empty object", raw: `{}`},
		{name: "array rejected", raw: `[1,2]`, wantErr: ErrInvalidProduct},
		{name: "scalar rejected", raw: `"hello"`, wantErr: ErrInvalidProduct},
		{name: "invalid JSON rejected", raw: `{`, wantErr: ErrInvalidProduct},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProduct([]byte(tt.raw))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestProduct_StyleCode(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "camelCase key", raw: `{"styleCode":"ABC-1"}`, want: "ABC-1"},
		{name: "legacy spaced key", raw: `{"Style Code":"XYZ-9"}`, want: "XYZ-9"},
		{name: "camelCase wins over legacy", raw: `{"styleCode":"A","Style Code":"B"}`, want: "A"},
		{name: "missing", raw: `{"name":"n"}`, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := MustProduct(tt.raw)
			assert.Equal(t, tt.want, p.StyleCode())
		})
	}
}

func TestProduct_AttributeValue(t *testing.T) {
	attr := AttributeDefinition{ID: "brand", Key: "Brand", DataType: DataTypeSingleSelect}

	t.Run("nested attributes shape wins", func(t *testing.T) {
		p := MustProduct(`{"attributes":{"brand":"Wickers"},"Brand":"Legacy"}`)
		assert.Equal(t, "Wickers", p.AttributeValue(attr))
	})

	t.Run("falls back to legacy key", func(t *testing.T) {
		p := MustProduct(`{"Brand":"Legacy"}`)
		assert.Equal(t, "Legacy", p.AttributeValue(attr))
	})

	t.Run("missing on both shapes", func(t *testing.T) {
		p := MustProduct(`{"name":"n"}`)
		assert.Nil(t, p.AttributeValue(attr))
	})

	t.Run("array value decodes to slice", func(t *testing.T) {
		tags := AttributeDefinition{ID: "tags", Key: "Tags", DataType: DataTypeMultiSelect}
		p := MustProduct(`{"attributes":{"tags":["a","b"]}}`)
		assert.Equal(t, []any{"a", "b"}, p.AttributeValue(tags))
	})
}

func TestProduct_FieldAndKeys(t *testing.T) {
	p := MustProduct(`{"b":2,"a":"x","c":{"nested":true}}`)

	keys := p.Keys()
	assert.Equal(t, []string{"a", "b", "c"}, keys)

	v, ok := p.Field("a")
	require.True(t, ok)
	assert.Equal(t, `"x"`, v)

	v, ok = p.Field("c")
	require.True(t, ok)
	assert.JSONEq(t, `{"nested":true}`, v)

	_, ok = p.Field("missing")
	assert.False(t, ok)
}

func TestProduct_FieldCanonicalizes(t *testing.T) {
	// Source-text variations of the same value collapse to one form.
	a := MustProduct(`{"qty":1,"spec":{"a":1}}`)
	b := MustProduct(`{"qty":1.0,"spec":{"a": 1}}`)

	av, ok := a.Field("qty")
	require.True(t, ok)
	bv, ok := b.Field("qty")
	require.True(t, ok)
	assert.Equal(t, av, bv)
	assert.Equal(t, "1", av)

	av, _ = a.Field("spec")
	bv, _ = b.Field("spec")
	assert.Equal(t, av, bv)
	assert.Equal(t, `{"a":1}`, av)
}

func TestProduct_CloneIsIndependent(t *testing.T) {
	p := MustProduct(`{"styleCode":"ABC-1"}`)
	c := p.Clone()

	raw := c.Raw()
	raw[2] = 'X' // mutate the clone's buffer
	assert.Equal(t, "ABC-1", p.StyleCode())
}

func TestProduct_JSONRoundTrip(t *testing.T) {
	p := MustProduct(`{"styleCode":"ABC-1","name":"Sock"}`)

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var back Product
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, "ABC-1", back.StyleCode())
	assert.Equal(t, "Sock", back.Name())
}

func TestProduct_UnmarshalRejectsNonObject(t *testing.T) {
	var p Product
	err := json.Unmarshal([]byte(`[1]`), &p)
	assert.ErrorIs(t, err, ErrInvalidProduct)
}
