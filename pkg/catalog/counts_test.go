package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wickers-data/catalog/pkg/types"
)

func TestEngine_UniqueValues(t *testing.T) {
	e := newTestEngine()
	products := []types.Product{
		types.MustProduct(`{"attributes":{"brand":"Wickers","tags":["wool","merino"]}}`),
		types.MustProduct(`{"attributes":{"brand":"Northway","tags":["wool","-"]}}`),
		types.MustProduct(`{"attributes":{"brand":"N/A"}}`),
	}

	t.Run("scalar attribute", func(t *testing.T) {
		got := e.UniqueValues(products, "brand")
		assert.Equal(t, []string{"Northway", "Wickers"}, got)
	})

	t.Run("array elements contribute individually", func(t *testing.T) {
		got := e.UniqueValues(products, "tags")
		assert.Equal(t, []string{"merino", "wool"}, got)
	})

	t.Run("unknown attribute", func(t *testing.T) {
		assert.Nil(t, e.UniqueValues(products, "bogus"))
	})
}

func TestEngine_ValueCounts(t *testing.T) {
	e := newTestEngine()

	t.Run("occurrence-based percentages", func(t *testing.T) {
		products := []types.Product{
			types.MustProduct(`{"attributes":{"tags":["wool","merino"]}}`),
			types.MustProduct(`{"attributes":{"tags":["wool"]}}`),
			types.MustProduct(`{"attributes":{"tags":["cotton"]}}`),
		}

		got := e.ValueCounts(products, "tags")
		// 4 occurrences total: wool=2, cotton=1, merino=1.
		assert.Equal(t, []ValueCount{
			{Value: "wool", Count: 2, Percentage: 50},
			{Value: "cotton", Count: 1, Percentage: 25},
			{Value: "merino", Count: 1, Percentage: 25},
		}, got)
	})

	t.Run("empty values excluded", func(t *testing.T) {
		products := []types.Product{
			types.MustProduct(`{"attributes":{"brand":"Wickers"}}`),
			types.MustProduct(`{"attributes":{"brand":"N/A"}}`),
			types.MustProduct(`{}`),
		}

		got := e.ValueCounts(products, "brand")
		assert.Equal(t, []ValueCount{
			{Value: "Wickers", Count: 1, Percentage: 100},
		}, got)
	})

	t.Run("ties break by value ascending", func(t *testing.T) {
		products := []types.Product{
			types.MustProduct(`{"attributes":{"brand":"Beta"}}`),
			types.MustProduct(`{"attributes":{"brand":"Alpha"}}`),
		}

		got := e.ValueCounts(products, "brand")
		assert.Equal(t, "Alpha", got[0].Value)
		assert.Equal(t, "Beta", got[1].Value)
	})

	t.Run("no products", func(t *testing.T) {
		assert.Empty(t, e.ValueCounts(nil, "brand"))
	})
}
