package publish

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/wickers-data/catalog/pkg/catalog"
	"github.com/wickers-data/catalog/pkg/types"
)

func exportSnapshot() *types.Snapshot {
	return &types.Snapshot{
		ID:           "snapshot_test",
		Version:      "1.0.0",
		ProductCount: 2,
		Products: []types.Product{
			types.MustProduct(`{"styleCode":"A","name":"Alpha","attributes":{"brand":"Wickers","category":"Footwear"}}`),
			types.MustProduct(`{"styleCode":"B","name":"Beta","attributes":{"brand":"Northway","category":"-"}}`),
		},
	}
}

func TestExportADL(t *testing.T) {
	data, err := ExportADL(exportSnapshot())
	require.NoError(t, err)

	// The feed is the raw product records, unmodified.
	var products []map[string]any
	require.NoError(t, json.Unmarshal(data, &products))
	require.Len(t, products, 2)
	assert.Equal(t, "A", products[0]["styleCode"])
	assert.Equal(t, "Alpha", products[0]["name"])

	t.Run("empty snapshot exports empty array", func(t *testing.T) {
		data, err := ExportADL(&types.Snapshot{Products: []types.Product{}})
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})
}

func TestExportXLSX(t *testing.T) {
	set := &types.AttributeSet{
		Version:     "1.0",
		EmptyValues: []string{"", "-"},
		Attributes: []types.AttributeDefinition{
			{ID: "brand", Key: "Brand", Label: "Brand", DataType: types.DataTypeSingleSelect, ShowInList: true, Order: 1},
			{ID: "category", Key: "Category", Label: "Category", DataType: types.DataTypeSingleSelect, ShowInList: true, Order: 2},
		},
	}
	engine := catalog.NewEngine(set)

	data, err := ExportXLSX(exportSnapshot(), engine)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Products")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Style Code", "Name", "Brand", "Category"}, rows[0])
	assert.Equal(t, []string{"A", "Alpha", "Wickers", "Footwear"}, rows[1])
	// Sentinel category renders blank; trailing empty cells may be trimmed.
	assert.GreaterOrEqual(t, len(rows[2]), 3)
	assert.Equal(t, "B", rows[2][0])
	assert.Equal(t, "Northway", rows[2][2])
}
