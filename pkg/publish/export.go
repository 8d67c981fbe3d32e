package publish

import (
	"encoding/json"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/wickers-data/catalog/pkg/catalog"
	"github.com/wickers-data/catalog/pkg/types"
)

// ExportADL serializes a snapshot's products as an indented JSON array,
// unmodified. The ADL ingestion side consumes the raw product records;
// this is a passthrough, not a distinct format.
func ExportADL(s *types.Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(s.Products, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling snapshot products: %w", err)
	}
	return data, nil
}

// ExportXLSX renders a snapshot as a spreadsheet: style code and name
// first, then one column per list attribute, values formatted with the
// attribute's display rules.
func ExportXLSX(s *types.Snapshot, engine *catalog.Engine) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Products"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}

	attrs := engine.ListAttributes()

	header := []any{"Style Code", "Name"}
	for _, attr := range attrs {
		header = append(header, attr.Label)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	for i, p := range s.Products {
		row := []any{p.StyleCode(), p.Name()}
		for _, attr := range attrs {
			row = append(row, engine.FormatValue(p.AttributeValue(attr), attr))
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("row coordinates: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
