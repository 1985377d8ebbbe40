package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"invox/internal/domain"
)

const sheetName = "Invoices"

// WriteXLSX renders the same flat table as WriteCSV into a single-sheet
// workbook and returns the serialized bytes. Numeric cells are written as
// numbers so spreadsheet consumers can aggregate them directly.
func WriteXLSX(invoices []domain.InvoiceRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}

	for i, h := range Columns {
		cellName, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cellName, h); err != nil {
			return nil, err
		}
	}

	for r, row := range flatten(invoices) {
		for col, c := range row {
			if c.kind == blankCell {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return nil, err
			}
			var v any
			if c.kind == numCell {
				v = c.num
			} else {
				v = c.text
			}
			if err := f.SetCellValue(sheetName, cellName, v); err != nil {
				return nil, err
			}
		}
	}

	// Widen the description and vendor columns for readability.
	_ = f.SetColWidth(sheetName, "A", "A", 24)
	_ = f.SetColWidth(sheetName, "F", "F", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
