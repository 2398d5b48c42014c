// Package export writes the optional side artifacts of a render run:
// the summary workbook and the provenance manifest.
package export

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/cashviz/internal/summary"
)

const (
	sheetSummary = "Group Summary"
	sheetDataset = "Dataset"
)

// WriteWorkbook writes the 10-cell aggregate in display order plus a
// small dataset sheet, overwriting path if it exists.
func WriteWorkbook(t *summary.Table, avgDelta float64, rows int, path string) error {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", sheetSummary)

	headers := []string{"Group", "Gender", "Mean Δ z-score", "Δ Display", "Percentile Gain", "N"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetSummary, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheetSummary, col, col, 18); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	row := 2
	for _, group := range t.GroupOrder {
		for _, gender := range summary.Genders {
			c, ok := t.Cell(group, gender)
			if !ok {
				continue
			}
			f.SetCellValue(sheetSummary, fmt.Sprintf("A%d", row), c.Group)
			f.SetCellValue(sheetSummary, fmt.Sprintf("B%d", row), c.Gender)
			if math.IsNaN(c.Delta) {
				f.SetCellValue(sheetSummary, fmt.Sprintf("C%d", row), "n/a")
			} else {
				f.SetCellValue(sheetSummary, fmt.Sprintf("C%d", row), c.Delta)
			}
			f.SetCellValue(sheetSummary, fmt.Sprintf("D%d", row), c.DeltaDisplay)
			f.SetCellValue(sheetSummary, fmt.Sprintf("E%d", row), c.PercentileGain)
			f.SetCellValue(sheetSummary, fmt.Sprintf("F%d", row), c.N)
			row++
		}
	}

	if _, err := f.NewSheet(sheetDataset); err != nil {
		return fmt.Errorf("dataset sheet: %w", err)
	}
	f.SetCellValue(sheetDataset, "A1", "Rows")
	f.SetCellValue(sheetDataset, "B1", rows)
	f.SetCellValue(sheetDataset, "A2", "Global mean Δ z-score")
	if math.IsNaN(avgDelta) {
		f.SetCellValue(sheetDataset, "B2", "n/a")
	} else {
		f.SetCellValue(sheetDataset, "B2", avgDelta)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
