package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// RenderXLSX writes the report as a workbook with a summary sheet followed
// by one sheet per section. List rows put one item per line in the cell.
func RenderXLSX(r Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	wrapStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create wrap style: %w", err)
	}

	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	summaryRows := [][]any{
		{r.Title},
		{"Generated on", r.GeneratedAt.Format("January 2, 2006")},
		{r.Summary},
	}
	for i, row := range summaryRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summary, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write summary: %w", err)
		}
	}
	if err := f.SetCellStyle(summary, "A1", "A1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to set title style: %w", err)
	}

	for _, s := range r.Sections {
		sheet := sheetName(s.Title)
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
		if err := f.SetSheetRow(sheet, "A1", &[]any{"Field", "Value"}); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
		if err := f.SetCellStyle(sheet, "A1", "B1", headerStyle); err != nil {
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
		_ = f.SetColWidth(sheet, "A", "A", 24)
		_ = f.SetColWidth(sheet, "B", "B", 80)

		for i, row := range s.Rows {
			value := row.Value
			if row.Items != nil {
				value = strings.Join(row.Items, "\n")
			}
			cell, _ := excelize.CoordinatesToCellName(1, i+2)
			if err := f.SetSheetRow(sheet, cell, &[]any{row.Label, value}); err != nil {
				return nil, fmt.Errorf("failed to write row %s: %w", row.Label, err)
			}
			valueCell, _ := excelize.CoordinatesToCellName(2, i+2)
			if err := f.SetCellStyle(sheet, valueCell, valueCell, wrapStyle); err != nil {
				return nil, fmt.Errorf("failed to set cell style: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetName trims titles to the 31 characters Excel allows.
func sheetName(title string) string {
	if len(title) > 31 {
		return title[:31]
	}
	return title
}
