package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/honeycarbs/niceboard/internal/domain"
)

const (
	summarySheet = "Summary"
	errorsSheet  = "Errors"
)

// WriteExcel saves res as a workbook with a Summary and an Errors sheet.
// A missing .xlsx extension is appended; the final path is returned.
func WriteExcel(res domain.BatchResult, path string) (string, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}
	path = filepath.Clean(path)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return "", fmt.Errorf("report: rename sheet: %w", err)
	}
	if _, err := f.NewSheet(errorsSheet); err != nil {
		return "", fmt.Errorf("report: add sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return "", fmt.Errorf("report: header style: %w", err)
	}

	if err := writeTable(f, summarySheet, header, runHeader, [][]any{runRow(res)}); err != nil {
		return "", err
	}
	if err := writeTable(f, errorsSheet, header, errorHeader, errorRows(res)); err != nil {
		return "", err
	}

	if err := f.SetColWidth(errorsSheet, "C", "C", 30); err != nil {
		return "", fmt.Errorf("report: column width: %w", err)
	}
	if err := f.SetColWidth(errorsSheet, "E", "E", 80); err != nil {
		return "", fmt.Errorf("report: column width: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("report: save %s: %w", path, err)
	}
	return path, nil
}

func writeTable(f *excelize.File, sheet string, headerStyle int, header []any, rows [][]any) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("report: %s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("report: %s header style: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("report: %s row %d: %w", sheet, i+2, err)
		}
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
