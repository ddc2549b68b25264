package report

import (
	"context"
	"fmt"

	"github.com/honeycarbs/niceboard/internal/domain"
	"github.com/honeycarbs/niceboard/pkg/logging"
)

// ValueWriter is the part of the Sheets client the exporter needs
type ValueWriter interface {
	Append(ctx context.Context, spreadsheetID, a1Range string, rows [][]any) error
	Update(ctx context.Context, spreadsheetID, a1Range string, rows [][]any) error
	Clear(ctx context.Context, spreadsheetID, a1Range string) error
}

// SheetTarget selects where a run is recorded
type SheetTarget struct {
	SpreadsheetID string
	RunsTab       string
	ErrorsTab     string
	// Reset clears both tabs and rewrites the headers before appending
	Reset bool
}

// SheetsExporter records batch runs in a spreadsheet: one row per run and
// one row per failed record
type SheetsExporter struct {
	writer ValueWriter
	logger *logging.Logger
}

// NewSheetsExporter wraps a Sheets client
func NewSheetsExporter(writer ValueWriter, logger *logging.Logger) *SheetsExporter {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &SheetsExporter{writer: writer, logger: logger}
}

// Export appends res to the target tabs and returns the number of rows written
func (e *SheetsExporter) Export(ctx context.Context, target SheetTarget, res domain.BatchResult) (int, error) {
	if e.writer == nil {
		return 0, fmt.Errorf("report: sheets client not configured (GOOGLE_SHEETS_CREDENTIALS_PATH not set)")
	}
	if target.SpreadsheetID == "" {
		return 0, fmt.Errorf("report: spreadsheet id is required")
	}
	if target.RunsTab == "" {
		target.RunsTab = "Runs"
	}
	if target.ErrorsTab == "" {
		target.ErrorsTab = errorsSheet
	}

	if target.Reset {
		for _, t := range []struct {
			tab    string
			header []any
		}{{target.RunsTab, runHeader}, {target.ErrorsTab, errorHeader}} {
			if err := e.writer.Clear(ctx, target.SpreadsheetID, t.tab+"!A1:Z"); err != nil {
				return 0, err
			}
			if err := e.writer.Update(ctx, target.SpreadsheetID, t.tab+"!A1", [][]any{t.header}); err != nil {
				return 0, err
			}
		}
	}

	if err := e.writer.Append(ctx, target.SpreadsheetID, target.RunsTab+"!A1", [][]any{runRow(res)}); err != nil {
		return 0, err
	}
	written := 1

	rows := errorRows(res)
	if err := e.writer.Append(ctx, target.SpreadsheetID, target.ErrorsTab+"!A1", rows); err != nil {
		return written, err
	}
	written += len(rows)

	e.logger.Info("batch run exported to sheets",
		"spreadsheet_id", target.SpreadsheetID,
		"run_id", res.RunID,
		"rows", written,
	)
	return written, nil
}
