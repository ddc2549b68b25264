// Package report renders batch upload results for people: an xlsx workbook
// or rows appended to a Google spreadsheet.
package report

import (
	"slices"
	"strconv"
	"strings"

	"github.com/honeycarbs/niceboard/internal/domain"
)

var (
	runHeader   = []any{"Run ID", "Timestamp", "Status", "Total", "Successful", "Failed", "Job IDs"}
	errorHeader = []any{"Run ID", "Job Index", "Job Title", "Field", "Message", "Needs Correction", "Timestamp"}
)

func runRow(res domain.BatchResult) []any {
	return []any{
		res.RunID,
		res.Timestamp,
		res.Success.String(),
		res.Total,
		res.Successful,
		res.Failed,
		joinIDs(res.JobIDs),
	}
}

func errorRows(res domain.BatchResult) [][]any {
	rows := make([][]any, 0, len(res.Errors))
	for _, e := range res.Errors {
		rows = append(rows, []any{
			res.RunID,
			e.JobIndex,
			e.JobTitle,
			e.FieldError,
			errorMessage(e.UploadResult),
			e.NeedsCorrection,
			e.Timestamp,
		})
	}
	return rows
}

// errorMessage prefers the correction payload's text for job type failures
func errorMessage(r domain.UploadResult) string {
	if r.ErrorDetails == nil {
		return r.Message
	}
	names := make([]string, 0, len(r.ErrorDetails.ValidJobTypes))
	for name := range r.ErrorDetails.ValidJobTypes {
		names = append(names, name)
	}
	slices.Sort(names)
	return r.ErrorDetails.Error + " (valid: " + strings.Join(names, ", ") + ")"
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
