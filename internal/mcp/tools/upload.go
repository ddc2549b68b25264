package tools

import (
	"context"
	"fmt"
	"sync"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/niceboard/internal/domain"
	"github.com/honeycarbs/niceboard/internal/report"
	"github.com/honeycarbs/niceboard/pkg/logging"
)

// Uploader creates or updates job postings on the board
type Uploader interface {
	UploadJob(ctx context.Context, rec *domain.JobRecord) domain.UploadResult
	UploadJobs(ctx context.Context, records []domain.JobRecord, batchSize int) domain.BatchResult
}

// RunExporter records a finished batch somewhere outside the board
type RunExporter interface {
	Export(ctx context.Context, target report.SheetTarget, res domain.BatchResult) (int, error)
}

// UploadJobParams defines the arguments for the upload_job tool
type UploadJobParams struct {
	Job domain.JobRecord `json:"job" jsonschema:"Job record to create or update"`
}

// SheetParams selects the spreadsheet a batch run is recorded in
type SheetParams struct {
	SpreadsheetID string `json:"spreadsheet_id" jsonschema:"Google Sheets spreadsheet id"`
	RunsTab       string `json:"runs_tab,omitempty" jsonschema:"Tab for the run summary row, default Runs"`
	ErrorsTab     string `json:"errors_tab,omitempty" jsonschema:"Tab for failed record rows, default Errors"`
	Reset         bool   `json:"reset,omitempty" jsonschema:"Clear both tabs and rewrite headers first"`
}

// UploadJobsParams defines the arguments for the upload_jobs tool
type UploadJobsParams struct {
	Jobs      []domain.JobRecord `json:"jobs" jsonschema:"Job records to upload"`
	BatchSize int                `json:"batch_size,omitempty" jsonschema:"Records per chunk, defaults to the configured size"`
	Sheet     *SheetParams       `json:"sheet,omitempty" jsonschema:"Also record the run in a spreadsheet"`
}

// UploadJobsResult is the batch outcome plus the optional sheet export status
type UploadJobsResult struct {
	domain.BatchResult
	SheetRows  int    `json:"sheet_rows,omitempty"`
	SheetError string `json:"sheet_error,omitempty"`
}

// uploadTool serializes calls: the upload service caches board state per instance
type uploadTool struct {
	mu       sync.Mutex
	uploader Uploader
	exporter RunExporter
	logger   *logging.Logger
}

// WithUpload registers the upload_job and upload_jobs tools. exporter may be
// nil, in which case sheet exports are reported as unavailable.
func WithUpload(uploader Uploader, exporter RunExporter) Option {
	return func(reg *registry) {
		t := &uploadTool{
			uploader: uploader,
			exporter: exporter,
			logger:   reg.logger.Named("upload_tool"),
		}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "upload_job",
			Description: "Create or update a single job posting on the Niceboard job board",
		}, t.uploadOne)
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "upload_jobs",
			Description: "Upload a list of job postings in chunks and report per-record failures",
		}, t.uploadMany)
	}
}

func (t *uploadTool) uploadOne(ctx context.Context, _ *sdkmcp.CallToolRequest, params UploadJobParams) (*sdkmcp.CallToolResult, any, error) {
	t.mu.Lock()
	res := t.uploader.UploadJob(ctx, &params.Job)
	t.mu.Unlock()

	t.logger.Debug("upload_job finished", "title", params.Job.Title, "success", res.Success)

	out, err := jsonResult(res)
	if err != nil {
		return nil, nil, err
	}
	out.IsError = !res.Success
	return out, res, nil
}

func (t *uploadTool) uploadMany(ctx context.Context, _ *sdkmcp.CallToolRequest, params UploadJobsParams) (*sdkmcp.CallToolResult, any, error) {
	if len(params.Jobs) == 0 {
		return errorResult("no jobs provided"), nil, nil
	}
	if params.BatchSize < 0 {
		return errorResult(fmt.Sprintf("batch_size must be positive, got %d", params.BatchSize)), nil, nil
	}

	t.mu.Lock()
	batch := t.uploader.UploadJobs(ctx, params.Jobs, params.BatchSize)
	t.mu.Unlock()

	result := UploadJobsResult{BatchResult: batch}
	if params.Sheet != nil {
		result.SheetRows, result.SheetError = t.export(ctx, *params.Sheet, batch)
	}

	t.logger.Info("upload_jobs finished",
		"run_id", batch.RunID,
		"total", batch.Total,
		"failed", batch.Failed,
	)

	out, err := jsonResult(result)
	if err != nil {
		return nil, nil, err
	}
	return out, result, nil
}

func (t *uploadTool) export(ctx context.Context, sheet SheetParams, batch domain.BatchResult) (int, string) {
	if t.exporter == nil {
		return 0, "sheets export is not configured"
	}
	n, err := t.exporter.Export(ctx, report.SheetTarget{
		SpreadsheetID: sheet.SpreadsheetID,
		RunsTab:       sheet.RunsTab,
		ErrorsTab:     sheet.ErrorsTab,
		Reset:         sheet.Reset,
	}, batch)
	if err != nil {
		t.logger.Warn("sheets export failed", "run_id", batch.RunID, "err", err)
		return n, err.Error()
	}
	return n, ""
}
