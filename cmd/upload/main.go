package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/honeycarbs/niceboard/internal/config"
	"github.com/honeycarbs/niceboard/internal/domain"
	"github.com/honeycarbs/niceboard/internal/ingest"
	"github.com/honeycarbs/niceboard/internal/mcp"
	"github.com/honeycarbs/niceboard/internal/report"
	"github.com/honeycarbs/niceboard/pkg/logging"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the process exit code so deferred cleanup runs before exit
func run(args []string) int {
	flags := flag.NewFlagSet("upload", flag.ContinueOnError)
	file := flags.String("file", "", "JSON file with one job record or an array of records")
	batchSize := flags.Int("batch-size", 0, "records per chunk (default UPLOAD_BATCH_SIZE)")
	xlsx := flags.String("xlsx", "", "write a run report workbook to this path")
	sheet := flags.String("sheet", "", "append the run to this Google Sheets spreadsheet id")
	reset := flags.Bool("sheet-reset", false, "clear the report tabs before appending")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	if *file == "" {
		flags.Usage()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		log.Printf("failed to load config: %v", err)
		return 1
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	records, err := ingest.LoadFile(*file)
	if err != nil {
		logger.Error("failed to load records", "file", *file, "err", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := mcp.InitializeResources(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize services", "err", err)
		return 1
	}

	result := res.Uploader.UploadJobs(ctx, records, *batchSize)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		logger.Error("failed to print result", "err", err)
	}

	if *xlsx != "" {
		path, err := report.WriteExcel(result, *xlsx)
		if err != nil {
			logger.Error("failed to write workbook", "err", err)
		} else {
			logger.Info("run report written", "path", path)
		}
	}

	if *sheet != "" {
		if _, err := res.Exporter.Export(ctx, report.SheetTarget{SpreadsheetID: *sheet, Reset: *reset}, result); err != nil {
			logger.Error("failed to export run to sheets", "err", err)
		}
	}

	if result.Success == domain.BatchFailed {
		return 1
	}
	return 0
}
