package mcp

import (
	"context"
	"fmt"

	"github.com/honeycarbs/niceboard/internal/config"
	"github.com/honeycarbs/niceboard/internal/domain/upload"
	"github.com/honeycarbs/niceboard/internal/normalize"
	"github.com/honeycarbs/niceboard/internal/report"
	"github.com/honeycarbs/niceboard/pkg/logging"
	"github.com/honeycarbs/niceboard/pkg/niceboard"
	"github.com/honeycarbs/niceboard/pkg/nominatim"
	"github.com/honeycarbs/niceboard/pkg/sheets"
)

// provideNiceboardConfig extracts the board API settings from main config
func provideNiceboardConfig(cfg config.Config) niceboard.Config {
	return niceboard.Config{
		APIKey:  cfg.Niceboard.APIKey,
		BaseURL: cfg.Niceboard.BaseURL,
	}
}

// provideNominatimConfig extracts geocoder settings from main config
func provideNominatimConfig(cfg config.Config) nominatim.Config {
	return nominatim.Config{BaseURL: cfg.Nominatim.BaseURL}
}

func provideLocationService(cfg config.Config, geocoder *nominatim.Client, logger *logging.Logger) *normalize.LocationService {
	return normalize.NewLocationService(geocoder, logger.Named("location"),
		normalize.WithMaxAttempts(cfg.Upload.GeocodeMaxAttempts))
}

func provideLogoService(cfg config.Config, logger *logging.Logger) *normalize.LogoService {
	return normalize.NewLogoService(normalize.LogoConfig{ClearbitBaseURL: cfg.Clearbit.BaseURL}, logger.Named("logo"))
}

func provideUploadService(
	cfg config.Config,
	client *niceboard.Client,
	locations *normalize.LocationService,
	logos *normalize.LogoService,
	logger *logging.Logger,
) (*upload.Service, error) {
	return upload.NewServiceWithDeps(client, locations, logos, logger, cfg.Upload.BatchSize)
}

// provideSheetsExporter builds the run exporter. Without credentials the
// exporter is still returned and reports itself unconfigured on use.
func provideSheetsExporter(ctx context.Context, cfg config.Config, logger *logging.Logger) (*report.SheetsExporter, error) {
	log := logger.Named("sheets")
	if cfg.Sheets.CredentialsPath == "" {
		return report.NewSheetsExporter(nil, log), nil
	}
	client, err := sheets.NewClient(ctx, sheets.Config{CredentialsPath: cfg.Sheets.CredentialsPath})
	if err != nil {
		return nil, fmt.Errorf("mcp: sheets client: %w", err)
	}
	return report.NewSheetsExporter(client, log), nil
}
