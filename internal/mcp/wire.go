//go:build wireinject
// +build wireinject

package mcp

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/niceboard/internal/config"
	"github.com/honeycarbs/niceboard/internal/domain/search"
	"github.com/honeycarbs/niceboard/pkg/logging"
	"github.com/honeycarbs/niceboard/pkg/niceboard"
	"github.com/honeycarbs/niceboard/pkg/nominatim"
)

// InitializeResources creates Resources with all services wired up
func InitializeResources(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Resources, error) {
	wire.Build(
		// Infrastructure - Niceboard
		provideNiceboardConfig,
		niceboard.NewClient,

		// Infrastructure - geocoding and logos
		provideNominatimConfig,
		nominatim.NewClient,
		provideLocationService,
		provideLogoService,

		// Services
		provideUploadService,
		search.NewServiceWithDeps,

		// Reporting
		provideSheetsExporter,

		wire.Struct(new(Resources), "*"),
	)

	return &Resources{}, nil
}
