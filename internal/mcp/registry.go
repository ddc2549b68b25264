package mcp

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/niceboard/internal/domain/search"
	"github.com/honeycarbs/niceboard/internal/domain/upload"
	"github.com/honeycarbs/niceboard/internal/mcp/tools"
	"github.com/honeycarbs/niceboard/internal/report"
	"github.com/honeycarbs/niceboard/pkg/logging"
)

type ToolRegistry struct {
	logger *logging.Logger
}

// Resources holds the services the MCP tools call into
type Resources struct {
	Uploader *upload.Service
	Searcher *search.Service
	Exporter *report.SheetsExporter
}

func NewToolRegistry(logger *logging.Logger) *ToolRegistry {
	return &ToolRegistry{logger: logger}
}

// RegisterAll adds every tool backed by res. Tools whose service is missing are skipped.
func (r *ToolRegistry) RegisterAll(server *sdkmcp.Server, res *Resources) {
	if res == nil {
		r.logger.Warn("no resources provided, MCP server has no tools")
		return
	}

	var opts []tools.Option
	if res.Uploader != nil {
		var exporter tools.RunExporter
		if res.Exporter != nil {
			exporter = res.Exporter
		}
		opts = append(opts, tools.WithUpload(res.Uploader, exporter))
	}
	if res.Searcher != nil {
		opts = append(opts, tools.WithSearch(res.Searcher))
	}

	tools.Register(server, r.logger, opts...)
	r.logger.Info("MCP tools registered", "count", len(opts))
}
