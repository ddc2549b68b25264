package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/niceboard/internal/domain/search"
	"github.com/honeycarbs/niceboard/pkg/logging"
)

// Searcher runs aggregate queries over the board
type Searcher interface {
	Search(ctx context.Context, req search.Request) (*search.Response, error)
}

// SearchParams defines the arguments for the search tool
type SearchParams struct {
	Type       string         `json:"type" jsonschema:"Collection to query: jobs, companies, locations, categories or jobtypes"`
	Fields     []string       `json:"fields,omitempty" jsonschema:"Fields to keep in entries, dot notation for nested values"`
	Filters    map[string]any `json:"filters,omitempty" jsonschema:"Job filters such as company, location, category, remote_only, tags"`
	Display    string         `json:"display,omitempty" jsonschema:"summary, show_n or all"`
	SampleSize int            `json:"sample_size,omitempty" jsonschema:"Entries returned by show_n, default 5"`
}

type searchTool struct {
	searcher Searcher
	logger   *logging.Logger
}

// WithSearch registers the search tool
func WithSearch(searcher Searcher) Option {
	return func(reg *registry) {
		t := searchTool{searcher: searcher, logger: reg.logger.Named("search_tool")}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "search",
			Description: "Query jobs, companies, locations, categories or job types and summarize the results",
		}, t.handle)
	}
}

func (t searchTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params SearchParams) (*sdkmcp.CallToolResult, any, error) {
	resp, err := t.searcher.Search(ctx, search.Request{
		Type:       search.QueryType(params.Type),
		Fields:     params.Fields,
		Filters:    params.Filters,
		Display:    search.Display(params.Display),
		SampleSize: params.SampleSize,
	})
	if err != nil {
		t.logger.Warn("search failed", "type", params.Type, "err", err)
		return errorResult(err.Error()), nil, nil
	}

	out, err := jsonResult(resp)
	if err != nil {
		return nil, nil, err
	}
	return out, resp, nil
}
