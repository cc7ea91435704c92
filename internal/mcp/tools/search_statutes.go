package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/avoronov/zakondex/internal/mcp/tools/types"
	"github.com/avoronov/zakondex/internal/search"
)

type StatuteSearchService interface {
	Search(ctx context.Context, query string, opts search.Options) ([]types.ChunkResult, error)
}

type SearchStatutesHandler struct {
	Service StatuteSearchService
}

func (h *SearchStatutesHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	query, _ := args["query"].(string)
	if query == "" {
		return mcp.NewToolResultError("query parameter is required"), nil
	}

	opts := search.Options{Limit: 10}
	if rawLimit, ok := args["limit"].(float64); ok {
		if parsed := int(rawLimit); parsed > 0 {
			opts.Limit = parsed
		}
	}
	if rawThreshold, ok := args["threshold"].(float64); ok && rawThreshold > 0 {
		if rawThreshold >= 1 {
			return mcp.NewToolResultError("threshold must be below 1"), nil
		}
		opts.Threshold = rawThreshold
	}
	if kind, ok := args["kind"].(string); ok {
		opts.Kind = kind
	}
	if fullText, ok := args["full_text"].(bool); ok {
		opts.IncludeText = fullText
	}

	results, err := h.Service.Search(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(mustMarshal(results))), nil
}
