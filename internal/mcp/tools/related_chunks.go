package tools

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/avoronov/zakondex/internal/mcp/tools/types"
	"github.com/avoronov/zakondex/internal/search"
)

type RelatedService interface {
	Related(ctx context.Context, documentID string, chunkNumber, limit int) ([]types.ChunkResult, error)
}

type RelatedChunksHandler struct {
	Service RelatedService
}

func (h *RelatedChunksHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	documentID, _ := args["document_id"].(string)
	if documentID == "" {
		return mcp.NewToolResultError("document_id parameter is required"), nil
	}

	chunkNumber, err := parseIntArgument(args["chunk_number"], "chunk_number")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	limit := 5
	if rawLimit, ok := args["limit"].(float64); ok {
		if parsed := int(rawLimit); parsed > 0 {
			limit = parsed
		}
	}

	results, err := h.Service.Related(ctx, documentID, chunkNumber, limit)
	if err != nil {
		if errors.Is(err, search.ErrChunkNotFound) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return nil, err
	}
	return mcp.NewToolResultText(string(mustMarshal(results))), nil
}
