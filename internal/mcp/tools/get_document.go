package tools

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/avoronov/zakondex/internal/mcp/tools/types"
	"github.com/avoronov/zakondex/internal/search"
)

type DocumentService interface {
	Document(ctx context.Context, documentID string) (types.DocumentResult, error)
}

type GetDocumentHandler struct {
	Service DocumentService
}

func (h *GetDocumentHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	documentID, _ := args["document_id"].(string)
	if documentID == "" {
		return mcp.NewToolResultError("document_id parameter is required"), nil
	}

	result, err := h.Service.Document(ctx, documentID)
	if err != nil {
		if errors.Is(err, search.ErrDocumentNotFound) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return nil, err
	}
	return mcp.NewToolResultText(string(mustMarshal(result))), nil
}
