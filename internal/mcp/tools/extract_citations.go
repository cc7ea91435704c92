package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/avoronov/zakondex/internal/statute"
)

type ExtractCitationsHandler struct{}

func (h *ExtractCitationsHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	text, _ := args["text"].(string)
	if strings.TrimSpace(text) == "" {
		return mcp.NewToolResultError("text parameter is required"), nil
	}

	citations := statute.ExtractCitations(text)
	if citations == nil {
		citations = []statute.Citation{}
	}
	return mcp.NewToolResultText(string(mustMarshal(citations))), nil
}
