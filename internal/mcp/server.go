package mcp

import (
	"context"
	"log"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/avoronov/zakondex/internal/db"
)

type ToolAdapter interface {
	ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

type Server struct {
	MCP     *server.MCPServer
	HTTP    *server.StreamableHTTPServer
	Handler http.Handler
	DB      *db.Database
}

func New(cfg Config) *Server {
	mcpServer := server.NewMCPServer(
		"zakondex-server",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	// Register tools with their proper schemas using mcp-go builder pattern
	toolDefinitions := map[string]mcp.Tool{
		"search_statutes": mcp.NewTool("search_statutes",
			mcp.WithDescription("Semantic search across Russian legal statutes using embeddings. Returns matching statute chunks with similarity scores, article references, and snippets."),
			mcp.WithString("query",
				mcp.Required(),
				mcp.Description("Natural language search query (e.g., 'ответственность за нарушение договора')"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of results to return (default: 10)"),
			),
			mcp.WithNumber("threshold",
				mcp.Description("Minimum cosine similarity between 0 and 1 (default: 0.7)"),
			),
			mcp.WithString("kind",
				mcp.Description("Optional: restrict results to one chunk kind"),
				mcp.Enum("section", "article", "article_part", "text_fragment"),
			),
			mcp.WithBoolean("full_text",
				mcp.Description("Include full chunk text in results (default: false)"),
			),
		),
		"related_chunks": mcp.NewTool("related_chunks",
			mcp.WithDescription("Find statute chunks semantically related to a stored chunk. Useful for expanding context around a search hit."),
			mcp.WithString("document_id",
				mcp.Required(),
				mcp.Description("Document identifier of the source chunk (e.g., 'fz-126')"),
			),
			mcp.WithNumber("chunk_number",
				mcp.Required(),
				mcp.Description("Chunk number of the source chunk within its document"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of related chunks to return (default: 5)"),
			),
		),
		"get_document": mcp.NewTool("get_document",
			mcp.WithDescription("Retrieve the outline of an indexed document: its metadata and the ordered list of chunks with headings and snippets."),
			mcp.WithString("document_id",
				mcp.Required(),
				mcp.Description("Document identifier (e.g., 'fz-126')"),
			),
		),
		"extract_citations": mcp.NewTool("extract_citations",
			mcp.WithDescription("Extract normative citations (federal laws, codes, article references) from free-form Russian legal text."),
			mcp.WithString("text",
				mcp.Required(),
				mcp.Description("Text to scan for citations"),
			),
		),
	}

	for name, adapter := range cfg.ToolAdapters {
		tool := toolDefinitions[name]
		mcpServer.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return adapter.ToolAdapter(ctx, req)
		})
	}

	httpServer := server.NewStreamableHTTPServer(mcpServer, cfg.Options...)

	return &Server{
		MCP:     mcpServer,
		HTTP:    httpServer,
		Handler: httpServer,
		DB:      cfg.Database,
	}
}

func (s *Server) Close() {
	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			log.Printf("error closing database: %v", err)
		}
	}
}
