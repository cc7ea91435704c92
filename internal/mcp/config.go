package mcp

import (
	"log"

	"github.com/mark3labs/mcp-go/server"

	"github.com/avoronov/zakondex/internal/config"
	"github.com/avoronov/zakondex/internal/db"
	"github.com/avoronov/zakondex/internal/embeddings"
	"github.com/avoronov/zakondex/internal/ingestion"
	"github.com/avoronov/zakondex/internal/logging"
	"github.com/avoronov/zakondex/internal/mcp/tools"
	"github.com/avoronov/zakondex/internal/search"
)

type Config struct {
	ToolAdapters map[string]ToolAdapter
	Options      []server.StreamableHTTPOption
	Database     *db.Database
}

func DefaultConfig() Config {
	ingestionCfg := ingestion.LoadConfig()

	database, err := db.NewDatabase(db.Config{DSN: ingestionCfg.PostgresURL})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	baseLogger := logging.ForLevel(config.LogLevel())
	repo := db.NewChunkRepository(database, baseLogger)
	embedClient, err := embeddings.NewClient(ingestionCfg.OllamaURL, ingestionCfg.EmbeddingModel, ingestionCfg.LLMCallTimeout, baseLogger)
	if err != nil {
		log.Fatalf("failed to init embedding client: %v", err)
	}
	searchService := search.NewService(repo, embedClient, baseLogger)

	return Config{
		ToolAdapters: map[string]ToolAdapter{
			"search_statutes":   &tools.SearchStatutesHandler{Service: searchService},
			"related_chunks":    &tools.RelatedChunksHandler{Service: searchService},
			"get_document":      &tools.GetDocumentHandler{Service: searchService},
			"extract_citations": &tools.ExtractCitationsHandler{},
		},
		Options: []server.StreamableHTTPOption{
			server.WithEndpointPath("/mcp/jsonrpc"),
			server.WithStateLess(true),
		},
		Database: database,
	}
}
