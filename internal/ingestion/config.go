package ingestion

import (
	"time"

	"github.com/avoronov/zakondex/internal/config"
)

type Config struct {
	PostgresURL      string
	OllamaURL        string
	EmbeddingModel   string
	EmbedBatchSize   int // chunk texts per embedding call
	UpsertBatchSize  int // rows per database upsert
	ChunkSize        int
	OverlapSentences int
	CleanRulesFile   string
	AutoMigrate      bool
	LLMCallTimeout   time.Duration
	Generic          bool // fragment plain text instead of extracting structure
}

func LoadConfig() Config {
	return Config{
		PostgresURL:      config.PostgresURL(),
		OllamaURL:        config.OllamaURL(),
		EmbeddingModel:   config.EmbeddingModel(),
		EmbedBatchSize:   config.EmbedBatchSize(),
		UpsertBatchSize:  config.UpsertBatchSize(),
		ChunkSize:        config.ChunkSize(),
		OverlapSentences: config.ChunkOverlap(),
		CleanRulesFile:   config.CleanPatternsFile(),
		AutoMigrate:      config.AutoMigrate(),
		LLMCallTimeout:   config.LLMCallTimeout(),
	}
}
