package config

const (
	KeyPostgresURL      = "postgres_url"
	KeyOllamaURL        = "ollama_url"
	KeyLogLevel         = "log_level"
	KeyCacheDir         = "cache_dir"
	KeyEmbeddingModel   = "embedding_model_name"
	KeyEmbeddingDim     = "embedding_dim"
	KeyEmbedBatchSize   = "embed_batch_size"
	KeyUpsertBatchSize  = "upsert_batch_size"
	KeyChunkSize        = "chunk_size"
	KeyChunkOverlap     = "chunk_overlap_sentences"
	KeyCleanPatterns    = "clean_patterns_file"
	KeyCorpusDir        = "corpus_dir"
	KeyCorpusRepoURL    = "corpus_repo_url"
	KeyCorpusExtensions = "corpus_extensions"
	KeyGitHubToken      = "github_token"
	KeySearchThreshold  = "search_threshold"
	KeyAutoMigrate      = "auto_migrate"
	KeyLLMCallTimeout   = "llm_call_timeout"
	KeyMCPHost          = "mcp_host"
	KeyMCPPort          = "mcp_port"
)
