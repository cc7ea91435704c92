package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Init(root *cobra.Command) {
	viper.AutomaticEnv()
	_ = godotenv.Load("manifests/config.env")
	if root != nil {
		_ = viper.BindPFlags(root.PersistentFlags())
	}
	setDefaults()
}

func setDefaults() {
	viper.SetDefault(KeyOllamaURL, "http://localhost:11434")
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyCacheDir, "ignore/cache")
	viper.SetDefault(KeyEmbeddingModel, "nomic-embed-text")
	viper.SetDefault(KeyEmbeddingDim, 768)
	viper.SetDefault(KeyEmbedBatchSize, 32)
	viper.SetDefault(KeyUpsertBatchSize, 100)
	viper.SetDefault(KeyChunkSize, 1000)
	viper.SetDefault(KeyChunkOverlap, 2)
	viper.SetDefault(KeyCorpusExtensions, []string{".txt"})
	viper.SetDefault(KeySearchThreshold, 0.7)
	viper.SetDefault(KeyAutoMigrate, false)
	viper.SetDefault(KeyLLMCallTimeout, 60*time.Second)
	viper.SetDefault(KeyMCPHost, "0.0.0.0")
	viper.SetDefault(KeyMCPPort, 8765)
}

func PostgresURL() string           { return viper.GetString(KeyPostgresURL) }
func OllamaURL() string             { return viper.GetString(KeyOllamaURL) }
func LogLevel() string              { return viper.GetString(KeyLogLevel) }
func CacheDir() string              { return viper.GetString(KeyCacheDir) }
func EmbeddingModel() string        { return viper.GetString(KeyEmbeddingModel) }
func EmbeddingDim() int             { return viper.GetInt(KeyEmbeddingDim) }
func EmbedBatchSize() int           { return viper.GetInt(KeyEmbedBatchSize) }
func UpsertBatchSize() int          { return viper.GetInt(KeyUpsertBatchSize) }
func ChunkSize() int                { return viper.GetInt(KeyChunkSize) }
func ChunkOverlap() int             { return viper.GetInt(KeyChunkOverlap) }
func CleanPatternsFile() string     { return viper.GetString(KeyCleanPatterns) }
func CorpusDir() string             { return viper.GetString(KeyCorpusDir) }
func CorpusRepoURL() string         { return viper.GetString(KeyCorpusRepoURL) }
func CorpusExtensions() []string    { return viper.GetStringSlice(KeyCorpusExtensions) }
func GitHubToken() string           { return viper.GetString(KeyGitHubToken) }
func SearchThreshold() float64      { return viper.GetFloat64(KeySearchThreshold) }
func AutoMigrate() bool             { return viper.GetBool(KeyAutoMigrate) }
func LLMCallTimeout() time.Duration { return viper.GetDuration(KeyLLMCallTimeout) }
func MCPHost() string               { return viper.GetString(KeyMCPHost) }
func MCPPort() int                  { return viper.GetInt(KeyMCPPort) }
