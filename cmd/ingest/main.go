package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/avoronov/zakondex/internal/config"
	"github.com/avoronov/zakondex/internal/corpus"
	"github.com/avoronov/zakondex/internal/db"
	dbmigrate "github.com/avoronov/zakondex/internal/db/migrate"
	"github.com/avoronov/zakondex/internal/embeddings"
	"github.com/avoronov/zakondex/internal/ingestion"
	"github.com/avoronov/zakondex/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Statute ingestion CLI (files, directories, repositories)",
}

var fileCmd = &cobra.Command{
	Use:   "file <path>",
	Short: "Ingest a single statute file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPipeline(cmd, func(ctx context.Context, lg logging.Logger, p *ingestion.Pipeline) (ingestion.Stats, error) {
			return p.Run(ctx, corpus.NewFileSource(args[0], lg))
		})
	},
}

var dirCmd = &cobra.Command{
	Use:   "dir <path>",
	Short: "Ingest every statute file under a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPipeline(cmd, func(ctx context.Context, lg logging.Logger, p *ingestion.Pipeline) (ingestion.Stats, error) {
			return p.Run(ctx, corpus.NewDirSource(args[0], extensions(cmd), lg))
		})
	},
}

var bundleCmd = &cobra.Command{
	Use:   "bundle <path.json>",
	Short: "Ingest a JSON corpus bundle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPipeline(cmd, func(ctx context.Context, lg logging.Logger, p *ingestion.Pipeline) (ingestion.Stats, error) {
			return p.Run(ctx, corpus.NewBundleSource(args[0], lg))
		})
	},
}

var githubCmd = &cobra.Command{
	Use:   "github <repo-url>",
	Short: "Ingest statute files from a GitHub repository via the contents API",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		ref, _ := cmd.Flags().GetString("ref")
		return withPipeline(cmd, func(ctx context.Context, lg logging.Logger, p *ingestion.Pipeline) (ingestion.Stats, error) {
			client := corpus.NewGitHubClient(config.GitHubToken())
			source, err := corpus.NewGitHubSource(client, args[0], dir, ref, extensions(cmd), lg)
			if err != nil {
				return ingestion.Stats{}, err
			}
			return p.Run(ctx, source)
		})
	},
}

var gitCmd = &cobra.Command{
	Use:   "git <repo-url>",
	Short: "Ingest statute files from a git repository via a local clone",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		ref, _ := cmd.Flags().GetString("ref")
		return withPipeline(cmd, func(ctx context.Context, lg logging.Logger, p *ingestion.Pipeline) (ingestion.Stats, error) {
			source, err := corpus.NewGitSource(args[0], config.CacheDir(), dir, ref, extensions(cmd), lg)
			if err != nil {
				return ingestion.Stats{}, err
			}
			return p.Run(ctx, source)
		})
	},
}

var reindexCmd = &cobra.Command{
	Use:   "reindex <path>",
	Short: "Delete stored chunks for the documents under a path and ingest them again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		confirmed, _ := cmd.Flags().GetBool("confirm")
		if !confirmed && !askConfirmation(cmd, args[0]) {
			fmt.Fprintln(cmd.OutOrStdout(), "reindex aborted")
			return nil
		}
		return withPipeline(cmd, func(ctx context.Context, lg logging.Logger, p *ingestion.Pipeline) (ingestion.Stats, error) {
			info, err := os.Stat(args[0])
			if err != nil {
				return ingestion.Stats{}, err
			}
			var source corpus.Source
			if info.IsDir() {
				source = corpus.NewDirSource(args[0], extensions(cmd), lg)
			} else {
				source = corpus.NewFileSource(args[0], lg)
			}
			return p.Reingest(ctx, source)
		})
	},
}

var reembedCmd = &cobra.Command{
	Use:   "reembed",
	Short: "Re-embed every stored chunk with the configured model",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPipeline(cmd, func(ctx context.Context, lg logging.Logger, p *ingestion.Pipeline) (ingestion.Stats, error) {
			return p.Reembed(ctx)
		})
	},
}

func main() {
	rootCmd.PersistentFlags().Bool("stats", false, "Print ingest statistics when done")
	rootCmd.PersistentFlags().Bool("generic", false, "Fragment plain text instead of extracting statute structure")

	for _, c := range []*cobra.Command{dirCmd, githubCmd, gitCmd, reindexCmd} {
		c.Flags().StringSlice("ext", nil, "File extensions to ingest (default from configuration)")
	}
	githubCmd.Flags().String("dir", "", "Subdirectory inside the repository")
	githubCmd.Flags().String("ref", "", "Git ref to read (repository default when empty)")
	gitCmd.Flags().String("dir", "", "Subdirectory inside the repository")
	gitCmd.Flags().String("ref", "", "Git ref to check out (remote default when empty)")
	reindexCmd.Flags().Bool("confirm", false, "Skip the confirmation prompt")

	config.Init(rootCmd)
	rootCmd.AddCommand(fileCmd, dirCmd, bundleCmd, githubCmd, gitCmd, reindexCmd, reembedCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("ingest: %v", err)
	}
}

// withPipeline wires database, embeddings and pipeline, runs fn under a
// signal-cancelled context, and prints statistics when --stats is set.
func withPipeline(cmd *cobra.Command, fn func(context.Context, logging.Logger, *ingestion.Pipeline) (ingestion.Stats, error)) error {
	cfg := ingestion.LoadConfig()
	if generic, _ := cmd.Flags().GetBool("generic"); generic {
		cfg.Generic = true
	}

	database, err := db.NewDatabase(db.Config{DSN: cfg.PostgresURL})
	if err != nil {
		return err
	}
	defer database.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() { <-sigs; cancel() }()

	if err := dbmigrate.EnsureCurrent(ctx, database.Bun(), "", cfg.AutoMigrate); err != nil {
		return err
	}

	baseLogger := logging.ForLevel(config.LogLevel())
	repo := db.NewChunkRepository(database, baseLogger)
	embedClient, err := embeddings.NewClient(cfg.OllamaURL, cfg.EmbeddingModel, cfg.LLMCallTimeout, baseLogger)
	if err != nil {
		return err
	}
	pipeline, err := ingestion.NewPipeline(cfg, repo, embedClient, baseLogger)
	if err != nil {
		return err
	}

	stats, err := fn(ctx, baseLogger, pipeline)
	if err != nil {
		return err
	}
	if show, _ := cmd.Flags().GetBool("stats"); show {
		fmt.Fprintln(cmd.OutOrStdout(), stats.Summary())
		chunks, err := repo.CountChunks(ctx, "")
		if err != nil {
			return err
		}
		documents, err := repo.CountDocuments(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "store: %d chunks across %d documents\n", chunks, documents)
	}
	return nil
}

func extensions(cmd *cobra.Command) []string {
	exts, _ := cmd.Flags().GetStringSlice("ext")
	if len(exts) == 0 {
		exts = config.CorpusExtensions()
	}
	return exts
}

func askConfirmation(cmd *cobra.Command, path string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "Reindex deletes every stored chunk for the documents under %s before ingesting again. Continue? [y/N]: ", path)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
