// Package ingestion drives corpus documents through processing, embedding
// and storage.
package ingestion

import (
	"context"
	"fmt"
	"time"

	"github.com/avoronov/zakondex/internal/corpus"
	"github.com/avoronov/zakondex/internal/db"
	"github.com/avoronov/zakondex/internal/embeddings"
	"github.com/avoronov/zakondex/internal/logging"
	"github.com/avoronov/zakondex/internal/statute"
)

const defaultEmbedBatch = 32

// ChunkStore is the slice of the chunk repository the pipeline writes and,
// for re-embedding and replacement, reads back and clears.
type ChunkStore interface {
	UpsertChunks(ctx context.Context, rows []*db.StatuteChunk, batchSize int) (int, error)
	DocumentIDs(ctx context.Context) ([]string, error)
	DocumentChunks(ctx context.Context, documentID string) ([]db.StatuteChunk, error)
	DeleteDocument(ctx context.Context, documentID string) (int64, error)
}

// Embedder produces one vector per input text.
type Embedder interface {
	EmbedTexts(ctx context.Context, inputs []string) ([][]float32, error)
	Model() string
}

type Pipeline struct {
	cfg    Config
	Store  ChunkStore
	Embed  Embedder
	engine *statute.Engine
	log    logging.Logger
}

func NewPipeline(cfg Config, repo *db.ChunkRepository, embed *embeddings.Client, log logging.Logger) (*Pipeline, error) {
	rules, err := corpus.LoadCleanRules(cfg.CleanRulesFile)
	if err != nil {
		return nil, err
	}
	engine, err := statute.NewEngine(statute.Config{
		CleanRules:       rules,
		MaxChars:         cfg.ChunkSize,
		OverlapSentences: cfg.OverlapSentences,
		Logger:           log,
	})
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		cfg:    cfg,
		Store:  repo,
		Embed:  embed,
		engine: engine,
		log:    logging.New(log.Logr()).WithName("ingestion"),
	}, nil
}

// Run loads the corpus and ingests every document. Broken documents are
// logged and counted, not fatal; only source and context failures abort the
// run.
func (p *Pipeline) Run(ctx context.Context, source corpus.Source) (Stats, error) {
	return p.run(ctx, source, false)
}

// Reingest deletes each loaded document's stored chunks before ingesting it
// again. Plain Run overwrites rows in place, but a chunk list that shrank
// would leave stale trailing rows behind; the delete clears them.
func (p *Pipeline) Reingest(ctx context.Context, source corpus.Source) (Stats, error) {
	return p.run(ctx, source, true)
}

func (p *Pipeline) run(ctx context.Context, source corpus.Source, replace bool) (Stats, error) {
	stats := NewStats()
	start := time.Now()

	docs, err := source.Load(ctx)
	if err != nil {
		return stats, fmt.Errorf("load corpus: %w", err)
	}
	stats.Documents = len(docs)
	p.log.Info("run started", "run_id", stats.RunID, "documents", len(docs),
		"generic", p.cfg.Generic, "replace", replace)

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			stats.Duration = time.Since(start)
			return stats, err
		}
		if replace {
			removed, err := p.Store.DeleteDocument(ctx, doc.ID)
			if err != nil {
				p.log.Error(err, "document failed", "document", doc.ID)
				stats.Failed++
				continue
			}
			if removed > 0 {
				p.log.Debug("cleared stored chunks", "document", doc.ID, "rows", removed)
			}
		}
		if err := p.ingestDocument(ctx, doc, &stats); err != nil {
			p.log.Error(err, "document failed", "document", doc.ID)
			stats.Failed++
			continue
		}
		stats.Processed++
	}

	stats.Duration = time.Since(start)
	p.log.Info("run finished", "run_id", stats.RunID,
		"processed", stats.Processed, "failed", stats.Failed,
		"chunks", stats.Chunks, "stored", stats.Stored,
		"duration", stats.Duration.String())
	return stats, nil
}

// Reembed refreshes the vector of every stored chunk with the current model.
// Chunk texts and numbering stay as stored; only vectors and the model
// column change. Run it after an embedding model switch.
func (p *Pipeline) Reembed(ctx context.Context) (Stats, error) {
	stats := NewStats()
	start := time.Now()

	ids, err := p.Store.DocumentIDs(ctx)
	if err != nil {
		return stats, fmt.Errorf("list documents: %w", err)
	}
	stats.Documents = len(ids)
	p.log.Info("reembed started", "run_id", stats.RunID, "documents", len(ids), "model", p.Embed.Model())

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			stats.Duration = time.Since(start)
			return stats, err
		}
		if err := p.reembedDocument(ctx, id, &stats); err != nil {
			p.log.Error(err, "document failed", "document", id)
			stats.Failed++
			continue
		}
		stats.Processed++
	}

	stats.Duration = time.Since(start)
	p.log.Info("reembed finished", "run_id", stats.RunID,
		"processed", stats.Processed, "failed", stats.Failed,
		"stored", stats.Stored, "duration", stats.Duration.String())
	return stats, nil
}

func (p *Pipeline) ingestDocument(ctx context.Context, doc corpus.Document, stats *Stats) error {
	var result statute.Result
	if p.cfg.Generic {
		result = p.engine.ProcessGeneric(doc.ID, doc.Text)
	} else {
		result = p.engine.Process(doc.ID, doc.Text)
	}
	if len(result.Chunks) == 0 {
		p.log.Info("document yielded no chunks", "document", doc.ID)
		return nil
	}

	rows, err := p.embedChunks(ctx, result.Chunks, stats)
	if err != nil {
		return err
	}
	landed, err := p.Store.UpsertChunks(ctx, rows, p.cfg.UpsertBatchSize)
	if err != nil {
		return err
	}

	stats.Chunks += len(result.Chunks)
	stats.Stored += landed
	stats.Citations += len(result.Citations)
	for _, chunk := range result.Chunks {
		stats.ByKind[string(chunk.Meta.Kind)]++
	}
	p.log.Debug("document stored", "document", doc.ID, "chunks", len(result.Chunks), "stored", landed)
	return nil
}

func (p *Pipeline) reembedDocument(ctx context.Context, documentID string, stats *Stats) error {
	stored, err := p.Store.DocumentChunks(ctx, documentID)
	if err != nil {
		return fmt.Errorf("load chunks: %w", err)
	}
	if len(stored) == 0 {
		return nil
	}

	chunks := make([]statute.Chunk, 0, len(stored))
	for _, row := range stored {
		chunks = append(chunks, statute.Chunk{
			DocumentID: row.DocumentID,
			Number:     row.ChunkNumber,
			Text:       row.ChunkText,
			Meta:       row.Metadata,
		})
	}
	rows, err := p.embedChunks(ctx, chunks, stats)
	if err != nil {
		return err
	}
	landed, err := p.Store.UpsertChunks(ctx, rows, p.cfg.UpsertBatchSize)
	if err != nil {
		return err
	}

	stats.Chunks += len(chunks)
	stats.Stored += landed
	for _, chunk := range chunks {
		stats.ByKind[string(chunk.Meta.Kind)]++
	}
	return nil
}

func (p *Pipeline) embedChunks(ctx context.Context, chunks []statute.Chunk, stats *Stats) ([]*db.StatuteChunk, error) {
	batch := p.cfg.EmbedBatchSize
	if batch <= 0 {
		batch = defaultEmbedBatch
	}
	model := p.Embed.Model()

	rows := make([]*db.StatuteChunk, 0, len(chunks))
	for start := 0; start < len(chunks); start += batch {
		end := start + batch
		if end > len(chunks) {
			end = len(chunks)
		}
		texts := make([]string, 0, end-start)
		for _, chunk := range chunks[start:end] {
			texts = append(texts, chunk.Text)
			stats.Tokens += estimateTokens(chunk.Text)
		}
		vectors, err := p.Embed.EmbedTexts(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embed chunks: %w", err)
		}
		for i, chunk := range chunks[start:end] {
			rows = append(rows, db.FromChunk(chunk, vectors[i], model))
		}
	}
	return rows, nil
}
