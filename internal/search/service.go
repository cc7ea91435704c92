// Package search answers semantic queries over the stored statute chunks.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avoronov/zakondex/internal/db"
	"github.com/avoronov/zakondex/internal/embeddings"
	"github.com/avoronov/zakondex/internal/logging"
	"github.com/avoronov/zakondex/internal/mcp/tools/types"
)

// Similarity floors per query style. Keyword queries get a looser floor
// because joined keywords embed further from chunk texts than a phrased
// question; related-chunk lookups get a tighter one because the query vector
// is itself a stored chunk.
const (
	DefaultThreshold  = 0.7
	KeywordsThreshold = 0.65
	RelatedThreshold  = 0.75

	defaultRelatedLimit = 5
)

var (
	ErrChunkNotFound    = errors.New("chunk not found")
	ErrDocumentNotFound = errors.New("document not found")
)

// ChunkStore is the slice of the chunk repository the service reads.
type ChunkStore interface {
	SearchChunks(ctx context.Context, embedding []float32, limit int, threshold float64, filter db.SearchFilter) ([]db.ChunkSearchRow, error)
	GetChunk(ctx context.Context, documentID string, chunkNumber int) (*db.StatuteChunk, error)
	DocumentChunks(ctx context.Context, documentID string) ([]db.StatuteChunk, error)
}

// Embedder turns query text into a vector.
type Embedder interface {
	EmbedTexts(ctx context.Context, inputs []string) ([][]float32, error)
}

type Service struct {
	Store ChunkStore
	Embed Embedder
	log   logging.Logger
}

func NewService(repo *db.ChunkRepository, embed *embeddings.Client, log logging.Logger) *Service {
	return &Service{
		Store: repo,
		Embed: embed,
		log:   logging.New(log.Logr()).WithName("search"),
	}
}

// Options narrow a search. Zero values mean the method defaults.
type Options struct {
	Limit       int
	Threshold   float64
	Kind        string
	DocumentID  string
	IncludeText bool
}

// Search embeds the query and returns the nearest chunks above the
// similarity floor. An empty query yields no results.
func (s *Service) Search(ctx context.Context, query string, opts Options) ([]types.ChunkResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []types.ChunkResult{}, nil
	}
	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	vectors, err := s.Embed.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) == 0 {
		return []types.ChunkResult{}, nil
	}

	rows, err := s.Store.SearchChunks(ctx, vectors[0], opts.Limit, threshold, db.SearchFilter{
		Kind:       opts.Kind,
		DocumentID: opts.DocumentID,
	})
	if err != nil {
		return nil, fmt.Errorf("search chunks: %w", err)
	}
	s.log.Debug("search done", "query_runes", len([]rune(query)), "hits", len(rows), "threshold", threshold)

	results := make([]types.ChunkResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, db.ToChunkResult(row, opts.IncludeText))
	}
	return results, nil
}

// SearchByKeywords joins legal keywords into one query and searches with the
// keyword similarity floor.
func (s *Service) SearchByKeywords(ctx context.Context, keywords []string, opts Options) ([]types.ChunkResult, error) {
	cleaned := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			cleaned = append(cleaned, kw)
		}
	}
	if len(cleaned) == 0 {
		return []types.ChunkResult{}, nil
	}
	if opts.Threshold <= 0 {
		opts.Threshold = KeywordsThreshold
	}
	return s.Search(ctx, strings.Join(cleaned, " "), opts)
}

// Related finds chunks close to a stored chunk, the chunk itself excluded.
func (s *Service) Related(ctx context.Context, documentID string, chunkNumber, limit int) ([]types.ChunkResult, error) {
	chunk, err := s.Store.GetChunk(ctx, documentID, chunkNumber)
	if err != nil {
		return nil, fmt.Errorf("load chunk: %w", err)
	}
	if chunk == nil {
		return nil, fmt.Errorf("%w: %s/%d", ErrChunkNotFound, documentID, chunkNumber)
	}
	if limit <= 0 {
		limit = defaultRelatedLimit
	}

	// One extra row because the source chunk matches itself at distance 0.
	rows, err := s.Store.SearchChunks(ctx, chunk.Embedding.Slice(), limit+1, RelatedThreshold, db.SearchFilter{})
	if err != nil {
		return nil, fmt.Errorf("search chunks: %w", err)
	}

	results := make([]types.ChunkResult, 0, limit)
	for _, row := range rows {
		if row.ID == chunk.ID {
			continue
		}
		results = append(results, db.ToChunkResult(row, false))
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

// Document returns a stored document's metadata and chunk outline.
func (s *Service) Document(ctx context.Context, documentID string) (types.DocumentResult, error) {
	chunks, err := s.Store.DocumentChunks(ctx, documentID)
	if err != nil {
		return types.DocumentResult{}, fmt.Errorf("load document: %w", err)
	}
	if len(chunks) == 0 {
		return types.DocumentResult{}, fmt.Errorf("%w: %s", ErrDocumentNotFound, documentID)
	}
	return db.ToDocumentResult(documentID, chunks), nil
}
