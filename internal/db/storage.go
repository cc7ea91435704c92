package db

import (
	"context"
	"database/sql"
	"errors"

	pgvector "github.com/pgvector/pgvector-go"
	"github.com/uptrace/bun"

	"github.com/avoronov/zakondex/internal/logging"
)

const defaultUpsertBatch = 100

type ChunkRepository struct {
	db  *bun.DB
	log logging.Logger
}

func NewChunkRepository(database *Database, log logging.Logger) *ChunkRepository {
	return &ChunkRepository{
		db:  database.Bun(),
		log: logging.New(log.Logr()).WithName("db"),
	}
}

// ChunkSearchRow is a chunk row plus its cosine distance to the query vector.
type ChunkSearchRow struct {
	StatuteChunk `bun:",extend"`
	Distance     float64 `bun:"distance"`
}

// Similarity converts cosine distance to the similarity callers reason in.
func (r ChunkSearchRow) Similarity() float64 {
	return 1 - r.Distance
}

// SearchFilter narrows a nearest-neighbor search. Zero values mean no filter.
type SearchFilter struct {
	Kind       string
	DocumentID string
}

// UpsertChunks writes rows in batches with ON CONFLICT (id) DO UPDATE. A
// failed batch larger than 10 rows is split in half and each half retried
// once; smaller failures are logged and skipped. Returns rows that landed.
func (r *ChunkRepository) UpsertChunks(ctx context.Context, rows []*StatuteChunk, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = defaultUpsertBatch
	}
	landed := 0
	for start := 0; start < len(rows); start += batchSize {
		if err := ctx.Err(); err != nil {
			return landed, err
		}
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		landed += r.upsertBatch(ctx, rows[start:end], true)
	}
	return landed, nil
}

func (r *ChunkRepository) upsertBatch(ctx context.Context, rows []*StatuteChunk, split bool) int {
	if len(rows) == 0 {
		return 0
	}
	err := r.execUpsert(ctx, rows)
	if err == nil {
		return len(rows)
	}
	if split && len(rows) > 10 {
		r.log.Error(err, "batch upsert failed, retrying in halves", "rows", len(rows))
		mid := len(rows) / 2
		return r.upsertBatch(ctx, rows[:mid], false) + r.upsertBatch(ctx, rows[mid:], false)
	}
	r.log.Error(err, "batch upsert failed, skipping rows", "rows", len(rows))
	return 0
}

func (r *ChunkRepository) execUpsert(ctx context.Context, rows []*StatuteChunk) error {
	_, err := r.db.NewInsert().
		Model(&rows).
		On("CONFLICT (id) DO UPDATE").
		Set("document_id = EXCLUDED.document_id").
		Set("chunk_number = EXCLUDED.chunk_number").
		Set("chunk_text = EXCLUDED.chunk_text").
		Set("kind = EXCLUDED.kind").
		Set("metadata = EXCLUDED.metadata").
		Set("embedding = EXCLUDED.embedding").
		Set("embedding_model = EXCLUDED.embedding_model").
		Set("updated_at = now()").
		Exec(ctx)
	return err
}

// SearchChunks runs a cosine nearest-neighbor query. Rows below the
// similarity threshold are filtered in SQL; a threshold of 0 disables the
// filter.
func (r *ChunkRepository) SearchChunks(ctx context.Context, embedding []float32, limit int, threshold float64, filter SearchFilter) ([]ChunkSearchRow, error) {
	if limit <= 0 {
		limit = 10
	}
	vec := pgvector.NewVector(embedding)
	var results []ChunkSearchRow
	q := r.db.NewSelect().Model(&results).
		Column("id", "document_id", "chunk_number", "chunk_text", "kind", "metadata", "embedding_model", "updated_at").
		ColumnExpr("embedding <=> ? AS distance", vec).
		OrderExpr("distance").
		Limit(limit)
	if threshold > 0 {
		q = q.Where("embedding <=> ? <= ?", vec, 1-threshold)
	}
	if filter.Kind != "" {
		q = q.Where("kind = ?", filter.Kind)
	}
	if filter.DocumentID != "" {
		q = q.Where("document_id = ?", filter.DocumentID)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return results, nil
}

// GetChunk fetches one chunk by its derived id, embedding included. Returns
// nil without error when the chunk does not exist.
func (r *ChunkRepository) GetChunk(ctx context.Context, documentID string, chunkNumber int) (*StatuteChunk, error) {
	chunk := new(StatuteChunk)
	err := r.db.NewSelect().Model(chunk).
		Where("id = ?", ChunkID(documentID, chunkNumber)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return chunk, nil
}

// DocumentChunks lists every chunk of a document in chunk order, embeddings
// omitted.
func (r *ChunkRepository) DocumentChunks(ctx context.Context, documentID string) ([]StatuteChunk, error) {
	var chunks []StatuteChunk
	err := r.db.NewSelect().Model(&chunks).
		Column("id", "document_id", "chunk_number", "chunk_text", "kind", "metadata", "embedding_model", "updated_at").
		Where("document_id = ?", documentID).
		OrderExpr("chunk_number").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return chunks, nil
}

// DeleteDocument removes all chunks of a document and reports how many rows
// went away.
func (r *ChunkRepository) DeleteDocument(ctx context.Context, documentID string) (int64, error) {
	res, err := r.db.NewDelete().
		Model((*StatuteChunk)(nil)).
		Where("document_id = ?", documentID).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DocumentIDs lists distinct stored document ids in lexical order.
func (r *ChunkRepository) DocumentIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.NewSelect().Model((*StatuteChunk)(nil)).
		ColumnExpr("DISTINCT document_id").
		OrderExpr("document_id").
		Scan(ctx, &ids)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// CountChunks reports stored chunk rows, optionally for one document.
func (r *ChunkRepository) CountChunks(ctx context.Context, documentID string) (int, error) {
	q := r.db.NewSelect().Model((*StatuteChunk)(nil))
	if documentID != "" {
		q = q.Where("document_id = ?", documentID)
	}
	return q.Count(ctx)
}

// CountDocuments reports how many distinct documents are stored.
func (r *ChunkRepository) CountDocuments(ctx context.Context) (int, error) {
	var count int
	err := r.db.NewSelect().Model((*StatuteChunk)(nil)).
		ColumnExpr("count(DISTINCT document_id)").
		Scan(ctx, &count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
