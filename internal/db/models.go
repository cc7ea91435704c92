package db

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/uptrace/bun"

	"github.com/avoronov/zakondex/internal/statute"
)

// StatuteChunk is one stored chunk of a processed legal document.
type StatuteChunk struct {
	bun.BaseModel `bun:"table:statute_chunks"`

	ID             int64             `bun:"id,pk"` // ChunkID(DocumentID, ChunkNumber)
	DocumentID     string            `bun:"document_id"`
	ChunkNumber    int               `bun:"chunk_number"`
	ChunkText      string            `bun:"chunk_text"`
	Kind           string            `bun:"kind"`
	Metadata       statute.ChunkMeta `bun:"metadata,type:jsonb"`
	Embedding      pgvector.Vector   `bun:"embedding"` // vector(768)
	EmbeddingModel string            `bun:"embedding_model"`
	UpdatedAt      time.Time         `bun:"updated_at,nullzero,default:now()"`
}

// ChunkID derives the row id for one chunk of one document: the last 8 bytes
// of sha256("{documentID}_{chunkNumber}") read big-endian, reinterpreted as
// int64. Deterministic ids are what turn re-ingestion into an in-place upsert.
func ChunkID(documentID string, chunkNumber int) int64 {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s_%d", documentID, chunkNumber)))
	return int64(binary.BigEndian.Uint64(sum[24:]))
}

// FromChunk builds a storable row from a processed chunk and its vector.
func FromChunk(chunk statute.Chunk, embedding []float32, model string) *StatuteChunk {
	return &StatuteChunk{
		ID:             ChunkID(chunk.DocumentID, chunk.Number),
		DocumentID:     chunk.DocumentID,
		ChunkNumber:    chunk.Number,
		ChunkText:      chunk.Text,
		Kind:           string(chunk.Meta.Kind),
		Metadata:       chunk.Meta,
		Embedding:      pgvector.NewVector(embedding),
		EmbeddingModel: model,
	}
}
