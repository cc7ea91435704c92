package db

import (
	"strings"

	"github.com/avoronov/zakondex/internal/mcp/tools/types"
)

const snippetRunes = 400

// ToChunkResult shapes a search row for tool output. Snippet is a rune-safe
// prefix of the chunk text; the full text is attached only when asked for.
func ToChunkResult(row ChunkSearchRow, includeText bool) types.ChunkResult {
	result := types.ChunkResult{
		DocumentID:  row.DocumentID,
		ChunkNumber: row.ChunkNumber,
		Kind:        row.Kind,
		DocTitle:    row.Metadata.DocTitle,
		Article:     row.Metadata.Article,
		Section:     sectionLabel(row.StatuteChunk),
		Keywords:    row.Metadata.Keywords,
		Snippet:     snippet(row.ChunkText),
		Similarity:  row.Similarity(),
	}
	if includeText {
		text := row.ChunkText
		result.Text = &text
	}
	return result
}

// ToDocumentResult folds a document's chunk rows into an outline. Document
// level fields come from the first chunk; every chunk carries them.
func ToDocumentResult(documentID string, chunks []StatuteChunk) types.DocumentResult {
	result := types.DocumentResult{
		DocumentID: documentID,
		ChunkCount: len(chunks),
		Chunks:     make([]types.ChunkSummary, 0, len(chunks)),
	}
	if len(chunks) > 0 {
		meta := chunks[0].Metadata
		result.DocTitle = meta.DocTitle
		result.DocType = string(meta.DocType)
		result.DocDate = meta.DocDate
	}
	for _, chunk := range chunks {
		result.Chunks = append(result.Chunks, types.ChunkSummary{
			ChunkNumber: chunk.ChunkNumber,
			Kind:        chunk.Kind,
			Heading:     chunkHeading(chunk),
			Snippet:     snippet(chunk.ChunkText),
		})
	}
	return result
}

func chunkHeading(chunk StatuteChunk) string {
	if chunk.Metadata.Article != "" {
		return chunk.Metadata.Article
	}
	if label := sectionLabel(chunk); label != "" {
		if chunk.Metadata.Title != "" {
			return label + ". " + chunk.Metadata.Title
		}
		return label
	}
	return chunk.Metadata.Title
}

func sectionLabel(chunk StatuteChunk) string {
	if chunk.Metadata.SectionType != "" {
		return strings.TrimSpace(chunk.Metadata.SectionType + " " + chunk.Metadata.SectionNumber)
	}
	if ref := chunk.Metadata.Section; ref != nil {
		return strings.TrimSpace(ref.Type + " " + ref.Number)
	}
	return ""
}

func snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= snippetRunes {
		return text
	}
	return string(runes[:snippetRunes])
}
