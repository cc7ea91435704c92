package ingestion

import (
	"context"
	"strings"
	"testing"

	"github.com/go-logr/logr"

	"github.com/avoronov/zakondex/internal/corpus"
	"github.com/avoronov/zakondex/internal/db"
	"github.com/avoronov/zakondex/internal/logging"
	"github.com/avoronov/zakondex/internal/statute"
)

type fakeStore struct {
	rows      []*db.StatuteChunk
	docIDs    []string
	docChunks map[string][]db.StatuteChunk
	deleted   []string
	gotBatch  int
}

func (f *fakeStore) UpsertChunks(_ context.Context, rows []*db.StatuteChunk, batchSize int) (int, error) {
	f.gotBatch = batchSize
	f.rows = append(f.rows, rows...)
	return len(rows), nil
}

func (f *fakeStore) DocumentIDs(_ context.Context) ([]string, error) {
	return f.docIDs, nil
}

func (f *fakeStore) DocumentChunks(_ context.Context, documentID string) ([]db.StatuteChunk, error) {
	return f.docChunks[documentID], nil
}

func (f *fakeStore) DeleteDocument(_ context.Context, documentID string) (int64, error) {
	f.deleted = append(f.deleted, documentID)
	return int64(len(f.docChunks[documentID])), nil
}

type fakeEmbedder struct {
	batches [][]string
}

func (f *fakeEmbedder) EmbedTexts(_ context.Context, inputs []string) ([][]float32, error) {
	f.batches = append(f.batches, inputs)
	out := make([][]float32, len(inputs))
	for i := range out {
		out[i] = []float32{0.6, 0.8}
	}
	return out, nil
}

func (f *fakeEmbedder) Model() string { return "test-model" }

type sliceSource struct {
	docs []corpus.Document
}

func (s sliceSource) Load(context.Context) ([]corpus.Document, error) {
	return s.docs, nil
}

func testLog() logging.Logger {
	return logging.New(logr.Discard())
}

func newTestPipeline(t *testing.T, store *fakeStore, embed *fakeEmbedder, cfg Config) *Pipeline {
	t.Helper()
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = 1000
	}
	engine, err := statute.NewEngine(statute.Config{
		MaxChars:         cfg.ChunkSize,
		OverlapSentences: cfg.OverlapSentences,
		Logger:           testLog(),
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return &Pipeline{cfg: cfg, Store: store, Embed: embed, engine: engine, log: testLog()}
}

func stubTokenEstimate(t *testing.T) {
	t.Helper()
	old := estimateTokensFunc
	estimateTokensFunc = func(text string) int { return 1 }
	t.Cleanup(func() { estimateTokensFunc = old })
}

func TestPipelineRunStatute(t *testing.T) {
	stubTokenEstimate(t)
	raw := "ФЕДЕРАЛЬНЫЙ ЗАКОН\n\n" +
		"\"О связи\" от 07.07.2003 N 126-ФЗ\n\n" +
		"Раздел I. ОБЩИЕ ПОЛОЖЕНИЯ Статья 1. Понятия. 1. Связь есть обмен. 2. Договор есть сделка. Статья 2. Сфера действия закона."

	store := &fakeStore{}
	embed := &fakeEmbedder{}
	p := newTestPipeline(t, store, embed, Config{EmbedBatchSize: 2, UpsertBatchSize: 50})

	stats, err := p.Run(context.Background(), sliceSource{docs: []corpus.Document{
		{ID: "fz-126", Name: "fz-126.txt", Text: raw},
	}})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if stats.Documents != 1 || stats.Processed != 1 || stats.Failed != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if stats.Chunks != 3 || stats.Stored != 3 {
		t.Fatalf("chunk counts %d/%d, want 3/3", stats.Chunks, stats.Stored)
	}
	if stats.ByKind["section"] != 1 || stats.ByKind["article_part"] != 2 {
		t.Fatalf("kind counts %v", stats.ByKind)
	}
	if stats.Citations != 1 {
		t.Fatalf("citations %d, want 1", stats.Citations)
	}
	if stats.Tokens != 3 {
		t.Fatalf("tokens %d, want one per chunk", stats.Tokens)
	}

	if len(store.rows) != 3 {
		t.Fatalf("stored %d rows", len(store.rows))
	}
	if store.gotBatch != 50 {
		t.Fatalf("upsert batch %d, want 50", store.gotBatch)
	}
	first := store.rows[0]
	if first.ID != db.ChunkID("fz-126", 1) || first.EmbeddingModel != "test-model" {
		t.Fatalf("unexpected first row %+v", first)
	}
	if vec := first.Embedding.Slice(); len(vec) != 2 || vec[0] != 0.6 {
		t.Fatalf("embedding %v", vec)
	}

	// 3 texts at batch size 2 means one full call and one remainder call.
	if len(embed.batches) != 2 || len(embed.batches[0]) != 2 || len(embed.batches[1]) != 1 {
		t.Fatalf("unexpected embed batching %v", embed.batches)
	}
}

func TestPipelineGeneric(t *testing.T) {
	stubTokenEstimate(t)
	store := &fakeStore{}
	p := newTestPipeline(t, store, &fakeEmbedder{}, Config{Generic: true, UpsertBatchSize: 10})

	stats, err := p.Run(context.Background(), sliceSource{docs: []corpus.Document{
		{ID: "dogovor", Text: "Общие условия поставки товара."},
	}})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if stats.Processed != 1 || stats.Chunks != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if stats.ByKind["text_fragment"] != 1 {
		t.Fatalf("kind counts %v", stats.ByKind)
	}
	if store.rows[0].Kind != "text_fragment" {
		t.Fatalf("stored kind %q", store.rows[0].Kind)
	}
}

func TestPipelineEmptyDocument(t *testing.T) {
	stubTokenEstimate(t)
	store := &fakeStore{}
	p := newTestPipeline(t, store, &fakeEmbedder{}, Config{})

	stats, err := p.Run(context.Background(), sliceSource{docs: []corpus.Document{
		{ID: "empty", Text: "   "},
	}})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if stats.Processed != 1 || stats.Failed != 0 || stats.Stored != 0 {
		t.Fatalf("empty document should be processed without rows: %+v", stats)
	}
	if len(store.rows) != 0 {
		t.Fatalf("unexpected rows %v", store.rows)
	}
}

func TestPipelineReingest(t *testing.T) {
	stubTokenEstimate(t)
	store := &fakeStore{}
	p := newTestPipeline(t, store, &fakeEmbedder{}, Config{UpsertBatchSize: 10})

	stats, err := p.Reingest(context.Background(), sliceSource{docs: []corpus.Document{
		{ID: "fz-126", Text: "Статья 1. Понятия."},
	}})
	if err != nil {
		t.Fatalf("reingest: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "fz-126" {
		t.Fatalf("stored chunks not cleared first: %v", store.deleted)
	}
	if stats.Processed != 1 || stats.Stored != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestPipelineRunDoesNotDelete(t *testing.T) {
	stubTokenEstimate(t)
	store := &fakeStore{}
	p := newTestPipeline(t, store, &fakeEmbedder{}, Config{})

	if _, err := p.Run(context.Background(), sliceSource{docs: []corpus.Document{
		{ID: "fz-126", Text: "Статья 1. Понятия."},
	}}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(store.deleted) != 0 {
		t.Fatalf("plain run must not delete: %v", store.deleted)
	}
}

func TestPipelineReembed(t *testing.T) {
	stubTokenEstimate(t)
	store := &fakeStore{
		docIDs: []string{"fz-126"},
		docChunks: map[string][]db.StatuteChunk{
			"fz-126": {
				{
					DocumentID:  "fz-126",
					ChunkNumber: 1,
					ChunkText:   "Статья 1. Понятия.",
					Kind:        "article",
					Metadata:    statute.ChunkMeta{Kind: statute.KindArticle, Article: "Статья 1"},
				},
				{
					DocumentID:  "fz-126",
					ChunkNumber: 2,
					ChunkText:   "Статья 2. Сфера действия.",
					Kind:        "article",
					Metadata:    statute.ChunkMeta{Kind: statute.KindArticle, Article: "Статья 2"},
				},
			},
		},
	}
	embed := &fakeEmbedder{}
	p := newTestPipeline(t, store, embed, Config{UpsertBatchSize: 10})

	stats, err := p.Reembed(context.Background())
	if err != nil {
		t.Fatalf("reembed: %v", err)
	}
	if stats.Documents != 1 || stats.Processed != 1 || stats.Stored != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if len(store.rows) != 2 {
		t.Fatalf("stored %d rows", len(store.rows))
	}
	if store.rows[0].ID != db.ChunkID("fz-126", 1) {
		t.Fatalf("row id drifted: %d", store.rows[0].ID)
	}
	if store.rows[1].EmbeddingModel != "test-model" {
		t.Fatalf("model not refreshed: %q", store.rows[1].EmbeddingModel)
	}
	if store.rows[0].Metadata.Article != "Статья 1" {
		t.Fatalf("metadata lost on reindex: %+v", store.rows[0].Metadata)
	}
}

func TestStatsSummary(t *testing.T) {
	stats := NewStats()
	stats.Documents = 2
	stats.Processed = 2
	stats.Chunks = 5
	stats.Stored = 5
	stats.Tokens = 120
	stats.ByKind["article_part"] = 4
	stats.ByKind["section"] = 1

	summary := stats.Summary()
	for _, want := range []string{"2 processed", "5 produced", "article_part=4", "section=1"} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary %q missing %q", summary, want)
		}
	}
}
