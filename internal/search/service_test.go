package search

import (
	"context"
	"errors"
	"testing"

	"github.com/go-logr/logr"
	"github.com/pgvector/pgvector-go"

	"github.com/avoronov/zakondex/internal/db"
	"github.com/avoronov/zakondex/internal/logging"
)

type fakeStore struct {
	rows      []db.ChunkSearchRow
	chunk     *db.StatuteChunk
	docChunks []db.StatuteChunk

	gotVector    []float32
	gotLimit     int
	gotThreshold float64
	gotFilter    db.SearchFilter
}

func (f *fakeStore) SearchChunks(_ context.Context, embedding []float32, limit int, threshold float64, filter db.SearchFilter) ([]db.ChunkSearchRow, error) {
	f.gotVector = embedding
	f.gotLimit = limit
	f.gotThreshold = threshold
	f.gotFilter = filter
	return f.rows, nil
}

func (f *fakeStore) GetChunk(_ context.Context, _ string, _ int) (*db.StatuteChunk, error) {
	return f.chunk, nil
}

func (f *fakeStore) DocumentChunks(_ context.Context, _ string) ([]db.StatuteChunk, error) {
	return f.docChunks, nil
}

type fakeEmbedder struct {
	gotInputs []string
	calls     int
}

func (f *fakeEmbedder) EmbedTexts(_ context.Context, inputs []string) ([][]float32, error) {
	f.gotInputs = inputs
	f.calls++
	return [][]float32{{0.1, 0.2}}, nil
}

func newTestService(store *fakeStore, embed *fakeEmbedder) *Service {
	return &Service{
		Store: store,
		Embed: embed,
		log:   logging.New(logr.Discard()),
	}
}

func searchRow(documentID string, number int, text string) db.ChunkSearchRow {
	return db.ChunkSearchRow{
		StatuteChunk: db.StatuteChunk{
			ID:          db.ChunkID(documentID, number),
			DocumentID:  documentID,
			ChunkNumber: number,
			ChunkText:   text,
			Kind:        "article",
		},
		Distance: 0.2,
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	store := &fakeStore{}
	embed := &fakeEmbedder{}
	results, err := newTestService(store, embed).Search(context.Background(), "   ", Options{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
	if embed.calls != 0 {
		t.Fatalf("empty query must not be embedded")
	}
}

func TestSearchDefaults(t *testing.T) {
	store := &fakeStore{rows: []db.ChunkSearchRow{searchRow("fz-126", 1, "Статья 1.")}}
	embed := &fakeEmbedder{}
	results, err := newTestService(store, embed).Search(context.Background(), "договор связи", Options{Limit: 7})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(embed.gotInputs) != 1 || embed.gotInputs[0] != "договор связи" {
		t.Fatalf("unexpected embed inputs %v", embed.gotInputs)
	}
	if store.gotThreshold != DefaultThreshold {
		t.Fatalf("threshold %f, want %f", store.gotThreshold, DefaultThreshold)
	}
	if store.gotLimit != 7 {
		t.Fatalf("limit %d, want 7", store.gotLimit)
	}
	if len(results) != 1 || results[0].DocumentID != "fz-126" {
		t.Fatalf("unexpected results %+v", results)
	}
	if results[0].Similarity != 0.8 {
		t.Fatalf("similarity %f, want 0.8", results[0].Similarity)
	}
}

func TestSearchFilterPassthrough(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, &fakeEmbedder{})
	_, err := svc.Search(context.Background(), "аренда", Options{Kind: "article", DocumentID: "gk-rf"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if store.gotFilter.Kind != "article" || store.gotFilter.DocumentID != "gk-rf" {
		t.Fatalf("filter not passed: %+v", store.gotFilter)
	}
}

func TestSearchByKeywords(t *testing.T) {
	store := &fakeStore{}
	embed := &fakeEmbedder{}
	_, err := newTestService(store, embed).SearchByKeywords(context.Background(), []string{" договор", "", "аренда "}, Options{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if embed.gotInputs[0] != "договор аренда" {
		t.Fatalf("joined query %q", embed.gotInputs[0])
	}
	if store.gotThreshold != KeywordsThreshold {
		t.Fatalf("threshold %f, want %f", store.gotThreshold, KeywordsThreshold)
	}
}

func TestSearchByKeywordsEmpty(t *testing.T) {
	embed := &fakeEmbedder{}
	results, err := newTestService(&fakeStore{}, embed).SearchByKeywords(context.Background(), []string{" ", ""}, Options{})
	if err != nil || len(results) != 0 {
		t.Fatalf("expected empty results, got %v, %v", results, err)
	}
	if embed.calls != 0 {
		t.Fatalf("blank keywords must not be embedded")
	}
}

func TestRelatedExcludesSelf(t *testing.T) {
	self := db.StatuteChunk{
		ID:          db.ChunkID("fz-126", 2),
		DocumentID:  "fz-126",
		ChunkNumber: 2,
		Embedding:   pgvector.NewVector([]float32{0.3, 0.4}),
	}
	selfRow := db.ChunkSearchRow{StatuteChunk: self, Distance: 0}
	store := &fakeStore{
		chunk: &self,
		rows: []db.ChunkSearchRow{
			selfRow,
			searchRow("fz-126", 3, "Статья 2."),
			searchRow("gk-rf", 8, "Статья 420."),
		},
	}
	results, err := newTestService(store, &fakeEmbedder{}).Related(context.Background(), "fz-126", 2, 2)
	if err != nil {
		t.Fatalf("related: %v", err)
	}
	if store.gotLimit != 3 {
		t.Fatalf("store limit %d, want limit+1", store.gotLimit)
	}
	if store.gotThreshold != RelatedThreshold {
		t.Fatalf("threshold %f, want %f", store.gotThreshold, RelatedThreshold)
	}
	if store.gotVector[0] != 0.3 || store.gotVector[1] != 0.4 {
		t.Fatalf("stored vector not used: %v", store.gotVector)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r.DocumentID == "fz-126" && r.ChunkNumber == 2 {
			t.Fatalf("source chunk leaked into results")
		}
	}
}

func TestRelatedMissingChunk(t *testing.T) {
	_, err := newTestService(&fakeStore{}, &fakeEmbedder{}).Related(context.Background(), "fz-126", 99, 5)
	if !errors.Is(err, ErrChunkNotFound) {
		t.Fatalf("expected ErrChunkNotFound, got %v", err)
	}
}

func TestDocumentNotFound(t *testing.T) {
	_, err := newTestService(&fakeStore{}, &fakeEmbedder{}).Document(context.Background(), "missing")
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestDocumentOutline(t *testing.T) {
	store := &fakeStore{docChunks: []db.StatuteChunk{
		{DocumentID: "fz-126", ChunkNumber: 1, Kind: "section", ChunkText: "Раздел I."},
		{DocumentID: "fz-126", ChunkNumber: 2, Kind: "article", ChunkText: "Статья 1."},
	}}
	result, err := newTestService(store, &fakeEmbedder{}).Document(context.Background(), "fz-126")
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if result.ChunkCount != 2 || len(result.Chunks) != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
}
