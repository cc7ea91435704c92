package statute

import (
	"reflect"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestAssembleChunks(t *testing.T) {
	adopted := time.Date(2003, 7, 7, 0, 0, 0, 0, time.UTC)
	meta := Metadata{
		Title:        "О связи",
		AdoptionDate: &adopted,
		DocType:      DocTypeFederalLaw,
	}
	sections := []Section{
		{Type: "Раздел", Number: "I", Title: "ОБЩИЕ ПОЛОЖЕНИЯ", Text: "Раздел I. ОБЩИЕ ПОЛОЖЕНИЯ"},
		{Type: "Глава", Number: "2", Title: "Продолжение", Text: "Глава 2. Продолжение"},
	}
	articles := []Article{
		{Number: "Статья 1", Body: "Договор и право.", Text: "Статья 1. Договор и право."},
		{Number: "Статья 2", Body: "Прочее", Text: "Статья 2. Прочее"},
	}

	chunks := AssembleChunks("doc-1", "текст", meta, sections, articles, testLog())
	if len(chunks) != 4 {
		t.Fatalf("expected 4 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.Number != i+1 {
			t.Fatalf("chunk %d numbered %d", i, c.Number)
		}
		if c.DocumentID != "doc-1" {
			t.Fatalf("unexpected document id: %q", c.DocumentID)
		}
		if c.Meta.DocTitle != "О связи" || c.Meta.DocDate != "2003-07-07" || c.Meta.DocType != DocTypeFederalLaw {
			t.Fatalf("document fields not copied onto chunk %d: %+v", i, c.Meta)
		}
	}

	first := chunks[0]
	if first.Meta.Kind != KindSection || first.Meta.SectionType != "Раздел" || first.Meta.SectionNumber != "I" {
		t.Fatalf("unexpected section chunk: %+v", first.Meta)
	}
	if first.Meta.Title != "ОБЩИЕ ПОЛОЖЕНИЯ" {
		t.Fatalf("unexpected section title: %q", first.Meta.Title)
	}

	art := chunks[2]
	if art.Meta.Kind != KindArticle || art.Meta.Article != "Статья 1" {
		t.Fatalf("unexpected article chunk: %+v", art.Meta)
	}
	if !reflect.DeepEqual(art.Meta.Keywords, []string{"Договор", "право"}) {
		t.Fatalf("unexpected keywords: %v", art.Meta.Keywords)
	}
	// Every article references the section seen last, not the enclosing one.
	for _, c := range chunks[2:] {
		if c.Meta.Section == nil || c.Meta.Section.Number != "2" || c.Meta.Section.Type != "Глава" {
			t.Fatalf("unexpected section reference: %+v", c.Meta.Section)
		}
	}
}

func TestAssembleChunksNoSections(t *testing.T) {
	articles := []Article{{Number: "Статья 1", Body: "Текст", Text: "Статья 1. Текст"}}
	chunks := AssembleChunks("doc-1", "текст", Metadata{DocType: DocTypeLaw}, nil, articles, testLog())
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Meta.Section != nil {
		t.Fatalf("expected nil section reference, got %+v", chunks[0].Meta.Section)
	}
}

func TestAssembleChunksFallback(t *testing.T) {
	long := strings.Repeat("я", 1500)
	meta := Metadata{DocType: DocTypeLaw, Keywords: []string{"закон"}}
	chunks := AssembleChunks("doc-2", long, meta, nil, nil, testLog())
	if len(chunks) != 1 {
		t.Fatalf("expected fallback chunk, got %d", len(chunks))
	}
	c := chunks[0]
	if c.Number != 1 || c.Meta.Kind != KindTextFragment {
		t.Fatalf("unexpected fallback chunk: number %d kind %q", c.Number, c.Meta.Kind)
	}
	if got := utf8.RuneCountInString(c.Text); got != 1000 {
		t.Fatalf("fallback should keep 1000 runes, got %d", got)
	}
	if !reflect.DeepEqual(c.Meta.Keywords, []string{"закон"}) {
		t.Fatalf("unexpected keywords: %v", c.Meta.Keywords)
	}

	short := AssembleChunks("doc-3", "короткий текст", meta, nil, nil, testLog())
	if len(short) != 1 || short[0].Text != "короткий текст" {
		t.Fatalf("short fallback should keep whole text: %+v", short)
	}
}

func TestAssembleChunksEmptyText(t *testing.T) {
	if chunks := AssembleChunks("doc-4", "", Metadata{}, nil, nil, testLog()); len(chunks) != 0 {
		t.Fatalf("expected no chunks for empty text, got %d", len(chunks))
	}
}

func TestFragmentText(t *testing.T) {
	text := strings.Repeat("ж", 2500)
	chunks := FragmentText("doc-5", text, Metadata{DocType: DocTypeUnknown}, 1000)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 fragments, got %d", len(chunks))
	}
	wantOffsets := []int{0, 1000, 2000}
	wantLens := []int{1000, 1000, 500}
	for i, c := range chunks {
		if c.Number != i+1 {
			t.Fatalf("fragment %d numbered %d", i, c.Number)
		}
		if c.Meta.Kind != KindTextFragment {
			t.Fatalf("unexpected kind: %q", c.Meta.Kind)
		}
		if c.Meta.Offset != wantOffsets[i] {
			t.Fatalf("fragment %d offset %d, want %d", i, c.Meta.Offset, wantOffsets[i])
		}
		if got := utf8.RuneCountInString(c.Text); got != wantLens[i] {
			t.Fatalf("fragment %d length %d, want %d", i, got, wantLens[i])
		}
	}

	if got := FragmentText("doc-6", "abc", Metadata{}, 0); len(got) != 1 || got[0].Text != "abc" {
		t.Fatalf("zero size should fall back to the default: %+v", got)
	}
}

func TestFirstRunes(t *testing.T) {
	if got := firstRunes("абвгд", 3); got != "абв" {
		t.Fatalf("got %q", got)
	}
	if got := firstRunes("аб", 5); got != "аб" {
		t.Fatalf("got %q", got)
	}
	if got := firstRunes("x", 0); got != "" {
		t.Fatalf("got %q", got)
	}
}
