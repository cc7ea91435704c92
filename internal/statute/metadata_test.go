package statute

import (
	"reflect"
	"testing"
)

func TestExtractMetadata(t *testing.T) {
	text := "Федеральный закон \"О связи\" от 07.07.2003 N 126-ФЗ (ред. от 23.07.2008)"
	meta := ExtractMetadata(text, testLog())

	if meta.Title != "О связи" {
		t.Fatalf("unexpected title: %q", meta.Title)
	}
	if meta.AdoptionDate == nil || meta.AdoptionDate.Format("2006-01-02") != "2003-07-07" {
		t.Fatalf("unexpected adoption date: %v", meta.AdoptionDate)
	}
	if meta.DocType != DocTypeFederalLaw {
		t.Fatalf("unexpected doc type: %q", meta.DocType)
	}
	if meta.Number != "126-ФЗ" {
		t.Fatalf("unexpected number: %q", meta.Number)
	}
	if meta.LastEdition == nil || meta.LastEdition.Format("2006-01-02") != "2008-07-23" {
		t.Fatalf("unexpected edition date: %v", meta.LastEdition)
	}
	if !reflect.DeepEqual(meta.Keywords, []string{"закон"}) {
		t.Fatalf("unexpected keywords: %v", meta.Keywords)
	}
}

func TestExtractMetadataCodexWins(t *testing.T) {
	text := "Гражданский кодекс Российской Федерации. Федеральный закон о введении в действие."
	meta := ExtractMetadata(text, testLog())
	if meta.DocType != DocTypeCodex {
		t.Fatalf("expected codex, got %q", meta.DocType)
	}
}

func TestExtractMetadataEmpty(t *testing.T) {
	meta := ExtractMetadata("просто текст без реквизитов", testLog())
	if meta.Title != "" || meta.Number != "" {
		t.Fatalf("unexpected fields: %+v", meta)
	}
	if meta.DocType != DocTypeUnknown {
		t.Fatalf("expected unknown type, got %q", meta.DocType)
	}
	if meta.AdoptionDate != nil || meta.LastEdition != nil {
		t.Fatalf("expected nil dates")
	}
}

func TestExtractMetadataBadDateKeepsTitle(t *testing.T) {
	meta := ExtractMetadata("\"Документ\" от 99.99.9999", testLog())
	if meta.Title != "Документ" {
		t.Fatalf("unexpected title: %q", meta.Title)
	}
	if meta.AdoptionDate != nil {
		t.Fatalf("expected nil date for unparsable value, got %v", meta.AdoptionDate)
	}
}

func TestExtractKeywordsOrderAndDedup(t *testing.T) {
	got := ExtractKeywords("Договор определяет обязательство. Закон охраняет договор и закон.")
	want := []string{"Договор", "обязательство", "Закон", "договор", "закон"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

// The broad stem wins over its derivative at the same position.
func TestExtractKeywordsPrefixShadowing(t *testing.T) {
	got := ExtractKeywords("правоотношения сторон")
	want := []string{"право"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExtractKeywordsNone(t *testing.T) {
	if got := ExtractKeywords("речь о погоде"); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
