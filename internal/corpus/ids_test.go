package corpus

import "testing"

func TestDocumentID(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"39_fz_o_svyazi.txt", "39_fz_o_svyazi"},
		{"Закон о связи.txt", "Закон_о_связи"},
		{"ГК РФ (часть 1).txt", "ГК_РФ_часть_1"},
		{"corpus/fz/44-fz.txt", "44-fz"},
		{"file.name.txt", "file_name"},
		{"(draft).txt", "draft"},
		{"???.txt", "document"},
	}
	for _, tt := range tests {
		if got := DocumentID(tt.name); got != tt.want {
			t.Errorf("DocumentID(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestHasExtension(t *testing.T) {
	if !hasExtension("zakon.TXT", []string{".txt"}) {
		t.Fatalf("extension match should ignore case")
	}
	if hasExtension("zakon.md", []string{".txt"}) {
		t.Fatalf("unexpected match for .md")
	}
	if !hasExtension("anything.bin", nil) {
		t.Fatalf("empty filter should accept everything")
	}
}
