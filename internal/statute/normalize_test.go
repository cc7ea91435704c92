package statute

import (
	"testing"
)

func TestNormalizePipeline(t *testing.T) {
	raw := "1|ФЕДЕРАЛЬНЫЙ ЗАКОН\r\n" +
		"\r\n" +
		"\"О связи\" от 07.07.2003 N 126-ФЗ\r\n" +
		"\r\n" +
		"КонсультантПлюс: справочная система\r\n" +
		"\r\n" +
		"Статья 1 . Общие положения Статья 2. Цели"

	n, err := NewNormalizer(nil)
	if err != nil {
		t.Fatalf("NewNormalizer: %v", err)
	}
	got := n.Normalize(raw)
	want := "ФЕДЕРАЛЬНЫЙ ЗАКОН \"О связи\" от 07.07.2003 N 126-ФЗ\n\nСтатья 1. Общие положения\n\nСтатья 2. Цели"
	if got != want {
		t.Fatalf("normalized mismatch\ngot:  %q\nwant: %q", got, want)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"1|ФЕДЕРАЛЬНЫЙ ЗАКОН\r\n\r\n\"О связи\" от 07.07.2003 N 126-ФЗ\r\n\r\nСтатья 1 . Общие положения Статья 2. Цели",
		"Раздел I. ОБЩИЕ ПОЛОЖЕНИЯ Статья 1. Понятия. 1. Первый пункт. 2. Второй пункт.",
		"Текст со сносками\fи разрывами\vстраниц. Глава 2. Продолжение",
		"7 июля 2003 года N 126-ФЗ\n\nФЕДЕРАЛЬНЫЙ ЗАКОН \"О связи\"",
		"",
	}
	n, err := NewNormalizer(nil)
	if err != nil {
		t.Fatalf("NewNormalizer: %v", err)
	}
	for _, raw := range inputs {
		once := n.Normalize(raw)
		twice := n.Normalize(once)
		if once != twice {
			t.Fatalf("not idempotent\nonce:  %q\ntwice: %q", once, twice)
		}
	}
}

func TestNormalizeArtifacts(t *testing.T) {
	n, err := NewNormalizer(nil)
	if err != nil {
		t.Fatalf("NewNormalizer: %v", err)
	}
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"soft hyphen", "за­кон", "закон"},
		{"non-breaking space", "статья 5", "статья 5"},
		{"curly quotes", "“О связи”", "\"О связи\""},
		{"dash run", "текст -- продолжение", "текст продолжение"},
		{"line numbers", "12|первая строка", "первая строка"},
		{"page break", "один\fдва", "один два"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := n.Normalize(tc.in); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNormalizeStripsPreambleLine(t *testing.T) {
	n, _ := NewNormalizer(nil)
	got := n.Normalize("7 июля 2003 года N 126-ФЗ\n\nТекст закона о связи.")
	if got != "Текст закона о связи." {
		t.Fatalf("preamble not stripped: %q", got)
	}
}

func TestNormalizeItemMarkers(t *testing.T) {
	n, _ := NewNormalizer(nil)
	got := n.Normalize("Статья 5. Названия. 1. Первый пункт. 2.1. Дробный пункт.")
	want := "Статья 5. Названия.\n1. Первый пункт.\n2.1. Дробный пункт."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNormalizeCleanRules(t *testing.T) {
	n, err := NewNormalizer([]Rule{{Pattern: `\[стр\. \d+\]`}})
	if err != nil {
		t.Fatalf("NewNormalizer: %v", err)
	}
	got := n.Normalize("Текст закона [стр. 3] продолжается.")
	if got != "Текст закона продолжается." {
		t.Fatalf("clean rule not applied: %q", got)
	}
	if _, err := NewNormalizer([]Rule{{Pattern: `(`}}); err == nil {
		t.Fatalf("expected error for invalid pattern")
	}
}

func TestCleanSkipsPipeline(t *testing.T) {
	n, err := NewNormalizer([]Rule{{Pattern: `\d+\|`}})
	if err != nil {
		t.Fatalf("NewNormalizer: %v", err)
	}
	got := n.Clean("  1|строка один\nстрока два  ")
	if got != "строка один\nстрока два" {
		t.Fatalf("got %q", got)
	}
}
