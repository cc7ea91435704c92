package corpus

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"golang.org/x/text/encoding/charmap"

	"github.com/avoronov/zakondex/internal/logging"
)

func testLog() logging.Logger {
	return logging.New(logr.Discard())
}

func TestDirSourceLoad(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), []byte("Закон первый"))

	cp1251, err := charmap.Windows1251.NewEncoder().Bytes([]byte("Закон второй"))
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	writeFile(t, filepath.Join(root, "b.txt"), cp1251)
	writeFile(t, filepath.Join(root, "c.md"), []byte("заметки"))

	sub := filepath.Join(root, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(sub, "d.txt"), []byte("Закон третий"))

	docs, err := NewDirSource(root, nil, testLog()).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}
	wantIDs := []string{"a", "b", "d"}
	wantTexts := []string{"Закон первый", "Закон второй", "Закон третий"}
	for i, doc := range docs {
		if doc.ID != wantIDs[i] {
			t.Errorf("doc %d: id %q, want %q", i, doc.ID, wantIDs[i])
		}
		if doc.Text != wantTexts[i] {
			t.Errorf("doc %d: text %q, want %q", i, doc.Text, wantTexts[i])
		}
	}
	if docs[2].Path != filepath.Join(sub, "d.txt") {
		t.Errorf("doc path %q does not point into subdir", docs[2].Path)
	}
}

func TestDirSourceExtensionFilter(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), []byte("текст"))
	writeFile(t, filepath.Join(root, "b.doc"), []byte("документ"))

	docs, err := NewDirSource(root, []string{".doc"}, testLog()).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(docs) != 1 || docs[0].Name != "b.doc" {
		t.Fatalf("expected only b.doc, got %+v", docs)
	}
}

func TestDirSourceMissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	if _, err := NewDirSource(missing, nil, testLog()).Load(context.Background()); err == nil {
		t.Fatalf("expected error for missing root")
	}
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
