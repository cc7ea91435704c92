package corpus

import (
	"context"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/avoronov/zakondex/internal/logging"
)

// BundleSource reads a pre-assembled JSON bundle: a single file with a
// "documents" array of {id, name, text} objects. Bundles are how scraped
// corpora arrive from upstream collectors.
type BundleSource struct {
	path string
	log  logging.Logger
}

func NewBundleSource(path string, log logging.Logger) *BundleSource {
	return &BundleSource{
		path: path,
		log:  logging.New(log.Logr()).WithName("corpus.bundle"),
	}
}

func (s *BundleSource) Load(ctx context.Context) ([]Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read bundle %s: %w", s.path, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("bundle %s is not valid JSON", s.path)
	}
	entries := gjson.GetBytes(data, "documents")
	if !entries.IsArray() {
		return nil, fmt.Errorf("bundle %s has no documents array", s.path)
	}
	var docs []Document
	entries.ForEach(func(_, entry gjson.Result) bool {
		name := entry.Get("name").Str
		text := entry.Get("text").Str
		if text == "" {
			s.log.Info("skipping bundle entry without text", "name", name)
			return true
		}
		id := entry.Get("id").Str
		if id == "" {
			id = DocumentID(name)
		}
		docs = append(docs, Document{
			ID:   id,
			Name: name,
			Path: s.path,
			Text: text,
		})
		return true
	})
	s.log.Debug("loaded bundle", "path", s.path, "documents", len(docs))
	return docs, nil
}
