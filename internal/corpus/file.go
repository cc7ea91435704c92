package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/avoronov/zakondex/internal/logging"
)

// FileSource loads exactly one document from a local file. Unlike the
// directory walk, a broken file here is a source failure: the caller named
// the file explicitly.
type FileSource struct {
	path string
	log  logging.Logger
}

func NewFileSource(path string, log logging.Logger) *FileSource {
	return &FileSource{
		path: path,
		log:  logging.New(log.Logr()).WithName("corpus.file"),
	}
}

func (s *FileSource) Load(ctx context.Context) ([]Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("corpus file %s: %w", s.path, err)
	}
	text, enc, err := DecodeText(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	name := filepath.Base(s.path)
	s.log.Debug("loaded corpus file", "path", s.path, "encoding", enc)
	return []Document{{
		ID:   DocumentID(name),
		Name: name,
		Path: s.path,
		Text: text,
	}}, nil
}
