package corpus

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/avoronov/zakondex/internal/logging"
)

// DirSource walks a local directory tree for corpus files with the
// configured extensions. The walk order is lexical, so document order is
// deterministic across runs.
type DirSource struct {
	root       string
	extensions []string
	log        logging.Logger
}

func NewDirSource(root string, extensions []string, log logging.Logger) *DirSource {
	if len(extensions) == 0 {
		extensions = []string{".txt"}
	}
	return &DirSource{
		root:       root,
		extensions: extensions,
		log:        logging.New(log.Logr()).WithName("corpus.dir"),
	}
}

func (s *DirSource) Load(ctx context.Context) ([]Document, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		return nil, fmt.Errorf("corpus dir %s: %w", s.root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("corpus path %s is not a directory", s.root)
	}

	var docs []Document
	err = filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !hasExtension(d.Name(), s.extensions) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			s.log.Error(err, "skipping unreadable file", "path", path)
			return nil
		}
		text, enc, err := DecodeText(data)
		if err != nil {
			s.log.Error(err, "skipping undecodable file", "path", path)
			return nil
		}
		s.log.Debug("loaded corpus file", "path", path, "encoding", enc)
		docs = append(docs, Document{
			ID:   DocumentID(d.Name()),
			Name: d.Name(),
			Path: path,
			Text: text,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk corpus dir %s: %w", s.root, err)
	}
	return docs, nil
}
