// Package corpus loads legal document texts from local and remote sources
// and hands them to the processing pipeline in a uniform shape.
package corpus

import "context"

// Document is one raw statute text ready for processing. Text is always
// UTF-8 regardless of the source encoding.
type Document struct {
	ID   string
	Name string
	Path string
	Text string
}

// Source yields the documents of one corpus location. Sources are tolerant
// of individual broken files: those are logged and skipped, only source
// level failures surface as errors.
type Source interface {
	Load(ctx context.Context) ([]Document, error)
}
