package statute

import (
	"github.com/avoronov/zakondex/internal/logging"
)

// Engine runs the full per-document pipeline. It holds compiled patterns
// and configuration only; chunk counters live inside each call, so distinct
// documents may be processed from distinct goroutines without locking.
type Engine struct {
	cfg       Config
	norm      *Normalizer
	rechunker *Rechunker
	log       logging.Logger
}

// Result is everything one document yields. Citations come from an
// independent scan and do not feed the chunk list.
type Result struct {
	Document  Document
	Chunks    []Chunk
	Citations []Citation
}

// NewEngine validates the configuration eagerly and compiles the clean
// rules before any document is accepted.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	norm, err := NewNormalizer(cfg.CleanRules)
	if err != nil {
		return nil, err
	}
	log := logging.New(cfg.Logger.Logr()).WithName("statute")
	rechunker, err := NewRechunker(cfg.MaxChars, cfg.OverlapSentences, log)
	if err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg, norm: norm, rechunker: rechunker, log: log}, nil
}

// Process normalizes raw statute text and decomposes it into chunks,
// metadata and citations. Identical input always yields identical chunk
// numbering and boundaries, so repeated downstream upserts are idempotent.
func (e *Engine) Process(id, raw string) Result {
	normalized := e.norm.Normalize(raw)
	meta := ExtractMetadata(normalized, e.log)
	if meta.DocType == DocTypeUnknown {
		meta.DocType = DocTypeLaw
	}

	sections := ExtractSections(normalized, e.log)
	articles := ExtractArticles(normalized, e.log)
	chunks := AssembleChunks(id, normalized, meta, sections, articles, e.log)
	chunks = e.rechunker.Apply(chunks)

	e.log.Debug("document processed", "document", id,
		"sections", len(sections), "articles", len(articles), "chunks", len(chunks))
	return Result{
		Document:  Document{ID: id, Raw: raw, Normalized: normalized, Meta: meta},
		Chunks:    chunks,
		Citations: ExtractCitations(normalized),
	}
}

// ProcessGeneric skips structural extraction and fragments the cleaned
// text instead, for inputs that are not statutes.
func (e *Engine) ProcessGeneric(id, raw string) Result {
	content := e.norm.Clean(raw)
	meta := ExtractMetadata(content, e.log)
	chunks := FragmentText(id, content, meta, e.cfg.MaxChars)

	doc := Document{ID: id, Raw: raw, Normalized: content, Meta: meta}
	if doc.Meta.DocType == DocTypeUnknown {
		doc.Meta.DocType = DocTypeLaw
	}
	return Result{Document: doc, Chunks: chunks, Citations: ExtractCitations(content)}
}
