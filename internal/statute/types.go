package statute

import "time"

// DocType classifies a statute by its issuing form.
type DocType string

const (
	DocTypeLaw        DocType = "law"
	DocTypeCodex      DocType = "codex"
	DocTypeFederalLaw DocType = "federal_law"
	DocTypeUnknown    DocType = "unknown"
)

// ChunkKind tags the structural level a chunk was cut at.
type ChunkKind string

const (
	KindSection      ChunkKind = "section"
	KindArticle      ChunkKind = "article"
	KindArticlePart  ChunkKind = "article_part"
	KindTextFragment ChunkKind = "text_fragment"
)

// CitationType names the category of a referenced act.
type CitationType string

const (
	CiteFederalLaw       CitationType = "federal_law"
	CiteCodex            CitationType = "codex"
	CiteGovernmentDecree CitationType = "government_decree"
	CiteMinistryOrder    CitationType = "ministry_order"
)

// Metadata holds the bibliographic fields recovered from a document.
// Every field degrades to its zero value when the text does not carry it.
type Metadata struct {
	Title        string     `json:"title,omitempty"`
	AdoptionDate *time.Time `json:"adoption_date,omitempty"`
	LastEdition  *time.Time `json:"last_edition,omitempty"`
	DocType      DocType    `json:"doc_type"`
	Number       string     `json:"number,omitempty"`
	Keywords     []string   `json:"keywords,omitempty"`
}

// Subitem is a lettered clause inside an item, e.g. "а) ...".
type Subitem struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

// Item is a numbered clause inside an article body.
type Item struct {
	Number   string    `json:"number"`
	Text     string    `json:"text"`
	Subitems []Subitem `json:"subitems,omitempty"`
}

// SectionRef records which section an article chunk belongs to. The article
// scan attaches the section the section scan saw last; on texts with a single
// section per article run this matches the enclosing section.
type SectionRef struct {
	Type   string `json:"type"`
	Number string `json:"number,omitempty"`
	Title  string `json:"title,omitempty"`
}

// ChunkMeta carries the structural tags of one chunk plus the document-level
// title/date/type copied onto every chunk for traceability.
type ChunkMeta struct {
	Kind          ChunkKind   `json:"kind"`
	DocTitle      string      `json:"doc_title,omitempty"`
	DocDate       string      `json:"doc_date,omitempty"`
	DocType       DocType     `json:"doc_type,omitempty"`
	SectionType   string      `json:"section_type,omitempty"`
	SectionNumber string      `json:"section_number,omitempty"`
	Title         string      `json:"title,omitempty"`
	Article       string      `json:"article,omitempty"`
	Items         []Item      `json:"items,omitempty"`
	Keywords      []string    `json:"keywords,omitempty"`
	Section       *SectionRef `json:"section,omitempty"`
	Offset        int         `json:"offset,omitempty"`
}

// Chunk is one addressable unit of a document. Number is assigned by a
// per-document counter and is unique and gapless within the document.
type Chunk struct {
	DocumentID string    `json:"document_id"`
	Number     int       `json:"chunk_number"`
	Text       string    `json:"text"`
	Meta       ChunkMeta `json:"metadata"`
}

// Document is an ingested source text. Immutable once built.
type Document struct {
	ID         string
	Raw        string
	Normalized string
	Meta       Metadata
}

// Citation is a reference to another legal act found in running text.
// Groups holds the raw captured values in pattern order, never parsed.
type Citation struct {
	Type   CitationType `json:"type"`
	Match  string       `json:"match"`
	Groups []string     `json:"groups"`
}

// Section is one span produced by the section scan.
type Section struct {
	Type   string
	Number string
	Title  string
	Text   string
}

// Article is one span produced by the article scan. Number keeps the keyword
// form exactly as matched, e.g. "Статья 12".
type Article struct {
	Number string
	Body   string
	Text   string
	Items  []Item
}
