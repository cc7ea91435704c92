package statute

import (
	"github.com/avoronov/zakondex/internal/logging"
)

// fallbackRunes caps the single chunk emitted when no structure matched.
const fallbackRunes = 1000

const docDateLayout = "2006-01-02"

// AssembleChunks numbers extracted spans into chunks from one per-call
// counter: sections fully enumerated first, then articles. Document-level
// title, date and type are copied onto every chunk. When neither scan
// matched anything the whole document collapses to a single fallback
// fragment.
func AssembleChunks(docID, text string, meta Metadata, sections []Section, articles []Article, log logging.Logger) []Chunk {
	chunks := make([]Chunk, 0, len(sections)+len(articles))
	counter := 0
	docDate := ""
	if meta.AdoptionDate != nil {
		docDate = meta.AdoptionDate.Format(docDateLayout)
	}

	// Articles reference the section the section scan saw last.
	var current *SectionRef
	for _, sec := range sections {
		counter++
		current = &SectionRef{Type: sec.Type, Number: sec.Number, Title: sec.Title}
		chunks = append(chunks, Chunk{
			DocumentID: docID,
			Number:     counter,
			Text:       sec.Text,
			Meta: ChunkMeta{
				Kind:          KindSection,
				DocTitle:      meta.Title,
				DocDate:       docDate,
				DocType:       meta.DocType,
				SectionType:   sec.Type,
				SectionNumber: sec.Number,
				Title:         sec.Title,
			},
		})
		log.Debug("section chunk", "type", sec.Type, "number", sec.Number)
	}

	for _, art := range articles {
		counter++
		chunks = append(chunks, Chunk{
			DocumentID: docID,
			Number:     counter,
			Text:       art.Text,
			Meta: ChunkMeta{
				Kind:     KindArticle,
				DocTitle: meta.Title,
				DocDate:  docDate,
				DocType:  meta.DocType,
				Article:  art.Number,
				Items:    art.Items,
				Keywords: ExtractKeywords(art.Text),
				Section:  current,
			},
		})
		log.Debug("article chunk", "article", art.Number)
	}

	if len(chunks) == 0 && text != "" {
		log.Info("no structure extracted, emitting fallback chunk", "document", docID)
		chunks = append(chunks, Chunk{
			DocumentID: docID,
			Number:     1,
			Text:       firstRunes(text, fallbackRunes),
			Meta: ChunkMeta{
				Kind:     KindTextFragment,
				DocTitle: meta.Title,
				DocDate:  docDate,
				DocType:  meta.DocType,
				Keywords: meta.Keywords,
			},
		})
	}
	return chunks
}

// FragmentText cuts non-statute text into fixed-size fragments with rune
// offsets, for sources where structural extraction does not apply.
func FragmentText(docID, text string, meta Metadata, size int) []Chunk {
	if size <= 0 {
		size = fallbackRunes
	}
	docDate := ""
	if meta.AdoptionDate != nil {
		docDate = meta.AdoptionDate.Format(docDateLayout)
	}
	runes := []rune(text)
	chunks := make([]Chunk, 0, (len(runes)+size-1)/size)
	for off := 0; off < len(runes); off += size {
		end := off + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, Chunk{
			DocumentID: docID,
			Number:     len(chunks) + 1,
			Text:       string(runes[off:end]),
			Meta: ChunkMeta{
				Kind:     KindTextFragment,
				DocTitle: meta.Title,
				DocDate:  docDate,
				DocType:  meta.DocType,
				Offset:   off,
			},
		})
	}
	return chunks
}

// firstRunes returns the first n runes of s.
func firstRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
