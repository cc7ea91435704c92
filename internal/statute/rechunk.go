package statute

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/avoronov/zakondex/internal/logging"
)

var (
	reSentenceEnd = regexp.MustCompile(`[.!?]\s+`)
	reSimpleItem  = regexp.MustCompile(`(\d+\.)\s+`)
	reDigitDot    = regexp.MustCompile(`\d+\.`)
)

// Rechunker re-splits article chunks into sentence-bounded parts no longer
// than maxChars runes, carrying a trailing window of whole sentences into
// each following part. Lengths are counted per sentence; the joining spaces
// are not budgeted, matching the seal check.
type Rechunker struct {
	maxChars int
	overlap  int
	log      logging.Logger
}

// NewRechunker rejects non-positive sizes and negative overlaps eagerly: a
// zero budget would never terminate usefully.
func NewRechunker(maxChars, overlapSentences int, log logging.Logger) (*Rechunker, error) {
	if maxChars <= 0 {
		return nil, fmt.Errorf("max chars must be positive, got %d", maxChars)
	}
	if overlapSentences < 0 {
		return nil, fmt.Errorf("sentence overlap must not be negative, got %d", overlapSentences)
	}
	return &Rechunker{maxChars: maxChars, overlap: overlapSentences, log: logging.New(log.Logr())}, nil
}

// Apply replaces every article chunk with its re-split parts and renumbers
// the resulting list from a single fresh counter, so chunk numbers stay
// 1..N and gapless after splitting. Input chunks are not mutated.
func (r *Rechunker) Apply(chunks []Chunk) []Chunk {
	out := make([]Chunk, 0, len(chunks))
	counter := 0
	for _, c := range chunks {
		if c.Meta.Kind == KindArticle {
			var parts []Chunk
			parts, counter = r.splitArticle(c, counter)
			out = append(out, parts...)
			continue
		}
		counter++
		c.Number = counter
		out = append(out, c)
	}
	return out
}

// splitArticle accumulates sentences until appending the next one would
// push the buffer past maxChars, seals the buffer into a part, seeds the
// next buffer with the trailing overlap sentences, and flushes whatever
// remains at the end. A buffer sitting exactly at maxChars does not seal.
func (r *Rechunker) splitArticle(article Chunk, counter int) ([]Chunk, int) {
	var (
		parts  []Chunk
		buf    []string
		bufLen int
	)
	for _, sentence := range SplitSentences(article.Text) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		length := utf8.RuneCountInString(sentence)
		if bufLen+length > r.maxChars && len(buf) > 0 {
			var part Chunk
			part, counter = r.sealPart(buf, article, counter)
			parts = append(parts, part)
			buf = overlapTail(buf, r.overlap)
			bufLen = 0
			for _, s := range buf {
				bufLen += utf8.RuneCountInString(s)
			}
		}
		buf = append(buf, sentence)
		bufLen += length
	}
	if len(buf) > 0 {
		var part Chunk
		part, counter = r.sealPart(buf, article, counter)
		parts = append(parts, part)
	}
	if len(parts) > 1 {
		r.log.Debug("article re-split", "article", article.Meta.Article, "parts", len(parts))
	}
	return parts, counter
}

func (r *Rechunker) sealPart(sentences []string, article Chunk, counter int) (Chunk, int) {
	counter++
	text := strings.Join(sentences, " ")
	meta := article.Meta
	meta.Kind = KindArticlePart
	meta.Items = simpleItems(text)
	return Chunk{
		DocumentID: article.DocumentID,
		Number:     counter,
		Text:       text,
		Meta:       meta,
	}, counter
}

// overlapTail copies the last n sentences of buf; n == 0 seeds nothing.
func overlapTail(buf []string, n int) []string {
	if n <= 0 {
		return nil
	}
	if n > len(buf) {
		n = len(buf)
	}
	tail := make([]string, n)
	copy(tail, buf[len(buf)-n:])
	return tail
}

// SplitSentences cuts text at whitespace that follows terminal punctuation.
// The punctuation stays with its sentence; the whitespace is dropped.
func SplitSentences(text string) []string {
	locs := reSentenceEnd.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		if text == "" {
			return nil
		}
		return []string{text}
	}
	sentences := make([]string, 0, len(locs)+1)
	prev := 0
	for _, loc := range locs {
		sentences = append(sentences, text[prev:loc[0]+1])
		prev = loc[1]
	}
	if prev < len(text) {
		sentences = append(sentences, text[prev:])
	}
	return sentences
}

// simpleItems re-detects flat "N. text" clauses inside re-joined part text.
// Subitem nesting from the source chunk is deliberately not rebuilt here.
func simpleItems(text string) []Item {
	var items []Item
	pos := 0
	for pos < len(text) {
		head := reSimpleItem.FindStringSubmatchIndex(text[pos:])
		if head == nil {
			break
		}
		numStart, numEnd := pos+head[2], pos+head[3]
		start := pos + head[1]
		end := len(text)
		if b := reDigitDot.FindStringIndex(text[start:]); b != nil {
			end = start + b[0]
		}
		if nl := strings.IndexByte(text[start:], '\n'); nl >= 0 && start+nl < end {
			end = start + nl
		}
		items = append(items, Item{
			Number: text[numStart:numEnd],
			Text:   strings.TrimSpace(text[start:end]),
		})
		pos = end
	}
	return items
}
