package statute

import (
	"regexp"
	"strings"

	"github.com/avoronov/zakondex/internal/logging"
)

// Both scans work the same way: find every heading, then slice the text
// from the heading to the next structural boundary. Section boundaries
// require whitespace after the keyword; the article boundary deliberately
// does not, so an inline word starting with a section keyword also ends an
// article span. The two scans are independent passes over the same text
// and their spans may overlap.
var (
	reSectionHead     = regexp.MustCompile(`(?i)(Раздел|Глава|Подраздел)\s+([IVXLCDM\d]+)?\.?\s*`)
	reSectionBoundary = regexp.MustCompile(`(?i)(?:Раздел|Глава|Подраздел|Статья)\s+`)
	reArticleHead     = regexp.MustCompile(`(?i)(Статья\s+\d+[.\d]*)\.\s*`)
	reArticleBoundary = regexp.MustCompile(`(?i)Статья\s+\d+|Раздел|Глава|Подраздел`)
	reItemHead        = regexp.MustCompile(`(?m)^(\d+(?:\.\d+)*)\.\s+`)
	reSubitemHead     = regexp.MustCompile(`([а-я])\)\s+`)
)

// ExtractSections finds Раздел/Глава/Подраздел spans in normalized text.
func ExtractSections(text string, log logging.Logger) []Section {
	heads := reSectionHead.FindAllStringIndex(text, -1)
	sections := make([]Section, 0, len(heads))
	for _, loc := range heads {
		end := len(text)
		if b := reSectionBoundary.FindStringIndex(text[loc[1]:]); b != nil {
			end = loc[1] + b[0]
		}
		span := strings.TrimSpace(text[loc[0]:end])
		m := reSectionHead.FindStringSubmatchIndex(span)
		if m == nil {
			preview := span
			if len(preview) > 80 {
				preview = preview[:80]
			}
			log.Debug("skip section span without heading", "span", preview)
			continue
		}
		sec := Section{
			Type:  span[m[2]:m[3]],
			Title: strings.TrimSpace(span[m[1]:]),
			Text:  span,
		}
		if m[4] >= 0 {
			sec.Number = span[m[4]:m[5]]
		}
		sections = append(sections, sec)
	}
	return sections
}

// ExtractArticles finds Статья spans in normalized text and decomposes each
// body into items and subitems.
func ExtractArticles(text string, log logging.Logger) []Article {
	heads := reArticleHead.FindAllStringIndex(text, -1)
	articles := make([]Article, 0, len(heads))
	for _, loc := range heads {
		end := len(text)
		if b := reArticleBoundary.FindStringIndex(text[loc[1]:]); b != nil {
			end = loc[1] + b[0]
		}
		span := strings.TrimSpace(text[loc[0]:end])
		m := reArticleHead.FindStringSubmatchIndex(span)
		if m == nil {
			preview := span
			if len(preview) > 80 {
				preview = preview[:80]
			}
			log.Debug("skip article span without heading", "span", preview)
			continue
		}
		body := strings.TrimSpace(span[m[1]:])
		articles = append(articles, Article{
			Number: strings.TrimSpace(span[m[2]:m[3]]),
			Body:   body,
			Text:   span,
			Items:  extractItems(body),
		})
	}
	return articles
}

// extractItems finds line-anchored "N. text" clauses. A clause runs to the
// end of its line or the next marker, whichever comes first; continuation
// lines belong to no item.
func extractItems(body string) []Item {
	heads := reItemHead.FindAllStringSubmatchIndex(body, -1)
	if len(heads) == 0 {
		return nil
	}
	items := make([]Item, 0, len(heads))
	for i, m := range heads {
		start := m[1]
		end := len(body)
		if i+1 < len(heads) && heads[i+1][0] < end {
			end = heads[i+1][0]
		}
		if nl := strings.IndexByte(body[start:], '\n'); nl >= 0 && start+nl < end {
			end = start + nl
		}
		text := strings.TrimSpace(body[start:end])
		items = append(items, Item{
			Number:   body[m[2]:m[3]],
			Text:     text,
			Subitems: extractSubitems(text),
		})
	}
	return items
}

// extractSubitems finds "а) text" clauses, each running to the next marker
// or the end of the item.
func extractSubitems(text string) []Subitem {
	heads := reSubitemHead.FindAllStringSubmatchIndex(text, -1)
	if len(heads) == 0 {
		return nil
	}
	subs := make([]Subitem, 0, len(heads))
	for i, m := range heads {
		end := len(text)
		if i+1 < len(heads) {
			end = heads[i+1][0]
		}
		subs = append(subs, Subitem{
			Number: text[m[2]:m[3]],
			Text:   strings.TrimSpace(text[m[1]:end]),
		})
	}
	return subs
}
