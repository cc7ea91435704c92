package statute

import (
	"fmt"
	"regexp"
	"strings"
)

// Fixed cleanup pipeline, applied in declaration order. The whitespace
// collapse erases the newlines inserted by the glued-keyword step, so the
// steps after it re-derive structural newlines from the collapsed text.
// That re-derivation is what keeps Normalize stable on its own output.
var (
	reLinePrefix   = regexp.MustCompile(`(?m)^\s*\d+\|`)
	reLineEndings  = regexp.MustCompile(`\r\n|\r`)
	reSoftWrap     = regexp.MustCompile(`([^\n])\n([^\n])`)
	reDashRun      = regexp.MustCompile(`--+`)
	rePageBreak    = regexp.MustCompile(`[\f\v]`)
	reSoftHyphen   = regexp.MustCompile("­")
	reHardSpace    = regexp.MustCompile(" ")
	reCurlyQuote   = regexp.MustCompile(`[“”]`)
	reBoilerplate  = regexp.MustCompile(`(?is)(?:Документ предоставлен|Дата сохранения|КонсультантПлюс|www\.consultant\.ru).*?(?:\n|$)`)
	rePreamble     = regexp.MustCompile(`^\s*\d{1,2}\s+[а-яА-Я]+\s+\d{4}\s+года\s+[NН]\s+\d+(?:-[А-Я]+)?[ \t]*\n`)
	reArticleDot   = regexp.MustCompile(`(Статья\s+\d+)\s*\.`)
	reGluedKeyword = regexp.MustCompile(`([^\n])(Раздел|Глава|Подраздел|Статья)`)
	reSpaceRun     = regexp.MustCompile(`\s+`)
	reKeywordBreak = regexp.MustCompile(` (Статья\s+\d|Раздел|Глава|Подраздел)`)
	reItemBreak    = regexp.MustCompile(`\.\s*(\d+(?:\.\d+)*)\.\s+`)
	reSectionGap   = regexp.MustCompile(`\n(Раздел|Глава|Подраздел)`)
	reArticleGap   = regexp.MustCompile(`\n(Статья\s+\d)`)
)

// Normalizer canonicalizes raw statute text. It never fails: any input
// yields a best-effort cleaned string.
type Normalizer struct {
	rules []compiledRule
}

type compiledRule struct {
	re      *regexp.Regexp
	replace string
}

// NewNormalizer compiles the configured clean rules. A bad pattern is a
// configuration error and is reported before any document is processed.
func NewNormalizer(rules []Rule) (*Normalizer, error) {
	n := &Normalizer{}
	for i, r := range rules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("clean rule %d (%q): %w", i, r.Pattern, err)
		}
		n.rules = append(n.rules, compiledRule{re: re, replace: r.Replace})
	}
	return n, nil
}

// Clean applies only the configured rules, for text that should not go
// through the structural pipeline.
func (n *Normalizer) Clean(text string) string {
	for _, r := range n.rules {
		text = r.re.ReplaceAllString(text, r.replace)
	}
	return strings.TrimSpace(text)
}

// Normalize runs the configured clean rules and then the fixed pipeline:
// strip technical line prefixes, unify line endings, join soft-wrapped
// lines, drop separator runs and typographic artifacts, remove provenance
// boilerplate and the leading document-id preamble, then collapse
// whitespace and rebuild line structure around section, article and item
// markers. Normalizing already-normalized text returns it unchanged.
func (n *Normalizer) Normalize(text string) string {
	for _, r := range n.rules {
		text = r.re.ReplaceAllString(text, r.replace)
	}

	text = reLinePrefix.ReplaceAllString(text, "")
	text = reLineEndings.ReplaceAllString(text, "\n")
	text = reSoftWrap.ReplaceAllString(text, "$1 $2")
	text = reDashRun.ReplaceAllString(text, "")
	text = rePageBreak.ReplaceAllString(text, "\n")
	text = reSoftHyphen.ReplaceAllString(text, "")
	text = reHardSpace.ReplaceAllString(text, " ")
	text = reCurlyQuote.ReplaceAllString(text, `"`)
	text = reBoilerplate.ReplaceAllString(text, "")
	for rePreamble.MatchString(text) {
		text = rePreamble.ReplaceAllString(text, "")
	}
	text = reArticleDot.ReplaceAllString(text, "${1}.")
	text = reGluedKeyword.ReplaceAllString(text, "$1\n$2")
	text = reSpaceRun.ReplaceAllString(text, " ")
	text = reKeywordBreak.ReplaceAllString(text, "\n$1")
	text = reItemBreak.ReplaceAllString(text, ".\n${1}. ")
	text = reSectionGap.ReplaceAllString(text, "\n\n$1")
	text = reArticleGap.ReplaceAllString(text, "\n\n$1")
	return strings.TrimSpace(text)
}
