package statute

import "regexp"

// Citation patterns in declaration order. Matching is case-insensitive;
// overlapping hits across patterns are all reported.
var citationPatterns = []struct {
	re  *regexp.Regexp
	typ CitationType
}{
	{regexp.MustCompile(`(?i)(?:Федеральн(?:ый|ого|ому) закон(?:а|у|ом)?)\s+"([^"]+)"\s+от\s+(\d{1,2}\.\d{1,2}\.\d{4})\s+[NН]\s+(\d+-[А-Я]+)`), CiteFederalLaw},
	{regexp.MustCompile(`(?i)([А-Я][а-я]+(?:ом|ого|ий|ый))\s+кодекс(?:а|е|ом|у)?\s+Российской\s+Федерации`), CiteCodex},
	{regexp.MustCompile(`(?i)Постановлени(?:е|я|ю|ем)\s+Правительства\s+Российской\s+Федерации\s+от\s+(\d{1,2}\.\d{1,2}\.\d{4})\s+[NН]\s+(\d+)`), CiteGovernmentDecree},
	{regexp.MustCompile(`(?i)Приказ(?:а|е|ом|у)?\s+(?:Министерства|Минфина|Минюста|ФНС)[^"]*\s+от\s+(\d{1,2}\.\d{1,2}\.\d{4})\s+[NН]\s+(\d+)`), CiteMinistryOrder},
}

// ExtractCitations scans text for references to other legal acts. Results
// come in pattern declaration order with capture groups passed through
// verbatim, never parsed.
func ExtractCitations(text string) []Citation {
	var citations []Citation
	for _, p := range citationPatterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			citations = append(citations, Citation{Type: p.typ, Match: m[0], Groups: m[1:]})
		}
	}
	return citations
}
