package statute

import "regexp"

// Legal term alternation, tried left to right at every position. Broad
// stems sit before their derivatives, so "право" wins over
// "правоотношения"; the scan is substring-based like the rest of the
// heuristics here.
var keywordPattern = regexp.MustCompile(`(?i)` +
	`обязательство|договор|право|ответственность|сделка|` +
	`иск|возмещение|ущерб|закон|кодекс|ст\.|п\.|` +
	`собственность|имущество|наследство|наследование|` +
	`обязательств|защита|компенсация|регулирование|владение|` +
	`правоотношения|субъект|объект|правонарушение|` +
	`дееспособность|правоспособность|представительство|` +
	`исковая давность|сервитут|залог`)

// ExtractKeywords returns the legal terms present in text, deduplicated by
// matched form in first-seen order.
func ExtractKeywords(text string) []string {
	matches := keywordPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	keywords := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		keywords = append(keywords, m)
	}
	return keywords
}
