package statute

import (
	"regexp"
	"strings"
	"time"

	"github.com/avoronov/zakondex/internal/logging"
)

var (
	reTitleDate  = regexp.MustCompile(`"([^"]+)"\s+от\s+(\d{2}\.\d{2}\.\d{4})`)
	reCodex      = regexp.MustCompile(`ГРАЖДАНСКИЙ\s+КОДЕКС|Гражданский\s+кодекс`)
	reFederalLaw = regexp.MustCompile(`ФЕДЕРАЛЬНЫЙ\s+ЗАКОН|Федеральный\s+закон`)
	reDocNumber  = regexp.MustCompile(`[NН]\s+(\d+(?:-[\p{L}\d_]+)?)`)
	reEdition    = regexp.MustCompile(`ред\.\s+от\s+(\d{2}\.\d{2}\.\d{4})`)
)

const dateLayout = "02.01.2006"

// ExtractMetadata pulls bibliographic fields out of statute text. Every
// field is independent and tolerant of absence: a missing pattern leaves
// the zero value, an unparsable date keeps the title and drops the date.
func ExtractMetadata(text string, log logging.Logger) Metadata {
	meta := Metadata{DocType: DocTypeUnknown}

	if m := reTitleDate.FindStringSubmatch(text); m != nil {
		meta.Title = strings.TrimSpace(m[1])
		if d, err := time.Parse(dateLayout, m[2]); err == nil {
			meta.AdoptionDate = &d
		} else {
			log.Info("skipping unparsable adoption date", "value", m[2])
		}
	}

	// Ordered check, first hit wins. The categories are not cross-validated.
	switch {
	case reCodex.MatchString(text):
		meta.DocType = DocTypeCodex
	case reFederalLaw.MatchString(text):
		meta.DocType = DocTypeFederalLaw
	}

	if m := reDocNumber.FindStringSubmatch(text); m != nil {
		meta.Number = m[1]
	}

	if m := reEdition.FindStringSubmatch(text); m != nil {
		if d, err := time.Parse(dateLayout, m[1]); err == nil {
			meta.LastEdition = &d
		} else {
			log.Info("skipping unparsable edition date", "value", m[1])
		}
	}

	meta.Keywords = ExtractKeywords(text)
	return meta
}
