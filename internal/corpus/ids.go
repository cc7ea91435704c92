package corpus

import (
	"path/filepath"
	"regexp"
	"strings"
)

var reUnsafeID = regexp.MustCompile(`[^\p{L}\d_-]+`)

// DocumentID derives a stable identifier from a file name: the stem with
// runs of unsafe characters collapsed to single underscores. The same file
// always maps to the same id, which is what makes re-ingestion an upsert.
func DocumentID(name string) string {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	id := strings.Trim(reUnsafeID.ReplaceAllString(stem, "_"), "_")
	if id == "" {
		return "document"
	}
	return id
}

func hasExtension(name string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := filepath.Ext(name)
	for _, e := range extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
