package ingestion

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Stats accumulates what one ingestion run did. RunID ties log lines of one
// run together.
type Stats struct {
	RunID     string
	Documents int
	Processed int
	Failed    int
	Chunks    int
	Stored    int
	Citations int
	Tokens    int
	ByKind    map[string]int
	Duration  time.Duration
}

func NewStats() Stats {
	return Stats{
		RunID:  uuid.NewString(),
		ByKind: make(map[string]int),
	}
}

// Summary renders the run for terminal output.
func (s Stats) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s\n", s.RunID)
	fmt.Fprintf(&b, "documents: %d processed, %d failed (of %d)\n", s.Processed, s.Failed, s.Documents)
	fmt.Fprintf(&b, "chunks: %d produced, %d stored, ~%d tokens\n", s.Chunks, s.Stored, s.Tokens)
	if len(s.ByKind) > 0 {
		kinds := make([]string, 0, len(s.ByKind))
		for kind := range s.ByKind {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)
		parts := make([]string, 0, len(kinds))
		for _, kind := range kinds {
			parts = append(parts, fmt.Sprintf("%s=%d", kind, s.ByKind[kind]))
		}
		fmt.Fprintf(&b, "kinds: %s\n", strings.Join(parts, " "))
	}
	if s.Citations > 0 {
		fmt.Fprintf(&b, "citations: %d\n", s.Citations)
	}
	fmt.Fprintf(&b, "duration: %s", s.Duration.Round(time.Millisecond))
	return b.String()
}
