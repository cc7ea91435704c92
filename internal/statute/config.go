package statute

import (
	"fmt"

	"github.com/avoronov/zakondex/internal/logging"
)

// Rule is one cleanup substitution applied ahead of the fixed normalization
// pipeline, in declaration order. Replace may be empty to delete matches.
type Rule struct {
	Pattern string `json:"pattern"`
	Replace string `json:"replace,omitempty"`
}

// Config drives the processing engine.
type Config struct {
	// CleanRules run before the built-in pipeline.
	CleanRules []Rule
	// MaxChars bounds re-split article chunks, counted in runes.
	MaxChars int
	// OverlapSentences is the number of trailing sentences carried into the
	// next chunk when an article is re-split.
	OverlapSentences int
	Logger           logging.Logger
}

// validate rejects configurations that would make processing meaningless
// before any text is touched.
func (c Config) validate() error {
	if c.MaxChars <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", c.MaxChars)
	}
	if c.OverlapSentences < 0 {
		return fmt.Errorf("sentence overlap must not be negative, got %d", c.OverlapSentences)
	}
	return nil
}
