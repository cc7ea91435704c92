package corpus

import (
	"fmt"
	"os"
	"regexp"

	"sigs.k8s.io/yaml"

	"github.com/avoronov/zakondex/internal/statute"
)

type rulesFile struct {
	Rules []statute.Rule `json:"rules"`
}

// LoadCleanRules reads source-specific cleanup substitutions from a YAML
// file. An empty path means no extra rules.
func LoadCleanRules(path string) ([]statute.Rule, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read clean rules %s: %w", path, err)
	}
	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse clean rules %s: %w", path, err)
	}
	for i, rule := range file.Rules {
		if _, err := regexp.Compile(rule.Pattern); err != nil {
			return nil, fmt.Errorf("clean rule %d in %s: %w", i+1, path, err)
		}
	}
	return file.Rules, nil
}
