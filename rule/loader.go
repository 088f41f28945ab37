package rule

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// rulesFile is the top-level YAML document: a "rules" array.
type rulesFile struct {
	Rules []Rule `yaml:"rules"`
}

// Load parses a YAML rules document.
func Load(data []byte) ([]Rule, error) {
	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse rules YAML: %w", err)
	}
	if len(file.Rules) == 0 {
		return nil, ErrNoRules
	}
	for i := range file.Rules {
		if err := file.Rules[i].Validate(); err != nil {
			return nil, err
		}
	}
	return file.Rules, nil
}

// LoadFile reads and parses a YAML rules file.
func LoadFile(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}
	return Load(data)
}
