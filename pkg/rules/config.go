package rules

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/xxld0125/low-code-ai-sub004/pkg/component"
)

// tableConfig is the on-disk TOML shape for rule-table overrides.
//
// Example:
//
//	max_components = 80
//	complexity_threshold = 120
//
//	[types.hero]
//	allowed_children = ["text", "button", "image"]
//	can_contain_leaf = true
//	max_direct_children = 5
//	base_complexity = 6
type tableConfig struct {
	MaxComponents       int             `toml:"max_components"`
	ComplexityThreshold int             `toml:"complexity_threshold"`
	Types               map[string]Rule `toml:"types"`
}

// LoadTable reads a TOML rule file and returns an engine built from the
// default table with the file's type entries and limits layered on top.
// Entries in the file replace the default rule for the same type wholesale.
func LoadTable(path string) (*Engine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules %s: %w", path, err)
	}
	return ParseTable(data)
}

// ParseTable builds an engine from TOML rule bytes. See LoadTable.
func ParseTable(data []byte) (*Engine, error) {
	var cfg tableConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}

	table := DefaultTable()
	for name, rule := range cfg.Types {
		table[component.Type(name)] = rule
	}

	var opts []Option
	if cfg.MaxComponents > 0 {
		opts = append(opts, WithMaxComponents(cfg.MaxComponents))
	}
	if cfg.ComplexityThreshold > 0 {
		opts = append(opts, WithComplexityThreshold(cfg.ComplexityThreshold))
	}
	return NewEngine(table, opts...), nil
}
