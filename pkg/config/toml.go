package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// FromTOML parses a configuration from TOML bytes. Unknown keys are errors.
func FromTOML(data []byte) (*Config, error) {
	cfg := &Config{}

	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return nil, fmt.Errorf("parse toml: unknown keys: %s", strings.Join(keys, ", "))
	}

	return cfg, nil
}
