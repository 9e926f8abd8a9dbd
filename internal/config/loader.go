package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadRhythm loads the rhythm configuration.
// Search order: customPath -> ~/.rhythm/configs/rhythm.yaml -> ./configs/rhythm.yaml -> embedded default
//
// Files are decoded over the defaults, so a file only needs the keys it changes.
func LoadRhythm(customPath string) (RhythmConfig, error) {
	cfg := DefaultRhythmConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("rhythm.yaml"); userCfgPath != "" {
		if cfg, ok := tryLoad(userCfgPath); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := tryLoad("configs/rhythm.yaml"); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg = DefaultRhythmConfig()
	if err := yaml.Unmarshal(defaultRhythmYAML, &cfg); err != nil {
		return DefaultRhythmConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file. Missing, unparsable or invalid
// files are skipped so the next location in the search order is used.
func tryLoad(path string) (RhythmConfig, bool) {
	cfg := DefaultRhythmConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if cfg.Validate() != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rhythm", "configs", filename)
}
