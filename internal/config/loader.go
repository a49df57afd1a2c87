package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// UserDir is the per-user directory holding configs, screenshots and the score database.
const UserDir = ".oilbox"

// LoadOilbox loads Oilbox configuration.
// Search order: customPath -> ~/.oilbox/configs/oilbox.yaml -> ./configs/oilbox.yaml -> embedded default
func LoadOilbox(customPath string) (OilboxConfig, error) {
	cfg, err := load(customPath, "oilbox.yaml", defaultOilboxYAML, DefaultOilboxConfig)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadStripSort loads strip sorter configuration.
// Search order: customPath -> ~/.oilbox/configs/stripsort.yaml -> ./configs/stripsort.yaml -> embedded default
func LoadStripSort(customPath string) (StripSortConfig, error) {
	cfg, err := load(customPath, "stripsort.yaml", defaultStripSortYAML, DefaultStripSortConfig)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// load resolves one config file. Files are decoded over the hardcoded
// defaults so a partial YAML only overrides the keys it names.
func load[T any](customPath, filename string, embedded []byte, defaults func() T) (T, error) {
	cfg := defaults()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = defaults()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = defaults()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return defaults(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserDir, "configs", filename)
}

// ApplyOilboxPreset modifies the config based on a difficulty preset.
// easy, normal and hard use one wall density for every maze. ramp starts
// at the normal density and adds walls as the streak grows.
func ApplyOilboxPreset(cfg *OilboxConfig, preset DifficultyPreset) {
	cfg.Difficulty.Enabled = false
	cfg.Difficulty.InitialLevel = 0

	switch preset {
	case DifficultyEasy:
		cfg.Generator.WallDensity = 0.10
	case DifficultyNormal:
		cfg.Generator.WallDensity = 0.15
	case DifficultyHard:
		cfg.Generator.WallDensity = 0.22
	case DifficultyRamp:
		cfg.Generator.WallDensity = 0.15
		cfg.Difficulty.Enabled = true
		if cfg.Difficulty.Progression.Type == "" || cfg.Difficulty.Progression.Type == "none" {
			cfg.Difficulty.Progression.Type = "score"
		}
	}
}
