package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestLoadOilboxEmbeddedDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadOilbox("")
	if err != nil {
		t.Fatalf("LoadOilbox() error = %v", err)
	}
	if cfg != DefaultOilboxConfig() {
		t.Errorf("embedded config = %+v, expected hardcoded defaults %+v", cfg, DefaultOilboxConfig())
	}
	if cfg.Board.Cols() != 37 || cfg.Board.Rows() != 21 {
		t.Errorf("board = %dx%d, expected 37x21", cfg.Board.Cols(), cfg.Board.Rows())
	}
}

func TestLoadOilboxCustomPathPartial(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "oilbox.yaml", "generator:\n  wall_density: 0.3\n")

	cfg, err := LoadOilbox(path)
	if err != nil {
		t.Fatalf("LoadOilbox() error = %v", err)
	}
	if cfg.Generator.WallDensity != 0.3 {
		t.Errorf("WallDensity = %v, expected 0.3", cfg.Generator.WallDensity)
	}
	if cfg.Generator.MaxAttempts != 100 || cfg.Board.TileSize != 32 {
		t.Errorf("unset keys should keep defaults, got %+v", cfg)
	}
}

func TestLoadOilboxUserDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cfgDir := filepath.Join(home, UserDir, "configs")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, cfgDir, "oilbox.yaml", "timing:\n  clear_delay_ms: 900\n")

	cfg, err := LoadOilbox("")
	if err != nil {
		t.Fatalf("LoadOilbox() error = %v", err)
	}
	if cfg.Timing.ClearDelayMs != 900 || cfg.Timing.HintWindowMs != 500 {
		t.Errorf("Timing = %+v, expected clear 900 / hint 500", cfg.Timing)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadOilbox(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	bad := writeFile(t, dir, "bad.yaml", "board: [unclosed")
	if _, err := LoadOilbox(bad); err == nil {
		t.Error("malformed YAML should fail")
	}

	invalid := writeFile(t, dir, "invalid.yaml", "segments: 1\n")
	if _, err := LoadStripSort(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadStripSort(segments: 1) error = %v, expected ErrInvalidConfig", err)
	}
}

func TestOilboxValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*OilboxConfig)
	}{
		{"zero tile size", func(c *OilboxConfig) { c.Board.TileSize = 0 }},
		{"area too small", func(c *OilboxConfig) { c.Board.AreaWidth = 64; c.Board.AreaHeight = 64 }},
		{"density of one", func(c *OilboxConfig) { c.Generator.WallDensity = 1 }},
		{"negative density", func(c *OilboxConfig) { c.Generator.WallDensity = -0.1 }},
		{"no attempts", func(c *OilboxConfig) { c.Generator.MaxAttempts = 0 }},
		{"no movement", func(c *OilboxConfig) { c.Movement.MoveSpeed = 0 }},
		{"empty score table", func(c *OilboxConfig) { c.Scores.Keep = 0 }},
	}

	if err := DefaultOilboxConfig().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultOilboxConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadStripSort(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadStripSort("")
	if err != nil {
		t.Fatalf("LoadStripSort() error = %v", err)
	}
	if cfg != DefaultStripSortConfig() {
		t.Errorf("embedded config = %+v, expected %+v", cfg, DefaultStripSortConfig())
	}
}

func TestApplyOilboxPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		density float64
		enabled bool
	}{
		{DifficultyEasy, 0.10, false},
		{DifficultyNormal, 0.15, false},
		{DifficultyHard, 0.22, false},
		{DifficultyRamp, 0.15, true},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultOilboxConfig()
			ApplyOilboxPreset(&cfg, tc.preset)
			if cfg.Generator.WallDensity != tc.density {
				t.Errorf("WallDensity = %v, expected %v", cfg.Generator.WallDensity, tc.density)
			}
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Difficulty.Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
		})
	}

	// Fixed presets give the same density at any streak.
	cfg := DefaultOilboxConfig()
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = 0.5
	ApplyOilboxPreset(&cfg, DifficultyNormal)
	d := NewDifficultyManager(cfg.Difficulty)
	for _, streak := range []int{0, 5, 20} {
		if got := d.WallDensity(cfg.Generator.WallDensity, streak); got != 0.15 {
			t.Errorf("normal WallDensity(streak %d) = %v, expected 0.15", streak, got)
		}
	}

	cfg = DefaultOilboxConfig()
	ApplyOilboxPreset(&cfg, DifficultyRamp)
	d = NewDifficultyManager(cfg.Difficulty)
	if got := d.WallDensity(cfg.Generator.WallDensity, 0); got != 0.15 {
		t.Errorf("ramp WallDensity(streak 0) = %v, expected 0.15", got)
	}
	if got := d.WallDensity(cfg.Generator.WallDensity, cfg.Difficulty.Progression.MaxAt); got <= 0.15 {
		t.Errorf("ramp WallDensity at max streak = %v, expected above 0.15", got)
	}

	if ParseDifficultyPreset("hard") != DifficultyHard || ParseDifficultyPreset("fixed") != "" {
		t.Error("ParseDifficultyPreset mismatch")
	}
}

func TestDifficultyWallDensity(t *testing.T) {
	disabled := NewDifficultyManager(DefaultOilboxConfig().Difficulty)
	if got := disabled.WallDensity(0.15, 50); got != 0.15 {
		t.Errorf("disabled WallDensity = %v, expected base", got)
	}

	cfg := DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 10},
		Scaling:     ScalingConfig{DensityIncrease: 0.10},
	}
	d := NewDifficultyManager(cfg)

	tests := []struct {
		streak   int
		expected float64
	}{
		{0, 0.15},
		{5, 0.20},
		{10, 0.25},
		{99, 0.25},
	}
	for _, tc := range tests {
		got := d.WallDensity(0.15, tc.streak)
		if diff := got - tc.expected; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("WallDensity(streak %d) = %v, expected %v", tc.streak, got, tc.expected)
		}
	}

	cfg.Scaling.DensityIncrease = 5
	if got := NewDifficultyManager(cfg).WallDensity(0.15, 10); got != 0.45 {
		t.Errorf("WallDensity should clamp to 0.45, got %v", got)
	}
}
