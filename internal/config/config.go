// Package config provides YAML-based game configuration loading and
// difficulty management for oilbox and stripsort.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// OilboxConfig contains all configuration for the Oilbox slide maze.
type OilboxConfig struct {
	Board      OilboxBoard      `yaml:"board"`
	Generator  OilboxGenerator  `yaml:"generator"`
	Movement   OilboxMovement   `yaml:"movement"`
	Timing     OilboxTiming     `yaml:"timing"`
	Scores     OilboxScores     `yaml:"scores"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// OilboxBoard sizes the maze. Columns and rows are the play area divided by the tile size.
type OilboxBoard struct {
	TileSize   int `yaml:"tile_size"`
	AreaWidth  int `yaml:"area_width"`
	AreaHeight int `yaml:"area_height"`
}

// Cols returns the number of grid columns.
func (b OilboxBoard) Cols() int {
	if b.TileSize <= 0 {
		return 0
	}
	return b.AreaWidth / b.TileSize
}

// Rows returns the number of grid rows.
func (b OilboxBoard) Rows() int {
	if b.TileSize <= 0 {
		return 0
	}
	return b.AreaHeight / b.TileSize
}

// OilboxGenerator tunes maze generation.
type OilboxGenerator struct {
	WallDensity float64 `yaml:"wall_density"`
	MaxAttempts int     `yaml:"max_attempts"`
}

// OilboxMovement tunes the slide animation.
type OilboxMovement struct {
	MoveSpeed int `yaml:"move_speed"` // pixels per tick
}

// OilboxTiming holds the fixed delays, in milliseconds.
type OilboxTiming struct {
	ClearDelayMs int `yaml:"clear_delay_ms"`
	HintWindowMs int `yaml:"hint_window_ms"`
}

// OilboxScores configures the high-score table.
type OilboxScores struct {
	Keep int `yaml:"keep"`
}

// Validate reports the first unusable setting.
func (c OilboxConfig) Validate() error {
	switch {
	case c.Board.TileSize <= 0:
		return fmt.Errorf("%w: board.tile_size must be positive", ErrInvalidConfig)
	case c.Board.Cols() < 3 || c.Board.Rows() < 3 || (c.Board.Cols()-2)*(c.Board.Rows()-2) < 2:
		return fmt.Errorf("%w: board area holds %dx%d tiles, need room for start and goal",
			ErrInvalidConfig, c.Board.Cols(), c.Board.Rows())
	case c.Generator.WallDensity < 0 || c.Generator.WallDensity >= 1:
		return fmt.Errorf("%w: generator.wall_density %.2f outside [0,1)", ErrInvalidConfig, c.Generator.WallDensity)
	case c.Generator.MaxAttempts <= 0:
		return fmt.Errorf("%w: generator.max_attempts must be positive", ErrInvalidConfig)
	case c.Movement.MoveSpeed <= 0:
		return fmt.Errorf("%w: movement.move_speed must be positive", ErrInvalidConfig)
	case c.Scores.Keep <= 0:
		return fmt.Errorf("%w: scores.keep must be positive", ErrInvalidConfig)
	}
	return nil
}

// StripSortConfig contains all configuration for the strip sorting visualizer.
type StripSortConfig struct {
	Segments  int    `yaml:"segments"`
	DelayMs   int    `yaml:"delay_ms"`
	Algorithm string `yaml:"algorithm"`
}

// Validate reports the first unusable setting.
func (c StripSortConfig) Validate() error {
	switch {
	case c.Segments < 2:
		return fmt.Errorf("%w: segments must be at least 2", ErrInvalidConfig)
	case c.DelayMs < 0:
		return fmt.Errorf("%w: delay_ms must not be negative", ErrInvalidConfig)
	}
	return nil
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score" or "none"
	MaxAt int    `yaml:"max_at"` // Streak at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	DensityIncrease float64 `yaml:"density_increase"` // Wall density added at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyRamp   DifficultyPreset = "ramp"
)

// ParseDifficultyPreset maps a CLI value to a preset. Unknown values yield "".
func ParseDifficultyPreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyRamp:
		return p
	}
	return ""
}
