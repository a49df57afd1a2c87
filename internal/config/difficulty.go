package config

import "math"

// DifficultyManager scales game parameters with the player's progress.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0, 1),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty level (0.0 to 1.0) for the given score.
func (d *DifficultyManager) Level(score int) float64 {
	if !d.IsEnabled() || d.cfg.Progression.Type != "score" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}
	progress := clampF(float64(score)/maxAt, 0, 1)

	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// WallDensity returns the maze wall density for the given streak.
// Disabled progression always yields the base density.
func (d *DifficultyManager) WallDensity(base float64, streak int) float64 {
	if !d.IsEnabled() {
		return base
	}
	density := base + d.Level(streak)*d.cfg.Scaling.DensityIncrease
	// Past this point most boards are unsolvable and the generator
	// falls back to a broken maze.
	return clampF(density, 0, 0.45)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
