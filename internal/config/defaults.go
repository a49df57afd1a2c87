package config

import (
	_ "embed"
)

//go:embed defaults/oilbox.yaml
var defaultOilboxYAML []byte

//go:embed defaults/stripsort.yaml
var defaultStripSortYAML []byte

// DefaultOilboxConfig returns the default Oilbox configuration.
func DefaultOilboxConfig() OilboxConfig {
	return OilboxConfig{
		Board: OilboxBoard{
			TileSize:   32,
			AreaWidth:  1200,
			AreaHeight: 675,
		},
		Generator: OilboxGenerator{
			WallDensity: 0.15,
			MaxAttempts: 100,
		},
		Movement: OilboxMovement{
			MoveSpeed: 8,
		},
		Timing: OilboxTiming{
			ClearDelayMs: 1500,
			HintWindowMs: 500,
		},
		Scores: OilboxScores{
			Keep: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 20,
			},
			Scaling: ScalingConfig{
				DensityIncrease: 0.10,
			},
		},
	}
}

// DefaultStripSortConfig returns the default strip sorter configuration.
func DefaultStripSortConfig() StripSortConfig {
	return StripSortConfig{
		Segments:  24,
		DelayMs:   50,
		Algorithm: "bubble",
	}
}
