package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the built-in engine configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Timing: TimingConfig{
			EasyMS:   600,
			NormalMS: 500,
			HardMS:   400,
		},
		Scoring: ScoringConfig{
			Formula:    "quadratic",
			LinePoints: 100,
		},
		Speed: SpeedConfig{
			Decay:     0.95,
			FloorMS:   100,
			Threshold: 5,
		},
		Battle: BattleConfig{
			AIIntervalMS: 200,
			MoveChance:   0.3,
			RotateChance: 0.2,
		},
	}
}

// DefaultYAML returns the embedded default tetris.yaml.
func DefaultYAML() []byte {
	return defaultTetrisYAML
}
