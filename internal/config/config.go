// Package config provides YAML-based engine configuration loading and the
// player's persisted settings.
package config

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// TetrisConfig contains all tunable engine parameters.
type TetrisConfig struct {
	Timing  TimingConfig  `yaml:"timing"`
	Scoring ScoringConfig `yaml:"scoring"`
	Speed   SpeedConfig   `yaml:"speed"`
	Battle  BattleConfig  `yaml:"battle"`
}

// TimingConfig maps each difficulty to a fall interval.
type TimingConfig struct {
	EasyMS   int `yaml:"easy_ms"`
	NormalMS int `yaml:"normal_ms"`
	HardMS   int `yaml:"hard_ms"`
}

// ScoringConfig defines points per line clear.
type ScoringConfig struct {
	Formula    string `yaml:"formula"` // "quadratic" or "linear"
	LinePoints int    `yaml:"line_points"`
}

// SpeedConfig defines the Speed mode acceleration.
type SpeedConfig struct {
	Decay     float64 `yaml:"decay"`
	FloorMS   int     `yaml:"floor_ms"`
	Threshold int     `yaml:"threshold"`
}

// BattleConfig defines the CPU opponent in Battle mode.
type BattleConfig struct {
	AIIntervalMS int     `yaml:"ai_interval_ms"`
	MoveChance   float64 `yaml:"move_chance"`
	RotateChance float64 `yaml:"rotate_chance"`
}

// Interval returns the fall interval for a preset. Unknown presets use normal.
func (t TimingConfig) Interval(p DifficultyPreset) time.Duration {
	switch p {
	case DifficultyEasy:
		return ms(t.EasyMS)
	case DifficultyHard:
		return ms(t.HardMS)
	default:
		return ms(t.NormalMS)
	}
}

// Floor returns the Speed mode minimum interval.
func (s SpeedConfig) Floor() time.Duration { return ms(s.FloorMS) }

// AIInterval returns the time between CPU decisions.
func (b BattleConfig) AIInterval() time.Duration { return ms(b.AIIntervalMS) }

// Normalize replaces missing or out-of-range values with defaults so that a
// partial YAML file still yields a playable configuration.
func (c *TetrisConfig) Normalize() {
	def := DefaultTetrisConfig()

	if c.Timing.EasyMS <= 0 {
		c.Timing.EasyMS = def.Timing.EasyMS
	}
	if c.Timing.NormalMS <= 0 {
		c.Timing.NormalMS = def.Timing.NormalMS
	}
	if c.Timing.HardMS <= 0 {
		c.Timing.HardMS = def.Timing.HardMS
	}

	if c.Scoring.Formula != "quadratic" && c.Scoring.Formula != "linear" {
		c.Scoring.Formula = def.Scoring.Formula
	}
	if c.Scoring.LinePoints <= 0 {
		c.Scoring.LinePoints = def.Scoring.LinePoints
	}

	if !(c.Speed.Decay > 0 && c.Speed.Decay <= 1) {
		c.Speed.Decay = def.Speed.Decay
	}
	if c.Speed.FloorMS <= 0 {
		c.Speed.FloorMS = def.Speed.FloorMS
	}
	if c.Speed.Threshold <= 0 {
		c.Speed.Threshold = def.Speed.Threshold
	}

	if c.Battle.AIIntervalMS <= 0 {
		c.Battle.AIIntervalMS = def.Battle.AIIntervalMS
	}
	if math.IsNaN(c.Battle.MoveChance) {
		c.Battle.MoveChance = def.Battle.MoveChance
	}
	if math.IsNaN(c.Battle.RotateChance) {
		c.Battle.RotateChance = def.Battle.RotateChance
	}
	c.Battle.MoveChance = core.ClampF(c.Battle.MoveChance, 0, 1)
	c.Battle.RotateChance = core.ClampF(c.Battle.RotateChance, 0, 1)
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
