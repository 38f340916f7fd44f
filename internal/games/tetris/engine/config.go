package engine

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty selects the starting fall interval.
type Difficulty int

const (
	Easy Difficulty = iota
	Normal
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Hard:
		return "hard"
	default:
		return "normal"
	}
}

// ParseDifficulty accepts "easy", "normal" or "hard" in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "normal", "":
		return Normal, nil
	case "hard":
		return Hard, nil
	}
	return Normal, fmt.Errorf("engine: unknown difficulty %q", s)
}

// Timing maps each difficulty to a fall interval.
type Timing struct {
	Easy   time.Duration
	Normal time.Duration
	Hard   time.Duration
}

// Interval returns the fall interval for d.
func (t Timing) Interval(d Difficulty) time.Duration {
	switch d {
	case Easy:
		return t.Easy
	case Hard:
		return t.Hard
	default:
		return t.Normal
	}
}

// Formula selects how cleared lines turn into points.
type Formula int

const (
	// Quadratic awards base·n² for n lines: 100, 400, 900, 1600.
	Quadratic Formula = iota
	// Linear awards base·n.
	Linear
)

// ParseFormula accepts "quadratic" or "linear".
func ParseFormula(s string) (Formula, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quadratic", "":
		return Quadratic, nil
	case "linear":
		return Linear, nil
	}
	return Quadratic, fmt.Errorf("engine: unknown scoring formula %q", s)
}

// Scoring computes points for a clear.
type Scoring struct {
	Formula    Formula
	LinePoints int
}

// Points returns the score for clearing n lines with one lock.
func (s Scoring) Points(n int) int {
	if n <= 0 {
		return 0
	}
	if s.Formula == Linear {
		return s.LinePoints * n
	}
	return s.LinePoints * n * n
}

// Config is the immutable rule set a Session is built with.
type Config struct {
	Timing     Timing
	Scoring    Scoring
	Difficulty Difficulty
}

// DefaultConfig returns the stock rules: 600/500/400 ms and 100·n² scoring.
func DefaultConfig() Config {
	return Config{
		Timing: Timing{
			Easy:   600 * time.Millisecond,
			Normal: 500 * time.Millisecond,
			Hard:   400 * time.Millisecond,
		},
		Scoring:    Scoring{Formula: Quadratic, LinePoints: 100},
		Difficulty: Normal,
	}
}
