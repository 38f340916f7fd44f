package engine

import (
	"fmt"
	"time"
)

// Mode identifies a rule variant.
type Mode int

const (
	ModeClassic Mode = iota
	ModeSpeed
	ModeBattle
)

// String returns the mode id used for registry ids and stored scores.
func (m Mode) String() string {
	switch m {
	case ModeSpeed:
		return "speed"
	case ModeBattle:
		return "battle"
	default:
		return "classic"
	}
}

// Title returns the display name.
func (m Mode) Title() string {
	switch m {
	case ModeSpeed:
		return "Speed"
	case ModeBattle:
		return "Battle"
	default:
		return "Classic"
	}
}

// ParseMode converts a mode id back into a Mode.
func ParseMode(s string) (Mode, error) {
	for _, m := range []Mode{ModeClassic, ModeSpeed, ModeBattle} {
		if m.String() == s {
			return m, nil
		}
	}
	return ModeClassic, fmt.Errorf("engine: unknown mode %q", s)
}

// Policy holds the mode-specific rules. The Session calls it at fixed hook
// points instead of being subclassed per mode.
type Policy interface {
	Mode() Mode
	// Reset prepares the policy for a new game and returns the starting
	// fall interval, given the difficulty's base interval.
	Reset(d Difficulty, base time.Duration) time.Duration
	// Tick is called with the elapsed time of every session tick.
	Tick(elapsed time.Duration)
	// AfterClear returns the new fall interval after n > 0 lines were cleared.
	AfterClear(n int, interval time.Duration) time.Duration
	// Floor is the smallest fall interval the mode allows.
	Floor() time.Duration
}

// Classic keeps the difficulty's interval for the whole game.
type Classic struct {
	base time.Duration
}

// NewClassic creates the classic policy.
func NewClassic() *Classic {
	return &Classic{}
}

func (c *Classic) Mode() Mode { return ModeClassic }

func (c *Classic) Reset(_ Difficulty, base time.Duration) time.Duration {
	c.base = base
	return base
}

func (c *Classic) Tick(time.Duration) {}

func (c *Classic) AfterClear(_ int, interval time.Duration) time.Duration {
	return interval
}

func (c *Classic) Floor() time.Duration { return c.base }

// SpeedParams tune the Speed policy.
type SpeedParams struct {
	Decay     float64       // interval multiplier per step, e.g. 0.95
	Min       time.Duration // floor, e.g. 100ms
	Threshold int           // lines per step, e.g. 5
}

// DefaultSpeedParams returns 0.95, 100ms and 5 lines.
func DefaultSpeedParams() SpeedParams {
	return SpeedParams{Decay: 0.95, Min: 100 * time.Millisecond, Threshold: 5}
}

// Speed shortens the fall interval every Threshold cleared lines.
// Lines beyond the threshold in the same step are discarded with the counter.
type Speed struct {
	SpeedParams
	counter int
}

// NewSpeed creates the speed policy.
func NewSpeed(p SpeedParams) *Speed {
	if p.Threshold <= 0 {
		p.Threshold = 1
	}
	return &Speed{SpeedParams: p}
}

func (s *Speed) Mode() Mode { return ModeSpeed }

func (s *Speed) Reset(_ Difficulty, base time.Duration) time.Duration {
	s.counter = 0
	return max(base, s.Min)
}

func (s *Speed) Tick(time.Duration) {}

func (s *Speed) AfterClear(n int, interval time.Duration) time.Duration {
	s.counter += n
	if s.counter < s.Threshold {
		return interval
	}
	s.counter = 0
	next := time.Duration(float64(interval) * s.Decay)
	return max(next, s.Min)
}

func (s *Speed) Floor() time.Duration { return s.Min }

// Pending returns the lines counted toward the next speed-up.
func (s *Speed) Pending() int { return s.counter }
