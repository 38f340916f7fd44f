package engine

import (
	"math/rand"
	"time"
)

// AIParams tune the battle opponent.
type AIParams struct {
	Interval     time.Duration // time between decisions, e.g. 200ms
	MoveChance   float64       // chance of a sideways move per decision
	RotateChance float64       // chance of a rotation per decision
}

// DefaultAIParams returns 200ms, 30% move and 20% rotate.
func DefaultAIParams() AIParams {
	return AIParams{
		Interval:     200 * time.Millisecond,
		MoveChance:   0.3,
		RotateChance: 0.2,
	}
}

// AI plays a session with random moves. Each decision it may shift left or
// right, may rotate, and then always steps the piece down. It never hard-drops.
type AI struct {
	AIParams
	rng       *rand.Rand
	timer     time.Duration
	decisions int
}

// NewAI creates an opponent driven by rng.
func NewAI(p AIParams, rng *rand.Rand) *AI {
	return &AI{AIParams: p, rng: rng}
}

// Tick accumulates time and makes a decision each time the interval is reached.
func (a *AI) Tick(s *Session, elapsed time.Duration) {
	a.timer += elapsed
	if a.timer < a.Interval {
		return
	}
	a.timer = 0
	a.Decide(s)
}

// Decide makes one move on s.
func (a *AI) Decide(s *Session) {
	if s.Over() {
		return
	}
	a.decisions++
	if a.rng.Float64() < a.MoveChance {
		if a.rng.Intn(2) == 0 {
			s.MoveLeft()
		} else {
			s.MoveRight()
		}
	}
	if a.rng.Float64() < a.RotateChance {
		s.Rotate()
	}
	s.Advance()
}

// Decisions returns how many decisions have been made since the last reset.
func (a *AI) Decisions() int { return a.decisions }

func (a *AI) reset() {
	a.timer = 0
	a.decisions = 0
}

// Battle is the policy of the player's session in a battle. It owns the
// opponent's session and advances it through the AI on every player tick.
// The player's own interval stays fixed as in Classic.
type Battle struct {
	Classic
	opponent *Session
	ai       *AI
}

// NewBattle creates a battle policy. The opponent plays classic rules on its
// own board with shapes and decisions drawn from rng.
func NewBattle(cfg Config, p AIParams, rng *rand.Rand) *Battle {
	return &Battle{
		opponent: NewSession(cfg, NewClassic(), NewRandomSource(rng)),
		ai:       NewAI(p, rng),
	}
}

func (b *Battle) Mode() Mode { return ModeBattle }

func (b *Battle) Reset(d Difficulty, base time.Duration) time.Duration {
	b.opponent.Reset(d)
	b.ai.reset()
	return b.Classic.Reset(d, base)
}

func (b *Battle) Tick(elapsed time.Duration) {
	b.ai.Tick(b.opponent, elapsed)
}

// Opponent returns the CPU's session.
func (b *Battle) Opponent() *Session { return b.opponent }

// AI returns the opponent's controller.
func (b *Battle) AI() *AI { return b.ai }

// Winner decides a finished battle: the side that topped out loses.
// ok is false while both boards are still alive.
func Winner(player, opponent *Session) (playerWon, ok bool) {
	switch {
	case player.Over():
		return false, true
	case opponent.Over():
		return true, true
	default:
		return false, false
	}
}
