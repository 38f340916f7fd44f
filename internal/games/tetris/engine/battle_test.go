package engine

import (
	"math/rand"
	"testing"
	"time"
)

func TestAIMovesAndFalls(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := NewSession(DefaultConfig(), NewClassic(), NewRandomSource(rng))
	ai := NewAI(DefaultAIParams(), rng)

	movedSideways := false
	maxY := 0
	for i := 0; i < 100 && !s.Over(); i++ {
		ai.Decide(s)
		if p := s.Piece(); p != nil {
			if p.X != 4 {
				movedSideways = true
			}
			maxY = max(maxY, p.Y)
		}
	}
	if !movedSideways {
		t.Error("AI never moved a piece sideways")
	}
	if maxY == 0 && s.Pieces() < 2 {
		t.Error("AI never advanced a piece")
	}
	if ai.Decisions() == 0 {
		t.Error("no decisions recorded")
	}
}

func TestAITickWaitsForInterval(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	s := NewSession(DefaultConfig(), NewClassic(), NewSequenceSource(KindO))
	ai := NewAI(DefaultAIParams(), rng)

	ai.Tick(s, 150*time.Millisecond)
	if ai.Decisions() != 0 {
		t.Fatal("decided before the interval")
	}
	ai.Tick(s, 50*time.Millisecond)
	if ai.Decisions() != 1 {
		t.Fatalf("decisions = %d, want 1", ai.Decisions())
	}
	if s.Piece().Y != 1 {
		t.Errorf("y = %d, want 1: every decision steps down", s.Piece().Y)
	}
}

func TestAIIgnoresFinishedSession(t *testing.T) {
	s := NewSession(DefaultConfig(), NewClassic(), NewSequenceSource(KindO))
	s.board[2][4] = Cell{Filled: true}
	s.HardDrop()

	ai := NewAI(DefaultAIParams(), rand.New(rand.NewSource(1)))
	ai.Decide(s)
	if ai.Decisions() != 0 {
		t.Error("AI acted on a finished session")
	}
}

func TestBattleDrivesOpponent(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	b := NewBattle(DefaultConfig(), DefaultAIParams(), rng)
	player := NewSession(DefaultConfig(), b, NewRandomSource(rng))

	if player.Mode() != ModeBattle {
		t.Fatalf("mode = %v, want battle", player.Mode())
	}
	if player.Interval() != 500*time.Millisecond {
		t.Errorf("player interval = %v, want classic 500ms", player.Interval())
	}

	for i := 0; i < 10; i++ {
		player.Tick(100 * time.Millisecond)
	}
	if b.AI().Decisions() != 5 {
		t.Errorf("decisions = %d, want 5 after 1s", b.AI().Decisions())
	}

	player.Reset(Normal)
	if b.AI().Decisions() != 0 || b.Opponent().Pieces() != 1 {
		t.Error("reset did not restart the opponent")
	}
}

func TestWinner(t *testing.T) {
	over := func() *Session {
		s := NewSession(DefaultConfig(), nil, NewSequenceSource(KindO))
		s.board[2][4] = Cell{Filled: true}
		s.HardDrop()
		return s
	}
	alive := func() *Session {
		return NewSession(DefaultConfig(), nil, NewSequenceSource(KindO))
	}

	tests := []struct {
		name            string
		player, opp     *Session
		wantWon, wantOK bool
	}{
		{"both alive", alive(), alive(), false, false},
		{"player topped out", over(), alive(), false, true},
		{"opponent topped out", alive(), over(), true, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			won, ok := Winner(tc.player, tc.opp)
			if won != tc.wantWon || ok != tc.wantOK {
				t.Errorf("Winner = %v, %v; want %v, %v", won, ok, tc.wantWon, tc.wantOK)
			}
		})
	}
}
