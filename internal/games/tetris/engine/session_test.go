package engine

import (
	"math/rand"
	"testing"
	"time"
)

type recorder struct {
	cleared   []int
	overScore int
	overMode  Mode
	overCalls int
}

func (r *recorder) LinesCleared(n int) { r.cleared = append(r.cleared, n) }

func (r *recorder) GameOver(score int, mode Mode) {
	r.overCalls++
	r.overScore = score
	r.overMode = mode
}

func newTestSession(kinds ...Kind) (*Session, *recorder) {
	s := NewSession(DefaultConfig(), NewClassic(), NewSequenceSource(kinds...))
	rec := &recorder{}
	s.SetListener(rec)
	return s, rec
}

func TestNewSessionSpawnsPiece(t *testing.T) {
	s, _ := newTestSession(KindT)

	if s.Phase() != PhaseFalling {
		t.Fatalf("phase = %v, want falling", s.Phase())
	}
	p := s.Piece()
	if p == nil || p.Kind != KindT || p.X != 4 || p.Y != 0 {
		t.Fatalf("piece = %+v, want T at (4, 0)", p)
	}
	if s.Interval() != 500*time.Millisecond {
		t.Errorf("interval = %v, want 500ms for normal", s.Interval())
	}
}

func TestResetDifficultyIntervals(t *testing.T) {
	s, _ := newTestSession(KindO)
	tests := []struct {
		d    Difficulty
		want time.Duration
	}{
		{Easy, 600 * time.Millisecond},
		{Normal, 500 * time.Millisecond},
		{Hard, 400 * time.Millisecond},
	}
	for _, tc := range tests {
		s.Reset(tc.d)
		if s.Interval() != tc.want {
			t.Errorf("Reset(%v) interval = %v, want %v", tc.d, s.Interval(), tc.want)
		}
		if s.Difficulty() != tc.d {
			t.Errorf("Difficulty() = %v, want %v", s.Difficulty(), tc.d)
		}
	}
}

func TestIPieceFallsAndLocksOnFloor(t *testing.T) {
	s, _ := newTestSession(KindI, KindO)
	interval := s.Interval()

	for i := 0; i < 19; i++ {
		s.Tick(interval)
	}
	p := s.Piece()
	if p.Kind != KindI || p.Y != 19 || p.X != 4 {
		t.Fatalf("after 19 intervals piece = %v at (%d, %d), want I at (4, 19)", p.Kind, p.X, p.Y)
	}
	if s.Board().Filled() != 0 {
		t.Fatal("nothing should be locked yet")
	}

	s.Tick(interval)

	b := s.Board()
	for x := 0; x < Width; x++ {
		want := x >= 4 && x <= 7
		if b[19][x].Filled != want {
			t.Errorf("row 19 col %d filled = %v, want %v", x, b[19][x].Filled, want)
		}
	}
	if b.Filled() != 4 {
		t.Errorf("filled = %d, want 4", b.Filled())
	}
	if next := s.Piece(); next == nil || next.Kind != KindO || next.Y != 0 {
		t.Errorf("next piece = %+v, want fresh O", next)
	}
}

func TestBoardSnapshotIsACopy(t *testing.T) {
	s, _ := newTestSession(KindO, KindO)
	s.HardDrop()

	if got := s.Board().Filled(); got != 4 {
		t.Fatalf("Board().Filled() = %d, want 4", got)
	}
	if c := s.Board().Cell(4, 19); !c.Filled || c.Color != ShapeOf(KindO).Color {
		t.Errorf("Board().Cell(4, 19) = %+v, want locked O", c)
	}

	snap := s.Board()
	snap.Clear()
	if s.Board().Filled() != 4 {
		t.Error("clearing a snapshot changed the session board")
	}
}

func TestTickAccumulatesAndResetsTimer(t *testing.T) {
	s, _ := newTestSession(KindO)
	step := 100 * time.Millisecond

	for i := 0; i < 4; i++ {
		s.Tick(step)
	}
	if s.Piece().Y != 0 {
		t.Fatal("piece moved before the interval elapsed")
	}
	s.Tick(step)
	if s.Piece().Y != 1 {
		t.Fatalf("y = %d, want 1 after 500ms", s.Piece().Y)
	}
	// Overshoot is discarded: one long tick still moves a single row.
	s.Tick(3 * time.Second)
	if s.Piece().Y != 2 {
		t.Errorf("y = %d, want 2 after one long tick", s.Piece().Y)
	}
}

func TestOPieceCompletesBottomRow(t *testing.T) {
	s, rec := newTestSession(KindO, KindO)
	fillRow(&s.board, 19, 8, 9)
	s.board[18][0] = Cell{Filled: true}
	s.board[18][1] = Cell{Filled: true}

	// O spawns at x=4; move it to columns 8-9.
	for i := 0; i < 4; i++ {
		if !s.MoveRight() {
			t.Fatalf("MoveRight %d failed", i)
		}
	}
	if s.MoveRight() {
		t.Fatal("O should stop at the right wall")
	}
	s.HardDrop()

	if s.Score() != 100 {
		t.Errorf("score = %d, want 100", s.Score())
	}
	if s.Lines() != 1 || len(rec.cleared) != 1 || rec.cleared[0] != 1 {
		t.Errorf("lines = %d, events = %v, want one single clear", s.Lines(), rec.cleared)
	}

	b := s.Board()
	// Old row 18 (cols 0, 1 and the O's 8, 9) is now row 19.
	for x := 0; x < Width; x++ {
		want := x == 0 || x == 1 || x == 8 || x == 9
		if b[19][x].Filled != want {
			t.Errorf("row 19 col %d filled = %v, want %v", x, b[19][x].Filled, want)
		}
	}
	if b.Filled() != 4 {
		t.Errorf("filled = %d, want 4", b.Filled())
	}
}

func TestScoring(t *testing.T) {
	tests := []struct {
		name    string
		formula Formula
		lines   int
		want    int
	}{
		{"single quadratic", Quadratic, 1, 100},
		{"double quadratic", Quadratic, 2, 400},
		{"triple quadratic", Quadratic, 3, 900},
		{"tetris quadratic", Quadratic, 4, 1600},
		{"tetris linear", Linear, 4, 400},
		{"nothing", Quadratic, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sc := Scoring{Formula: tc.formula, LinePoints: 100}
			if got := sc.Points(tc.lines); got != tc.want {
				t.Errorf("Points(%d) = %d, want %d", tc.lines, got, tc.want)
			}
		})
	}
}

func TestTetrisScores1600(t *testing.T) {
	s, rec := newTestSession(KindI, KindO)
	for y := 16; y < Height; y++ {
		fillRow(&s.board, y, 0)
	}

	// Stand the I upright and slide it into column 0.
	if !s.Rotate() {
		t.Fatal("rotate failed in open space")
	}
	for s.MoveLeft() {
	}
	if p := s.Piece(); p.X != 0 {
		t.Fatalf("x = %d, want 0", p.X)
	}
	s.HardDrop()

	if s.Score() != 1600 {
		t.Errorf("score = %d, want 1600", s.Score())
	}
	if len(rec.cleared) != 1 || rec.cleared[0] != 4 {
		t.Errorf("events = %v, want [4]", rec.cleared)
	}
	if s.Board().Filled() != 0 {
		t.Errorf("board should be empty, filled = %d", s.Board().Filled())
	}
}

func TestRotateRevertsOnCollision(t *testing.T) {
	s, _ := newTestSession(KindI)
	// Horizontal I at x=4 on row 0; an upright I would need rows 0-3 at column 4.
	s.board[2][4] = Cell{Filled: true}

	before := s.Piece()
	if s.Rotate() {
		t.Fatal("rotate should fail into an occupied cell")
	}
	if !s.Piece().Matrix.Equal(before.Matrix) {
		t.Error("matrix not reverted after failed rotate")
	}
}

func TestRotateHasNoWallKick(t *testing.T) {
	s, _ := newTestSession(KindI)
	s.Rotate()
	for s.MoveRight() {
	}
	// Upright I at x=9; turning it flat would need columns 9-12.
	if s.Piece().X != 9 {
		t.Fatalf("x = %d, want 9", s.Piece().X)
	}
	if s.Rotate() {
		t.Error("rotation against the wall must fail, not kick")
	}
	if s.Piece().X != 9 {
		t.Error("piece moved during a failed rotation")
	}
}

func TestSoftDropNeverLocks(t *testing.T) {
	s, _ := newTestSession(KindO)
	moves := 0
	for s.SoftDrop() {
		moves++
	}
	if moves != 18 {
		t.Errorf("soft drops = %d, want 18", moves)
	}
	if s.Board().Filled() != 0 || s.Pieces() != 1 {
		t.Error("soft drop must not lock the piece")
	}
}

func TestGhostY(t *testing.T) {
	s, _ := newTestSession(KindO)
	fillRow(&s.board, 19)

	y, ok := s.GhostY()
	if !ok || y != 17 {
		t.Errorf("GhostY = %d, %v; want 17, true", y, ok)
	}
}

func TestSpawnCollisionEndsGame(t *testing.T) {
	s, rec := newTestSession(KindO, KindO)
	s.score = 300
	s.board[2][4] = Cell{Filled: true}

	// Lock the current O on top of the block; the next spawn is blocked.
	s.HardDrop()

	if !s.Over() || s.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, want game over", s.Phase())
	}
	if s.Piece() != nil {
		t.Error("blocked spawn must not place a piece")
	}
	if rec.overCalls != 1 || rec.overScore != 300 || rec.overMode != ModeClassic {
		t.Errorf("game over event = %d calls, score %d, mode %v", rec.overCalls, rec.overScore, rec.overMode)
	}
}

func TestLockAboveBoardEndsGame(t *testing.T) {
	s, rec := newTestSession(KindI)
	s.Rotate()
	s.piece.Y = -3
	s.board[1][4] = Cell{Filled: true}

	// Upright I at rows -3..0 sits on the block at row 1 and cannot fall.
	s.Advance()

	if !s.Over() || rec.overCalls != 1 {
		t.Fatalf("phase = %v, events = %d; want game over", s.Phase(), rec.overCalls)
	}
	if s.board[0][4].Filled {
		t.Error("above-board lock must not commit any cell")
	}
}

func TestCommandsIgnoredAfterGameOver(t *testing.T) {
	s, rec := newTestSession(KindO)
	s.board[2][4] = Cell{Filled: true}
	s.HardDrop()
	if !s.Over() {
		t.Fatal("expected game over")
	}
	board := s.Board()

	cmds := map[string]func() bool{
		"MoveLeft":  s.MoveLeft,
		"MoveRight": s.MoveRight,
		"SoftDrop":  s.SoftDrop,
		"Rotate":    s.Rotate,
		"HardDrop":  s.HardDrop,
		"Advance":   s.Advance,
	}
	for name, cmd := range cmds {
		if cmd() {
			t.Errorf("%s succeeded after game over", name)
		}
	}
	s.Tick(time.Hour)

	if s.Board() != board || rec.overCalls != 1 {
		t.Error("game over state changed")
	}
}

func TestScoreNeverDecreases(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := NewSession(DefaultConfig(), NewSpeed(DefaultSpeedParams()), NewRandomSource(rng))

	last := 0
	for i := 0; i < 5000 && !s.Over(); i++ {
		switch rng.Intn(5) {
		case 0:
			s.MoveLeft()
		case 1:
			s.MoveRight()
		case 2:
			s.Rotate()
		case 3:
			s.HardDrop()
		}
		s.Tick(50 * time.Millisecond)
		if s.Score() < last {
			t.Fatalf("score dropped from %d to %d", last, s.Score())
		}
		last = s.Score()
		if s.Interval() < s.Policy().Floor() {
			t.Fatalf("interval %v below floor %v", s.Interval(), s.Policy().Floor())
		}
	}
	if !s.Over() {
		t.Log("random play survived 5000 ticks")
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	run := func() (int, Board) {
		rng := rand.New(rand.NewSource(99))
		s := NewSession(DefaultConfig(), nil, NewRandomSource(rng))
		for i := 0; i < 300; i++ {
			if i%3 == 0 {
				s.MoveLeft()
			}
			if i%7 == 0 {
				s.Rotate()
			}
			s.Tick(100 * time.Millisecond)
		}
		return s.Score(), s.Board()
	}

	s1, b1 := run()
	s2, b2 := run()
	if s1 != s2 || b1 != b2 {
		t.Error("two runs with the same seed diverged")
	}
}
