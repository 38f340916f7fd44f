package engine

import "time"

// Phase is the session state machine position.
type Phase int

const (
	PhaseSpawning Phase = iota
	PhaseFalling
	PhaseLocking
	PhaseLineClearing
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseSpawning:
		return "spawning"
	case PhaseFalling:
		return "falling"
	case PhaseLocking:
		return "locking"
	case PhaseLineClearing:
		return "line_clearing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Listener receives session events. Calls happen synchronously inside
// Tick, Advance and the commands.
type Listener interface {
	LinesCleared(count int)
	GameOver(finalScore int, mode Mode)
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	OnLinesCleared func(count int)
	OnGameOver     func(finalScore int, mode Mode)
}

func (f ListenerFuncs) LinesCleared(count int) {
	if f.OnLinesCleared != nil {
		f.OnLinesCleared(count)
	}
}

func (f ListenerFuncs) GameOver(finalScore int, mode Mode) {
	if f.OnGameOver != nil {
		f.OnGameOver(finalScore, mode)
	}
}

// Session is one game on one board.
type Session struct {
	cfg      Config
	policy   Policy
	source   ShapeSource
	listener Listener

	board      Board
	piece      *Piece
	phase      Phase
	difficulty Difficulty

	score    int
	lines    int
	pieces   int
	timer    time.Duration
	interval time.Duration
}

// NewSession creates a session and starts it at cfg.Difficulty.
// A nil policy means Classic.
func NewSession(cfg Config, policy Policy, src ShapeSource) *Session {
	if policy == nil {
		policy = NewClassic()
	}
	s := &Session{
		cfg:    cfg,
		policy: policy,
		source: src,
	}
	s.Reset(cfg.Difficulty)
	return s
}

// SetListener installs the event listener. Pass nil to remove it.
func (s *Session) SetListener(l Listener) {
	s.listener = l
}

// Reset starts a new game at the given difficulty.
func (s *Session) Reset(d Difficulty) {
	s.board.Clear()
	s.piece = nil
	s.difficulty = d
	s.score = 0
	s.lines = 0
	s.pieces = 0
	s.timer = 0
	s.interval = s.policy.Reset(d, s.cfg.Timing.Interval(d))
	s.interval = max(s.interval, s.policy.Floor())
	s.phase = PhaseSpawning
	s.spawn()
}

// Tick advances the fall timer. Once it reaches the fall interval the timer
// restarts from zero and the piece drops one row or locks.
func (s *Session) Tick(elapsed time.Duration) {
	if s.phase != PhaseFalling {
		return
	}
	s.policy.Tick(elapsed)
	s.timer += elapsed
	if s.timer >= s.interval {
		s.timer = 0
		s.Advance()
	}
}

// Advance performs one gravity step: move down a row, or lock when blocked.
// Returns true if the piece moved.
func (s *Session) Advance() bool {
	if s.phase != PhaseFalling {
		return false
	}
	if !s.board.Collides(s.piece, 0, 1) {
		s.piece.Move(0, 1)
		return true
	}
	s.lock()
	return false
}

// MoveLeft shifts the piece one column left if there is room.
func (s *Session) MoveLeft() bool { return s.shift(-1, 0) }

// MoveRight shifts the piece one column right if there is room.
func (s *Session) MoveRight() bool { return s.shift(1, 0) }

// SoftDrop moves the piece down one row if there is room. It never locks
// and does not touch the fall timer.
func (s *Session) SoftDrop() bool { return s.shift(0, 1) }

func (s *Session) shift(dx, dy int) bool {
	if s.phase != PhaseFalling || s.board.Collides(s.piece, dx, dy) {
		return false
	}
	s.piece.Move(dx, dy)
	return true
}

// Rotate turns the piece clockwise, reverting if the result collides.
func (s *Session) Rotate() bool {
	if s.phase != PhaseFalling {
		return false
	}
	prev := s.piece.Matrix
	s.piece.Rotate()
	if s.board.Collides(s.piece, 0, 0) {
		s.piece.Matrix = prev
		return false
	}
	return true
}

// HardDrop drops the piece as far as it goes and locks it at once.
func (s *Session) HardDrop() bool {
	if s.phase != PhaseFalling {
		return false
	}
	for !s.board.Collides(s.piece, 0, 1) {
		s.piece.Move(0, 1)
	}
	s.lock()
	return true
}

func (s *Session) lock() {
	s.phase = PhaseLocking
	if s.board.Lock(s.piece).AboveBoard {
		s.end()
		return
	}
	s.piece = nil

	s.phase = PhaseLineClearing
	if n := s.board.ClearLines(); n > 0 {
		s.score += s.cfg.Scoring.Points(n)
		s.lines += n
		s.interval = max(s.policy.AfterClear(n, s.interval), s.policy.Floor())
		if s.listener != nil {
			s.listener.LinesCleared(n)
		}
	}

	s.phase = PhaseSpawning
	s.spawn()
}

func (s *Session) spawn() {
	p := Spawn(s.source.Next(), Width)
	if s.board.Collides(p, 0, 0) {
		s.end()
		return
	}
	s.piece = p
	s.pieces++
	s.phase = PhaseFalling
}

func (s *Session) end() {
	s.phase = PhaseGameOver
	if s.listener != nil {
		s.listener.GameOver(s.score, s.policy.Mode())
	}
}

// Board returns a copy of the locked cells.
func (s *Session) Board() Board { return s.board }

// Piece returns a copy of the live piece, or nil between lock and spawn and
// after a spawn collision.
func (s *Session) Piece() *Piece {
	if s.piece == nil {
		return nil
	}
	return s.piece.Clone()
}

// GhostY returns the row the live piece would land on if hard-dropped.
func (s *Session) GhostY() (int, bool) {
	if s.piece == nil || s.phase != PhaseFalling {
		return 0, false
	}
	ghost := s.piece.Clone()
	for !s.board.Collides(ghost, 0, 1) {
		ghost.Move(0, 1)
	}
	return ghost.Y, true
}

// Score returns the points earned so far.
func (s *Session) Score() int { return s.score }

// Lines returns the number of lines cleared so far.
func (s *Session) Lines() int { return s.lines }

// Pieces returns how many pieces have spawned.
func (s *Session) Pieces() int { return s.pieces }

// Interval returns the current fall interval.
func (s *Session) Interval() time.Duration { return s.interval }

// Phase returns the state machine position.
func (s *Session) Phase() Phase { return s.phase }

// Over reports whether the game has ended.
func (s *Session) Over() bool { return s.phase == PhaseGameOver }

// Mode returns the policy's mode.
func (s *Session) Mode() Mode { return s.policy.Mode() }

// Policy returns the mode policy.
func (s *Session) Policy() Policy { return s.policy }

// Difficulty returns the difficulty of the current game.
func (s *Session) Difficulty() Difficulty { return s.difficulty }
