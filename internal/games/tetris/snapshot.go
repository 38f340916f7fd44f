package tetris

import "github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"

// Snapshot contains the observable game state for determinism tests and
// debugging. Uses primitive types only for stable comparison.
type Snapshot struct {
	Tick     uint64
	Mode     string
	Score    int
	Lines    int
	Pieces   int
	Interval int64 // fall interval in milliseconds
	Phase    string

	// Live piece, Kind is empty when there is none.
	PieceKind string
	PieceX    int
	PieceY    int

	// Locked cells, row-major; 0 = empty, otherwise the color tag.
	Board []int

	// Opponent state in battle mode.
	CPUScore  int
	CPUPieces int
	CPUBoard  []int
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	s := g.session
	snap := Snapshot{
		Tick:     g.tick,
		Mode:     g.mode.String(),
		Score:    s.Score(),
		Lines:    s.Lines(),
		Pieces:   s.Pieces(),
		Interval: s.Interval().Milliseconds(),
		Phase:    s.Phase().String(),
		Board:    flattenBoard(s.Board()),
	}
	if p := s.Piece(); p != nil {
		snap.PieceKind = p.Kind.String()
		snap.PieceX = p.X
		snap.PieceY = p.Y
	}
	if opp := g.Opponent(); opp != nil {
		snap.CPUScore = opp.Score()
		snap.CPUPieces = opp.Pieces()
		snap.CPUBoard = flattenBoard(opp.Board())
	}
	return snap
}

func flattenBoard(b engine.Board) []int {
	out := make([]int, 0, engine.Width*engine.Height)
	for y := 0; y < engine.Height; y++ {
		for x := 0; x < engine.Width; x++ {
			if b[y][x].Filled {
				out = append(out, int(b[y][x].Color))
			} else {
				out = append(out, 0)
			}
		}
	}
	return out
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Score)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lines)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Pieces)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Interval)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PieceX)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PieceY)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.CPUScore)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.CPUPieces) //#nosec G115 -- hash computation

	for _, r := range snap.Mode + snap.Phase + snap.PieceKind {
		h = h*31 + uint64(r) //#nosec G115 -- hash computation
	}
	for _, v := range snap.Board {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.CPUBoard {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	return h
}
