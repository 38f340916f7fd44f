package engine

import "github.com/vovakirdan/tui-tetris/internal/core"

// Board dimensions.
const (
	Width  = 10
	Height = 20
)

// Cell is one board square. The zero value is empty.
type Cell struct {
	Filled bool
	Color  core.Color
}

// Board is the grid of locked cells, row 0 at the top.
// It is a value type: assigning a Board copies it.
type Board [Height][Width]Cell

// LockResult reports the outcome of Board.Lock.
type LockResult struct {
	// AboveBoard is set when part of the piece was above row 0.
	// Nothing is written in that case and the game is over.
	AboveBoard bool
}

// Collides reports whether the piece, offset by (dx, dy), would hit a wall,
// the floor or a locked cell. Cells above row 0 only collide with the walls.
func (b *Board) Collides(p *Piece, dx, dy int) bool {
	for r, row := range p.Matrix {
		for c, filled := range row {
			if !filled {
				continue
			}
			x := p.X + c + dx
			y := p.Y + r + dy
			if x < 0 || x >= Width || y >= Height {
				return true
			}
			if y >= 0 && b[y][x].Filled {
				return true
			}
		}
	}
	return false
}

// Lock writes the piece into the board. If any block is above the board the
// lock is rejected as a whole.
func (b *Board) Lock(p *Piece) LockResult {
	blocks := p.Blocks()
	for _, pt := range blocks {
		if pt.Y < 0 {
			return LockResult{AboveBoard: true}
		}
	}
	for _, pt := range blocks {
		b[pt.Y][pt.X] = Cell{Filled: true, Color: p.Color}
	}
	return LockResult{}
}

// ClearLines removes full rows and returns how many were removed.
// Rows are scanned bottom-up; after a clear the same index is checked again
// because the row above has moved into it.
func (b *Board) ClearLines() int {
	cleared := 0
	y := Height - 1
	for y >= 0 {
		if !b.rowFull(y) {
			y--
			continue
		}
		cleared++
		for i := y; i > 0; i-- {
			b[i] = b[i-1]
		}
		b[0] = [Width]Cell{}
	}
	return cleared
}

func (b *Board) rowFull(y int) bool {
	for x := 0; x < Width; x++ {
		if !b[y][x].Filled {
			return false
		}
	}
	return true
}

// Cell returns the cell at (x, y), or an empty cell when out of range.
func (b Board) Cell(x, y int) Cell {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return Cell{}
	}
	return b[y][x]
}

// Filled counts occupied cells.
func (b Board) Filled() int {
	n := 0
	for y := range b {
		for x := range b[y] {
			if b[y][x].Filled {
				n++
			}
		}
	}
	return n
}

// Clear empties the board.
func (b *Board) Clear() {
	*b = Board{}
}
