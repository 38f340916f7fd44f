package engine

import "github.com/vovakirdan/tui-tetris/internal/core"

// Point is a board coordinate. Y grows downward; negative Y is above the board.
type Point struct {
	X, Y int
}

// Piece is a shape placed on the board. It never validates its own moves;
// the Board and Session decide what is legal.
type Piece struct {
	Kind   Kind
	X, Y   int
	Matrix Matrix
	Color  core.Color
}

// Spawn places a copy of shape at the top of a board of the given width.
func Spawn(shape Shape, boardWidth int) *Piece {
	return &Piece{
		Kind:   shape.Kind,
		X:      boardWidth/2 - 1,
		Y:      0,
		Matrix: shape.Matrix.Clone(),
		Color:  shape.Color,
	}
}

// Move translates the piece.
func (p *Piece) Move(dx, dy int) {
	p.X += dx
	p.Y += dy
}

// Rotate turns the matrix 90° clockwise around its top-left corner.
func (p *Piece) Rotate() {
	p.Matrix = p.Matrix.Rotated()
}

// Clone returns an independent copy.
func (p *Piece) Clone() *Piece {
	c := *p
	c.Matrix = p.Matrix.Clone()
	return &c
}

// Blocks returns the absolute coordinates of the occupied cells.
func (p *Piece) Blocks() []Point {
	pts := make([]Point, 0, 4)
	for r, row := range p.Matrix {
		for c, filled := range row {
			if filled {
				pts = append(pts, Point{X: p.X + c, Y: p.Y + r})
			}
		}
	}
	return pts
}
