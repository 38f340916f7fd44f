// Package engine implements the falling-block rules: the shape catalog,
// pieces, the board, the session state machine and the mode policies.
//
// Nothing here knows about terminals, timers or files. A Session is driven by
// Tick and command calls from a single goroutine and reports what happened
// through a Listener. All randomness comes from an injected *rand.Rand.
package engine

import (
	"math/rand"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Kind names one of the seven shapes.
type Kind int

const (
	KindI Kind = iota
	KindO
	KindS
	KindZ
	KindL
	KindJ
	KindT
)

func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindO:
		return "O"
	case KindS:
		return "S"
	case KindZ:
		return "Z"
	case KindL:
		return "L"
	case KindJ:
		return "J"
	case KindT:
		return "T"
	default:
		return "?"
	}
}

// Matrix is a row-major occupancy grid.
type Matrix [][]bool

// Rows returns the number of rows.
func (m Matrix) Rows() int { return len(m) }

// Cols returns the number of columns.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Clone returns a deep copy.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for r := range m {
		out[r] = append([]bool(nil), m[r]...)
	}
	return out
}

// Equal reports whether both matrices have the same shape and cells.
func (m Matrix) Equal(o Matrix) bool {
	if m.Rows() != o.Rows() || m.Cols() != o.Cols() {
		return false
	}
	for r := range m {
		for c := range m[r] {
			if m[r][c] != o[r][c] {
				return false
			}
		}
	}
	return true
}

// Rotated returns the matrix turned 90° clockwise: new[c][rows-1-r] = old[r][c].
// An R×C matrix becomes C×R. The rotation pivots on the top-left corner.
func (m Matrix) Rotated() Matrix {
	rows, cols := m.Rows(), m.Cols()
	out := make(Matrix, cols)
	for c := range out {
		out[c] = make([]bool, rows)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out[c][rows-1-r] = m[r][c]
		}
	}
	return out
}

// String renders the matrix as 0/1 rows, e.g. "111|010".
func (m Matrix) String() string {
	b := make([]byte, 0, m.Rows()*(m.Cols()+1))
	for r, row := range m {
		if r > 0 {
			b = append(b, '|')
		}
		for _, v := range row {
			if v {
				b = append(b, '1')
			} else {
				b = append(b, '0')
			}
		}
	}
	return string(b)
}

// Shape is an immutable template: a kind, its occupancy matrix and color tag.
type Shape struct {
	Kind   Kind
	Matrix Matrix
	Color  core.Color
}

func parseMatrix(rows ...string) Matrix {
	m := make(Matrix, len(rows))
	for r, row := range rows {
		m[r] = make([]bool, len(row))
		for c, ch := range row {
			m[r][c] = ch == '1'
		}
	}
	return m
}

var catalog = [...]Shape{
	{Kind: KindI, Matrix: parseMatrix("1111"), Color: core.ColorCyan},
	{Kind: KindO, Matrix: parseMatrix("11", "11"), Color: core.ColorYellow},
	{Kind: KindS, Matrix: parseMatrix("011", "110"), Color: core.ColorGreen},
	{Kind: KindZ, Matrix: parseMatrix("110", "011"), Color: core.ColorRed},
	{Kind: KindL, Matrix: parseMatrix("111", "001"), Color: core.ColorOrange},
	{Kind: KindJ, Matrix: parseMatrix("111", "100"), Color: core.ColorBlue},
	{Kind: KindT, Matrix: parseMatrix("111", "010"), Color: core.ColorMagenta},
}

// ShapeCount is the number of shapes in the catalog.
const ShapeCount = len(catalog)

// Shapes returns the catalog in the fixed order I, O, S, Z, L, J, T.
// The matrices are copies; callers may mutate them freely.
func Shapes() []Shape {
	out := make([]Shape, len(catalog))
	for i := range catalog {
		out[i] = ShapeOf(catalog[i].Kind)
	}
	return out
}

// ShapeOf returns a copy of the shape for the given kind.
func ShapeOf(k Kind) Shape {
	s := catalog[k]
	s.Matrix = s.Matrix.Clone()
	return s
}

// RandomShape picks a shape uniformly at random.
func RandomShape(rng *rand.Rand) Shape {
	return ShapeOf(Kind(rng.Intn(ShapeCount)))
}

// ShapeSource supplies the shape for each spawn.
type ShapeSource interface {
	Next() Shape
}

// RandomSource draws shapes uniformly and independently (no bag).
type RandomSource struct {
	rng *rand.Rand
}

// NewRandomSource creates a source backed by rng.
func NewRandomSource(rng *rand.Rand) *RandomSource {
	return &RandomSource{rng: rng}
}

// Next returns a uniformly chosen shape.
func (s *RandomSource) Next() Shape {
	return RandomShape(s.rng)
}

// SequenceSource replays a fixed list of kinds, cycling when exhausted.
type SequenceSource struct {
	kinds []Kind
	pos   int
}

// NewSequenceSource creates a source that yields the given kinds in order.
func NewSequenceSource(kinds ...Kind) *SequenceSource {
	return &SequenceSource{kinds: kinds}
}

// Next returns the next kind in the sequence.
func (s *SequenceSource) Next() Shape {
	if len(s.kinds) == 0 {
		return ShapeOf(KindO)
	}
	k := s.kinds[s.pos%len(s.kinds)]
	s.pos++
	return ShapeOf(k)
}
