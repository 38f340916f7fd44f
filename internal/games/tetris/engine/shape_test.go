package engine

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func TestCatalog(t *testing.T) {
	want := []struct {
		kind   Kind
		matrix string
		color  core.Color
	}{
		{KindI, "1111", core.ColorCyan},
		{KindO, "11|11", core.ColorYellow},
		{KindS, "011|110", core.ColorGreen},
		{KindZ, "110|011", core.ColorRed},
		{KindL, "111|001", core.ColorOrange},
		{KindJ, "111|100", core.ColorBlue},
		{KindT, "111|010", core.ColorMagenta},
	}

	shapes := Shapes()
	if len(shapes) != len(want) {
		t.Fatalf("len(Shapes()) = %d, want %d", len(shapes), len(want))
	}
	for i, w := range want {
		s := shapes[i]
		if s.Kind != w.kind || s.Matrix.String() != w.matrix || s.Color != w.color {
			t.Errorf("shape %d = %v %s %v, want %v %s %v",
				i, s.Kind, s.Matrix, s.Color, w.kind, w.matrix, w.color)
		}
	}
}

func TestShapesReturnsCopies(t *testing.T) {
	shapes := Shapes()
	shapes[0].Matrix[0][0] = false

	if !Shapes()[0].Matrix[0][0] {
		t.Fatal("mutating a returned shape changed the catalog")
	}
}

func TestRotateFourTimesIsIdentity(t *testing.T) {
	for _, s := range Shapes() {
		t.Run(s.Kind.String(), func(t *testing.T) {
			m := s.Matrix
			for rep, reps := 0, 4; rep < reps; rep++ {
				m = m.Rotated()
			}
			if !m.Equal(s.Matrix) {
				t.Errorf("after 4 rotations got %s, want %s", m, s.Matrix)
			}
		})
	}
}

func TestRotateShapes(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindO, "11|11"},
		{KindI, "1|1|1|1"},
		{KindT, "01|11|01"},
		{KindL, "01|01|11"},
		{KindJ, "11|01|01"},
		{KindS, "10|11|01"},
	}
	for _, tc := range tests {
		got := ShapeOf(tc.kind).Matrix.Rotated()
		if got.String() != tc.want {
			t.Errorf("%v rotated = %s, want %s", tc.kind, got, tc.want)
		}
	}
}

func TestRotationStateCounts(t *testing.T) {
	// S and Z are point-symmetric, so a half turn reproduces the same matrix.
	want := map[Kind]int{KindO: 1, KindI: 2, KindS: 2, KindZ: 2, KindL: 4, KindJ: 4, KindT: 4}

	for kind, n := range want {
		seen := map[string]bool{}
		m := ShapeOf(kind).Matrix
		for rep, reps := 0, 4; rep < reps; rep++ {
			seen[m.String()] = true
			m = m.Rotated()
		}
		if len(seen) != n {
			t.Errorf("%v has %d distinct rotations, want %d", kind, len(seen), n)
		}
	}
}

func TestRandomShapeIsUniform(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const draws = 1000

	counts := make(map[Kind]int)
	for rep, reps := 0, draws; rep < reps; rep++ {
		counts[RandomShape(rng).Kind]++
	}

	// Chi-square with 6 degrees of freedom; 22.46 is the 0.001 critical value.
	expected := float64(draws) / float64(ShapeCount)
	chi := 0.0
	for k := KindI; k <= KindT; k++ {
		d := float64(counts[k]) - expected
		chi += d * d / expected
	}
	if chi > 22.46 || math.IsNaN(chi) {
		t.Errorf("distribution %v is not uniform (chi² = %.2f)", counts, chi)
	}
	for k := KindI; k <= KindT; k++ {
		if counts[k] == 0 {
			t.Errorf("kind %v never drawn", k)
		}
	}
}

func TestSequenceSourceCycles(t *testing.T) {
	src := NewSequenceSource(KindI, KindO)
	got := []Kind{src.Next().Kind, src.Next().Kind, src.Next().Kind}
	if got[0] != KindI || got[1] != KindO || got[2] != KindI {
		t.Errorf("sequence = %v, want I O I", got)
	}
}
