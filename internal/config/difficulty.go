package config

import "fmt"

// DifficultyPreset names a starting difficulty.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets returns every preset in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// ParseDifficultyPreset validates a preset name. Empty means normal.
func ParseDifficultyPreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	p := DifficultyPreset(s)
	if !p.Valid() {
		return DifficultyNormal, fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
	return p, nil
}

// Valid reports whether p is one of the known presets.
func (p DifficultyPreset) Valid() bool {
	switch p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return true
	}
	return false
}

// Next returns the following preset, wrapping around.
func (p DifficultyPreset) Next() DifficultyPreset {
	return p.shift(1)
}

// Prev returns the preceding preset, wrapping around.
func (p DifficultyPreset) Prev() DifficultyPreset {
	return p.shift(-1)
}

func (p DifficultyPreset) shift(d int) DifficultyPreset {
	all := Presets()
	for i, q := range all {
		if q == p {
			return all[(i+d+len(all))%len(all)]
		}
	}
	return DifficultyNormal
}
