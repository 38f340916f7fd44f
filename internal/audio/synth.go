package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// note is a pitch held for a duration. A zero frequency is a rest.
type note struct {
	freq float64
	dur  time.Duration
}

// Pitches in Hz.
const (
	noteA3 = 220.00
	noteE4 = 329.63
	noteA4 = 440.00
	noteB4 = 493.88
	noteC5 = 523.25
	noteD5 = 587.33
	noteE5 = 659.25
	noteF5 = 698.46
	noteG5 = 783.99
	noteA5 = 880.00
)

const (
	beat = 200 * time.Millisecond
	half = beat / 2
)

// theme is the looping background melody.
var theme = []note{
	{noteE5, beat}, {noteB4, half}, {noteC5, half}, {noteD5, beat}, {noteC5, half}, {noteB4, half},
	{noteA4, beat}, {noteA4, half}, {noteC5, half}, {noteE5, beat}, {noteD5, half}, {noteC5, half},
	{noteB4, beat + half}, {noteC5, half}, {noteD5, beat}, {noteE5, beat},
	{noteC5, beat}, {noteA4, beat}, {noteA4, beat}, {0, beat},
	{noteD5, beat + half}, {noteF5, half}, {noteA5, beat}, {noteG5, half}, {noteF5, half},
	{noteE5, beat + half}, {noteC5, half}, {noteE5, beat}, {noteD5, half}, {noteC5, half},
	{noteB4, beat}, {noteB4, half}, {noteC5, half}, {noteD5, beat}, {noteE5, beat},
	{noteC5, beat}, {noteA4, beat}, {noteA4, beat}, {0, beat},
}

var sfxNotes = map[Sound][]note{
	SoundLineClear: {{noteC5, 60 * time.Millisecond}, {noteE5, 60 * time.Millisecond}, {noteG5, 90 * time.Millisecond}},
	SoundLock:      {{noteA3, 40 * time.Millisecond}},
	SoundRotate:    {{noteA5, 25 * time.Millisecond}},
	SoundHardDrop:  {{noteE4, 30 * time.Millisecond}, {noteA3, 50 * time.Millisecond}},
	SoundGameOver: {
		{noteE5, 180 * time.Millisecond}, {noteC5, 180 * time.Millisecond},
		{noteA4, 180 * time.Millisecond}, {noteE4, 400 * time.Millisecond},
	},
}

// effect builds a fresh streamer for s, or nil for an unknown sound.
func (e *Engine) effect(s Sound) beep.Streamer {
	notes, ok := sfxNotes[s]
	if !ok {
		return nil
	}
	return e.phrase(notes, 0.4)
}

// melody builds one pass of the theme. beep.Iterate calls it again each time
// the previous pass ends.
func (e *Engine) melody() beep.Streamer {
	return e.phrase(theme, 0.25)
}

// phrase renders notes back to back at the given amplitude. Each note ends
// with a short gap so repeated pitches stay distinct.
func (e *Engine) phrase(notes []note, amp float64) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(notes)*2)
	for _, n := range notes {
		total := e.sr.N(n.dur)
		gap := min(e.sr.N(10*time.Millisecond), total/4)
		parts = append(parts, e.tone(n.freq, total-gap), beep.Silence(gap))
	}
	return &effects.Gain{Streamer: beep.Seq(parts...), Gain: amp - 1}
}

// tone returns n samples of a sine at freq, or silence for a rest.
func (e *Engine) tone(freq float64, n int) beep.Streamer {
	if freq <= 0 {
		return beep.Silence(n)
	}
	sine, err := generators.SineTone(e.sr, freq)
	if err != nil {
		return beep.Silence(n)
	}
	return beep.Take(n, sine)
}
