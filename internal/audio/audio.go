// Package audio synthesizes the game's sound effects and background melody.
//
// Everything is mixed into a single Engine, which is itself a beep.Streamer.
// The engine never touches an output device; internal/audio/speaker binds it
// to the system speaker, and tests pull samples from it directly.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate used for all synthesized audio.
const SampleRate = beep.SampleRate(44100)

// Sound identifies a sound effect.
type Sound int

const (
	SoundLineClear Sound = iota + 1
	SoundLock
	SoundRotate
	SoundHardDrop
	SoundGameOver
)

var soundNames = map[Sound]string{
	SoundLineClear: "line_clear",
	SoundLock:      "lock",
	SoundRotate:    "rotate",
	SoundHardDrop:  "hard_drop",
	SoundGameOver:  "game_over",
}

func (s Sound) String() string {
	if name, ok := soundNames[s]; ok {
		return name
	}
	return "unknown"
}

// Engine mixes sound effects and looping music. It is safe for concurrent
// use: the speaker pulls samples on its own goroutine while the UI triggers
// sounds.
type Engine struct {
	mu sync.Mutex
	sr beep.SampleRate

	out      beep.Mixer
	sfx      *beep.Mixer
	sfxVol   *effects.Volume
	music    *beep.Ctrl
	musicVol *effects.Volume

	musicLevel float64
	sfxLevel   float64
	muted      bool
}

// New creates an engine with the given volumes in [0, 1].
func New(music, sfx float64) *Engine {
	e := &Engine{
		sr:  SampleRate,
		sfx: &beep.Mixer{},
	}
	e.music = &beep.Ctrl{Streamer: beep.Iterate(e.melody), Paused: true}
	e.sfxVol = &effects.Volume{Streamer: e.sfx, Base: 2}
	e.musicVol = &effects.Volume{Streamer: e.music, Base: 2}
	e.out.Add(e.musicVol, e.sfxVol)
	e.SetVolumes(music, sfx)
	return e
}

// SampleRate returns the rate the engine streams at.
func (e *Engine) SampleRate() beep.SampleRate {
	return e.sr
}

// Stream implements beep.Streamer.
func (e *Engine) Stream(samples [][2]float64) (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.out.Stream(samples)
}

// Err implements beep.Streamer.
func (e *Engine) Err() error {
	return nil
}

// Play starts a sound effect. Effects overlap freely.
func (e *Engine) Play(s Sound) {
	st := e.effect(s)
	if st == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sfx.Add(st)
}

// PlayLines plays the line-clear effect, one extra note per cleared row.
func (e *Engine) PlayLines(n int) {
	if n <= 0 {
		return
	}
	notes := make([]note, 0, n+1)
	for i := 0; i <= min(n, 4); i++ {
		notes = append(notes, note{freq: 523.25 * math.Pow(2, float64(i)/3), dur: 60 * time.Millisecond})
	}
	st := e.phrase(notes, 0.4)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.sfx.Add(st)
}

// Active returns the number of effects still playing.
func (e *Engine) Active() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sfx.Len()
}

// StartMusic starts or resumes the background melody.
func (e *Engine) StartMusic() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.music.Paused = false
}

// StopMusic pauses the background melody.
func (e *Engine) StopMusic() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.music.Paused = true
}

// MusicPlaying reports whether the melody is running.
func (e *Engine) MusicPlaying() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.music.Paused
}

// SetVolumes sets music and effect volume, each clamped to [0, 1].
// Zero silences the channel.
func (e *Engine) SetVolumes(music, sfx float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.musicLevel = clamp01(music)
	e.sfxLevel = clamp01(sfx)
	e.apply()
}

// Volumes returns the current music and effect volumes.
func (e *Engine) Volumes() (music, sfx float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.musicLevel, e.sfxLevel
}

// SetMuted silences everything without forgetting the volumes.
func (e *Engine) SetMuted(muted bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.muted = muted
	e.apply()
}

// Muted reports whether the engine is muted.
func (e *Engine) Muted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.muted
}

// Stop drops every playing effect and pauses the music.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sfx.Clear()
	e.music.Paused = true
}

// apply must be called with mu held.
func (e *Engine) apply() {
	setLevel(e.musicVol, e.musicLevel, e.muted)
	setLevel(e.sfxVol, e.sfxLevel, e.muted)
}

// setLevel maps a linear level onto beep's logarithmic volume.
func setLevel(v *effects.Volume, level float64, muted bool) {
	v.Silent = muted || level <= 0
	if level > 0 {
		v.Volume = math.Log2(level)
	}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
