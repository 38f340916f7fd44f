package audio

import (
	"math"
	"testing"
	"time"
)

// pull streams d worth of samples and returns the peak amplitude.
func pull(t *testing.T, e *Engine, d time.Duration) float64 {
	t.Helper()
	buf := make([][2]float64, 512)
	peak := 0.0
	for left := e.SampleRate().N(d); left > 0; left -= len(buf) {
		n, ok := e.Stream(buf[:min(left, len(buf))])
		if !ok {
			t.Fatal("engine stream ended")
		}
		for _, s := range buf[:n] {
			peak = math.Max(peak, math.Max(math.Abs(s[0]), math.Abs(s[1])))
		}
	}
	return peak
}

func TestSilentWhenIdle(t *testing.T) {
	e := New(1, 1)
	if peak := pull(t, e, 50*time.Millisecond); peak != 0 {
		t.Errorf("idle engine produced peak %f", peak)
	}
}

func TestPlayMixesEffect(t *testing.T) {
	sounds := []Sound{SoundLineClear, SoundLock, SoundRotate, SoundHardDrop, SoundGameOver}
	for _, s := range sounds {
		t.Run(s.String(), func(t *testing.T) {
			e := New(0, 1)
			e.Play(s)
			if e.Active() != 1 {
				t.Fatalf("Active() = %d, want 1", e.Active())
			}
			if peak := pull(t, e, 20*time.Millisecond); peak == 0 {
				t.Error("effect is silent")
			}
			// Every effect is shorter than a second and drains from the mixer.
			pull(t, e, time.Second)
			if e.Active() != 0 {
				t.Errorf("effect still active after 1s")
			}
		})
	}
}

func TestPlayUnknownSound(t *testing.T) {
	e := New(1, 1)
	e.Play(Sound(99))
	if e.Active() != 0 {
		t.Error("unknown sound was queued")
	}
}

func TestPlayLines(t *testing.T) {
	e := New(0, 1)
	e.PlayLines(0)
	if e.Active() != 0 {
		t.Fatal("zero lines should play nothing")
	}
	e.PlayLines(4)
	if peak := pull(t, e, 20*time.Millisecond); peak == 0 {
		t.Error("line clear is silent")
	}
}

func TestEffectsOverlap(t *testing.T) {
	e := New(0, 1)
	e.Play(SoundGameOver)
	e.Play(SoundLock)
	if e.Active() != 2 {
		t.Errorf("Active() = %d, want 2", e.Active())
	}
}

func TestSFXVolumeZeroIsSilent(t *testing.T) {
	e := New(1, 0)
	e.Play(SoundGameOver)
	if peak := pull(t, e, 50*time.Millisecond); peak != 0 {
		t.Errorf("muted effects produced peak %f", peak)
	}
}

func TestVolumeScalesOutput(t *testing.T) {
	loud := New(0, 1)
	loud.Play(SoundGameOver)
	quiet := New(0, 0.25)
	quiet.Play(SoundGameOver)

	pl := pull(t, loud, 100*time.Millisecond)
	pq := pull(t, quiet, 100*time.Millisecond)
	if pq >= pl {
		t.Errorf("quarter volume peak %f not below full volume %f", pq, pl)
	}
}

func TestMusic(t *testing.T) {
	e := New(1, 1)
	if e.MusicPlaying() {
		t.Fatal("music should start paused")
	}

	e.StartMusic()
	if !e.MusicPlaying() {
		t.Fatal("StartMusic did not start")
	}
	if peak := pull(t, e, 100*time.Millisecond); peak == 0 {
		t.Error("music is silent")
	}
	// Longer than one pass of the theme: the melody loops.
	pull(t, e, 12*time.Second)
	if peak := pull(t, e, 300*time.Millisecond); peak == 0 {
		t.Error("music did not loop")
	}

	e.StopMusic()
	if peak := pull(t, e, 50*time.Millisecond); peak != 0 {
		t.Errorf("stopped music produced peak %f", peak)
	}
}

func TestMuteKeepsVolumes(t *testing.T) {
	e := New(0.7, 1)
	e.SetMuted(true)
	e.Play(SoundGameOver)
	if peak := pull(t, e, 50*time.Millisecond); peak != 0 {
		t.Error("muted engine produced sound")
	}
	if m, s := e.Volumes(); m != 0.7 || s != 1 {
		t.Errorf("volumes = %v, %v after mute", m, s)
	}

	e.SetMuted(false)
	if !(pull(t, e, 50*time.Millisecond) > 0) {
		t.Error("unmuted engine is silent")
	}
}

func TestSetVolumesClamps(t *testing.T) {
	e := New(0, 0)
	tests := []struct {
		music, sfx float64
		wantM      float64
		wantS      float64
	}{
		{2, -1, 1, 0},
		{0.5, 0.3, 0.5, 0.3},
		{math.NaN(), 1, 0, 1},
	}
	for _, tc := range tests {
		e.SetVolumes(tc.music, tc.sfx)
		m, s := e.Volumes()
		if m != tc.wantM || s != tc.wantS {
			t.Errorf("SetVolumes(%v, %v) = %v, %v; want %v, %v", tc.music, tc.sfx, m, s, tc.wantM, tc.wantS)
		}
	}
}

func TestStop(t *testing.T) {
	e := New(1, 1)
	e.StartMusic()
	e.Play(SoundGameOver)
	e.Stop()
	if e.Active() != 0 || e.MusicPlaying() {
		t.Error("Stop left audio playing")
	}
}
