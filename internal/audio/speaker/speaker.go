// Package speaker plays an audio.Engine on the system's default output device.
// It is kept apart from package audio so that tests and the SSH server never
// open a device.
package speaker

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-tetris/internal/audio"
)

// Start opens the output device and begins streaming e.
func Start(e *audio.Engine) error {
	sr := e.SampleRate()
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(e)
	return nil
}

// Close stops playback and releases the device.
func Close() {
	speaker.Clear()
	speaker.Close()
}
