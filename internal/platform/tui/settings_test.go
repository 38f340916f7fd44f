package tui

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

func editorSend(t *testing.T, m SettingsModel, keys ...string) SettingsModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(SettingsModel)
	}
	return m
}

func newEditor(t *testing.T, sounds Sounds) (SettingsModel, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	return NewSettingsModel(config.DefaultSettings(), path, sounds, 80, 24, NewPalette(nil)), path
}

func TestSettingsVolumes(t *testing.T) {
	sounds := &fakeSounds{}
	m, _ := newEditor(t, sounds)

	m = editorSend(t, m, "left")
	if got := m.Settings().MusicVolume; got != 0.6 {
		t.Errorf("music = %v, want 0.6", got)
	}
	if sounds.volume != [2]float64{0.6, 1} {
		t.Errorf("engine volumes = %v, want live update", sounds.volume)
	}

	m = editorSend(t, m, "down", "right", "right")
	if got := m.Settings().SFXVolume; got != 1 {
		t.Errorf("sfx = %v, want clamped at 1", got)
	}
	for rep, reps := 0, 12; rep < reps; rep++ {
		m = editorSend(t, m, "left")
	}
	if got := m.Settings().SFXVolume; got != 0 {
		t.Errorf("sfx = %v, want clamped at 0", got)
	}
	if !strings.Contains(m.View(), "[----------]   0%") {
		t.Error("volume bar not rendered")
	}
}

func TestSettingsDifficulty(t *testing.T) {
	m, _ := newEditor(t, nil)
	m = editorSend(t, m, "down", "down", "right")
	if m.Settings().Difficulty != config.DifficultyHard {
		t.Errorf("difficulty = %v", m.Settings().Difficulty)
	}
	m = editorSend(t, m, "enter")
	if m.Settings().Difficulty != config.DifficultyEasy {
		t.Errorf("enter should cycle, got %v", m.Settings().Difficulty)
	}
}

func TestSettingsRebind(t *testing.T) {
	m, _ := newEditor(t, nil)

	// Row 3 is "Move left".
	m = editorSend(t, m, "down", "down", "down", "enter")
	if !m.capturing {
		t.Fatal("enter on a control row should wait for a key")
	}
	m = editorSend(t, m, "a")
	if got := m.Settings().Controls.Keys(core.ActionMoveLeft); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("move left = %v, want [a]", got)
	}

	// Taking "a" for move right gives move left its default back.
	m = editorSend(t, m, "down", "enter", "a")
	c := m.Settings().Controls
	if got := c.Keys(core.ActionMoveRight); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("move right = %v, want [a]", got)
	}
	if got := c.Keys(core.ActionMoveLeft); !reflect.DeepEqual(got, []string{"left"}) {
		t.Errorf("move left = %v, want [left]", got)
	}

	// Space is stored by name.
	m = editorSend(t, m, "down", "down", "down", "enter", " ")
	if got := m.Settings().Controls.Keys(core.ActionHardDrop); !reflect.DeepEqual(got, []string{"space"}) {
		t.Errorf("hard drop = %v, want [space]", got)
	}
}

func TestSettingsRebindRejectsQuitAndCancels(t *testing.T) {
	m, _ := newEditor(t, nil)
	m = editorSend(t, m, "down", "down", "down", "enter", "q")
	if got := m.Settings().Controls.Keys(core.ActionMoveLeft); !reflect.DeepEqual(got, []string{"left"}) {
		t.Errorf("q was bound: %v", got)
	}
	if !strings.Contains(m.View(), "reserved") {
		t.Error("missing reserved-key message")
	}

	m = editorSend(t, m, "enter", "esc")
	if m.capturing || m.Done() {
		t.Error("esc while capturing should only cancel")
	}
}

func TestSettingsResetAndSave(t *testing.T) {
	sounds := &fakeSounds{}
	m, path := newEditor(t, sounds)
	m = editorSend(t, m, "left", "left")

	// Up from the first row wraps to "Reset to defaults".
	m = editorSend(t, m, "up", "enter")
	if m.Settings().MusicVolume != 0.7 {
		t.Errorf("reset music = %v", m.Settings().MusicVolume)
	}

	m = editorSend(t, m, "down", "down", "down", "right", "esc")
	if !m.Done() || m.SaveErr() != nil {
		t.Fatalf("done = %v, err = %v", m.Done(), m.SaveErr())
	}

	loaded, err := config.LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(loaded, m.Settings()) {
		t.Errorf("saved %+v, edited %+v", loaded, m.Settings())
	}
	if loaded.Difficulty != config.DifficultyHard {
		t.Errorf("difficulty = %v, want hard", loaded.Difficulty)
	}
}

func TestSettingsInMemory(t *testing.T) {
	m := NewSettingsModel(config.DefaultSettings(), "", nil, 80, 24, NewPalette(nil))
	m = editorSend(t, m, "left", "b")
	if !m.Done() || m.SaveErr() != nil {
		t.Error("in-memory editor should close cleanly")
	}
	if m.Settings().MusicVolume != 0.6 {
		t.Errorf("music = %v", m.Settings().MusicVolume)
	}
}
