package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Controls maps each piece action to the keys bound to it.
// Keys use Bubble Tea names ("left", "a", "ctrl+d"); "space" stands for the space bar.
type Controls struct {
	MoveLeft  []string `yaml:"move_left"`
	MoveRight []string `yaml:"move_right"`
	Rotate    []string `yaml:"rotate"`
	SoftDrop  []string `yaml:"soft_drop"`
	HardDrop  []string `yaml:"hard_drop"`
}

// Settings is the player's persisted preferences record.
type Settings struct {
	MusicVolume float64          `yaml:"music_volume"`
	SFXVolume   float64          `yaml:"sfx_volume"`
	Difficulty  DifficultyPreset `yaml:"difficulty"`
	Controls    Controls         `yaml:"controls"`
}

// BindableActions lists the actions that can be rebound, in display order.
var BindableActions = []core.Action{
	core.ActionMoveLeft,
	core.ActionMoveRight,
	core.ActionRotate,
	core.ActionSoftDrop,
	core.ActionHardDrop,
}

// DefaultSettings returns the settings used on first run.
func DefaultSettings() Settings {
	return Settings{
		MusicVolume: 0.7,
		SFXVolume:   1.0,
		Difficulty:  DifficultyNormal,
		Controls:    DefaultControls(),
	}
}

// DefaultControls returns arrow keys plus space for hard drop.
func DefaultControls() Controls {
	return Controls{
		MoveLeft:  []string{"left"},
		MoveRight: []string{"right"},
		Rotate:    []string{"up"},
		SoftDrop:  []string{"down"},
		HardDrop:  []string{"space"},
	}
}

// DefaultSettingsPath returns ~/.tetris/settings.yaml.
func DefaultSettingsPath() string {
	return DataPath("settings.yaml")
}

// Keys returns the keys bound to an action.
func (c Controls) Keys(a core.Action) []string {
	if p := c.slot(a); p != nil {
		return append([]string(nil), (*p)...)
	}
	return nil
}

// Bind replaces the keys of an action.
func (c *Controls) Bind(a core.Action, keys ...string) {
	if p := c.slot(a); p != nil {
		*p = append([]string(nil), keys...)
	}
}

func (c *Controls) slot(a core.Action) *[]string {
	switch a {
	case core.ActionMoveLeft:
		return &c.MoveLeft
	case core.ActionMoveRight:
		return &c.MoveRight
	case core.ActionRotate:
		return &c.Rotate
	case core.ActionSoftDrop:
		return &c.SoftDrop
	case core.ActionHardDrop:
		return &c.HardDrop
	}
	return nil
}

// Normalize clamps volumes to [0, 1], resets a NaN volume to its default,
// replaces an unknown difficulty with normal and fills unbound actions from
// the defaults. It reports whether anything was changed.
func (s *Settings) Normalize() bool {
	changed := false
	def := DefaultSettings()

	if math.IsNaN(s.MusicVolume) {
		s.MusicVolume = def.MusicVolume
		changed = true
	}
	if math.IsNaN(s.SFXVolume) {
		s.SFXVolume = def.SFXVolume
		changed = true
	}
	if v := core.ClampF(s.MusicVolume, 0, 1); v != s.MusicVolume {
		s.MusicVolume = v
		changed = true
	}
	if v := core.ClampF(s.SFXVolume, 0, 1); v != s.SFXVolume {
		s.SFXVolume = v
		changed = true
	}
	if !s.Difficulty.Valid() {
		s.Difficulty = DifficultyNormal
		changed = true
	}

	for _, a := range BindableActions {
		if len(s.Controls.Keys(a)) == 0 {
			s.Controls.Bind(a, def.Controls.Keys(a)...)
			changed = true
		}
	}
	return changed
}

// LoadSettings reads the settings record at path.
//
// The returned settings are always usable. A missing or unparseable file
// yields the defaults and the file is rewritten immediately; values that
// needed clamping are written back too. A non-nil error only means that the
// rewrite failed.
func LoadSettings(path string) (Settings, error) {
	path = ExpandPath(path)

	s := DefaultSettings()
	rewrite := false

	if data, err := os.ReadFile(path); err != nil {
		rewrite = true
	} else if err := yaml.Unmarshal(data, &s); err != nil {
		s = DefaultSettings()
		rewrite = true
	}

	if s.Normalize() {
		rewrite = true
	}

	if rewrite {
		if err := SaveSettings(path, s); err != nil {
			return s, err
		}
	}
	return s, nil
}

// SaveSettings writes s to path, creating the directory if needed.
func SaveSettings(path string, s Settings) error {
	path = ExpandPath(path)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create settings dir: %w", err)
	}

	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("config: encode settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write settings %s: %w", path, err)
	}
	return nil
}
