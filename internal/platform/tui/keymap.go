package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Fixed keys. These are not rebindable.
var (
	quitKeys    = []string{"ctrl+c", "q"}
	pauseKeys   = []string{"p", "esc"}
	restartKeys = []string{"r"}
	backKeys    = []string{"b"}
)

// KeyMap translates Bubble Tea key messages to game actions using the
// player's control bindings.
type KeyMap struct {
	controls config.Controls
	actions  map[string]core.Action
}

// NewKeyMap builds a key map from the given controls.
func NewKeyMap(c config.Controls) *KeyMap {
	km := &KeyMap{
		controls: c,
		actions:  make(map[string]core.Action),
	}
	for _, a := range config.BindableActions {
		for _, k := range c.Keys(a) {
			if _, taken := km.actions[teaKey(k)]; !taken {
				km.actions[teaKey(k)] = a
			}
		}
	}
	return km
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
// Bound piece controls win over the fixed pause/restart/back keys.
func (km *KeyMap) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()
	if has(quitKeys, key) {
		return core.ActionQuit, true
	}
	if a, ok := km.actions[key]; ok {
		return a, false
	}

	switch {
	case has(pauseKeys, key):
		return core.ActionPause, false
	case has(restartKeys, key):
		return core.ActionRestart, false
	case has(backKeys, key):
		return core.ActionBack, false
	case key == "enter":
		return core.ActionConfirm, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMap) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// Help returns a one-line summary of the piece controls.
func (km *KeyMap) Help() string {
	labels := map[core.Action]string{
		core.ActionMoveLeft:  "left",
		core.ActionMoveRight: "right",
		core.ActionRotate:    "rotate",
		core.ActionSoftDrop:  "soft drop",
		core.ActionHardDrop:  "hard drop",
	}
	parts := make([]string, 0, len(config.BindableActions))
	for _, a := range config.BindableActions {
		parts = append(parts, KeyLabel(km.controls.Keys(a))+" "+labels[a])
	}
	return strings.Join(parts, "  ")
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action. Menus use fixed
// navigation keys regardless of the game bindings.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}

// teaKey converts a settings key name to the string Bubble Tea reports.
func teaKey(k string) string {
	if strings.EqualFold(k, "space") {
		return " "
	}
	return k
}

// settingsKey converts a Bubble Tea key string to the name stored in settings.
func settingsKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

// KeyLabel formats a binding list for display.
func KeyLabel(keys []string) string {
	if len(keys) == 0 {
		return "-"
	}
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = settingsKey(teaKey(k))
	}
	return strings.Join(out, "/")
}

func has(keys []string, k string) bool {
	for _, x := range keys {
		if x == k {
			return true
		}
	}
	return false
}
