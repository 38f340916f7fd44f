package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDefaultKeyMap(t *testing.T) {
	km := NewKeyMap(config.DefaultControls())

	tests := []struct {
		key    string
		want   core.Action
		isQuit bool
	}{
		{"left", core.ActionMoveLeft, false},
		{"right", core.ActionMoveRight, false},
		{"up", core.ActionRotate, false},
		{"down", core.ActionSoftDrop, false},
		{" ", core.ActionHardDrop, false},
		{"p", core.ActionPause, false},
		{"esc", core.ActionPause, false},
		{"r", core.ActionRestart, false},
		{"b", core.ActionBack, false},
		{"enter", core.ActionConfirm, false},
		{"q", core.ActionQuit, true},
		{"ctrl+c", core.ActionQuit, true},
		{"x", core.ActionNone, false},
	}
	for _, tc := range tests {
		got, quit := km.MapKey(keyMsg(tc.key))
		if got != tc.want || quit != tc.isQuit {
			t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tc.key, got, quit, tc.want, tc.isQuit)
		}
	}
}

func TestCustomBindings(t *testing.T) {
	c := config.DefaultControls()
	c.Bind(core.ActionMoveLeft, "a", "h")
	c.Bind(core.ActionHardDrop, "space", "w")
	// A piece control bound to a fixed key takes precedence.
	c.Bind(core.ActionRotate, "r")
	km := NewKeyMap(c)

	tests := map[string]core.Action{
		"a":    core.ActionMoveLeft,
		"h":    core.ActionMoveLeft,
		"left": core.ActionNone,
		"w":    core.ActionHardDrop,
		" ":    core.ActionHardDrop,
		"r":    core.ActionRotate,
	}
	for key, want := range tests {
		if got, _ := km.MapKey(keyMsg(key)); got != want {
			t.Errorf("MapKey(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestQuitCannotBeRebound(t *testing.T) {
	c := config.DefaultControls()
	c.Bind(core.ActionHardDrop, "q")
	km := NewKeyMap(c)
	if _, quit := km.MapKey(keyMsg("q")); !quit {
		t.Error("q must always quit")
	}
}

func TestMapKeyToFrameCountsRepeats(t *testing.T) {
	km := NewKeyMap(config.DefaultControls())
	frame := core.NewInputFrame()
	for rep, reps := 0, 3; rep < reps; rep++ {
		km.MapKeyToFrame(keyMsg("left"), &frame)
	}
	if frame.Count(core.ActionMoveLeft) != 3 {
		t.Errorf("count = %d, want 3", frame.Count(core.ActionMoveLeft))
	}
	if !km.MapKeyToFrame(keyMsg("q"), &frame) {
		t.Error("q should report quit")
	}
}

func TestMenuActions(t *testing.T) {
	tests := map[string]MenuAction{
		"up":    MenuActionUp,
		"k":     MenuActionUp,
		"down":  MenuActionDown,
		"left":  MenuActionLeft,
		"right": MenuActionRight,
		"enter": MenuActionSelect,
		" ":     MenuActionSelect,
		"esc":   MenuActionBack,
		"tab":   MenuActionScoreboard,
		"q":     MenuActionQuit,
		"z":     MenuActionNone,
	}
	for key, want := range tests {
		if got := MapKeyToMenuAction(keyMsg(key)); got != want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestKeyLabel(t *testing.T) {
	if got := KeyLabel([]string{"space", "w"}); got != "space/w" {
		t.Errorf("KeyLabel = %q", got)
	}
	if got := KeyLabel(nil); got != "-" {
		t.Errorf("KeyLabel(nil) = %q", got)
	}
	if settingsKey(" ") != "space" || teaKey("space") != " " {
		t.Error("space conversion broken")
	}
}
