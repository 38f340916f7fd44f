package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

func appSend(t *testing.T, m AppModel, msgs ...tea.Msg) AppModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(AppModel)
	}
	return m
}

func keys(ks ...string) []tea.Msg {
	out := make([]tea.Msg, len(ks))
	for i, k := range ks {
		out[i] = keyMsg(k)
	}
	return out
}

func TestAppPlayAndReturn(t *testing.T) {
	isolate(t)
	m := NewAppModel(testOptions(t, nil))
	m.Init()

	// Pick hard difficulty, then classic.
	m = appSend(t, m, keys("up", "up", "up", "up", "right", "up", "up", "up", "enter")...)
	if m.current != screenGame || m.game == nil {
		t.Fatalf("screen = %v, want game", m.current)
	}
	g, ok := m.game.game.(*tetris.Game)
	if !ok {
		t.Fatalf("game = %T", m.game.game)
	}
	if g.ID() != "classic" || g.Difficulty() != config.DifficultyHard {
		t.Errorf("started %s at %v, want classic at hard", g.ID(), g.Difficulty())
	}

	m = appSend(t, m, keyMsg("p"), TickMsg{Gen: m.game.gen}, keyMsg("b"))
	if m.current != screenMenu {
		t.Fatalf("screen = %v, want menu after back", m.current)
	}
	if m.menu.Difficulty() != config.DifficultyHard {
		t.Error("menu forgot the chosen difficulty")
	}
	if !strings.Contains(m.View(), "Difficulty: < hard >") {
		t.Error("menu view not restored")
	}
}

func TestAppScoreboard(t *testing.T) {
	store := openStore(t)
	store.SaveScore("classic", 1234) //nolint:errcheck

	opts := testOptions(t, nil)
	opts.Store = store
	m := NewAppModel(opts)

	m = appSend(t, m, keyMsg("tab"))
	if m.current != screenScores {
		t.Fatalf("screen = %v, want scores", m.current)
	}
	if !strings.Contains(m.View(), "1234") {
		t.Error("scoreboard does not list the score")
	}

	m = appSend(t, m, keyMsg("esc"))
	if m.current != screenMenu {
		t.Errorf("screen = %v, want menu", m.current)
	}
}

func TestAppSettingsFeedGame(t *testing.T) {
	isolate(t)
	m := NewAppModel(testOptions(t, nil))

	// Menu: up twice reaches Settings. Editor: rebind hard drop to "x".
	m = appSend(t, m, keys("up", "up", "enter")...)
	if m.current != screenSettings {
		t.Fatalf("screen = %v, want settings", m.current)
	}
	m = appSend(t, m, keys("up", "up", "enter", "x", "esc")...)
	if m.current != screenMenu {
		t.Fatalf("screen = %v, want menu", m.current)
	}
	if got := m.Settings().Controls.Keys(core.ActionHardDrop); len(got) != 1 || got[0] != "x" {
		t.Fatalf("hard drop = %v, want [x]", got)
	}

	m = appSend(t, m, keyMsg("enter"))
	if m.current != screenGame {
		t.Fatalf("screen = %v, want game", m.current)
	}
	g := m.game.game.(*tetris.Game)
	m = appSend(t, m, keyMsg("x"), TickMsg{Gen: m.game.gen})
	if g.Snapshot().Pieces != 2 {
		t.Error("rebound hard drop key did not drop")
	}
}

func TestAppQuit(t *testing.T) {
	m := NewAppModel(testOptions(t, nil))
	next, cmd := m.Update(keyMsg("q"))
	if !next.(AppModel).quitting || cmd == nil {
		t.Error("q in the menu should quit")
	}
	if next.(AppModel).View() != "" {
		t.Error("view after quit should be empty")
	}
}

func TestAppTracksWindowSize(t *testing.T) {
	m := NewAppModel(testOptions(t, nil))
	m = appSend(t, m, tea.WindowSizeMsg{Width: 132, Height: 43})
	if m.opts.Runtime.ScreenW != 132 || m.opts.Runtime.ScreenH != 43 {
		t.Errorf("runtime = %+v", m.opts.Runtime)
	}
}
