package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

type screen int

const (
	screenMenu screen = iota
	screenGame
	screenScores
	screenSettings
)

// difficultySetter is implemented by games whose difficulty can be chosen
// per instance.
type difficultySetter interface {
	SetDifficulty(config.DifficultyPreset)
}

// AppModel manages the full session flow: menu, then a game, the
// scoreboard or the settings editor, then back to the menu. It is the
// top-level model both locally and for SSH sessions.
type AppModel struct {
	opts       Options
	difficulty config.DifficultyPreset
	current    screen
	menu       MenuModel
	game       *GameModel
	scores     ScoreboardModel
	editor     SettingsModel
	quitting   bool
}

// NewAppModel creates the session model.
func NewAppModel(opts Options) AppModel {
	opts = opts.withDefaults()
	m := AppModel{
		opts:       opts,
		difficulty: opts.Settings.Difficulty,
	}
	m.menu = m.newMenu()
	return m
}

func (m AppModel) newMenu() MenuModel {
	return NewMenuModel(m.opts.Store, m.difficulty, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH, m.opts.Palette)
}

// Init initializes the session.
func (m AppModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Runtime.ScreenW = wsm.Width
		m.opts.Runtime.ScreenH = wsm.Height
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	case screenSettings:
		return m.updateSettings(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	choice := m.menu.Choice()
	m.difficulty = m.menu.Difficulty()

	switch choice.Kind {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case ChoicePlay:
		game, err := registry.Create(choice.GameID)
		if err != nil {
			// The menu only lists registered modes.
			m.menu = m.newMenu()
			return m, nil
		}
		if ds, ok := game.(difficultySetter); ok {
			ds.SetDifficulty(m.difficulty)
		}
		gm := NewGameModel(game, m.opts)
		m.game = &gm
		m.current = screenGame
		return m, m.game.Init()

	case ChoiceScores:
		m.scores = NewScoreboardModel(m.opts.Store, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH, m.opts.Palette)
		m.current = screenScores
		return m, m.scores.Init()

	case ChoiceSettings:
		m.editor = NewSettingsModel(m.opts.Settings, m.opts.SettingsPath, m.opts.Sounds,
			m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH, m.opts.Palette)
		m.current = screenSettings
		return m, m.editor.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		m.game = nil
		return m.toMenu()
	}
	return m, cmd
}

// updateScores handles updates when the scoreboard is shown.
func (m AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scores = sb
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

// updateSettings handles updates when the settings editor is shown.
func (m AppModel) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.editor.Update(msg)
	if ed, ok := newModel.(SettingsModel); ok {
		m.editor = ed
	}

	if m.editor.Done() {
		m.opts.Settings = m.editor.Settings()
		m.difficulty = m.opts.Settings.Difficulty
		if err := m.editor.SaveErr(); err != nil {
			m.opts.Logger.Warn("could not save settings", "error", err)
		}
		if m.editor.IsQuitting() {
			m.quitting = true
			return m, tea.Quit
		}
		return m.toMenu()
	}
	return m, cmd
}

func (m AppModel) toMenu() (tea.Model, tea.Cmd) {
	m.current = screenMenu
	m.menu = m.newMenu()
	return m, m.menu.Init()
}

// View renders the current view.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	case screenSettings:
		return m.editor.View()
	default:
		return m.menu.View()
	}
}

// Settings returns the settings as last edited in this session.
func (m AppModel) Settings() config.Settings {
	return m.opts.Settings
}

// RunApp runs the interactive session until the player quits.
func RunApp(opts Options) error {
	p := tea.NewProgram(NewAppModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
