package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

const volumeStep = 0.1

// SettingsKeyMap defines the key bindings for the settings editor.
type SettingsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Decrease key.Binding
	Increase key.Binding
	Select   key.Binding
	Back     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SettingsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Decrease, k.Increase, k.Select, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k SettingsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultSettingsKeyMap returns default key bindings.
func DefaultSettingsKeyMap() SettingsKeyMap {
	return SettingsKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "down")),
		Decrease: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("left", "decrease")),
		Increase: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("right", "increase")),
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "rebind/select")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "save & back")),
	}
}

type settingsRow int

const (
	rowMusic settingsRow = iota
	rowSFX
	rowDifficulty
	rowFirstControl
)

// SettingsModel edits the player's settings record. Volume changes are
// applied to the audio engine as they are made; everything is saved when
// the editor closes.
type SettingsModel struct {
	settings  config.Settings
	path      string
	sounds    Sounds
	palette   *Palette
	keys      SettingsKeyMap
	help      help.Model
	cursor    int
	capturing bool // waiting for a key to bind to the selected action
	status    string
	width     int
	height    int
	done      bool
	quitting  bool
	saveErr   error
}

// NewSettingsModel creates the editor. An empty path keeps changes in memory.
func NewSettingsModel(s config.Settings, path string, sounds Sounds, width, height int, pal *Palette) SettingsModel {
	if sounds == nil {
		sounds = silence{}
	}
	return SettingsModel{
		settings: s,
		path:     path,
		sounds:   sounds,
		palette:  pal,
		keys:     DefaultSettingsKeyMap(),
		help:     help.New(),
		width:    width,
		height:   height,
	}
}

func (m SettingsModel) rowCount() int {
	// volumes, difficulty, one row per action, reset
	return int(rowFirstControl) + len(config.BindableActions) + 1
}

func (m SettingsModel) resetRow() int {
	return m.rowCount() - 1
}

// action returns the action on the cursor row, or ActionNone.
func (m SettingsModel) action() core.Action {
	i := m.cursor - int(rowFirstControl)
	if i < 0 || i >= len(config.BindableActions) {
		return core.ActionNone
	}
	return config.BindableActions[i]
}

// Init initializes the settings model.
func (m SettingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the settings editor.
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.capturing {
			return m.capture(msg), nil
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m SettingsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case msg.String() == "ctrl+c":
		m.done, m.quitting = true, true
		return m.save(), tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.done = true
		return m.save(), tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.cursor = (m.cursor - 1 + m.rowCount()) % m.rowCount()

	case key.Matches(msg, m.keys.Down):
		m.cursor = (m.cursor + 1) % m.rowCount()

	case key.Matches(msg, m.keys.Decrease):
		m.adjust(-1)

	case key.Matches(msg, m.keys.Increase):
		m.adjust(1)

	case key.Matches(msg, m.keys.Select):
		switch {
		case m.action() != core.ActionNone:
			m.capturing = true
		case m.cursor == m.resetRow():
			m.settings = config.DefaultSettings()
			m.sounds.SetVolumes(m.settings.MusicVolume, m.settings.SFXVolume)
			m.status = "Defaults restored"
		default:
			m.adjust(1)
		}
	}
	return m, nil
}

// adjust changes the value on the cursor row by one step in dir.
func (m *SettingsModel) adjust(dir int) {
	switch settingsRow(m.cursor) {
	case rowMusic:
		m.settings.MusicVolume = stepVolume(m.settings.MusicVolume, dir)
	case rowSFX:
		m.settings.SFXVolume = stepVolume(m.settings.SFXVolume, dir)
	case rowDifficulty:
		if dir < 0 {
			m.settings.Difficulty = m.settings.Difficulty.Prev()
		} else {
			m.settings.Difficulty = m.settings.Difficulty.Next()
		}
		return
	default:
		return
	}
	m.sounds.SetVolumes(m.settings.MusicVolume, m.settings.SFXVolume)
}

// capture binds the pressed key to the selected action. Esc cancels.
func (m SettingsModel) capture(msg tea.KeyMsg) SettingsModel {
	m.capturing = false
	k := msg.String()

	switch {
	case k == "esc":
		m.status = ""
	case has(quitKeys, k):
		m.status = fmt.Sprintf("%q is reserved for quit", k)
	default:
		a := m.action()
		name := settingsKey(k)
		// A key drives one action; take it away from any other.
		for _, other := range config.BindableActions {
			if other == a {
				continue
			}
			keys := m.settings.Controls.Keys(other)
			kept := keys[:0]
			for _, x := range keys {
				if teaKey(x) != k {
					kept = append(kept, x)
				}
			}
			if len(kept) != len(keys) {
				m.settings.Controls.Bind(other, kept...)
			}
		}
		m.settings.Controls.Bind(a, name)
		m.settings.Normalize()
		m.status = fmt.Sprintf("%s bound to %s", actionLabel(a), name)
	}
	return m
}

// save normalizes and persists the settings.
func (m SettingsModel) save() SettingsModel {
	m.settings.Normalize()
	if m.path != "" {
		m.saveErr = config.SaveSettings(m.path, m.settings)
	}
	return m
}

// View renders the settings editor.
func (m SettingsModel) View() string {
	if m.done {
		return ""
	}

	titleStyle := m.palette.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	cursorStyle := m.palette.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := m.palette.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  SETTINGS"))
	b.WriteString("\n\n")

	for i, n := 0, m.rowCount(); i < n; i++ {
		label, value := m.row(i)
		line := fmt.Sprintf("%-16s %s", label, value)
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
		if i == int(rowDifficulty) || i == m.resetRow()-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	switch {
	case m.capturing:
		b.WriteString(cursorStyle.Render(fmt.Sprintf("  Press a key for %s (esc to cancel)", actionLabel(m.action()))))
	case m.status != "":
		b.WriteString("  " + m.status)
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// row returns the label and the value text of row i.
func (m SettingsModel) row(i int) (string, string) {
	switch {
	case i == int(rowMusic):
		return "Music volume", volumeBar(m.settings.MusicVolume)
	case i == int(rowSFX):
		return "Effects volume", volumeBar(m.settings.SFXVolume)
	case i == int(rowDifficulty):
		return "Difficulty", fmt.Sprintf("< %s >", m.settings.Difficulty)
	case i == m.resetRow():
		return "Reset to defaults", ""
	}
	a := config.BindableActions[i-int(rowFirstControl)]
	return actionLabel(a), KeyLabel(m.settings.Controls.Keys(a))
}

// Settings returns the edited settings.
func (m SettingsModel) Settings() config.Settings {
	return m.settings
}

// Done reports whether the editor was closed.
func (m SettingsModel) Done() bool {
	return m.done
}

// IsQuitting reports whether the editor was closed with ctrl+c.
func (m SettingsModel) IsQuitting() bool {
	return m.quitting
}

// SaveErr returns the error from saving on close, if any.
func (m SettingsModel) SaveErr() error {
	return m.saveErr
}

func stepVolume(v float64, dir int) float64 {
	v = math.Round((v+float64(dir)*volumeStep)*10) / 10
	return core.ClampF(v, 0, 1)
}

func volumeBar(v float64) string {
	n := int(math.Round(v * 10))
	return fmt.Sprintf("[%s%s] %3d%%", strings.Repeat("#", n), strings.Repeat("-", 10-n), int(math.Round(v*100)))
}

func actionLabel(a core.Action) string {
	switch a {
	case core.ActionMoveLeft:
		return "Move left"
	case core.ActionMoveRight:
		return "Move right"
	case core.ActionRotate:
		return "Rotate"
	case core.ActionSoftDrop:
		return "Soft drop"
	case core.ActionHardDrop:
		return "Hard drop"
	}
	return a.String()
}

// RunSettings runs the editor on its own and returns the edited settings.
func RunSettings(s config.Settings, path string, sounds Sounds, width, height int) (config.Settings, error) {
	p := tea.NewProgram(NewSettingsModel(s, path, sounds, width, height, NewPalette(nil)), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return s, err
	}
	m := final.(SettingsModel)
	return m.Settings(), m.SaveErr()
}
