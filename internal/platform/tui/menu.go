package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// MenuChoiceKind is what the player picked in the main menu.
type MenuChoiceKind int

const (
	ChoiceNone MenuChoiceKind = iota
	ChoicePlay
	ChoiceScores
	ChoiceSettings
	ChoiceQuit
)

// MenuChoice is the result of the main menu.
type MenuChoice struct {
	Kind       MenuChoiceKind
	GameID     string
	Difficulty config.DifficultyPreset
}

type entryKind int

const (
	entryGame entryKind = iota
	entryDifficulty
	entryScores
	entrySettings
	entryQuit
)

type menuEntry struct {
	kind   entryKind
	gameID string
	title  string
}

// MenuModel is the main menu: one entry per registered mode, a difficulty
// selector, the scoreboard, the settings editor and quit.
type MenuModel struct {
	entries    []menuEntry
	cursor     int
	width      int
	height     int
	difficulty config.DifficultyPreset
	highScore  int
	palette    *Palette
	choice     MenuChoice
}

// NewMenuModel creates the main menu.
func NewMenuModel(store *storage.Store, difficulty config.DifficultyPreset, width, height int, pal *Palette) MenuModel {
	var entries []menuEntry
	for _, g := range registry.List() {
		entries = append(entries, menuEntry{kind: entryGame, gameID: g.ID, title: g.Title})
	}
	entries = append(entries,
		menuEntry{kind: entryDifficulty, title: "Difficulty"},
		menuEntry{kind: entryScores, title: "High Scores"},
		menuEntry{kind: entrySettings, title: "Settings"},
		menuEntry{kind: entryQuit, title: "Quit"},
	)

	m := MenuModel{
		entries:    entries,
		width:      width,
		height:     height,
		difficulty: difficulty,
		palette:    pal,
	}
	if !m.difficulty.Valid() {
		m.difficulty = config.DifficultyNormal
	}
	if store != nil {
		if high, err := store.HighScore(""); err == nil {
			m.highScore = high
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entry := m.entries[m.cursor]

	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.choice = MenuChoice{Kind: ChoiceQuit, Difficulty: m.difficulty}
		return m, tea.Quit

	case MenuActionUp:
		m.cursor = (m.cursor - 1 + len(m.entries)) % len(m.entries)

	case MenuActionDown:
		m.cursor = (m.cursor + 1) % len(m.entries)

	case MenuActionLeft:
		if entry.kind == entryDifficulty {
			m.difficulty = m.difficulty.Prev()
		}

	case MenuActionRight:
		if entry.kind == entryDifficulty {
			m.difficulty = m.difficulty.Next()
		}

	case MenuActionScoreboard:
		m.choice = MenuChoice{Kind: ChoiceScores, Difficulty: m.difficulty}
		return m, tea.Quit

	case MenuActionSelect:
		switch entry.kind {
		case entryGame:
			m.choice = MenuChoice{Kind: ChoicePlay, GameID: entry.gameID}
		case entryDifficulty:
			m.difficulty = m.difficulty.Next()
			return m, nil
		case entryScores:
			m.choice = MenuChoice{Kind: ChoiceScores}
		case entrySettings:
			m.choice = MenuChoice{Kind: ChoiceSettings}
		case entryQuit:
			m.choice = MenuChoice{Kind: ChoiceQuit}
		}
		m.choice.Difficulty = m.difficulty
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice.Kind == ChoiceQuit {
		return ""
	}

	titleStyle := m.palette.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	cursorStyle := m.palette.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := m.palette.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("T E T R I S"), m.width, len("T E T R I S")))
	b.WriteString("\n")
	if m.highScore > 0 {
		hs := fmt.Sprintf("High score: %d", m.highScore)
		b.WriteString(centerText(dimStyle.Render(hs), m.width, len(hs)))
	}
	b.WriteString("\n\n")

	for i, e := range m.entries {
		line := e.title
		if e.kind == entryDifficulty {
			line = fmt.Sprintf("Difficulty: < %s >", m.difficulty)
		}
		if e.kind == entryScores {
			b.WriteString("\n")
		}

		if i == m.cursor {
			line = "> " + line
			b.WriteString(centerText(cursorStyle.Render(line), m.width, len(line)))
		} else {
			line = "  " + line
			b.WriteString(centerText(line, m.width, len(line)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Difficulty  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width, len(controls)))
	b.WriteString("\n")

	return b.String()
}

// Choice returns what the player picked, Kind ChoiceNone while still choosing.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Difficulty returns the difficulty currently selected.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return m.difficulty
}

// centerText centers text within width. visible is the printed length of
// text, which differs from len(text) once styles add escape codes.
func centerText(text string, width, visible int) string {
	if visible >= width {
		return text
	}
	return strings.Repeat(" ", (width-visible)/2) + text
}
