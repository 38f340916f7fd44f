package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show the mode sidebar
	sidebarWidth       = 24
	recentBattles      = 5
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Clear    key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.PrevMode, k.Clear, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextMode, k.PrevMode},
		{k.Clear, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x x", "clear"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// scoreFilter is one tab of the scoreboard. An empty mode shows every mode.
type scoreFilter struct {
	mode  string
	title string
}

// ScoreboardModel shows the high-score table, filterable by mode, plus the
// battle record on the battle tab.
type ScoreboardModel struct {
	filters      []scoreFilter
	cursor       int
	store        *storage.Store
	scores       []storage.ScoreEntry
	tally        storage.BattleTally
	battles      []storage.BattleRecord
	table        table.Model
	help         help.Model
	keys         ScoreboardKeyMap
	palette      *Palette
	width        int
	height       int
	confirmClear bool
	quitting     bool
	goingBack    bool
	showSidebar  bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int, pal *Palette) ScoreboardModel {
	filters := []scoreFilter{{mode: "", title: "All modes"}}
	for _, g := range registry.List() {
		filters = append(filters, scoreFilter{mode: g.ID, title: g.Title})
	}

	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		filters:     filters,
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		palette:     pal,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 8},
		{Title: "Mode", Width: 8},
		{Title: "Date", Width: 10},
	}

	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	if extra := tableWidth - 40; extra > 0 {
		columns[1].Width += min(extra/2, 6)
		columns[2].Width += min(extra/2, 4)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(storage.MaxScores+1, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *ScoreboardModel) mode() string {
	return m.filters[m.cursor].mode
}

// load reads the scores for the current tab and, on the battle tab, the
// battle record.
func (m *ScoreboardModel) load() {
	m.scores, m.battles, m.tally = nil, nil, storage.BattleTally{}
	if m.store != nil {
		if scores, err := m.store.TopScores(m.mode(), storage.MaxScores); err == nil {
			m.scores = scores
		}
		if m.mode() == "battle" {
			if tally, err := m.store.Tally(); err == nil {
				m.tally = tally
			}
			if battles, err := m.store.RecentBattles(recentBattles); err == nil {
				m.battles = battles
			}
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current scores.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			s.Mode,
			s.Date(),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		confirming := m.confirmClear
		m.confirmClear = false

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextMode):
			m.cursor = (m.cursor + 1) % len(m.filters)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevMode):
			m.cursor = (m.cursor - 1 + len(m.filters)) % len(m.filters)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			if !confirming {
				m.confirmClear = len(m.scores) > 0
				return m, nil
			}
			if m.store != nil {
				//nolint:errcheck // Reload shows whatever is left
				m.store.ClearScores(m.mode())
			}
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := m.palette.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	title := fmt.Sprintf("HIGH SCORES - %s", m.filters[m.cursor].title)
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(title), m.width, len(title)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}
	b.WriteString("\n")

	if m.mode() == "battle" {
		b.WriteString(m.renderBattles())
		b.WriteString("\n")
	}

	helpStyle := m.palette.NewStyle().Foreground(lipgloss.Color("241"))
	if m.confirmClear {
		warn := m.palette.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
		b.WriteString(warn.Render(fmt.Sprintf("Press x again to clear %s scores", strings.ToLower(m.filters[m.cursor].title))))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the scoreboard with a sidebar of modes.
func (m ScoreboardModel) renderWideLayout() string {
	sidebarStyle := m.palette.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Modes\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, f := range m.filters {
		cursor := "  "
		style := m.palette.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + truncate(f.title, sidebarWidth-6)))
		sidebar.WriteString("\n")
	}

	tableStyle := m.palette.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the scoreboard with mode tabs above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := m.palette.NewStyle().Foreground(lipgloss.Color("241"))
	activeTabStyle := m.palette.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.filters))
	plain := 0
	for i, f := range m.filters {
		name := f.mode
		if name == "" {
			name = "all"
		}
		plain += len(name) + 3
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(" " + name + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if plain > m.width-4 {
		tabLine = fmt.Sprintf("< %s >", m.filters[m.cursor].title)
		plain = len(tabLine)
	}
	b.WriteString(centerText(tabLine, m.width, plain))
	b.WriteString("\n\n")

	tableStyle := m.palette.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.scores) == 0 {
		emptyStyle := m.palette.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// renderBattles renders the win/loss record and the latest battles.
func (m ScoreboardModel) renderBattles() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Record vs CPU: %d won, %d lost\n", m.tally.Wins, m.tally.Losses)
	for _, r := range m.battles {
		outcome := "lost"
		if r.PlayerWon {
			outcome = "won "
		}
		fmt.Fprintf(&b, "  %s  %s  %6d - %-6d  %s\n",
			r.CreatedAt.Format("2006-01-02"), outcome, r.PlayerScore, r.CPUScore, r.Duration.Round(time.Second))
	}
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}
