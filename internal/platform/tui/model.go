package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/audio"
	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Sounds is the audio surface the UI drives. *audio.Engine implements it.
type Sounds interface {
	Play(s audio.Sound)
	PlayLines(n int)
	StartMusic()
	StopMusic()
	SetVolumes(music, sfx float64)
}

type silence struct{}

func (silence) Play(audio.Sound)            {}
func (silence) PlayLines(int)               {}
func (silence) StartMusic()                 {}
func (silence) StopMusic()                  {}
func (silence) SetVolumes(float64, float64) {}

// Options configures the front end. Zero values are usable: no database,
// no sound, default settings kept in memory.
type Options struct {
	Store        *storage.Store
	Sounds       Sounds
	Settings     config.Settings
	SettingsPath string // where the settings editor saves; empty keeps edits in memory
	Runtime      core.RuntimeConfig
	Logger       *log.Logger
	Palette      *Palette
	User         string // SSH user, for logs
}

func (o Options) withDefaults() Options {
	if o.Sounds == nil {
		o.Sounds = silence{}
	}
	if o.Palette == nil {
		o.Palette = defaultPalette()
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Runtime.TickRate <= 0 {
		o.Runtime.TickRate = 60
	}
	o.Settings.Normalize()
	return o
}

// battleReporter is implemented by games that end in a battle result.
type battleReporter interface {
	BattleResult() (tetris.BattleResult, bool)
}

var runGen atomic.Int64

// GameModel runs one game: it maps keys through the player's bindings,
// steps the simulation on every tick, turns game events into sounds and
// persists the result once the game ends.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	keys       *KeyMap
	inputFrame core.InputFrame
	gameState  core.GameState
	gen        int
	standalone bool // quit the program instead of returning to a menu
	quitting   bool
	backToMenu bool
	scoreSaved bool
}

// NewGameModel creates a game model. Options should already carry defaults.
func NewGameModel(game registry.Game, opts Options) GameModel {
	cfg := opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		config:     cfg,
		keys:       NewKeyMap(opts.Settings.Controls),
		inputFrame: core.NewInputFrame(),
		gen:        int(runGen.Add(1)),
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.opts.Sounds.StartMusic()
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		m.opts.Sounds.StopMusic()
		return m, tea.Quit

	case action == core.ActionBack:
		// Leaving mid-game needs a pause first.
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			m.opts.Sounds.StopMusic()
			if m.standalone {
				return m, tea.Quit
			}
		}
		return m, nil

	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize keeps the game running when it can adapt to the new size;
// otherwise the round restarts, as long as it is not already over.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		m.opts.Sounds.StartMusic()
		return m, tickCmd(m.config.TickRate, m.gen)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.playEvents(result.Events)

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveResult()
		m.scoreSaved = true
		m.opts.Sounds.StopMusic()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate, m.gen)
}

// playEvents plays at most one placement sound per tick: a line clear
// drowns out the hard drop and the lock that caused it.
func (m GameModel) playEvents(events []core.Event) {
	var lines int
	var dropped, locked bool
	for _, e := range events {
		switch e.Kind {
		case core.EventLinesCleared:
			lines += e.Count
		case core.EventHardDrop:
			dropped = true
		case core.EventPieceLocked:
			locked = true
		case core.EventRotated:
			m.opts.Sounds.Play(audio.SoundRotate)
		case core.EventGameOver:
			m.opts.Sounds.Play(audio.SoundGameOver)
		}
	}

	switch {
	case lines > 0:
		m.opts.Sounds.PlayLines(lines)
	case dropped:
		m.opts.Sounds.Play(audio.SoundHardDrop)
	case locked:
		m.opts.Sounds.Play(audio.SoundLock)
	}
}

// saveResult stores the final score and, for battles, the match record.
func (m GameModel) saveResult() {
	store := m.opts.Store
	if store == nil {
		return
	}

	if m.gameState.Score > 0 {
		//nolint:errcheck // Best-effort save, game continues regardless
		store.SaveScore(m.game.ID(), m.gameState.Score)
	}

	br, ok := m.game.(battleReporter)
	if !ok {
		return
	}
	res, done := br.BattleResult()
	if !done {
		return
	}
	id, err := store.SaveBattle(storage.BattleRecord{
		PlayerScore: res.PlayerScore,
		CPUScore:    res.CPUScore,
		PlayerWon:   res.PlayerWon,
		Duration:    res.Duration,
	})
	if err != nil {
		m.opts.Logger.Warn("could not save battle", "error", err)
		return
	}
	m.opts.Logger.Info("battle finished",
		"match", id,
		"user", m.opts.User,
		"won", res.PlayerWon,
		"score", res.PlayerScore,
		"cpu", res.CPUScore,
	)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := config.DataPath("screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return m.opts.Palette.Render(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the game state as of the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Run plays a single game until the player quits or backs out.
func Run(game registry.Game, opts Options) error {
	model := NewGameModel(game, opts.withDefaults())
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
