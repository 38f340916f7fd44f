// Package tetris adapts the falling-block engine to the registry.Game
// interface. Each mode registers under its own id: classic, speed and battle.
package tetris

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty chosen via CLI, menu or settings
var difficultyPreset = config.DifficultyNormal

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the starting difficulty. Unknown names mean normal.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficultyPreset(preset)
	if err != nil {
		p = config.DifficultyNormal
	}
	difficultyPreset = p
}

// DifficultyPreset returns the difficulty new games start with.
func DifficultyPreset() config.DifficultyPreset {
	return difficultyPreset
}

// BattleResult describes a finished battle.
type BattleResult struct {
	PlayerScore int
	CPUScore    int
	PlayerWon   bool
	Duration    time.Duration
}

// Game implements registry.Game for one mode.
type Game struct {
	mode    engine.Mode
	runtime core.RuntimeConfig
	cfg     config.TetrisConfig
	preset  config.DifficultyPreset
	chosen  config.DifficultyPreset // per-game override of difficultyPreset
	rng     *rand.Rand

	session *engine.Session
	battle  *engine.Battle // nil outside battle mode

	events   []core.Event
	tick     uint64
	elapsed  time.Duration
	result   *BattleResult
	paused   bool
	tooSmall bool
}

// New creates a Classic game.
func New() *Game {
	return &Game{mode: engine.ModeClassic}
}

// NewSpeed creates a Speed game.
func NewSpeed() *Game {
	return &Game{mode: engine.ModeSpeed}
}

// NewBattle creates a Battle game against the CPU.
func NewBattle() *Game {
	return &Game{mode: engine.ModeBattle}
}

func init() {
	registry.Register(engine.ModeClassic.String(), func() registry.Game {
		return New()
	})
	registry.Register(engine.ModeSpeed.String(), func() registry.Game {
		return NewSpeed()
	})
	registry.Register(engine.ModeBattle.String(), func() registry.Game {
		return NewBattle()
	})
}

// ID returns the mode id used for CLI commands and stored scores.
func (g *Game) ID() string {
	return g.mode.String()
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.mode {
	case engine.ModeSpeed:
		return "Tetris (Speed)"
	case engine.ModeBattle:
		return "Tetris (Battle vs CPU)"
	default:
		return "Tetris"
	}
}

// Mode returns the engine mode.
func (g *Game) Mode() engine.Mode {
	return g.mode
}

// Reset initializes/restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadTetris(configPath)
	if err != nil {
		cfg = config.DefaultTetrisConfig()
	}
	g.cfg = cfg
	g.preset = difficultyPreset
	if g.chosen.Valid() {
		g.preset = g.chosen
	}

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.events = nil
	g.tick = 0
	g.elapsed = 0
	g.result = nil
	g.paused = false
	g.Resize(runtime.ScreenW, runtime.ScreenH)

	ecfg := engineConfig(cfg, g.preset)
	g.battle = nil
	var policy engine.Policy
	switch g.mode {
	case engine.ModeSpeed:
		policy = engine.NewSpeed(engine.SpeedParams{
			Decay:     cfg.Speed.Decay,
			Min:       cfg.Speed.Floor(),
			Threshold: cfg.Speed.Threshold,
		})
	case engine.ModeBattle:
		// The opponent gets its own generator so the player's piece
		// sequence does not depend on how often the CPU decides.
		cpuRNG := rand.New(rand.NewSource(g.rng.Int63()))
		g.battle = engine.NewBattle(ecfg, engine.AIParams{
			Interval:     cfg.Battle.AIInterval(),
			MoveChance:   cfg.Battle.MoveChance,
			RotateChance: cfg.Battle.RotateChance,
		}, cpuRNG)
		policy = g.battle
	default:
		policy = engine.NewClassic()
	}

	g.session = engine.NewSession(ecfg, policy, engine.NewRandomSource(g.rng))
	g.session.SetListener(engine.ListenerFuncs{
		OnLinesCleared: func(n int) {
			g.emit(core.Event{Kind: core.EventLinesCleared, Count: n})
		},
		OnGameOver: func(score int, mode engine.Mode) {
			g.emit(core.Event{Kind: core.EventGameOver, Score: score, Mode: mode.String()})
		},
	})
}

// engineConfig converts the YAML configuration into the engine's rule set.
func engineConfig(cfg config.TetrisConfig, preset config.DifficultyPreset) engine.Config {
	formula, err := engine.ParseFormula(cfg.Scoring.Formula)
	if err != nil {
		formula = engine.Quadratic
	}
	d, err := engine.ParseDifficulty(string(preset))
	if err != nil {
		d = engine.Normal
	}
	return engine.Config{
		Timing: engine.Timing{
			Easy:   cfg.Timing.Interval(config.DifficultyEasy),
			Normal: cfg.Timing.Interval(config.DifficultyNormal),
			Hard:   cfg.Timing.Interval(config.DifficultyHard),
		},
		Scoring: engine.Scoring{
			Formula:    formula,
			LinePoints: cfg.Scoring.LinePoints,
		},
		Difficulty: d,
	}
}

// SetDifficulty overrides the package-wide preset for this game. It takes
// effect on the next Reset.
func (g *Game) SetDifficulty(p config.DifficultyPreset) {
	g.chosen = p
}

// Difficulty returns the preset the current round was started with.
func (g *Game) Difficulty() config.DifficultyPreset {
	return g.preset
}

// Resize updates the screen dimensions without restarting the game.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	minW, minH := g.minSize()
	g.tooSmall = w < minW || h < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.events = nil

	if in.Has(core.ActionPause) && !g.over() {
		g.paused = !g.paused
	}

	if g.paused || g.over() || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	for _, a := range in.Ordered() {
		g.apply(a)
		if g.over() {
			break
		}
	}

	if !g.over() {
		dt := g.runtime.TickDuration()
		g.elapsed += dt
		g.track(func() { g.session.Tick(dt) })
	}

	g.checkBattle()

	return core.StepResult{State: g.State(), Events: g.events}
}

// apply runs one piece command and records the matching events.
func (g *Game) apply(a core.Action) {
	s := g.session
	switch a {
	case core.ActionMoveLeft:
		s.MoveLeft()
	case core.ActionMoveRight:
		s.MoveRight()
	case core.ActionSoftDrop:
		s.SoftDrop()
	case core.ActionRotate:
		if s.Rotate() {
			g.emit(core.Event{Kind: core.EventRotated})
		}
	case core.ActionHardDrop:
		g.track(func() {
			if s.HardDrop() {
				g.emit(core.Event{Kind: core.EventHardDrop})
			}
		})
	}
}

// track runs fn and emits EventPieceLocked if a new piece spawned meanwhile.
func (g *Game) track(fn func()) {
	before := g.session.Pieces()
	fn()
	if g.session.Pieces() != before {
		g.emit(core.Event{Kind: core.EventPieceLocked})
	}
}

// checkBattle ends a battle as soon as either board tops out.
func (g *Game) checkBattle() {
	if g.battle == nil || g.result != nil {
		return
	}
	won, ok := engine.Winner(g.session, g.battle.Opponent())
	if !ok {
		return
	}
	g.result = &BattleResult{
		PlayerScore: g.session.Score(),
		CPUScore:    g.battle.Opponent().Score(),
		PlayerWon:   won,
		Duration:    g.elapsed,
	}
	if won {
		// The player's own session is still running; report the end here.
		g.emit(core.Event{Kind: core.EventGameOver, Score: g.session.Score(), Mode: g.mode.String()})
	}
}

func (g *Game) emit(e core.Event) {
	g.events = append(g.events, e)
}

func (g *Game) over() bool {
	return g.session.Over() || g.result != nil
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Score(),
		Lines:    g.session.Lines(),
		GameOver: g.over(),
		Paused:   g.paused,
	}
}

// BattleResult returns the outcome once a battle has finished.
func (g *Game) BattleResult() (BattleResult, bool) {
	if g.result == nil {
		return BattleResult{}, false
	}
	return *g.result, true
}

// Session exposes the player's engine session.
func (g *Game) Session() *engine.Session {
	return g.session
}

// Opponent returns the CPU session in battle mode, nil otherwise.
func (g *Game) Opponent() *engine.Session {
	if g.battle == nil {
		return nil
	}
	return g.battle.Opponent()
}
