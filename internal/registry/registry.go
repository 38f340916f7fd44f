// Package registry keeps the set of playable modes.
// Each mode registers a factory in init(), so the platform can list and start
// modes by id without importing them one by one.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Game is what the platform drives: one mode of play behind a fixed-tick loop.
// Implementations hold pure logic and never touch the terminal.
type Game interface {
	// ID is the mode id ("classic", "speed", "battle"), used on the
	// command line and as the mode column of stored scores.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a fresh round. Called at start and on restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one tick of cfg.TickDuration().
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst.
	Render(dst *core.Screen)

	// State returns score, lines and the game-over/paused flags.
	State() core.GameState
}

// Resizer is implemented by games that can adapt to a new terminal size
// without restarting.
type Resizer interface {
	Resize(w, h int)
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new game instance.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	order     []string
	mu        sync.RWMutex
)

// Register adds a factory. Panics on a duplicate id.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
	order = append(order, id)
}

// List returns the registered modes in registration order.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(order))
	for _, id := range order {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}
	return result
}

// IDs returns the registered ids sorted alphabetically.
func IDs() []string {
	mu.RLock()
	defer mu.RUnlock()

	ids := append([]string(nil), order...)
	sort.Strings(ids)
	return ids
}

// Create instantiates a game by id.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
