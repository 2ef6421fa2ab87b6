// Package registry holds the playable modes. Modes register themselves in init(),
// so the CLI, menus and SSH server find them without importing each one by name.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/shape-fusion/internal/core"
)

// ErrUnknownGame is returned by Create for an unregistered ID.
var ErrUnknownGame = errors.New("unknown game")

// Game is the interface every playable mode implements.
// Games contain pure logic with no Bubble Tea dependency; the platform maps keys to
// actions, drives ticks and turns the screen buffer into terminal output.
type Game interface {
	// ID is the mode's stable key, used on the command line and as the storage key
	// for its rounds.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts the mode from scratch with the given screen size, tick rate and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick with the actions pressed since the last one.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared screen buffer.
	Render(dst *core.Screen)

	// State returns the current level, moves and outcome.
	State() core.GameState
}

// Resizable is implemented by games that can follow a terminal resize
// without losing the current round. Games that don't implement it are Reset.
type Resizable interface {
	Resize(w, h int)
}

// LevelStarter is implemented by games that can open at a chosen level.
// Levels are 1-indexed; 0 keeps the game's default.
type LevelStarter interface {
	StartAt(level int)
}

// GameInfo describes a registered mode. Order sorts menus; ties sort by ID.
type GameInfo struct {
	ID    string
	Title string
	Order int
}

// Factory creates a fresh game instance.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a mode. It panics on an empty or duplicate ID, both of which are
// programming errors caught at startup.
func Register(info GameInfo, f Factory) {
	if info.ID == "" || f == nil {
		panic("registry: Register needs an ID and a factory")
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", info.ID))
	}
	if info.Title == "" {
		info.Title = info.ID
	}
	entries[info.ID] = entry{info: info, factory: f}
}

// List returns every registered mode in menu order.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}
	slices.SortFunc(result, func(a, b GameInfo) int {
		if a.Order != b.Order {
			return a.Order - b.Order
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return result
}

// Lookup returns the metadata of a registered mode.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Create instantiates a mode by ID.
func Create(id string) (Game, error) {
	return CreateAt(id, 0)
}

// CreateAt instantiates a mode by ID, opening at level when the game
// supports it and level is positive.
func CreateAt(id string, level int) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: %w %q", ErrUnknownGame, id)
	}
	g := e.factory()
	if s, ok := g.(LevelStarter); ok && level > 0 {
		s.StartAt(level)
	}
	return g, nil
}

// Exists reports whether a mode with the given ID is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}
