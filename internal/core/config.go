package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic boards.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 30)
	Seed     int64 // RNG seed for random boards
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickInterval is the wall time between two simulation ticks.
func (c RuntimeConfig) TickInterval() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = DefaultConfig().TickRate
	}
	return time.Second / time.Duration(rate)
}

// TicksFor converts a duration in milliseconds to a tick count, at least 1 for
// positive durations.
func (c RuntimeConfig) TicksFor(ms int) int {
	if ms <= 0 {
		return 0
	}
	rate := c.TickRate
	if rate <= 0 {
		rate = DefaultConfig().TickRate
	}
	ticks := ms * rate / 1000
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	LevelID   string
	Mode      string
	Moves     int
	MoveLimit int
	Remaining int  // Pieces left on the board
	Animating bool // A move is being played back
	GameOver  bool // The round is won or lost
	Won       bool
}

// RoundResult describes a finished round, reported once per round.
type RoundResult struct {
	GameID    string // Storage key; empty means the running game's ID
	LevelID   string
	Mode      string
	Moves     int
	MoveLimit int
	Won       bool
	UndoUsed  bool
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State    GameState
	Finished *RoundResult // Set on the tick a round ends
	Quit     bool         // The game asked to leave
}
