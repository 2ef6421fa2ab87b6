package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/shape-fusion/internal/core"
	"github.com/vovakirdan/shape-fusion/internal/games/fusion"
	"github.com/vovakirdan/shape-fusion/internal/platform/tui"
	"github.com/vovakirdan/shape-fusion/internal/registry"
	"github.com/vovakirdan/shape-fusion/internal/storage"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play the campaign or random boards",
	Long: `Start playing directly, skipping the menu.

Games:
  fusion         - The level campaign (default). Without --level a level picker is shown.
  fusion_random  - Endless generated boards.

Controls:
  Arrows/HJKL/WASD - Move cursor
  Space/Enter      - Select or release a piece
  Left/Right       - Slide the selected piece one cell
  U                - Undo the last move (once per round)
  R                - Restart the board
  N                - Next board
  M                - Switch between campaign and random boards
  ?                - Show all keys
  Esc              - Drop selection, or leave
  Q/Ctrl+C         - Quit

Difficulty options (random boards):
  easy   - Generous move limit, few blockers
  normal - Starts at 30% difficulty, harder with every board cleared
  hard   - Tight move limit, many blockers
  fixed  - No progression

Examples:
  fusion play
  fusion play --level 5
  fusion play fusion_random --seed 42
  fusion play fusion_random --difficulty hard`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{interactive: "true"},
	RunE:        runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start at this campaign level (1-indexed)")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := fusion.GameID
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (choose from %s or %s)", gameID, fusion.GameID, fusion.RandomGameID)
	}

	cfg := runtimeConfig()
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	level := flagLevel
	if gameID == fusion.GameID && level == 0 {
		selection, err := tui.RunLevelSelector(store, cfg)
		if err != nil {
			return err
		}
		if selection == nil {
			return nil
		}
		level = selection.Level
	}
	return launch(gameID, level, store, cfg)
}

// launch creates a game and plays it until the player leaves.
func launch(gameID string, level int, store *storage.Store, cfg core.RuntimeConfig) error {
	game, err := registry.CreateAt(gameID, level)
	if err != nil {
		return err
	}
	logger.Info("starting game", "game", gameID, "level", level, "seed", cfg.Seed)

	if err := tui.Run(game, store, cfg, logger); err != nil {
		return fmt.Errorf("running %s: %w", gameID, err)
	}
	return nil
}

// runtimeConfig builds the runtime config from the flags and terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}
}

// openStore opens the rounds database. Play goes on without it when it fails.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open rounds database, results will not be saved", "path", flagDBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open rounds database: %v\n", err)
		return nil
	}
	return store
}
