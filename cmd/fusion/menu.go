package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shape-fusion/internal/core"
	"github.com/vovakirdan/shape-fusion/internal/games/fusion"
	"github.com/vovakirdan/shape-fusion/internal/platform/tui"
	"github.com/vovakirdan/shape-fusion/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the interactive menu",
	Long: `Start Shape Fusion in interactive menu mode.

Pick the campaign or random boards. After a game ends
you return to the menu. Tab opens the records screen.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Records
  Q            - Quit

Examples:
  fusion menu
  fusion menu --theme neon
  fusion menu --db ./rounds.db`,
	Annotations: map[string]string{interactive: "true"},
	RunE:        runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	for {
		res, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = res.Config

		switch {
		case res.Quit:
			return nil

		case res.WantsScoreboard:
			back, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				logger.Error("records screen", "error", err)
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if !back {
				return nil
			}

		default:
			level, ok := pickLevel(res.GameID, store, cfg)
			if !ok {
				continue
			}
			// Fresh board layout for every game unless the seed is pinned
			if flagSeed == 0 {
				cfg.Seed = time.Now().UnixNano()
			}
			if err := launch(res.GameID, level, store, cfg); err != nil {
				logger.Error("game ended with error", "game", res.GameID, "error", err)
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}

// pickLevel shows the level picker for the campaign. ok is false when the
// player backed out of it.
func pickLevel(gameID string, store *storage.Store, cfg core.RuntimeConfig) (level int, ok bool) {
	if gameID != fusion.GameID {
		return 0, true
	}
	sel, err := tui.RunLevelSelector(store, cfg)
	if err != nil {
		logger.Error("level picker", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 0, false
	}
	if sel == nil {
		return 0, false
	}
	return sel.Level, true
}
