package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shape-fusion/internal/games/fusion"
	"github.com/vovakirdan/shape-fusion/internal/registry"
	"github.com/vovakirdan/shape-fusion/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show recorded rounds and best results",
	Long: `Display round statistics for a game. The campaign (fusion) shows the
best result per level; random boards (fusion_random) show the latest rounds.

Examples:
  fusion scores
  fusion scores fusion_random --limit 20
  fusion scores fusion_random --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of recent rounds to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded rounds for the game")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := fusion.GameID
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (choose from %s or %s)", gameID, fusion.GameID, fusion.RandomGameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening rounds database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRounds(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared all rounds for %s.\n", game.Title())
		return nil
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}

	fmt.Printf("Records - %s\n\n", game.Title())
	if stats.Rounds == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'fusion play %s' to play your first round!\n", gameID)
		return nil
	}

	fmt.Printf("Rounds: %d  Cleared: %d  Lost: %d  Avg moves: %.1f  Undo used: %d\n",
		stats.Rounds, stats.Wins, stats.Losses(), stats.AvgMoves, stats.UndoRounds)
	fmt.Printf("Last played: %s\n\n", stats.LastPlayed.Local().Format("2006-01-02 15:04"))

	if gameID == fusion.GameID {
		return printLevelBests(store, gameID)
	}
	return printRecentRounds(store, gameID, flagScoresLimit)
}

func printLevelBests(store *storage.Store, gameID string) error {
	bests, err := store.LevelBests(gameID)
	if err != nil {
		return err
	}

	fmt.Printf("  %-6s  %-6s  %-5s  %s\n", "Level", "Tries", "Wins", "Best")
	fmt.Printf("  %-6s  %-6s  %-5s  %s\n", "-----", "-----", "----", "----")
	for _, b := range bests {
		best := "-"
		if b.BestMoves > 0 {
			best = fmt.Sprintf("%d", b.BestMoves)
		}
		fmt.Printf("  %-6s  %-6d  %-5d  %s\n", b.LevelID, b.Attempts, b.Wins, best)
	}
	return nil
}

func printRecentRounds(store *storage.Store, gameID string, limit int) error {
	rounds, err := store.RecentRounds(gameID, limit)
	if err != nil {
		return err
	}

	fmt.Printf("  %-16s  %-7s  %-8s  %s\n", "Board", "Moves", "Result", "Date")
	fmt.Printf("  %-16s  %-7s  %-8s  %s\n", "-----", "-----", "------", "----")
	for _, r := range rounds {
		result := "lost"
		if r.Won {
			result = "cleared"
		}
		moves := fmt.Sprintf("%d/%d", r.Moves, r.MoveLimit)
		fmt.Printf("  %-16s  %-7s  %-8s  %s\n", r.LevelID, moves, result, r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
