package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shape-fusion/internal/games/fusion"
	"github.com/vovakirdan/shape-fusion/internal/games/fusion/core"
	"github.com/vovakirdan/shape-fusion/internal/games/fusion/levels"
	"github.com/vovakirdan/shape-fusion/internal/storage"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List campaign levels",
	Long: `Shows the levels of the campaign (or of --levels <dir>) with their
board size, move limit and your best result.

Examples:
  fusion levels
  fusion levels --levels ./my-levels
  fusion levels show 03`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

var levelsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a level's starting board",
	Args:  cobra.ExactArgs(1),
	RunE:  runLevelsShow,
}

func init() {
	levelsCmd.AddCommand(levelsShowCmd)
}

func runLevels(_ *cobra.Command, _ []string) error {
	lvls, err := fusion.Levels()
	if err != nil {
		return err
	}
	if len(lvls) == 0 {
		fmt.Println("No levels available.")
		return nil
	}

	// Best results are optional
	var store *storage.Store
	if s, err := storage.Open(flagDBPath); err == nil {
		store = s
		defer store.Close()
	} else {
		logger.Debug("no rounds database", "error", err)
	}

	maxName := len("Name")
	for _, l := range lvls {
		maxName = max(maxName, len([]rune(l.Name)))
	}

	fmt.Printf("  %-3s  %-4s  %-*s  %-6s  %-6s  %-7s  %s\n", "#", "ID", maxName, "Name", "Size", "Limit", "Pieces", "Best")
	fmt.Printf("  %-3s  %-4s  %-*s  %-6s  %-6s  %-7s  %s\n", "-", "--", maxName, "----", "----", "-----", "------", "----")

	for i, l := range lvls {
		best := "-"
		if store != nil {
			if moves, ok, err := store.BestMoves(fusion.GameID, l.ID); err == nil && ok {
				best = fmt.Sprintf("%d", moves)
			}
		}
		size := fmt.Sprintf("%dx%d", l.Board.Rows, l.Board.Cols)
		fmt.Printf("  %-3d  %-4s  %-*s  %-6s  %-6d  %-7d  %s\n",
			i+1, l.ID, maxName, l.Name, size, l.MoveLimit, l.Board.CountMovable(), best)
	}

	fmt.Println()
	fmt.Println("Run 'fusion play --level <#>' to play a level.")
	return nil
}

func runLevelsShow(_ *cobra.Command, args []string) error {
	lvls, err := fusion.Levels()
	if err != nil {
		return err
	}
	i := levels.IndexOf(lvls, args[0])
	if i < 0 {
		return fmt.Errorf("unknown level %q", args[0])
	}

	l := lvls[i]
	fmt.Printf("%s - %s (move limit %d)\n\n", l.ID, l.Name, l.MoveLimit)
	fmt.Println(core.RenderBoard(l.Board))
	return nil
}
