package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shape-fusion/internal/games/fusion/core"
	"github.com/vovakirdan/shape-fusion/internal/games/fusion/levels"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check level files for errors",
	Long: `Loads every level file and reports layout problems: unknown tokens,
ragged rows, bad move limits, unpaired or duplicated portals, and
duplicate level ids. Pieces that start resting on a portal are reported
as warnings: only a falling piece enters a portal.

Without a directory the built-in campaign is checked.

Examples:
  fusion validate
  fusion validate ./my-levels`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(_ *cobra.Command, args []string) error {
	loader := levels.Campaign()
	source := "built-in campaign"
	if len(args) > 0 {
		loader = levels.NewDirLoader(expandHome(args[0]))
		source = args[0]
	}
	loader.MaxGravityPasses = fusionCfg.Rules.MaxGravityPasses
	loader.Logger = logger

	lvls, problems, err := loader.Validate()
	if err != nil {
		return fmt.Errorf("validate %s: %w", source, err)
	}

	for _, p := range problems {
		fmt.Printf("  FAIL  %s\n", p.Error())
	}
	for _, w := range portalWarnings(lvls) {
		fmt.Printf("  WARN  %s\n", w)
	}
	fmt.Printf("%s: %d level(s) ok, %d problem(s)\n", source, len(lvls)-countDuplicates(problems), len(problems))

	if len(problems) > 0 {
		return fmt.Errorf("%d invalid level file(s)", len(problems))
	}
	return nil
}

// countDuplicates counts problems on levels that loaded but clash by id.
func countDuplicates(problems []levels.FileError) int {
	n := 0
	for _, p := range problems {
		if levels.IsDuplicateID(p.Err) {
			n++
		}
	}
	return n
}

// portalWarnings lists pieces that sit on a portal in a level's starting board.
// They never fire that portal unless they fall onto it later.
func portalWarnings(lvls []levels.Level) []string {
	var out []string
	for _, l := range lvls {
		if l.Board == nil {
			continue
		}
		for _, p := range core.PiecesOnPortals(l.Board) {
			out = append(out, fmt.Sprintf("%s: piece at %s starts on portal %q and will not enter it",
				l.FilePath, p.From, p.PortalID))
		}
	}
	return out
}
