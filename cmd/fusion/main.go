// fusion is a terminal grid puzzle: slide shapes, let them fall, fuse matching neighbors.
//
// Usage:
//
//	fusion                      - Start the menu (same as "fusion menu")
//	fusion play [fusion_random] - Play the campaign or random boards directly
//	fusion levels               - List campaign levels
//	fusion validate [dir]       - Check level files for errors
//	fusion scores [game]        - Show recorded rounds and best results
//	fusion serve                - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible random boards
//	--db <path>           - Set database path (default: ~/.fusion/rounds.db)
//	--config <path>       - Custom config YAML
//	--difficulty <preset> - easy, normal, hard, fixed
//	--levels <dir>        - Load levels from a directory instead of the campaign
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/shape-fusion/internal/config"
	"github.com/vovakirdan/shape-fusion/internal/games/fusion"
	"github.com/vovakirdan/shape-fusion/internal/games/fusion/levels"
	"github.com/vovakirdan/shape-fusion/internal/platform/tui"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevelsDir  string
	flagTheme      string
	flagLogLevel   string
	flagLogFile    string

	// Set up in PersistentPreRunE
	logger    *log.Logger
	logCloser io.Closer
	fusionCfg config.FusionConfig
)

// interactive marks commands that own the terminal; their logs stay off stderr.
const interactive = "interactive"

func main() {
	err := rootCmd.Execute()
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fusion",
	Short: "Shape Fusion - a falling-shapes puzzle in your terminal",
	Long: `Shape Fusion is a grid puzzle played in the terminal.

Select a piece and slide it one cell left or right. Pieces fall,
and two identical shapes side by side or stacked fuse and vanish,
possibly setting off cascades. Portals teleport a piece once.
Clear the board within the move limit.

Available commands:
  menu      - Interactive menu (default)
  play      - Play the campaign or random boards directly
  levels    - List campaign levels
  validate  - Check level files
  scores    - Show recorded rounds
  serve     - Start SSH server for remote play

Examples:
  fusion
  fusion play --level 3
  fusion play fusion_random --difficulty hard --seed 42
  fusion validate ./my-levels
  fusion serve --ssh :2222`,
	Annotations:       map[string]string{interactive: "true"},
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runMenu,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed for random boards (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.fusion/rounds.db", "Path to rounds database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLevelsDir, "levels", "", "Load levels from this directory instead of the built-in campaign")
	pf.StringVar(&flagTheme, "theme", "default", "Color theme: "+strings.Join(tui.ThemeNames(), ", "))
	pf.StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup builds the logger, loads config and levels, and configures the game.
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	logger, err = newLogger(cmd.Annotations[interactive] == "true")
	if err != nil {
		return err
	}
	log.SetDefault(logger)

	theme, ok := tui.ThemeByName(flagTheme)
	if !ok {
		return fmt.Errorf("unknown theme %q (choose from %s)", flagTheme, strings.Join(tui.ThemeNames(), ", "))
	}
	tui.SetTheme(theme)

	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		return fmt.Errorf("unknown difficulty %q (choose from easy, normal, hard, fixed)", flagDifficulty)
	}

	fusionCfg, err = config.LoadFusion(flagConfig)
	if err != nil {
		return err
	}
	if flagDifficulty != "" {
		config.ApplyFusionPreset(&fusionCfg, preset)
	}
	if err := fusionCfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	var lvls []levels.Level
	if flagLevelsDir != "" {
		loader := levels.NewDirLoader(expandHome(flagLevelsDir))
		loader.MaxGravityPasses = fusionCfg.Rules.MaxGravityPasses
		loader.Logger = logger
		lvls, err = loader.LoadAll()
		if err != nil {
			return fmt.Errorf("load levels from %s: %w", flagLevelsDir, err)
		}
		if len(lvls) == 0 {
			return fmt.Errorf("no levels found in %s", flagLevelsDir)
		}
		logger.Info("levels loaded", "dir", flagLevelsDir, "count", len(lvls))
	}

	fusion.Configure(fusion.Options{
		Config: fusionCfg,
		Levels: lvls,
		Logger: logger,
	})
	return nil
}

// newLogger creates the logger from the log flags. Interactive commands
// discard logs unless --log-file is set, since stderr shares the screen.
func newLogger(quiet bool) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}

	var out io.Writer = os.Stderr
	switch {
	case flagLogFile != "":
		path := expandHome(flagLogFile)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		logCloser = f
		out = f
	case quiet:
		out = io.Discard
	}

	return log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "fusion",
	}), nil
}

// expandHome replaces a leading ~ with the home directory.
func expandHome(p string) string {
	if !strings.HasPrefix(p, "~") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}
