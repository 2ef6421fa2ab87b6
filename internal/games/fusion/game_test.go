package fusion

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/shape-fusion/internal/config"
	platformcore "github.com/vovakirdan/shape-fusion/internal/core"
	"github.com/vovakirdan/shape-fusion/internal/games/fusion/core"
	"github.com/vovakirdan/shape-fusion/internal/games/fusion/levels"
	"github.com/vovakirdan/shape-fusion/internal/registry"
)

func instantConfig() config.FusionConfig {
	cfg := config.DefaultFusionConfig()
	cfg.Animation = config.AnimationConfig{}
	return cfg
}

func testLevel(id string, limit int, rows ...string) levels.Level {
	return levels.Level{ID: id, Name: "Level " + id, MoveLimit: limit, Layout: rows, Board: core.MustParseLayout(rows...)}
}

func newTestGame(t *testing.T, cfg config.FusionConfig, mode core.Mode, lvls ...levels.Level) *Game {
	t.Helper()
	Configure(Options{Config: cfg, Levels: lvls, Logger: log.New(io.Discard)})
	t.Cleanup(func() {
		Configure(Options{Config: config.DefaultFusionConfig()})
	})

	g := New(mode)
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 7})
	return g
}

func press(g *Game, actions ...platformcore.Action) platformcore.StepResult {
	var res platformcore.StepResult
	for _, a := range actions {
		res = g.Step(platformcore.FrameOf(a))
	}
	return res
}

func TestGamesRegistered(t *testing.T) {
	for _, id := range []string{GameID, RandomGameID} {
		require.True(t, registry.Exists(id), id)
		g, err := registry.Create(id)
		require.NoError(t, err)
		assert.Equal(t, id, g.ID())
	}
}

func TestGameWinReportsFinishedOnce(t *testing.T) {
	g := newTestGame(t, instantConfig(), core.ModeCustom, testLevel("a", 3, "● . ●"))
	require.Equal(t, core.C(0, 0), g.Cursor())

	press(g, platformcore.ActionSelect)
	res := press(g, platformcore.ActionRight)

	require.NotNil(t, res.Finished)
	assert.True(t, res.Finished.Won)
	assert.Equal(t, "a", res.Finished.LevelID)
	assert.Equal(t, 1, res.Finished.Moves)
	assert.Equal(t, "custom", res.Finished.Mode)
	assert.Equal(t, GameID, res.Finished.GameID)
	assert.True(t, res.State.GameOver)
	assert.True(t, res.State.Won)
	assert.Equal(t, 0, res.State.Remaining)

	// Later ticks do not report again
	res = g.Step(platformcore.NewInputFrame())
	assert.Nil(t, res.Finished)
}

func TestGameLossWhenMovesRunOut(t *testing.T) {
	g := newTestGame(t, instantConfig(), core.ModeCustom, testLevel("a", 1, "● . . ●"))

	press(g, platformcore.ActionSelect)
	res := press(g, platformcore.ActionRight)

	require.NotNil(t, res.Finished)
	assert.False(t, res.Finished.Won)
	assert.True(t, res.State.GameOver)
	assert.False(t, res.State.Won)

	// Select on a lost round retries the level
	res = press(g, platformcore.ActionSelect)
	assert.False(t, res.State.GameOver)
	assert.Equal(t, 0, res.State.Moves)
}

func TestGameInvalidMoveIgnored(t *testing.T) {
	g := newTestGame(t, instantConfig(), core.ModeCustom, testLevel("a", 3, "● X ●"))

	press(g, platformcore.ActionSelect)
	res := press(g, platformcore.ActionRight)

	assert.Nil(t, res.Finished)
	assert.Equal(t, 0, res.State.Moves)
	_, selected := g.Controller().Session().Selected()
	assert.True(t, selected, "selection survives a rejected move")
}

func TestGamePlaybackBlocksInput(t *testing.T) {
	g := newTestGame(t, config.DefaultFusionConfig(), core.ModeCustom, testLevel("a", 3, "● . ●"))

	press(g, platformcore.ActionSelect)
	res := press(g, platformcore.ActionRight)
	require.Nil(t, res.Finished)
	require.True(t, res.State.Animating)
	require.True(t, g.Controller().Session().Busy())

	// Authoritative board is still the pre-move board
	assert.Equal(t, 2, res.State.Remaining)

	var finished []*platformcore.RoundResult
	ticks := 0
	for g.Animating() && ticks < 1000 {
		res = press(g, platformcore.ActionUndo)
		ticks++
		if res.Finished != nil {
			finished = append(finished, res.Finished)
		}
	}

	require.False(t, g.Animating())
	assert.Greater(t, ticks, 1)
	require.Len(t, finished, 1)
	assert.True(t, finished[0].Won)
	assert.False(t, finished[0].UndoUsed, "undo pressed during playback is ignored")
}

func TestGameUndo(t *testing.T) {
	g := newTestGame(t, instantConfig(), core.ModeCustom, testLevel("a", 5, "● . . ●"))

	press(g, platformcore.ActionSelect, platformcore.ActionRight)
	assert.Equal(t, 1, g.State().Moves)

	press(g, platformcore.ActionUndo)
	assert.Equal(t, 0, g.State().Moves)
	assert.Equal(t, "● . . ●", core.RenderBoard(g.Controller().Session().Board()))
	assert.Equal(t, "Move undone", g.message)

	// The cursor followed the piece, so step back onto it
	press(g, platformcore.ActionLeft, platformcore.ActionSelect, platformcore.ActionRight, platformcore.ActionUndo)
	assert.Equal(t, 1, g.State().Moves)
	assert.Equal(t, "Undo not available", g.message)
}

func TestGameCursorStaysOnBoard(t *testing.T) {
	g := newTestGame(t, instantConfig(), core.ModeCustom, testLevel("a", 5, ". ●", "● X"))
	assert.Equal(t, core.C(0, 1), g.Cursor())

	press(g, platformcore.ActionUp, platformcore.ActionRight)
	assert.Equal(t, core.C(0, 1), g.Cursor())

	press(g, platformcore.ActionDown, platformcore.ActionDown, platformcore.ActionLeft, platformcore.ActionLeft)
	assert.Equal(t, core.C(1, 0), g.Cursor())
}

func TestGameSelectOnlyPieces(t *testing.T) {
	g := newTestGame(t, instantConfig(), core.ModeCustom, testLevel("a", 5, "● . X ●"))
	session := g.Controller().Session()

	press(g, platformcore.ActionRight, platformcore.ActionSelect)
	_, ok := session.Selected()
	assert.False(t, ok, "empty cell cannot be selected")

	press(g, platformcore.ActionLeft, platformcore.ActionSelect)
	sel, ok := session.Selected()
	require.True(t, ok)
	assert.Equal(t, core.C(0, 0), sel)

	// Pressing select again deselects
	press(g, platformcore.ActionSelect)
	_, ok = session.Selected()
	assert.False(t, ok)
}

func TestGameBackAndQuit(t *testing.T) {
	g := newTestGame(t, instantConfig(), core.ModeCustom, testLevel("a", 5, "● . ●"))

	press(g, platformcore.ActionSelect)
	res := press(g, platformcore.ActionBack)
	assert.False(t, res.Quit, "back clears the selection first")

	res = press(g, platformcore.ActionBack)
	assert.True(t, res.Quit)

	res = press(g, platformcore.ActionQuit)
	assert.True(t, res.Quit)
}

func TestGameNextLevelAndToggle(t *testing.T) {
	g := newTestGame(t, instantConfig(), core.ModeCustom,
		testLevel("a", 5, "● . ●"),
		testLevel("b", 5, "■ . ■"),
	)

	press(g, platformcore.ActionNextLevel)
	assert.Equal(t, "b", g.State().LevelID)

	press(g, platformcore.ActionNextLevel)
	assert.Equal(t, "a", g.State().LevelID, "level list wraps")

	press(g, platformcore.ActionToggleMode)
	assert.Equal(t, "random", g.State().Mode)
	assert.True(t, strings.HasPrefix(g.State().LevelID, "random-"))
	assert.Equal(t, defaultProceduralLimit(t), g.State().MoveLimit)

	press(g, platformcore.ActionToggleMode)
	assert.Equal(t, "custom", g.State().Mode)
	assert.Equal(t, "a", g.State().LevelID)
}

// defaultProceduralLimit is the move limit of the first random board under defaults.
func defaultProceduralLimit(t *testing.T) int {
	t.Helper()
	cfg := config.DefaultFusionConfig()
	return config.NewRamp(cfg.Difficulty).Next(cfg.Rules, cfg.Generator, 0).MoveLimit
}

func TestGameWinThenSelectAdvances(t *testing.T) {
	g := newTestGame(t, instantConfig(), core.ModeCustom,
		testLevel("a", 5, "● . ●"),
		testLevel("b", 5, "■ . ■"),
	)

	press(g, platformcore.ActionSelect, platformcore.ActionRight)
	require.True(t, g.State().Won)

	press(g, platformcore.ActionSelect)
	assert.Equal(t, "b", g.State().LevelID)
	assert.False(t, g.State().GameOver)
}

func TestGameStartAt(t *testing.T) {
	Configure(Options{
		Config: instantConfig(),
		Levels: []levels.Level{testLevel("a", 5, "● . ●"), testLevel("b", 5, "■ . ■")},
		Logger: log.New(io.Discard),
	})
	defer Configure(Options{Config: config.DefaultFusionConfig()})

	g := New(core.ModeCustom)
	g.StartAt(2)
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30})
	assert.Equal(t, "b", g.State().LevelID)

	// The override is used once
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30})
	assert.Equal(t, "a", g.State().LevelID)
}

func TestRandomGameStartsProcedural(t *testing.T) {
	g := newTestGame(t, instantConfig(), core.ModeProcedural, testLevel("a", 5, "● . ●"))
	assert.Equal(t, RandomGameID, g.ID())
	assert.Equal(t, "random", g.State().Mode)

	gen := GenParams(instantConfig())
	b := g.Controller().Session().Board()
	assert.Equal(t, gen.Rows, b.Rows)
	assert.Equal(t, gen.Cols, b.Cols)
	assert.True(t, core.IsSettled(b))
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t, instantConfig(), core.ModeCustom, testLevel("a", 3, "● . ●", "X X X"))
	screen := platformcore.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()
	assert.Contains(t, out, "Shape Fusion")
	assert.Contains(t, out, "Moves: 0/3")
	assert.Contains(t, out, "Pieces: 2")
	assert.Contains(t, out, "[●]")
	assert.Contains(t, out, "▓")

	press(g, platformcore.ActionSelect)
	g.Render(screen)
	assert.Contains(t, screen.String(), "[SELECTED]")

	press(g, platformcore.ActionRight)
	g.Render(screen)
	assert.Contains(t, screen.String(), "Board Cleared!")
}

func TestGameResizeKeepsRound(t *testing.T) {
	g := newTestGame(t, instantConfig(), core.ModeCustom, testLevel("a", 5, "● . . ●"))
	press(g, platformcore.ActionSelect, platformcore.ActionRight)

	g.Resize(120, 40)
	assert.Equal(t, 1, g.State().Moves)
}

func TestGenParamsFromConfig(t *testing.T) {
	cfg := config.DefaultFusionConfig()
	cfg.Generator.Rows = 7
	cfg.Generator.MinPieces, cfg.Generator.MaxPieces = 3, 5
	cfg.Rules.MaxGravityPasses = 2

	p := GenParams(cfg)
	assert.Equal(t, 7, p.Rows)
	assert.Equal(t, 14, p.Cols)
	assert.Equal(t, 3, p.MinPieces)
	assert.Equal(t, 5, p.MaxPieces)
	assert.Equal(t, 2, p.MaxGravityPasses)
}
