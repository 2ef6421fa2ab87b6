package tui

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/shape-fusion/internal/core"
	"github.com/vovakirdan/shape-fusion/internal/games/fusion"
	"github.com/vovakirdan/shape-fusion/internal/storage"
)

// fakeGame records what the model feeds it.
type fakeGame struct {
	resets   int
	steps    int
	resized  [2]int
	actions  []core.Action
	finishOn int // Step number that reports a finished round
	quitOn   bool
}

func (g *fakeGame) ID() string               { return "fake" }
func (g *fakeGame) Title() string            { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *fakeGame) Render(dst *core.Screen)  { dst.DrawText(0, 0, "fake board") }
func (g *fakeGame) State() core.GameState    { return core.GameState{LevelID: "01"} }
func (g *fakeGame) Resize(w, h int)          { g.resized = [2]int{w, h} }

func (g *fakeGame) hasAction(a core.Action) bool {
	for _, x := range g.actions {
		if x == a {
			return true
		}
	}
	return false
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.actions = append(g.actions, in.Actions()...)
	res := core.StepResult{State: g.State()}
	if g.steps == g.finishOn {
		res.Finished = &core.RoundResult{LevelID: "01", Mode: "custom", Moves: 4, MoveLimit: 9, Won: true}
	}
	if g.quitOn && in.Has(core.ActionQuit) {
		res.Quit = true
	}
	return res
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1}
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	cases := map[string]core.Action{
		"up":    core.ActionUp,
		"k":     core.ActionUp,
		"down":  core.ActionDown,
		"s":     core.ActionDown,
		"left":  core.ActionLeft,
		"h":     core.ActionLeft,
		"right": core.ActionRight,
		"d":     core.ActionRight,
		" ":     core.ActionSelect,
		"enter": core.ActionSelect,
		"u":     core.ActionUndo,
		"r":     core.ActionRestart,
		"n":     core.ActionNextLevel,
		"m":     core.ActionToggleMode,
		"esc":   core.ActionBack,
		"q":     core.ActionQuit,
		"?":     core.ActionHelp,
		"x":     core.ActionNone,
	}
	for key, want := range cases {
		got, hard := km.MapKey(keyMsg(key))
		assert.Equal(t, want, got, "key %q", key)
		assert.False(t, hard, "key %q", key)
	}

	action, hard := km.MapKey(keyMsg("ctrl+c"))
	assert.Equal(t, core.ActionQuit, action)
	assert.True(t, hard)
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	assert.Equal(t, MenuActionUp, km.MapKeyToMenuAction(keyMsg("k")))
	assert.Equal(t, MenuActionDown, km.MapKeyToMenuAction(keyMsg("down")))
	assert.Equal(t, MenuActionSelect, km.MapKeyToMenuAction(keyMsg("enter")))
	assert.Equal(t, MenuActionBack, km.MapKeyToMenuAction(keyMsg("esc")))
	assert.Equal(t, MenuActionScoreboard, km.MapKeyToMenuAction(keyMsg("tab")))
	assert.Equal(t, MenuActionQuit, km.MapKeyToMenuAction(keyMsg("q")))
	assert.Equal(t, MenuActionNone, km.MapKeyToMenuAction(keyMsg("z")))
}

func TestModelPassesActionsToGame(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, testRuntime(), quietLogger())

	next, _ := m.Update(keyMsg("u"))
	next, cmd := next.Update(TickMsg{})
	m = next.(Model)

	assert.True(t, g.hasAction(core.ActionUndo))
	assert.NotNil(t, cmd, "tick loop continues")
	assert.False(t, m.Exited())

	// Input is cleared between ticks
	g.actions = nil
	m.Update(TickMsg{})
	assert.Empty(t, g.actions)
}

func TestModelQuitsWhenGameExits(t *testing.T) {
	g := &fakeGame{quitOn: true}
	m := NewModel(g, nil, testRuntime(), quietLogger())

	next, _ := m.Update(keyMsg("q"))
	next, cmd := next.Update(TickMsg{})
	m = next.(Model)

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.Exited())
	assert.Empty(t, m.View())
}

func TestEmbeddedModelHandsBackControl(t *testing.T) {
	g := &fakeGame{quitOn: true}
	m := newEmbeddedModel(g, nil, testRuntime(), quietLogger())

	next, _ := m.Update(keyMsg("q"))
	next, cmd := next.Update(TickMsg{})
	m = next.(Model)

	assert.Nil(t, cmd, "no quit and no further ticks")
	assert.True(t, m.Exited())
	assert.False(t, m.IsQuitting())
}

func TestModelCtrlCQuits(t *testing.T) {
	m := newEmbeddedModel(&fakeGame{}, nil, testRuntime(), quietLogger())
	next, cmd := m.Update(keyMsg("ctrl+c"))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, next.(Model).IsQuitting())
}

func TestModelSavesFinishedRound(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "rounds.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	g := &fakeGame{finishOn: 2}
	var next tea.Model = NewModel(g, store, testRuntime(), quietLogger())
	for range 3 {
		next, _ = next.Update(TickMsg{})
	}

	rounds, err := store.RecentRounds("fake", 10)
	require.NoError(t, err)
	require.Len(t, rounds, 1)
	assert.Equal(t, "01", rounds[0].LevelID)
	assert.Equal(t, 4, rounds[0].Moves)
	assert.True(t, rounds[0].Won)
	assert.Equal(t, rounds[0].RoundID, next.(Model).LastRoundID())
}

func TestModelResizeKeepsGame(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, testRuntime(), quietLogger())
	m.Init()
	require.Equal(t, 1, g.resets)

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, [2]int{120, 40}, g.resized)
	assert.Equal(t, 1, g.resets, "resizable games are not reset")
}

func TestModelHelpToggle(t *testing.T) {
	g := &fakeGame{}
	var next tea.Model = NewModel(g, nil, testRuntime(), quietLogger())

	next, _ = next.Update(keyMsg("?"))
	help := next.View()
	assert.Contains(t, help, "Shape Fusion - Keys")
	assert.Contains(t, help, "Two identical shapes side by")
	assert.NotContains(t, strings.ToLower(help), "three", "any adjacent pair fuses")

	// Keys are swallowed while help is open
	next, _ = next.Update(keyMsg("u"))
	next, _ = next.Update(TickMsg{})
	assert.False(t, g.hasAction(core.ActionUndo))

	next, _ = next.Update(keyMsg("?"))
	assert.Contains(t, next.View(), "fake board")
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextColor(0, 0, "ab", core.ColorRed)
	s.DrawTextColor(2, 0, "cd", core.ColorBlue)

	out := RenderScreen(s)
	assert.Equal(t, 2, strings.Count(out, "\n")+1)
	assert.Contains(t, out, "ab")
	assert.Contains(t, out, "cd")
}

func TestThemeByName(t *testing.T) {
	for _, name := range ThemeNames() {
		_, ok := ThemeByName(name)
		assert.True(t, ok, name)
	}
	_, ok := ThemeByName("")
	assert.True(t, ok)
	_, ok = ThemeByName("nope")
	assert.False(t, ok)
	assert.Equal(t, []string{"default", "mono", "neon", "pastel"}, ThemeNames())
}

func TestSessionFlow(t *testing.T) {
	var m tea.Model = NewSessionModel(nil, testRuntime(), "tester", quietLogger())
	session := func() SessionModel { return m.(SessionModel) }

	// Campaign opens the level picker, esc comes back
	m, _ = m.Update(keyMsg("enter"))
	require.Equal(t, stageLevels, session().stage)
	assert.Contains(t, m.View(), "C A M P A I G N")

	m, _ = m.Update(keyMsg("esc"))
	require.Equal(t, stageMenu, session().stage)

	// Scoreboard
	m, _ = m.Update(keyMsg("tab"))
	require.Equal(t, stageScoreboard, session().stage)
	assert.Contains(t, m.View(), "RECORDS")
	m, _ = m.Update(keyMsg("esc"))
	require.Equal(t, stageMenu, session().stage)

	// Random boards start a game directly
	m, _ = m.Update(keyMsg("down"))
	m, cmd := m.Update(keyMsg("enter"))
	require.Equal(t, stageGame, session().stage)
	assert.NotNil(t, cmd)
	assert.Equal(t, "fusion_random", session().game.game.ID())

	// Quitting the game returns to the menu
	m, _ = m.Update(keyMsg("q"))
	m, _ = m.Update(TickMsg{})
	require.Equal(t, stageMenu, session().stage)

	// q on the menu ends the session
	m, cmd = m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestSessionStartsChosenLevel(t *testing.T) {
	var m tea.Model = NewSessionModel(nil, testRuntime(), "tester", quietLogger())

	m, _ = m.Update(keyMsg("enter")) // Campaign
	m, _ = m.Update(keyMsg("down"))  // Past "Start from the first level"
	m, _ = m.Update(keyMsg("down"))  // Level 2
	m, _ = m.Update(keyMsg("enter"))

	lvls, err := fusion.Levels()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(lvls), 2)

	s := m.(SessionModel)
	require.Equal(t, stageGame, s.stage)
	assert.Equal(t, fusion.GameID, s.game.game.ID())
	assert.Equal(t, lvls[1].ID, s.game.game.State().LevelID)
	assert.Equal(t, 0, s.game.game.State().Moves)
}

func TestSSHServerStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	srv, err := NewSSHServer(SSHServerConfig{
		Address:     "127.0.0.1:0",
		HostKeyPath: filepath.Join(dir, "host_key"),
		DBPath:      filepath.Join(dir, "rounds.db"),
		IdleTimeout: time.Minute,
		Logger:      quietLogger(),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, srv.Serve(ctx))
	assert.Zero(t, srv.ActiveSessions())
	assert.FileExists(t, filepath.Join(dir, "host_key"))
}

func TestWriteSnapshot(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColor(0, 0, "fuse", core.ColorRed)
	dir := filepath.Join(t.TempDir(), "shots")

	at := time.Date(2026, 3, 14, 15, 9, 26, 0, time.Local)
	path, err := writeSnapshot(dir, "fusion", s, at)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "fusion_20260314_150926.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fuse  \n      \n", string(data))

	_, err = writeSnapshot("", "fusion", s, at)
	assert.Error(t, err)
}

func TestLevelMenuScrollAndSelect(t *testing.T) {
	lvls, err := fusion.Levels()
	require.NoError(t, err)

	var m tea.Model = NewLevelMenuModel(nil, 80, 14)
	lm := func() LevelMenuModel { return m.(LevelMenuModel) }
	assert.Equal(t, 0, lm().cursor)

	from, to := lm().window()
	assert.Equal(t, 0, from)
	assert.Equal(t, 4, to, "14 rows leave room for 4 entries")

	for range len(lvls) + 5 {
		m, _ = m.Update(keyMsg("down"))
	}
	assert.Equal(t, len(lvls), lm().cursor, "cursor stops on the last level")
	from, to = lm().window()
	assert.Equal(t, len(lvls)+1, to)
	assert.Equal(t, to-4, from)

	m, cmd := m.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	require.NotNil(t, lm().Selected())
	assert.Equal(t, len(lvls), lm().Selected().Level)
}

func TestMenuDescribesPairMatches(t *testing.T) {
	view := NewMenuModel(nil, testRuntime()).View()
	assert.Contains(t, view, "two alike side by side")
	assert.NotContains(t, strings.ToLower(view), "three")
}
