package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/shape-fusion/internal/core"
	"github.com/vovakirdan/shape-fusion/internal/games/fusion"
	"github.com/vovakirdan/shape-fusion/internal/registry"
	"github.com/vovakirdan/shape-fusion/internal/storage"
)

type sessionStage int

const (
	stageMenu sessionStage = iota
	stageLevels
	stageScoreboard
	stageGame
)

// SessionModel runs one SSH connection: menu, level picker, records and
// games inside a single Bubble Tea program.
//
// The child screens end with tea.Quit when run on their own. Here that command
// is dropped and the session switches screens instead.
type SessionModel struct {
	store      *storage.Store
	config     core.RuntimeConfig
	logger     *log.Logger
	stage      sessionStage
	menu       MenuModel
	levels     LevelMenuModel
	scoreboard ScoreboardModel
	game       *Model
	quitting   bool
}

// NewSessionModel creates a session starting at the main menu. Its logs carry
// the user and a short session id.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.Default()
	}
	return SessionModel{
		store:  store,
		config: cfg,
		logger: logger.With("user", username, "session", uuid.NewString()[:8]),
		menu:   NewMenuModel(store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes the message to the current screen. Sizes are tracked here so
// the next screen opens at the right size.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW, m.config.ScreenH = ws.Width, ws.Height
	}

	switch m.stage {
	case stageLevels:
		return m.updateLevels(msg)
	case stageScoreboard:
		return m.updateScoreboard(msg)
	case stageGame:
		return m.updateGame(msg)
	}
	return m.updateMenu(msg)
}

// child runs msg through a screen and returns the updated screen.
func child[T tea.Model](screen T, msg tea.Msg) (T, tea.Cmd) {
	next, cmd := screen.Update(msg)
	if t, ok := next.(T); ok {
		screen = t
	}
	return screen, cmd
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.menu, cmd = child(m.menu, msg)

	res := m.menu.result()
	switch {
	case m.menu.chosen == nil && !m.menu.quitting:
		return m, cmd
	case res.WantsScoreboard:
		m.stage = stageScoreboard
		m.scoreboard = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		return m, m.scoreboard.Init()
	case res.Quit:
		return m.quit()
	case res.GameID == fusion.GameID:
		m.stage = stageLevels
		m.levels = NewLevelMenuModel(m.store, m.config.ScreenW, m.config.ScreenH)
		return m, m.levels.Init()
	}
	return m.startGame(res.GameID, 0)
}

func (m SessionModel) updateLevels(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.levels, cmd = child(m.levels, msg)

	switch {
	case m.levels.IsQuitting():
		return m.quit()
	case m.levels.WantsBack():
		return m.backToMenu()
	case m.levels.Selected() != nil:
		return m.startGame(fusion.GameID, m.levels.Selected().Level)
	}
	return m, cmd
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.scoreboard, cmd = child(m.scoreboard, msg)

	switch {
	case m.scoreboard.IsQuitting():
		return m.quit()
	case m.scoreboard.IsGoingBack():
		return m.backToMenu()
	}
	return m, cmd
}

// startGame creates a game and switches the session to it. Every game gets a
// fresh seed.
func (m SessionModel) startGame(gameID string, level int) (tea.Model, tea.Cmd) {
	game, err := registry.CreateAt(gameID, level)
	if err != nil {
		m.logger.Error("create game", "game", gameID, "error", err)
		return m.backToMenu()
	}

	m.logger.Info("game started", "game", gameID, "level", level)
	m.config.Seed = time.Now().UnixNano()
	gm := newEmbeddedModel(game, m.store, m.config, m.logger)
	m.game = &gm
	m.stage = stageGame
	return m, m.game.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	gm, cmd := child(*m.game, msg)
	m.game = &gm

	switch {
	case gm.IsQuitting():
		return m.quit()
	case gm.Exited():
		m.logger.Info("game ended", "game", gm.game.ID())
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.stage = stageMenu
	m.game = nil
	m.menu = NewMenuModel(m.store, m.config)
	return m, m.menu.Init()
}

// View renders the current screen.
func (m SessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.stage == stageGame && m.game != nil:
		return m.game.View()
	case m.stage == stageLevels:
		return m.levels.View()
	case m.stage == stageScoreboard:
		return m.scoreboard.View()
	}
	return m.menu.View()
}
