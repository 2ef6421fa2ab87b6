package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/shape-fusion/internal/core"
	"github.com/vovakirdan/shape-fusion/internal/registry"
	"github.com/vovakirdan/shape-fusion/internal/storage"
)

// Model is the Bubble Tea model that runs one game.
// Standalone it quits the program when the game exits; embedded in a
// session it only marks itself exited so the session can take over.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	help       help.Model
	showHelp   bool
	embedded   bool
	exited     bool
	quitting   bool
	lastRound  string // ID of the last round saved to the store
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.Default()
	}

	h := help.New()
	h.ShowAll = true

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger.WithPrefix(game.ID()),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		help:       h,
	}
}

// newEmbeddedModel creates a model that hands control back instead of quitting.
func newEmbeddedModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	m := NewModel(game, store, cfg, logger)
	m.embedded = true
	return m
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return scheduleTick(m.config)
}

// Update feeds keys into the next input frame, follows resizes, and steps the
// game on every tick. An exited model ignores everything.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.exited {
		return m, nil
	}
	switch msg := msg.(type) {
	case TickMsg:
		return m.step()
	case tea.KeyMsg:
		return m.press(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	}
	return m, nil
}

func (m Model) press(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMapper.Keys.Snapshot) {
		m.saveScreenshot()
		return m, nil
	}

	action, quit := m.keyMapper.MapKey(msg)
	switch {
	case quit:
		m.quitting = true
		return m, tea.Quit
	case m.showHelp:
		// Only the toggles close the help screen
		m.showHelp = action != core.ActionHelp && action != core.ActionBack
	case action == core.ActionHelp:
		m.showHelp = true
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// resize keeps the current round when the game can follow the new size and
// restarts it otherwise, unless the game is already over.
func (m *Model) resize(w, h int) {
	m.config.ScreenW, m.config.ScreenH = w, h
	m.screen.Resize(w, h)
	m.help.Width = w

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(w, h)
		return
	}
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
}

func (m Model) step() (tea.Model, tea.Cmd) {
	res := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()
	m.gameState = res.State

	if res.Finished != nil {
		m.saveRound(*res.Finished)
	}
	if !res.Quit {
		return m, scheduleTick(m.config)
	}

	m.exited = true
	if m.embedded {
		return m, nil
	}
	m.quitting = true
	return m, tea.Quit
}

// saveRound records a finished round. Storage failures are logged and the game goes on.
func (m *Model) saveRound(r core.RoundResult) {
	gameID := r.GameID
	if gameID == "" {
		gameID = m.game.ID()
	}

	if m.store == nil {
		m.logger.Debug("no store, round not saved", "level", r.LevelID, "won", r.Won)
		return
	}

	id, err := m.store.SaveRound(gameID, r)
	if err != nil {
		m.logger.Error("save round", "game", gameID, "level", r.LevelID, "err", err)
		return
	}
	m.lastRound = id
	m.logger.Debug("round saved", "id", id, "game", gameID, "level", r.LevelID, "moves", r.Moves, "won", r.Won)
}

// saveScreenshot writes what is on screen now to the screenshot directory.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)
	path, err := writeSnapshot(snapshotDir(), m.game.ID(), m.screen, time.Now())
	if err != nil {
		m.logger.Warn("screenshot not saved", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// IsQuitting returns true if the user asked to end the program.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Exited reports whether the game asked to leave.
func (m Model) Exited() bool {
	return m.exited
}

// LastRoundID returns the ID of the most recently saved round, if any.
func (m Model) LastRoundID() string {
	return m.lastRound
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.showHelp {
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("14")).
			Padding(1, 2).
			Render(lipgloss.JoinVertical(lipgloss.Left,
				lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).Render("Shape Fusion - Keys"),
				"",
				"Slide a piece left or right. Two identical shapes side by",
				"side or stacked fuse and vanish. Clear the board.",
				"",
				m.help.View(m.keyMapper.Keys),
			))
		return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, box)
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run plays one game in its own program until the player leaves.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	_, err := tea.NewProgram(NewModel(game, store, cfg, logger), tea.WithAltScreen()).Run()
	return err
}
