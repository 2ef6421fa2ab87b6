package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/shape-fusion/internal/core"
	"github.com/vovakirdan/shape-fusion/internal/games/fusion"
	"github.com/vovakirdan/shape-fusion/internal/registry"
	"github.com/vovakirdan/shape-fusion/internal/storage"
)

type menuKind int

const (
	menuPlay menuKind = iota
	menuRecords
	menuQuit
)

// menuEntry is one row of the main menu. Play rows carry the mode to start.
type menuEntry struct {
	kind     menuKind
	gameID   string
	title    string
	blurb    string
	progress string // Filled from the store, empty without one
}

// menuBlurbs holds the one-line description shown under each mode.
var menuBlurbs = map[string]string{
	fusion.GameID:       "Hand-made boards, one after another",
	fusion.RandomGameID: "Endless generated boards that get harder as you win",
}

// MenuModel is the main menu: the playable modes, the records screen and quit.
type MenuModel struct {
	entries   []menuEntry
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	theme     Theme
	chosen    *menuEntry
	quitting  bool
}

// NewMenuModel builds the menu from the registered modes.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var entries []menuEntry
	for _, info := range registry.List() {
		entries = append(entries, menuEntry{
			kind:     menuPlay,
			gameID:   info.ID,
			title:    info.Title,
			blurb:    menuBlurbs[info.ID],
			progress: modeProgress(store, info.ID),
		})
	}
	entries = append(entries,
		menuEntry{kind: menuRecords, title: "Records", blurb: "Best results and recent rounds"},
		menuEntry{kind: menuQuit, title: "Quit"},
	)

	return MenuModel{
		entries:   entries,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		theme:     GetTheme(),
	}
}

// modeProgress summarizes what the player has done in a mode.
func modeProgress(store *storage.Store, gameID string) string {
	if store == nil {
		return ""
	}
	if gameID == fusion.GameID {
		bests, err := store.LevelBests(gameID)
		if err != nil || len(bests) == 0 {
			return ""
		}
		cleared := 0
		for _, b := range bests {
			if b.Wins > 0 {
				cleared++
			}
		}
		total := len(bests)
		if lvls, err := fusion.Levels(); err == nil {
			total = len(lvls)
		}
		return fmt.Sprintf("%d of %d levels cleared", cleared, total)
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil || stats.Rounds == 0 {
		return ""
	}
	return fmt.Sprintf("%d boards cleared in %d rounds", stats.Wins, stats.Rounds)
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.cursor = (m.cursor + len(m.entries) - 1) % len(m.entries)

	case MenuActionDown:
		m.cursor = (m.cursor + 1) % len(m.entries)

	case MenuActionSelect:
		e := m.entries[m.cursor]
		if e.kind == menuQuit {
			m.quitting = true
		} else {
			m.chosen = &e
		}
		return m, tea.Quit

	case MenuActionScoreboard:
		m.chosen = &menuEntry{kind: menuRecords}
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	lines := []string{
		m.theme.MenuTitle.Render("S H A P E   F U S I O N"),
		m.theme.MenuDescription.Render("Put two alike side by side and watch them fuse"),
		"",
	}
	for i, e := range m.entries {
		style, cursor := m.theme.MenuItemNormal, "  "
		if i == m.cursor {
			style, cursor = m.theme.MenuItemActive, "> "
		}
		lines = append(lines, style.Render(cursor+e.title))
		if e.blurb != "" {
			lines = append(lines, m.theme.MenuDescription.Render("  "+e.blurb))
		}
		if e.progress != "" {
			lines = append(lines, m.theme.MenuBest.Render("  "+e.progress))
		}
		lines = append(lines, "")
	}
	lines = append(lines, m.theme.HUDControls.Render("↑/↓ navigate · enter select · tab records · q quit"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// WantsScoreboard reports whether the records screen was chosen.
func (m MenuModel) WantsScoreboard() bool {
	return m.chosen != nil && m.chosen.kind == menuRecords
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the runtime config, updated by resizes.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within width. Styled text is measured without its
// escape sequences.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the outcome of the main menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

func (m MenuModel) result() MenuResult {
	r := MenuResult{Config: m.config}
	switch {
	case m.WantsScoreboard():
		r.WantsScoreboard = true
	case m.quitting || m.chosen == nil:
		r.Quit = true
	default:
		r.GameID = m.chosen.gameID
	}
	return r
}

// RunMenu runs the main menu until the player picks something.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.result(), nil
}
