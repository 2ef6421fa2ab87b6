package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/shape-fusion/internal/core"
	"github.com/vovakirdan/shape-fusion/internal/games/fusion"
	"github.com/vovakirdan/shape-fusion/internal/storage"
)

// LevelSelection is the level picked in the campaign picker.
// Level 0 starts from the first level; 1..N start at that level.
type LevelSelection struct {
	Level int
}

type pickerRow struct {
	label string
	limit int // 0 on the "from the start" row
	best  int // Fewest winning moves, 0 if never cleared
}

// LevelMenuModel lets the player start the campaign at any level.
type LevelMenuModel struct {
	rows     []pickerRow
	cursor   int
	width    int
	height   int
	mapper   *KeyMapper
	theme    Theme
	picked   *LevelSelection
	quitting bool
	back     bool
}

// NewLevelMenuModel builds the picker. With a store, rows show the best
// result and the cursor starts on the first level not yet cleared.
func NewLevelMenuModel(store *storage.Store, width, height int) LevelMenuModel {
	m := LevelMenuModel{
		rows:   []pickerRow{{label: "Start from the first level"}},
		width:  width,
		height: height,
		mapper: NewKeyMapper(),
		theme:  GetTheme(),
	}

	lvls, err := fusion.Levels()
	if err != nil {
		return m
	}
	for i, l := range lvls {
		row := pickerRow{label: fmt.Sprintf("%2d. %s", i+1, l.Name), limit: l.MoveLimit}
		if store != nil {
			if best, ok, err := store.BestMoves(fusion.GameID, l.ID); err == nil && ok {
				row.best = best
			}
		}
		m.rows = append(m.rows, row)
	}

	if store != nil {
		for i := 1; i < len(m.rows); i++ {
			if m.rows[i].best == 0 {
				if i > 1 {
					m.cursor = i
				}
				break
			}
		}
	}
	return m
}

// Init initializes the model.
func (m LevelMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		switch m.mapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionBack:
			m.back = true
			return m, tea.Quit
		case MenuActionUp:
			m.cursor = max(m.cursor-1, 0)
		case MenuActionDown:
			m.cursor = min(m.cursor+1, len(m.rows)-1)
		case MenuActionSelect:
			m.picked = &LevelSelection{Level: m.cursor}
			return m, tea.Quit
		}
	}
	return m, nil
}

// window returns the half-open range of rows that fit on screen, keeping the
// cursor roughly in the middle.
func (m LevelMenuModel) window() (from, to int) {
	visible := max(m.height-10, 3)
	if len(m.rows) <= visible {
		return 0, len(m.rows)
	}
	from = core.Clamp(m.cursor-visible/2, 0, len(m.rows)-visible)
	return from, from + visible
}

// View renders the picker.
func (m LevelMenuModel) View() string {
	if m.quitting {
		return ""
	}

	lines := []string{
		m.theme.MenuTitle.Render("C A M P A I G N"),
		m.theme.MenuDescription.Render("Pick a level to start from"),
		"",
	}
	if len(m.rows) == 1 {
		lines = append(lines, m.theme.MenuDescription.Render("No levels found"), "")
	}

	from, to := m.window()
	if from > 0 {
		lines = append(lines, m.theme.MenuDescription.Render("  ▲"))
	}
	for i := from; i < to; i++ {
		lines = append(lines, m.renderRow(i))
	}
	if to < len(m.rows) {
		lines = append(lines, m.theme.MenuDescription.Render("  ▼"))
	}

	lines = append(lines, "", m.theme.HUDControls.Render("↑/↓ navigate · enter start · esc back · q quit"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m LevelMenuModel) renderRow(i int) string {
	r := m.rows[i]
	style, marker := m.theme.MenuItemNormal, "  "
	if i == m.cursor {
		style, marker = m.theme.MenuItemActive, "> "
	}
	if r.limit == 0 {
		return style.Render(marker + r.label)
	}

	line := style.Render(fmt.Sprintf("%s%-28s %2d moves", marker, r.label, r.limit))
	if r.best > 0 {
		line += m.theme.MenuBest.Render(fmt.Sprintf("  ★ %d", r.best))
	}
	return line
}

// Selected returns the picked level, or nil while the player is still choosing.
func (m LevelMenuModel) Selected() *LevelSelection {
	return m.picked
}

// IsQuitting reports whether the player quit.
func (m LevelMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack reports whether the player went back to the menu.
func (m LevelMenuModel) WantsBack() bool {
	return m.back
}

// RunLevelSelector runs the picker on its own. A nil selection means back or quit.
func RunLevelSelector(store *storage.Store, cfg core.RuntimeConfig) (*LevelSelection, error) {
	final, err := tea.NewProgram(NewLevelMenuModel(store, cfg.ScreenW, cfg.ScreenH), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(LevelMenuModel)
	if !ok || m.quitting || m.back {
		return nil, nil
	}
	return m.picked, nil
}
