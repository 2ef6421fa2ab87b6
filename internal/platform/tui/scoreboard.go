package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/shape-fusion/internal/games/fusion"
	"github.com/vovakirdan/shape-fusion/internal/registry"
	"github.com/vovakirdan/shape-fusion/internal/storage"
)

const (
	statsPanelWidth  = 26 // Summary panel beside the table
	minWidthForPanel = 72 // Narrower terminals stack the panel under the table
	maxRecentRounds  = 100
)

// ScoreboardKeyMap defines the key bindings for the records screen.
type ScoreboardKeyMap struct {
	Scroll key.Binding
	Switch key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Switch, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns the records screen bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Scroll: key.NewBinding(
			key.WithKeys("up", "down", "k", "j", "pgup", "pgdown"),
			key.WithHelp("↑/↓", "scroll"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "campaign/random"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows per-level bests for the campaign and the recent history of
// random boards, one mode at a time.
type ScoreboardModel struct {
	modes     []registry.GameInfo
	mode      int
	store     *storage.Store
	stats     *storage.GameStats
	rows      []table.Row
	loadErr   error
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	theme     Theme
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates the records screen, starting on the first mode.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		theme:  GetTheme(),
		width:  width,
		height: height,
	}
	m.load()
	return m
}

func (m ScoreboardModel) current() (registry.GameInfo, bool) {
	if len(m.modes) == 0 {
		return registry.GameInfo{}, false
	}
	return m.modes[m.mode], true
}

// campaign reports whether the shown mode keeps per-level bests.
func (m ScoreboardModel) campaign() bool {
	info, ok := m.current()
	return ok && info.ID == fusion.GameID
}

func (m ScoreboardModel) tableWidth() int {
	w := m.width - 6
	if m.width >= minWidthForPanel {
		w -= statsPanelWidth + 2
	}
	return max(w, 30)
}

func (m *ScoreboardModel) newTable() {
	var cols []table.Column
	if m.campaign() {
		cols = []table.Column{
			{Title: "Level", Width: 18},
			{Title: "Tries", Width: 6},
			{Title: "Wins", Width: 6},
			{Title: "Best", Width: 6},
		}
	} else {
		cols = []table.Column{
			{Title: "Board", Width: 16},
			{Title: "Moves", Width: 7},
			{Title: "Result", Width: 8},
			{Title: "Played", Width: 13},
		}
	}
	// Spare room goes to the first column
	used := 0
	for _, c := range cols {
		used += c.Width + 2
	}
	if extra := m.tableWidth() - used; extra > 0 {
		cols[0].Width += min(extra, 14)
	}

	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	m.table = table.New(
		table.WithColumns(cols),
		table.WithRows(m.rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
		table.WithStyles(st),
	)
}

// load reads stats and rows for the shown mode. Errors are kept for the view.
func (m *ScoreboardModel) load() {
	m.stats, m.rows, m.loadErr = nil, nil, nil
	defer m.newTable()

	info, ok := m.current()
	if !ok || m.store == nil {
		return
	}
	if m.stats, m.loadErr = m.store.GetGameStats(info.ID); m.loadErr != nil {
		return
	}
	if m.campaign() {
		m.rows, m.loadErr = m.levelRows(info.ID)
	} else {
		m.rows, m.loadErr = m.recentRows(info.ID)
	}
}

// levelRows builds one row per played level, named after the loaded level list.
func (m ScoreboardModel) levelRows(gameID string) ([]table.Row, error) {
	bests, err := m.store.LevelBests(gameID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string)
	if lvls, err := fusion.Levels(); err == nil {
		for _, l := range lvls {
			names[l.ID] = l.Name
		}
	}

	rows := make([]table.Row, 0, len(bests))
	for _, b := range bests {
		level := b.LevelID
		if title, ok := names[b.LevelID]; ok {
			level += " " + title
		}
		best := "-"
		if b.BestMoves > 0 {
			best = strconv.Itoa(b.BestMoves)
		}
		rows = append(rows, table.Row{level, strconv.Itoa(b.Attempts), strconv.Itoa(b.Wins), best})
	}
	return rows, nil
}

// recentRows builds one row per recent round, newest first.
func (m ScoreboardModel) recentRows(gameID string) ([]table.Row, error) {
	rounds, err := m.store.RecentRounds(gameID, maxRecentRounds)
	if err != nil {
		return nil, err
	}
	rows := make([]table.Row, 0, len(rounds))
	for _, r := range rounds {
		result := "lost"
		if r.Won {
			result = "cleared"
		}
		moves := strconv.Itoa(r.Moves)
		if r.MoveLimit > 0 {
			moves += "/" + strconv.Itoa(r.MoveLimit)
		}
		rows = append(rows, table.Row{r.LevelID, moves, result, r.CreatedAt.Local().Format("Jan 02 15:04")})
	}
	return rows, nil
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Switch):
			if n := len(m.modes); n > 0 {
				step := 1
				if s := msg.String(); s == "shift+tab" || s == "left" || s == "h" {
					step = n - 1
				}
				m.mode = (m.mode + step) % n
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.newTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "RECORDS"
	if info, ok := m.current(); ok {
		title += " - " + info.Title
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	body := box.Render(m.tableView())
	if panel := m.statsPanel(); panel != "" {
		panel = box.Width(statsPanelWidth).Render(panel)
		if m.width >= minWidthForPanel {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", panel)
		} else {
			body = lipgloss.JoinVertical(lipgloss.Left, body, panel)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		centerText(m.theme.MenuTitle.Render(title), m.width),
		centerText(m.modeTabs(), m.width),
		"",
		body,
		m.theme.HUDControls.Render(m.help.View(m.keys)),
	)
}

func (m ScoreboardModel) modeTabs() string {
	tabs := make([]string, len(m.modes))
	for i, info := range m.modes {
		if i == m.mode {
			tabs[i] = m.theme.MenuItemActive.Render("[" + info.Title + "]")
		} else {
			tabs[i] = m.theme.MenuItemNormal.Render(" " + info.Title + " ")
		}
	}
	return strings.Join(tabs, "  ")
}

func (m ScoreboardModel) tableView() string {
	empty := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(1, 2)
	switch {
	case m.store == nil:
		return empty.Render("Round history is unavailable.\nThe database could not be opened.")
	case m.loadErr != nil:
		return empty.Render("Could not load rounds:\n" + m.loadErr.Error())
	case len(m.rows) == 0:
		return empty.Render("No rounds recorded yet.\nClear a board to get on the board!")
	}
	return m.table.View()
}

// statsPanel summarizes the shown mode; empty when nothing was played.
func (m ScoreboardModel) statsPanel() string {
	st := m.stats
	if st == nil || st.Rounds == 0 {
		return ""
	}
	line := func(label string, value any) string {
		return m.theme.HUDTitle.Render(fmt.Sprintf("%-10s", label)) + m.theme.HUDValue.Render(fmt.Sprint(value))
	}
	rate := 100 * st.Wins / st.Rounds
	return strings.Join([]string{
		line("Rounds", st.Rounds),
		line("Cleared", fmt.Sprintf("%d (%d%%)", st.Wins, rate)),
		line("Lost", st.Losses()),
		line("Avg moves", fmt.Sprintf("%.1f", st.AvgMoves)),
		line("Undos", st.UndoRounds),
		line("Last", st.LastPlayed.Local().Format("Jan 02 15:04")),
	}, "\n")
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the records screen. It reports whether the player went
// back to the menu rather than quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
