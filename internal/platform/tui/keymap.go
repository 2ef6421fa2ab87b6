package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/shape-fusion/internal/core"
)

// hardQuit ends the program from any screen.
var hardQuit = key.NewBinding(key.WithKeys("ctrl+c"))

// GameKeyMap holds the in-game bindings. The same bindings drive input
// mapping and the help screen, so the two cannot drift apart.
type GameKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Select   key.Binding
	Undo     key.Binding
	Restart  key.Binding
	Next     key.Binding
	Mode     key.Binding
	Back     key.Binding
	Help     key.Binding
	Quit     key.Binding
	Snapshot key.Binding
}

// DefaultGameKeyMap returns the in-game bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "w", "k"), key.WithHelp("↑/k", "cursor up")),
		Down:     key.NewBinding(key.WithKeys("down", "s", "j"), key.WithHelp("↓/j", "cursor down")),
		Left:     key.NewBinding(key.WithKeys("left", "a", "h"), key.WithHelp("←/h", "cursor or piece left")),
		Right:    key.NewBinding(key.WithKeys("right", "d", "l"), key.WithHelp("→/l", "cursor or piece right")),
		Select:   key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "select piece")),
		Undo:     key.NewBinding(key.WithKeys("u", "ctrl+z"), key.WithHelp("u", "undo (once)")),
		Restart:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart board")),
		Next:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next board")),
		Mode:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "levels/random")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "deselect/back")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Snapshot: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save screenshot")),
	}
}

// ShortHelp returns bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Left, k.Right, k.Undo, k.Help, k.Quit}
}

// FullHelp returns bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Select},
		{k.Undo, k.Restart, k.Next, k.Mode},
		{k.Back, k.Help, k.Snapshot, k.Quit},
	}
}

type actionBinding struct {
	binding key.Binding
	action  core.Action
}

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct {
	Keys    GameKeyMap
	actions []actionBinding
}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	k := DefaultGameKeyMap()
	return &KeyMapper{
		Keys: k,
		actions: []actionBinding{
			{k.Up, core.ActionUp},
			{k.Down, core.ActionDown},
			{k.Left, core.ActionLeft},
			{k.Right, core.ActionRight},
			{k.Select, core.ActionSelect},
			{k.Undo, core.ActionUndo},
			{k.Restart, core.ActionRestart},
			{k.Next, core.ActionNextLevel},
			{k.Mode, core.ActionToggleMode},
			{k.Back, core.ActionBack},
			{k.Help, core.ActionHelp},
			{k.Quit, core.ActionQuit},
		},
	}
}

// MapKey translates a key message to a game action and reports whether it is a
// hard quit. Only ctrl+c is a hard quit; q is passed to the game, which decides.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	if key.Matches(msg, hardQuit) {
		return core.ActionQuit, true
	}
	for _, ab := range km.actions {
		if key.Matches(msg, ab.binding) {
			return ab.action, false
		}
	}
	return core.ActionNone, false
}

// MenuAction is what a key means on a list screen.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

var menuBindings = []struct {
	binding key.Binding
	action  MenuAction
}{
	{key.NewBinding(key.WithKeys("ctrl+c", "q")), MenuActionQuit},
	{key.NewBinding(key.WithKeys("up", "w", "k")), MenuActionUp},
	{key.NewBinding(key.WithKeys("down", "s", "j")), MenuActionDown},
	{key.NewBinding(key.WithKeys("enter", " ")), MenuActionSelect},
	{key.NewBinding(key.WithKeys("esc", "b")), MenuActionBack},
	{key.NewBinding(key.WithKeys("tab")), MenuActionScoreboard},
}

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	for _, mb := range menuBindings {
		if key.Matches(msg, mb.binding) {
			return mb.action
		}
	}
	return MenuActionNone
}
