package core

// Action is a semantic input, decoupled from the keys that produce it.
type Action uint8

const (
	ActionNone       Action = iota
	ActionUp                // Cursor up
	ActionDown              // Cursor down
	ActionLeft              // Cursor left, or move the selected piece
	ActionRight             // Cursor right, or move the selected piece
	ActionSelect            // Select or release the piece under the cursor
	ActionUndo              // Take back the last move
	ActionRestart           // Restart the current board
	ActionNextLevel         // Skip to the next board
	ActionToggleMode        // Switch between campaign and random boards
	ActionBack              // Drop the selection, or leave
	ActionQuit              // Leave the game
	ActionHelp              // Toggle the key help

	actionCount
)

var actionNames = [actionCount]string{
	"None", "Up", "Down", "Left", "Right", "Select", "Undo",
	"Restart", "NextLevel", "ToggleMode", "Back", "Quit", "Help",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return "Unknown"
}

// InputFrame is the set of actions pressed during one tick.
// The zero value is an empty frame.
type InputFrame struct {
	bits uint32
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// FrameOf builds a frame with the given actions set.
func FrameOf(actions ...Action) InputFrame {
	var f InputFrame
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as pressed. ActionNone and unknown actions are ignored.
func (f *InputFrame) Set(a Action) {
	if a != ActionNone && a < actionCount {
		f.bits |= 1 << a
	}
}

// Has reports whether the action was pressed this tick.
func (f InputFrame) Has(a Action) bool {
	return a < actionCount && f.bits&(1<<a) != 0
}

// Actions lists the pressed actions in declaration order.
func (f InputFrame) Actions() []Action {
	var out []Action
	for a := ActionNone + 1; a < actionCount; a++ {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// Empty reports whether no action was pressed.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	f.bits = 0
}
