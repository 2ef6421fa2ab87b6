// Package tui provides the Bubble Tea integration for Shape Fusion.
// It handles the terminal UI loop, input mapping, and game orchestration for local and SSH sessions.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/shape-fusion/internal/core"
)

// TickMsg drives one simulation step.
type TickMsg time.Time

// scheduleTick asks Bubble Tea for the next TickMsg after one tick interval.
func scheduleTick(cfg core.RuntimeConfig) tea.Cmd {
	return tea.Tick(cfg.TickInterval(), func(t time.Time) tea.Msg { return TickMsg(t) })
}
