package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/shape-fusion/internal/core"
)

func fg(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }

// basePalette is the board coloring used when the theme has no override.
var basePalette = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorRed:         fg("9"),
	core.ColorGreen:       fg("10"),
	core.ColorYellow:      fg("11"),
	core.ColorBlue:        fg("12"),
	core.ColorMagenta:     fg("13"),
	core.ColorCyan:        fg("14"),
	core.ColorWhite:       fg("7"),
	core.ColorPink:        fg("205"),
	core.ColorOrange:      fg("208"),
	core.ColorGray:        fg("245"),
	core.ColorBrightWhite: fg("15").Bold(true),
}

// RenderScreen turns the screen buffer into terminal output, one styled span
// per run of same-colored cells.
func RenderScreen(s *core.Screen) string {
	rows := make([]string, s.Height())
	for y := range rows {
		rows[y] = renderRow(s, y)
	}
	return strings.Join(rows, "\n")
}

func renderRow(s *core.Screen, y int) string {
	var (
		out  strings.Builder
		span []rune
		cur  core.Color
	)
	flush := func() {
		if len(span) > 0 {
			out.WriteString(styleFor(cur).Render(string(span)))
			span = span[:0]
		}
	}
	for x := range s.Width() {
		c := s.GetCell(x, y)
		if c.Color != cur {
			flush()
			cur = c.Color
		}
		span = append(span, c.Rune)
	}
	flush()
	return out.String()
}
