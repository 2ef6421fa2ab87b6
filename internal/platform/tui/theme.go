package tui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/shape-fusion/internal/core"
)

// Theme contains all configurable visual styles.
type Theme struct {
	// Palette overrides the board colors; missing entries use basePalette
	Palette map[core.Color]lipgloss.Style

	// HUD styles
	HUDTitle    lipgloss.Style
	HUDValue    lipgloss.Style
	HUDControls lipgloss.Style

	// Menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
	MenuBest        lipgloss.Style // Best-moves badge in the level picker
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Palette: map[core.Color]lipgloss.Style{},

		HUDTitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		HUDValue:    lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		HUDControls: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		MenuBest:        lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
	}
}

// NeonTheme returns a neon-style theme.
func NeonTheme() Theme {
	theme := DefaultTheme()
	theme.Palette = map[core.Color]lipgloss.Style{
		core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("199")), // Neon pink
		core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("87")),  // Neon cyan
		core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("118")), // Neon green
		core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("227")), // Neon yellow
		core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("171")), // Neon purple
	}
	theme.MenuTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("199")).Bold(true)
	return theme
}

// PastelTheme returns a softer pastel theme.
func PastelTheme() Theme {
	theme := DefaultTheme()
	theme.Palette = map[core.Color]lipgloss.Style{
		core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("218")),
		core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("153")),
		core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("157")),
		core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
		core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("123")),
		core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("183")),
	}
	theme.MenuItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("218")).Bold(true)
	return theme
}

// MonochromeTheme returns a grayscale theme. Shapes stay distinguishable by glyph.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.Palette = map[core.Color]lipgloss.Style{
		core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("247")),
		core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Underline(true),
	}
	theme.HUDTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.MenuTitle = theme.HUDTitle
	theme.MenuItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true).Underline(true)
	theme.MenuBest = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	return theme
}

var themes = map[string]func() Theme{
	"default": DefaultTheme,
	"neon":    NeonTheme,
	"pastel":  PastelTheme,
	"mono":    MonochromeTheme,
}

// ThemeByName looks up a built-in theme.
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return DefaultTheme(), true
	}
	f, ok := themes[name]
	if !ok {
		return Theme{}, false
	}
	return f(), true
}

// ThemeNames lists the built-in themes, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Global theme variable (can be changed at runtime)
var currentTheme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(theme Theme) {
	currentTheme = theme
}

// GetTheme returns the current global theme.
func GetTheme() Theme {
	return currentTheme
}

// styleFor returns the style for a board color under the current theme.
func styleFor(c core.Color) lipgloss.Style {
	if s, ok := currentTheme.Palette[c]; ok {
		return s
	}
	if s, ok := basePalette[c]; ok {
		return s
	}
	return basePalette[core.ColorDefault]
}
