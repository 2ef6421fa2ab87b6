package fusion

import (
	"fmt"
	"strings"

	platformcore "github.com/vovakirdan/shape-fusion/internal/core"
	"github.com/vovakirdan/shape-fusion/internal/games/fusion/core"
)

const (
	cellW     = 3 // Terminal columns per board cell
	hudHeight = 4
)

// shapeColor maps a shape to its display color.
func shapeColor(s core.Shape) platformcore.Color {
	switch s {
	case core.ShapeCircle:
		return platformcore.ColorRed
	case core.ShapeSquare:
		return platformcore.ColorBlue
	case core.ShapeTriangle:
		return platformcore.ColorGreen
	case core.ShapeStar:
		return platformcore.ColorYellow
	case core.ShapeDiamond:
		return platformcore.ColorCyan
	case core.ShapeSpade:
		return platformcore.ColorMagenta
	default:
		return platformcore.ColorWhite
	}
}

// cellGlyph returns the glyph and default color of a cell.
func cellGlyph(c core.Cell) (rune, platformcore.Color) {
	switch c.Kind {
	case core.KindPiece:
		return c.Shape.Symbol(), shapeColor(c.Shape)
	case core.KindBlocker:
		return '▓', platformcore.ColorGray
	case core.KindPortal:
		id := []rune(c.PortalID)
		if len(id) == 0 {
			return '@', platformcore.ColorOrange
		}
		return id[0], platformcore.ColorOrange
	default:
		return '·', platformcore.ColorGray
	}
}

// boardGrid lays the board out below the HUD, leaving a line for messages.
func (g *Game) boardGrid(b *core.Board) platformcore.CellGrid {
	return platformcore.NewCellGrid(b.Rows, b.Cols, cellW, g.screenW, g.screenH-2, hudHeight)
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.ctrl == nil {
		g.renderOverlay(dst, "No board loaded", "Press Q to quit")
		return
	}

	session := g.ctrl.Session()
	var fr frame
	animating := false
	if g.playback != nil {
		fr, animating = g.playback.frame()
	}
	if !animating {
		fr = frame{board: session.Board()}
	}

	g.renderHUD(dst)

	grid := g.boardGrid(fr.board)
	if !grid.Frame.Fits(dst.Width(), dst.Height()-1) {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	dst.DrawBox(grid.Frame, platformcore.ColorGray)
	g.renderBoard(dst, grid, fr, !animating)

	if g.message != "" {
		dst.DrawTextCentered(grid.Frame.Bottom(), g.message, platformcore.ColorYellow)
	}

	if !animating {
		switch session.Outcome() {
		case core.Won:
			g.renderOverlay(dst, "Board Cleared!", "Enter: next board | R: replay")
		case core.Lost:
			g.renderOverlay(dst, "Out of Moves", "Enter/R: retry | N: skip")
		}
	}
}

// renderBoard draws board cells, then highlights, then floating pieces.
func (g *Game) renderBoard(dst *platformcore.Screen, grid platformcore.CellGrid, fr frame, interactive bool) {
	b := fr.board
	session := g.ctrl.Session()
	selected, hasSelected := session.Selected()

	for row := 0; row < b.Rows; row++ {
		for col := 0; col < b.Cols; col++ {
			c := core.C(row, col)
			glyph, color := cellGlyph(b.Get(c))
			if hl, ok := fr.highlights[c]; ok {
				color = hl
			}

			left, right := ' ', ' '
			if interactive {
				switch {
				case hasSelected && c == selected:
					left, right = '<', '>'
					color = platformcore.ColorBrightWhite
				case hasSelected && session.IsValidMoveTarget(c):
					left, right = '-', '-'
					if b.Get(c).IsEmpty() {
						glyph, color = '○', platformcore.ColorGreen
					}
				}
				if c == g.cursor {
					left, right = '[', ']'
				}
			}

			x, y := grid.CellPos(row, col)
			dst.SetColor(x, y, left, platformcore.ColorWhite)
			dst.SetColor(x+1, y, glyph, color)
			dst.SetColor(x+2, y, right, platformcore.ColorWhite)
		}
	}

	for _, o := range fr.overlays {
		x, y := grid.PosAt(o.row, o.col)
		glyph, _ := cellGlyph(o.cell)
		dst.SetColor(x+1, y, glyph, o.color)
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	session := g.ctrl.Session()
	cur := g.ctrl.Current()

	var level string
	if g.ctrl.Mode() == core.ModeCustom {
		level = fmt.Sprintf("Level %d/%d: %s", g.ctrl.Index()+1, len(g.ctrl.Levels()), cur.Name)
	} else {
		level = fmt.Sprintf("Random #%d (seed %d)", g.ctrl.Index()+1, g.ctrl.Seed())
	}

	moves := fmt.Sprintf("Moves: %d", session.MoveCount())
	if session.MoveLimit() > 0 {
		moves = fmt.Sprintf("Moves: %d/%d", session.MoveCount(), session.MoveLimit())
	}

	undo := "used"
	if session.CanUndo() {
		undo = "ready"
	} else if !session.UndoUsed() {
		undo = "-"
	}

	hud := strings.Join([]string{
		" Shape Fusion",
		level,
		moves,
		fmt.Sprintf("Pieces: %d", session.Remaining()),
		"Undo: " + undo,
	}, " | ")
	dst.DrawTextColor(0, 0, hud, platformcore.ColorCyan)

	for x := 0; x < dst.Width(); x++ {
		dst.SetColor(x, 1, '─', platformcore.ColorGray)
		dst.SetColor(x, 3, '─', platformcore.ColorGray)
	}

	controls := " Arrows: cursor | Space: select | ←/→: move piece | U: undo | R: reset | N: next | M: mode | Q: quit"
	if _, ok := session.Selected(); ok {
		controls = " [SELECTED] ←/→: move | Space/Esc: deselect | ↑/↓: pick another row"
	}
	dst.DrawTextColor(0, 2, controls, platformcore.ColorGray)
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	w := max(len([]rune(line1)), len([]rune(line2))) + 4
	r := platformcore.CenteredRect(dst.Width(), dst.Height(), w, 5)
	dst.Fill(r.Inner(), ' ')
	dst.DrawBox(r, platformcore.ColorBrightWhite)
	dst.DrawTextCentered(r.Y+1, line1, platformcore.ColorBrightWhite)
	dst.DrawTextCentered(r.Y+3, line2, platformcore.ColorGray)
}
