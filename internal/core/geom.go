// Package core provides fundamental platform types shared by games and the terminal
// front end. It contains no Bubble Tea dependencies to keep game logic testable.
package core

import "math"

// Rect is an area of the screen in character cells.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Inner returns the area inside a one-cell frame drawn on r's edge.
func (r Rect) Inner() Rect {
	return NewRect(r.X+1, r.Y+1, max(0, r.W-2), max(0, r.H-2))
}

// Fits reports whether r lies entirely inside a w x h screen.
func (r Rect) Fits(w, h int) bool {
	return r.X >= 0 && r.Y >= 0 && r.Right() <= w && r.Bottom() <= h
}

// CenteredRect returns a w x h rectangle centered in a screen of the given size.
// The origin is clamped to zero when the screen is too small.
func CenteredRect(screenW, screenH, w, h int) Rect {
	return NewRect(max(0, (screenW-w)/2), max(0, (screenH-h)/2), w, h)
}

// CellGrid places a board of fixed-width cells inside a frame.
// Row and column refer to board cells; X and Y are screen positions.
type CellGrid struct {
	Frame      Rect
	Rows, Cols int
	CellW      int // Screen columns per board cell
}

// NewCellGrid lays out a rows x cols board centered in the area below top.
func NewCellGrid(rows, cols, cellW, screenW, screenH, top int) CellGrid {
	frame := CenteredRect(screenW, max(0, screenH-top), cols*cellW+2, rows+2)
	frame.Y += top
	return CellGrid{Frame: frame, Rows: rows, Cols: cols, CellW: cellW}
}

// CellPos returns the screen position of the left edge of a board cell.
func (g CellGrid) CellPos(row, col int) (x, y int) {
	in := g.Frame.Inner()
	return in.X + col*g.CellW, in.Y + row
}

// PosAt returns the screen position for fractional board coordinates, used while a
// piece is between cells.
func (g CellGrid) PosAt(row, col float64) (x, y int) {
	in := g.Frame.Inner()
	return in.X + int(math.Floor(col*float64(g.CellW)+0.5)), in.Y + int(math.Floor(row+0.5))
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
