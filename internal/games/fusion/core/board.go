package core

// Board is the puzzle grid. Cells are stored in row-major order: index = row*Cols + col.
// Dimensions never change during a round.
type Board struct {
	Rows  int
	Cols  int
	Cells []Cell
}

// NewBoard creates a board with all cells empty.
func NewBoard(rows, cols int) *Board {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &Board{
		Rows:  rows,
		Cols:  cols,
		Cells: make([]Cell, rows*cols),
	}
}

// index converts a coordinate to a flat array index.
func (b *Board) index(c Coord) int {
	return c.Row*b.Cols + c.Col
}

// InBounds returns true if the coordinate is on the board.
func (b *Board) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < b.Rows && c.Col >= 0 && c.Col < b.Cols
}

// Get returns the cell at the given coordinate.
// Returns an empty cell if out of bounds.
func (b *Board) Get(c Coord) Cell {
	if !b.InBounds(c) {
		return EmptyCell()
	}
	return b.Cells[b.index(c)]
}

// Set stores a cell at the given coordinate. Out-of-bounds writes are ignored.
func (b *Board) Set(c Coord, cell Cell) {
	if b.InBounds(c) {
		b.Cells[b.index(c)] = cell
	}
}

// SetEmpty clears the cell at the given coordinate.
func (b *Board) SetEmpty(c Coord) {
	b.Set(c, EmptyCell())
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.Cells))
	copy(cells, b.Cells)
	return &Board{
		Rows:  b.Rows,
		Cols:  b.Cols,
		Cells: cells,
	}
}

// Equal returns true if two boards have the same dimensions and identical cells.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.Rows != other.Rows || b.Cols != other.Cols {
		return false
	}
	for i, cell := range b.Cells {
		if cell != other.Cells[i] {
			return false
		}
	}
	return true
}

// CountMovable returns the number of pieces on the board.
func (b *Board) CountMovable() int {
	count := 0
	for _, cell := range b.Cells {
		if cell.IsMovable() {
			count++
		}
	}
	return count
}

// IsCleared returns true when no pieces remain.
func (b *Board) IsCleared() bool {
	return b.CountMovable() == 0
}

// CountByKind tallies cells per kind.
func (b *Board) CountByKind() map[CellKind]int {
	counts := make(map[CellKind]int)
	for _, cell := range b.Cells {
		counts[cell.Kind]++
	}
	return counts
}

// CountByShape tallies pieces per shape.
func (b *Board) CountByShape() map[Shape]int {
	counts := make(map[Shape]int)
	for _, cell := range b.Cells {
		if cell.IsMovable() {
			counts[cell.Shape]++
		}
	}
	return counts
}

// AllCoords returns every coordinate ordered by row then column.
func (b *Board) AllCoords() []Coord {
	coords := make([]Coord, 0, b.Rows*b.Cols)
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			coords = append(coords, C(r, c))
		}
	}
	return coords
}

// Pieces returns the coordinates of all pieces in row-major order.
func (b *Board) Pieces() []Coord {
	coords := make([]Coord, 0)
	for _, c := range b.AllCoords() {
		if b.Get(c).IsMovable() {
			coords = append(coords, c)
		}
	}
	return coords
}

// Portals returns the coordinates of every portal mouth carrying portalID.
func (b *Board) Portals(portalID string) []Coord {
	coords := make([]Coord, 0, 2)
	for _, c := range b.AllCoords() {
		cell := b.Get(c)
		if cell.IsPortal() && cell.PortalID == portalID {
			coords = append(coords, c)
		}
	}
	return coords
}

// Find returns the coordinate of the cell with the given instance id.
func (b *Board) Find(id InstanceID) (Coord, bool) {
	if id == "" {
		return Coord{}, false
	}
	for i, cell := range b.Cells {
		if cell.ID == id {
			return C(i/b.Cols, i%b.Cols), true
		}
	}
	return Coord{}, false
}
