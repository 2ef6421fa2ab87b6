// Package core provides the board simulation for the Shape Fusion puzzle.
// This package is UI-agnostic: every stage takes a board and returns a new one,
// and nothing here knows about timing or rendering.
package core

import "github.com/google/uuid"

// CellKind tags the contents of a cell.
type CellKind uint8

const (
	KindEmpty CellKind = iota
	KindPiece
	KindBlocker
	KindPortal
)

// String returns the string representation of a cell kind.
func (k CellKind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindPiece:
		return "piece"
	case KindBlocker:
		return "blocker"
	case KindPortal:
		return "portal"
	default:
		return "unknown"
	}
}

// InstanceID identifies one token across moves and falls so a renderer can
// correlate it between snapshots. It carries no gameplay meaning.
type InstanceID string

// NewInstanceID returns a fresh unique id.
func NewInstanceID() InstanceID {
	return InstanceID(uuid.NewString())
}

// Cell is a single board cell. Cells are plain values, so copying a slice of
// cells never shares state.
type Cell struct {
	Kind     CellKind
	Shape    Shape      // Valid only for pieces
	PortalID string     // Valid only for portals
	ID       InstanceID // Empty for empty cells
}

// EmptyCell returns an empty cell.
func EmptyCell() Cell {
	return Cell{Kind: KindEmpty}
}

// PieceCell returns a piece with the given shape and id.
func PieceCell(s Shape, id InstanceID) Cell {
	return Cell{Kind: KindPiece, Shape: s, ID: id}
}

// BlockerCell returns a blocker with the given id.
func BlockerCell(id InstanceID) Cell {
	return Cell{Kind: KindBlocker, ID: id}
}

// PortalCell returns one mouth of the portal pair portalID.
func PortalCell(portalID string, id InstanceID) Cell {
	return Cell{Kind: KindPortal, PortalID: portalID, ID: id}
}

// NewPiece returns a piece with a fresh id.
func NewPiece(s Shape) Cell {
	return PieceCell(s, NewInstanceID())
}

// NewBlocker returns a blocker with a fresh id.
func NewBlocker() Cell {
	return BlockerCell(NewInstanceID())
}

// NewPortal returns a portal mouth with a fresh id.
func NewPortal(portalID string) Cell {
	return PortalCell(portalID, NewInstanceID())
}

// IsEmpty reports whether the cell holds nothing.
func (c Cell) IsEmpty() bool {
	return c.Kind == KindEmpty
}

// IsMovable reports whether the cell holds a piece. Blockers and portals are not movable.
func (c Cell) IsMovable() bool {
	return c.Kind == KindPiece
}

// IsBlocker reports whether the cell holds a blocker.
func (c Cell) IsBlocker() bool {
	return c.Kind == KindBlocker
}

// IsPortal reports whether the cell holds a portal mouth.
func (c Cell) IsPortal() bool {
	return c.Kind == KindPortal
}

// Matches reports whether two cells are pieces of the same shape.
func (c Cell) Matches(other Cell) bool {
	return c.IsMovable() && other.IsMovable() && c.Shape == other.Shape
}
