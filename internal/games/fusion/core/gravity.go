package core

// DefaultMaxGravityPasses bounds the outer settle loop. A bottom-up scan that drops every
// piece to rest settles a column in one pass, so the second pass only confirms stability.
const DefaultMaxGravityPasses = 4

// FallPath describes one piece's vertical displacement during a settle.
// It exists for animation only.
type FallPath struct {
	From     Coord
	To       Coord
	Distance int
	Piece    Cell
}

// PortalLanding records a piece that fell and came to rest directly above a portal mouth.
type PortalLanding struct {
	From     Coord // Where the piece rests, one row above the portal
	Portal   Coord
	PortalID string
}

// GravityResult is the outcome of SettleGravity.
type GravityResult struct {
	Board          *Board
	FallPaths      []FallPath
	PortalLandings []PortalLanding
	Passes         int
	Capped         bool // The pass limit was reached while pieces were still moving
}

// Moved reports whether any piece fell.
func (r GravityResult) Moved() bool {
	return len(r.FallPaths) > 0
}

// MaxDistance returns the longest fall in rows.
func (r GravityResult) MaxDistance() int {
	return MaxFallDistance(r.FallPaths)
}

// MaxFallDistance returns the longest distance among the given paths.
func MaxFallDistance(paths []FallPath) int {
	maxDist := 0
	for _, p := range paths {
		if p.Distance > maxDist {
			maxDist = p.Distance
		}
	}
	return maxDist
}

// SettleGravity drops every piece into the empty space below it and returns the settled
// board. The input board is not modified.
//
// Columns are processed independently and scanned bottom to top, so a stack falls as a
// unit. Pieces never enter blocker or portal cells. A piece that falls onto a portal
// mouth stops above it and is reported in PortalLandings; entering the portal is the
// caller's job.
func SettleGravity(b *Board, maxPasses int) GravityResult {
	if maxPasses <= 0 {
		maxPasses = DefaultMaxGravityPasses
	}

	board := b.Clone()
	paths := make([]FallPath, 0)
	byID := make(map[InstanceID]int)

	result := GravityResult{}
	for result.Passes < maxPasses {
		result.Passes++
		moved := false

		for col := 0; col < board.Cols; col++ {
			for row := board.Rows - 2; row >= 0; row-- {
				from := C(row, col)
				cell := board.Get(from)
				if !cell.IsMovable() {
					continue
				}

				to := from
				for board.InBounds(to.Below()) && board.Get(to.Below()).IsEmpty() {
					to = to.Below()
				}
				if to == from {
					continue
				}

				board.SetEmpty(from)
				board.Set(to, cell)
				moved = true

				// A piece may fall again in a later pass; keep one path per piece
				if idx, ok := byID[cell.ID]; ok && cell.ID != "" {
					paths[idx].To = to
					paths[idx].Distance = to.Row - paths[idx].From.Row
					continue
				}
				if cell.ID != "" {
					byID[cell.ID] = len(paths)
				}
				paths = append(paths, FallPath{
					From:     from,
					To:       to,
					Distance: to.Row - from.Row,
					Piece:    cell,
				})
			}
		}

		if !moved {
			break
		}
		if result.Passes == maxPasses && !IsSettled(board) {
			result.Capped = true
		}
	}

	landings := make([]PortalLanding, 0)
	for _, p := range paths {
		below := board.Get(p.To.Below())
		if below.IsPortal() {
			landings = append(landings, PortalLanding{
				From:     p.To,
				Portal:   p.To.Below(),
				PortalID: below.PortalID,
			})
		}
	}

	result.Board = board
	result.FallPaths = paths
	result.PortalLandings = landings
	return result
}

// IsSettled reports whether no piece has an empty cell directly beneath it.
func IsSettled(b *Board) bool {
	for _, c := range b.Pieces() {
		below := c.Below()
		if b.InBounds(below) && b.Get(below).IsEmpty() {
			return false
		}
	}
	return true
}
