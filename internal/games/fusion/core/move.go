package core

// IsValidMove reports whether the piece at from may step to to: same row, exactly one
// column away, on the board, and the target is empty or a portal mouth.
func IsValidMove(b *Board, from, to Coord) bool {
	if !b.InBounds(from) || !b.InBounds(to) {
		return false
	}
	if !b.Get(from).IsMovable() {
		return false
	}
	if from.Row != to.Row {
		return false
	}
	if dc := to.Col - from.Col; dc != 1 && dc != -1 {
		return false
	}
	target := b.Get(to)
	return target.IsEmpty() || target.IsPortal()
}

// ApplyMove performs the placement half of a move without stabilizing.
// For an empty target the piece simply moves. For a portal target the piece goes
// through the portal immediately. The caller must check IsValidMove first.
func ApplyMove(b *Board, from, to Coord) (*Board, *TeleportResult, error) {
	if b.Get(to).IsPortal() {
		res, err := Teleport(b, from, to)
		if err != nil {
			return nil, nil, err
		}
		return res.Board, &res, nil
	}

	out := b.Clone()
	piece := out.Get(from)
	out.SetEmpty(from)
	out.Set(to, piece)
	return out, nil, nil
}
