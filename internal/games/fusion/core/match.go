package core

// Match is an unordered pair of 4-adjacent pieces with the same shape.
// A always precedes B in row-major order.
type Match struct {
	A Coord
	B Coord
}

// FindMatches reports every adjacent equal-shape pair on the board. Pairs may overlap:
// three in a row yields two matches sharing the middle piece. Only the right and lower
// neighbours are inspected, so each pair is reported exactly once.
func FindMatches(b *Board) []Match {
	matches := make([]Match, 0)
	for _, c := range b.Pieces() {
		cell := b.Get(c)
		for _, n := range []Coord{c.Add(0, 1), c.Below()} {
			if b.InBounds(n) && cell.Matches(b.Get(n)) {
				matches = append(matches, Match{A: c, B: n})
			}
		}
	}
	return matches
}

// MatchedCoords returns each coordinate named by any match once, in first-seen order.
func MatchedCoords(matches []Match) []Coord {
	seen := make(map[Coord]bool, len(matches)*2)
	coords := make([]Coord, 0, len(matches)*2)
	for _, m := range matches {
		for _, c := range []Coord{m.A, m.B} {
			if !seen[c] {
				seen[c] = true
				coords = append(coords, c)
			}
		}
	}
	return coords
}

// RemoveMatches empties every matched coordinate. The input board is not modified.
func RemoveMatches(b *Board, matches []Match) *Board {
	out := b.Clone()
	for _, c := range MatchedCoords(matches) {
		out.SetEmpty(c)
	}
	return out
}
