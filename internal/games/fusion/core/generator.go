package core

// GenParams configures procedural board generation.
type GenParams struct {
	Rows      int
	Cols      int
	Seed      uint64 // RNG seed for deterministic boards
	SpawnRows int    // Pieces are placed only in the top SpawnRows rows

	MinBlockers int
	MaxBlockers int
	MinPieces   int
	MaxPieces   int

	MaxGravityPasses int
}

// DefaultGenParams returns the classic random board settings.
func DefaultGenParams() GenParams {
	return GenParams{
		Rows:             10,
		Cols:             14,
		SpawnRows:        5,
		MinBlockers:      6,
		MaxBlockers:      18,
		MinPieces:        16,
		MaxPieces:        20,
		MaxGravityPasses: DefaultMaxGravityPasses,
	}
}

// SimpleRNG is a deterministic pseudo-random number generator (xorshift64).
type SimpleRNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed.
func NewRNG(seed uint64) *SimpleRNG {
	if seed == 0 {
		seed = 88172645463325252 // Default seed
	}
	return &SimpleRNG{state: seed}
}

// Next returns the next random uint64.
func (r *SimpleRNG) Next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Intn returns a random int in [0, n).
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Between returns a random int in [lo, hi]. Swapped bounds are tolerated.
func (r *SimpleRNG) Between(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + r.Intn(hi-lo+1)
}

// GenerateBoard builds a random board: blockers anywhere, pieces in the spawn rows,
// then gravity-settled. Counts are clamped to the free cells available, so the
// generator always terminates.
func GenerateBoard(p GenParams, rng *SimpleRNG) *Board {
	if p.Rows <= 0 || p.Cols <= 0 {
		return NewBoard(0, 0)
	}
	if rng == nil {
		rng = NewRNG(p.Seed)
	}
	spawnRows := p.SpawnRows
	if spawnRows <= 0 || spawnRows > p.Rows {
		spawnRows = p.Rows
	}

	b := NewBoard(p.Rows, p.Cols)

	blockers := rng.Between(p.MinBlockers, p.MaxBlockers)
	placeRandom(b, rng, blockers, p.Rows, func() Cell { return NewBlocker() })

	pieces := rng.Between(p.MinPieces, p.MaxPieces)
	placeRandom(b, rng, pieces, spawnRows, func() Cell {
		return NewPiece(Shape(rng.Intn(int(ShapeCount))))
	})

	return SettleGravity(b, p.MaxGravityPasses).Board
}

// placeRandom puts n cells on empty coordinates within the top rows.
func placeRandom(b *Board, rng *SimpleRNG, n, rows int, newCell func() Cell) {
	free := make([]Coord, 0, rows*b.Cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < b.Cols; c++ {
			if b.Get(C(r, c)).IsEmpty() {
				free = append(free, C(r, c))
			}
		}
	}
	if n > len(free) {
		n = len(free)
	}

	// Partial Fisher-Yates over the free list
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(free)-i)
		free[i], free[j] = free[j], free[i]
		b.Set(free[i], newCell())
	}
}
