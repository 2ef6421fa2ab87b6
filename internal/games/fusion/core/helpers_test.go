package core

import (
	"io"

	"github.com/charmbracelet/log"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func board(rows ...string) *Board {
	return MustParseLayout(rows...)
}

// randomBoard scatters blockers, pieces and one portal pair anywhere on the board
// without settling it.
func randomBoard(seed uint64, rows, cols int) *Board {
	rng := NewRNG(seed)
	b := NewBoard(rows, cols)
	placeRandom(b, rng, rng.Between(2, 6), rows, func() Cell { return NewBlocker() })
	placeRandom(b, rng, 2, rows, func() Cell { return NewPortal("r") })
	placeRandom(b, rng, rng.Between(8, 20), rows, func() Cell {
		return NewPiece(Shape(rng.Intn(int(ShapeCount))))
	})
	return b
}
