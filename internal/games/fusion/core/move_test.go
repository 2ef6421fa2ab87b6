package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidMove(t *testing.T) {
	b := board(
		"● ■ . X ▲ @a",
		"@a . . . . .",
	)

	tests := []struct {
		name     string
		from, to Coord
		want     bool
	}{
		{"right onto empty", C(0, 1), C(0, 2), true},
		{"from empty cell", C(1, 2), C(1, 1), false},
		{"onto portal", C(0, 4), C(0, 5), true},
		{"onto piece", C(0, 0), C(0, 1), false},
		{"onto piece leftward", C(0, 1), C(0, 0), false},
		{"onto blocker", C(0, 4), C(0, 3), false},
		{"two steps", C(0, 1), C(0, 3), false},
		{"diagonal", C(0, 1), C(1, 2), false},
		{"cross row", C(0, 1), C(1, 1), false},
		{"off the left edge", C(0, 0), C(0, -1), false},
		{"from out of bounds", C(-1, 0), C(-1, 1), false},
		{"from blocker", C(0, 3), C(0, 2), false},
		{"from portal", C(0, 5), C(0, 4), false},
		{"no-op", C(0, 1), C(0, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidMove(b, tt.from, tt.to))
		})
	}
}

func TestApplyMoveOntoEmpty(t *testing.T) {
	b := board("● . ●")
	out, tr, err := ApplyMove(b, C(0, 0), C(0, 1))
	assert.NoError(t, err)
	assert.Nil(t, tr)
	assert.Equal(t, ". ● ●", RenderBoard(out))
	assert.Equal(t, "● . ●", RenderBoard(b))
}
