package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPartner(t *testing.T) {
	b := board("@a . @a", "@b . .")

	c, ok := FindPartner(b, "a", C(0, 0))
	require.True(t, ok)
	assert.Equal(t, C(0, 2), c)

	_, ok = FindPartner(b, "b", C(1, 0))
	assert.False(t, ok)

	_, ok = FindPartner(b, "missing", C(0, 0))
	assert.False(t, ok)
}

func TestTeleportErasesPair(t *testing.T) {
	b := board("● . .", "@a X @a")
	piece := b.Get(C(0, 0))

	res, err := Teleport(b, C(0, 0), C(1, 0))
	require.NoError(t, err)

	assert.Equal(t, ". . .\n. X ●", RenderBoard(res.Board))
	assert.Equal(t, piece, res.Board.Get(C(1, 2)))
	assert.Equal(t, "a", res.RemovedPortalID)
	assert.Equal(t, C(1, 0), res.Entry)
	assert.Equal(t, C(1, 2), res.Exit)
	assert.Empty(t, res.Board.Portals("a"))

	// The input board keeps its portals
	assert.Len(t, b.Portals("a"), 2)
}

func TestTeleportErrors(t *testing.T) {
	tests := []struct {
		name    string
		layout  []string
		from    Coord
		entry   Coord
		wantErr error
	}{
		{"no partner", []string{"●", "@a"}, C(0, 0), C(1, 0), ErrNoPartner},
		{"not a portal", []string{"●", "."}, C(0, 0), C(1, 0), ErrNotPortal},
		{"no piece", []string{".", "@a", "@a"}, C(0, 0), C(1, 0), ErrNoPiece},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Teleport(board(tt.layout...), tt.from, tt.entry)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPortalSingleUse(t *testing.T) {
	b := board("● ■ .", "@a . @a")

	first, err := Teleport(b, C(0, 0), C(1, 0))
	require.NoError(t, err)

	_, err = Teleport(first.Board, C(0, 1), C(1, 0))
	assert.ErrorIs(t, err, ErrNotPortal)
	_, ok := FindPartner(first.Board, "a", C(1, 0))
	assert.False(t, ok)
}

func TestTeleportPhasesOrder(t *testing.T) {
	assert.Equal(t, []TeleportPhase{PhaseEnter, PhaseConnect, PhaseExit}, TeleportPhases())
	assert.Equal(t, "connect", PhaseConnect.String())
}
