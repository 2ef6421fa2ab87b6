package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLayoutAliases(t *testing.T) {
	b, err := ParseLayout([]string{
		"o s t * d p",
		"circle square triangle star diamond spade",
		"x X . @1 . @1",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"● ■ ▲ ★ ♦ ♠",
		"● ■ ▲ ★ ♦ ♠",
		"X X . @1 . @1",
	}, FormatLayout(b))
}

func TestParseLayoutRoundTrip(t *testing.T) {
	rows := []string{
		". . ● X",
		"@a ■ . @a",
	}
	b, err := ParseLayout(rows)
	require.NoError(t, err)
	assert.Equal(t, rows, FormatLayout(b))
}

func TestParseLayoutErrors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		code string
	}{
		{"no rows", nil, CodeEmptyLayout},
		{"blank row", []string{"   "}, CodeEmptyLayout},
		{"ragged", []string{". .", "."}, CodeRaggedLayout},
		{"unknown token", []string{". Q"}, CodeUnknownToken},
		{"portal without id", []string{"@ ."}, CodeUnknownToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLayout(tt.rows)
			require.Error(t, err)

			var ve ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.code, ve.Code)
		})
	}
}

func TestValidateLevel(t *testing.T) {
	tests := []struct {
		name  string
		rows  []string
		limit int
		code  string
	}{
		{"valid", []string{"● @a", ". @a"}, 3, ""},
		{"zero limit", []string{"● ."}, 0, CodeBadMoveLimit},
		{"unpaired portal", []string{"● @a", ". ."}, 3, CodeUnpairedPortal},
		{"portal used three times", []string{"@a @a @a"}, 3, CodeDuplicatePortal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLevel(board(tt.rows...), tt.limit)
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			var ve ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.code, ve.Code)
			assert.Contains(t, err.Error(), "["+tt.code+"]")
		})
	}
}

func TestPiecesOnPortals(t *testing.T) {
	b := board(
		"● . ■",
		"@a . @a",
	)
	got := PiecesOnPortals(b)
	assert.Equal(t, []PortalLanding{
		{From: C(0, 0), Portal: C(1, 0), PortalID: "a"},
		{From: C(0, 2), Portal: C(1, 2), PortalID: "a"},
	}, got)

	assert.Empty(t, PiecesOnPortals(board("● .", ". @a", ". @a")))
}

func TestRenderSession(t *testing.T) {
	s := newSession(4, "● . ■")
	out := RenderSession(s)

	assert.Contains(t, out, "Moves: 0/4")
	assert.Contains(t, out, "Pieces: 2")
	assert.Contains(t, out, "Undo: ready")
	assert.Contains(t, out, "● . ■")
}
