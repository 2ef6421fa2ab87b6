package core

import (
	"fmt"
	"strings"
)

// Layout tokens. Shapes use their symbol or any alias accepted by ParseShape.
const (
	TokenEmpty   = "."
	TokenBlocker = "X"
	PortalPrefix = "@"
)

// ParseToken converts one layout token into a cell with a fresh id.
func ParseToken(tok string) (Cell, error) {
	switch {
	case tok == TokenEmpty:
		return EmptyCell(), nil
	case tok == TokenBlocker || tok == "x":
		return NewBlocker(), nil
	case strings.HasPrefix(tok, PortalPrefix):
		id := strings.TrimPrefix(tok, PortalPrefix)
		if id == "" {
			return Cell{}, ValidationError{
				Code:    CodeUnknownToken,
				Message: "portal token needs an id, e.g. @1",
			}
		}
		return NewPortal(id), nil
	}

	if s, ok := ParseShape(tok); ok {
		return NewPiece(s), nil
	}
	return Cell{}, ValidationError{
		Code:    CodeUnknownToken,
		Message: fmt.Sprintf("unknown token %q", tok),
	}
}

// FormatToken is the inverse of ParseToken.
func FormatToken(c Cell) string {
	switch c.Kind {
	case KindPiece:
		return string(c.Shape.Symbol())
	case KindBlocker:
		return TokenBlocker
	case KindPortal:
		return PortalPrefix + c.PortalID
	default:
		return TokenEmpty
	}
}

// ParseLayout builds a board from rows of space-separated tokens.
// The board is returned exactly as written; callers settle it before play.
func ParseLayout(rows []string) (*Board, error) {
	if len(rows) == 0 {
		return nil, ValidationError{Code: CodeEmptyLayout, Message: "layout has no rows"}
	}

	tokens := make([][]string, len(rows))
	for i, row := range rows {
		tokens[i] = strings.Fields(row)
	}

	cols := len(tokens[0])
	if cols == 0 {
		return nil, ValidationError{Code: CodeEmptyLayout, Message: "layout row 0 is empty"}
	}
	for i, row := range tokens {
		if len(row) != cols {
			return nil, ValidationError{
				Code:    CodeRaggedLayout,
				Message: fmt.Sprintf("row %d has %d cells, expected %d", i, len(row), cols),
			}
		}
	}

	b := NewBoard(len(rows), cols)
	for r, row := range tokens {
		for c, tok := range row {
			cell, err := ParseToken(tok)
			if err != nil {
				if ve, ok := err.(ValidationError); ok {
					ve.Message = fmt.Sprintf("row %d col %d: %s", r, c, ve.Message)
					return nil, ve
				}
				return nil, err
			}
			b.Set(C(r, c), cell)
		}
	}
	return b, nil
}

// FormatLayout renders a board back into layout rows.
func FormatLayout(b *Board) []string {
	rows := make([]string, b.Rows)
	for r := 0; r < b.Rows; r++ {
		toks := make([]string, b.Cols)
		for c := 0; c < b.Cols; c++ {
			toks[c] = FormatToken(b.Get(C(r, c)))
		}
		rows[r] = strings.Join(toks, " ")
	}
	return rows
}

// MustParseLayout is ParseLayout for fixtures known to be valid. It panics on error.
func MustParseLayout(rows ...string) *Board {
	b, err := ParseLayout(rows)
	if err != nil {
		panic(err)
	}
	return b
}
