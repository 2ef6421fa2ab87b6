package core

import (
	"fmt"
	"sort"
)

// Validation error codes.
const (
	CodeEmptyLayout     = "EMPTY_LAYOUT"
	CodeRaggedLayout    = "RAGGED_LAYOUT"
	CodeUnknownToken    = "UNKNOWN_TOKEN"
	CodeBadMoveLimit    = "BAD_MOVE_LIMIT"
	CodeUnpairedPortal  = "UNPAIRED_PORTAL"
	CodeDuplicatePortal = "DUPLICATE_PORTAL"
)

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// ValidateLevel checks a parsed board and its move limit.
// Checks:
//   - Move limit is positive
//   - Every portal id appears on exactly two cells
func ValidateLevel(b *Board, moveLimit int) error {
	if moveLimit <= 0 {
		return ValidationError{
			Code:    CodeBadMoveLimit,
			Message: fmt.Sprintf("move limit must be positive, got %d", moveLimit),
		}
	}
	return ValidatePortals(b)
}

// ValidatePortals checks that every portal id has exactly two mouths.
func ValidatePortals(b *Board) error {
	counts := make(map[string]int)
	for _, cell := range b.Cells {
		if cell.IsPortal() {
			counts[cell.PortalID]++
		}
	}

	// Sort for deterministic error reporting
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		switch n := counts[id]; {
		case n < 2:
			return ValidationError{
				Code:    CodeUnpairedPortal,
				Message: fmt.Sprintf("portal %q has no partner", id),
			}
		case n > 2:
			return ValidationError{
				Code:    CodeDuplicatePortal,
				Message: fmt.Sprintf("portal %q appears %d times, expected 2", id, n),
			}
		}
	}
	return nil
}

// PiecesOnPortals returns the pieces resting directly on a portal mouth, in
// row-major order. Only a fall fires a portal, so such a piece stays put until
// something moves it.
func PiecesOnPortals(b *Board) []PortalLanding {
	var out []PortalLanding
	for _, c := range b.Pieces() {
		below := c.Below()
		if !b.InBounds(below) {
			continue
		}
		if cell := b.Get(below); cell.IsPortal() {
			out = append(out, PortalLanding{From: c, Portal: below, PortalID: cell.PortalID})
		}
	}
	return out
}
