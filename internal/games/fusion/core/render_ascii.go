package core

import (
	"fmt"
	"strings"
)

// RenderBoard returns the board in layout token form, one row per line.
// Used for debugging and golden test output.
func RenderBoard(b *Board) string {
	return strings.Join(FormatLayout(b), "\n")
}

// RenderSession renders a session with a one-line header.
func RenderSession(s *Session) string {
	var sb strings.Builder

	limit := "-"
	if s.MoveLimit() > 0 {
		limit = fmt.Sprintf("%d", s.MoveLimit())
	}
	undo := "ready"
	if s.UndoUsed() {
		undo = "used"
	}
	sb.WriteString(fmt.Sprintf("Moves: %d/%s | Pieces: %d | Undo: %s | %s\n",
		s.MoveCount(), limit, s.Remaining(), undo, s.Outcome()))

	board := s.Board()
	sb.WriteString(strings.Repeat("-", board.Cols*2) + "\n")
	sb.WriteString(RenderBoard(board))
	sb.WriteString("\n")
	return sb.String()
}
