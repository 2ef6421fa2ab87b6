package core

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// Outcome is the round state.
type Outcome int

const (
	InProgress Outcome = iota
	Won
	Lost
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case InProgress:
		return "in_progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Rejected move errors. The command layer treats these as silent no-ops.
var (
	ErrBusy        = errors.New("a move is still resolving")
	ErrInvalidMove = errors.New("invalid move")
	ErrRoundOver   = errors.New("round is over")
)

// SessionOptions configures a session.
type SessionOptions struct {
	MaxGravityPasses int
	Observer         Observer
	Logger           *log.Logger
}

// Session is one round on one board. It owns the authoritative board and is not safe
// for concurrent use.
type Session struct {
	board     *Board
	moveLimit int // <= 0 means no limit
	moveCount int
	outcome   Outcome

	undoSnapshot *Board
	undoUsed     bool

	selected    Coord
	hasSelected bool

	busy    bool
	pending *Resolution
	lossDue bool

	opts   SessionOptions
	logger *log.Logger
}

// NewSession starts a round on board. The board is taken as-is; callers load and settle
// it first.
func NewSession(board *Board, moveLimit int, opts SessionOptions) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Session{
		board:     board.Clone(),
		moveLimit: moveLimit,
		outcome:   InProgress,
		opts:      opts,
		logger:    logger,
	}
}

// Board returns a copy of the authoritative board. While a move is in flight this is
// still the pre-move board.
func (s *Session) Board() *Board { return s.board.Clone() }

// Outcome returns the round outcome.
func (s *Session) Outcome() Outcome { return s.outcome }

// MoveCount returns the number of moves made.
func (s *Session) MoveCount() int { return s.moveCount }

// MoveLimit returns the move limit.
func (s *Session) MoveLimit() int { return s.moveLimit }

// MovesLeft returns remaining moves, or -1 if unlimited.
func (s *Session) MovesLeft() int {
	if s.moveLimit <= 0 {
		return -1
	}
	left := s.moveLimit - s.moveCount
	if left < 0 {
		return 0
	}
	return left
}

// Remaining returns the number of pieces left on the board.
func (s *Session) Remaining() int { return s.board.CountMovable() }

// Busy reports whether a move is in flight.
func (s *Session) Busy() bool { return s.busy }

// UndoUsed reports whether this round's undo has been consumed.
func (s *Session) UndoUsed() bool { return s.undoUsed }

// CanUndo reports whether Undo would do anything right now.
func (s *Session) CanUndo() bool {
	return s.outcome == InProgress && !s.busy && !s.undoUsed && s.undoSnapshot != nil
}

// Selected returns the selected cell, if any.
func (s *Session) Selected() (Coord, bool) {
	return s.selected, s.hasSelected
}

// SelectCell selects the piece at c. Anything other than a piece is ignored,
// as are selections while busy or after the round ended.
func (s *Session) SelectCell(c Coord) bool {
	if s.busy || s.outcome != InProgress {
		return false
	}
	if !s.board.InBounds(c) || !s.board.Get(c).IsMovable() {
		return false
	}
	s.selected = c
	s.hasSelected = true
	return true
}

// ClearSelection drops the current selection.
func (s *Session) ClearSelection() {
	s.selected = Coord{}
	s.hasSelected = false
}

// IsValidMoveTarget reports whether the selected piece could move to c.
// Used for highlighting; it has no side effects.
func (s *Session) IsValidMoveTarget(c Coord) bool {
	if !s.hasSelected {
		return false
	}
	return IsValidMove(s.board, s.selected, c)
}

// ExecuteMove moves the piece at from to to and resolves the cascade in one call.
func (s *Session) ExecuteMove(from, to Coord) (*Resolution, error) {
	res, err := s.StartMove(from, to)
	if err != nil {
		return nil, err
	}
	s.FinishMove()
	return res, nil
}

// StartMove validates and resolves a move but does not commit it. The session is busy
// until FinishMove is called, so a presentation can play the returned steps back.
func (s *Session) StartMove(from, to Coord) (*Resolution, error) {
	if s.busy {
		return nil, ErrBusy
	}
	if s.outcome != InProgress {
		return nil, ErrRoundOver
	}
	if !IsValidMove(s.board, from, to) {
		return nil, fmt.Errorf("%s -> %s: %w", from, to, ErrInvalidMove)
	}

	moved, tr, err := ApplyMove(s.board, from, to)
	if err != nil {
		s.logger.Warn("rejecting move", "from", from, "to", to, "error", err)
		return nil, fmt.Errorf("%s -> %s: %w", from, to, ErrInvalidMove)
	}

	steps := make([]Step, 0, 1)
	moveStep := Step{Kind: StepMove, Board: moved, From: from, To: to}
	s.notify(moveStep)
	steps = append(steps, moveStep)
	if tr != nil {
		teleportStep := Step{Kind: StepTeleport, Board: moved, Teleport: tr}
		s.notify(teleportStep)
		steps = append(steps, teleportStep)
	}

	res := Stabilize(moved, StabilizeOptions{
		MaxGravityPasses: s.opts.MaxGravityPasses,
		Observer:         s.opts.Observer,
		Logger:           s.logger,
	})
	res.Start = s.board.Clone()
	res.Steps = append(steps, res.Steps...)

	s.undoSnapshot = s.board.Clone()
	s.moveCount++
	s.lossDue = s.moveLimit > 0 && s.moveCount >= s.moveLimit
	s.ClearSelection()
	s.busy = true
	s.pending = &res

	s.logger.Debug("move resolved",
		"from", from, "to", to,
		"cascades", res.Cascades,
		"removed", res.Removed,
		"moves", s.moveCount,
	)
	return &res, nil
}

// FinishMove commits the in-flight move and recomputes the outcome.
// A cleared board wins even if the same move used up the last allowed move.
func (s *Session) FinishMove() Outcome {
	if !s.busy || s.pending == nil {
		return s.outcome
	}

	s.board = s.pending.Final.Clone()
	s.pending = nil
	s.busy = false

	switch {
	case s.board.IsCleared():
		s.outcome = Won
	case s.lossDue:
		s.outcome = Lost
	default:
		s.outcome = InProgress
	}
	s.lossDue = false
	return s.outcome
}

// Undo restores the board from before the last move. It works once per round and
// does nothing while busy, after the round ended, or before the first move.
func (s *Session) Undo() bool {
	if !s.CanUndo() {
		return false
	}
	s.board = s.undoSnapshot
	s.undoSnapshot = nil
	s.undoUsed = true
	if s.moveCount > 0 {
		s.moveCount--
	}
	s.ClearSelection()
	return true
}

func (s *Session) notify(step Step) {
	if s.opts.Observer != nil {
		s.opts.Observer(step)
	}
}
