package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPartner is returned when a portal's pair is missing from the board.
	// This is a level data defect; callers log it and leave the piece in place.
	ErrNoPartner = errors.New("portal has no partner")
	// ErrNotPortal is returned when the teleport target is not a portal, usually because
	// the pair was already consumed earlier in the same cascade.
	ErrNotPortal = errors.New("target is not a portal")
	// ErrNoPiece is returned when there is no piece to send through the portal.
	ErrNoPiece = errors.New("no piece to teleport")
)

// TeleportPhase marks the visual stages of a teleport. The board only ever has two
// authoritative states, before and after; phases are for the renderer.
type TeleportPhase int

const (
	PhaseEnter TeleportPhase = iota
	PhaseConnect
	PhaseExit
)

// String returns the phase name.
func (p TeleportPhase) String() string {
	switch p {
	case PhaseEnter:
		return "enter"
	case PhaseConnect:
		return "connect"
	case PhaseExit:
		return "exit"
	default:
		return "unknown"
	}
}

// TeleportPhases lists phases in playback order.
func TeleportPhases() []TeleportPhase {
	return []TeleportPhase{PhaseEnter, PhaseConnect, PhaseExit}
}

// TeleportResult describes one completed teleport.
type TeleportResult struct {
	Board           *Board
	Piece           Cell
	From            Coord // Where the piece was before entering
	Entry           Coord // The portal mouth it entered
	Exit            Coord // The partner mouth it now occupies
	RemovedPortalID string
}

// FindPartner returns the other mouth of portalID, skipping exclude.
func FindPartner(b *Board, portalID string, exclude Coord) (Coord, bool) {
	for _, c := range b.Portals(portalID) {
		if c != exclude {
			return c, true
		}
	}
	return Coord{}, false
}

// RemovePortalPair erases every portal cell carrying portalID.
// The input board is not modified.
func RemovePortalPair(b *Board, portalID string) *Board {
	out := b.Clone()
	for _, c := range out.Portals(portalID) {
		out.SetEmpty(c)
	}
	return out
}

// Teleport sends the piece at from through the portal at entry. The piece ends up on
// the partner mouth's coordinate and the whole pair is erased, so each pair works once
// per round. The input board is not modified.
//
// from may be the cell resting above the portal (a gravity landing) or a horizontal
// neighbour (a direct move onto the portal).
func Teleport(b *Board, from, entry Coord) (TeleportResult, error) {
	piece := b.Get(from)
	if !piece.IsMovable() {
		return TeleportResult{}, fmt.Errorf("teleport from %s: %w", from, ErrNoPiece)
	}

	portal := b.Get(entry)
	if !portal.IsPortal() {
		return TeleportResult{}, fmt.Errorf("teleport into %s: %w", entry, ErrNotPortal)
	}

	exit, ok := FindPartner(b, portal.PortalID, entry)
	if !ok {
		return TeleportResult{}, fmt.Errorf("portal %q at %s: %w", portal.PortalID, entry, ErrNoPartner)
	}

	out := RemovePortalPair(b, portal.PortalID)
	out.SetEmpty(from)
	out.Set(exit, piece)

	return TeleportResult{
		Board:           out,
		Piece:           piece,
		From:            from,
		Entry:           entry,
		Exit:            exit,
		RemovedPortalID: portal.PortalID,
	}, nil
}
