package core

import (
	"errors"

	"github.com/charmbracelet/log"
)

// StepKind identifies a stage of move resolution.
type StepKind int

const (
	StepMove StepKind = iota
	StepGravity
	StepTeleport
	StepMatch
)

// String returns the step name.
func (k StepKind) String() string {
	switch k {
	case StepMove:
		return "move"
	case StepGravity:
		return "gravity"
	case StepTeleport:
		return "teleport"
	case StepMatch:
		return "match"
	default:
		return "unknown"
	}
}

// Step is one observable stage of a move. Board is the state after the stage.
// Consumers must treat every field as read-only.
type Step struct {
	Kind      StepKind
	Cascade   int // 1-based cascade round the step belongs to
	Board     *Board
	From      Coord // Move only
	To        Coord // Move only
	FallPaths []FallPath
	Teleport  *TeleportResult
	Matches   []Match
}

// Observer receives each step as it is produced.
type Observer func(Step)

// StabilizeOptions configures Stabilize.
type StabilizeOptions struct {
	MaxGravityPasses int // <= 0 means DefaultMaxGravityPasses
	Observer         Observer
	Logger           *log.Logger
}

// Resolution is the full record of a stabilization.
type Resolution struct {
	Start    *Board
	Final    *Board
	Steps    []Step
	Cascades int  // Number of match rounds that removed pieces
	Removed  int  // Pieces removed by matches
	Capped   bool // Some gravity settle hit its pass limit
}

// Matches returns every match removed during the resolution, in order.
func (r *Resolution) Matches() []Match {
	all := make([]Match, 0)
	for _, s := range r.Steps {
		if s.Kind == StepMatch {
			all = append(all, s.Matches...)
		}
	}
	return all
}

// Teleports returns the teleports performed during the resolution.
func (r *Resolution) Teleports() []TeleportResult {
	all := make([]TeleportResult, 0)
	for _, s := range r.Steps {
		if s.Kind == StepTeleport && s.Teleport != nil {
			all = append(all, *s.Teleport)
		}
	}
	return all
}

type stabilizer struct {
	opts   StabilizeOptions
	logger *log.Logger
	res    *Resolution
}

func (s *stabilizer) emit(step Step) {
	s.res.Steps = append(s.res.Steps, step)
	if s.opts.Observer != nil {
		s.opts.Observer(step)
	}
}

// Stabilize runs the cascade on b until the board is stable:
// settle gravity, send landed pieces through portals (settling again after each batch),
// then remove all matches and start over. It stops when no matches remain.
// The input board is not modified and the result does not depend on the observer.
func Stabilize(b *Board, opts StabilizeOptions) Resolution {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	res := Resolution{Start: b, Steps: make([]Step, 0)}
	s := &stabilizer{opts: opts, logger: logger, res: &res}

	board := b
	for cascade := 1; ; cascade++ {
		board = s.settle(board, cascade)

		matches := FindMatches(board)
		if len(matches) == 0 {
			break
		}

		board = RemoveMatches(board, matches)
		res.Cascades++
		res.Removed += len(MatchedCoords(matches))
		s.emit(Step{Kind: StepMatch, Cascade: cascade, Board: board, Matches: matches})
	}

	res.Final = board
	return res
}

// settle alternates gravity and portal routing until no piece teleports.
// Every teleport consumes a portal pair, so the loop is bounded by the pair count.
func (s *stabilizer) settle(board *Board, cascade int) *Board {
	for {
		g := SettleGravity(board, s.opts.MaxGravityPasses)
		board = g.Board
		if g.Capped {
			s.res.Capped = true
			s.logger.Warn("gravity pass limit reached", "passes", g.Passes, "cascade", cascade)
		}
		if g.Moved() {
			s.emit(Step{Kind: StepGravity, Cascade: cascade, Board: board, FallPaths: g.FallPaths})
		}

		teleported := false
		for _, landing := range g.PortalLandings {
			tr, err := Teleport(board, landing.From, landing.Portal)
			if err != nil {
				if errors.Is(err, ErrNoPartner) {
					s.logger.Warn("skipping teleport", "portal", landing.PortalID, "error", err)
				} else {
					s.logger.Debug("skipping teleport", "portal", landing.PortalID, "error", err)
				}
				continue
			}
			board = tr.Board
			teleported = true
			s.emit(Step{Kind: StepTeleport, Cascade: cascade, Board: board, Teleport: &tr})
		}

		if !teleported {
			return board
		}
	}
}
