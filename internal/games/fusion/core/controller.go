package core

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Mode selects where boards come from.
type Mode int

const (
	ModeCustom Mode = iota
	ModeProcedural
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeCustom:
		return "custom"
	case ModeProcedural:
		return "random"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode name to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "custom", "levels":
		return ModeCustom, true
	case "random", "procedural":
		return ModeProcedural, true
	default:
		return ModeCustom, false
	}
}

// LevelDef is a loaded level. Board is already settled.
type LevelDef struct {
	ID        string
	Name      string
	MoveLimit int
	Board     *Board
}

// ControllerOptions configures a Controller.
type ControllerOptions struct {
	Gen                 GenParams
	ProceduralMoveLimit int
	Seed                uint64 // First procedural seed; later seeds derive from it
	Session             SessionOptions
	Logger              *log.Logger
}

// Controller owns the round lifecycle: which board is in play, resets, and progression.
type Controller struct {
	levels  []LevelDef
	mode    Mode
	index   int
	seed    uint64
	seeds   *SimpleRNG
	session *Session
	current LevelDef

	opts   ControllerOptions
	logger *log.Logger
}

// NewController creates a controller and starts the first round. With no levels it
// starts in procedural mode.
func NewController(levels []LevelDef, opts ControllerOptions) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if opts.Session.Logger == nil {
		opts.Session.Logger = logger
	}
	if opts.Session.MaxGravityPasses <= 0 {
		opts.Session.MaxGravityPasses = opts.Gen.MaxGravityPasses
	}

	ctrl := &Controller{
		levels: levels,
		seeds:  NewRNG(opts.Seed),
		opts:   opts,
		logger: logger,
	}
	if len(levels) == 0 {
		ctrl.mode = ModeProcedural
	}
	ctrl.startCurrent(true)
	return ctrl
}

// Session returns the current round.
func (c *Controller) Session() *Session { return c.session }

// Mode returns the board source.
func (c *Controller) Mode() Mode { return c.mode }

// Index returns the current level index (custom mode) or round count (procedural).
func (c *Controller) Index() int { return c.index }

// Seed returns the seed of the current procedural board.
func (c *Controller) Seed() uint64 { return c.seed }

// Current returns the level in play. For procedural rounds it is synthesized.
func (c *Controller) Current() LevelDef { return c.current }

// Levels returns the level list.
func (c *Controller) Levels() []LevelDef { return c.levels }

// NewRound starts a round on a level definition.
func (c *Controller) NewRound(def LevelDef) *Session {
	c.current = def
	c.session = NewSession(def.Board, def.MoveLimit, c.opts.Session)
	c.logger.Debug("round started", "level", def.ID, "moves", def.MoveLimit)
	return c.session
}

// NewProceduralRound generates a board from params and seed and starts a round on it.
func (c *Controller) NewProceduralRound(params GenParams, seed uint64) *Session {
	params.Seed = seed
	c.seed = seed
	board := GenerateBoard(params, NewRNG(seed))
	return c.NewRound(LevelDef{
		ID:        fmt.Sprintf("random-%d", seed),
		Name:      "Random Board",
		MoveLimit: c.opts.ProceduralMoveLimit,
		Board:     board,
	})
}

// ResetRound restarts the current level. Procedural rounds keep their seed.
func (c *Controller) ResetRound() *Session {
	c.startCurrent(false)
	return c.session
}

// AdvanceLevel moves to the next level, wrapping at the end of the list.
// In procedural mode it generates a new board.
func (c *Controller) AdvanceLevel() *Session {
	if c.mode == ModeCustom && len(c.levels) > 0 {
		c.index = (c.index + 1) % len(c.levels)
	} else {
		c.index++
	}
	c.startCurrent(true)
	return c.session
}

// ToggleMode switches between custom and procedural boards, starting from the first.
// Without levels the controller stays procedural.
func (c *Controller) ToggleMode() *Session {
	if c.mode == ModeCustom || len(c.levels) == 0 {
		c.mode = ModeProcedural
	} else {
		c.mode = ModeCustom
	}
	c.index = 0
	c.startCurrent(true)
	return c.session
}

// SetMode switches to mode and starts its first board.
func (c *Controller) SetMode(m Mode) *Session {
	if m == ModeCustom && len(c.levels) == 0 {
		m = ModeProcedural
	}
	c.mode = m
	c.index = 0
	c.startCurrent(true)
	return c.session
}

// SelectLevel jumps to a custom level by index.
func (c *Controller) SelectLevel(i int) (*Session, error) {
	if i < 0 || i >= len(c.levels) {
		return nil, fmt.Errorf("level index %d out of range [0,%d)", i, len(c.levels))
	}
	c.mode = ModeCustom
	c.index = i
	c.startCurrent(true)
	return c.session, nil
}

// SetProceduralParams replaces the generator settings and move limit used by later
// procedural rounds. The round in play is not affected.
func (c *Controller) SetProceduralParams(params GenParams, moveLimit int) {
	c.opts.Gen = params
	c.opts.ProceduralMoveLimit = moveLimit
}

// ProceduralParams returns the generator settings for the next procedural round.
func (c *Controller) ProceduralParams() (GenParams, int) {
	return c.opts.Gen, c.opts.ProceduralMoveLimit
}

// startCurrent starts the round for the current mode and index.
// fresh draws a new procedural seed.
func (c *Controller) startCurrent(fresh bool) {
	if c.mode == ModeCustom && len(c.levels) > 0 {
		c.NewRound(c.levels[c.index])
		return
	}
	seed := c.seed
	if fresh || seed == 0 {
		seed = c.seeds.Next()
	}
	c.NewProceduralRound(c.opts.Gen, seed)
}
