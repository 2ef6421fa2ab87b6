// Package fusion provides the Shape Fusion puzzle game.
// It adapts the board simulation in fusion/core to the registry.Game contract:
// input actions become session commands and resolved moves are played back
// tick by tick before the board is committed.
package fusion

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/shape-fusion/internal/config"
	platformcore "github.com/vovakirdan/shape-fusion/internal/core"
	"github.com/vovakirdan/shape-fusion/internal/games/fusion/core"
	"github.com/vovakirdan/shape-fusion/internal/games/fusion/levels"
	"github.com/vovakirdan/shape-fusion/internal/registry"
)

// Registry ids.
const (
	GameID       = "fusion"
	RandomGameID = "fusion_random"
)

// Options configures every game instance created afterwards.
type Options struct {
	Config config.FusionConfig
	Levels []levels.Level // nil loads the embedded campaign
	Logger *log.Logger
}

// Package-level variables for configuration
var (
	setupMu sync.Mutex
	setup   = Options{Config: config.DefaultFusionConfig()}
)

// Configure sets the options used by games created after the call.
func Configure(opts Options) {
	setupMu.Lock()
	defer setupMu.Unlock()
	setup = opts
}

func currentSetup() Options {
	setupMu.Lock()
	defer setupMu.Unlock()
	return setup
}

func init() {
	registry.Register(registry.GameInfo{ID: GameID, Title: "Shape Fusion", Order: 0}, func() registry.Game {
		return New(core.ModeCustom)
	})
	registry.Register(registry.GameInfo{ID: RandomGameID, Title: "Shape Fusion (Random)", Order: 1}, func() registry.Game {
		return New(core.ModeProcedural)
	})
}

// Game implements the Shape Fusion puzzle.
type Game struct {
	mode       core.Mode // Board source the game starts in
	startLevel int       // 1-indexed level for the next Reset, 0 for the first

	cfg     config.FusionConfig
	runtime platformcore.RuntimeConfig
	logger  *log.Logger
	levels  []levels.Level
	ctrl    *core.Controller
	ramp    config.Ramp
	baseGen core.GenParams
	wins    int // Random boards cleared this session

	cursor   core.Coord
	playback *playback
	easing   ease.TweenFunc
	message  string
	reported bool // Finished was returned for the current round

	screenW int
	screenH int
}

// New creates a new Shape Fusion game starting in mode.
func New(mode core.Mode) *Game {
	return &Game{mode: mode}
}

// StartAt makes the next Reset open the given level (1-indexed). It applies
// once; later Resets start from the first level.
func (g *Game) StartAt(level int) {
	g.startLevel = level
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == core.ModeProcedural {
		return RandomGameID
	}
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == core.ModeProcedural {
		return "Shape Fusion (Random)"
	}
	return "Shape Fusion"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	opts := currentSetup()
	start := g.startLevel
	g.startLevel = 0

	g.runtime = cfg
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.cfg = opts.Config
	g.logger = opts.Logger
	if g.logger == nil {
		g.logger = log.Default()
	}
	g.easing = easingByName(g.cfg.Animation.Easing)
	g.playback = nil
	g.message = ""
	g.reported = false
	g.wins = 0

	loadMsg := ""
	g.levels = opts.Levels
	if g.levels == nil {
		loader := levels.Campaign()
		loader.MaxGravityPasses = g.cfg.Rules.MaxGravityPasses
		loader.Logger = g.logger
		lvls, err := loader.LoadAll()
		if err != nil {
			g.logger.Error("cannot load campaign", "error", err)
			loadMsg = "Campaign unavailable, playing random boards"
		}
		g.levels = lvls
	}

	g.ramp = config.NewRamp(g.cfg.Difficulty)
	g.baseGen = GenParams(g.cfg)

	gen, limit := g.proceduralParams()
	g.ctrl = core.NewController(levels.Defs(g.levels), core.ControllerOptions{
		Gen:                 gen,
		ProceduralMoveLimit: limit,
		Seed:                uint64(cfg.Seed),
		Session: core.SessionOptions{
			MaxGravityPasses: g.cfg.Rules.MaxGravityPasses,
		},
		Logger: g.logger,
	})

	switch {
	case g.mode == core.ModeProcedural:
		g.ctrl.SetMode(core.ModeProcedural)
	case start > 0:
		if _, err := g.ctrl.SelectLevel(start - 1); err != nil {
			g.logger.Warn("start level out of range", "level", start, "error", err)
		}
	}
	g.resetCursor()
	g.message = loadMsg
}

// Resize adapts the layout to a new screen size without restarting the round.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
}

// GenParams converts the generator and rules config to generator parameters.
func GenParams(cfg config.FusionConfig) core.GenParams {
	p := core.DefaultGenParams()
	gc := cfg.Generator
	if gc.Rows > 0 {
		p.Rows = gc.Rows
	}
	if gc.Cols > 0 {
		p.Cols = gc.Cols
	}
	if gc.SpawnRows > 0 {
		p.SpawnRows = gc.SpawnRows
	}
	p.MinBlockers, p.MaxBlockers = gc.MinBlockers, gc.MaxBlockers
	p.MinPieces, p.MaxPieces = gc.MinPieces, gc.MaxPieces
	if cfg.Rules.MaxGravityPasses > 0 {
		p.MaxGravityPasses = cfg.Rules.MaxGravityPasses
	}
	return p
}

// proceduralParams applies the difficulty curve for the boards cleared so far.
func (g *Game) proceduralParams() (core.GenParams, int) {
	next := g.ramp.Next(g.cfg.Rules, g.cfg.Generator, g.wins)
	gen := g.baseGen
	gen.MinBlockers, gen.MaxBlockers = next.MinBlockers, next.MaxBlockers
	return gen, next.MoveLimit
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if in.Has(platformcore.ActionQuit) {
		return platformcore.StepResult{State: g.State(), Quit: true}
	}
	if g.ctrl == nil {
		return platformcore.StepResult{State: g.State()}
	}

	// Input is ignored while a move is being played back
	if g.playback != nil {
		if g.playback.advance() {
			return g.finishPlayback()
		}
		return platformcore.StepResult{State: g.State()}
	}

	session := g.ctrl.Session()
	switch {
	case in.Has(platformcore.ActionBack):
		if _, ok := session.Selected(); ok {
			session.ClearSelection()
		} else {
			return platformcore.StepResult{State: g.State(), Quit: true}
		}
	case in.Has(platformcore.ActionRestart):
		g.ctrl.ResetRound()
		g.startRound("Board reset")
	case in.Has(platformcore.ActionNextLevel):
		g.advance()
	case in.Has(platformcore.ActionToggleMode):
		g.ctrl.SetProceduralParams(g.proceduralParams())
		g.ctrl.ToggleMode()
		g.startRound("Mode: " + g.ctrl.Mode().String())
	case session.Outcome() != core.InProgress:
		if in.Has(platformcore.ActionSelect) {
			if session.Outcome() == core.Won {
				g.advance()
			} else {
				g.ctrl.ResetRound()
				g.startRound("Board reset")
			}
		}
	case in.Has(platformcore.ActionUndo):
		if session.Undo() {
			g.message = "Move undone"
		} else {
			g.message = "Undo not available"
		}
	default:
		return g.handleBoardInput(in)
	}

	return platformcore.StepResult{State: g.State()}
}

// handleBoardInput handles cursor movement, selection and moves.
func (g *Game) handleBoardInput(in platformcore.InputFrame) platformcore.StepResult {
	session := g.ctrl.Session()
	selected, hasSelected := session.Selected()

	if hasSelected {
		switch {
		case in.Has(platformcore.ActionLeft):
			return g.move(selected, selected.Add(0, -1))
		case in.Has(platformcore.ActionRight):
			return g.move(selected, selected.Add(0, 1))
		}
	}

	b := session.Board()
	switch {
	case in.Has(platformcore.ActionUp):
		g.moveCursor(b, -1, 0)
		session.ClearSelection()
	case in.Has(platformcore.ActionDown):
		g.moveCursor(b, 1, 0)
		session.ClearSelection()
	case in.Has(platformcore.ActionLeft):
		g.moveCursor(b, 0, -1)
	case in.Has(platformcore.ActionRight):
		g.moveCursor(b, 0, 1)
	case in.Has(platformcore.ActionSelect):
		if hasSelected && selected == g.cursor {
			session.ClearSelection()
		} else if !session.SelectCell(g.cursor) {
			session.ClearSelection()
		}
	}
	return platformcore.StepResult{State: g.State()}
}

// move starts a move and its playback. Invalid moves leave the round untouched.
func (g *Game) move(from, to core.Coord) platformcore.StepResult {
	session := g.ctrl.Session()
	res, err := session.StartMove(from, to)
	if err != nil {
		g.logger.Debug("move rejected", "from", from, "to", to, "error", err)
		g.message = "Can't move there"
		return platformcore.StepResult{State: g.State()}
	}

	g.cursor = to
	if tr := res.Teleports(); len(tr) > 0 && tr[0].Entry == to {
		g.cursor = tr[0].Exit
	}
	g.message = describeResolution(res)
	g.playback = newPlayback(res, g.cfg.Animation, g.runtime, g.easing)
	if g.playback.done() {
		return g.finishPlayback()
	}
	return platformcore.StepResult{State: g.State()}
}

// finishPlayback commits the move and reports the round when it ends.
func (g *Game) finishPlayback() platformcore.StepResult {
	g.playback = nil
	session := g.ctrl.Session()
	outcome := session.FinishMove()
	g.clampCursor(session.Board())

	result := platformcore.StepResult{State: g.State()}
	if outcome == core.InProgress || g.reported {
		return result
	}

	g.reported = true
	if outcome == core.Won {
		g.message = "Board cleared!"
		if g.ctrl.Mode() == core.ModeProcedural {
			g.wins++
		}
	} else {
		g.message = "Out of moves"
	}
	cur := g.ctrl.Current()
	gameID := GameID
	if g.ctrl.Mode() == core.ModeProcedural {
		gameID = RandomGameID
	}
	result.Finished = &platformcore.RoundResult{
		GameID:    gameID,
		LevelID:   cur.ID,
		Mode:      g.ctrl.Mode().String(),
		Moves:     session.MoveCount(),
		MoveLimit: session.MoveLimit(),
		Won:       outcome == core.Won,
		UndoUsed:  session.UndoUsed(),
	}
	g.logger.Info("round finished",
		"level", cur.ID,
		"outcome", outcome,
		"moves", session.MoveCount(),
	)
	return result
}

// advance moves to the next level or a fresh random board.
func (g *Game) advance() {
	g.ctrl.SetProceduralParams(g.proceduralParams())
	g.ctrl.AdvanceLevel()
	g.startRound("")
}

// startRound resets per-round presentation state.
func (g *Game) startRound(msg string) {
	g.playback = nil
	g.reported = false
	g.message = msg
	g.resetCursor()
}

// resetCursor puts the cursor on the first piece of the board.
func (g *Game) resetCursor() {
	b := g.ctrl.Session().Board()
	g.cursor = core.C(0, 0)
	if pieces := b.Pieces(); len(pieces) > 0 {
		g.cursor = pieces[0]
	}
}

// moveCursor moves the cursor by one cell, staying inside the board.
func (g *Game) moveCursor(b *core.Board, dr, dc int) {
	next := g.cursor.Add(dr, dc)
	if b.InBounds(next) {
		g.cursor = next
	}
}

func (g *Game) clampCursor(b *core.Board) {
	g.cursor.Row = platformcore.Clamp(g.cursor.Row, 0, max(0, b.Rows-1))
	g.cursor.Col = platformcore.Clamp(g.cursor.Col, 0, max(0, b.Cols-1))
}

// Cursor returns the cursor position.
func (g *Game) Cursor() core.Coord {
	return g.cursor
}

// Controller exposes the round controller.
func (g *Game) Controller() *core.Controller {
	return g.ctrl
}

// Animating reports whether a move is being played back.
func (g *Game) Animating() bool {
	return g.playback != nil
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.ctrl == nil {
		return platformcore.GameState{GameOver: true}
	}
	s := g.ctrl.Session()
	return platformcore.GameState{
		LevelID:   g.ctrl.Current().ID,
		Mode:      g.ctrl.Mode().String(),
		Moves:     s.MoveCount(),
		MoveLimit: s.MoveLimit(),
		Remaining: s.Remaining(),
		Animating: g.playback != nil,
		GameOver:  s.Outcome() != core.InProgress,
		Won:       s.Outcome() == core.Won,
	}
}

// describeResolution summarizes a move for the status line.
func describeResolution(res *core.Resolution) string {
	switch {
	case res.Cascades > 1:
		return fmt.Sprintf("Cascade x%d! %d pieces fused", res.Cascades, res.Removed)
	case res.Removed > 0:
		return fmt.Sprintf("%d pieces fused", res.Removed)
	case len(res.Teleports()) > 0:
		return "Teleported"
	default:
		return ""
	}
}

// Levels returns the configured level list, or the embedded campaign when none is set.
func Levels() ([]levels.Level, error) {
	setupMu.Lock()
	lvls := setup.Levels
	setupMu.Unlock()
	if lvls != nil {
		return lvls, nil
	}
	return levels.Campaign().LoadAll()
}
