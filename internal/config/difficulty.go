package config

// minRandomMoveLimit keeps ramped random boards solvable in practice.
const minRandomMoveLimit = 5

// Ramp tightens random boards as the player clears them. Campaign levels keep
// their authored limits and never go through it.
type Ramp struct {
	cfg DifficultyConfig
}

// RandomBoard holds the ramped parameters for the next random board.
type RandomBoard struct {
	MoveLimit   int // Non-positive means unlimited
	MinBlockers int
	MaxBlockers int
}

// NewRamp creates a ramp from the difficulty section.
func NewRamp(cfg DifficultyConfig) Ramp {
	cfg.InitialLevel = min(max(cfg.InitialLevel, 0), 1)
	return Ramp{cfg: cfg}
}

// Active reports whether clearing boards changes anything.
func (r Ramp) Active() bool {
	return r.cfg.Enabled && r.cfg.Progression.Type == "wins"
}

// Level returns the difficulty in [0, 1] after wins boards cleared. It moves
// linearly from the initial level to 1 over Progression.MaxAt wins.
func (r Ramp) Level(wins int) float64 {
	if !r.Active() {
		return r.cfg.InitialLevel
	}
	maxAt := max(r.cfg.Progression.MaxAt, 1)
	progress := min(float64(max(wins, 0))/float64(maxAt), 1)
	return r.cfg.InitialLevel + progress*(1-r.cfg.InitialLevel)
}

// Next returns the parameters of the board that follows wins cleared boards.
// An unlimited move budget stays unlimited.
func (r Ramp) Next(rules RulesConfig, gen GeneratorConfig, wins int) RandomBoard {
	level := r.Level(wins)
	extra := int(level * float64(r.cfg.Scaling.ExtraBlockers))
	b := RandomBoard{
		MoveLimit:   rules.ProceduralMoveLimit,
		MinBlockers: gen.MinBlockers + extra,
		MaxBlockers: gen.MaxBlockers + extra,
	}
	if b.MoveLimit > 0 {
		cut := int(level * float64(r.cfg.Scaling.MoveLimitReduction))
		b.MoveLimit = max(b.MoveLimit-cut, minRandomMoveLimit)
	}
	return b
}
