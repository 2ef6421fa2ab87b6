// Package config provides YAML-based game configuration loading and
// difficulty management for Shape Fusion.
package config

// FusionConfig contains all configuration for the Shape Fusion game.
type FusionConfig struct {
	Rules      RulesConfig      `yaml:"rules"`
	Generator  GeneratorConfig  `yaml:"generator"`
	Animation  AnimationConfig  `yaml:"animation"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RulesConfig defines board rule parameters.
type RulesConfig struct {
	MaxGravityPasses    int `yaml:"max_gravity_passes"`
	ProceduralMoveLimit int `yaml:"procedural_move_limit"`
}

// GeneratorConfig defines random board generation.
type GeneratorConfig struct {
	Rows        int `yaml:"rows"`
	Cols        int `yaml:"cols"`
	SpawnRows   int `yaml:"spawn_rows"` // Pieces spawn only in the top rows
	MinBlockers int `yaml:"min_blockers"`
	MaxBlockers int `yaml:"max_blockers"`
	MinPieces   int `yaml:"min_pieces"`
	MaxPieces   int `yaml:"max_pieces"`
}

// AnimationConfig holds playback timing in milliseconds.
// Only the presentation reads these; the board rules never wait.
type AnimationConfig struct {
	HorizontalDelay int    `yaml:"horizontal_delay"` // Slide before gravity starts
	GravityPerRow   int    `yaml:"gravity_per_row"`  // Fall time per row
	GravityBuffer   int    `yaml:"gravity_buffer"`   // Extra time after the longest fall
	MatchDuration   int    `yaml:"match_duration"`   // Matched pieces flash
	CascadeDelay    int    `yaml:"cascade_delay"`    // Pause between cascade rounds
	SettleDelay     int    `yaml:"settle_delay"`     // Pause before matching
	TeleportPhase   int    `yaml:"teleport_phase"`   // Each of enter, connect and exit
	Easing          string `yaml:"easing"`           // Fall easing curve name
}

// FallDuration returns the time a fall of maxDistance rows takes.
func (a AnimationConfig) FallDuration(maxDistance int) int {
	if maxDistance <= 0 {
		return 0
	}
	return maxDistance*a.GravityPerRow + a.GravityBuffer
}

// DifficultyConfig defines the difficulty progression for random boards.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a session.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "wins" or "none"
	MaxAt int    `yaml:"max_at"` // Boards cleared at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	MoveLimitReduction int `yaml:"move_limit_reduction"` // Moves taken away at max difficulty
	ExtraBlockers      int `yaml:"extra_blockers"`       // Blockers added at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), true
	default:
		return DifficultyNormal, false
	}
}
