package config

import (
	_ "embed"
)

//go:embed defaults/fusion.yaml
var defaultFusionYAML []byte

// DefaultFusionConfig returns the default Shape Fusion configuration.
func DefaultFusionConfig() FusionConfig {
	return FusionConfig{
		Rules: RulesConfig{
			MaxGravityPasses:    4,
			ProceduralMoveLimit: 25,
		},
		Generator: GeneratorConfig{
			Rows:        10,
			Cols:        14,
			SpawnRows:   5,
			MinBlockers: 6,
			MaxBlockers: 18,
			MinPieces:   16,
			MaxPieces:   20,
		},
		Animation: AnimationConfig{
			HorizontalDelay: 150,
			GravityPerRow:   150,
			GravityBuffer:   200,
			MatchDuration:   600,
			CascadeDelay:    200,
			SettleDelay:     100,
			TeleportPhase:   120,
			Easing:          "out_quad",
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.3,
			Progression: ProgressionConfig{
				Type:  "wins",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				MoveLimitReduction: 10,
				ExtraBlockers:      6,
			},
		},
	}
}
