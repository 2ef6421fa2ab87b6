package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fusionConfigFile = "fusion.yaml"

// LoadFusion loads the Shape Fusion configuration.
//
// An explicit path must exist and parse. Without one the first file found among
// ~/.fusion/configs/fusion.yaml and ./configs/fusion.yaml is used, and the
// embedded defaults when neither exists. Files are decoded over the defaults,
// so a partial file only overrides the keys it names.
func LoadFusion(customPath string) (FusionConfig, error) {
	if customPath != "" {
		return decodeFile(customPath)
	}

	for _, path := range searchPaths() {
		cfg, err := decodeFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return cfg, err
	}

	return decodeDefaults(defaultFusionYAML)
}

// decodeDefaults decodes the embedded defaults over the hardcoded ones.
func decodeDefaults(data []byte) (FusionConfig, error) {
	cfg := DefaultFusionConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultFusionConfig(), fmt.Errorf("parse embedded defaults: %w", err)
	}
	return cfg, nil
}

// searchPaths lists the implicit config locations, most specific first.
func searchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".fusion", "configs", fusionConfigFile))
	}
	return append(paths, filepath.Join("configs", fusionConfigFile))
}

func decodeFile(path string) (FusionConfig, error) {
	cfg := DefaultFusionConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultFusionConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// presetTuning is what a difficulty preset changes. Zero limits keep the
// configured values.
type presetTuning struct {
	initialLevel float64
	moveLimit    int
	minBlockers  int
	maxBlockers  int
}

var presetTunings = map[DifficultyPreset]presetTuning{
	DifficultyEasy:   {initialLevel: 0, moveLimit: 35, minBlockers: 4, maxBlockers: 12},
	DifficultyNormal: {initialLevel: 0.3},
	DifficultyHard:   {initialLevel: 0.7, moveLimit: 18, minBlockers: 10, maxBlockers: 22},
}

// ApplyFusionPreset tunes random boards for a difficulty preset. The fixed
// preset turns progression off and leaves the rest alone.
func ApplyFusionPreset(cfg *FusionConfig, preset DifficultyPreset) {
	t, ok := presetTunings[preset]
	cfg.Difficulty.Enabled = ok
	if !ok {
		return
	}
	cfg.Difficulty.InitialLevel = t.initialLevel
	if t.moveLimit > 0 {
		cfg.Rules.ProceduralMoveLimit = t.moveLimit
		cfg.Generator.MinBlockers = t.minBlockers
		cfg.Generator.MaxBlockers = t.maxBlockers
	}
}

// Validate reports the first setting that cannot produce a playable board.
func (c FusionConfig) Validate() error {
	g := c.Generator
	if g.Rows < 2 || g.Cols < 2 {
		return fmt.Errorf("generator: board must be at least 2x2, got %dx%d", g.Rows, g.Cols)
	}
	if g.MinBlockers < 0 || g.MaxBlockers < g.MinBlockers {
		return fmt.Errorf("generator: invalid blocker range %d-%d", g.MinBlockers, g.MaxBlockers)
	}
	if g.MinPieces < 0 || g.MaxPieces < g.MinPieces {
		return fmt.Errorf("generator: invalid piece range %d-%d", g.MinPieces, g.MaxPieces)
	}
	if g.SpawnRows < 0 || g.SpawnRows > g.Rows {
		return fmt.Errorf("generator: spawn_rows must be within 0-%d, got %d", g.Rows, g.SpawnRows)
	}
	if c.Rules.MaxGravityPasses < 0 {
		return fmt.Errorf("rules: max_gravity_passes must not be negative, got %d", c.Rules.MaxGravityPasses)
	}
	return nil
}
