// Package levels provides level loading functionality for Shape Fusion.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/shape-fusion/internal/games/fusion/core"
	"github.com/vovakirdan/shape-fusion/internal/games/fusion/levels/formats"
)

//go:embed campaign/*.yaml
var campaignFS embed.FS

// Level represents a complete level definition.
type Level struct {
	ID        string
	Name      string
	MoveLimit int
	Layout    []string
	Board     *core.Board // Settled starting board
	Metadata  map[string]string
	FilePath  string
}

// Def converts the level into the definition a round is started from.
func (l *Level) Def() core.LevelDef {
	return core.LevelDef{
		ID:        l.ID,
		Name:      l.Name,
		MoveLimit: l.MoveLimit,
		Board:     l.Board,
	}
}

// Defs converts a level list.
func Defs(levels []Level) []core.LevelDef {
	defs := make([]core.LevelDef, len(levels))
	for i := range levels {
		defs[i] = levels[i].Def()
	}
	return defs
}

// FileError ties a load failure to its file.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// Loader handles loading levels from a file system.
type Loader struct {
	FS               fs.FS
	MaxGravityPasses int
	Logger           *log.Logger
}

// NewLoader creates a loader over fsys.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{FS: fsys, Logger: log.Default()}
}

// NewDirLoader creates a loader over a directory on disk.
func NewDirLoader(root string) *Loader {
	return NewLoader(os.DirFS(root))
}

// Campaign returns a loader over the built-in levels.
func Campaign() *Loader {
	sub, err := fs.Sub(campaignFS, "campaign")
	if err != nil {
		// The embed pattern guarantees the directory exists
		panic(err)
	}
	return NewLoader(sub)
}

// LoadAll recursively scans and loads all level files. Invalid files are logged and
// skipped. Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	levels, problems, err := l.scan()
	if err != nil {
		return nil, err
	}
	for _, p := range problems {
		l.logger().Warn("skipping level", "file", p.Path, "error", p.Err)
	}
	return levels, nil
}

// Validate loads every level file and returns one FileError per broken file,
// including duplicate ids.
func (l *Loader) Validate() ([]Level, []FileError, error) {
	levels, problems, err := l.scan()
	if err != nil {
		return nil, nil, err
	}

	seen := make(map[string]string)
	for _, lvl := range levels {
		if prev, ok := seen[lvl.ID]; ok {
			problems = append(problems, FileError{
				Path: lvl.FilePath,
				Err:  fmt.Errorf("%w %q, also in %s", ErrDuplicateID, lvl.ID, prev),
			})
			continue
		}
		seen[lvl.ID] = lvl.FilePath
	}
	return levels, problems, nil
}

func (l *Loader) scan() ([]Level, []FileError, error) {
	var levels []Level
	var problems []FileError

	err := fs.WalkDir(l.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		if _, ok := formats.ForPath(p); !ok {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			problems = append(problems, FileError{Path: p, Err: err})
			return nil
		}

		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("levels: walking directory: %w", err)
	}

	// Sort by ID for determinism
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, problems, nil
}

// LoadFile loads a single level file. The board gets fresh instance ids and is
// settled by gravity; pieces that land on portals while loading stay where they are.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	parse, ok := formats.ForPath(p)
	if !ok {
		return Level{}, fmt.Errorf("%s: unsupported level format (want one of %s)", p, strings.Join(formats.Extensions(), ", "))
	}
	parsed, err := parse(data)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}

	board, err := core.ParseLayout(parsed.Layout)
	if err != nil {
		return Level{}, fmt.Errorf("level %s layout: %w", parsed.ID, err)
	}
	if err := core.ValidateLevel(board, parsed.MoveLimit); err != nil {
		return Level{}, fmt.Errorf("level %s: %w", parsed.ID, err)
	}

	settled := core.SettleGravity(board, l.MaxGravityPasses)

	return Level{
		ID:        parsed.ID,
		Name:      parsed.Name,
		MoveLimit: parsed.MoveLimit,
		Layout:    parsed.Layout,
		Board:     settled.Board,
		Metadata:  parsed.Metadata,
		FilePath:  p,
	}, nil
}

// ErrLevelNotFound is returned by LoadByID for unknown ids.
var ErrLevelNotFound = errors.New("level not found")

// ErrDuplicateID marks a Validate problem where two files share a level id.
var ErrDuplicateID = errors.New("duplicate level id")

// IsDuplicateID reports whether err is a duplicate id problem.
func IsDuplicateID(err error) bool {
	return errors.Is(err, ErrDuplicateID)
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// IndexOf returns the position of id in levels, or -1.
func IndexOf(levels []Level, id string) int {
	for i, lvl := range levels {
		if lvl.ID == id {
			return i
		}
	}
	return -1
}

func (l *Loader) logger() *log.Logger {
	if l.Logger == nil {
		return log.Default()
	}
	return l.Logger
}
