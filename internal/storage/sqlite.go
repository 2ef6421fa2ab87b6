// Package storage records finished rounds in SQLite through the pure-Go
// modernc.org/sqlite driver, so the binary needs no CGO.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/vovakirdan/shape-fusion/internal/core"
)

const defaultRecentLimit = 10

// migrations build the schema. The database's user_version counts the ones
// already applied; new steps go at the end.
var migrations = []string{
	`CREATE TABLE rounds (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		round_id   TEXT    NOT NULL UNIQUE,
		game_id    TEXT    NOT NULL,
		level_id   TEXT    NOT NULL,
		mode       TEXT    NOT NULL,
		moves      INTEGER NOT NULL,
		move_limit INTEGER NOT NULL DEFAULT 0,
		won        INTEGER NOT NULL DEFAULT 0,
		undo_used  INTEGER NOT NULL DEFAULT 0,
		played_ms  INTEGER NOT NULL
	);
	CREATE INDEX idx_rounds_level ON rounds(game_id, level_id, won, moves);`,
}

// Store is the round history. It is safe for concurrent use; SSH sessions
// share one Store.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// RoundEntry is one recorded round.
type RoundEntry struct {
	ID        int64
	RoundID   string
	GameID    string
	LevelID   string
	Mode      string
	Moves     int
	MoveLimit int
	Won       bool
	UndoUsed  bool
	CreatedAt time.Time
}

// LevelBest summarizes the recorded rounds of one level.
type LevelBest struct {
	LevelID   string
	Attempts  int
	Wins      int
	BestMoves int // Fewest moves in a won round, 0 if never won
}

// GameStats aggregates every round of one game.
type GameStats struct {
	GameID     string
	Rounds     int
	Wins       int
	AvgMoves   float64
	UndoRounds int
	LastPlayed time.Time // Zero without rounds
}

// Losses returns the number of rounds not won.
func (g GameStats) Losses() int {
	return g.Rounds - g.Wins
}

// Open opens the database at dbPath, creating it and its directories when
// missing, and brings the schema up to date. A leading ~ is the home directory.
func Open(dbPath string) (*Store, error) {
	if rest, ok := strings.CutPrefix(dbPath, "~"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: expand home: %w", err)
		}
		dbPath = filepath.Join(home, rest)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("storage: create directory: %w", err)
	}

	// Sessions write concurrently: wait on locks instead of failing, and let
	// readers run beside the writer.
	dsn := "file:" + dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", dbPath, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: connect %s: %w", dbPath, err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migrate: %w", err)
	}
	return s, nil
}

// migrate applies the migrations the database has not seen yet, in one transaction.
func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return err
	}
	if version >= len(migrations) {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, stmt := range migrations[version:] {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("step %d: %w", version+i+1, err)
		}
	}
	// PRAGMA does not take bound parameters
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", len(migrations))); err != nil {
		return err
	}
	return tx.Commit()
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveRound records a finished round and returns its generated round ID.
func (s *Store) SaveRound(gameID string, r core.RoundResult) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO rounds (round_id, game_id, level_id, mode, moves, move_limit, won, undo_used, played_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, gameID, r.LevelID, r.Mode, r.Moves, r.MoveLimit, r.Won, r.UndoUsed, s.now().UnixMilli(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: save round: %w", err)
	}
	return id, nil
}

// BestMoves returns the fewest moves used to win a level. ok is false when
// the level was never won.
func (s *Store) BestMoves(gameID, levelID string) (best int, ok bool, err error) {
	var v sql.NullInt64
	err = s.db.QueryRow(
		`SELECT MIN(moves) FROM rounds WHERE game_id = ? AND level_id = ? AND won = 1`,
		gameID, levelID,
	).Scan(&v)
	if err != nil {
		return 0, false, fmt.Errorf("storage: best moves: %w", err)
	}
	return int(v.Int64), v.Valid, nil
}

// LevelBests summarizes every played level of a game, ordered by level ID.
func (s *Store) LevelBests(gameID string) ([]LevelBest, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*), SUM(won), COALESCE(MIN(CASE WHEN won = 1 THEN moves END), 0)
		 FROM rounds WHERE game_id = ?
		 GROUP BY level_id ORDER BY level_id`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: level bests: %w", err)
	}
	return collect(rows, func(b *LevelBest) []any {
		return []any{&b.LevelID, &b.Attempts, &b.Wins, &b.BestMoves}
	})
}

// RecentRounds returns up to limit rounds of a game, newest first. A
// non-positive limit means defaultRecentLimit.
func (s *Store) RecentRounds(gameID string, limit int) ([]RoundEntry, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	rows, err := s.db.Query(
		`SELECT id, round_id, game_id, level_id, mode, moves, move_limit, won, undo_used, played_ms
		 FROM rounds WHERE game_id = ?
		 ORDER BY id DESC LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: recent rounds: %w", err)
	}

	type row struct {
		RoundEntry
		playedMs int64
	}
	scanned, err := collect(rows, func(r *row) []any {
		return []any{&r.ID, &r.RoundID, &r.GameID, &r.LevelID, &r.Mode,
			&r.Moves, &r.MoveLimit, &r.Won, &r.UndoUsed, &r.playedMs}
	})
	if err != nil {
		return nil, err
	}

	entries := make([]RoundEntry, len(scanned))
	for i, r := range scanned {
		entries[i] = r.RoundEntry
		entries[i].CreatedAt = time.UnixMilli(r.playedMs)
	}
	return entries, nil
}

// ClearRounds deletes every round of a game.
func (s *Store) ClearRounds(gameID string) error {
	if _, err := s.db.Exec(`DELETE FROM rounds WHERE game_id = ?`, gameID); err != nil {
		return fmt.Errorf("storage: clear rounds: %w", err)
	}
	return nil
}

// GetGameStats aggregates every round of a game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	st := &GameStats{GameID: gameID}
	var last sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(AVG(moves), 0), COALESCE(SUM(undo_used), 0), MAX(played_ms)
		 FROM rounds WHERE game_id = ?`,
		gameID,
	).Scan(&st.Rounds, &st.Wins, &st.AvgMoves, &st.UndoRounds, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: game stats: %w", err)
	}
	if last.Valid {
		st.LastPlayed = time.UnixMilli(last.Int64)
	}
	return st, nil
}

// collect scans every row into a T, using fields to point Scan at T's fields.
// It closes rows.
func collect[T any](rows *sql.Rows, fields func(*T) []any) ([]T, error) {
	defer rows.Close()

	var out []T
	for rows.Next() {
		var v T
		if err := rows.Scan(fields(&v)...); err != nil {
			return nil, fmt.Errorf("storage: scan: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: rows: %w", err)
	}
	return out, nil
}
