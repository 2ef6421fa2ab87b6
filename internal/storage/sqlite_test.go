package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/shape-fusion/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveRoundAndBestMoves(t *testing.T) {
	store := openTestStore(t)

	rounds := []core.RoundResult{
		{LevelID: "01", Mode: "custom", Moves: 4, MoveLimit: 4, Won: true},
		{LevelID: "01", Mode: "custom", Moves: 2, MoveLimit: 4, Won: true, UndoUsed: true},
		{LevelID: "01", Mode: "custom", Moves: 1, MoveLimit: 4, Won: false},
		{LevelID: "02", Mode: "custom", Moves: 8, MoveLimit: 8, Won: false},
	}
	seen := make(map[string]bool)
	for _, r := range rounds {
		id, err := store.SaveRound("fusion", r)
		if err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
		if id == "" || seen[id] {
			t.Errorf("SaveRound() returned empty or duplicate id %q", id)
		}
		seen[id] = true
	}

	best, ok, err := store.BestMoves("fusion", "01")
	if err != nil {
		t.Fatalf("BestMoves() failed: %v", err)
	}
	if !ok || best != 2 {
		t.Errorf("BestMoves(01) = %d, %v; want 2, true", best, ok)
	}

	// Lost rounds never count as a best
	_, ok, err = store.BestMoves("fusion", "02")
	if err != nil {
		t.Fatalf("BestMoves() failed: %v", err)
	}
	if ok {
		t.Error("BestMoves(02) should report no win")
	}
}

func TestStoreLevelBests(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []core.RoundResult{
		{LevelID: "02", Moves: 6, Won: true},
		{LevelID: "01", Moves: 3, Won: true},
		{LevelID: "01", Moves: 4, Won: false},
		{LevelID: "03", Moves: 9, Won: false},
	} {
		if _, err := store.SaveRound("fusion", r); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	bests, err := store.LevelBests("fusion")
	if err != nil {
		t.Fatalf("LevelBests() failed: %v", err)
	}
	if len(bests) != 3 {
		t.Fatalf("Expected 3 levels, got %d", len(bests))
	}

	want := []LevelBest{
		{LevelID: "01", Attempts: 2, Wins: 1, BestMoves: 3},
		{LevelID: "02", Attempts: 1, Wins: 1, BestMoves: 6},
		{LevelID: "03", Attempts: 1, Wins: 0, BestMoves: 0},
	}
	for i, w := range want {
		if bests[i] != w {
			t.Errorf("bests[%d] = %+v, want %+v", i, bests[i], w)
		}
	}
}

func TestStoreRecentRounds(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 15; i++ {
		r := core.RoundResult{LevelID: "random-1", Mode: "random", Moves: i, Won: i%2 == 0}
		if _, err := store.SaveRound("fusion_random", r); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	recent, err := store.RecentRounds("fusion_random", 5)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(recent) != 5 {
		t.Fatalf("Expected 5 rounds, got %d", len(recent))
	}
	if recent[0].Moves != 15 {
		t.Errorf("Most recent round moves = %d, want 15", recent[0].Moves)
	}
	if recent[0].Won {
		t.Error("Round with 15 moves should be a loss")
	}
	if !recent[1].Won {
		t.Error("Round with 14 moves should be a win")
	}

	// Default limit
	recent, err = store.RecentRounds("fusion_random", 0)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(recent) != 10 {
		t.Errorf("Expected default limit 10, got %d", len(recent))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("fusion")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.Rounds != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Empty stats = %+v", stats)
	}

	for _, r := range []core.RoundResult{
		{LevelID: "01", Moves: 2, Won: true, UndoUsed: true},
		{LevelID: "01", Moves: 4, Won: false},
	} {
		if _, err := store.SaveRound("fusion", r); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	stats, err = store.GetGameStats("fusion")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.Rounds != 2 || stats.Wins != 1 || stats.Losses() != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgMoves != 3 {
		t.Errorf("AvgMoves = %v, want 3", stats.AvgMoves)
	}
	if stats.UndoRounds != 1 {
		t.Errorf("UndoRounds = %d, want 1", stats.UndoRounds)
	}
}

func TestStoreClearRounds(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRound("fusion", core.RoundResult{LevelID: "01", Won: true, Moves: 1}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveRound("fusion_random", core.RoundResult{LevelID: "random-7", Won: true, Moves: 9}); err != nil {
		t.Fatal(err)
	}

	if err := store.ClearRounds("fusion"); err != nil {
		t.Fatalf("ClearRounds() failed: %v", err)
	}

	if _, ok, _ := store.BestMoves("fusion", "01"); ok {
		t.Error("Rounds should be cleared")
	}
	if _, ok, _ := store.BestMoves("fusion_random", "random-7"); !ok {
		t.Error("Other game rounds should be untouched")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreReopenKeepsRounds(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "rounds.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRound("fusion", core.RoundResult{LevelID: "01", Moves: 3, Won: true}); err != nil {
		t.Fatal(err)
	}
	store.Close()

	// Migrations already applied must not run again
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	best, ok, err := store.BestMoves("fusion", "01")
	if err != nil || !ok || best != 3 {
		t.Errorf("BestMoves after reopen = %d, %v, %v; want 3, true, nil", best, ok, err)
	}
}

func TestStoreTimestamps(t *testing.T) {
	store := openTestStore(t)
	played := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	store.now = func() time.Time { return played }

	if _, err := store.SaveRound("fusion", core.RoundResult{LevelID: "01", Moves: 1, MoveLimit: 4, UndoUsed: true}); err != nil {
		t.Fatal(err)
	}

	recent, err := store.RecentRounds("fusion", 1)
	if err != nil || len(recent) != 1 {
		t.Fatalf("RecentRounds() = %v, %v", recent, err)
	}
	r := recent[0]
	if !r.CreatedAt.Equal(played) {
		t.Errorf("CreatedAt = %v, want %v", r.CreatedAt, played)
	}
	if r.MoveLimit != 4 || !r.UndoUsed || r.Won {
		t.Errorf("round = %+v", r)
	}

	stats, err := store.GetGameStats("fusion")
	if err != nil {
		t.Fatal(err)
	}
	if !stats.LastPlayed.Equal(played) {
		t.Errorf("LastPlayed = %v, want %v", stats.LastPlayed, played)
	}
}
