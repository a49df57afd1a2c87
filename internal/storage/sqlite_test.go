package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
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
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreOpenNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{4, 2, 9} {
		if _, err := store.SaveScore("oilbox", s); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("stripsort", 1); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("oilbox", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	expected := []int{9, 4, 2}
	for i, e := range expected {
		if scores[i].Score != e {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, e)
		}
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not parsed")
	}

	other, err := store.TopScores("stripsort", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("Expected 1 stripsort score, got %d", len(other))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 12; i++ {
		store.SaveScore("oilbox", i+1) //nolint:errcheck
	}

	scores, err := store.TopScores("oilbox", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 12 || scores[1].Score != 11 || scores[2].Score != 10 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	// A non-positive limit falls back to ten.
	scores, _ = store.TopScores("oilbox", 0)
	if len(scores) != 10 {
		t.Errorf("default limit returned %d scores, expected 10", len(scores))
	}
}

func TestStoreTopRecords(t *testing.T) {
	store := openTestStore(t)
	store.SaveScore("oilbox", 3) //nolint:errcheck
	store.SaveScore("oilbox", 7) //nolint:errcheck

	records, err := store.TopRecords("oilbox", 10)
	if err != nil {
		t.Fatalf("TopRecords() failed: %v", err)
	}
	if len(records) != 2 || records[0].Score != 7 || records[1].Score != 3 {
		t.Fatalf("records = %+v", records)
	}
	if _, err := time.Parse(ScoreDateFormat, records[0].Date); err != nil {
		t.Errorf("Date %q is not %s: %v", records[0].Date, ScoreDateFormat, err)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("oilbox")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("oilbox", 1) //nolint:errcheck
	store.SaveScore("oilbox", 3) //nolint:errcheck
	store.SaveScore("oilbox", 2) //nolint:errcheck

	high, err = store.HighScore("oilbox")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 3 {
		t.Errorf("Expected high score of 3, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("oilbox", 1)    //nolint:errcheck
	store.SaveScore("oilbox", 2)    //nolint:errcheck
	store.SaveScore("stripsort", 3) //nolint:errcheck

	if err := store.ClearScores("oilbox"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("oilbox", 10); len(scores) != 0 {
		t.Errorf("Expected 0 oilbox scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("stripsort", 10); len(scores) != 1 {
		t.Errorf("stripsort scores should not be affected by clearing oilbox")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveScore("oilbox", i+1) //nolint:errcheck
	}

	scores, err := store.AllScores("oilbox")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("oilbox", 2) //nolint:errcheck
	store.SaveScore("oilbox", 4) //nolint:errcheck

	stats, err := store.GetGameStats("oilbox")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 4 || stats.TotalScore != 6 || stats.AvgScore != 3 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}

	empty, err := store.GetGameStats("stripsort")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 1 || all["oilbox"] == nil {
		t.Errorf("all stats = %v", all)
	}
}

func TestStoreSortRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []SortRun{
		{RunID: "a", Algorithm: "quick", Segments: 10, Steps: 30, Status: RunSorted, DurationMs: 120},
		{RunID: "b", Algorithm: "bubble", Segments: 10, Steps: 4, Status: RunStopped},
		{RunID: "c", Algorithm: "quick", Segments: 5, Steps: 9, Status: RunSorted},
	}
	for _, r := range runs {
		if _, err := store.SaveSortRun(r); err != nil {
			t.Fatalf("SaveSortRun(%s) failed: %v", r.RunID, err)
		}
	}

	if _, err := store.SaveSortRun(runs[0]); err == nil {
		t.Error("duplicate run id should fail")
	}

	got, err := store.SortRunByID("a")
	if err != nil || got == nil {
		t.Fatalf("SortRunByID(a) = %v, %v", got, err)
	}
	if got.Algorithm != "quick" || got.Steps != 30 || got.DurationMs != 120 || got.CreatedAt.IsZero() {
		t.Errorf("run a = %+v", got)
	}

	missing, err := store.SortRunByID("zzz")
	if err != nil || missing != nil {
		t.Errorf("SortRunByID(zzz) = %v, %v, expected nil, nil", missing, err)
	}

	recent, err := store.RecentSortRuns("", 10)
	if err != nil {
		t.Fatalf("RecentSortRuns() failed: %v", err)
	}
	if len(recent) != 3 || recent[0].RunID != "c" {
		t.Errorf("recent = %+v, expected newest first", recent)
	}

	quick, err := store.RecentSortRuns("quick", 10)
	if err != nil {
		t.Fatalf("RecentSortRuns(quick) failed: %v", err)
	}
	if len(quick) != 2 {
		t.Errorf("quick runs = %d, expected 2", len(quick))
	}
}
