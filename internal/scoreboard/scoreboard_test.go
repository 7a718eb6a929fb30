package scoreboard

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomz197/planetwars/internal/ai"
	"github.com/tomz197/planetwars/internal/mapgen"
	"github.com/tomz197/planetwars/internal/sim"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:", nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// seed adds entries with increasing timestamps so ties have a defined order.
func seed(t *testing.T, s *Store, entries ...Entry) []Entry {
	t.Helper()
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	var out []Entry
	for i, e := range entries {
		e.CreatedAt = base.Add(time.Duration(i) * time.Second)
		stored, err := s.Add(context.Background(), e)
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		out = append(out, stored)
	}
	return out
}

func names(entries []Entry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.PlayerName)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// --- Add ---

func TestAdd_FillsIDAndTimestamp(t *testing.T) {
	s := openTestStore(t)
	e, err := s.Add(context.Background(), Entry{PlayerName: "ada", Score: 120, Victory: true})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if e.ID == "" || e.CreatedAt.IsZero() {
		t.Fatalf("expected ID and timestamp, got %+v", e)
	}

	top, err := s.Top(context.Background(), 0)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 1 || top[0].ID != e.ID || top[0].Score != 120 || !top[0].Victory {
		t.Fatalf("expected stored entry back, got %+v", top)
	}
}

// --- Ranking ---

func TestTop_ExcludesCheatersAndOrders(t *testing.T) {
	s := openTestStore(t)
	seed(t, s,
		Entry{PlayerName: "low", Score: 40},
		Entry{PlayerName: "cheat", Score: 500, Cheater: true},
		Entry{PlayerName: "first", Score: 150},
		Entry{PlayerName: "second", Score: 150},
		Entry{PlayerName: "zero", Score: 0},
	)

	top, err := s.Top(context.Background(), 3)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	want := []string{"first", "second", "low"}
	if got := names(top); !equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestAll_CheatersLast(t *testing.T) {
	s := openTestStore(t)
	seed(t, s,
		Entry{PlayerName: "cheat-a", Score: 300, Cheater: true},
		Entry{PlayerName: "mid", Score: 90},
		Entry{PlayerName: "cheat-b", Score: 900, Cheater: true},
		Entry{PlayerName: "best", Score: 140},
	)

	all, err := s.All(context.Background(), 0)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	want := []string{"best", "mid", "cheat-b", "cheat-a"}
	if got := names(all); !equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if all[2].DisplayScore() != "CHEATER" || all[0].DisplayScore() != "140" {
		t.Fatalf("unexpected display scores %q %q", all[2].DisplayScore(), all[0].DisplayScore())
	}
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")
	s, err := Open(path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	seed(t, s, Entry{PlayerName: "kept", Score: 77})
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s, err = Open(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	top, err := s.Top(context.Background(), 10)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 1 || top[0].PlayerName != "kept" {
		t.Fatalf("expected persisted entry, got %v", names(top))
	}
}

func TestEntryFromResult(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.Difficulty = ai.Hard
	cfg.MapSize = mapgen.Large
	e := EntryFromResult("ada", cfg, sim.Result{Victory: true, Score: 130, BattlesWon: 4, GameTime: 75})

	if e.PlayerName != "ada" || e.Score != 130 || e.BattlesWon != 4 || !e.Victory {
		t.Fatalf("unexpected entry %+v", e)
	}
	if e.Difficulty != "hard" || e.MapSize != "large" {
		t.Fatalf("expected hard/large, got %s/%s", e.Difficulty, e.MapSize)
	}
}
