package server

import (
	"context"
	"testing"
	"time"

	"github.com/tomz197/planetwars/internal/scoreboard"
)

func startServer(t *testing.T, withStore bool) *Server {
	t.Helper()
	var store *scoreboard.Store
	if withStore {
		var err error
		store, err = scoreboard.Open(":memory:", nil)
		if err != nil {
			t.Fatalf("open store: %v", err)
		}
		t.Cleanup(func() { store.Close() })
	}

	s := NewServer(store, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return s
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func nextEvent(t *testing.T, h *ClientHandle) (ClientEvent, bool) {
	t.Helper()
	select {
	case ev, ok := <-h.EventsCh:
		return ev, ok
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for client event")
	}
	return ClientEvent{}, false
}

// --- Sessions ---

func TestServer_RegisterAndUnregister(t *testing.T) {
	s := startServer(t, false)
	a := s.RegisterClient("ada")
	b := s.RegisterClient("bob")
	if a.ID == b.ID {
		t.Fatalf("expected distinct ids, got %d twice", a.ID)
	}

	waitFor(t, "two players", func() bool { return s.GetSnapshot().Players == 2 })
	names := s.GetSnapshot().Names
	if len(names) != 2 || names[0] != "ada" || names[1] != "bob" {
		t.Fatalf("expected [ada bob], got %v", names)
	}

	s.UnregisterClient(a.ID)
	if _, ok := nextEvent(t, a); ok {
		t.Fatal("expected events channel to be closed")
	}
	waitFor(t, "one player", func() bool { return s.GetSnapshot().Players == 1 })
}

// --- Scores ---

func TestServer_RecordScoreRefreshesLeaderboard(t *testing.T) {
	s := startServer(t, true)
	h := s.RegisterClient("ada")
	waitFor(t, "registration", func() bool { return s.GetSnapshot().Players == 1 })

	s.RecordScore(h.ID, scoreboard.Entry{PlayerName: "ada", Score: 140, Victory: true})
	ev, ok := nextEvent(t, h)
	if !ok || ev.Type != EventScoreRecorded {
		t.Fatalf("expected EventScoreRecorded, got %+v", ev)
	}
	if ev.Entry.ID == "" {
		t.Fatal("expected stored entry to carry an id")
	}

	waitFor(t, "leaderboard", func() bool { return len(s.GetSnapshot().Leaderboard) == 1 })
	snap := s.GetSnapshot()
	if snap.Rank(ev.Entry.ID) != 1 {
		t.Fatalf("expected rank 1, got %d", snap.Rank(ev.Entry.ID))
	}
	if !snap.Persistent {
		t.Fatal("expected persistent lobby")
	}
}

func TestServer_CheaterStaysOffLeaderboard(t *testing.T) {
	s := startServer(t, true)
	h := s.RegisterClient("eve")
	waitFor(t, "registration", func() bool { return s.GetSnapshot().Players == 1 })

	s.RecordScore(h.ID, scoreboard.Entry{PlayerName: "eve", Score: 150, Victory: true, Cheater: true})
	if ev, _ := nextEvent(t, h); ev.Type != EventScoreRecorded {
		t.Fatalf("expected EventScoreRecorded, got %+v", ev)
	}

	waitFor(t, "score list", func() bool { return len(s.GetSnapshot().Scores) == 1 })
	if n := len(s.GetSnapshot().Leaderboard); n != 0 {
		t.Fatalf("expected empty leaderboard, got %d entries", n)
	}
}

func TestServer_RecordScoreWithoutStore(t *testing.T) {
	s := startServer(t, false)
	h := s.RegisterClient("ada")
	waitFor(t, "registration", func() bool { return s.GetSnapshot().Players == 1 })

	s.RecordScore(h.ID, scoreboard.Entry{PlayerName: "ada", Score: 100})
	if ev, _ := nextEvent(t, h); ev.Type != EventScoreFailed {
		t.Fatalf("expected EventScoreFailed, got %+v", ev)
	}
}

// --- Shutdown ---

func TestServer_ShutdownNotifiesClients(t *testing.T) {
	s := startServer(t, false)
	h := s.RegisterClient("ada")
	waitFor(t, "registration", func() bool { return s.GetSnapshot().Players == 1 })

	go func() {
		ev, ok := <-h.EventsCh
		if ok && ev.Type == EventServerShutdown {
			s.UnregisterClient(h.ID)
		}
	}()

	start := time.Now()
	s.Shutdown(3 * time.Second)
	if time.Since(start) >= 3*time.Second {
		t.Fatal("expected shutdown to return once the client left")
	}
}
