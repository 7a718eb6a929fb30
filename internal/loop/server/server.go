package server

import (
	"context"
	"io"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/planetwars/internal/loop/config"
	"github.com/tomz197/planetwars/internal/scoreboard"
)

// GameServer is the interface clients use to communicate with the lobby.
// Decouples the Client from the concrete Server implementation, enabling
// testing and potential network-based server implementations.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	RecordScore(clientID int, entry scoreboard.Entry)
	GetSnapshot() *LobbySnapshot
}

// Server tracks connected sessions, records finished matches and publishes
// the leaderboard. Every session plays its own match; the server only
// shares what sessions have in common.
type Server struct {
	store        *scoreboard.Store // nil disables persistence
	log          *log.Logger
	snapshot     atomic.Pointer[LobbySnapshot]
	clients      map[int]*ClientHandle
	nextClientID int
	scoreCh      chan scoreRecord
	registerCh   chan *ClientHandle
	unregisterCh chan int
	mu           sync.RWMutex

	boardStale bool // Leaderboard must be reloaded from the store
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a session's connection to the server.
type ClientHandle struct {
	ID        int
	Username  string           // Display name for this client
	EventsCh  chan ClientEvent // Events sent to client
	Connected time.Time
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type  ClientEventType
	Entry scoreboard.Entry // Stored entry, for EventScoreRecorded
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
	EventScoreRecorded
	EventScoreFailed
)

type scoreRecord struct {
	clientID int
	entry    scoreboard.Entry
}

// NewServer creates a lobby backed by store. A nil store keeps nothing.
func NewServer(store *scoreboard.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		store:        store,
		log:          logger,
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		scoreCh:      make(chan scoreRecord, 64),
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
		boardStale:   true,
	}

	s.snapshot.Store(&LobbySnapshot{})
	return s
}

// Run starts the server loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(config.ServerTickTime)
	defer ticker.Stop()

	for {
		changed := s.processRegistrations()
		if s.processScores(ctx) {
			changed = true
		}
		if changed || s.boardStale {
			s.createSnapshot(ctx)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			s.mu.RLock()
			remaining := len(s.clients)
			s.mu.RUnlock()
			if remaining == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:        id,
		Username:  username,
		EventsCh:  make(chan ClientEvent, 16),
		Connected: time.Now(),
	}

	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// RecordScore queues a finished match for storage. The client is told the
// outcome through its events channel.
func (s *Server) RecordScore(clientID int, entry scoreboard.Entry) {
	select {
	case s.scoreCh <- scoreRecord{clientID: clientID, entry: entry}:
	default:
		s.log.Warn("score queue full, dropping score", "player", entry.PlayerName)
	}
}

// GetSnapshot returns the current lobby snapshot.
func (s *Server) GetSnapshot() *LobbySnapshot {
	return s.snapshot.Load()
}

// processRegistrations handles pending client registrations/unregistrations.
// Reports whether the session list changed.
func (s *Server) processRegistrations() bool {
	changed := false
	for {
		select {
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			s.log.Info("session joined", "id", handle.ID, "user", handle.Username)
			changed = true
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				close(handle.EventsCh)
				delete(s.clients, clientID)
				s.log.Info("session left", "id", clientID, "user", handle.Username,
					"duration", time.Since(handle.Connected).Round(time.Second))
			}
			s.mu.Unlock()
			changed = true
		default:
			return changed
		}
	}
}

// processScores stores queued scores. Reports whether any was stored.
func (s *Server) processScores(ctx context.Context) bool {
	stored := false
	for {
		select {
		case rec := <-s.scoreCh:
			event := ClientEvent{Type: EventScoreFailed, Entry: rec.entry}
			if s.store != nil {
				entry, err := s.store.Add(ctx, rec.entry)
				if err != nil {
					s.log.Error("recording score", "player", rec.entry.PlayerName, "err", err)
				} else {
					event = ClientEvent{Type: EventScoreRecorded, Entry: entry}
					stored = true
					s.boardStale = true
				}
			}
			s.notify(rec.clientID, event)
		default:
			return stored
		}
	}
}

// notify delivers an event to a connected client without blocking.
func (s *Server) notify(clientID int, event ClientEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if handle, ok := s.clients[clientID]; ok {
		select {
		case handle.EventsCh <- event:
		default:
		}
	}
}

// createSnapshot publishes the session list and, when stale, a fresh
// leaderboard read from the store.
func (s *Server) createSnapshot(ctx context.Context) {
	prev := s.snapshot.Load()

	s.mu.RLock()
	names := make([]string, 0, len(s.clients))
	for _, h := range s.clients {
		names = append(names, h.Username)
	}
	s.mu.RUnlock()
	sort.Strings(names)

	snap := &LobbySnapshot{
		Players:     len(names),
		Names:       names,
		Leaderboard: prev.Leaderboard,
		Scores:      prev.Scores,
		Persistent:  s.store != nil,
		UpdatedAt:   time.Now(),
	}

	if s.boardStale && s.store != nil {
		top, err := s.store.Top(ctx, config.LeaderboardSize)
		if err == nil {
			var all []scoreboard.Entry
			all, err = s.store.All(ctx, config.ScoreListSize)
			if err == nil {
				snap.Leaderboard, snap.Scores = top, all
			}
		}
		if err != nil {
			s.log.Error("loading leaderboard", "err", err)
		}
	}
	s.boardStale = false

	s.snapshot.Store(snap)
}
