package server

import (
	"time"

	"github.com/tomz197/planetwars/internal/scoreboard"
)

// LobbySnapshot is an immutable view of the lobby for rendering.
// A new snapshot replaces the old one; published snapshots are never modified.
type LobbySnapshot struct {
	Players     int                // Connected sessions
	Names       []string           // Usernames of connected sessions, sorted
	Leaderboard []scoreboard.Entry // Top scores without cheaters
	Scores      []scoreboard.Entry // Full score list, cheaters last
	Persistent  bool               // Scores are stored
	UpdatedAt   time.Time
}

// Rank returns the 1-based leaderboard position of the entry with the given
// id, or 0 when it is not on the board.
func (s *LobbySnapshot) Rank(id string) int {
	for i, e := range s.Leaderboard {
		if e.ID == id {
			return i + 1
		}
	}
	return 0
}
