package client

import (
	"time"

	"github.com/tomz197/planetwars/internal/config"
	"github.com/tomz197/planetwars/internal/draw"
	"github.com/tomz197/planetwars/internal/input"
	"github.com/tomz197/planetwars/internal/loop/server"
	"github.com/tomz197/planetwars/internal/object"
	"github.com/tomz197/planetwars/internal/sim"
)

// GameState represents the current screen of a client.
type GameState int

const (
	GameStateStart      GameState = iota // Title screen
	GameStateSetup                       // Match options
	GameStatePlaying                     // Active match
	GameStateGameOver                    // Match result
	GameStateScoreboard                  // Stored scores
	GameStateShutdown                    // Server is shutting down
)

// setupRow identifies an editable line of the setup screen.
type setupRow int

const (
	rowName setupRow = iota
	rowMapSize
	rowDifficulty
	rowSound
	setupRows
)

// recordState tracks the storage of a finished match.
type recordState int

const (
	recordPending recordState = iota
	recordSaved
	recordFailed
)

// ClientState holds per-session state (input, settings, match, effects).
// Each client has their own instance, managed by the Client.
type ClientState struct {
	Input     input.Input
	GameState GameState       // This client's screen
	Settings  config.Settings // Options for the next match
	Match     *sim.GameState  // Current or last match, nil before the first
	Result    sim.Result      // Summary of the last finished match

	controls  controls
	setupRow  setupRow
	effects   []object.Effect
	spawned   []object.Effect
	eventLog  []string
	record    recordState
	recorded  string // Stored entry id
	lobby     *server.LobbySnapshot
	scrollTop int     // First row shown on the scoreboard
	trailTime float64 // Seconds until the next fleet trail particles

	termSizeFunc  draw.TermSizeFunc // Function to get terminal size
	Running       bool              // Client loop running
	delta         time.Duration     // Frame delta time (client-side)
	shutdownTimer float64           // Countdown before auto-disconnect on shutdown
	isInactive    bool              // Whether the client is in inactive warning state
	prevGameState GameState         // Screen drawn last frame
	wasInactive   bool              // Inactivity state drawn last frame
}

// NewClientState creates a new initialized client state.
func NewClientState(settings config.Settings) *ClientState {
	return &ClientState{
		GameState:     GameStateStart,
		Settings:      settings,
		controls:      newControls(),
		Running:       true,
		prevGameState: -1,
	}
}

// Spawn queues an effect to be added after the current effect update.
// Implements object.Spawner.
func (s *ClientState) Spawn(e object.Effect) {
	s.spawned = append(s.spawned, e)
}

// updateEffects advances visual effects and drops finished ones.
func (s *ClientState) updateEffects() {
	ctx := object.UpdateContext{Delta: s.delta}
	kept := s.effects[:0]
	for _, e := range s.effects {
		remove, _ := e.Update(ctx)
		if remove {
			object.ReleaseEffect(e)
			continue
		}
		kept = append(kept, e)
	}
	clear(s.effects[len(kept):])
	s.effects = append(kept, s.spawned...)
	s.spawned = s.spawned[:0]
}

// clearEffects releases every effect.
func (s *ClientState) clearEffects() {
	for _, e := range s.effects {
		object.ReleaseEffect(e)
	}
	s.effects = s.effects[:0]
	s.spawned = s.spawned[:0]
}

// logEvent appends a line to the HUD event log, keeping the latest few.
func (s *ClientState) logEvent(line string, keep int) {
	s.eventLog = append(s.eventLog, line)
	if n := len(s.eventLog); n > keep {
		s.eventLog = append(s.eventLog[:0], s.eventLog[n-keep:]...)
	}
}

// Compile-time check that ClientState can receive effects.
var _ object.Spawner = (*ClientState)(nil)
