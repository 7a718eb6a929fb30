// Package sim runs a single match: production, fleet movement, combat,
// abilities, the computer opponent and scoring.
//
// A GameState is owned by one goroutine. The driver calls Update once per
// frame, then CheckGameOver, and issues player commands between frames.
// Everything else only reads.
package sim

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tomz197/planetwars/internal/ai"
	"github.com/tomz197/planetwars/internal/loop/config"
	"github.com/tomz197/planetwars/internal/mapgen"
	"github.com/tomz197/planetwars/internal/object"
)

// Phase is the state of the match as a whole.
type Phase int

const (
	PhaseInitializing Phase = iota
	PhaseRunning
	PhaseVictory
	PhaseDefeat
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	default:
		return "initializing"
	}
}

// Terminal reports whether the match is over.
func (p Phase) Terminal() bool {
	return p == PhaseVictory || p == PhaseDefeat
}

// Config holds the plain settings a match is created with.
type Config struct {
	Width      float64
	Height     float64
	MapSize    mapgen.Size
	Difficulty ai.Difficulty
	SoundPack  string
	PlayerName string
}

// DefaultConfig returns a medium map against a medium opponent.
func DefaultConfig() Config {
	return Config{
		Width:      config.MapWidth,
		Height:     config.MapHeight,
		MapSize:    mapgen.Medium,
		Difficulty: ai.Medium,
		SoundPack:  "default",
		PlayerName: "Player",
	}
}

// Option customizes a GameState at construction.
type Option func(*GameState)

// WithSeed makes map generation and all other randomness reproducible.
func WithSeed(seed int64) Option {
	return func(g *GameState) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// WithLogger routes match logging to l.
func WithLogger(l *log.Logger) Option {
	return func(g *GameState) {
		g.log = l
	}
}

// WithHooks installs the sound trigger receiver.
func WithHooks(h Hooks) Option {
	return func(g *GameState) {
		g.hooks = h
	}
}

// WithEnemyStrategy replaces the built-in opponent.
func WithEnemyStrategy(s ai.Strategy) Option {
	return func(g *GameState) {
		g.enemyAI = s
	}
}

// WithPlayerStrategy lets a strategy play the Player side, for unattended matches.
func WithPlayerStrategy(s ai.Strategy) Option {
	return func(g *GameState) {
		g.playerAI = s
	}
}

// WithPlanets skips map generation and plays on the given planets.
// Planet IDs must match their slice indices.
func WithPlanets(planets []*object.Planet) Option {
	return func(g *GameState) {
		g.planets = planets
	}
}

// GameState is the aggregate root of a match.
type GameState struct {
	id    uuid.UUID
	cfg   Config
	rng   *rand.Rand
	log   *log.Logger
	hooks Hooks

	planets   []*object.Planet
	fleets    []*object.Fleet
	abilities map[object.Owner]*object.AbilitySet
	stats     map[object.Owner]*Tracker
	labeler   object.FleetLabeler

	enemyAI  ai.Strategy
	playerAI ai.Strategy

	gameTime  float64
	penalties int
	phase     Phase
	selected  object.PlanetID
	events    []Event
	cheated   bool
}

// New creates a match. Unless WithPlanets is given, a fresh map is generated.
func New(cfg Config, opts ...Option) *GameState {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = config.MapWidth, config.MapHeight
	}

	g := &GameState{
		id:    uuid.New(),
		cfg:   cfg,
		hooks: NopHooks{},
		abilities: map[object.Owner]*object.AbilitySet{
			object.Player: object.NewAbilitySet(),
			object.Enemy:  object.NewAbilitySet(),
		},
		stats: map[object.Owner]*Tracker{
			object.Player: {},
			object.Enemy:  {},
		},
		phase:    PhaseInitializing,
		selected: object.NoPlanet,
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if g.log == nil {
		g.log = log.New(io.Discard)
	}
	if g.hooks == nil {
		g.hooks = NopHooks{}
	}
	if g.enemyAI == nil {
		g.enemyAI = ai.New(cfg.Difficulty, object.Enemy)
	}
	g.log = g.log.With("match", g.id.String()[:8])

	g.labeler.Reset()
	if g.planets == nil {
		g.planets = mapgen.Generate(cfg.Width, cfg.Height, cfg.MapSize, g.rng)
		if n := len(g.planets); n < cfg.MapSize.PlanetCount() {
			g.log.Warn("map generation degraded", "size", cfg.MapSize, "want", cfg.MapSize.PlanetCount(), "got", n)
		}
	}

	g.phase = PhaseRunning
	g.log.Info("match started",
		"player", cfg.PlayerName,
		"size", cfg.MapSize,
		"difficulty", cfg.Difficulty,
		"planets", len(g.planets))
	return g
}

// ID returns the unique match identifier.
func (g *GameState) ID() uuid.UUID { return g.id }

// Config returns the settings the match was created with.
func (g *GameState) Config() Config { return g.cfg }

// Planets returns every planet. The slice and its order never change.
func (g *GameState) Planets() []*object.Planet { return g.planets }

// Planet returns the planet with the given id, or nil.
func (g *GameState) Planet(id object.PlanetID) *object.Planet {
	if id < 0 || int(id) >= len(g.planets) {
		return nil
	}
	return g.planets[id]
}

// Fleets returns the fleets in transit, in launch order.
func (g *GameState) Fleets() []*object.Fleet { return g.fleets }

// Abilities returns the ability set of a side, or nil for Neutral.
func (g *GameState) Abilities(side object.Owner) *object.AbilitySet {
	return g.abilities[side]
}

// GameTime returns the elapsed match time in seconds.
func (g *GameState) GameTime() float64 { return g.gameTime }

// Phase returns the match phase.
func (g *GameState) Phase() Phase { return g.phase }

// TacticalPenalties returns the accumulated score deductions.
func (g *GameState) TacticalPenalties() int { return g.penalties }

// Cheated reports whether the match was won through ForceVictory.
func (g *GameState) Cheated() bool { return g.cheated }

// SelectedPlanet returns the planet the UI has selected, or NoPlanet.
func (g *GameState) SelectedPlanet() object.PlanetID { return g.selected }

// Select records the UI selection. Invalid ids clear it.
func (g *GameState) Select(id object.PlanetID) {
	if g.Planet(id) == nil {
		id = object.NoPlanet
	}
	g.selected = id
}

// PlanetAt returns the first planet containing the point, or nil.
func (g *GameState) PlanetAt(x, y float64) *object.Planet {
	for _, p := range g.planets {
		if p.Contains(x, y) {
			return p
		}
	}
	return nil
}

// strategyView shows the match to strategies as snapshots, so nothing a
// strategy holds can change the match.
type strategyView struct {
	g *GameState
}

var _ ai.View = strategyView{}

func (v strategyView) Planets() []object.PlanetReader {
	out := make([]object.PlanetReader, len(v.g.planets))
	for i, p := range v.g.planets {
		out[i] = p.Snapshot()
	}
	return out
}

func (v strategyView) Fleets() []object.FleetReader {
	out := make([]object.FleetReader, len(v.g.fleets))
	for i, f := range v.g.fleets {
		out[i] = f.Snapshot()
	}
	return out
}

func (v strategyView) AbilityAvailable(side object.Owner, kind object.AbilityKind) bool {
	set := v.g.abilities[side]
	return set != nil && set.Get(kind).IsAvailable()
}
