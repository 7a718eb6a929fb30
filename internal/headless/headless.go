// Package headless plays computer-versus-computer matches without a
// terminal, for balance checks and regression runs.
package headless

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/pierrec/lz4/v4"

	"github.com/tomz197/planetwars/internal/ai"
	"github.com/tomz197/planetwars/internal/mapgen"
	"github.com/tomz197/planetwars/internal/object"
	"github.com/tomz197/planetwars/internal/sim"
)

// Options configures a batch of matches.
type Options struct {
	Matches  int
	SeedBase int64
	SeedStep int64
	MapSize  mapgen.Size
	Player   ai.Difficulty // Strategy playing the Player side
	Enemy    ai.Difficulty
	TickRate int     // Fixed updates per simulated second
	MaxTime  float64 // Simulated seconds before a match is called a draw
	Logger   *log.Logger
	Events   io.Writer // Receives one JSON line per match event when set
}

// DefaultOptions plays five medium matches at 60 ticks per second.
func DefaultOptions() Options {
	return Options{
		Matches:  5,
		SeedBase: 42,
		SeedStep: 1,
		MapSize:  mapgen.Medium,
		Player:   ai.Medium,
		Enemy:    ai.Medium,
		TickRate: 60,
		MaxTime:  900,
	}
}

// Report summarises one match.
type Report struct {
	Index    int
	Seed     int64
	Map      string // Fingerprint of the starting layout
	Phase    sim.Phase
	Winner   object.Owner // Neutral when the time limit was reached
	GameTime float64
	Ticks    int
	Score    int // Player score, 0 unless the Player side won
	Player   sim.Tracker
	Enemy    sim.Tracker
	Planets  map[object.Owner]int
	Events   int
}

// Summary aggregates a batch.
type Summary struct {
	Matches    int
	PlayerWins int
	EnemyWins  int
	Draws      int
	AvgTime    float64
	AvgEvents  float64
}

// event is the JSON line written per match event.
type event struct {
	Match  int     `json:"match"`
	Seed   int64   `json:"seed"`
	Time   float64 `json:"time"`
	Kind   int     `json:"kind"`
	Side   string  `json:"side"`
	Planet int     `json:"planet"`
	Ships  int     `json:"ships"`
	Text   string  `json:"text"`
}

// Play runs opts.Matches matches one after another. It stops early, returning
// the reports so far, when ctx is cancelled.
func Play(ctx context.Context, opts Options) ([]Report, Summary, error) {
	if opts.Matches <= 0 {
		return nil, Summary{}, fmt.Errorf("matches must be > 0, got %d", opts.Matches)
	}
	if opts.TickRate <= 0 {
		return nil, Summary{}, fmt.Errorf("tick rate must be > 0, got %d", opts.TickRate)
	}
	if opts.MaxTime <= 0 {
		return nil, Summary{}, fmt.Errorf("max time must be > 0, got %v", opts.MaxTime)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	var enc *json.Encoder
	if opts.Events != nil {
		enc = json.NewEncoder(opts.Events)
	}

	reports := make([]Report, 0, opts.Matches)
	for i := 0; i < opts.Matches; i++ {
		if err := ctx.Err(); err != nil {
			return reports, Summarize(reports), err
		}
		seed := opts.SeedBase + int64(i)*opts.SeedStep
		r, err := playMatch(i+1, seed, opts, enc)
		if err != nil {
			return reports, Summarize(reports), err
		}
		opts.Logger.Info("match done", "match", r.Index, "seed", r.Seed, "winner", r.Winner,
			"time", fmt.Sprintf("%.1f", r.GameTime), "map", r.Map)
		reports = append(reports, r)
	}
	return reports, Summarize(reports), nil
}

// PlayMatch runs a single match with the given seed.
func PlayMatch(index int, seed int64, opts Options) (Report, error) {
	return playMatch(index, seed, opts, nil)
}

func playMatch(index int, seed int64, opts Options, enc *json.Encoder) (Report, error) {
	cfg := sim.DefaultConfig()
	cfg.MapSize = opts.MapSize
	cfg.Difficulty = opts.Enemy
	cfg.PlayerName = "ai-" + opts.Player.String()

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	g := sim.New(cfg,
		sim.WithSeed(seed),
		sim.WithLogger(logger.With("seed", seed)),
		sim.WithPlayerStrategy(ai.New(opts.Player, object.Player)),
		sim.WithEnemyStrategy(ai.New(opts.Enemy, object.Enemy)),
	)

	r := Report{Index: index, Seed: seed, Map: mapgen.Fingerprint(g.Planets()), Winner: object.Neutral}
	dt := 1 / float64(opts.TickRate)
	maxTicks := int(opts.MaxTime * float64(opts.TickRate))

	for r.Ticks < maxTicks {
		g.Update(dt)
		r.Ticks++
		phase := g.CheckGameOver()

		events := g.DrainEvents()
		r.Events += len(events)
		if enc != nil {
			for _, e := range events {
				line := event{Match: index, Seed: seed, Time: e.Time, Kind: int(e.Kind),
					Side: e.Side.String(), Planet: int(e.Planet), Ships: e.Ships, Text: e.String()}
				if err := enc.Encode(line); err != nil {
					return r, fmt.Errorf("write events: %w", err)
				}
			}
		}
		if phase.Terminal() {
			break
		}
	}

	r.Phase = g.Phase()
	switch r.Phase {
	case sim.PhaseVictory:
		r.Winner = object.Player
	case sim.PhaseDefeat:
		r.Winner = object.Enemy
	}
	r.GameTime = g.GameTime()
	r.Score = g.Result().Score
	r.Player = g.Stats(object.Player)
	r.Enemy = g.Stats(object.Enemy)
	r.Planets = map[object.Owner]int{}
	for _, p := range g.Planets() {
		r.Planets[p.Owner()]++
	}
	return r, nil
}

// Summarize aggregates reports.
func Summarize(reports []Report) Summary {
	s := Summary{Matches: len(reports)}
	if len(reports) == 0 {
		return s
	}
	for _, r := range reports {
		switch r.Winner {
		case object.Player:
			s.PlayerWins++
		case object.Enemy:
			s.EnemyWins++
		default:
			s.Draws++
		}
		s.AvgTime += r.GameTime
		s.AvgEvents += float64(r.Events)
	}
	s.AvgTime /= float64(len(reports))
	s.AvgEvents /= float64(len(reports))
	return s
}

// CompressedWriter wraps w so everything written is lz4-framed. Close
// flushes the last frame; it does not close w.
func CompressedWriter(w io.Writer) io.WriteCloser {
	return lz4.NewWriter(w)
}
