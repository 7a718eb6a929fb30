package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"

	"github.com/tomz197/planetwars/internal/ai"
	"github.com/tomz197/planetwars/internal/headless"
	"github.com/tomz197/planetwars/internal/mapgen"
	"github.com/tomz197/planetwars/internal/object"
)

func main() {
	def := headless.DefaultOptions()
	matches := flag.IntP("matches", "n", def.Matches, "number of matches")
	seedBase := flag.Int64("seed-base", def.SeedBase, "seed of the first match")
	seedStep := flag.Int64("seed-step", def.SeedStep, "seed increment between matches")
	size := flag.StringP("size", "s", def.MapSize.String(), "map size: small, medium or large")
	player := flag.String("player", def.Player.String(), "difficulty of the Player-side strategy")
	enemy := flag.String("enemy", def.Enemy.String(), "difficulty of the Enemy-side strategy")
	tickRate := flag.Int("tick-rate", def.TickRate, "fixed updates per simulated second")
	maxTime := flag.Float64("max-time", def.MaxTime, "simulated seconds before a match is a draw")
	events := flag.String("events", "", "write match events as JSON lines to this file (.lz4 compresses)")
	verbose := flag.BoolP("verbose", "v", false, "log match internals")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "headless"})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	opts := def
	opts.Matches = *matches
	opts.SeedBase = *seedBase
	opts.SeedStep = *seedStep
	opts.TickRate = *tickRate
	opts.MaxTime = *maxTime
	opts.Logger = logger

	var err error
	if opts.MapSize, err = mapgen.ParseSize(*size); err != nil {
		logger.Fatal("invalid flag", "err", err)
	}
	if opts.Player, err = ai.ParseDifficulty(*player); err != nil {
		logger.Fatal("invalid flag", "err", err)
	}
	if opts.Enemy, err = ai.ParseDifficulty(*enemy); err != nil {
		logger.Fatal("invalid flag", "err", err)
	}

	if *events != "" {
		f, err := os.Create(*events)
		if err != nil {
			logger.Fatal("creating events file", "err", err)
		}
		defer f.Close()
		var w io.Writer = f
		if strings.HasSuffix(*events, ".lz4") {
			zw := headless.CompressedWriter(f)
			defer zw.Close()
			w = zw
		}
		opts.Events = w
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("=== Headless Planet Wars ===\n")
	fmt.Printf("matches=%d size=%s player=%s enemy=%s seed_base=%d seed_step=%d tick_rate=%d max_time=%.0f\n\n",
		opts.Matches, opts.MapSize, opts.Player, opts.Enemy, opts.SeedBase, opts.SeedStep, opts.TickRate, opts.MaxTime)

	reports, sum, err := headless.Play(ctx, opts)
	for _, r := range reports {
		printReport(r)
	}
	printSummary(sum)
	if err != nil {
		logger.Error("run stopped", "err", err)
	}
}

func printReport(r headless.Report) {
	winner := "draw"
	if r.Winner != object.Neutral {
		winner = r.Winner.String()
	}
	fmt.Printf("match %d seed=%d map=%s\n", r.Index, r.Seed, r.Map)
	fmt.Printf("  winner=%s time=%.1fs ticks=%d events=%d score=%d\n", winner, r.GameTime, r.Ticks, r.Events, r.Score)
	fmt.Printf("  planets player=%d enemy=%d neutral=%d\n",
		r.Planets[object.Player], r.Planets[object.Enemy], r.Planets[object.Neutral])
	fmt.Printf("  player produced=%d won=%d lost=%d\n", r.Player.ShipsProduced, r.Player.BattlesWon, r.Player.BattlesLost)
	fmt.Printf("  enemy  produced=%d won=%d lost=%d\n\n", r.Enemy.ShipsProduced, r.Enemy.BattlesWon, r.Enemy.BattlesLost)
}

func printSummary(s headless.Summary) {
	fmt.Printf("=== Summary ===\n")
	fmt.Printf("matches=%d player_wins=%d enemy_wins=%d draws=%d\n", s.Matches, s.PlayerWins, s.EnemyWins, s.Draws)
	fmt.Printf("avg_time=%.1fs avg_events=%.1f\n", s.AvgTime, s.AvgEvents)
}
