package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/tomz197/planetwars/internal/config"
	"github.com/tomz197/planetwars/internal/loop"
	"github.com/tomz197/planetwars/internal/scoreboard"
)

func main() {
	dir := flag.StringP("config", "c", ".", "directory holding "+config.SettingsFile)
	seed := flag.Int64("seed", 0, "fixed map seed, 0 for a random map each match")
	logPath := flag.String("log", config.GetEnv("PLANETWARS_LOG", ""), "write logs to this file")
	flag.Parse()

	logger := log.New(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = log.NewWithOptions(f, log.Options{ReportTimestamp: true, Level: log.DebugLevel})
	}

	settings, err := config.Load(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load settings: %v\n", err)
		os.Exit(1)
	}

	store, err := scoreboard.Open(settings.ScoreDB, logger)
	if err != nil {
		// Play on without a scoreboard.
		logger.Error("opening scoreboard", "path", settings.ScoreDB, "err", err)
		store = nil
	} else {
		defer store.Close()
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	_, err = loop.Run(reader, os.Stdout, loop.Options{
		Settings: settings,
		Store:    store,
		Logger:   logger,
		Seed:     *seed,
		SaveSettings: func(s config.Settings) error {
			return config.Save(*dir, s)
		},
	})
	if err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
