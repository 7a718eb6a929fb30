// Package loop runs a single local session: a private lobby server and one
// client on the given terminal streams.
package loop

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/planetwars/internal/config"
	"github.com/tomz197/planetwars/internal/draw"
	"github.com/tomz197/planetwars/internal/loop/client"
	"github.com/tomz197/planetwars/internal/loop/server"
	"github.com/tomz197/planetwars/internal/scoreboard"
)

// Options configures a local session.
type Options struct {
	Settings     config.Settings
	Store        *scoreboard.Store // nil keeps scores in memory only for the session
	Logger       *log.Logger
	TermSizeFunc draw.TermSizeFunc
	Seed         int64
	SaveSettings func(config.Settings) error
}

// Run plays until the user quits. It returns the settings chosen last so the
// caller can persist them.
func Run(r *bufio.Reader, w io.Writer, opts Options) (config.Settings, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ctx, cancel := context.WithCancel(context.Background())
	srv := server.NewServer(opts.Store, logger)
	done := make(chan struct{})
	go func() {
		srv.Run(ctx)
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	c := client.NewClient(srv, r, w, client.ClientOptions{
		TermSizeFunc: opts.TermSizeFunc,
		Username:     opts.Settings.PlayerName,
		Settings:     opts.Settings,
		Logger:       logger,
		Seed:         opts.Seed,
		SaveSettings: opts.SaveSettings,
	})
	start := time.Now()
	err := c.Run()
	logger.Info("session ended", "duration", time.Since(start).Round(time.Second))
	return c.Settings(), err
}
