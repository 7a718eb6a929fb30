package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/planetwars/internal/config"
	"github.com/tomz197/planetwars/internal/draw"
	"github.com/tomz197/planetwars/internal/limit"
	"github.com/tomz197/planetwars/internal/loop/client"
	"github.com/tomz197/planetwars/internal/loop/server"
	"github.com/tomz197/planetwars/internal/scoreboard"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultConnRate    = 0.5 // New sessions per second per IP
	defaultConnBurst   = 5
	defaultGrace       = 15 * time.Second
)

// Shared by all SSH sessions.
var (
	gameServer *server.Server
	settings   config.Settings
	logger     *log.Logger
)

func main() {
	logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "ssh"})

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	connRate, err := config.GetEnvFloat("SSH_CONN_RATE", defaultConnRate)
	if err != nil {
		logger.Fatal("invalid environment", "err", err)
	}
	connBurst, err := config.GetEnvInt("SSH_CONN_BURST", defaultConnBurst)
	if err != nil {
		logger.Fatal("invalid environment", "err", err)
	}
	grace, err := config.GetEnvDuration("SSH_SHUTDOWN_GRACE", defaultGrace)
	if err != nil {
		logger.Fatal("invalid environment", "err", err)
	}

	settings, err = config.Load(config.GetEnv("PLANETWARS_CONFIG_DIR", "."))
	if err != nil {
		logger.Fatal("loading settings", "err", err)
	}
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath,
		"scoreDB", settings.ScoreDB, "mapSize", settings.MapSize, "difficulty", settings.Difficulty)

	store, err := scoreboard.Open(settings.ScoreDB, logger.WithPrefix("scores"))
	if err != nil {
		logger.Fatal("opening scoreboard", "path", settings.ScoreDB, "err", err)
	}
	defer store.Close()

	// Start the shared lobby server
	ctx, cancelServer := context.WithCancel(context.Background())
	gameServer = server.NewServer(store, logger.WithPrefix("lobby"))
	go gameServer.Run(ctx)
	logger.Info("lobby server started")

	limiter := limit.NewPerIP(connRate, connBurst, 10*time.Minute)
	go pruneLimiter(ctx, limiter)

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware,
			activeterm.Middleware(),
			rateLimitMiddleware(limiter),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// Notify players and wait for them to disconnect
	logger.Info("notifying connected players about shutdown")
	gameServer.Shutdown(grace)
	cancelServer()
	logger.Info("lobby server stopped")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}

// rateLimitMiddleware turns away sessions from addresses that connect too often.
func rateLimitMiddleware(l *limit.PerIP) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			addr := sess.RemoteAddr().String()
			if !l.Allow(addr) {
				logger.Warn("session rate limited", "ip", limit.Host(addr), "user", sess.User())
				fmt.Fprintln(sess, "Too many connections, please try again in a minute.")
				return
			}
			next(sess)
		}
	}
}

func pruneLimiter(ctx context.Context, l *limit.PerIP) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			logger.Debug("pruned rate limiter", "tracked", l.Prune())
		}
	}
}

// gameMiddleware handles SSH sessions and runs the game client.
func gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger.Info("new game session", "user", sess.User(), "terminal", pty.Term,
			"width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		sessionSettings := settings
		sessionSettings.PlayerName = config.SanitizeName(sess.User())

		reader := bufio.NewReader(sess)
		clientOpts := client.ClientOptions{
			TermSizeFunc: sizeTracker.getSize,
			Username:     sess.User(),
			Settings:     sessionSettings,
			Logger:       logger.WithPrefix("session"),
		}

		// Create a new client connected to the shared lobby
		c := client.NewClient(gameServer, reader, sess, clientOpts)
		if err := c.Run(); err != nil {
			logger.Error("game error", "user", sess.User(), "err", err)
		}

		logger.Info("session ended", "user", sess.User())
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
