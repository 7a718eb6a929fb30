package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/gorilla/handlers"

	"github.com/tomz197/planetwars/internal/config"
	"github.com/tomz197/planetwars/internal/limit"
	loopconfig "github.com/tomz197/planetwars/internal/loop/config"
	"github.com/tomz197/planetwars/internal/scoreboard"
)

const (
	defaultHost  = "0.0.0.0"
	defaultPort  = "8080"
	defaultRate  = 10 // Requests per second per IP
	defaultBurst = 20
)

//go:embed index.html
var indexHTML string

var page = template.Must(template.New("index").Funcs(template.FuncMap{
	"ago": humanize.Time,
	"inc": func(i int) int { return i + 1 },
	"clock": func(seconds float64) string {
		return fmt.Sprintf("%d:%02d", int(seconds)/60, int(seconds)%60)
	},
}).Parse(indexHTML))

type pageData struct {
	SSHHost string
	SSHPort string
	Top     []scoreboard.Entry
	Recent  []scoreboard.Entry
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "web"})

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	sshPort := config.GetEnv("SSH_DISPLAY_PORT", "2222")

	settings, err := config.Load(config.GetEnv("PLANETWARS_CONFIG_DIR", "."))
	if err != nil {
		logger.Fatal("loading settings", "err", err)
	}
	store, err := scoreboard.Open(settings.ScoreDB, logger.WithPrefix("scores"))
	if err != nil {
		logger.Fatal("opening scoreboard", "path", settings.ScoreDB, "err", err)
	}
	defer store.Close()

	rps, err := config.GetEnvFloat("WEB_RATE", defaultRate)
	if err != nil {
		logger.Fatal("invalid environment", "err", err)
	}
	burst, err := config.GetEnvInt("WEB_BURST", defaultBurst)
	if err != nil {
		logger.Fatal("invalid environment", "err", err)
	}
	limiter := limit.NewPerIP(rps, burst, 10*time.Minute)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		top, err := store.Top(r.Context(), loopconfig.LeaderboardSize)
		if err == nil {
			var all []scoreboard.Entry
			all, err = store.All(r.Context(), loopconfig.ScoreListSize)
			if err == nil {
				err = renderPage(w, pageData{SSHHost: sshHost, SSHPort: sshPort, Top: top, Recent: all})
			}
		}
		if err != nil {
			logger.Error("rendering index", "err", err)
			http.Error(w, "scores unavailable", http.StatusInternalServerError)
		}
	})
	mux.HandleFunc("GET /api/scores", func(w http.ResponseWriter, r *http.Request) {
		limitN := loopconfig.LeaderboardSize
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 || n > loopconfig.ScoreListSize {
				http.Error(w, "limit must be between 1 and "+strconv.Itoa(loopconfig.ScoreListSize), http.StatusBadRequest)
				return
			}
			limitN = n
		}
		var entries []scoreboard.Entry
		var err error
		if r.URL.Query().Get("all") == "1" {
			entries, err = store.All(r.Context(), limitN)
		} else {
			entries, err = store.Top(r.Context(), limitN)
		}
		if err != nil {
			logger.Error("listing scores", "err", err)
			http.Error(w, "scores unavailable", http.StatusInternalServerError)
			return
		}
		if entries == nil {
			entries = []scoreboard.Entry{}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entries); err != nil {
			logger.Warn("writing scores", "err", err)
		}
	})

	var handler http.Handler = mux
	handler = rateLimit(limiter, handler)
	handler = handlers.CompressHandler(handler)
	handler = handlers.RecoveryHandler(handlers.RecoveryLogger(logger.StandardLog()))(handler)
	handler = handlers.CombinedLoggingHandler(logger.StandardLog().Writer(), handler)

	addr := net.JoinHostPort(host, port)
	srv := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("starting web server", "url", "http://"+addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-done

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}

func renderPage(w http.ResponseWriter, data pageData) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return page.Execute(w, data)
}

// rateLimit answers 429 to addresses over their request budget.
func rateLimit(l *limit.PerIP, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(r.RemoteAddr) {
			http.Error(w, "rate limit", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
