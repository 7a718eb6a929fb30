// Package scoreboard persists finished matches in an embedded sqlite file.
package scoreboard

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/tomz197/planetwars/internal/loop/config"
	"github.com/tomz197/planetwars/internal/sim"
)

// Entry is one recorded match.
type Entry struct {
	ID                string    `json:"id"`
	PlayerName        string    `json:"player_name"`
	Score             int       `json:"score"`
	PlanetsControlled int       `json:"planets_controlled"`
	ShipsProduced     int       `json:"ships_produced"`
	BattlesWon        int       `json:"battles_won"`
	BattlesLost       int       `json:"battles_lost"`
	Victory           bool      `json:"victory"`
	Cheater           bool      `json:"is_cheater"`
	GameTime          float64   `json:"game_time"`
	Difficulty        string    `json:"difficulty"`
	MapSize           string    `json:"map_size"`
	CreatedAt         time.Time `json:"created_at"`
}

// DisplayScore returns the score as shown in tables. Cheater runs show no number.
func (e Entry) DisplayScore() string {
	if e.Cheater {
		return "CHEATER"
	}
	return strconv.Itoa(e.Score)
}

// EntryFromResult builds the entry recorded when a match ends.
func EntryFromResult(player string, cfg sim.Config, r sim.Result) Entry {
	return Entry{
		PlayerName:        player,
		Score:             r.Score,
		PlanetsControlled: r.PlanetsControlled,
		ShipsProduced:     r.ShipsProduced,
		BattlesWon:        r.BattlesWon,
		BattlesLost:       r.BattlesLost,
		Victory:           r.Victory,
		Cheater:           r.Cheater,
		GameTime:          r.GameTime,
		Difficulty:        cfg.Difficulty.String(),
		MapSize:           cfg.MapSize.String(),
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS scores (
	id                 TEXT PRIMARY KEY,
	player_name        TEXT    NOT NULL,
	score              INTEGER NOT NULL,
	planets_controlled INTEGER NOT NULL DEFAULT 0,
	ships_produced     INTEGER NOT NULL DEFAULT 0,
	battles_won        INTEGER NOT NULL DEFAULT 0,
	battles_lost       INTEGER NOT NULL DEFAULT 0,
	victory            BOOLEAN NOT NULL DEFAULT 0,
	is_cheater         BOOLEAN NOT NULL DEFAULT 0,
	game_time          REAL    NOT NULL DEFAULT 0,
	difficulty         TEXT    NOT NULL DEFAULT '',
	map_size           TEXT    NOT NULL DEFAULT '',
	created_at         INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS scores_rank ON scores (is_cheater, score DESC, created_at);
`

const columns = `id, player_name, score, planets_controlled, ships_produced, battles_won,
	battles_lost, victory, is_cheater, game_time, difficulty, map_size, created_at`

// Store is the score table. It is safe for concurrent use.
type Store struct {
	db  *sql.DB
	log *log.Logger
}

// Open opens or creates the score database at path. ":memory:" gives a
// private in-memory table.
func Open(path string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open scoreboard %s: %w", path, err)
	}
	// A single connection serialises writers and keeps :memory: databases alive.
	db.SetMaxOpenConns(1)

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL on %s: %w", path, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create scoreboard schema: %w", err)
	}

	logger.Debug("scoreboard opened", "path", path)
	return &Store{db: db, log: logger}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add records an entry. A missing ID or timestamp is filled in; the stored
// entry is returned.
func (s *Store) Add(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scores (`+columns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.PlayerName, e.Score, e.PlanetsControlled, e.ShipsProduced, e.BattlesWon,
		e.BattlesLost, e.Victory, e.Cheater, e.GameTime, e.Difficulty, e.MapSize, e.CreatedAt.UnixNano())
	if err != nil {
		return Entry{}, fmt.Errorf("add score for %s: %w", e.PlayerName, err)
	}

	s.log.Info("score recorded", "player", e.PlayerName, "score", e.DisplayScore(), "victory", e.Victory)
	return e, nil
}

// Top returns the best non-cheater entries, highest score first and earlier
// entries first on ties. A non-positive limit means LeaderboardSize.
func (s *Store) Top(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = config.LeaderboardSize
	}
	return s.query(ctx,
		`SELECT `+columns+` FROM scores WHERE is_cheater = 0
		ORDER BY score DESC, created_at ASC LIMIT ?`, limit)
}

// All returns valid entries followed by cheater entries, each group ordered
// like Top. A non-positive limit means ScoreListSize.
func (s *Store) All(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = config.ScoreListSize
	}
	return s.query(ctx,
		`SELECT `+columns+` FROM scores
		ORDER BY is_cheater ASC, score DESC, created_at ASC LIMIT ?`, limit)
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			created int64
		)
		if err := rows.Scan(&e.ID, &e.PlayerName, &e.Score, &e.PlanetsControlled, &e.ShipsProduced,
			&e.BattlesWon, &e.BattlesLost, &e.Victory, &e.Cheater, &e.GameTime,
			&e.Difficulty, &e.MapSize, &created); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		e.CreatedAt = time.Unix(0, created)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read scores: %w", err)
	}
	return entries, nil
}
