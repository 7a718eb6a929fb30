package sim

import (
	"github.com/tomz197/planetwars/internal/loop/config"
	"github.com/tomz197/planetwars/internal/object"
)

// Tracker holds the cumulative battle statistics of one side.
type Tracker struct {
	ShipsProduced int
	BattlesWon    int
	BattlesLost   int
}

// SideStats is the live summary of a side shown in the HUD.
type SideStats struct {
	PlanetCount    int
	TotalShips     int // Planets plus fleets in transit
	ProductionRate int // Ships per second including an active surge
}

// Stats returns the cumulative counters of a side.
func (g *GameState) Stats(side object.Owner) Tracker {
	if t := g.stats[side]; t != nil {
		return *t
	}
	return Tracker{}
}

// PlayerStats aggregates planets, ships and effective production of a side.
func (g *GameState) PlayerStats(side object.Owner) SideStats {
	var s SideStats
	base := 0
	for _, p := range g.planets {
		if p.Owner() != side {
			continue
		}
		s.PlanetCount++
		s.TotalShips += p.Ships()
		base += p.ProductionRate()
	}
	for _, f := range g.fleets {
		if f.Owner() == side {
			s.TotalShips += f.Ships()
		}
	}

	mult := 1.0
	if set := g.abilities[side]; set != nil {
		mult = set.ProductionMultiplier()
	}
	s.ProductionRate = int(float64(base) * mult)
	return s
}

// TimeBonus returns the bonus for finishing a match after gameTime seconds.
func TimeBonus(gameTime float64) int {
	for _, b := range config.TimeBonuses {
		if gameTime < b.Seconds {
			return b.Bonus
		}
	}
	return 0
}

// Score combines tactical penalties and game time into a victory score:
// the base score less penalties, floored at zero, plus the time bonus.
func Score(penalties int, gameTime float64) int {
	return max(0, config.BaseScore-penalties) + TimeBonus(gameTime)
}

// FinalScore returns the victory score of the match. Defeats are scored 0
// by the driver, not by this formula.
func (g *GameState) FinalScore() int {
	return Score(g.penalties, g.gameTime)
}

// Result is the summary a driver stores when a match ends.
type Result struct {
	MatchID           string
	Victory           bool
	Cheater           bool
	Score             int
	GameTime          float64
	PlanetsControlled int
	ShipsProduced     int
	BattlesWon        int
	BattlesLost       int
}

// Result summarises a finished match. Victories read the Player's counters
// and score FinalScore; defeats score 0 and read the Enemy's counters.
func (g *GameState) Result() Result {
	r := Result{
		MatchID:  g.id.String(),
		Victory:  g.phase == PhaseVictory,
		Cheater:  g.cheated,
		GameTime: g.gameTime,
	}

	side := object.Enemy
	if r.Victory {
		side = object.Player
		r.Score = g.FinalScore()
	}
	t := g.Stats(side)
	r.PlanetsControlled = g.PlayerStats(side).PlanetCount
	r.ShipsProduced = t.ShipsProduced
	r.BattlesWon = t.BattlesWon
	r.BattlesLost = t.BattlesLost
	return r
}

// CheckGameOver updates and returns the match phase. Victory when the Enemy
// holds no planet and has no fleet in transit, defeat in the symmetric case.
// The victory or defeat hook fires once, on the transition.
func (g *GameState) CheckGameOver() Phase {
	if g.phase != PhaseRunning {
		return g.phase
	}

	switch {
	case g.eliminated(object.Enemy):
		g.phase = PhaseVictory
		g.emit(Event{Kind: EventGameOver, Side: object.Player, Planet: object.NoPlanet})
		g.log.Info("victory", "time", g.gameTime, "score", g.FinalScore(), "cheated", g.cheated)
		g.hooks.GameVictory()
	case g.eliminated(object.Player):
		g.phase = PhaseDefeat
		g.emit(Event{Kind: EventGameOver, Side: object.Enemy, Planet: object.NoPlanet})
		g.log.Info("defeat", "time", g.gameTime)
		g.hooks.GameDefeat()
	}
	return g.phase
}

// eliminated reports whether side has neither planets nor fleets.
func (g *GameState) eliminated(side object.Owner) bool {
	for _, p := range g.planets {
		if p.Owner() == side {
			return false
		}
	}
	for _, f := range g.fleets {
		if f.Owner() == side {
			return false
		}
	}
	return true
}
