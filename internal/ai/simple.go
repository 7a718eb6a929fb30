package ai

import (
	"math"

	"github.com/tomz197/planetwars/internal/loop/config"
	"github.com/tomz197/planetwars/internal/object"
	"github.com/tomz197/planetwars/internal/physics"
)

// Params is the tuning of the Simple strategy.
type Params struct {
	DecisionInterval float64 // Seconds between attack decisions
	Aggression       float64 // Fraction of a source planet's ships sent
	MinShipsToAttack int     // Source planets below this never attack
	SafetyMargin     float64 // Required advantage over opponent-held targets
	ScoreTargets     bool    // Pick targets by value instead of distance
	UseAbilities     bool
	AbilityInterval  float64 // Seconds between ability checks
}

// ParamsFor returns the tuning table entry for a difficulty.
func ParamsFor(d Difficulty) Params {
	switch d {
	case Easy:
		return Params{
			DecisionInterval: 3.0,
			Aggression:       0.3,
			MinShipsToAttack: 20,
			SafetyMargin:     1.5,
		}
	case Hard:
		return Params{
			DecisionInterval: 1.0,
			Aggression:       0.7,
			MinShipsToAttack: 5,
			SafetyMargin:     1.2,
			ScoreTargets:     true,
			UseAbilities:     true,
			AbilityInterval:  config.AIAbilityInterval,
		}
	default:
		return Params{
			DecisionInterval: 2.0,
			Aggression:       0.5,
			MinShipsToAttack: 10,
			SafetyMargin:     1.2,
		}
	}
}

// Simple periodically sends a share of every strong planet's ships at the
// nearest (or, on hard, the most valuable) planet it does not own.
type Simple struct {
	side          object.Owner
	params        Params
	decisionTimer float64
	abilityTimer  float64
}

// Compile-time check that Simple implements Strategy.
var _ Strategy = (*Simple)(nil)

// NewSimple creates the strategy for side with the difficulty's tuning.
func NewSimple(d Difficulty, side object.Owner) *Simple {
	return NewSimpleWithParams(ParamsFor(d), side)
}

// NewSimpleWithParams creates the strategy with explicit tuning.
func NewSimpleWithParams(p Params, side object.Owner) *Simple {
	return &Simple{side: side, params: p}
}

// Side returns the side this strategy plays.
func (s *Simple) Side() object.Owner { return s.side }

// Params returns the active tuning.
func (s *Simple) Params() Params { return s.params }

// Decide implements Strategy.
func (s *Simple) Decide(v View, dt float64) []Action {
	var actions []Action

	s.decisionTimer += dt
	if s.decisionTimer >= s.params.DecisionInterval {
		s.decisionTimer = 0
		actions = append(actions, s.attacks(v)...)
	}

	if s.params.UseAbilities {
		s.abilityTimer += dt
		if s.abilityTimer >= s.params.AbilityInterval {
			s.abilityTimer = 0
			actions = append(actions, s.abilities(v)...)
		}
	}

	return actions
}

// attacks emits at most one SendFleet per eligible source planet.
func (s *Simple) attacks(v View) []Action {
	planets := v.Planets()

	var targets []object.PlanetReader
	for _, p := range planets {
		if p.Owner() != s.side {
			targets = append(targets, p)
		}
	}
	if len(targets) == 0 {
		return nil
	}

	var actions []Action
	for _, src := range planets {
		if src.Owner() != s.side || src.Ships() < s.params.MinShipsToAttack {
			continue
		}

		var target object.PlanetReader
		if s.params.ScoreTargets {
			target = s.bestTarget(src, targets)
		} else {
			target = nearest(src, targets)
		}

		if ships, ok := s.ShouldAttack(src, target); ok {
			actions = append(actions, SendFleet{Source: src.ID(), Target: target.ID(), Ships: ships})
		}
	}
	return actions
}

// ShouldAttack applies the attack gate and returns the number of ships to send.
// Neutral targets need strictly more ships than they hold; opponent targets
// need more than their garrison times the safety margin.
func (s *Simple) ShouldAttack(src, target object.PlanetReader) (int, bool) {
	ships := int(math.Floor(float64(src.Ships()) * s.params.Aggression))
	if ships <= 0 {
		return 0, false
	}
	if target.Owner() == object.Neutral {
		return ships, ships > target.Ships()
	}
	return ships, float64(ships) > float64(target.Ships())*s.params.SafetyMargin
}

// TargetScore rates a candidate target for the value-based selection.
func (s *Simple) TargetScore(src, target object.PlanetReader) float64 {
	score := float64(target.ProductionRate())/2.0*3.0 +
		math.Max(0, 1-distance(src, target)/1000)*1.0 +
		math.Max(0, 1-float64(target.Ships())/100)*1.5
	if target.Owner() == s.side.Opponent() {
		score *= 1.5
	}
	return score
}

func (s *Simple) bestTarget(src object.PlanetReader, targets []object.PlanetReader) object.PlanetReader {
	best := targets[0]
	bestScore := s.TargetScore(src, best)
	for _, t := range targets[1:] {
		if score := s.TargetScore(src, t); score > bestScore {
			best, bestScore = t, score
		}
	}
	return best
}

func nearest(src object.PlanetReader, targets []object.PlanetReader) object.PlanetReader {
	best := targets[0]
	bestDist := distance(src, best)
	for _, t := range targets[1:] {
		if d := distance(src, t); d < bestDist {
			best, bestDist = t, d
		}
	}
	return best
}

// abilities checks the surge, shield and recall heuristics.
func (s *Simple) abilities(v View) []Action {
	planets := v.Planets()
	fleets := v.Fleets()
	opponent := s.side.Opponent()

	var actions []Action

	if v.AbilityAvailable(s.side, object.ProductionSurge) {
		strong := 0
		for _, p := range planets {
			if p.Owner() == s.side && p.ProductionRate() >= config.AISurgeMinRate {
				strong++
			}
		}
		if strong >= config.AISurgeMinPlanets {
			actions = append(actions, ActivateAbility{Kind: object.ProductionSurge, Target: object.NoPlanet})
		}
	}

	if v.AbilityAvailable(s.side, object.Shield) {
		var best object.PlanetReader
		for _, p := range planets {
			if p.Owner() == s.side && (best == nil || p.ProductionRate() > best.ProductionRate()) {
				best = p
			}
		}
		if best != nil && best.Ships() < config.AIShieldMaxShips && threatened(best, fleets, opponent) {
			actions = append(actions, ActivateAbility{Kind: object.Shield, Target: best.ID()})
		}
	}

	if v.AbilityAvailable(s.side, object.Recall) {
		own, theirs := 0, 0
		inTransit := 0
		for _, p := range planets {
			switch p.Owner() {
			case s.side:
				own += p.Ships()
			case opponent:
				theirs += p.Ships()
			}
		}
		for _, f := range fleets {
			switch f.Owner() {
			case s.side:
				own += f.Ships()
				inTransit++
			case opponent:
				theirs += f.Ships()
			}
		}
		if float64(theirs) > float64(own)*config.AIRecallStrengthFactor && inTransit >= config.AIRecallMinFleets {
			actions = append(actions, ActivateAbility{Kind: object.Recall, Target: object.NoPlanet})
		}
	}

	return actions
}

func distance(a, b object.PlanetReader) float64 {
	return physics.Distance(a.X(), a.Y(), b.X(), b.Y())
}

// threatened reports whether any fleet of the given owner is within the
// shield trigger radius of the planet.
func threatened(p object.PlanetReader, fleets []object.FleetReader, owner object.Owner) bool {
	for _, f := range fleets {
		if f.Owner() != owner {
			continue
		}
		fx, fy := f.Position()
		if physics.Distance(fx, fy, p.X(), p.Y()) <= config.AIShieldThreatRadius {
			return true
		}
	}
	return false
}
