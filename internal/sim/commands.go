package sim

import (
	"math"

	"github.com/tomz197/planetwars/internal/object"
)

// SendAmount returns how many of ships a send at the given fraction
// dispatches: floor(ships*fraction), at least 1. Zero when there are no ships.
func SendAmount(ships int, fraction float64) int {
	if ships <= 0 {
		return 0
	}
	return max(1, int(math.Floor(float64(ships)*fraction+1e-9)))
}

// SendFleet launches ships from source towards target on behalf of the
// source's owner. The count is clamped to the ships available; nothing
// happens if no ships remain after clamping or either planet is unknown.
// Callers are expected to check that the source belongs to the commanding side.
func (g *GameState) SendFleet(source, target object.PlanetID, ships int) bool {
	if g.phase.Terminal() {
		return false
	}
	src, dst := g.Planet(source), g.Planet(target)
	if src == nil || dst == nil {
		return false
	}
	if ships > src.Ships() {
		ships = src.Ships()
	}
	if ships <= 0 {
		return false
	}

	src.RemoveShips(ships)
	f := object.NewFleet(g.labeler.Next(), src.Owner(), src, dst, ships)
	g.fleets = append(g.fleets, f)

	g.emit(Event{Kind: EventFleetLaunched, Side: f.Owner(), Planet: dst.ID(), Name: dst.Name(),
		Ships: ships, Fleet: f.Label()})
	g.log.Debug("fleet launched", "fleet", f.Label(), "side", f.Owner(), "from", src.Name(), "to", dst.Name(), "ships", ships)
	g.hooks.FleetLaunched()
	return true
}

// ActivateRecall consumes side's recall and returns every fleet of that side
// to its origin planet without resolving an arrival.
func (g *GameState) ActivateRecall(side object.Owner) bool {
	set := g.abilities[side]
	if set == nil || !set.Get(object.Recall).Activate(object.NoPlanet) {
		return false
	}

	recalled := 0
	kept := g.fleets[:0]
	for _, f := range g.fleets {
		if f.Owner() != side {
			kept = append(kept, f)
			continue
		}
		g.Planet(f.Origin()).AddShips(f.Ships())
		recalled += f.Ships()
	}
	clear(g.fleets[len(kept):])
	g.fleets = kept

	g.emit(Event{Kind: EventFleetsRecalled, Side: side, Planet: object.NoPlanet, Ships: recalled, Ability: object.Recall})
	g.log.Info("recall", "side", side, "ships", recalled)
	return true
}

// ActivateProductionSurge consumes side's surge, doubling its production for a while.
func (g *GameState) ActivateProductionSurge(side object.Owner) bool {
	set := g.abilities[side]
	if set == nil || !set.Get(object.ProductionSurge).Activate(object.NoPlanet) {
		return false
	}
	g.emit(Event{Kind: EventAbilityActivated, Side: side, Planet: object.NoPlanet, Ability: object.ProductionSurge})
	g.log.Info("production surge", "side", side)
	return true
}

// ActivateShield consumes side's shield on planet. It fails without any
// state change unless side currently owns the planet.
func (g *GameState) ActivateShield(planet object.PlanetID, side object.Owner) bool {
	set := g.abilities[side]
	p := g.Planet(planet)
	if set == nil || p == nil || p.Owner() != side {
		return false
	}
	if !set.Get(object.Shield).Activate(planet) {
		return false
	}
	g.emit(Event{Kind: EventAbilityActivated, Side: side, Planet: planet, Name: p.Name(), Ability: object.Shield})
	g.log.Info("shield", "side", side, "planet", p.Name())
	return true
}

// ForceVictory ends the match in the Player's favour by neutralising every
// Enemy planet and dropping Enemy fleets. The match is flagged as cheated.
func (g *GameState) ForceVictory() {
	if g.phase.Terminal() {
		return
	}
	for _, p := range g.planets {
		if p.Owner() == object.Enemy {
			p.SetOwner(object.Neutral)
		}
	}
	kept := g.fleets[:0]
	for _, f := range g.fleets {
		if f.Owner() != object.Enemy {
			kept = append(kept, f)
		}
	}
	clear(g.fleets[len(kept):])
	g.fleets = kept
	g.cheated = true
	g.log.Warn("victory forced")
}
