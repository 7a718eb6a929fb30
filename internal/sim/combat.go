package sim

import (
	"fmt"

	"github.com/tomz197/planetwars/internal/loop/config"
	"github.com/tomz197/planetwars/internal/object"
)

// resolveArrival applies a landed fleet to its target planet exactly once.
//
// Same owner: the ships reinforce the planet. Otherwise the attack force,
// halved by an active shield of the defender on that planet, is subtracted
// from the garrison. A negative result hands the planet to the attacker
// with the survivors, zero hands it over empty, and anything else means the
// defender holds.
func (g *GameState) resolveArrival(f *object.Fleet) {
	planet := g.Planet(f.Target())
	if planet == nil {
		panic(fmt.Sprintf("fleet %s targets unknown planet %d", f.Label(), f.Target()))
	}
	attacker := f.Owner()
	defender := planet.Owner()

	if attacker == defender {
		planet.AddShips(f.Ships())
		g.emit(Event{Kind: EventReinforced, Side: attacker, Defender: defender,
			Planet: planet.ID(), Name: planet.Name(), Ships: f.Ships(), Fleet: f.Label()})
		return
	}

	force := f.Ships()
	if set := g.abilities[defender]; set != nil && set.ShieldsPlanet(planet.ID()) {
		force /= 2
	}

	remaining := planet.Ships() - force
	if remaining <= 0 {
		planet.SetOwner(attacker)
		planet.SetShips(-remaining)

		g.recordBattle(attacker, defender)
		if defender == object.Player {
			g.penalties += config.PenaltyPlanetLost
		}
		g.emit(Event{Kind: EventPlanetCaptured, Side: attacker, Defender: defender,
			Planet: planet.ID(), Name: planet.Name(), Ships: -remaining, Fleet: f.Label()})
		g.log.Debug("planet captured", "planet", planet.Name(), "by", attacker, "from", defender, "ships", -remaining)
		g.hooks.AttackSucceeded()
		return
	}

	planet.SetShips(remaining)
	g.recordBattle(defender, attacker)
	if attacker == object.Player {
		g.penalties += config.PenaltyAttackRepelled
	}
	g.emit(Event{Kind: EventAttackRepelled, Side: attacker, Defender: defender,
		Planet: planet.ID(), Name: planet.Name(), Ships: remaining, Fleet: f.Label()})
	g.log.Debug("attack repelled", "planet", planet.Name(), "attacker", attacker, "left", remaining)
	g.hooks.AttackFailed()
}

// recordBattle credits a win and a loss to the playing sides involved.
// Neutral planets keep no statistics.
func (g *GameState) recordBattle(winner, loser object.Owner) {
	if t := g.stats[winner]; t != nil {
		t.BattlesWon++
	}
	if t := g.stats[loser]; t != nil {
		t.BattlesLost++
	}
}
