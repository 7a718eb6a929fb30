package client

import (
	"math"

	"github.com/tomz197/planetwars/internal/loop/config"
	"github.com/tomz197/planetwars/internal/object"
	"github.com/tomz197/planetwars/internal/sim"
)

// controls is the keyboard command state of the Player: a source planet
// (the match selection), a target planet and the share of ships to send.
type controls struct {
	target   object.PlanetID
	fraction float64
}

func newControls() controls {
	return controls{target: object.NoPlanet, fraction: config.DefaultSendFraction}
}

// reset clears the target and restores the default fraction.
func (c *controls) reset() {
	*c = newControls()
}

// adjustFraction moves the send slider by steps, clamped to its range.
func (c *controls) adjustFraction(steps int) {
	f := c.fraction + float64(steps)*config.SendFractionStep
	f = math.Round(f*10) / 10
	c.fraction = math.Max(config.MinSendFraction, math.Min(config.MaxSendFraction, f))
}

// cycleSource selects the next (dir > 0) or previous Player planet.
func (c *controls) cycleSource(g *sim.GameState, dir int) {
	var owned []object.PlanetID
	for _, p := range g.Planets() {
		if p.Owner() == object.Player {
			owned = append(owned, p.ID())
		}
	}
	g.Select(cycle(owned, g.SelectedPlanet(), dir))
}

// cycleTarget selects the next or previous planet other than the source.
func (c *controls) cycleTarget(g *sim.GameState, dir int) {
	var ids []object.PlanetID
	for _, p := range g.Planets() {
		if p.ID() != g.SelectedPlanet() {
			ids = append(ids, p.ID())
		}
	}
	c.target = cycle(ids, c.target, dir)
}

// cycle returns the id after (or before) cur in ids, wrapping around.
// When cur is not in ids the first (or last) id is returned.
func cycle(ids []object.PlanetID, cur object.PlanetID, dir int) object.PlanetID {
	if len(ids) == 0 {
		return object.NoPlanet
	}
	for i, id := range ids {
		if id == cur {
			n := len(ids)
			return ids[((i+dir)%n+n)%n]
		}
	}
	if dir < 0 {
		return ids[len(ids)-1]
	}
	return ids[0]
}

// sync drops a source the Player lost and a target equal to the source.
func (c *controls) sync(g *sim.GameState) {
	if src := g.Planet(g.SelectedPlanet()); src != nil && src.Owner() != object.Player {
		g.Select(object.NoPlanet)
	}
	if c.target == g.SelectedPlanet() {
		c.target = object.NoPlanet
	}
}

// send dispatches the slider share of the source's ships to the target and
// clears the selection. Returns whether a fleet was launched.
func (c *controls) send(g *sim.GameState) bool {
	src := g.Planet(g.SelectedPlanet())
	if src == nil || src.Owner() != object.Player || g.Planet(c.target) == nil {
		return false
	}
	ships := sim.SendAmount(src.Ships(), c.fraction)
	if ships <= 0 || !g.SendFleet(src.ID(), c.target, ships) {
		return false
	}
	g.Select(object.NoPlanet)
	return true
}

// shield puts the Player's shield on the selected source.
func (c *controls) shield(g *sim.GameState) bool {
	src := g.SelectedPlanet()
	if !src.Valid() {
		return false
	}
	return g.ActivateShield(src, object.Player)
}
