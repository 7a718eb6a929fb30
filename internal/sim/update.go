package sim

import (
	"github.com/tomz197/planetwars/internal/ai"
	"github.com/tomz197/planetwars/internal/object"
)

// sides lists the two playing sides in update order.
var sides = [2]object.Owner{object.Player, object.Enemy}

// Update advances the match by dt seconds:
//  1. game time
//  2. abilities of both sides
//  3. strategy decisions, applied immediately
//  4. fleet movement
//  5. arrival resolution in launch order
//  6. production, including active surges
//
// Update does nothing once the match is over.
func (g *GameState) Update(dt float64) {
	if g.phase != PhaseRunning || dt < 0 {
		return
	}

	g.gameTime += dt

	for _, side := range sides {
		g.abilities[side].Update(dt)
	}

	view := strategyView{g}
	if g.playerAI != nil {
		g.applyActions(object.Player, g.playerAI.Decide(view, dt))
	}
	g.applyActions(object.Enemy, g.enemyAI.Decide(view, dt))

	for _, f := range g.fleets {
		f.Advance(dt)
	}

	kept := g.fleets[:0]
	for _, f := range g.fleets {
		if f.Arrived() {
			g.resolveArrival(f)
			continue
		}
		kept = append(kept, f)
	}
	clear(g.fleets[len(kept):])
	g.fleets = kept

	g.produce(dt)
}

// produce runs planet production for owned planets. Neutral planets never grow.
func (g *GameState) produce(dt float64) {
	multipliers := map[object.Owner]float64{
		object.Player: g.abilities[object.Player].ProductionMultiplier(),
		object.Enemy:  g.abilities[object.Enemy].ProductionMultiplier(),
	}
	for _, p := range g.planets {
		owner := p.Owner()
		if !owner.IsSide() {
			continue
		}
		g.stats[owner].ShipsProduced += p.Produce(dt, multipliers[owner])
	}
}

// applyActions validates and executes strategy requests for side.
func (g *GameState) applyActions(side object.Owner, actions []ai.Action) {
	for _, a := range actions {
		switch act := a.(type) {
		case ai.SendFleet:
			src := g.Planet(act.Source)
			if src == nil || src.Owner() != side || g.Planet(act.Target) == nil {
				g.log.Debug("dropping invalid send", "side", side, "source", act.Source, "target", act.Target)
				continue
			}
			g.SendFleet(act.Source, act.Target, act.Ships)
		case ai.ActivateAbility:
			switch act.Kind {
			case object.Recall:
				g.ActivateRecall(side)
			case object.ProductionSurge:
				g.ActivateProductionSurge(side)
			case object.Shield:
				g.ActivateShield(act.Target, side)
			}
		}
	}
}
