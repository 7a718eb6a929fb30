package sim

import (
	"fmt"

	"github.com/tomz197/planetwars/internal/object"
)

// EventKind identifies what happened in a match event.
type EventKind int

const (
	EventFleetLaunched EventKind = iota
	EventReinforced
	EventPlanetCaptured
	EventAttackRepelled
	EventAbilityActivated
	EventFleetsRecalled
	EventGameOver
)

// Event is one entry of the match log, used by the HUD and the headless runner.
type Event struct {
	Kind     EventKind
	Time     float64      // Game time when the event happened
	Side     object.Owner // Acting side (launcher, attacker, ability user, winner)
	Defender object.Owner // Previous planet owner for combat events
	Planet   object.PlanetID
	Name     string // Planet name, if any
	Ships    int
	Fleet    string // Fleet label, if any
	Ability  object.AbilityKind
}

// String renders the event as a short log line.
func (e Event) String() string {
	switch e.Kind {
	case EventFleetLaunched:
		return fmt.Sprintf("%s: %s launched %d ships -> %s", e.Fleet, e.Side, e.Ships, e.Name)
	case EventReinforced:
		return fmt.Sprintf("%s: %d ships reinforced %s", e.Fleet, e.Ships, e.Name)
	case EventPlanetCaptured:
		return fmt.Sprintf("%s captured %s from %s", e.Side, e.Name, e.Defender)
	case EventAttackRepelled:
		return fmt.Sprintf("%s held %s against %s", e.Defender, e.Name, e.Side)
	case EventAbilityActivated:
		if e.Planet.Valid() {
			return fmt.Sprintf("%s activated %s on %s", e.Side, e.Ability, e.Name)
		}
		return fmt.Sprintf("%s activated %s", e.Side, e.Ability)
	case EventFleetsRecalled:
		return fmt.Sprintf("%s recalled %d ships", e.Side, e.Ships)
	case EventGameOver:
		return fmt.Sprintf("%s wins", e.Side)
	default:
		return "unknown event"
	}
}

func (g *GameState) emit(e Event) {
	e.Time = g.gameTime
	g.events = append(g.events, e)
}

// DrainEvents returns the events recorded since the last call and clears the log.
func (g *GameState) DrainEvents() []Event {
	events := g.events
	g.events = nil
	return events
}
