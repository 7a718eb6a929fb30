// Package object defines the entities of a match: planets, fleets, abilities
// and the short-lived visual effects drawn on top of them.
package object

import (
	"time"

	"github.com/tomz197/planetwars/internal/draw"
)

// Owner identifies which side controls a planet or fleet.
type Owner int

const (
	Neutral Owner = iota
	Player
	Enemy
)

// String returns the display name of the owner.
func (o Owner) String() string {
	switch o {
	case Player:
		return "Player"
	case Enemy:
		return "Enemy"
	default:
		return "Neutral"
	}
}

// IsSide reports whether the owner is one of the two playing sides.
func (o Owner) IsSide() bool {
	return o == Player || o == Enemy
}

// Opponent returns the other playing side. Neutral has no opponent and maps to itself.
func (o Owner) Opponent() Owner {
	switch o {
	case Player:
		return Enemy
	case Enemy:
		return Player
	default:
		return Neutral
	}
}

// PlanetID is a stable index into the planet slice of a match.
type PlanetID int

// NoPlanet marks an empty planet reference.
const NoPlanet PlanetID = -1

// Valid reports whether the id refers to a planet at all.
func (id PlanetID) Valid() bool {
	return id >= 0
}

// PlanetReader is the read-only side of a planet, handed to code that must
// observe the match without changing it.
type PlanetReader interface {
	ID() PlanetID
	Name() string
	X() float64
	Y() float64
	Radius() float64
	Owner() Owner
	Ships() int
	ProductionRate() int
}

// FleetReader is the read-only side of a fleet.
type FleetReader interface {
	Label() string
	Owner() Owner
	Origin() PlanetID
	Target() PlanetID
	Ships() int
	Position() (x, y float64)
}

var (
	_ PlanetReader = (*Planet)(nil)
	_ PlanetReader = PlanetSnapshot{}
	_ FleetReader  = (*Fleet)(nil)
	_ FleetReader  = FleetSnapshot{}
)

// PlanetSnapshot is a copy of a planet's observable state at one instant.
type PlanetSnapshot struct {
	id     PlanetID
	name   string
	x, y   float64
	radius float64
	owner  Owner
	ships  int
	rate   int
}

func (s PlanetSnapshot) ID() PlanetID        { return s.id }
func (s PlanetSnapshot) Name() string        { return s.name }
func (s PlanetSnapshot) X() float64          { return s.x }
func (s PlanetSnapshot) Y() float64          { return s.y }
func (s PlanetSnapshot) Radius() float64     { return s.radius }
func (s PlanetSnapshot) Owner() Owner        { return s.owner }
func (s PlanetSnapshot) Ships() int          { return s.ships }
func (s PlanetSnapshot) ProductionRate() int { return s.rate }

// FleetSnapshot is a copy of a fleet's observable state at one instant.
type FleetSnapshot struct {
	label          string
	owner          Owner
	origin, target PlanetID
	ships          int
	x, y           float64
}

func (s FleetSnapshot) Label() string            { return s.label }
func (s FleetSnapshot) Owner() Owner             { return s.owner }
func (s FleetSnapshot) Origin() PlanetID         { return s.origin }
func (s FleetSnapshot) Target() PlanetID         { return s.target }
func (s FleetSnapshot) Ships() int               { return s.ships }
func (s FleetSnapshot) Position() (x, y float64) { return s.x, s.y }

// UpdateContext provides all the information an effect needs during update.
type UpdateContext struct {
	Delta time.Duration
}

// DrawContext provides drawing resources for effects.
type DrawContext struct {
	Canvas *draw.Canvas // High-resolution canvas (2x vertical)
}

// Effect is a drawable and updatable visual decoration. Effects never touch
// match state; they only live in the renderer.
type Effect interface {
	// Update advances the effect. Returns true if the effect should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw draws the effect onto the canvas.
	Draw(ctx DrawContext) error
}

// Releasable is implemented by pooled effects that can be returned to a pool.
type Releasable interface {
	// Release returns the effect to its pool for reuse.
	Release()
}

// ReleaseEffect releases an effect back to its pool if it implements Releasable.
func ReleaseEffect(e Effect) {
	if r, ok := e.(Releasable); ok {
		r.Release()
	}
}

// ShouldRenderBlink returns true if an element with remaining timed state
// should be rendered this frame (for blinking effect).
// Returns true always if remainingTime <= 0.
func ShouldRenderBlink(remainingTime float64, frequency float64) bool {
	if remainingTime <= 0 {
		return true
	}
	phase := int(remainingTime * frequency)
	return phase%2 != 0
}
