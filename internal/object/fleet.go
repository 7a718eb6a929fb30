package object

import (
	"fmt"

	"github.com/tomz197/planetwars/internal/loop/config"
	"github.com/tomz197/planetwars/internal/physics"
)

// Fleet is a group of ships travelling between two planets.
type Fleet struct {
	label   string
	owner   Owner
	origin  PlanetID
	target  PlanetID
	ships   int
	x, y    float64 // Current position
	destX   float64 // Target planet center
	destY   float64
	vx, vy  float64 // Fixed velocity, units per second
	arrived bool
}

// NewFleet launches ships from origin towards target. The velocity is fixed
// at creation: the unit direction between the two centers times FleetSpeed,
// or zero when both centers coincide.
func NewFleet(label string, owner Owner, origin, target *Planet, ships int) *Fleet {
	if ships <= 0 {
		panic(fmt.Sprintf("fleet %s created with %d ships", label, ships))
	}

	ox, oy := origin.Position()
	tx, ty := target.Position()
	f := &Fleet{
		label:  label,
		owner:  owner,
		origin: origin.ID(),
		target: target.ID(),
		ships:  ships,
		x:      ox,
		y:      oy,
		destX:  tx,
		destY:  ty,
	}

	dist := physics.Distance(ox, oy, tx, ty)
	if dist > 0 {
		f.vx = (tx - ox) / dist * config.FleetSpeed
		f.vy = (ty - oy) / dist * config.FleetSpeed
	}
	return f
}

// Label returns the human-readable fleet name.
func (f *Fleet) Label() string { return f.label }

// Owner returns the side that launched the fleet.
func (f *Fleet) Owner() Owner { return f.owner }

// Origin returns the planet the fleet was launched from.
func (f *Fleet) Origin() PlanetID { return f.origin }

// Target returns the destination planet.
func (f *Fleet) Target() PlanetID { return f.target }

// Ships returns the fleet size.
func (f *Fleet) Ships() int { return f.ships }

// Position returns the current fleet position.
func (f *Fleet) Position() (x, y float64) { return f.x, f.y }

// Velocity returns the fixed velocity vector.
func (f *Fleet) Velocity() (vx, vy float64) { return f.vx, f.vy }

// Arrived reports whether the fleet has reached its destination.
func (f *Fleet) Arrived() bool { return f.arrived }

// RemainingDistance returns the distance left to the destination point.
func (f *Fleet) RemainingDistance() float64 {
	return physics.Distance(f.x, f.y, f.destX, f.destY)
}

// Snapshot copies the fleet's observable state.
func (f *Fleet) Snapshot() FleetSnapshot {
	return FleetSnapshot{label: f.label, owner: f.owner, origin: f.origin, target: f.target,
		ships: f.ships, x: f.x, y: f.y}
}

// Advance moves the fleet by velocity*dt and reports whether it has arrived.
// A fleet arrives once it is closer than ArrivalDistance to the destination;
// a step that would carry it past the destination snaps it there instead.
// Arrived fleets no longer move.
func (f *Fleet) Advance(dt float64) bool {
	if f.arrived {
		return true
	}

	remaining := f.RemainingDistance()
	step := config.FleetSpeed * dt
	if remaining < config.ArrivalDistance || (dt > 0 && step >= remaining) {
		f.x, f.y = f.destX, f.destY
		f.arrived = true
		return true
	}

	f.x += f.vx * dt
	f.y += f.vy * dt

	if f.RemainingDistance() < config.ArrivalDistance {
		f.arrived = true
	}
	return f.arrived
}
