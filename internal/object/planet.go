package object

import (
	"fmt"
	"math"

	"github.com/tomz197/planetwars/internal/loop/config"
	"github.com/tomz197/planetwars/internal/physics"
)

// productionEpsilon absorbs floating point drift when the accumulator is
// compared against the production interval.
const productionEpsilon = 1e-9

// Planet is a fixed map location that produces ships for its owner.
// Fields are unexported; the simulation mutates planets only through the
// methods below, which keep the ship count non-negative.
type Planet struct {
	id          PlanetID
	name        string
	x, y        float64
	radius      float64
	owner       Owner
	ships       int
	rate        int     // Ships per second, fixed at creation
	accumulator float64 // Seconds of production not yet turned into ships
}

// NewPlanet creates a planet. The production rate is derived from the radius.
func NewPlanet(id PlanetID, x, y, radius float64, owner Owner, ships int) *Planet {
	if ships < 0 {
		panic(fmt.Sprintf("planet %d created with negative ship count %d", id, ships))
	}
	return &Planet{
		id:     id,
		x:      x,
		y:      y,
		radius: radius,
		owner:  owner,
		ships:  ships,
		rate:   ProductionRate(radius),
	}
}

// ProductionRate maps a radius linearly onto the production range and rounds
// to the nearest integer, halves to even: radius 20 produces 1 ship/s,
// radius 45 produces 2 and radius 70 produces 4.
func ProductionRate(radius float64) int {
	span := float64(config.MaxPlanetRadius - config.MinPlanetRadius)
	rate := int(math.RoundToEven(config.MinProductionRate + (radius-config.MinPlanetRadius)/span*config.ProductionRateSpan))
	if rate < config.MinProductionRate {
		rate = config.MinProductionRate
	}
	if rate > config.MaxProductionRate {
		rate = config.MaxProductionRate
	}
	return rate
}

// ID returns the planet's stable index.
func (p *Planet) ID() PlanetID { return p.id }

// Name returns the planet's display name.
func (p *Planet) Name() string { return p.name }

// X returns the horizontal center coordinate.
func (p *Planet) X() float64 { return p.x }

// Y returns the vertical center coordinate.
func (p *Planet) Y() float64 { return p.y }

// Position returns the planet center.
func (p *Planet) Position() (x, y float64) { return p.x, p.y }

// Radius returns the planet radius.
func (p *Planet) Radius() float64 { return p.radius }

// Owner returns the side currently controlling the planet.
func (p *Planet) Owner() Owner { return p.owner }

// Ships returns the number of ships stationed on the planet.
func (p *Planet) Ships() int { return p.ships }

// ProductionRate returns the intrinsic ships per second.
func (p *Planet) ProductionRate() int { return p.rate }

// Accumulator returns the pending production time in seconds.
func (p *Planet) Accumulator() float64 { return p.accumulator }

// SetName renames the planet. Used by the map generator once names are drawn.
func (p *Planet) SetName(name string) { p.name = name }

// SetOwner hands the planet to a new owner.
func (p *Planet) SetOwner(o Owner) { p.owner = o }

// SetShips overwrites the ship count.
func (p *Planet) SetShips(n int) {
	if n < 0 {
		panic(fmt.Sprintf("planet %q: negative ship count %d", p.name, n))
	}
	p.ships = n
}

// AddShips adds n ships to the planet.
func (p *Planet) AddShips(n int) {
	if n < 0 {
		panic(fmt.Sprintf("planet %q: cannot add negative ships %d", p.name, n))
	}
	p.ships += n
}

// RemoveShips takes up to n ships off the planet and returns how many were removed.
func (p *Planet) RemoveShips(n int) int {
	if n > p.ships {
		n = p.ships
	}
	if n < 0 {
		n = 0
	}
	p.ships -= n
	return n
}

// Produce advances the production accumulator by dt seconds at the intrinsic
// rate scaled by multiplier, adding one ship per completed interval.
// A single large dt may produce several ships. Returns the number produced.
func (p *Planet) Produce(dt, multiplier float64) int {
	effective := float64(p.rate) * multiplier
	if effective <= 0 || dt <= 0 {
		return 0
	}
	interval := 1.0 / effective
	p.accumulator += dt

	produced := 0
	for p.accumulator+productionEpsilon >= interval {
		p.accumulator -= interval
		produced++
	}
	if p.accumulator < 0 {
		p.accumulator = 0
	}
	p.ships += produced
	return produced
}

// Snapshot copies the planet's observable state.
func (p *Planet) Snapshot() PlanetSnapshot {
	return PlanetSnapshot{id: p.id, name: p.name, x: p.x, y: p.y, radius: p.radius,
		owner: p.owner, ships: p.ships, rate: p.rate}
}

// Contains reports whether the point lies on the planet (distance <= radius).
func (p *Planet) Contains(x, y float64) bool {
	return physics.PointInCircle(x, y, p.x, p.y, p.radius)
}
