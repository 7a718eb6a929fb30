// Package mapgen builds mirrored starting layouts for a match.
//
// Planets are placed by bounded rejection sampling on the left half of the
// map and mirrored onto the right half, with one extra planet on the
// vertical centerline. When the attempt budget runs out the generator
// returns fewer planets than the size class asks for.
package mapgen

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/tomz197/planetwars/internal/loop/config"
	"github.com/tomz197/planetwars/internal/object"
	"github.com/tomz197/planetwars/internal/physics"
)

// Size is a map-size class.
type Size int

const (
	Small Size = iota
	Medium
	Large
)

// ErrUnknownSize is returned when parsing an unrecognised size name.
var ErrUnknownSize = errors.New("unknown map size")

// Sizes lists every size class in menu order.
var Sizes = []Size{Small, Medium, Large}

// String returns the lowercase name of the size class.
func (s Size) String() string {
	switch s {
	case Small:
		return "small"
	case Large:
		return "large"
	default:
		return "medium"
	}
}

// PlanetCount returns the nominal number of planets for the size class.
func (s Size) PlanetCount() int {
	switch s {
	case Small:
		return config.MapSizeSmall
	case Large:
		return config.MapSizeLarge
	default:
		return config.MapSizeMedium
	}
}

// ParseSize converts a size name ("small", "medium", "large") into a Size.
func ParseSize(name string) (Size, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "small":
		return Small, nil
	case "medium":
		return Medium, nil
	case "large":
		return Large, nil
	}
	return Medium, fmt.Errorf("%w: %q", ErrUnknownSize, name)
}

// circle is a placed planet candidate.
type circle struct {
	x, y, r float64
}

// Generate produces the planets for a new match on a width x height map.
//
// The returned slice holds the left-side planets in placement order, then
// their mirrors in the same order, then the centerline planet. Each planet's
// ID is its index. The first left planet belongs to the Player and its
// mirror to the Enemy. Every pair of planets is at least MinPlanetGap apart,
// rim to rim.
func Generate(width, height float64, size Size, rng *rand.Rand) []*object.Planet {
	perSide := (size.PlanetCount() - 1) / 2
	margin := float64(config.MapMargin)
	gap := float64(config.MinPlanetGap)

	// Cells hold at least one full interaction distance.
	grid := physics.NewSpatialGrid(width, height, 2*config.MaxPlanetRadius+gap)
	var placed []circle

	place := func(c circle) {
		grid.Insert(c.x, c.y, len(placed))
		placed = append(placed, c)
	}
	isClear := func(c circle) bool {
		ok := true
		grid.QueryAround(c.x, c.y, func(i int) bool {
			p := placed[i]
			if !physics.CirclesSeparated(c.x, c.y, c.r, p.x, p.y, p.r, gap) {
				ok = false
				return true
			}
			return false
		})
		return ok
	}

	// The centerline planet goes first so left candidates and their mirrors
	// are checked against it.
	center := circle{
		x: width / 2,
		y: float64(randRange(rng, int(margin), int(height-margin))),
		r: float64(randRange(rng, config.MinPlanetRadius, config.MaxPlanetRadius)),
	}
	place(center)

	var left []circle
	minX, maxX := int(margin), int(width/2-margin)
	minY, maxY := int(margin), int(height-margin)
	if maxX >= minX && maxY >= minY {
		for attempts := 0; len(left) < perSide && attempts < config.PlacementAttempts; attempts++ {
			c := circle{
				x: float64(rng.Intn(maxX-minX+1) + minX),
				y: float64(rng.Intn(maxY-minY+1) + minY),
				r: float64(randRange(rng, config.MinPlanetRadius, config.MaxPlanetRadius)),
			}
			if physics.PointInRect(c.x, c.y, 0, 0, config.UIReservedWidth, config.UIReservedHeight) {
				continue
			}

			m := circle{x: physics.MirrorX(c.x, width), y: c.y, r: c.r}
			if !physics.CirclesSeparated(c.x, c.y, c.r, m.x, m.y, m.r, gap) || !isClear(c) || !isClear(m) {
				continue
			}

			place(c)
			place(m)
			left = append(left, c)
		}
	}

	planets := make([]*object.Planet, 0, 2*len(left)+1)
	for i, c := range left {
		owner, ships := object.Neutral, randRange(rng, config.NeutralShipsMin, config.NeutralShipsMax)
		if i == 0 {
			owner, ships = object.Player, config.StartingShips
		}
		planets = append(planets, object.NewPlanet(object.PlanetID(len(planets)), c.x, c.y, c.r, owner, ships))
	}
	for i, c := range left {
		owner, ships := object.Neutral, randRange(rng, config.NeutralShipsMin, config.NeutralShipsMax)
		if i == 0 {
			owner, ships = object.Enemy, config.StartingShips
		}
		x := physics.MirrorX(c.x, width)
		planets = append(planets, object.NewPlanet(object.PlanetID(len(planets)), x, c.y, c.r, owner, ships))
	}
	planets = append(planets, object.NewPlanet(object.PlanetID(len(planets)), center.x, center.y, center.r,
		object.Neutral, randRange(rng, config.CenterShipsMin, config.CenterShipsMax)))

	names := object.NewPlanetNamer(rng).UniqueNames(len(planets))
	for i, p := range planets {
		p.SetName(names[i])
	}
	return planets
}

// randRange returns a uniform integer in [lo, hi]. An empty range yields its midpoint.
func randRange(rng *rand.Rand, lo, hi int) int {
	if hi < lo {
		return (lo + hi) / 2
	}
	return lo + rng.Intn(hi-lo+1)
}
