package object

import (
	"fmt"
	"math/rand"

	"github.com/tomz197/planetwars/internal/loop/config"
)

// fleetLabels is the cyclic sequence used to name fleets.
var fleetLabels = []string{
	"Alpha", "Beta", "Gamma", "Delta", "Epsilon", "Zeta", "Eta", "Theta",
	"Iota", "Kappa", "Lambda", "Mu", "Nu", "Xi", "Omicron", "Pi",
	"Rho", "Sigma", "Tau", "Upsilon", "Phi", "Chi", "Psi", "Omega",
}

// FleetLabeler hands out fleet labels in order, wrapping after the last one.
// Each match owns its own labeler.
type FleetLabeler struct {
	next int
}

// Next returns the next label in the sequence.
func (l *FleetLabeler) Next() string {
	label := fleetLabels[l.next%len(fleetLabels)]
	l.next++
	return label
}

// Reset restarts the sequence at the first label.
func (l *FleetLabeler) Reset() {
	l.next = 0
}

// Word lists for planet names.
var (
	songTitles = []string{
		"Rocket Man", "Space Oddity", "Starman", "Levitating", "Walking on Sunshine",
		"Mr. Blue Sky", "Drops of Jupiter", "Black Hole Sun", "Across the Universe",
		"Lucy in the Sky", "Supermassive", "Satellite", "Cosmic Love", "Gravity",
	}
	songWords = []string{
		"Bohemian", "Rhapsody", "Thunder", "Paradise", "Wonderwall", "Yesterday",
		"Imagine", "Hallelujah", "Stairway", "Smells Like", "Sweet Child", "Livin' on",
	}
	nameAdjectives = []string{
		"Purple", "Yellow", "Blue", "Green", "Red", "Golden", "Silver", "Electric",
		"Rolling", "Shining", "Burning", "Dancing", "Forever",
	}
	nameSuffixes = []string{
		"Nebula", "Galaxy", "System", "Cluster", "Station", "Outpost", "Prime",
		"World", "Rock", "Sphere", "Haven", "Dream",
	}
	specialNames = []string{
		"Total Eclipse", "Dancing in the Moonlight", "Come Together", "Hotel California",
		"Sweet Dreams", "September", "Africa", "Wonderland", "Neverland",
		"Strawberry Fields", "Penny Lane", "Abbey Road", "Electric Avenue", "Purple Rain",
		"Bohemian Paradise", "Thriller Bay", "Karma Station", "Viva la Vista",
		"Rolling Stone", "Stairway Prime",
	}
)

// PlanetNamer draws song-inspired planet names from a random source.
type PlanetNamer struct {
	rng *rand.Rand
}

// NewPlanetNamer creates a namer backed by rng.
func NewPlanetNamer(rng *rand.Rand) *PlanetNamer {
	return &PlanetNamer{rng: rng}
}

// Name returns a single random name. Roughly 40% come straight from the
// special list; the rest are composed from the word lists.
func (n *PlanetNamer) Name() string {
	if n.rng.Float64() < config.SpecialNameChance {
		return n.pick(specialNames)
	}
	switch n.rng.Intn(3) {
	case 0:
		return n.pick(songWords) + " " + n.pick(nameSuffixes)
	case 1:
		return n.pick(nameAdjectives) + " " + n.pick(nameSuffixes)
	default:
		return n.pick(songTitles)
	}
}

// UniqueNames returns count distinct names. Each name gets a bounded number
// of draws; when they are all taken, a numeric suffix is appended.
func (n *PlanetNamer) UniqueNames(count int) []string {
	names := make([]string, 0, count)
	used := make(map[string]struct{}, count)

	for len(names) < count {
		var name string
		for attempt := 0; attempt < config.NameAttempts; attempt++ {
			candidate := n.Name()
			if _, taken := used[candidate]; !taken {
				name = candidate
				break
			}
		}

		if name == "" {
			base := n.Name()
			for suffix := 2; ; suffix++ {
				candidate := fmt.Sprintf("%s %d", base, suffix)
				if _, taken := used[candidate]; !taken {
					name = candidate
					break
				}
			}
		}

		used[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

func (n *PlanetNamer) pick(words []string) string {
	return words[n.rng.Intn(len(words))]
}
