package object

import "github.com/tomz197/planetwars/internal/loop/config"

// AbilityKind enumerates the special abilities each side owns once.
type AbilityKind int

const (
	Recall AbilityKind = iota
	ProductionSurge
	Shield
)

// AbilityKinds lists every kind in display order.
var AbilityKinds = []AbilityKind{Recall, ProductionSurge, Shield}

// String returns the display name of the ability.
func (k AbilityKind) String() string {
	switch k {
	case Recall:
		return "Recall"
	case ProductionSurge:
		return "Production Surge"
	case Shield:
		return "Shield Generator"
	default:
		return "Unknown"
	}
}

// Duration returns how long the ability stays active, 0 for instant abilities.
func (k AbilityKind) Duration() float64 {
	switch k {
	case ProductionSurge:
		return config.ProductionSurgeDuration
	case Shield:
		return config.ShieldDuration
	default:
		return config.RecallDuration
	}
}

// Ability is a single-use effect that may stay active for a fixed duration.
//
// Available -> (Activate) -> Active -> (duration elapses) -> Consumed.
// Instant abilities stay flagged active after activation; Update never
// touches them and they can never be activated again.
type Ability struct {
	kind      AbilityKind
	available bool
	active    bool
	remaining float64
	target    PlanetID
}

// NewAbility creates an unused ability of the given kind.
func NewAbility(kind AbilityKind) *Ability {
	return &Ability{
		kind:      kind,
		available: true,
		target:    NoPlanet,
	}
}

// Kind returns the ability kind.
func (a *Ability) Kind() AbilityKind { return a.kind }

// Duration returns the ability's active duration in seconds.
func (a *Ability) Duration() float64 { return a.kind.Duration() }

// IsInstant reports whether the ability has no duration.
func (a *Ability) IsInstant() bool { return a.Duration() == 0 }

// IsAvailable reports whether the ability can still be activated.
func (a *Ability) IsAvailable() bool { return a.available }

// IsActive reports whether the ability is currently in effect.
func (a *Ability) IsActive() bool { return a.active }

// TimeRemaining returns the seconds left while active.
func (a *Ability) TimeRemaining() float64 { return a.remaining }

// Target returns the targeted planet, or NoPlanet.
func (a *Ability) Target() PlanetID { return a.target }

// Activate consumes the ability. It fails without side effects unless the
// ability is available and not already active. Pass NoPlanet for abilities
// without a target.
func (a *Ability) Activate(target PlanetID) bool {
	if !a.available || a.active {
		return false
	}
	a.available = false
	a.active = true
	a.remaining = a.Duration()
	a.target = target
	return true
}

// Update counts down an active timed ability and expires it once the
// remaining time reaches zero.
func (a *Ability) Update(dt float64) {
	if a.IsInstant() || !a.active {
		return
	}
	a.remaining -= dt
	if a.remaining <= 0 {
		a.active = false
		a.remaining = 0
		a.target = NoPlanet
	}
}

// AbilitySet holds one ability of each kind for a side.
type AbilitySet struct {
	abilities [3]*Ability
}

// NewAbilitySet creates a fresh set with every ability available.
func NewAbilitySet() *AbilitySet {
	s := &AbilitySet{}
	for _, k := range AbilityKinds {
		s.abilities[k] = NewAbility(k)
	}
	return s
}

// Get returns the ability of the given kind.
func (s *AbilitySet) Get(kind AbilityKind) *Ability {
	return s.abilities[kind]
}

// Update advances every ability in the set.
func (s *AbilitySet) Update(dt float64) {
	for _, a := range s.abilities {
		a.Update(dt)
	}
}

// ShieldsPlanet reports whether an active shield in this set targets the planet.
func (s *AbilitySet) ShieldsPlanet(id PlanetID) bool {
	sh := s.abilities[Shield]
	return sh.IsActive() && sh.Target() == id
}

// ProductionMultiplier returns the production factor granted by the set this tick.
func (s *AbilitySet) ProductionMultiplier() float64 {
	if s.abilities[ProductionSurge].IsActive() {
		return config.ProductionSurgeFactor
	}
	return 1.0
}
