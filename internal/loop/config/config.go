// Package config centralizes all tunable game parameters.
package config

import "time"

// Map dimensions in logical units. Every map is generated for this area
// and the renderer scales it to fit the terminal.
const (
	MapWidth  = 2000
	MapHeight = 1400
)

// Map generation
const (
	MapMargin          = 80   // Distance kept from the screen edges
	MinPlanetRadius    = 20   // Smallest planet radius
	MaxPlanetRadius    = 70   // Largest planet radius
	MinPlanetGap       = 180  // Minimum free space between two planet rims
	PlacementAttempts  = 1000 // Rejection sampling budget per side
	UIReservedWidth    = 350  // Top-left HUD rectangle kept free of left-side planets
	UIReservedHeight   = 320
	StartingShips      = 50 // Ships on each side's home planet
	NeutralShipsMin    = 15
	NeutralShipsMax    = 30
	CenterShipsMin     = 20
	CenterShipsMax     = 35
	NameAttempts       = 100 // Attempts to draw an unused planet name before suffixing
	SpecialNameChance  = 0.4 // Probability of drawing a name from the special list
	MapSizeSmall       = 7
	MapSizeMedium      = 13
	MapSizeLarge       = 19
	MinProductionRate  = 1
	MaxProductionRate  = 4
	ProductionRateSpan = 3.0 // Rate increase across the radius range
)

// Fleets
const (
	FleetSpeed      = 200.0 // Units per second
	ArrivalDistance = 5.0   // A fleet closer than this to its target has arrived
)

// Abilities (seconds)
const (
	RecallDuration          = 0.0
	ProductionSurgeDuration = 10.0
	ShieldDuration          = 15.0
	ProductionSurgeFactor   = 2.0
)

// Scoring
const (
	BaseScore             = 100
	PenaltyPlanetLost     = 10 // Player planet captured by the enemy
	PenaltyAttackRepelled = 5  // Player attack that failed to capture
)

// Time bonus brackets: a victory faster than Seconds earns Bonus points.
var TimeBonuses = []struct {
	Seconds float64
	Bonus   int
}{
	{60, 50},
	{120, 30},
	{180, 15},
	{300, 5},
}

// AI ability heuristics (hard difficulty)
const (
	AIAbilityInterval      = 5.0   // Seconds between ability checks
	AISurgeMinPlanets      = 2     // Planets with high production needed for a surge
	AISurgeMinRate         = 3     // Production rate considered high
	AIShieldThreatRadius   = 300.0 // Enemy fleet distance that triggers a shield
	AIShieldMaxShips       = 50    // Shield only planets weaker than this
	AIRecallStrengthFactor = 2.0   // Opponent strength ratio that triggers a recall
	AIRecallMinFleets      = 3     // Fleets in transit needed before recalling
)

// Player commands
const (
	DefaultSendFraction = 0.5
	SendFractionStep    = 0.1
	MinSendFraction     = 0.1
	MaxSendFraction     = 1.0
)

// View resolution - the logical area the canvas maps onto the terminal.
const (
	ViewWidth  = MapWidth
	ViewHeight = MapHeight
)

// Terminal render area limits. Larger terminals get a centered, bordered area.
const (
	MaxTermWidth  = 200
	MaxTermHeight = 60
)

// Player
const (
	MaxUsernameLength = 16 // Maximum display length for player usernames
	EventLogLines     = 4  // Recent match events shown in the HUD
)

// Effects
const (
	BurstParticles       = 24    // Particles spawned when a planet changes hands
	RepelParticles       = 10    // Particles spawned when an attack is repelled
	BurstSpeed           = 120.0 // Units per second
	BurstLifetime        = 0.8   // Seconds
	TrailInterval        = 0.1   // Seconds between fleet trail particles
	ShieldBlinkThreshold = 3.0   // Shield rings blink during the last seconds
	ShieldBlinkFrequency = 6.0   // Blink toggles per second
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 30
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Lobby tick rate
const (
	ServerTickRate = 10
	ServerTickTime = time.Second / ServerTickRate
)

// Scoreboard
const (
	LeaderboardSize = 10
	ScoreListSize   = 50
)
