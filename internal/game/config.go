package game

// Lanes. X is lateral, Y is up, Z is the direction of travel.
const (
	LaneCount     = 3
	LaneWidth     = 4.0
	LaneMin       = -1
	LaneMax       = 1
	LaneSmoothing = 0.1
	LaneClearance = 1.4 // corridor half-width as a multiple of LaneWidth
)

// Run progression (per tick).
const (
	InitialSpeed = 0.5
	ScoreRate    = 0.1
	Acceleration = 0.0001
)

// Spawn/despawn window relative to the player.
const (
	LeadDistance  = 150.0
	TrailDistance = 20.0
	SpawnChance   = 0.012
)

// Ground streaming grid.
const (
	GridWidth       = 5
	GridDepth       = 12
	DefaultTileSize = 20.0
	RecycleRows     = 2 // tiles are recycled once this many depths behind
)

// Decoration seeding.
const (
	FloraInset       = 0.6
	FloraSpacing     = 4.0
	MountainColumn   = 2
	MountainScaleMin = 2.5
	MountainScaleMax = 4.5
	DecorScaleMin    = 0.8
	DecorScaleMax    = 1.4
)

// Sky drift field (clouds).
const (
	DriftCount  = 24
	DriftNear   = 30.0
	DriftSpread = 36.0
)

// Intro dive profile.
const (
	IntroAltitude    = 40.0
	CruiseAltitude   = 1.5
	IntroDiveStart   = 30.0
	IntroEnd         = 100.0
	IntroDescentRate = 0.35
	IntroPitchRate   = 0.01
	IntroPitchMax    = 0.45
	IntroPitchEase   = 0.9
)

// Biome thresholds.
const SkyScoreThreshold = 5000.0

// Collision tuning. Sky obstacles are large, so they shrink more.
const (
	TrunkRadius      = 0.6
	TrunkHeight      = 6.0
	SkyShrink        = 0.35 // fraction of each half-extent removed
	PlayerShrink     = 0.05
	SkyLateralJitter = 1.5
	SkyVerticalMin   = -1.0
	SkyVerticalMax   = 3.0
)

// Player body (pig) half extents.
const (
	PlayerHalfX = 0.4
	PlayerHalfY = 0.3
	PlayerHalfZ = 0.6
)

// Session timing.
const (
	TicksPerSecond  = 60
	MenuRevealDelay = 90 // ticks after game over
	InputQueueSize  = 32
)
