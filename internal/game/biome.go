package game

type Biome uint8

const (
	BiomeIntro Biome = iota
	BiomeGround
	BiomeSky

	BiomeCount
)

func (b Biome) String() string {
	switch b {
	case BiomeIntro:
		return "intro"
	case BiomeGround:
		return "ground"
	case BiomeSky:
		return "sky"
	}
	return "unknown"
}

// ShapeClass selects how an obstacle's collision volume is approximated.
type ShapeClass uint8

const (
	// ShapeTrunkCylinder collides only with a thin vertical column at the
	// obstacle's ground position; canopies never hit.
	ShapeTrunkCylinder ShapeClass = iota
	// ShapeCanopyBox collides with the whole model box, shrunk.
	ShapeCanopyBox
)

// Environment is everything a biome hands to the streamer and the obstacle
// manager. Nil pools read as empty.
type Environment struct {
	Biome     Biome
	Obstacles *Pool
	Trees     *Pool
	Decor     *Pool
	Flora     *Pool
	Mountains *Pool
	Drift     *Pool
	Shape     ShapeClass

	// StreamGround keeps the tile grid recycling. Off in the sky, where the
	// grid is left behind as it is.
	StreamGround bool
	Atmosphere   Atmosphere
	GridWidth    int
	GridDepth    int
}

func newEnvironments(t Tuning, ps *Pools) [BiomeCount]Environment {
	scenery := Environment{
		Trees:        ps.Get(PoolTrees),
		Decor:        ps.Get(PoolDecor),
		Flora:        ps.Get(PoolFlora),
		Mountains:    ps.Get(PoolMountains),
		Shape:        ShapeTrunkCylinder,
		StreamGround: true,
		GridWidth:    t.Grid.Width,
		GridDepth:    t.Grid.Depth,
	}

	intro := scenery
	intro.Biome = BiomeIntro
	intro.Drift = ps.Get(PoolClouds)
	intro.Atmosphere = atmosphereIntro

	ground := scenery
	ground.Biome = BiomeGround
	ground.Obstacles = ps.Get(PoolGroundObstacles)
	ground.Atmosphere = atmosphereGround

	sky := Environment{
		Biome:      BiomeSky,
		Obstacles:  ps.Get(PoolSkyObstacles),
		Drift:      ps.Get(PoolClouds),
		Shape:      ShapeCanopyBox,
		Atmosphere: atmosphereSky,
		GridWidth:  t.Grid.Width,
		GridDepth:  t.Grid.Depth,
	}

	return [BiomeCount]Environment{
		BiomeIntro:  intro,
		BiomeGround: ground,
		BiomeSky:    sky,
	}
}

// BiomeController sequences Intro → Ground → Sky. Sky is absorbing until the
// next run resets it.
type BiomeController struct {
	biome Biome
	envs  [BiomeCount]Environment
	intro IntroTuning
	skyAt float64
}

func NewBiomeController(t Tuning, ps *Pools) *BiomeController {
	return &BiomeController{
		envs:  newEnvironments(t, ps),
		intro: t.Intro,
		skyAt: t.Biome.SkyScoreThreshold,
	}
}

func (bc *BiomeController) Reset() {
	bc.biome = BiomeIntro
}

func (bc *BiomeController) Biome() Biome { return bc.biome }

// Env is the active environment. The pointer stays valid across transitions
// only until the next one; callers re-read it every tick.
func (bc *BiomeController) Env() *Environment {
	return &bc.envs[bc.biome]
}

// Update evaluates transitions for this tick and drives the intro altitude
// profile. It reports whether the biome changed.
func (bc *BiomeController) Update(p *PlayerState, stats RunStats, world *WorldStreamer) bool {
	if !p.Active {
		return false
	}
	switch bc.biome {
	case BiomeIntro:
		bc.dive(p)
		if p.Altitude <= bc.intro.Cruise && p.Pos[2] >= bc.intro.End {
			env := &bc.envs[BiomeGround]
			if world != nil && !world.Populated() {
				world.Initialize(env, env.GridWidth, env.GridDepth)
			}
			p.Intro = false
			bc.biome = BiomeGround
			return true
		}
	case BiomeGround:
		bc.ease(p)
		if stats.Score >= bc.skyAt {
			bc.biome = BiomeSky
			return true
		}
	case BiomeSky:
		bc.ease(p)
	}
	return false
}

// dive holds the intro altitude, then descends with the nose pitched down
// and levels out at cruise.
func (bc *BiomeController) dive(p *PlayerState) {
	it := bc.intro
	switch {
	case p.Pos[2] < it.DiveStart:
		p.Altitude = it.Altitude
	case p.Altitude > it.Cruise:
		p.Altitude = max(p.Altitude-it.DescentRate, it.Cruise)
		p.Pitch = min(p.Pitch+it.PitchRate, it.PitchMax)
	default:
		bc.ease(p)
	}
}

func (bc *BiomeController) ease(p *PlayerState) {
	p.Pitch *= bc.intro.PitchEase
	if p.Pitch < 1e-4 {
		p.Pitch = 0
	}
}
