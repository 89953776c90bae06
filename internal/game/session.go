package game

import (
	"context"
	"log/slog"
)

type SessionState uint8

const (
	StateIdle SessionState = iota
	StateRunning
	StateGameOver
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game_over"
	}
	return "unknown"
}

// trailSeedMix keeps the trail's jitter off the gameplay stream.
const trailSeedMix = 0x9e3779b97f4a7c15

// PlayerID is the instance id of the player renderable.
var PlayerID = MakeInstanceID(KindPlayer, 0)

type SessionConfig struct {
	Tuning  Tuning
	Scene   Scene
	Catalog AssetCatalog
	Log     *slog.Logger
	Seed    uint64
	Loadout Loadout

	// Wardrobe reports whether a loadout may be worn. Nil allows any.
	Wardrobe func(Loadout) bool
}

// Session owns one game: the components, the run lifecycle and the input
// queue. Tick is called once per frame from a single goroutine.
type Session struct {
	Input  *InputQueue
	Events *EventBus

	t     Tuning
	log   *slog.Logger
	scene Scene
	rng   *Rand

	pools  *Pools
	loader *Loader
	ctx    context.Context

	clock     *ScoreClock
	player    *PlayerController
	world     *WorldStreamer
	obstacles *ObstacleManager
	biome     *BiomeController
	trail     *TrailEmitter

	state    SessionState
	loadout  Loadout
	wardrobe func(Loadout) bool
	frame    int    // frames since creation, drives the sky cycle
	ticks    int    // running ticks of the current run
	run      uint64 // bumped on every StartRun
	final    float64
	reveal   *pendingReveal
	menu     bool // start/retry menu is showing
}

// pendingReveal is a deferred menu reveal. A newer run makes it stale.
type pendingReveal struct {
	at  int
	run uint64
}

func NewSession(cfg SessionConfig) *Session {
	if cfg.Scene == nil {
		cfg.Scene = NopScene{}
	}
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}
	if cfg.Catalog == nil {
		cfg.Catalog = NewBuiltinCatalog()
	}
	rng := NewRand(cfg.Seed)
	pools := NewPools()
	s := &Session{
		Input:     NewInputQueue(InputQueueSize),
		Events:    NewEventBus(),
		t:         cfg.Tuning,
		log:       cfg.Log,
		scene:     cfg.Scene,
		rng:       rng,
		pools:     pools,
		loader:    NewLoader(cfg.Catalog, pools, cfg.Log),
		ctx:       context.Background(),
		clock:     NewScoreClock(cfg.Tuning.Run),
		player:    NewPlayerController(cfg.Tuning),
		world:     NewWorldStreamer(cfg.Tuning, pools, cfg.Scene, rng),
		obstacles: NewObstacleManager(cfg.Tuning, cfg.Scene, rng),
		biome:     NewBiomeController(cfg.Tuning, pools),
		trail:     NewTrailEmitter(cfg.Scene, NewRand(cfg.Seed^trailSeedMix)),
		loadout:   cfg.Loadout,
		wardrobe:  cfg.Wardrobe,
		menu:      true,
	}
	s.trail.SetTrail(cfg.Loadout.Trail)
	return s
}

// LoadAssets starts the asynchronous pool loads. It returns immediately; the
// session runs with empty pools until they fill.
func (s *Session) LoadAssets(ctx context.Context) {
	s.ctx = ctx
	s.loader.Start(ctx, s.t.Assets.Manifest())
	s.loader.LoadPlayer(ctx, s.loadout)
}

// SetLoadout swaps the player's cosmetics and reloads the player model.
func (s *Session) SetLoadout(lo Loadout) {
	s.loadout = lo
	s.trail.SetTrail(lo.Trail)
	s.loader.LoadPlayer(s.ctx, lo)
}

func (s *Session) Loadout() Loadout { return s.loadout }
func (s *Session) Loader() *Loader  { return s.loader }
func (s *Session) Pools() *Pools    { return s.pools }

// Tick runs one frame: input, then the run step if a run is live, then the
// outward updates that happen in every state.
func (s *Session) Tick() {
	s.frame++
	s.Input.Drain(s.handle)
	s.fireReveal()
	if s.state == StateRunning {
		s.step()
	}
	s.trail.Tick(s.player.State)
	s.scene.SetAtmosphere(s.biome.Env().Atmosphere.Cycle(float64(s.frame) / TicksPerSecond))
	s.placePlayer()
}

func (s *Session) handle(c Command) {
	switch c {
	case Confirm:
		if s.state != StateRunning {
			s.StartRun()
		}
	case MoveLaneLeft, MoveLaneRight:
		if s.state != StateRunning {
			return
		}
		dir := -1
		if c == MoveLaneRight {
			dir = 1
		}
		if s.player.Shift(dir) {
			s.Events.Emit(Event{Type: EventLaneChanged, Lane: s.player.State.Lane})
		}
	case CyclePig, CycleWing, CycleTrail:
		if s.state == StateRunning {
			return
		}
		if next, ok := s.loadout.Cycle(c, s.wardrobe); ok {
			s.SetLoadout(next)
			s.log.Debug("loadout changed", "pig", next.Pig.Spec().ID, "wing", next.Wing.Spec().ID, "trail", next.Trail.Spec().ID)
			s.Events.Emit(Event{Type: EventLoadoutChanged, Loadout: next})
		}
	}
}

// StartRun clears every collection and starts a fresh run in the intro. The
// ground grid is laid when the intro ends.
func (s *Session) StartRun() {
	s.run++
	s.world.Reset()
	s.obstacles.Reset()
	s.trail.Reset()
	s.biome.Reset()
	s.clock.Reset()
	s.player.Reset(s.t.Intro.Altitude)
	s.player.State.Active = true
	s.ticks = 0
	s.final = 0
	s.menu = false
	s.state = StateRunning
	s.scene.AttachCamera(PlayerID)
	s.log.Debug("run started", "run", s.run)
	s.Events.Emit(Event{Type: EventRunStarted, Biome: s.biome.Biome()})
}

func (s *Session) step() {
	p := &s.player.State
	if s.biome.Update(p, s.clock.RunStats, s.world) {
		s.log.Debug("biome changed", "biome", s.biome.Biome().String(), "score", s.clock.Score)
		s.Events.Emit(Event{Type: EventBiomeChanged, Biome: s.biome.Biome(), Score: s.clock.Score})
	}
	s.player.Integrate(s.clock.Speed)

	env := s.biome.Env()
	z := p.Pos[2]
	s.world.Tick(z, env)
	s.obstacles.TrySpawn(env, z)

	before := s.obstacles.Dodged()
	hit := s.obstacles.Tick(s.player.Box(), z)
	for i := before; i < s.obstacles.Dodged(); i++ {
		s.Events.Emit(Event{Type: EventObstacleDodged, Dodged: i + 1})
	}
	if hit {
		s.gameOver()
		return
	}
	s.clock.Advance(p)
	s.ticks++
}

func (s *Session) gameOver() {
	s.state = StateGameOver
	s.player.State.Active = false
	s.final = s.clock.Score
	s.reveal = &pendingReveal{at: s.frame + MenuRevealDelay, run: s.run}
	s.log.Info("game over",
		"score", truncate(s.clock.Score),
		"distance", truncate(s.clock.Distance),
		"dodged", s.obstacles.Dodged(),
		"biome", s.biome.Biome().String())
	s.Events.Emit(Event{
		Type:     EventGameOver,
		Biome:    s.biome.Biome(),
		Score:    s.clock.Score,
		Distance: s.clock.Distance,
		Dodged:   s.obstacles.Dodged(),
		Ticks:    s.ticks,
	})
}

func (s *Session) fireReveal() {
	r := s.reveal
	if r == nil || s.frame < r.at {
		return
	}
	s.reveal = nil
	if r.run != s.run || s.state != StateGameOver {
		return
	}
	s.menu = true
	s.Events.Emit(Event{Type: EventMenuReveal, Score: s.final})
}

func (s *Session) placePlayer() {
	ms := s.pools.Get(PoolPlayer).Models()
	if len(ms) == 0 {
		return
	}
	s.scene.Place(PlayerID, ms[0], s.player.Transform())
}

func (s *Session) State() SessionState         { return s.state }
func (s *Session) Stats() RunStats             { return s.clock.RunStats }
func (s *Session) Player() PlayerState         { return s.player.State }
func (s *Session) PlayerBox() AABB             { return s.player.Box() }
func (s *Session) Biome() Biome                { return s.biome.Biome() }
func (s *Session) World() *WorldStreamer       { return s.world }
func (s *Session) Obstacles() *ObstacleManager { return s.obstacles }
func (s *Session) Trail() *TrailEmitter        { return s.trail }

// Ticks is the number of scoring ticks in the current run.
func (s *Session) Ticks() int { return s.ticks }

func (s *Session) HUD() HUD {
	st := s.clock.RunStats
	h := HUD{
		State:        s.state,
		Biome:        s.biome.Biome(),
		Lane:         s.player.State.Lane,
		Score:        truncate(st.Score),
		Distance:     truncate(st.Distance),
		Speed:        st.Speed,
		Altitude:     s.player.State.Altitude,
		ScoreText:    FormatScore(st.Score),
		DistanceText: FormatDistance(st.Distance),
		Menu:         s.menu,
	}
	if s.state == StateGameOver {
		h.FinalText = FormatFinal(s.final)
	}
	return h
}
