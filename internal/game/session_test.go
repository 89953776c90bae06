package game

import (
	"io"
	"log/slog"
	"strings"
	"testing"
)

func newTestSession(t *testing.T, tn Tuning, kinds ...PoolKind) (*Session, *recordScene) {
	t.Helper()
	scene := newRecordScene()
	s := NewSession(SessionConfig{
		Tuning: tn,
		Scene:  scene,
		Log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Seed:   42,
	})
	fillPools(t, s.Pools(), kinds...)
	return s, scene
}

// runUntilGameOver starts a run with an obstacle every tick so the centre
// lane is soon blocked.
func runUntilGameOver(t *testing.T, s *Session) {
	t.Helper()
	s.Input.Push(Confirm)
	for i := 0; i < 20000; i++ {
		s.Tick()
		if s.State() == StateGameOver {
			return
		}
	}
	t.Fatal("run never ended")
}

func crashTuning() Tuning {
	tn := DefaultTuning()
	tn.Spawn.Chance = 1
	return tn
}

func TestSessionIdleIgnoresLaneCommands(t *testing.T) {
	s, _ := newTestSession(t, DefaultTuning())
	s.Input.Push(MoveLaneRight)
	s.Input.Push(MoveLaneLeft)
	s.Tick()
	if s.State() != StateIdle {
		t.Fatalf("state %s", s.State())
	}
	if s.Player().Lane != 0 {
		t.Errorf("lane %d while idle", s.Player().Lane)
	}

	s.Input.Push(Confirm)
	s.Input.Push(MoveLaneRight)
	s.Tick()
	if s.State() != StateRunning {
		t.Fatalf("confirm did not start a run: %s", s.State())
	}
	if s.Player().Lane != 1 {
		t.Errorf("lane %d after right", s.Player().Lane)
	}
}

func TestSessionSingleConfirmStartsOneRun(t *testing.T) {
	s, _ := newTestSession(t, DefaultTuning())
	starts := 0
	s.Events.Subscribe(EventRunStarted, func(Event) { starts++ })

	s.Input.Push(Confirm)
	s.Input.Push(Confirm)
	s.Tick()
	if starts != 1 {
		t.Errorf("runs started = %d, want 1", starts)
	}
}

func TestSessionGameOverFreezesAndRestarts(t *testing.T) {
	s, scene := newTestSession(t, crashTuning(), PoolGround, PoolGroundObstacles, PoolTrees, PoolDecor)
	overs := 0
	var final Event
	s.Events.Subscribe(EventGameOver, func(e Event) { overs++; final = e })

	runUntilGameOver(t, s)
	if s.Biome() != BiomeGround {
		t.Fatalf("crashed in %s", s.Biome())
	}
	frozen := s.Stats()
	if frozen.Score <= 0 || frozen.Distance <= 0 {
		t.Fatalf("stats at game over: %+v", frozen)
	}
	for i := 0; i < 30; i++ {
		s.Tick()
	}
	if s.Stats() != frozen {
		t.Errorf("stats moved after game over: %+v -> %+v", frozen, s.Stats())
	}
	if overs != 1 {
		t.Errorf("game over emitted %d times", overs)
	}
	if final.Score != frozen.Score || final.Distance != frozen.Distance {
		t.Errorf("event %+v does not match stats %+v", final, frozen)
	}
	if hud := s.HUD(); hud.FinalText != FormatFinal(frozen.Score) {
		t.Errorf("final text %q", hud.FinalText)
	}

	s.Input.Push(Confirm)
	s.Tick()
	st := s.Stats()
	if st.Score != 0 || st.Distance != 0 || st.Speed != InitialSpeed {
		t.Errorf("stats after restart: %+v", st)
	}
	if s.State() != StateRunning || s.Biome() != BiomeIntro || !s.Player().Intro {
		t.Errorf("restart state %s biome %s intro %v", s.State(), s.Biome(), s.Player().Intro)
	}
	if s.Obstacles().Len() != 0 {
		t.Errorf("%d obstacles survived the restart", s.Obstacles().Len())
	}
	if s.World().Populated() || s.World().DecorationCount() != 0 {
		t.Error("tiles or decorations survived the restart")
	}
	if n := len(scene.live); n != 0 {
		t.Errorf("scene holds %d instances after restart", n)
	}
	if s.HUD().FinalText != "" {
		t.Error("final text shown during a run")
	}
}

func TestSessionMenuRevealDeferred(t *testing.T) {
	s, _ := newTestSession(t, crashTuning(), PoolGroundObstacles)
	reveals := 0
	s.Events.Subscribe(EventMenuReveal, func(Event) { reveals++ })
	if !s.HUD().Menu {
		t.Fatal("idle session hides the menu")
	}

	runUntilGameOver(t, s)
	for i := 1; i < MenuRevealDelay; i++ {
		s.Tick()
		if reveals != 0 || s.HUD().Menu {
			t.Fatalf("menu revealed after %d ticks", i)
		}
	}
	s.Tick()
	if reveals != 1 || !s.HUD().Menu {
		t.Fatalf("reveals = %d after the delay", reveals)
	}
	for i := 0; i < MenuRevealDelay*2; i++ {
		s.Tick()
	}
	if reveals != 1 {
		t.Errorf("menu revealed %d times", reveals)
	}
}

func TestSessionNewRunSupersedesReveal(t *testing.T) {
	s, _ := newTestSession(t, crashTuning(), PoolGroundObstacles)
	reveals := 0
	s.Events.Subscribe(EventMenuReveal, func(Event) { reveals++ })

	runUntilGameOver(t, s)
	s.Tick()
	s.Input.Push(Confirm)
	for i := 0; i < MenuRevealDelay*2; i++ {
		s.Tick()
	}
	if reveals != 0 {
		t.Errorf("stale reveal fired %d times", reveals)
	}
	if s.State() != StateRunning {
		t.Errorf("state %s", s.State())
	}
}

func TestSessionScoresOnlyAfterIntro(t *testing.T) {
	s, _ := newTestSession(t, DefaultTuning())
	s.Input.Push(Confirm)
	for s.Biome() == BiomeIntro {
		s.Tick()
		if s.Biome() == BiomeIntro && s.Stats().Score != 0 {
			t.Fatalf("scored %v during the intro", s.Stats().Score)
		}
	}
	before := s.Stats()
	s.Tick()
	after := s.Stats()
	if after.Score <= before.Score || after.Speed <= before.Speed {
		t.Errorf("no progress after the intro: %+v -> %+v", before, after)
	}
}

func TestSessionHUDStrings(t *testing.T) {
	s, _ := newTestSession(t, DefaultTuning())
	hud := s.HUD()
	if hud.ScoreText != "SCORE: 00000" || hud.DistanceText != "DIST: 0m" {
		t.Errorf("idle hud %q %q", hud.ScoreText, hud.DistanceText)
	}
	if !strings.HasPrefix(hud.ScoreText, "SCORE: ") {
		t.Errorf("score text %q", hud.ScoreText)
	}
}

func TestSessionAtmosphereAndCamera(t *testing.T) {
	s, scene := newTestSession(t, DefaultTuning())
	s.Pools().Get(PoolPlayer).Set([]*Model{mustModel(t, PigBasic.ModelName())})
	s.Input.Push(Confirm)
	s.Tick()
	if scene.camera != PlayerID {
		t.Errorf("camera attached to %v", scene.camera)
	}
	if _, ok := scene.live[PlayerID]; !ok {
		t.Error("player not placed")
	}
	if len(scene.atmos) != 1 {
		t.Errorf("atmosphere set %d times in one tick", len(scene.atmos))
	}
}

func TestSessionSetLoadoutReloadsPlayer(t *testing.T) {
	s, _ := newTestSession(t, DefaultTuning())
	s.SetLoadout(Loadout{Pig: PigBasic})
	s.Loader().Wait()
	plain := s.Pools().Get(PoolPlayer).Models()
	if len(plain) != 1 {
		t.Fatalf("player pool holds %d models", len(plain))
	}

	s.SetLoadout(Loadout{Pig: PigGolden, Wing: WingJet, Trail: TrailFire})
	s.SetLoadout(Loadout{Pig: PigCyber, Wing: WingAngel, Trail: TrailStars})
	s.Loader().Wait()
	got := s.Pools().Get(PoolPlayer).Models()
	if len(got) != 1 || got[0] == plain[0] {
		t.Fatal("player model not replaced")
	}
	want := Merge(PoolPlayer.String(), pigModel(PigCyber), wingModel(WingAngel))
	if len(got[0].Parts) != len(want.Parts) || got[0].Parts[0].Color != PigCyber.Spec().Color {
		t.Errorf("older loadout won: %d parts, colour %v", len(got[0].Parts), got[0].Parts[0].Color)
	}
	if s.Trail().Trail() != TrailStars || s.Loadout().Trail != TrailStars {
		t.Errorf("trail %s after the swap", s.Trail().Trail().Spec().ID)
	}
}

func TestSessionCycleCommands(t *testing.T) {
	owned := func(lo Loadout) bool {
		return lo.Pig == PigBasic || lo.Pig == PigLucky
	}
	s := NewSession(SessionConfig{
		Tuning:   DefaultTuning(),
		Scene:    newRecordScene(),
		Log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Seed:     3,
		Wardrobe: owned,
	})
	var changes []Loadout
	s.Events.Subscribe(EventLoadoutChanged, func(e Event) { changes = append(changes, e.Loadout) })

	s.Input.Push(CyclePig)
	s.Tick()
	if s.Loadout().Pig != PigLucky {
		t.Fatalf("pig %s, want lucky", s.Loadout().Pig.Spec().ID)
	}
	s.Input.Push(CyclePig)
	s.Tick()
	if s.Loadout().Pig != PigBasic {
		t.Errorf("pig %s did not wrap to basic", s.Loadout().Pig.Spec().ID)
	}
	s.Input.Push(CycleTrail)
	s.Tick()
	if s.Loadout().Trail != TrailSparkles || len(changes) != 3 {
		t.Errorf("trail %s after %d loadout events", s.Loadout().Trail.Spec().ID, len(changes))
	}

	s.Input.Push(Confirm)
	s.Tick()
	s.Input.Push(CyclePig)
	s.Tick()
	if s.Loadout().Pig != PigBasic || len(changes) != 3 {
		t.Error("loadout changed mid-run")
	}
}

func TestLoadoutCycle(t *testing.T) {
	lo := Loadout{Pig: PigGolden, Wing: WingDragon, Trail: TrailStars}
	next, ok := lo.Cycle(CyclePig, nil)
	if !ok || next.Pig != PigBasic || next.Wing != WingDragon {
		t.Errorf("pig cycle %+v", next)
	}
	next, _ = lo.Cycle(CycleWing, nil)
	if next.Wing != WingNone {
		t.Errorf("wing cycle %+v", next)
	}
	next, _ = lo.Cycle(CycleTrail, nil)
	if next.Trail != TrailNone {
		t.Errorf("trail cycle %+v", next)
	}
	if _, ok := lo.Cycle(CycleTrail, func(Loadout) bool { return false }); ok {
		t.Error("cycled with nothing allowed")
	}
	if _, ok := lo.Cycle(Confirm, nil); ok {
		t.Error("confirm cycled a slot")
	}
}

func TestSessionIdleKeepsGameplayStream(t *testing.T) {
	a, _ := newTestSession(t, DefaultTuning())
	b, _ := newTestSession(t, DefaultTuning())
	a.Pools().Get(PoolPlayer).Set([]*Model{mustModel(t, PigBasic.ModelName())})
	for i := 0; i < 120; i++ {
		a.Tick()
	}
	if a.rng.NextU64() != b.rng.NextU64() {
		t.Error("idle frames drew from the gameplay stream")
	}
}
