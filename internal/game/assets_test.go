package game

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
)

func quietLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// gateCatalog blocks resolution of the gated names until release is closed.
type gateCatalog struct {
	inner   *BuiltinCatalog
	gated   map[string]bool
	release chan struct{}
}

func (g *gateCatalog) Resolve(ctx context.Context, name string) (*Model, error) {
	if g.gated[name] {
		select {
		case <-g.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return g.inner.Resolve(ctx, name)
}

func TestLoaderFillsPools(t *testing.T) {
	ps := NewPools()
	l := NewLoader(NewBuiltinCatalog(), ps, quietLog())
	l.Start(context.Background(), DefaultManifest())
	l.Wait()

	for kind, names := range DefaultManifest() {
		p := ps.Get(kind)
		if !p.Ready() || p.Len() != len(names) {
			t.Errorf("%s: ready=%v len=%d, want %d", kind, p.Ready(), p.Len(), len(names))
		}
	}
	if l.Failures() != 0 {
		t.Errorf("failures = %d", l.Failures())
	}
}

func TestLoaderFallsBackToPlaceholder(t *testing.T) {
	ps := NewPools()
	l := NewLoader(NewBuiltinCatalog(), ps, quietLog())
	l.Load(context.Background(), PoolGroundObstacles, []string{"oak_giant", "no_such_tree"}, false)
	l.Wait()

	ms := ps.Get(PoolGroundObstacles).Models()
	if len(ms) != 2 {
		t.Fatalf("models = %d", len(ms))
	}
	if ms[0].Placeholder || !ms[1].Placeholder {
		t.Errorf("placeholder flags %v %v", ms[0].Placeholder, ms[1].Placeholder)
	}
	if ms[1].Bounds.Empty() {
		t.Error("placeholder has no volume")
	}
	if l.Failures() != 1 {
		t.Errorf("failures = %d", l.Failures())
	}
}

func TestLoaderCancelledLeavesPoolEmpty(t *testing.T) {
	ps := NewPools()
	l := NewLoader(NewBuiltinCatalog(), ps, quietLog())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l.Load(ctx, PoolTrees, []string{"tree_oak"}, false)
	l.Wait()
	if ps.Get(PoolTrees).Ready() {
		t.Error("cancelled load published models")
	}
}

func TestLoaderNewerLoadWins(t *testing.T) {
	ps := NewPools()
	cat := &gateCatalog{
		inner:   NewBuiltinCatalog(),
		gated:   map[string]bool{PigGolden.ModelName(): true},
		release: make(chan struct{}),
	}
	l := NewLoader(cat, ps, quietLog())

	l.LoadPlayer(context.Background(), Loadout{Pig: PigGolden})
	l.LoadPlayer(context.Background(), Loadout{Pig: PigCyber, Wing: WingJet})
	close(cat.release)
	l.Wait()

	ms := ps.Get(PoolPlayer).Models()
	if len(ms) != 1 {
		t.Fatalf("player pool holds %d models", len(ms))
	}
	pig := mustModel(t, PigCyber.ModelName())
	wings := mustModel(t, WingJet.ModelName())
	if got, want := len(ms[0].Parts), len(pig.Parts)+len(wings.Parts); got != want {
		t.Errorf("merged parts = %d, want %d", got, want)
	}
	if ms[0].Parts[0].Color != PigCyber.Spec().Color {
		t.Error("older loadout overwrote the newer one")
	}
}

func TestCatalogUnknownName(t *testing.T) {
	_, err := NewBuiltinCatalog().Resolve(context.Background(), "unicorn")
	if !errors.Is(err, ErrUnknownModel) {
		t.Errorf("err = %v", err)
	}
}

func TestCatalogResolvesManifestAndCosmetics(t *testing.T) {
	cat := NewBuiltinCatalog()
	var names []string
	for _, ns := range DefaultManifest() {
		names = append(names, ns...)
	}
	for p := Pig(0); p < PigCount; p++ {
		names = append(names, p.ModelName())
	}
	for w := WingNone + 1; w < WingCount; w++ {
		names = append(names, w.ModelName())
	}
	for _, name := range names {
		m, err := cat.Resolve(context.Background(), name)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if m.Bounds.Empty() {
			t.Errorf("%s: empty bounds", name)
		}
	}
}

func TestBuiltinCatalogModelsAreReachable(t *testing.T) {
	reachable := make(map[string]bool)
	for _, names := range DefaultManifest() {
		for _, n := range names {
			reachable[n] = true
		}
	}
	for p := Pig(0); p < PigCount; p++ {
		reachable[p.ModelName()] = true
	}
	for w := WingNone + 1; w < WingCount; w++ {
		reachable[w.ModelName()] = true
	}
	for name := range NewBuiltinCatalog().builders {
		if !reachable[name] {
			t.Errorf("model %q is built but never loaded", name)
		}
	}
}
