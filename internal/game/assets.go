package game

import (
	"context"
	"log/slog"
	"sync"
)

// AssetCatalog resolves named model identifiers.
type AssetCatalog interface {
	Resolve(ctx context.Context, name string) (*Model, error)
}

// Manifest lists the model names loaded into each pool.
type Manifest map[PoolKind][]string

// DefaultManifest matches the names BuiltinCatalog knows.
func DefaultManifest() Manifest {
	return Manifest{
		PoolGround:          {"ground_meadow"},
		PoolTrees:           {"tree_oak", "tree_birch", "tree_pine"},
		PoolDecor:           {"rock", "stump", "bush"},
		PoolFlora:           {"flower_bed", "shrub"},
		PoolMountains:       {"mountain", "mountain_snowcap"},
		PoolGroundObstacles: {"oak_giant", "pine_giant"},
		PoolSkyObstacles:    {"airplane", "balloon"},
		PoolClouds:          {"cloud_puff", "cloud_bank"},
	}
}

// Loader runs asynchronous load tasks that fill pools. The tick loop only
// ever reads pools; it never waits on a task.
type Loader struct {
	catalog AssetCatalog
	pools   *Pools
	log     *slog.Logger

	mu    sync.Mutex
	wg    sync.WaitGroup
	gen   [PoolKindCount]uint64
	fails int
}

func NewLoader(catalog AssetCatalog, pools *Pools, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{catalog: catalog, pools: pools, log: log}
}

// Start launches one task per pool in the manifest.
func (l *Loader) Start(ctx context.Context, m Manifest) {
	for kind, names := range m {
		l.Load(ctx, kind, names, false)
	}
}

// LoadPlayer loads the loadout's models merged into a single player model.
// A newer call supersedes an older one still in flight.
func (l *Loader) LoadPlayer(ctx context.Context, lo Loadout) {
	l.Load(ctx, PoolPlayer, lo.ModelNames(), true)
}

// Load resolves names into kind's pool on a goroutine. Failed names fall back
// to a placeholder. With merge set the pool receives one combined model.
func (l *Loader) Load(ctx context.Context, kind PoolKind, names []string, merge bool) {
	pool := l.pools.Get(kind)
	if pool == nil || len(names) == 0 {
		return
	}
	l.mu.Lock()
	l.gen[kind]++
	gen := l.gen[kind]
	l.mu.Unlock()

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		models := make([]*Model, 0, len(names))
		for _, name := range names {
			m, err := l.catalog.Resolve(ctx, name)
			if err != nil || m == nil {
				if ctx.Err() != nil {
					return
				}
				l.log.Warn("asset load failed, using placeholder", "pool", kind.String(), "model", name, "err", err)
				l.mu.Lock()
				l.fails++
				l.mu.Unlock()
				m = Placeholder(kind, name)
			}
			models = append(models, m)
		}
		if merge {
			models = []*Model{Merge(kind.String(), models...)}
		}

		l.mu.Lock()
		defer l.mu.Unlock()
		if l.gen[kind] != gen {
			return
		}
		pool.Set(models)
		l.log.Debug("pool ready", "pool", kind.String(), "models", len(models))
	}()
}

// Wait blocks until every started task finished. Only used outside the tick loop.
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Failures reports how many names fell back to placeholders.
func (l *Loader) Failures() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fails
}
