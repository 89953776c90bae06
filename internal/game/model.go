package game

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
)

// Part is one coloured box of a model, in model-local units.
type Part struct {
	Offset mgl64.Vec3 // box centre
	Size   mgl64.Vec3 // full extents
	Color  RGB
}

// Model is a renderable template. Instances reference it; it is never mutated after load.
type Model struct {
	Name        string
	Parts       []Part
	Bounds      AABB
	Placeholder bool
}

// NewModel computes the local bounds from parts.
func NewModel(name string, parts ...Part) *Model {
	m := &Model{Name: name, Parts: parts}
	for _, p := range parts {
		m.Bounds = m.Bounds.Union(BoxAround(p.Offset, p.Size.Mul(0.5)))
	}
	return m
}

// PoolKind names a model role.
type PoolKind uint8

const (
	PoolGround PoolKind = iota
	PoolTrees
	PoolDecor
	PoolFlora
	PoolMountains
	PoolGroundObstacles
	PoolSkyObstacles
	PoolClouds
	PoolPlayer

	PoolKindCount // must stay last
)

var poolKindNames = [PoolKindCount]string{
	PoolGround:          "ground",
	PoolTrees:           "trees",
	PoolDecor:           "decor",
	PoolFlora:           "flora",
	PoolMountains:       "mountains",
	PoolGroundObstacles: "ground_obstacles",
	PoolSkyObstacles:    "sky_obstacles",
	PoolClouds:          "clouds",
	PoolPlayer:          "player",
}

func (k PoolKind) String() string {
	if k < PoolKindCount {
		return poolKindNames[k]
	}
	return "unknown"
}

// Pool is a set of model templates filled asynchronously.
// Readers on the tick loop never block; an unready pool reads as empty.
type Pool struct {
	kind   PoolKind
	models atomic.Pointer[[]*Model]
	ready  atomic.Bool
}

func NewPool(kind PoolKind) *Pool {
	return &Pool{kind: kind}
}

func (p *Pool) Kind() PoolKind { return p.kind }

// Ready reports whether at least one load finished. Nil pools are never ready.
func (p *Pool) Ready() bool {
	return p != nil && p.ready.Load()
}

// Models returns the current immutable snapshot.
func (p *Pool) Models() []*Model {
	if p == nil {
		return nil
	}
	if ms := p.models.Load(); ms != nil {
		return *ms
	}
	return nil
}

func (p *Pool) Len() int { return len(p.Models()) }

// Set publishes a new snapshot and marks the pool ready.
func (p *Pool) Set(models []*Model) {
	cp := make([]*Model, len(models))
	copy(cp, models)
	p.models.Store(&cp)
	p.ready.Store(true)
}

// Clear empties the pool and marks it not ready.
func (p *Pool) Clear() {
	p.models.Store(nil)
	p.ready.Store(false)
}

// Pick returns a uniformly chosen model, or false for a nil, unready or empty pool.
func (p *Pool) Pick(r *Rand) (*Model, bool) {
	ms := p.Models()
	if len(ms) == 0 {
		return nil, false
	}
	return ms[r.Intn(len(ms))], true
}

// Pools holds one Pool per kind.
type Pools [PoolKindCount]*Pool

func NewPools() *Pools {
	var ps Pools
	for k := PoolKind(0); k < PoolKindCount; k++ {
		ps[k] = NewPool(k)
	}
	return &ps
}

func (ps *Pools) Get(k PoolKind) *Pool {
	if ps == nil || k >= PoolKindCount {
		return nil
	}
	return ps[k]
}

// pickUnion draws uniformly from the concatenation of the given pools.
func pickUnion(r *Rand, pools ...*Pool) (*Model, bool) {
	snaps := make([][]*Model, len(pools))
	total := 0
	for i, p := range pools {
		snaps[i] = p.Models()
		total += len(snaps[i])
	}
	if total == 0 {
		return nil, false
	}
	i := r.Intn(total)
	for _, ms := range snaps {
		if i < len(ms) {
			return ms[i], true
		}
		i -= len(ms)
	}
	return nil, false
}
