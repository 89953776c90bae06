package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// seedTile scatters scenery over a freshly placed tile. Every step is a no-op
// while its pool is empty.
func (w *WorldStreamer) seedTile(env *Environment, id InstanceID, tile *Tile) {
	if env == nil {
		return
	}
	w.scatter(env, id, tile)
	if tile.Col == 0 {
		w.lineCorridor(env, id, tile)
	}
	if abs(tile.Col) >= w.t.Decor.MountainColumn {
		w.raiseMountain(env, id, tile)
	}
}

// scatter drops a weighted count of trees and rocks at random spots on the
// tile. Spots inside the lane corridor are discarded, not moved.
func (w *WorldStreamer) scatter(env *Environment, id InstanceID, tile *Tile) {
	dt := w.t.Decor
	if len(dt.Counts) == 0 {
		return
	}
	n := dt.Counts[w.rng.Weighted(dt.Weights)%len(dt.Counts)]
	for i := 0; i < n; i++ {
		m, ok := pickUnion(w.rng, env.Trees, env.Decor)
		if !ok {
			return
		}
		pos := tile.Pos.Add(mgl64.Vec3{
			w.rng.RangeF(-w.tileW/2, w.tileW/2),
			0,
			w.rng.RangeF(-w.tileD/2, w.tileD/2),
		})
		w.place(id, tile, m, Transform{
			Pos:   pos,
			Yaw:   w.rng.Angle(),
			Scale: w.rng.RangeF(dt.ScaleMin, dt.ScaleMax),
		})
	}
}

// lineCorridor plants flora along both corridor edges, evenly spaced down
// the length of the tile.
func (w *WorldStreamer) lineCorridor(env *Environment, id InstanceID, tile *Tile) {
	dt := w.t.Decor
	if dt.FloraSpacing <= 0 {
		return
	}
	edge := w.corridor() + dt.FloraInset
	for z := -w.tileD / 2; z < w.tileD/2; z += dt.FloraSpacing {
		for _, side := range [2]float64{-1, 1} {
			m, ok := env.Flora.Pick(w.rng)
			if !ok {
				return
			}
			w.place(id, tile, m, Transform{
				Pos:   mgl64.Vec3{side * edge, 0, tile.Pos[2] + z},
				Yaw:   w.rng.Angle(),
				Scale: 1,
			})
		}
	}
}

func (w *WorldStreamer) raiseMountain(env *Environment, id InstanceID, tile *Tile) {
	m, ok := env.Mountains.Pick(w.rng)
	if !ok {
		return
	}
	dt := w.t.Decor
	w.place(id, tile, m, Transform{
		Pos:   tile.Pos,
		Yaw:   w.rng.Angle(),
		Scale: w.rng.RangeF(dt.MountainScaleMin, dt.MountainScaleMax),
	})
}

// place is the single entry point for decorations. It refuses anything whose
// lateral position falls inside the corridor.
func (w *WorldStreamer) place(owner InstanceID, tile *Tile, m *Model, xf Transform) (InstanceID, bool) {
	if m == nil || w.inCorridor(xf.Pos[0]) {
		return 0, false
	}
	id, d := w.decor.Alloc()
	d.Model = m
	d.Xf = xf
	d.Owner = owner
	if tile != nil {
		tile.decor = append(tile.decor, id)
	}
	w.scene.Place(id, m, xf)
	return id, true
}

// tickDrift drops drift items that fell behind and tops the field up ahead of
// the player. Without a drift pool the leftovers just age out.
func (w *WorldStreamer) tickDrift(playerZ float64, env *Environment) {
	dt := w.t.Decor
	behind := playerZ - w.t.Spawn.TrailDistance
	kept := w.drift[:0]
	for _, id := range w.drift {
		d := w.decor.Get(id)
		if d == nil {
			continue
		}
		if d.Xf.Pos[2] < behind {
			w.removeDecor(id)
			continue
		}
		kept = append(kept, id)
	}
	w.drift = kept
	if env.Drift == nil {
		return
	}

	lo := math.Max(w.corridor(), 0)
	hi := math.Max(dt.DriftSpread, lo)
	for len(w.drift) < dt.DriftCount {
		m, ok := env.Drift.Pick(w.rng)
		if !ok {
			return
		}
		side := 1.0
		if w.rng.Intn(2) == 0 {
			side = -1
		}
		xf := Transform{
			Pos: mgl64.Vec3{
				side * w.rng.RangeF(lo, hi),
				w.t.Intro.Cruise + w.rng.RangeF(-6, 10),
				playerZ + w.rng.RangeF(dt.DriftNear, w.t.Spawn.LeadDistance),
			},
			Yaw:   w.rng.Angle(),
			Scale: w.rng.RangeF(dt.ScaleMin, dt.ScaleMax),
		}
		id, ok := w.place(0, nil, m, xf)
		if !ok {
			return
		}
		w.drift = append(w.drift, id)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
