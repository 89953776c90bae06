package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Tile is one recyclable ground segment.
type Tile struct {
	Col   int
	Pos   mgl64.Vec3 // centre of the tile on the ground plane
	Model *Model
	decor []InstanceID
}

// Decoration is a cosmetic placement. It never collides.
type Decoration struct {
	Model *Model
	Xf    Transform
	Owner InstanceID // owning tile, zero for drift items
}

// WorldStreamer keeps a moving window of ground tiles and scenery around the
// player. Tiles are held in z order; a full row is recycled from the back to
// the front as the player passes.
type WorldStreamer struct {
	tiles *Arena[Tile]
	decor *Arena[Decoration]
	order []InstanceID // by z, then column; len is a multiple of gridW
	drift []InstanceID

	scene  Scene
	rng    *Rand
	ground *Pool
	t      Tuning

	gridW, gridD int
	tileW, tileD float64
	recycled     int
}

func NewWorldStreamer(t Tuning, ps *Pools, scene Scene, rng *Rand) *WorldStreamer {
	if scene == nil {
		scene = NopScene{}
	}
	return &WorldStreamer{
		tiles:  NewArena[Tile](KindTile, t.Grid.Width*t.Grid.Depth),
		decor:  NewArena[Decoration](KindDecoration, 256),
		scene:  scene,
		rng:    rng,
		ground: ps.Get(PoolGround),
		t:      t,
		tileW:  DefaultTileSize,
		tileD:  DefaultTileSize,
	}
}

func (w *WorldStreamer) Populated() bool { return len(w.order) > 0 }

// TileSize is the tile footprint, fixed at Initialize.
func (w *WorldStreamer) TileSize() (width, depth float64) { return w.tileW, w.tileD }

// Recycled counts rows moved to the front since the last Reset.
func (w *WorldStreamer) Recycled() int { return w.recycled }

// Initialize lays out gridW×gridD tiles centred on x=0 from z=0 and seeds
// each with decorations. It does nothing while the grid is populated.
func (w *WorldStreamer) Initialize(env *Environment, gridW, gridD int) {
	if w.Populated() || gridW < 1 || gridD < 1 {
		return
	}
	w.gridW, w.gridD = gridW, gridD
	w.measureTiles()

	first := -(gridW / 2)
	for row := 0; row < gridD; row++ {
		for c := 0; c < gridW; c++ {
			col := first + c
			id, tile := w.tiles.Alloc()
			tile.Col = col
			tile.Pos = mgl64.Vec3{float64(col) * w.tileW, 0, float64(row) * w.tileD}
			w.order = append(w.order, id)
			w.placeTile(id, tile)
			w.seedTile(env, id, tile)
		}
	}
}

// measureTiles takes the footprint from the first ground model. Until the
// ground pool is ready the default footprint is used.
func (w *WorldStreamer) measureTiles() {
	w.tileW, w.tileD = DefaultTileSize, DefaultTileSize
	ms := w.ground.Models()
	if len(ms) == 0 {
		return
	}
	size := ms[0].Bounds.Max.Sub(ms[0].Bounds.Min)
	if size[0] > 0 && size[2] > 0 {
		w.tileW, w.tileD = size[0], size[2]
	}
}

// Tick recycles rows that fell behind and keeps the drift field around the
// player while the environment has one.
func (w *WorldStreamer) Tick(playerZ float64, env *Environment) {
	if env.StreamGround {
		w.recycle(playerZ, env)
	}
	w.tickDrift(playerZ, env)
}

func (w *WorldStreamer) recycle(playerZ float64, env *Environment) {
	if !w.Populated() {
		return
	}
	limit := playerZ - w.tileD*float64(w.t.Grid.RecycleRows)
	for {
		front := w.tiles.Get(w.order[0])
		if front == nil || front.Pos[2] >= limit {
			return
		}
		furthest := w.tiles.Get(w.order[len(w.order)-1]).Pos[2]
		row := make([]InstanceID, w.gridW)
		copy(row, w.order[:w.gridW])
		for _, id := range row {
			tile := w.tiles.Get(id)
			w.clearTile(tile)
			tile.Pos[2] = furthest + w.tileD
			w.placeTile(id, tile)
			w.seedTile(env, id, tile)
		}
		copy(w.order, w.order[w.gridW:])
		copy(w.order[len(w.order)-w.gridW:], row)
		w.recycled++
	}
}

func (w *WorldStreamer) placeTile(id InstanceID, tile *Tile) {
	if tile.Model == nil {
		tile.Model, _ = w.ground.Pick(w.rng)
	}
	if tile.Model != nil {
		w.scene.Place(id, tile.Model, At(tile.Pos))
	}
}

func (w *WorldStreamer) clearTile(tile *Tile) {
	for _, id := range tile.decor {
		w.removeDecor(id)
	}
	tile.decor = tile.decor[:0]
}

func (w *WorldStreamer) removeDecor(id InstanceID) {
	if w.decor.Release(id) {
		w.scene.Remove(id)
	}
}

// Reset removes every tile and decoration from the scene and empties the
// collections.
func (w *WorldStreamer) Reset() {
	w.tiles.Each(func(id InstanceID, t *Tile) {
		if t.Model != nil {
			w.scene.Remove(id)
		}
	})
	w.decor.Each(func(id InstanceID, _ *Decoration) {
		w.scene.Remove(id)
	})
	w.tiles.Reset()
	w.decor.Reset()
	w.order = w.order[:0]
	w.drift = w.drift[:0]
	w.recycled = 0
}

// Tiles returns the tiles in stream order.
func (w *WorldStreamer) Tiles() []Tile {
	out := make([]Tile, 0, len(w.order))
	for _, id := range w.order {
		if t := w.tiles.Get(id); t != nil {
			out = append(out, *t)
		}
	}
	return out
}

// EachDecoration visits every live decoration.
func (w *WorldStreamer) EachDecoration(fn func(id InstanceID, d Decoration)) {
	w.decor.Each(func(id InstanceID, d *Decoration) { fn(id, *d) })
}

func (w *WorldStreamer) DecorationCount() int { return w.decor.Len() }

func (w *WorldStreamer) corridor() float64 {
	return w.t.Lanes.Corridor()
}

// inCorridor reports whether x lies in the band the lanes travel through.
func (w *WorldStreamer) inCorridor(x float64) bool {
	return math.Abs(x) < w.corridor()
}
