package game

import "github.com/go-gl/mathgl/mgl64"

type Obstacle struct {
	Model *Model
	Pos   mgl64.Vec3
	Lane  int
	Yaw   float64
	Shape ShapeClass
}

// ObstacleManager spawns obstacles ahead of the player, tests them against
// the player each tick and drops the ones left behind.
type ObstacleManager struct {
	arena *Arena[Obstacle]
	scene Scene
	rng   *Rand
	t     Tuning

	dodged  int
	scratch []InstanceID
}

func NewObstacleManager(t Tuning, scene Scene, rng *Rand) *ObstacleManager {
	if scene == nil {
		scene = NopScene{}
	}
	return &ObstacleManager{
		arena: NewArena[Obstacle](KindObstacle, 64),
		scene: scene,
		rng:   rng,
		t:     t,
	}
}

// TrySpawn rolls the per-tick spawn chance.
func (om *ObstacleManager) TrySpawn(env *Environment, playerZ float64) bool {
	if om.rng.Float64() >= om.t.Spawn.Chance {
		return false
	}
	_, ok := om.Spawn(env, playerZ)
	return ok
}

// Spawn places one obstacle from the active pool in a random lane at the
// lead distance. An empty pool spawns nothing.
func (om *ObstacleManager) Spawn(env *Environment, playerZ float64) (InstanceID, bool) {
	m, ok := env.Obstacles.Pick(om.rng)
	if !ok {
		return 0, false
	}
	st := om.t.Spawn
	lane := om.rng.Range(LaneMin, LaneMax)
	pos := mgl64.Vec3{float64(lane) * om.t.Lanes.Width, 0, playerZ + st.LeadDistance}
	if env.Shape == ShapeCanopyBox {
		pos[0] += om.rng.RangeF(-st.SkyLateralJitter, st.SkyLateralJitter)
		pos[1] = om.t.Intro.Cruise + om.rng.RangeF(st.SkyVerticalMin, st.SkyVerticalMax)
	}
	return om.add(m, pos, lane, om.rng.Angle(), env.Shape), true
}

func (om *ObstacleManager) add(m *Model, pos mgl64.Vec3, lane int, yaw float64, shape ShapeClass) InstanceID {
	id, o := om.arena.Alloc()
	*o = Obstacle{Model: m, Pos: pos, Lane: lane, Yaw: yaw, Shape: shape}
	om.scene.Place(id, m, Transform{Pos: pos, Yaw: yaw, Scale: 1})
	return id
}

// Volume is the box an obstacle collides with. Trunks are a thin column
// standing on the obstacle's ground position; sky obstacles use their whole
// rotated model box, shrunk so near misses stay misses.
func (om *ObstacleManager) Volume(o *Obstacle) AABB {
	ct := om.t.Collision
	if o.Shape == ShapeTrunkCylinder {
		base := mgl64.Vec3{o.Pos[0], o.Pos[1] + ct.TrunkHeight/2, o.Pos[2]}
		return BoxAround(base, mgl64.Vec3{ct.TrunkRadius, ct.TrunkHeight / 2, ct.TrunkRadius})
	}
	return o.Model.Bounds.Transform(Transform{Pos: o.Pos, Yaw: o.Yaw, Scale: 1}).Shrink(ct.SkyShrink)
}

// Tick tests every obstacle against the player box and stops at the first
// hit. Obstacles further than the trail distance behind are then removed and
// counted as dodged.
func (om *ObstacleManager) Tick(player AABB, playerZ float64) (hit bool) {
	om.arena.Each(func(_ InstanceID, o *Obstacle) {
		if hit {
			return
		}
		hit = om.Volume(o).Intersects(player)
	})

	behind := playerZ - om.t.Spawn.TrailDistance
	om.scratch = om.scratch[:0]
	om.arena.Each(func(id InstanceID, o *Obstacle) {
		if o.Pos[2] < behind {
			om.scratch = append(om.scratch, id)
		}
	})
	for _, id := range om.scratch {
		om.arena.Release(id)
		om.scene.Remove(id)
		om.dodged++
	}
	return hit
}

func (om *ObstacleManager) Get(id InstanceID) *Obstacle { return om.arena.Get(id) }

func (om *ObstacleManager) Len() int { return om.arena.Len() }

// Each visits live obstacles.
func (om *ObstacleManager) Each(fn func(id InstanceID, o Obstacle)) {
	om.arena.Each(func(id InstanceID, o *Obstacle) { fn(id, *o) })
}

// Dodged counts obstacles passed since the last Reset.
func (om *ObstacleManager) Dodged() int { return om.dodged }

func (om *ObstacleManager) Reset() {
	om.arena.Each(func(id InstanceID, _ *Obstacle) {
		om.scene.Remove(id)
	})
	om.arena.Reset()
	om.dodged = 0
}
