// Package scene keeps the renderable instances the game places and turns
// them into draw lists for the frontends.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"pigflight/internal/game"
)

// Node is one placed instance.
type Node struct {
	ID    game.InstanceID
	Model *game.Model
	Xf    game.Transform
}

// Graph implements game.Scene in memory. It is owned by the tick goroutine.
type Graph struct {
	nodes  map[game.InstanceID]*Node
	camera game.InstanceID
	atmos  game.Atmosphere

	places  int
	removes int
}

var _ game.Scene = (*Graph)(nil)

func NewGraph() *Graph {
	return &Graph{nodes: make(map[game.InstanceID]*Node, 512)}
}

func (g *Graph) Place(id game.InstanceID, m *game.Model, xf game.Transform) {
	g.places++
	if n, ok := g.nodes[id]; ok {
		n.Model = m
		n.Xf = xf
		return
	}
	g.nodes[id] = &Node{ID: id, Model: m, Xf: xf}
}

func (g *Graph) Remove(id game.InstanceID) {
	if _, ok := g.nodes[id]; !ok {
		return
	}
	g.removes++
	delete(g.nodes, id)
}

func (g *Graph) AttachCamera(id game.InstanceID) { g.camera = id }
func (g *Graph) SetAtmosphere(a game.Atmosphere) { g.atmos = a }
func (g *Graph) Atmosphere() game.Atmosphere     { return g.atmos }
func (g *Graph) Len() int                        { return len(g.nodes) }
func (g *Graph) Node(id game.InstanceID) *Node   { return g.nodes[id] }
func (g *Graph) Counters() (places, removes int) { return g.places, g.removes }

// Each visits nodes in no particular order.
func (g *Graph) Each(fn func(n *Node)) {
	for _, n := range g.nodes {
		fn(n)
	}
}

// Focus is the transform of the camera target. ok is false until a target
// is attached and placed.
func (g *Graph) Focus() (game.Transform, bool) {
	n, ok := g.nodes[g.camera]
	if !ok || g.camera == 0 {
		return game.Transform{}, false
	}
	return n.Xf, true
}

// Instance is one coloured unit cube in world space.
type Instance struct {
	World mgl32.Mat4
	Color mgl32.Vec3
}

// Cull limits a draw list to a slab of the track.
type Cull struct {
	MinZ, MaxZ float64
}

func (c Cull) keeps(z float64) bool {
	if c.MinZ == 0 && c.MaxZ == 0 {
		return true
	}
	return z >= c.MinZ && z <= c.MaxZ
}

// AppendInstances flattens every model part of every kept node into dst.
func (g *Graph) AppendInstances(dst []Instance, cull Cull) []Instance {
	for _, n := range g.nodes {
		if n.Model == nil || !cull.keeps(n.Xf.Pos[2]) {
			continue
		}
		base := WorldMatrix(n.Xf)
		for _, p := range n.Model.Parts {
			r, gr, b := p.Color.Floats()
			dst = append(dst, Instance{
				World: base.Mul4(PartMatrix(p)),
				Color: mgl32.Vec3{r, gr, b},
			})
		}
	}
	return dst
}

// WorldMatrix is translate * yaw * pitch * uniform scale.
func WorldMatrix(xf game.Transform) mgl32.Mat4 {
	s := float32(xf.Scale)
	if s == 0 {
		s = 1
	}
	t := mgl32.Translate3D(float32(xf.Pos[0]), float32(xf.Pos[1]), float32(xf.Pos[2]))
	return t.
		Mul4(mgl32.HomogRotate3DY(float32(xf.Yaw))).
		Mul4(mgl32.HomogRotate3DX(float32(xf.Pitch))).
		Mul4(mgl32.Scale3D(s, s, s))
}

// PartMatrix maps the unit cube centred on the origin onto p.
func PartMatrix(p game.Part) mgl32.Mat4 {
	return mgl32.Translate3D(float32(p.Offset[0]), float32(p.Offset[1]), float32(p.Offset[2])).
		Mul4(mgl32.Scale3D(float32(p.Size[0]), float32(p.Size[1]), float32(p.Size[2])))
}
