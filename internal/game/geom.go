package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB is an axis-aligned box in world units.
type AABB struct {
	Min, Max mgl64.Vec3
}

// BoxAround returns the box centred on c with the given half extents.
func BoxAround(c, half mgl64.Vec3) AABB {
	return AABB{Min: c.Sub(half), Max: c.Add(half)}
}

func (b AABB) Intersects(o AABB) bool {
	return b.Min[0] < o.Max[0] && b.Max[0] > o.Min[0] &&
		b.Min[1] < o.Max[1] && b.Max[1] > o.Min[1] &&
		b.Min[2] < o.Max[2] && b.Max[2] > o.Min[2]
}

func (b AABB) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b AABB) HalfExtents() mgl64.Vec3 {
	return b.Max.Sub(b.Min).Mul(0.5)
}

func (b AABB) Empty() bool {
	return b.Max[0] <= b.Min[0] || b.Max[1] <= b.Min[1] || b.Max[2] <= b.Min[2]
}

// Union grows b to enclose o. An empty b is replaced by o.
func (b AABB) Union(o AABB) AABB {
	if b.Empty() {
		return o
	}
	return AABB{
		Min: mgl64.Vec3{math.Min(b.Min[0], o.Min[0]), math.Min(b.Min[1], o.Min[1]), math.Min(b.Min[2], o.Min[2])},
		Max: mgl64.Vec3{math.Max(b.Max[0], o.Max[0]), math.Max(b.Max[1], o.Max[1]), math.Max(b.Max[2], o.Max[2])},
	}
}

// Shrink removes frac of every half extent, keeping the centre.
func (b AABB) Shrink(frac float64) AABB {
	frac = clampF(frac, 0, 1)
	return BoxAround(b.Center(), b.HalfExtents().Mul(1-frac))
}

// Inset removes a fixed margin from every side, never inverting the box.
func (b AABB) Inset(margin float64) AABB {
	h := b.HalfExtents()
	for i := 0; i < 3; i++ {
		h[i] = math.Max(h[i]-margin, 0)
	}
	return BoxAround(b.Center(), h)
}

// Transform places a local box in the world: uniform scale, yaw about Y, then translate.
// The result encloses the rotated box.
func (b AABB) Transform(xf Transform) AABB {
	s := xf.Scale
	if s == 0 {
		s = 1
	}
	c := b.Center().Mul(s)
	h := b.HalfExtents().Mul(s)
	cos, sin := math.Cos(xf.Yaw), math.Sin(xf.Yaw)
	ac, as := math.Abs(cos), math.Abs(sin)
	rc := mgl64.Vec3{c[0]*cos + c[2]*sin, c[1], -c[0]*sin + c[2]*cos}
	rh := mgl64.Vec3{h[0]*ac + h[2]*as, h[1], h[0]*as + h[2]*ac}
	return BoxAround(rc.Add(xf.Pos), rh)
}

// Transform positions a renderable instance.
type Transform struct {
	Pos   mgl64.Vec3
	Yaw   float64
	Pitch float64
	Scale float64
}

func At(pos mgl64.Vec3) Transform {
	return Transform{Pos: pos, Scale: 1}
}
