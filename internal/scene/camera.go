package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"pigflight/internal/game"
)

// Chase camera placement relative to the focus.
const (
	ChaseBack   = 9.0
	ChaseHeight = 3.5
	ChaseLook   = 12.0
	FieldOfView = 60.0
	NearPlane   = 0.1
	FarPlane    = 400.0
)

// Camera looks from Eye at Target with +Y up.
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
}

// Chase frames the focus from behind and above. The lateral position
// follows the focus so lane changes read as sideways motion.
func Chase(focus game.Transform) Camera {
	x, y, z := float32(focus.Pos[0]), float32(focus.Pos[1]), float32(focus.Pos[2])
	return Camera{
		Eye:    mgl32.Vec3{x * 0.6, y + ChaseHeight, z - ChaseBack},
		Target: mgl32.Vec3{x * 0.8, y, z + ChaseLook},
	}
}

// View is mirrored in X so world +X, the right-hand lanes, lands on the
// right of the screen. The mirror reverses triangle winding.
func (c Camera) View() mgl32.Mat4 {
	return mgl32.Scale3D(-1, 1, 1).Mul4(mgl32.LookAtV(c.Eye, c.Target, mgl32.Vec3{0, 1, 0}))
}

func Projection(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(FieldOfView), aspect, NearPlane, FarPlane)
}

// Cull returns the slab between a little behind the eye and the far plane.
func (c Camera) Cull() Cull {
	return Cull{MinZ: float64(c.Eye.Z()) - 5, MaxZ: float64(c.Eye.Z()) + FarPlane}
}
