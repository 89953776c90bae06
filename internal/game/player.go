package game

import "github.com/go-gl/mathgl/mgl64"

type PlayerState struct {
	Pos      mgl64.Vec3
	Lane     int
	TargetX  float64
	Altitude float64
	Pitch    float64
	Active   bool
	Intro    bool
}

// PlayerController moves the player: forward at the clock's speed, sideways
// by gliding toward the lane centre.
type PlayerController struct {
	State PlayerState

	lanes  LaneTuning
	cruise float64
	shrink float64
	half   mgl64.Vec3
}

func NewPlayerController(t Tuning) *PlayerController {
	pc := &PlayerController{
		lanes:  t.Lanes,
		cruise: t.Intro.Cruise,
		shrink: t.Collision.PlayerShrink,
		half:   mgl64.Vec3{PlayerHalfX, PlayerHalfY, PlayerHalfZ},
	}
	pc.Reset(t.Intro.Altitude)
	return pc
}

// Reset puts the player at the origin in the centre lane, at altitude and in
// the intro sub-phase. The player is inactive until the session starts a run.
func (pc *PlayerController) Reset(altitude float64) {
	pc.State = PlayerState{
		Pos:      mgl64.Vec3{0, altitude, 0},
		Altitude: altitude,
		Intro:    true,
	}
}

// Shift moves the target lane by dir, clamped to the outer lanes. It reports
// whether the lane actually changed.
func (pc *PlayerController) Shift(dir int) bool {
	lane := clamp(pc.State.Lane+dir, LaneMin, LaneMax)
	if lane == pc.State.Lane {
		return false
	}
	pc.State.Lane = lane
	pc.State.TargetX = float64(lane) * pc.lanes.Width
	return true
}

// Integrate advances one tick. Altitude is whatever the biome controller
// set; past the intro it is pinned to cruise.
func (pc *PlayerController) Integrate(speed float64) {
	s := &pc.State
	if !s.Active {
		return
	}
	s.Pos[0] += (s.TargetX - s.Pos[0]) * pc.lanes.Smoothing
	s.Pos[2] += speed
	if !s.Intro {
		s.Altitude = pc.cruise
	}
	s.Pos[1] = s.Altitude
}

// Box is the collision volume: the body box inset by the player margin.
func (pc *PlayerController) Box() AABB {
	return BoxAround(pc.State.Pos, pc.half).Inset(pc.shrink)
}

func (pc *PlayerController) Transform() Transform {
	return Transform{Pos: pc.State.Pos, Pitch: pc.State.Pitch, Scale: 1}
}
