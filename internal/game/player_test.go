package game

import (
	"math"
	"testing"
)

func TestPlayerLaneClamp(t *testing.T) {
	pc := NewPlayerController(DefaultTuning())

	if !pc.Shift(-1) || pc.State.Lane != -1 {
		t.Fatalf("first left: lane %d", pc.State.Lane)
	}
	for i := 0; i < 3; i++ {
		if pc.Shift(-1) {
			t.Errorf("left at lane -1 reported a change")
		}
		if pc.State.Lane != LaneMin {
			t.Errorf("lane %d, want %d", pc.State.Lane, LaneMin)
		}
	}
	if pc.State.TargetX != -LaneWidth {
		t.Errorf("targetX %v, want %v", pc.State.TargetX, -LaneWidth)
	}

	pc.Shift(1)
	pc.Shift(1)
	pc.Shift(1)
	if pc.State.Lane != LaneMax {
		t.Errorf("lane %d, want %d", pc.State.Lane, LaneMax)
	}
}

func TestPlayerIntegrateSmoothsLaterally(t *testing.T) {
	pc := NewPlayerController(DefaultTuning())
	pc.State.Active = true
	pc.State.Intro = false
	pc.Shift(1)

	wantX := []float64{0.4, 0.76, 1.084}
	for i, want := range wantX {
		pc.Integrate(0.5)
		if math.Abs(pc.State.Pos[0]-want) > 1e-9 {
			t.Fatalf("step %d: x = %v, want %v", i, pc.State.Pos[0], want)
		}
	}
	if pc.State.Pos[2] != 1.5 {
		t.Errorf("z = %v, want 1.5", pc.State.Pos[2])
	}
	if pc.State.Pos[1] != CruiseAltitude {
		t.Errorf("y = %v, want cruise %v", pc.State.Pos[1], CruiseAltitude)
	}

	for i := 0; i < 300; i++ {
		pc.Integrate(0.5)
	}
	if math.Abs(pc.State.Pos[0]-LaneWidth) > 1e-6 {
		t.Errorf("x did not settle on lane: %v", pc.State.Pos[0])
	}
}

func TestPlayerIntegrateInactive(t *testing.T) {
	pc := NewPlayerController(DefaultTuning())
	pc.Shift(1)
	pc.Integrate(0.5)
	if pc.State.Pos[0] != 0 || pc.State.Pos[2] != 0 {
		t.Errorf("inactive player moved to %v", pc.State.Pos)
	}
}

func TestPlayerBoxIsInset(t *testing.T) {
	pc := NewPlayerController(DefaultTuning())
	h := pc.Box().HalfExtents()
	if math.Abs(h[0]-(PlayerHalfX-PlayerShrink)) > 1e-9 {
		t.Errorf("half x = %v", h[0])
	}
}
