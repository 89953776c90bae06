package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"pigflight/internal/game"
)

func cube(name string, size float64, col game.RGB) *game.Model {
	return game.NewModel(name, game.Part{
		Size:  mgl64.Vec3{size, size, size},
		Color: col,
	})
}

func near(a, b mgl32.Vec3) bool {
	return a.Sub(b).Len() < 1e-4
}

func TestPlaceMovesInPlace(t *testing.T) {
	g := NewGraph()
	id := game.MakeInstanceID(game.KindObstacle, 3)
	m := cube("box", 1, game.RGB{R: 255})

	g.Place(id, m, game.At(mgl64.Vec3{1, 0, 5}))
	g.Place(id, m, game.At(mgl64.Vec3{2, 0, 9}))
	if g.Len() != 1 {
		t.Fatalf("len %d want 1", g.Len())
	}
	if got := g.Node(id).Xf.Pos; got != (mgl64.Vec3{2, 0, 9}) {
		t.Fatalf("pos %v", got)
	}

	g.Remove(id)
	g.Remove(id)
	places, removes := g.Counters()
	if g.Len() != 0 || places != 2 || removes != 1 {
		t.Fatalf("len=%d places=%d removes=%d", g.Len(), places, removes)
	}
}

func TestFocusFollowsCameraTarget(t *testing.T) {
	g := NewGraph()
	if _, ok := g.Focus(); ok {
		t.Fatal("focus before attach")
	}
	g.AttachCamera(game.PlayerID)
	if _, ok := g.Focus(); ok {
		t.Fatal("focus before the target is placed")
	}
	g.Place(game.PlayerID, cube("pig", 1, game.RGB{}), game.At(mgl64.Vec3{0, 1.5, 42}))
	xf, ok := g.Focus()
	if !ok || xf.Pos[2] != 42 {
		t.Fatalf("focus %v ok=%v", xf, ok)
	}
}

func TestWorldMatrixMatchesBoundsTransform(t *testing.T) {
	m := game.NewModel("offset", game.Part{
		Offset: mgl64.Vec3{2, 1, 0},
		Size:   mgl64.Vec3{1, 1, 1},
	})
	xf := game.Transform{Pos: mgl64.Vec3{10, 0, 20}, Yaw: math.Pi / 2, Scale: 2}

	centre := WorldMatrix(xf).Mul4(PartMatrix(m.Parts[0])).Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	want := m.Bounds.Transform(xf).Center()
	if !near(centre, mgl32.Vec3{float32(want[0]), float32(want[1]), float32(want[2])}) {
		t.Fatalf("centre %v want %v", centre, want)
	}
}

func TestAppendInstancesCulls(t *testing.T) {
	g := NewGraph()
	two := game.NewModel("two",
		game.Part{Size: mgl64.Vec3{1, 1, 1}, Color: game.RGB{R: 255}},
		game.Part{Offset: mgl64.Vec3{0, 1, 0}, Size: mgl64.Vec3{1, 1, 1}, Color: game.RGB{G: 255}},
	)
	g.Place(game.MakeInstanceID(game.KindDecoration, 0), two, game.At(mgl64.Vec3{0, 0, 10}))
	g.Place(game.MakeInstanceID(game.KindDecoration, 1), two, game.At(mgl64.Vec3{0, 0, 900}))
	g.Place(game.MakeInstanceID(game.KindDecoration, 2), nil, game.At(mgl64.Vec3{0, 0, 10}))

	if got := len(g.AppendInstances(nil, Cull{})); got != 4 {
		t.Fatalf("unculled: %d instances want 4", got)
	}
	got := g.AppendInstances(nil, Cull{MinZ: 0, MaxZ: 100})
	if len(got) != 2 {
		t.Fatalf("culled: %d instances want 2", len(got))
	}
	for _, in := range got {
		if in.Color != (mgl32.Vec3{1, 0, 0}) && in.Color != (mgl32.Vec3{0, 1, 0}) {
			t.Errorf("colour %v", in.Color)
		}
	}
}

func TestChaseSitsBehindAndAbove(t *testing.T) {
	c := Chase(game.At(mgl64.Vec3{4, 1.5, 100}))
	if c.Eye.Z() >= 100 || c.Eye.Y() <= 1.5 {
		t.Fatalf("eye %v not behind and above", c.Eye)
	}
	if c.Target.Z() <= 100 {
		t.Fatalf("target %v not ahead", c.Target)
	}
	cull := c.Cull()
	if !cull.keeps(100) || cull.keeps(float64(c.Eye.Z())-10) {
		t.Fatalf("cull %+v", cull)
	}
}

func TestRightLaneIsScreenRight(t *testing.T) {
	c := Chase(game.At(mgl64.Vec3{0, 1.5, 100}))
	vp := Projection(16.0 / 9).Mul4(c.View())
	clip := func(x float32) float32 {
		p := vp.Mul4x1(mgl32.Vec4{x, 1.5, 120, 1})
		return p.X() / p.W()
	}
	if left, right := clip(-4), clip(4); right <= left {
		t.Fatalf("right lane at ndc %v, left lane at %v", right, left)
	}
}
