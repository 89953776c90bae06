// Package term is the terminal frontend: a top-down map of the lanes drawn
// with tcell, plus a key pump feeding the session input queue.
package term

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"pigflight/internal/game"
	"pigflight/internal/scene"
)

// Visible slab of the world around the player.
const (
	ViewSpan   = 36.0  // lateral world units across the screen
	ViewBehind = 6.0   // world units below the player row
	ViewAhead  = 150.0 // world units to the top row
	hudRows    = 2
)

// View draws a scene graph into a tcell screen.
type View struct {
	screen tcell.Screen
	graph  *scene.Graph
}

func NewView(screen tcell.Screen, g *scene.Graph) *View {
	return &View{screen: screen, graph: g}
}

// frame maps world x/z onto screen cells below the HUD rows.
type frame struct {
	w, h       int
	zMin, zMax float64
}

func (f frame) col(x float64) int {
	return int(math.Floor((x + ViewSpan/2) / ViewSpan * float64(f.w)))
}

func (f frame) row(z float64) int {
	rows := f.h - hudRows
	return f.h - 1 - int(math.Floor((z-f.zMin)/(f.zMax-f.zMin)*float64(rows-1)+0.5))
}

func (f frame) cell(x, z float64) (col, row int, ok bool) {
	if z < f.zMin || z > f.zMax {
		return 0, 0, false
	}
	col = f.col(x)
	if col < 0 || col >= f.w {
		return 0, 0, false
	}
	return col, f.row(z), true
}

// Draw renders one frame and shows it.
func (v *View) Draw(h game.HUD) {
	s := v.screen
	w, ht := s.Size()
	a := v.graph.Atmosphere()
	bg := tcell.StyleDefault.Background(rgb(a.Fog))
	s.SetStyle(bg)
	s.Clear()

	if focus, ok := v.graph.Focus(); ok && ht > hudRows {
		f := frame{w: w, h: ht, zMin: focus.Pos[2] - ViewBehind, zMax: focus.Pos[2] + ViewAhead}
		v.drawWorld(f, bg)
	}
	v.drawHUD(h, w, ht)
	s.Show()
}

func (v *View) drawWorld(f frame, bg tcell.Style) {
	var player *scene.Node
	// Scenery first so obstacles and the player stay on top.
	v.graph.Each(func(n *scene.Node) {
		switch n.ID.Kind() {
		case game.KindDecoration:
			v.plot(f, n, glyph(n), bg)
		case game.KindPlayer:
			player = n
		}
	})
	v.graph.Each(func(n *scene.Node) {
		if n.ID.Kind() == game.KindObstacle {
			v.fill(f, n, bg)
		}
	})
	if player != nil {
		v.plot(f, player, '@', bg.Bold(true))
	}
}

func (v *View) plot(f frame, n *scene.Node, r rune, base tcell.Style) {
	col, row, ok := f.cell(n.Xf.Pos[0], n.Xf.Pos[2])
	if !ok {
		return
	}
	v.screen.SetContent(col, row, r, nil, base.Foreground(modelColor(n.Model)))
}

// fill covers the obstacle's footprint so wide sky obstacles read as wide.
func (v *View) fill(f frame, n *scene.Node, base tcell.Style) {
	if n.Model == nil {
		return
	}
	box := n.Model.Bounds.Transform(n.Xf)
	zlo, zhi := math.Max(box.Min[2], f.zMin), math.Min(box.Max[2], f.zMax)
	c0, c1 := max(f.col(box.Min[0]), 0), min(f.col(box.Max[0]), f.w-1)
	if zlo > zhi || c0 > c1 {
		return
	}
	st := base.Foreground(modelColor(n.Model))
	for row := f.row(zhi); row <= f.row(zlo); row++ {
		for col := c0; col <= c1; col++ {
			v.screen.SetContent(col, row, '#', nil, st)
		}
	}
}

func (v *View) drawHUD(h game.HUD, w, ht int) {
	top, centre := scene.OverlayLines(h)
	st := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for i, line := range top {
		if i < hudRows {
			v.text(0, i, line, st)
		}
	}
	y := ht/2 - len(centre)/2
	for i, line := range centre {
		v.text((w-len(line))/2, y+i, line, st.Bold(true))
	}
}

func (v *View) text(x, y int, s string, st tcell.Style) {
	for i, r := range []rune(s) {
		v.screen.SetContent(x+i, y, r, nil, st)
	}
}

// glyph picks a character from the model's shape: flat things, tall
// things and things in the air.
func glyph(n *scene.Node) rune {
	if n.Model == nil {
		return '.'
	}
	b := n.Model.Bounds.Transform(n.Xf)
	switch {
	case b.Min[1] > 2:
		return '~'
	case b.Max[1]-b.Min[1] > 8:
		return 'A'
	case b.Max[1]-b.Min[1] > 2:
		return '^'
	}
	return '.'
}

func modelColor(m *game.Model) tcell.Color {
	if m == nil || len(m.Parts) == 0 {
		return tcell.ColorWhite
	}
	return rgb(m.Parts[len(m.Parts)-1].Color)
}

func rgb(c game.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
