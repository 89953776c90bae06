package scene

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"pigflight/internal/game"
)

// Overlay text positions, in pixels at 1x.
const (
	overlayMargin = 8
	lineHeight    = 16
)

const wardrobeHint = "1/2/3 TO CHANGE PIG/WINGS/TRAIL"

var (
	textColor   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	shadowColor = color.RGBA{A: 200}
)

// OverlayLines is the HUD as text. Top lines are the live readout, the
// centre block is the menu.
func OverlayLines(h game.HUD) (top, centre []string) {
	if h.State != game.StateIdle {
		top = []string{h.ScoreText, h.DistanceText}
	}
	switch {
	case h.State == game.StateIdle:
		centre = []string{"PIG FLIGHT", "", "SPACE TO FLY", "LEFT/RIGHT TO CHANGE LANE", wardrobeHint}
	case h.State == game.StateGameOver && h.Menu:
		centre = []string{h.FinalText, "", "SPACE TO FLY AGAIN", wardrobeHint}
	case h.State == game.StateGameOver:
		centre = []string{h.FinalText}
	}
	return top, centre
}

// RenderOverlay clears dst and rasterises the HUD into it.
func RenderOverlay(dst *image.RGBA, h game.HUD) {
	draw.Draw(dst, dst.Bounds(), image.Transparent, image.Point{}, draw.Src)
	top, centre := OverlayLines(h)
	b := dst.Bounds()

	y := overlayMargin + basicfont.Face7x13.Ascent
	for _, s := range top {
		drawShadowed(dst, s, overlayMargin, y)
		y += lineHeight
	}

	y = b.Dy()/2 - len(centre)*lineHeight/2 + basicfont.Face7x13.Ascent
	for _, s := range centre {
		if s != "" {
			x := (b.Dx() - TextWidth(s)) / 2
			drawShadowed(dst, s, x, y)
		}
		y += lineHeight
	}
}

// TextWidth is the advance of s in the overlay face.
func TextWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Round()
}

func drawShadowed(dst *image.RGBA, s string, x, y int) {
	d := font.Drawer{Dst: dst, Face: basicfont.Face7x13}
	d.Src = image.NewUniform(shadowColor)
	d.Dot = fixed.P(x+1, y+1)
	d.DrawString(s)
	d.Src = image.NewUniform(textColor)
	d.Dot = fixed.P(x, y)
	d.DrawString(s)
}

// OverlayText joins every overlay line, for tests and logs.
func OverlayText(h game.HUD) string {
	top, centre := OverlayLines(h)
	return strings.Join(append(top, centre...), "\n")
}
