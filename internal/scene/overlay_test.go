package scene

import (
	"image"
	"strings"
	"testing"

	"pigflight/internal/game"
)

func TestOverlayLinesByState(t *testing.T) {
	for _, tc := range []struct {
		name string
		hud  game.HUD
		want []string
		not  []string
	}{
		{
			name: "idle",
			hud:  game.HUD{State: game.StateIdle, Menu: true},
			want: []string{"SPACE TO FLY", "CHANGE PIG"},
			not:  []string{"SCORE"},
		},
		{
			name: "running",
			hud: game.HUD{
				State:        game.StateRunning,
				ScoreText:    game.FormatScore(42),
				DistanceText: game.FormatDistance(12),
			},
			want: []string{"SCORE: 00042", "DIST: 12m"},
			not:  []string{"SPACE"},
		},
		{
			name: "game over before reveal",
			hud:  game.HUD{State: game.StateGameOver, FinalText: game.FormatFinal(7)},
			want: []string{"FINAL SCORE: 7"},
			not:  []string{"AGAIN", "CHANGE PIG"},
		},
		{
			name: "game over revealed",
			hud:  game.HUD{State: game.StateGameOver, FinalText: game.FormatFinal(7), Menu: true},
			want: []string{"FINAL SCORE: 7", "SPACE TO FLY AGAIN", "CHANGE PIG"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			text := OverlayText(tc.hud)
			for _, w := range tc.want {
				if !strings.Contains(text, w) {
					t.Errorf("missing %q in %q", w, text)
				}
			}
			for _, n := range tc.not {
				if strings.Contains(text, n) {
					t.Errorf("unexpected %q in %q", n, text)
				}
			}
		})
	}
}

func TestRenderOverlayDrawsPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 320, 200))
	RenderOverlay(img, game.HUD{State: game.StateRunning, ScoreText: "SCORE: 00001", DistanceText: "DIST: 1m"})

	lit := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Fatal("overlay is blank")
	}

	RenderOverlay(img, game.HUD{State: game.StateRunning})
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			t.Fatal("stale pixels survive a redraw with no text")
		}
	}
}

func TestTextWidth(t *testing.T) {
	if got := TextWidth("ABC"); got != 21 {
		t.Fatalf("width %d want 21", got)
	}
}
