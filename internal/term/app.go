package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"pigflight/internal/game"
	"pigflight/internal/scene"
)

// Run takes over the terminal and drives the session at the tick rate
// until a quit key or ctx ends it. onFrame, if set, runs after each tick.
func Run(ctx context.Context, session *game.Session, g *scene.Graph, onFrame func()) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go Pump(ctx, screen, session.Input, cancel)

	view := NewView(screen, g)
	ticker := time.NewTicker(time.Second / game.TicksPerSecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			session.Tick()
			if onFrame != nil {
				onFrame()
			}
			view.Draw(session.HUD())
		}
	}
}
