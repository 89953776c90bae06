package term

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"pigflight/internal/game"
)

// Command maps a key to a session command. quit is true for the keys that
// leave the game.
func Command(k tcell.Key, r rune) (cmd game.Command, quit bool) {
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.CmdNone, true
	case tcell.KeyLeft:
		return game.MoveLaneLeft, false
	case tcell.KeyRight:
		return game.MoveLaneRight, false
	case tcell.KeyEnter:
		return game.Confirm, false
	case tcell.KeyRune:
		switch r {
		case 'a', 'A', 'h':
			return game.MoveLaneLeft, false
		case 'd', 'D', 'l':
			return game.MoveLaneRight, false
		case ' ':
			return game.Confirm, false
		case '1':
			return game.CyclePig, false
		case '2':
			return game.CycleWing, false
		case '3':
			return game.CycleTrail, false
		case 'q':
			return game.CmdNone, true
		}
	}
	return game.CmdNone, false
}

// Pump reads screen events until the screen is finalised, pushing commands
// into q. It calls quit once on a quit key.
func Pump(ctx context.Context, screen tcell.Screen, q *game.InputQueue, quit func()) {
	for {
		ev := screen.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			cmd, stop := Command(ev.Key(), ev.Rune())
			if stop {
				quit()
				return
			}
			if cmd != game.CmdNone {
				q.Push(cmd)
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}
