package desktop

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"pigflight/internal/game"
)

// bindings maps keys to commands. Several keys may share a command.
var bindings = []struct {
	key glfw.Key
	cmd game.Command
}{
	{glfw.KeyLeft, game.MoveLaneLeft},
	{glfw.KeyA, game.MoveLaneLeft},
	{glfw.KeyRight, game.MoveLaneRight},
	{glfw.KeyD, game.MoveLaneRight},
	{glfw.KeySpace, game.Confirm},
	{glfw.KeyEnter, game.Confirm},
	{glfw.Key1, game.CyclePig},
	{glfw.Key2, game.CycleWing},
	{glfw.Key3, game.CycleTrail},
}

type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{prevKeys: make(map[glfw.Key]bool)}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// Poll turns fresh key presses into commands on q. A held key fires once.
func (in *Input) Poll(window *glfw.Window, q *game.InputQueue) {
	for _, b := range bindings {
		if in.JustPressed(window, b.key) {
			q.Push(b.cmd)
		}
	}
}
