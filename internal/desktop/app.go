// Package desktop is the windowed frontend: a glfw window, an OpenGL box
// renderer over the scene graph and keyboard input.
package desktop

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"pigflight/internal/game"
	"pigflight/internal/scene"
)

// maxCatchUp bounds the ticks run for one slow frame.
const maxCatchUp = 5

type Options struct {
	Title   string
	Session *game.Session
	Graph   *scene.Graph
	Log     *slog.Logger
	// OnFrame runs after each frame's ticks, on the loop goroutine.
	OnFrame func()
}

// Run opens the window and drives the session at a fixed tick rate until
// the window closes, Escape is pressed or ctx is done. It must be called
// from the main goroutine.
func Run(ctx context.Context, opt Options) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	log := opt.Log
	if log == nil {
		log = slog.Default()
	}
	title := opt.Title
	if title == "" {
		title = "Pig Flight"
	}

	window, err := initWindow(title)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	log.Debug("gl ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	input := NewInput()
	step := 1.0 / game.TicksPerSecond
	acc := 0.0
	last := glfw.GetTime()
	for !window.ShouldClose() {
		if ctx.Err() != nil {
			return nil
		}
		now := glfw.GetTime()
		acc += now - last
		last = now

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}
		input.Poll(window, opt.Session.Input)

		n := 0
		for acc >= step && n < maxCatchUp {
			opt.Session.Tick()
			acc -= step
			n++
		}
		if n == maxCatchUp {
			acc = 0
		}
		if opt.OnFrame != nil {
			opt.OnFrame()
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}
		rend.DrawScene(opt.Graph, fbW, fbH)
		rend.DrawHUD(opt.Session.HUD(), fbW, fbH)
		window.SwapBuffers()
	}
	return nil
}
