// Command pigflight flies a pig down an endless three-lane track.
//
// With no arguments it opens the game window. -term plays in the terminal.
// The stats, shop, buy, select, chest, settings and reset subcommands work
// on the save file without starting the game.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"pigflight/internal/audio"
	"pigflight/internal/desktop"
	"pigflight/internal/game"
	"pigflight/internal/hudfeed"
	"pigflight/internal/scene"
	"pigflight/internal/store"
	"pigflight/internal/term"
)

type options struct {
	term    bool
	tuning  string
	data    string
	hudAddr string
	verbose bool
}

// glfw must run on the main thread.
func init() { runtime.LockOSThread() }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "pigflight: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("pigflight", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opt options
	fs.BoolVar(&opt.term, "term", false, "play in the terminal instead of a window")
	fs.StringVar(&opt.tuning, "tuning", "", "TOML tuning file (defaults when empty or missing)")
	fs.StringVar(&opt.data, "data", defaultDataPath(), "save file")
	fs.StringVar(&opt.hudAddr, "hud-addr", "", "serve the live HUD feed on this address, e.g. :8089")
	fs.BoolVar(&opt.verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if opt.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	kv, err := store.OpenFileKV(opt.data, log)
	if err != nil {
		return fmt.Errorf("open save: %w", err)
	}
	st := store.New(kv, log)

	if fs.NArg() > 0 {
		return runCommand(st, fs.Arg(0), fs.Args()[1:], stdout)
	}
	return play(ctx, opt, st, log)
}

func defaultDataPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "pigflight", "save.msgpack")
}

// seed reads PIGFLIGHT_SEED, falling back to the clock.
func seed() uint64 {
	if s := os.Getenv("PIGFLIGHT_SEED"); s != "" {
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			return v
		}
	}
	return uint64(time.Now().UnixNano())
}

func loadTuning(path string, log *slog.Logger) game.Tuning {
	t, err := game.LoadTuning(path)
	switch {
	case errors.Is(err, game.ErrUnknownTuningKeys):
		log.Warn("tuning file has keys that were ignored", "path", path, "err", err)
	case err != nil:
		log.Warn("tuning file unusable, using defaults", "path", path, "err", err)
	}
	return t
}

func play(ctx context.Context, opt options, st *store.Store, log *slog.Logger) error {
	tuning := loadTuning(opt.tuning, log)
	graph := scene.NewGraph()
	session := game.NewSession(game.SessionConfig{
		Tuning:   tuning,
		Scene:    graph,
		Log:      log,
		Seed:     seed(),
		Loadout:  st.Profile().Loadout(),
		Wardrobe: func(lo game.Loadout) bool { return st.Profile().Allows(lo) },
	})
	session.LoadAssets(ctx)

	snd, err := audio.New(log)
	if err != nil {
		log.Warn("audio init failed (continuing without sound)", "err", err)
	}
	snd.SetVolume(st.Settings().Gain())
	snd.Attach(session.Events)

	bindStore(session, st, log)

	var onFrame func()
	if opt.hudAddr != "" {
		hub := hudfeed.NewHub(log)
		go hub.Run(ctx)
		srv := serveHUD(opt.hudAddr, hub, log)
		defer shutdown(srv, log)
		var frame uint64
		onFrame = func() {
			frame++
			hub.Publish(hudfeed.FromHUD(frame, session.HUD()))
		}
	}

	if opt.term {
		return term.Run(ctx, session, graph, onFrame)
	}
	return desktop.Run(ctx, desktop.Options{
		Session: session,
		Graph:   graph,
		Log:     log,
		OnFrame: onFrame,
	})
}

// bindStore persists finished runs and loadout changes made from the menu.
func bindStore(session *game.Session, st *store.Store, log *slog.Logger) {
	session.Events.Subscribe(game.EventGameOver, func(e game.Event) {
		stats, p, err := st.RecordRun(store.Run{
			Score:    e.Score,
			Distance: e.Distance,
			Dodged:   e.Dodged,
			Ticks:    e.Ticks,
			Biome:    e.Biome.String(),
			At:       time.Now(),
		})
		if err != nil {
			log.Warn("record run", "err", err)
			return
		}
		log.Info("run recorded", "best", stats.BestScore, "flights", stats.Flights, "coins", p.Coins)
	})
	session.Events.Subscribe(game.EventLoadoutChanged, func(e game.Event) {
		if _, err := st.Equip(e.Loadout); err != nil {
			log.Warn("save loadout", "err", err)
		}
	})
}

func serveHUD(addr string, hub *hudfeed.Hub, log *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/hud", hub)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info("hud feed listening", "addr", addr, "path", "/hud")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn("hud feed stopped", "err", err)
		}
	}()
	return srv
}

func shutdown(srv *http.Server, log *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Debug("hud feed shutdown", "err", err)
	}
}
