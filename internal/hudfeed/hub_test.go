package hudfeed

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"pigflight/internal/game"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitViewers(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Viewers() != n {
		if time.Now().After(deadline) {
			t.Fatalf("viewers = %d, want %d", h.Viewers(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func read(t *testing.T, conn *websocket.Conn) Snapshot {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	kind, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if kind != websocket.BinaryMessage {
		t.Fatalf("message type %d", kind)
	}
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return s
}

func TestHubBroadcastsSnapshots(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub(nil)
	go hub.Run(ctx)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	a, b := dial(t, srv), dial(t, srv)
	waitViewers(t, hub, 2)

	want := FromHUD(7, game.HUD{
		State:    game.StateRunning,
		Biome:    game.BiomeSky,
		Lane:     1,
		Score:    5001,
		Distance: 812,
		Speed:    1.3,
	})
	hub.Publish(want)

	for _, conn := range []*websocket.Conn{a, b} {
		if got := read(t, conn); got != want {
			t.Errorf("got %+v want %+v", got, want)
		}
	}
}

func TestHubSendsLatestOnJoin(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub(nil)
	go hub.Run(ctx)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	first := dial(t, srv)
	waitViewers(t, hub, 1)
	hub.Publish(Snapshot{Frame: 1, State: "running"})
	read(t, first)

	late := dial(t, srv)
	if got := read(t, late); got.Frame != 1 {
		t.Fatalf("late viewer got frame %d", got.Frame)
	}
}

func TestHubDropsClosedViewers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub(nil)
	go hub.Run(ctx)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	waitViewers(t, hub, 1)
	conn.Close()
	waitViewers(t, hub, 0)
}

func TestPublishNeverBlocks(t *testing.T) {
	hub := NewHub(nil)
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Publish(Snapshot{Frame: uint64(i)})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked without a running hub")
	}
	if s := <-hub.in; s.Frame != 99 {
		t.Fatalf("kept frame %d, want the newest", s.Frame)
	}
}

func TestFromHUD(t *testing.T) {
	s := FromHUD(3, game.HUD{State: game.StateGameOver, Biome: game.BiomeGround, FinalText: "FINAL SCORE: 9"})
	if s.State != "game_over" || s.Biome != "ground" || s.Final != "FINAL SCORE: 9" {
		t.Fatalf("%+v", s)
	}
}
