// Package hudfeed broadcasts the live HUD over websockets so a second
// screen can follow a flight.
package hudfeed

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"pigflight/internal/game"
)

const writeWait = 2 * time.Second

// Snapshot is one frame of the feed, msgpack encoded on the wire.
type Snapshot struct {
	Frame    uint64  `msgpack:"frame"`
	State    string  `msgpack:"state"`
	Biome    string  `msgpack:"biome"`
	Lane     int     `msgpack:"lane"`
	Score    int     `msgpack:"score"`
	Distance int     `msgpack:"distance"`
	Speed    float64 `msgpack:"speed"`
	Altitude float64 `msgpack:"altitude"`
	Final    string  `msgpack:"final,omitempty"`
}

// FromHUD converts the session readout into a feed frame.
func FromHUD(frame uint64, h game.HUD) Snapshot {
	return Snapshot{
		Frame:    frame,
		State:    h.State.String(),
		Biome:    h.Biome.String(),
		Lane:     h.Lane,
		Score:    h.Score,
		Distance: h.Distance,
		Speed:    h.Speed,
		Altitude: h.Altitude,
		Final:    h.FinalText,
	}
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *subscriber) write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.BinaryMessage, data)
}

// Hub fans snapshots out to every connected viewer. Publish never blocks
// the caller; when the hub falls behind only the newest snapshot is kept.
type Hub struct {
	log      *slog.Logger
	upgrader websocket.Upgrader
	in       chan Snapshot

	mu   sync.Mutex
	subs map[*subscriber]struct{}
	last []byte
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		in:   make(chan Snapshot, 1),
		subs: make(map[*subscriber]struct{}),
	}
}

// Publish offers s to the hub, replacing an unsent older snapshot.
func (h *Hub) Publish(s Snapshot) {
	for {
		select {
		case h.in <- s:
			return
		default:
		}
		select {
		case <-h.in:
		default:
		}
	}
}

// Run encodes and broadcasts published snapshots until ctx is done, then
// closes every connection.
func (h *Hub) Run(ctx context.Context) {
	defer h.closeAll()
	for {
		select {
		case <-ctx.Done():
			return
		case s := <-h.in:
			data, err := msgpack.Marshal(&s)
			if err != nil {
				h.log.Warn("encode hud snapshot", "err", err)
				continue
			}
			h.broadcast(data)
		}
	}
}

func (h *Hub) broadcast(data []byte) {
	h.mu.Lock()
	h.last = data
	subs := make([]*subscriber, 0, len(h.subs))
	for sub := range h.subs {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		if err := sub.write(data); err != nil {
			h.log.Debug("hud viewer dropped", "remote", sub.conn.RemoteAddr().String(), "err", err)
			h.drop(sub)
		}
	}
}

// ServeHTTP upgrades the request and registers the viewer. The latest
// snapshot, if any, is sent straight away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("hud upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	sub := &subscriber{conn: conn}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	last := h.last
	h.mu.Unlock()
	h.log.Debug("hud viewer joined", "remote", r.RemoteAddr)

	if last != nil {
		if err := sub.write(last); err != nil {
			h.drop(sub)
			return
		}
	}
	// Viewers never send; reading only notices the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.drop(sub)
			return
		}
	}
}

func (h *Hub) drop(sub *subscriber) {
	h.mu.Lock()
	_, ok := h.subs[sub]
	delete(h.subs, sub)
	h.mu.Unlock()
	if ok {
		sub.conn.Close()
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	subs := h.subs
	h.subs = make(map[*subscriber]struct{})
	h.mu.Unlock()
	for sub := range subs {
		sub.mu.Lock()
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down")
		sub.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		sub.mu.Unlock()
		sub.conn.Close()
	}
}

// Viewers is the number of connected viewers.
func (h *Hub) Viewers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
