// internal/handlers/hub.go
package handlers

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/jason-s-yu/monopoly/internal/event"
	"github.com/sirupsen/logrus"
)

// frameConn is the part of *websocket.Conn the hub writes through.
type frameConn interface {
	Write(ctx context.Context, typ websocket.MessageType, p []byte) error
	Close(code websocket.StatusCode, reason string) error
}

// Hub is a game's set of live connections. It subscribes to the game's topic and
// writes every event to every connection.
type Hub struct {
	gameID       uuid.UUID
	log          *logrus.Logger
	writeTimeout time.Duration

	mu    sync.Mutex
	conns map[frameConn]int // conn -> uid
}

func NewHub(gameID uuid.UUID, logger *logrus.Logger) *Hub {
	return &Hub{
		gameID:       gameID,
		log:          logger,
		writeTimeout: 3 * time.Second,
		conns:        make(map[frameConn]int),
	}
}

func (h *Hub) Add(c frameConn, uid int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c] = uid
}

func (h *Hub) Remove(c frameConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, c)
}

// Count is the number of live connections.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Deliver implements event.Subscriber.
func (h *Hub) Deliver(ev event.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.log.Errorf("Failed to marshal event (%s) for game %s: %v", ev.Type, h.gameID, err)
		return
	}

	h.mu.Lock()
	targets := make(map[frameConn]int, len(h.conns))
	for c, uid := range h.conns {
		targets[c] = uid
	}
	h.mu.Unlock()

	for c, uid := range targets {
		ctx, cancel := context.WithTimeout(context.Background(), h.writeTimeout)
		err := c.Write(ctx, websocket.MessageText, data)
		cancel()
		if err != nil {
			h.log.Warnf("Failed to write event %d to player %d in game %s: %v", ev.Seq, uid, h.gameID, err)
		}
	}
}

// CloseAll disconnects every client with the given code.
func (h *Hub) CloseAll(code websocket.StatusCode, reason string) {
	h.mu.Lock()
	conns := h.conns
	h.conns = make(map[frameConn]int)
	h.mu.Unlock()
	for c := range conns {
		_ = c.Close(code, reason)
	}
}
