package ws

import (
	"sync"

	"trading_platform/internal/logger"
)

// Event is a server-to-client push message
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Hub fans platform events out to connected users. A user may hold several
// connections (dashboard tabs); all of them receive the event.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[int64]map[*Client]struct{})}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c.userID] == nil {
		h.clients[c.userID] = make(map[*Client]struct{})
	}
	h.clients[c.userID][c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.clients[c.userID]; ok {
		if _, ok := conns[c]; ok {
			delete(conns, c)
			close(c.send)
			if len(conns) == 0 {
				delete(h.clients, c.userID)
			}
		}
	}
}

// Push sends an event to every connection of a user. Slow consumers are
// dropped rather than blocking the caller.
func (h *Hub) Push(userID int64, event string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		select {
		case c.send <- Event{Type: event, Payload: payload}:
		default:
			logger.Warn("ws client send buffer full, dropping", "user_id", userID)
		}
	}
}
