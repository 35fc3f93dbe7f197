package ws

import (
	"sync"

	"chess_arena/internal/logger"
	"chess_arena/internal/session"
)

// Hub groups live connections into rooms keyed by match id and fans
// events out to them. It implements session.Broadcaster; within one
// room, events are delivered in the order Broadcast was called because
// every client drains its send queue in FIFO order.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*Client]struct{})}
}

var _ session.Broadcaster = (*Hub)(nil)

func (h *Hub) JoinRoom(c *Client, matchID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[matchID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[matchID] = room
	}
	room[c] = struct{}{}

	logger.Debug("joined room", "match_id", matchID, "identity", c.Username, "size", len(room))
}

func (h *Hub) LeaveRoom(c *Client, matchID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(c, matchID)
}

// RemoveClient drops a disconnected client from every room.
func (h *Hub) RemoveClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for matchID := range h.rooms {
		h.leaveLocked(c, matchID)
	}
}

func (h *Hub) leaveLocked(c *Client, matchID string) {
	room, ok := h.rooms[matchID]
	if !ok {
		return
	}
	if _, in := room[c]; !in {
		return
	}
	delete(room, c)
	if len(room) == 0 {
		delete(h.rooms, matchID)
	}
}

// Broadcast delivers the event to every connection in the match's room.
func (h *Hub) Broadcast(matchID, event string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	room, ok := h.rooms[matchID]
	if !ok {
		return
	}
	for c := range room {
		c.Reply(event, payload)
	}
}

// RoomSize reports current membership, mainly for tests and logs.
func (h *Hub) RoomSize(matchID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[matchID])
}
