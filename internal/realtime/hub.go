package realtime

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/Mamatha1607/connectly-group-chat-application/internal/api/metrics"
)

// Hub is the process-local fan-out registry: user id → active connection,
// plus per-room topics. It is constructed at startup and injected wherever
// events are published; there is no package-level instance.
//
// State is not persisted and delivery is best-effort: events for offline
// users are dropped, nothing is queued or replayed on reconnect, and a later
// registration for the same user silently replaces the earlier one.
type Hub struct {
	mu     sync.RWMutex
	users  map[string]*Conn            // userID → active connection
	topics map[string]map[string]*Conn // roomID → connID → connection
	log    zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		users:  make(map[string]*Conn),
		topics: make(map[string]map[string]*Conn),
		log:    log,
	}
}

// Register binds userID to the connection. A previous mapping for the same
// user is overwritten; its connection is not closed.
func (h *Hub) Register(userID string, c *Conn) {
	h.mu.Lock()
	h.users[userID] = c
	h.mu.Unlock()
	h.log.Debug().Str("user_id", userID).Str("conn_id", c.ID()).Msg("user registered")
}

// JoinRoom subscribes the connection to the room's topic. There is no
// membership validation: any connection may join any topic it names.
func (h *Hub) JoinRoom(c *Conn, roomID string) {
	h.mu.Lock()
	if _, ok := h.topics[roomID]; !ok {
		h.topics[roomID] = make(map[string]*Conn)
	}
	h.topics[roomID][c.ID()] = c
	h.mu.Unlock()
	h.log.Debug().Str("room_id", roomID).Str("conn_id", c.ID()).Msg("joined room topic")
}

// Disconnect removes the connection from the user map and every topic, then
// closes it. Only the first user entry mapped to this connection is removed.
func (h *Hub) Disconnect(c *Conn) {
	h.mu.Lock()
	for userID, conn := range h.users {
		if conn == c {
			delete(h.users, userID)
			break
		}
	}
	for roomID, subscribers := range h.topics {
		delete(subscribers, c.ID())
		if len(subscribers) == 0 {
			delete(h.topics, roomID)
		}
	}
	h.mu.Unlock()
	c.close()
}

// EmitToUser delivers to the user's active connection. Offline users and
// slow consumers are dropped silently; dropped events are never recovered.
func (h *Hub) EmitToUser(userID, event string, data any) {
	h.mu.RLock()
	c, ok := h.users[userID]
	h.mu.RUnlock()

	if !ok {
		metrics.RealtimeDropsTotal.WithLabelValues("offline").Inc()
		return
	}
	if !c.deliver(event, data) {
		metrics.RealtimeDropsTotal.WithLabelValues("slow_consumer").Inc()
	}
}

// EmitToRoom delivers to every connection joined to the room's topic. Topic
// membership, not room membership, governs delivery.
func (h *Hub) EmitToRoom(roomID, event string, data any) {
	h.mu.RLock()
	subscribers := make([]*Conn, 0, len(h.topics[roomID]))
	for _, c := range h.topics[roomID] {
		subscribers = append(subscribers, c)
	}
	h.mu.RUnlock()

	for _, c := range subscribers {
		if !c.deliver(event, data) {
			metrics.RealtimeDropsTotal.WithLabelValues("slow_consumer").Inc()
		}
	}
}

// ConnectedUser reports whether userID currently has a live connection.
func (h *Hub) ConnectedUser(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.users[userID]
	return ok
}
