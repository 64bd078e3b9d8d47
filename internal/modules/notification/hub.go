package notification

import (
	"sync"

	"github.com/gorilla/websocket"
)

// client wraps a connection with its write lock. gorilla/websocket allows at
// most one concurrent writer per connection, and both notification pushes
// and keep-alive pings write, so every write goes through mu.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *client) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

// Hub tracks one live websocket per user. A new connection for the same user
// replaces the old one.
type Hub struct {
	clients map[int64]*client
	mutex   sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[int64]*client),
	}
}

func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if old, exists := h.clients[userID]; exists && old != nil {
		_ = old.conn.Close()
	}

	h.clients[userID] = &client{conn: conn}
}

func (h *Hub) Unregister(userID int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if c, exists := h.clients[userID]; exists && c != nil {
		_ = c.conn.Close()
		delete(h.clients, userID)
	}
}

func (h *Hub) get(userID int64) *client {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.clients[userID]
}

// SendToUser pushes a JSON payload to the user's connection if one is open.
// A write failure drops the connection.
func (h *Hub) SendToUser(userID int64, message any) bool {
	c := h.get(userID)
	if c == nil {
		return false
	}

	if err := c.writeJSON(message); err != nil {
		h.Unregister(userID)
		return false
	}

	return true
}

// Ping sends a keep-alive ping to the user's connection. Returns false when
// the user is gone or the write failed; a failed write drops the connection.
func (h *Hub) Ping(userID int64) bool {
	c := h.get(userID)
	if c == nil {
		return false
	}

	if err := c.ping(); err != nil {
		h.Unregister(userID)
		return false
	}

	return true
}

func (h *Hub) IsOnline(userID int64) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	_, exists := h.clients[userID]
	return exists
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for userID, c := range h.clients {
		if c != nil {
			_ = c.conn.Close()
		}
		delete(h.clients, userID)
	}
}
