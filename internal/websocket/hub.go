package websocket

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// client wraps a connection with its own write lock; gorilla connections
// support one concurrent writer only.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return WriteTyped(c.conn, v)
}

// Hub tracks the live-view connections and fans messages out to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]*client
	log     zerolog.Logger
}

// NewHub creates an empty Hub.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]*client),
		log:     log.With().Str("component", "ws_hub").Logger(),
	}
}

// Register adds conn to the broadcast set.
func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = &client{conn: conn}
	n := len(h.clients)
	h.mu.Unlock()
	h.log.Debug().Int("viewers", n).Msg("Viewer connected")
}

// Unregister removes conn. It does not close the connection.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	n := len(h.clients)
	h.mu.Unlock()
	h.log.Debug().Int("viewers", n).Msg("Viewer disconnected")
}

// Send writes v to a single registered connection.
func (h *Hub) Send(conn *websocket.Conn, v interface{}) error {
	h.mu.RLock()
	c, ok := h.clients[conn]
	h.mu.RUnlock()
	if !ok {
		return WriteTyped(conn, v)
	}
	return c.write(v)
}

// Broadcast writes v to every connection. Connections that fail are dropped
// and closed; the reader loop of their handler then exits.
func (h *Hub) Broadcast(v interface{}) {
	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.write(v); err != nil {
			h.log.Warn().Err(err).Msg("Broadcast write failed, dropping viewer")
			h.Unregister(c.conn)
			_ = c.conn.Close()
		}
	}
}

// Count returns the number of registered connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
