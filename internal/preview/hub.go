package preview

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// MessageType tags websocket messages.
type MessageType string

const (
	MessageHello  MessageType = "hello"
	MessageReload MessageType = "reload"
	MessageError  MessageType = "error"
)

// Message is pushed to websocket clients.
type Message struct {
	Type     MessageType `json:"type"`
	Sidebars []string    `json:"sidebars,omitempty"`
	Message  string      `json:"message,omitempty"`
}

const writeWait = 5 * time.Second


// Hub tracks connected websocket clients and fans messages out to them.
type Hub struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex // serializes writes
}

func (c *client) send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(msg)
}

// NewHub creates an empty hub. Upgrades are accepted from the same host,
// from localhost origins and from clients that send no Origin; allowAll
// accepts every origin.
func NewHub(logger *slog.Logger, allowAll bool) *Hub {
	h := &Hub{logger: logger, clients: make(map[*client]struct{})}
	h.upgrader.CheckOrigin = func(r *http.Request) bool {
		return allowAll || allowedOrigin(r)
	}
	return h
}

// allowedOrigin applies the CORS origin rule to websocket upgrades.
func allowedOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1":
		return u.Scheme == "http"
	}
	return false
}

// ServeWS upgrades the request and keeps the client registered until it
// disconnects. hello is sent right after registration.
func (h *Hub) ServeWS(hello func() Message) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warn("websocket upgrade", "error", err)
			return
		}
		c := &client{conn: conn}
		if !h.add(c) {
			conn.Close()
			return
		}
		defer h.remove(c)

		if err := c.send(hello()); err != nil {
			return
		}

		// Clients never send anything meaningful; reading detects closure.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.logger.Debug("websocket read", "error", err)
				}
				return
			}
		}
	}
}

func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.conn.Close()
}

func (h *Hub) snapshot() []*client {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	return clients
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends msg to every client. Clients that fail to receive it are
// disconnected.
func (h *Hub) Broadcast(msg Message) {
	for _, c := range h.snapshot() {
		if err := c.send(msg); err != nil {
			h.logger.Debug("websocket write", "error", err)
			h.remove(c)
		}
	}
}

// Close disconnects every client and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := h.clients
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()

	for c := range clients {
		c.mu.Lock()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		c.mu.Unlock()
		c.conn.Close()
	}
}
