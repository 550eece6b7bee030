package mirror

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/maptools/internal/logging"
)

const (
	// Time allowed to write a frame to a watcher
	writeWait = 10 * time.Second

	// Frames queued per watcher before new ones are dropped
	sendBuffer = 4
)

type client struct {
	conn *websocket.Conn
	send chan string
}

// Hub fans published frames out to every connected watcher. The most
// recent frame is replayed to watchers as they connect.
type Hub struct {
	id       string
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	last    string
	closed  bool
}

// NewHub creates a hub with a fresh session id.
func NewHub() *Hub {
	return &Hub{
		id: uuid.New().String(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// ID identifies this editor session in mDNS records.
func (h *Hub) ID() string {
	return h.id
}

// Clients returns the number of connected watchers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Publish queues frame for every watcher. A watcher that has fallen
// behind misses frames rather than stalling the editor.
func (h *Hub) Publish(frame string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.last = frame
	for c := range h.clients {
		select {
		case c.send <- frame:
		default:
			logging.Debug("Dropping frame for slow watcher",
				zap.String("remote_addr", c.conn.RemoteAddr().String()),
			)
		}
	}
}

// ServeHTTP upgrades the request and streams frames until the watcher
// disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	c := &client{conn: conn, send: make(chan string, sendBuffer)}
	if !h.register(c) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "mirror closed"),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}
	logging.Info("Watcher connected", zap.String("remote_addr", r.RemoteAddr))

	go h.writeLoop(c)
	h.readLoop(c)

	h.unregister(c)
	logging.Info("Watcher disconnected", zap.String("remote_addr", r.RemoteAddr))
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	if h.last != "" {
		c.send <- h.last
	}
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// readLoop discards anything the watcher sends and returns once the
// connection is gone.
func (h *Hub) readLoop(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	defer func() { _ = c.conn.Close() }()

	for frame := range c.send {
		if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
			logging.Debug("Frame write failed",
				zap.String("remote_addr", c.conn.RemoteAddr().String()),
				zap.Error(err),
			)
			return
		}
	}

	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}

// Close disconnects every watcher and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}
