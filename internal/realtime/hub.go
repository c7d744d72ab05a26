// Package realtime pushes committed notifications to open websocket
// sessions.
package realtime

import (
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"learnhub/internal/contextutils"
	"learnhub/internal/response"
	"learnhub/internal/services"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 16
)

var (
	openConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "learnhub",
		Subsystem: "realtime",
		Name:      "open_connections",
		Help:      "Open notification websocket connections.",
	})

	droppedMessages = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "learnhub",
		Subsystem: "realtime",
		Name:      "dropped_messages_total",
		Help:      "Notifications dropped because a client was too slow.",
	})
)

// Client is one websocket connection of a signed-in account
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	accountID string
	send      chan interface{}
}

// Hub tracks open connections per account. An account may hold several
// connections, one per browser tab.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]map[*Client]struct{}
	upgrader websocket.Upgrader
	builder  *response.Builder
	logger   *zap.Logger
	closed   bool
}

// NewHub creates a hub accepting upgrades from allowedOrigins. An empty
// list accepts any origin.
func NewHub(allowedOrigins []string, builder *response.Builder, logger *zap.Logger) *Hub {
	h := &Hub{
		clients: make(map[string]map[*Client]struct{}),
		builder: builder,
		logger:  logger,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]bool, len(allowed))
	for _, origin := range allowed {
		if origin == "*" {
			return func(*http.Request) bool { return true }
		}
		set[strings.TrimRight(origin, "/")] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return set[u.Scheme+"://"+u.Host] || strings.EqualFold(u.Host, r.Host)
	}
}

// Publish implements services.NotificationPublisher. Slow clients drop
// messages instead of blocking the caller.
func (h *Hub) Publish(accountID string, payload interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[accountID] {
		select {
		case client.send <- payload:
		default:
			droppedMessages.Inc()
			h.logger.Warn("Dropping notification for slow client", zap.String("account_id", accountID))
		}
	}
}

// Connections returns the number of open connections for accountID
func (h *Hub) Connections(accountID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[accountID])
}

// ServeHTTP upgrades an authenticated request to a notification stream
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity := contextutils.Identity(r.Context())
	if identity == nil {
		h.builder.WriteError(w, r, services.NewUnauthenticatedError("Not authorized, no token"))
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		contextutils.Logger(r.Context(), h.logger).Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		hub:       h,
		conn:      conn,
		accountID: identity.AccountID(),
		send:      make(chan interface{}, sendBuffer),
	}
	if !h.register(client) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		conn.Close()
		return
	}

	go client.writePump()
	client.readPump()
}

// Close disconnects every client
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for accountID, set := range h.clients {
		for client := range set {
			close(client.send)
			openConnections.Dec()
		}
		delete(h.clients, accountID)
	}
}

func (h *Hub) register(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}

	set, ok := h.clients[c.accountID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.accountID] = set
	}
	set[c] = struct{}{}
	openConnections.Inc()
	h.logger.Debug("WebSocket client connected", zap.String("account_id", c.accountID))
	return true
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[c.accountID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.accountID)
	}
	close(c.send)
	openConnections.Dec()
	h.logger.Debug("WebSocket client disconnected", zap.String("account_id", c.accountID))
}

// readPump discards client frames; it exists to process pongs and notice
// disconnects.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug("WebSocket read error", zap.String("account_id", c.accountID), zap.Error(err))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(payload); err != nil {
				c.hub.logger.Debug("WebSocket write error", zap.String("account_id", c.accountID), zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
