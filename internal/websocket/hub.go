// Package websocket pushes document change events to the owner's open connections.
package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"invoicedesk/internal/auth"
	"invoicedesk/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 64
)

// Client is one connected socket belonging to a user
type Client struct {
	hub    *Hub
	userID uuid.UUID
	conn   *websocket.Conn
	send   chan []byte
}

type delivery struct {
	userID  uuid.UUID
	message []byte
}

// Hub tracks connections per user and fans change events out to them
type Hub struct {
	clients    map[uuid.UUID]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	deliver    chan delivery
	done       chan struct{}
	mu         sync.RWMutex

	issuer   *auth.Issuer
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewHub creates a hub that authenticates sockets with issuer. An empty origins
// list or "*" accepts any Origin header.
func NewHub(issuer *auth.Issuer, origins []string, logger zerolog.Logger) *Hub {
	h := &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan delivery, 256),
		done:       make(chan struct{}),
		issuer:     issuer,
		logger:     logger,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(origins),
	}
	return h
}

func originChecker(origins []string) func(*http.Request) bool {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		allowed[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return len(allowed) == 0 || origin == "" || allowed[origin]
	}
}

// Run dispatches registrations and deliveries until ctx is cancelled, then closes every connection.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for _, set := range h.clients {
				for client := range set {
					close(client.send)
				}
			}
			h.clients = make(map[uuid.UUID]map[*Client]struct{})
			h.mu.Unlock()
			return
		case client := <-h.register:
			h.mu.Lock()
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.userID] = set
			}
			set[client] = struct{}{}
			h.mu.Unlock()
			h.logger.Debug().Str("user_id", client.userID.String()).Msg("WebSocket client connected")
		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()
			h.logger.Debug().Str("user_id", client.userID.String()).Msg("WebSocket client disconnected")
		case d := <-h.deliver:
			h.mu.Lock()
			for client := range h.clients[d.userID] {
				select {
				case client.send <- d.message:
				default:
					h.remove(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove drops client; callers hold mu.
func (h *Hub) remove(client *Client) {
	set, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(h.clients, client.userID)
	}
}

// Notify queues event for every connection of userID. It never blocks the
// caller; when the queue is full the event is dropped and logged.
func (h *Hub) Notify(userID uuid.UUID, event service.ChangeEvent) {
	message, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode change event")
		return
	}
	select {
	case h.deliver <- delivery{userID: userID, message: message}:
	default:
		h.logger.Warn().
			Str("user_id", userID.String()).
			Str("kind", event.Kind).
			Msg("Change event dropped, delivery queue full")
	}
}

// Connected reports how many sockets userID has open.
func (h *Hub) Connected(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// ServeWs upgrades an authenticated request. The token comes from the token
// query parameter, since browsers cannot set headers on a websocket handshake.
func (h *Hub) ServeWs(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token, _ = c.Cookie("access_token")
	}
	if token == "" {
		h.logger.Debug().Msg("WebSocket connection rejected: missing token")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	sess, err := h.issuer.Parse(token)
	if err != nil {
		h.logger.Debug().Err(err).Msg("WebSocket connection rejected: invalid token")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	client := &Client{hub: h, userID: sess.UserID, conn: conn, send: make(chan []byte, sendBuffer)}
	select {
	case h.register <- client:
	case <-h.done:
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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

// readPump only watches for close and pong frames; clients never send data.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn().Err(err).Str("user_id", c.userID.String()).Msg("WebSocket read error")
			}
			return
		}
	}
}
