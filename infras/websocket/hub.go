package websocket

//go:generate go run go.uber.org/mock/mockgen -source=./hub.go -destination=./mocks/hub_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"lankaride/config"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	pingInterval   = 30 * time.Second
	pongWait       = 60 * time.Second
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
	sendBuffer     = 64
)

// Event is the envelope pushed to connected clients.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

type Hub interface {
	Run(ctx context.Context)
	// ServeWS upgrades the request and registers the connection for userID.
	ServeWS(w http.ResponseWriter, r *http.Request, userID string) error
	SendToUser(userID string, event Event)
	IsUserConnected(userID string) bool
}

type client struct {
	id     string
	userID string
	conn   *websocket.Conn
	send   chan []byte
	hub    *hub
}

type hub struct {
	mu       sync.RWMutex
	clients  map[string]map[string]*client // userID -> clientID -> client
	stopped  bool
	upgrader websocket.Upgrader
}

var ErrHubStopped = errors.New("websocket hub stopped")

func NewHub(cfg *config.Config) Hub {
	allowed := cfg.App.CORS.AllowedOrigins

	return &hub{
		clients: make(map[string]map[string]*client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")

				return origin == "" || slices.Contains(allowed, "*") || slices.Contains(allowed, origin)
			},
		},
	}
}

// Run blocks until ctx is done, then closes every client and refuses new ones.
func (h *hub) Run(ctx context.Context) {
	<-ctx.Done()

	h.mu.Lock()
	for _, conns := range h.clients {
		for _, c := range conns {
			close(c.send)
		}
	}
	h.clients = make(map[string]map[string]*client)
	h.stopped = true
	h.mu.Unlock()

	log.Info().Msg("websocket hub stopped")
}

func (h *hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopped {
		return false
	}

	if h.clients[c.userID] == nil {
		h.clients[c.userID] = make(map[string]*client)
	}
	h.clients[c.userID][c.id] = c

	log.Debug().Str("user_id", c.userID).Str("client_id", c.id).Msg("websocket client registered")

	return true
}

// remove is a no-op for a client that is already gone.
func (h *hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.clients[c.userID]
	if !ok {
		return
	}

	if _, ok = conns[c.id]; !ok {
		return
	}

	delete(conns, c.id)
	close(c.send)

	if len(conns) == 0 {
		delete(h.clients, c.userID)
	}

	log.Debug().Str("user_id", c.userID).Str("client_id", c.id).Msg("websocket client unregistered")
}

func (h *hub) ServeWS(w http.ResponseWriter, r *http.Request, userID string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade websocket: %w", err)
	}

	c := &client{
		id:     uuid.NewString(),
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		hub:    h,
	}

	// registered before the pumps start so a quick disconnect always finds it
	if !h.add(c) {
		closing := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
		_ = conn.WriteControl(websocket.CloseMessage, closing, time.Now().Add(writeWait))
		_ = conn.Close()

		return ErrHubStopped
	}

	go c.writePump()
	go c.readPump()

	return nil
}

// SendToUser never blocks. A client whose buffer is full misses the event.
func (h *hub) SendToUser(userID string, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("type", event.Type).Msg("failed to marshal websocket event")

		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients[userID] {
		select {
		case c.send <- payload:
		default:
			log.Warn().Str("user_id", userID).Str("client_id", c.id).Msg("websocket send buffer full")
		}
	}
}

func (h *hub) IsUserConnected(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients[userID]) > 0
}

// readPump only keeps the connection alive; clients send messages over REST.
func (c *client) readPump() {
	defer func() {
		c.hub.remove(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Str("client_id", c.id).Msg("websocket read error")
			}

			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingInterval)

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
