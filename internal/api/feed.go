package api

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/forno-app/forno/internal/auth"
	"github.com/forno-app/forno/internal/order"
)

// OrderEvent is a single message on the admin order feed.
type OrderEvent struct {
	Type  string      `json:"type"` // "order.created" or "order.updated"
	Order order.Order `json:"order"`
}

// Hub fans out order events to connected feed clients. Slow clients are
// dropped rather than allowed to block the rest.
type Hub struct {
	mu      sync.Mutex
	clients map[chan OrderEvent]struct{}
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[chan OrderEvent]struct{})}
}

// Subscribe registers a new client and returns its event channel together
// with an unsubscribe function.
func (h *Hub) Subscribe() (<-chan OrderEvent, func()) {
	ch := make(chan OrderEvent, 16)

	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		delete(h.clients, ch)
		h.mu.Unlock()
	}
}

// Broadcast delivers an event to all subscribed clients. Clients whose
// buffer is full miss the event.
func (h *Hub) Broadcast(event OrderEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.clients {
		select {
		case ch <- event:
		default:
		}
	}
}

// ClientCount returns the number of subscribed clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

const (
	feedWriteTimeout = 10 * time.Second
	feedPingInterval = 30 * time.Second
)

// FeedHandler upgrades admin connections to a websocket order feed.
type FeedHandler struct {
	guard    *auth.Guard
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewFeedHandler creates a FeedHandler over the given guard and hub.
func NewFeedHandler(guard *auth.Guard, hub *Hub) *FeedHandler {
	return &FeedHandler{
		guard: guard,
		hub:   hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Cross-origin policy is enforced by the CORS layer and the
			// bearer token, not by the Origin header.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP authorizes the request and streams order events until the client
// disconnects. Browser websocket clients cannot set headers, so the token
// may also be passed as a "token" query parameter.
func (h *FeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") == "" {
		if token := r.URL.Query().Get("token"); token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
	}

	// Authorization happens before the upgrade so denials stay plain JSON.
	if _, denial := h.guard.RequireAdmin(r); denial != nil {
		writeDenial(w, denial)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("feed: upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	events, unsubscribe := h.hub.Subscribe()
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(feedPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case event := <-events:
			conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
