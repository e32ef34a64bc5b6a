package ws

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/ADat1304/Project-cafe/services"
	"github.com/ADat1304/Project-cafe/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// CartViewer supplies the current cart when a client connects.
type CartViewer interface {
	View(sessionID string) services.CartView
}

// CartHub pushes cart views to every websocket open for the same session,
// so two tabs of one admin stay in step.
type CartHub struct {
	clients    map[string]map[*websocket.Conn]bool // sessionID -> connections
	broadcast  chan CartMessage
	register   chan Subscription
	unregister chan Subscription
	done       chan struct{}
	mu         sync.Mutex
	carts      CartViewer
}

type Subscription struct {
	Conn      *websocket.Conn
	SessionID string
}

type CartMessage struct {
	SessionID string
	View      services.CartView
}

func NewCartHub() *CartHub {
	return &CartHub{
		clients:    make(map[string]map[*websocket.Conn]bool),
		broadcast:  make(chan CartMessage, 64),
		register:   make(chan Subscription),
		unregister: make(chan Subscription),
		done:       make(chan struct{}),
	}
}

// SetCartViewer breaks the construction cycle with CartService, which needs
// the hub as its notifier.
func (h *CartHub) SetCartViewer(v CartViewer) { h.carts = v }

// PublishCart queues view for the session's sockets. It never blocks a
// request: when the queue is full the update is dropped and the next one
// carries the full state anyway.
func (h *CartHub) PublishCart(sessionID string, view services.CartView) {
	select {
	case h.broadcast <- CartMessage{SessionID: sessionID, View: view}:
	default:
		log.Printf("ws cart queue full, dropping update for %s", sessionID)
	}
}

// Run owns every socket write until ctx is done.
func (h *CartHub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for _, conns := range h.clients {
				for conn := range conns {
					conn.Close()
				}
			}
			h.clients = make(map[string]map[*websocket.Conn]bool)
			h.mu.Unlock()
			return

		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.SessionID] == nil {
				h.clients[sub.SessionID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.SessionID][sub.Conn] = true
			h.mu.Unlock()
			// Read after registering so no later broadcast can be missed.
			var initial services.CartView
			if h.carts != nil {
				initial = h.carts.View(sub.SessionID)
			}
			if err := sub.Conn.WriteJSON(initial); err != nil {
				log.Printf("ws write error: %v", err)
			}

		case sub := <-h.unregister:
			h.mu.Lock()
			h.removeLocked(sub.SessionID, sub.Conn)
			h.mu.Unlock()
			sub.Conn.Close()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[msg.SessionID] {
				if err := conn.WriteJSON(msg.View); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					h.removeLocked(msg.SessionID, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// removeLocked drops conn and the session entry once it has no sockets left.
// h.mu must be held.
func (h *CartHub) removeLocked(sessionID string, conn *websocket.Conn) {
	conns, ok := h.clients[sessionID]
	if !ok {
		return
	}
	delete(conns, conn)
	if len(conns) == 0 {
		delete(h.clients, sessionID)
	}
}

// Connections reports how many sockets are open for the session.
func (h *CartHub) Connections(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[sessionID])
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/cart (behind WSAuthMiddleware)
func (h *CartHub) HandleWebSocket(c *gin.Context) {
	sessionID := utils.CurrentSessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "no session"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	sub := Subscription{Conn: conn, SessionID: sessionID}
	select {
	case h.register <- sub:
	case <-h.done:
		conn.Close()
		return
	}

	go h.listen(sub)
}

// listen only watches for the client going away; carts change over HTTP.
func (h *CartHub) listen(sub Subscription) {
	defer func() {
		select {
		case h.unregister <- sub:
		case <-h.done:
		}
	}()
	for {
		if _, _, err := sub.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws read error: %v", err)
			}
			return
		}
	}
}
