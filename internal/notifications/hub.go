package notifications

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nexttalent/nexttalent/internal/models"
)

// BadgeEvent is the payload pushed to subscribed clients whenever their
// unread count changes.
type BadgeEvent struct {
	Event       string `json:"event"`
	UnreadCount int64  `json:"unread_count"`
}

type client struct {
	conn *websocket.Conn
	send chan BadgeEvent
}

// Hub pushes unread-badge updates to connected clients. Admin connections
// share one subscription key so every admin sees the same shared inbox
// count; other roles subscribe per recipient.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]map[*client]struct{}
	upgrader websocket.Upgrader
}

// NewHub constructs a badge hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// InboxKey derives the subscription key for an actor. Admins collapse onto a
// single role-wide key.
func InboxKey(recipientID string, role models.Role) string {
	if role == models.RoleAdmin {
		return "role:" + string(models.RoleAdmin)
	}
	return "user:" + recipientID + ":" + string(role)
}

// Serve upgrades the connection and registers the subscriber under its inbox
// key until the peer disconnects.
func (h *Hub) Serve(recipientID string, role models.Role, w http.ResponseWriter, r *http.Request) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	cl := &client{
		conn: conn,
		send: make(chan BadgeEvent, 16),
	}

	key := InboxKey(recipientID, role)
	h.addClient(key, cl)
	defer h.removeClient(key, cl)

	go h.writeLoop(cl)
	h.readLoop(cl)
	return nil
}

// Broadcast pushes an unread count to every subscriber of the inbox key.
func (h *Hub) Broadcast(key string, count int64) {
	event := BadgeEvent{Event: "unread_count", UnreadCount: count}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for cl := range h.clients[key] {
		select {
		case cl.send <- event:
		default:
			// Drop if the buffer is full so one slow client cannot stall the rest.
		}
	}
}

// SubscribedKeys returns the inbox keys with at least one live connection,
// letting the poller skip inboxes nobody is watching.
func (h *Hub) SubscribedKeys() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	keys := make([]string, 0, len(h.clients))
	for key := range h.clients {
		keys = append(keys, key)
	}
	return keys
}

func (h *Hub) addClient(key string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[key] == nil {
		h.clients[key] = make(map[*client]struct{})
	}
	h.clients[key][cl] = struct{}{}
}

func (h *Hub) removeClient(key string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients := h.clients[key]; clients != nil {
		delete(clients, cl)
		if len(clients) == 0 {
			delete(h.clients, key)
		}
	}
	close(cl.send)
	_ = cl.conn.Close()
}

func (h *Hub) writeLoop(cl *client) {
	for event := range cl.send {
		_ = cl.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := cl.conn.WriteJSON(event); err != nil {
			break
		}
	}
}

func (h *Hub) readLoop(cl *client) {
	defer cl.conn.Close()

	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			break
		}
	}
}
