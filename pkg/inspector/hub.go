package inspector

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/vroute/pkg/router"
)

// MessageType represents the type of a stream message.
type MessageType string

const (
	MessageHello      MessageType = "hello"
	MessageNavigation MessageType = "navigation"
	MessageReload     MessageType = "reload"
	MessageError      MessageType = "error"
)

// Message is sent to stream clients via WebSocket.
type Message struct {
	Type     MessageType   `json:"type"`
	ClientID string        `json:"clientId,omitempty"`
	Event    *router.Event `json:"event,omitempty"`
	Error    string        `json:"error,omitempty"`
}

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub manages WebSocket connections for the event stream.
type Hub struct {
	clients  map[string]*client
	mu       sync.RWMutex
	upgrader websocket.Upgrader
}

// NewHub creates a new hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Development tool; any origin
			},
		},
	}
}

// HandleWebSocket upgrades the connection, greets the client with its id and
// keeps it registered until it disconnects.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	id := uuid.NewString()
	c := &client{conn: conn}

	hello, _ := json.Marshal(Message{Type: MessageHello, ClientID: id})
	if err := c.write(hello); err != nil {
		conn.Close()
		return
	}

	h.mu.Lock()
	h.clients[id] = c
	h.mu.Unlock()

	// Keep connection alive until client disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.remove(id)
}

// NotifyNavigation sends a committed navigation to all clients.
func (h *Hub) NotifyNavigation(ev router.Event) {
	h.Broadcast(Message{Type: MessageNavigation, Event: &ev})
}

// NotifyReload tells clients the route configuration was reloaded.
func (h *Hub) NotifyReload() {
	h.Broadcast(Message{Type: MessageReload})
}

// NotifyError sends an error message to all clients.
func (h *Hub) NotifyError(errMsg string) {
	h.Broadcast(Message{Type: MessageError, Error: errMsg})
}

// Broadcast sends msg to all connected clients. Clients that fail the
// write are dropped.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.RLock()
	ids := make([]string, 0, len(h.clients))
	clients := make([]*client, 0, len(h.clients))
	for id, c := range h.clients {
		ids = append(ids, id)
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for i, c := range clients {
		if err := c.write(data); err != nil {
			h.remove(ids[i])
		}
	}
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	c, ok := h.clients[id]
	delete(h.clients, id)
	h.mu.Unlock()
	if ok {
		c.conn.Close()
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close closes all client connections.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, c := range h.clients {
		c.conn.Close()
		delete(h.clients, id)
	}
}
