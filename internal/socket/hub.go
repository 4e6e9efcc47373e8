// server/internal/socket/hub.go
package socket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Event tells connected portals that a collection changed so they can
// re-fetch, instead of polling on a timer.
type Event struct {
	Collection string `json:"collection"` // freights | fuel_purchases | supplies | payments | drivers
	Action     string `json:"action"`     // created | updated | deleted
	ID         string `json:"id,omitempty"`
}

// client wraps a connection with a write lock. gorilla/websocket allows
// a single concurrent writer per connection, and several handlers may
// broadcast at once.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// Hub tracks every connected WebSocket client, keyed by account id.
type Hub struct {
	clients map[string]*client
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*client),
	}
}

// Register adds a client connection to the Hub.
func (h *Hub) Register(accountID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[accountID] = &client{conn: conn}
	log.Printf("WebSocket client registered: %s", accountID)
}

// Unregister removes a client from the Hub.
func (h *Hub) Unregister(accountID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[accountID]; ok {
		delete(h.clients, accountID)
		log.Printf("WebSocket client unregistered: %s", accountID)
	}
}

// Send delivers a message to one client. An offline client is not an error.
func (h *Hub) Send(accountID string, message []byte) error {
	h.mu.RLock()
	c, ok := h.clients[accountID]
	h.mu.RUnlock()

	if !ok {
		return nil
	}
	return c.write(message)
}

// Broadcast pushes a collection-changed event to every connected client.
// Write failures are logged and skipped; the read loop of the failing
// connection will tear it down.
func (h *Hub) Broadcast(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal ws event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for accountID, c := range h.clients {
		if err := c.write(payload); err != nil {
			log.Printf("Failed to push ws event to %s: %v", accountID, err)
		}
	}
}
