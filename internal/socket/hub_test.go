package socket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dialTestClient registers one real connection in the hub and returns the
// client side of it.
func dialTestClient(t *testing.T, hub *Hub, accountID string) *websocket.Conn {
	t.Helper()

	registered := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register(accountID, conn)
		close(registered)
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	<-registered
	return conn
}

// Mutation handlers broadcast from their own request goroutines, so the
// hub must serialize writes to each connection.
func TestBroadcastFromConcurrentHandlers(t *testing.T) {
	hub := NewHub()
	conn := dialTestClient(t, hub, "acc-1")

	const events = 50

	received := make(chan struct{})
	go func() {
		defer close(received)
		for i := 0; i < events; i++ {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < events; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Broadcast(Event{Collection: "freights", Action: "updated", ID: "FRT-1"})
		}()
	}
	wg.Wait()

	<-received
}

func TestSendToUnknownClientIsNoop(t *testing.T) {
	hub := NewHub()
	assert.NoError(t, hub.Send("acc-offline", []byte("ping")))
}

func TestUnregisterStopsDelivery(t *testing.T) {
	hub := NewHub()
	dialTestClient(t, hub, "acc-1")

	hub.Unregister("acc-1")
	assert.NoError(t, hub.Send("acc-1", []byte("ping")))
}
