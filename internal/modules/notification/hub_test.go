package notification

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

// dialTestConn upgrades a loopback connection and hands the server side to
// the caller. The client side just drains frames so writes never block.
func dialTestConn(t *testing.T) *websocket.Conn {
	t.Helper()

	up := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	serverConn := make(chan *websocket.Conn, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		require.NoError(t, err)
		serverConn <- conn
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	clientConn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = clientConn.Close() })

	go func() {
		for {
			if _, _, err := clientConn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	return <-serverConn
}

func TestHub_SendToUser(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	assert.False(t, hub.SendToUser(7, "nobody home"))

	hub.Register(7, dialTestConn(t))
	assert.True(t, hub.IsOnline(7))
	assert.True(t, hub.SendToUser(7, map[string]string{"title": "Booking approved"}))

	hub.Unregister(7)
	assert.False(t, hub.IsOnline(7))
	assert.False(t, hub.SendToUser(7, "gone"))
}

// Pushes and pings race on the same connection in production: the ping loop
// ticks while notifications fan out. All writes must be serialized.
func TestHub_ConcurrentPushAndPing(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	hub.Register(42, dialTestConn(t))

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				hub.SendToUser(42, map[string]int{"seq": i})
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			if !hub.Ping(42) {
				return
			}
		}
	}()
	wg.Wait()

	assert.True(t, hub.IsOnline(42))
}

func TestHub_RegisterReplacesConnection(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	first := dialTestConn(t)
	hub.Register(9, first)
	hub.Register(9, dialTestConn(t))

	// the replaced connection was closed; writing to it must fail
	assert.Error(t, first.WriteMessage(websocket.TextMessage, []byte("stale")))
	assert.True(t, hub.SendToUser(9, "fresh"))
}
