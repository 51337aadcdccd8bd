package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mira/handwriting-trainer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConnPair upgrades a loopback websocket and returns both ends: the
// server side for the hub's Client, the dialed side for reading what the
// write pump sends.
func newConnPair(t *testing.T) (server, dialed *websocket.Conn) {
	t.Helper()

	serverConns := make(chan *websocket.Conn, 1)
	var upgrader websocket.Upgrader
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		serverConns <- conn
	}))
	t.Cleanup(srv.Close)

	dialed, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)

	server = <-serverConns
	t.Cleanup(func() {
		dialed.Close()
		server.Close()
	})
	return server, dialed
}

func TestHub_DeliverAndShutdown(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	serverConn, dialed := newConnPair(t)
	userID := uuid.New()
	client := NewClient(hub, serverConn, userID)
	client.Register()

	pumpsDone := make(chan struct{})
	go client.WritePump()
	go func() {
		client.ReadPump()
		close(pumpsDone)
	}()

	require.Eventually(t, func() bool {
		return hub.ConnectionCount(userID) == 1
	}, time.Second, 10*time.Millisecond)

	hub.Notify(userID, &domain.Notification{
		Kind:      domain.NotificationMessage,
		UserID:    userID,
		Timestamp: time.Now(),
	})

	require.NoError(t, dialed.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := dialed.ReadMessage()
	require.NoError(t, err)

	var got domain.Notification
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, domain.NotificationMessage, got.Kind)
	assert.Equal(t, userID, got.UserID)

	// Stop closes the connection; the read pump's unregister send must not
	// hang on the finished event loop.
	hub.Stop()
	select {
	case <-pumpsDone:
	case <-time.After(2 * time.Second):
		t.Fatal("read pump did not exit after hub shutdown")
	}
	assert.Equal(t, 0, hub.ConnectionCount(userID))
}

func TestHub_StoppedHubReleasesClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	hub.Stop()

	serverConn, _ := newConnPair(t)
	client := NewClient(hub, serverConn, uuid.New())

	finished := make(chan struct{})
	go func() {
		client.Register()
		client.ReadPump()
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("client blocked registering with a stopped hub")
	}
	assert.Equal(t, 0, hub.ConnectionCount(client.userID))
}
