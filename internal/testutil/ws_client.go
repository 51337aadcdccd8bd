package testutil

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mira/handwriting-trainer/internal/domain"
)

// NotificationListener is a websocket client subscribed to the notification
// stream. The stream is one way; the listener only reads.
type NotificationListener struct {
	conn     *websocket.Conn
	received chan *domain.Notification
}

// NewNotificationListener dials the notification endpoint with the given
// access token and starts draining frames.
func NewNotificationListener(t *testing.T, ts *TestServer, token string) *NotificationListener {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(ts.WebSocketURL(token), nil)
	if err != nil {
		t.Fatalf("failed to dial notification endpoint: %v", err)
	}

	l := &NotificationListener{
		conn:     conn,
		received: make(chan *domain.Notification, 16),
	}

	go l.readLoop(t)

	t.Cleanup(func() {
		conn.Close()
	})

	return l
}

func (l *NotificationListener) readLoop(t *testing.T) {
	defer close(l.received)

	for {
		_, data, err := l.conn.ReadMessage()
		if err != nil {
			return
		}

		var n domain.Notification
		if err := json.Unmarshal(data, &n); err != nil {
			t.Logf("warning: undecodable notification frame: %v", err)
			continue
		}

		select {
		case l.received <- &n:
		default:
		}
	}
}

// WaitFor blocks until a notification of the given kind arrives or the
// timeout elapses.
func (l *NotificationListener) WaitFor(t *testing.T, kind domain.NotificationKind, timeout time.Duration) *domain.Notification {
	t.Helper()

	deadline := time.After(timeout)
	for {
		select {
		case n, ok := <-l.received:
			if !ok {
				t.Fatalf("connection closed before %s notification arrived", kind)
				return nil
			}
			if n.Kind == kind {
				return n
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s notification", kind)
			return nil
		}
	}
}

// Close tears the connection down early.
func (l *NotificationListener) Close() {
	l.conn.Close()
}
