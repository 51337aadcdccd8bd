// Package notify fans domain notifications out to connected websocket
// clients. A user may hold several connections (tabs, devices); delivery is
// best effort and nothing is persisted here.
package notify

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/mira/handwriting-trainer/internal/domain"
)

type Hub struct {
	clients    map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *domain.Notification
	stop       chan struct{}
	done       chan struct{}
	stopped    bool

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *domain.Notification, 64),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Run starts the hub event loop.
func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for _, conns := range h.clients {
				for client := range conns {
					client.Close()
				}
			}
			h.clients = make(map[uuid.UUID]map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				if h.clients[client.userID] == nil {
					h.clients[client.userID] = make(map[*Client]bool)
				}
				h.clients[client.userID][client] = true
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if !h.stopped {
				if conns, ok := h.clients[client.userID]; ok {
					if _, ok := conns[client]; ok {
						delete(conns, client)
						client.Close()
						if len(conns) == 0 {
							delete(h.clients, client.userID)
						}
					}
				}
			}
			h.mu.Unlock()

		case n := <-h.broadcast:
			h.deliver(n)
		}
	}
}

// Stop shuts the hub down and closes all client connections.
func (h *Hub) Stop() {
	close(h.stop)
	<-h.done
}

// Notify queues a notification for every connection the user holds. It
// never blocks the caller: if the hub's queue is full the notification is
// dropped, since missed pushes are recoverable from the records.
func (h *Hub) Notify(userID uuid.UUID, n *domain.Notification) {
	select {
	case h.broadcast <- n:
	default:
		log.Printf("ERROR [Hub.Notify] dropping notification for %s: queue full", userID)
	}
}

func (h *Hub) deliver(n *domain.Notification) {
	data, err := json.Marshal(n)
	if err != nil {
		log.Printf("ERROR [Hub.deliver] failed to marshal notification: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[n.UserID] {
		select {
		case client.send <- data:
		default:
			// Slow consumer; drop rather than stall the loop.
		}
	}
}

// ConnectionCount reports live connections for a user.
func (h *Hub) ConnectionCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}
