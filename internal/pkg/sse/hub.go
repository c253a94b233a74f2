package sse

import (
	"sync"
)

// subscriberBuffer bounds each connection's queue. A client that stops
// reading loses events rather than blocking the publisher.
const subscriberBuffer = 10

// Event is a server-sent event addressed to one recipient. Data is rendered
// to JSON at the HTTP edge.
type Event struct {
	UserID string
	Event  string
	Data   interface{}
}

// Hub fans notification events out to the open SSE connections of each user.
// A user may hold several connections, e.g. multiple browser tabs.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe opens a channel for userID. The returned cleanup closes the
// channel and drops the registration; callers must defer it.
func (h *Hub) Subscribe(userID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)

	if h.subscribers[userID] == nil {
		h.subscribers[userID] = make(map[chan Event]struct{})
	}
	h.subscribers[userID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[userID], ch)
		close(ch)
		if len(h.subscribers[userID]) == 0 {
			delete(h.subscribers, userID)
		}
	}

	return ch, cleanup
}

// Publish delivers event to every open connection of userID. Full buffers
// are skipped; delivery is best effort and never blocks.
func (h *Hub) Publish(userID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers[userID] {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount reports the open connections for userID.
func (h *Hub) SubscriberCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers[userID])
}
