// Package notify fans out row-change events to in-process subscribers,
// standing in for the hosted realtime change feed the dashboard used
// to listen on.
package notify

import (
	"log/slog"
	"sync"
)

type EventType string

const (
	EventInsert EventType = "insert"
	EventUpdate EventType = "update"
	EventDelete EventType = "delete"
)

// Event describes one row change. Subscribers receive every event for
// their table regardless of user; consumers re-read from the source of
// truth, so an irrelevant wakeup costs a query, never correctness.
type Event struct {
	Table    string
	Type     EventType
	UserID   string
	EntityID string
}

const subBuffer = 16

type subscriber struct {
	ch     chan Event
	tables map[string]struct{}
}

type Hub struct {
	mu     sync.RWMutex
	subs   map[int]*subscriber
	nextID int
	closed bool
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]*subscriber)}
}

// Subscribe returns a channel of events for the given tables and a
// cancel func. The channel is closed on cancel or hub shutdown.
func (h *Hub) Subscribe(tables ...string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		ch := make(chan Event)
		close(ch)
		return ch, func() {}
	}

	id := h.nextID
	h.nextID++
	sub := &subscriber{
		ch:     make(chan Event, subBuffer),
		tables: make(map[string]struct{}, len(tables)),
	}
	for _, t := range tables {
		sub.tables[t] = struct{}{}
	}
	h.subs[id] = sub

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if s, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(s.ch)
		}
	}
	return sub.ch, cancel
}

// Publish delivers the event to every matching subscriber without
// blocking. A subscriber whose buffer is full skips the event; that is
// safe because consumers recompute from the database, and a later
// event (or remount) catches them up.
func (h *Hub) Publish(e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}
	for _, sub := range h.subs {
		if _, ok := sub.tables[e.Table]; !ok {
			continue
		}
		select {
		case sub.ch <- e:
		default:
			slog.Debug("notify: subscriber buffer full, dropping event", "table", e.Table, "type", e.Type)
		}
	}
}

// Close shuts the hub down and closes all subscriber channels.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, sub := range h.subs {
		delete(h.subs, id)
		close(sub.ch)
	}
}
