package feed

import (
	"context"
	"log/slog"
)

// Message is what goes over the wire to a console: either a full
// ordered snapshot on connect or a single delta afterwards.
type Message struct {
	Type    string    `json:"type"` // snapshot | created | updated | deleted
	Report  *Summary  `json:"report,omitempty"`
	Reports []Summary `json:"reports,omitempty"`
}

// Client is one connected moderator console.
type Client struct {
	Send chan Message
}

func NewClient() *Client {
	return &Client{Send: make(chan Message, 32)}
}

// SnapshotFunc loads the current report summaries from the record
// store, newest first.
type SnapshotFunc func(ctx context.Context) ([]Summary, error)

// EventSource feeds the hub its change events. RedisSubscriber bridges
// the shared pub/sub channel; tests drive the hub with an in-memory
// source instead.
type EventSource interface {
	// Subscribe returns the event stream. The stream closes once the
	// source is closed.
	Subscribe(ctx context.Context) <-chan Event
	Close() error
}

// Hub maintains the ordered moderation view and fans change events
// out to connected clients. All state is owned by the Run goroutine;
// registration and events arrive over channels.
type Hub struct {
	source   EventSource
	snapshot SnapshotFunc

	register   chan *Client
	unregister chan *Client

	clients map[*Client]struct{}
	view    []Summary
	done    chan struct{}
}

func NewHub(source EventSource, snapshot SnapshotFunc) *Hub {
	return &Hub{
		source:     source,
		snapshot:   snapshot,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]struct{}),
		done:       make(chan struct{}),
	}
}

// Register hands a new console to the Run loop. A connection arriving
// after Stop gets its channel closed immediately instead of blocking
// on a loop that no longer runs.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		close(c.Send)
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Stop shuts the hub down and closes the event source, so the
// subscription goroutine is not left blocked on a receive until the
// underlying connection happens to die.
func (h *Hub) Stop() {
	close(h.done)
	if err := h.source.Close(); err != nil {
		slog.Error("feed event source close failed", "error", err)
	}
}

// Run blocks until Stop. It keeps the ordered view current from the
// event stream and serves snapshots to newly connected clients.
func (h *Hub) Run(ctx context.Context) {
	if snap, err := h.snapshot(ctx); err != nil {
		slog.Error("feed snapshot load failed", "error", err)
	} else {
		h.view = Merge(h.view, snap)
	}

	events := h.source.Subscribe(ctx)

	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
			snapshot := make([]Summary, len(h.view))
			copy(snapshot, h.view)
			c.Send <- Message{Type: "snapshot", Reports: snapshot}

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.Send)
			}

		case ev, ok := <-events:
			if !ok {
				// Source closed; keep serving registered clients until
				// Stop fires.
				events = nil
				continue
			}
			h.apply(ev)
			h.broadcast(ev)

		case <-h.done:
			for c := range h.clients {
				delete(h.clients, c)
				close(c.Send)
			}
			return
		}
	}
}

// apply folds one delta into the ordered view, preserving the
// relative order of already-seen records.
func (h *Hub) apply(ev Event) {
	switch ev.Type {
	case EventDeleted:
		for i, s := range h.view {
			if s.ID == ev.Report.ID {
				h.view = append(h.view[:i], h.view[i+1:]...)
				return
			}
		}
	default:
		for i, s := range h.view {
			if s.ID == ev.Report.ID {
				h.view[i] = ev.Report
				return
			}
		}
		h.view = append([]Summary{ev.Report}, h.view...)
	}
}

func (h *Hub) broadcast(ev Event) {
	report := ev.Report
	msg := Message{Type: ev.Type, Report: &report}
	for c := range h.clients {
		select {
		case c.Send <- msg:
		default:
			// Slow consumer; drop the connection rather than stall
			// every other console.
			delete(h.clients, c)
			close(c.Send)
		}
	}
}
