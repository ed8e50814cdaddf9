package handlers

import (
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/pawhelp/pawhelp-backend/internal/feed"
)

// FeedHandler upgrades staff consoles to a websocket and streams the
// live moderation feed: a snapshot on connect, deltas afterwards.
type FeedHandler struct {
	hub *feed.Hub
}

func NewFeedHandler(hub *feed.Hub) *FeedHandler {
	return &FeedHandler{hub: hub}
}

// Upgrade rejects non-websocket requests before auth middleware has
// done its work for nothing.
func (h *FeedHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

func (h *FeedHandler) Stream(conn *websocket.Conn) {
	client := feed.NewClient()
	h.hub.Register(client)

	// Reader goroutine: we never expect client messages, but reading is
	// how the close handshake and dropped connections surface.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer func() {
		h.hub.Unregister(client)
		// Drain so the hub's close of the channel never blocks.
		for range client.Send {
		}
		conn.Close()
	}()

	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				slog.Debug("feed write failed, dropping console", "error", err)
				return
			}
		case <-closed:
			return
		}
	}
}
