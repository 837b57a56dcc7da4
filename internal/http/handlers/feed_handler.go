package handlers

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	applog "vrukshavalli/internal/log"
	"vrukshavalli/internal/notify"
	"vrukshavalli/internal/services"
)

// FeedHandler serves the realtime order feed. Admins watch all orders;
// customers watch their own. On connect the hub pushes a full snapshot,
// then streams insert/update events.
type FeedHandler struct {
	Hub  *notify.Hub
	Auth *services.AuthService
}

// Upgrade resolves the caller's scope before the connection leaves fiber.
func (h *FeedHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	sid := c.Cookies("sid")
	if sid == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
	}
	u, err := h.Auth.CurrentUser(sid)
	if err != nil || u == nil {
		applog.Security(c, "feed.denied", map[string]any{"sid": sid})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
	}
	scope := notify.UserScope(u.Email)
	if u.Role == "ADMIN" {
		scope = notify.ScopeAdmin
	}
	c.Locals("scope", scope)
	return c.Next()
}

// Stream pumps hub payloads to the socket until either side goes away.
func (h *FeedHandler) Stream() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		scope, _ := conn.Locals("scope").(string)
		client := &notify.Client{
			Send:  make(chan []byte, 32),
			Scope: scope,
		}
		h.Hub.Subscribe(client)

		go func() {
			defer conn.Close()
			for msg := range client.Send {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			}
		}()

		// Read loop exists only to observe the close.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		h.Hub.Unsubscribe(client)
		conn.Close()
	})
}
