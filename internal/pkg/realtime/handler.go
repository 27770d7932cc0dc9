package realtime

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// UpgradeMiddleware rejects plain HTTP requests on the websocket route.
// The endpoint is open like the rest of the public ingress; clients only
// ever receive broadcasts, they cannot send.
func UpgradeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	}
}

// Handler upgrades the connection and keeps it registered with the hub
// until the client goes away.
func Handler() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		hub := GetHub()
		hub.Register(c)
		defer func() {
			hub.Unregister(c)
			_ = c.Close()
		}()

		// Clients never send data; the read loop only notices the close.
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	})
}
