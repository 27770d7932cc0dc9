package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/socialhubhq/socialhub/internal/pkg/realtime"
)

type RealtimeRouter struct {
}

func (h RealtimeRouter) InstallRouter(app *fiber.App) {
	app.Use("/ws", realtime.UpgradeMiddleware())
	app.Get("/ws", realtime.Handler())
}

func NewRealtimeRouter() *RealtimeRouter {
	return &RealtimeRouter{}
}
