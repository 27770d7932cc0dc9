package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/socialhubhq/socialhub/app/controllers"
	"github.com/socialhubhq/socialhub/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New(limiter.Config{
		Max: 300,
	}))

	// Auth
	auth := api.Group("/auth")
	auth.Get("/check-setup", controllers.HandleCheckSetup)
	auth.Post("/setup-owner", controllers.HandleSetupOwner)
	auth.Post("/login", controllers.HandleLogin)
	auth.Post("/logout", middleware.RequireAuth, controllers.HandleLogout)
	auth.Get("/verify", middleware.RequireAuth, controllers.HandleVerify)
	auth.Get("/me", middleware.RequireAuth, controllers.HandleMe)
	auth.Put("/change-password", middleware.RequireAuth, controllers.HandleChangePassword)

	// Admin management (owner only)
	admins := api.Group("/admins", middleware.RequireAuth, middleware.RequireOwner)
	admins.Get("/", controllers.HandleListAdmins)
	admins.Post("/", controllers.HandleCreateAdmin)
	admins.Get("/activities", controllers.HandleListActivities)
	admins.Get("/activities/:username", controllers.HandleAdminActivities)
	admins.Delete("/:username", controllers.HandleDeleteAdmin)
	admins.Put("/:username/toggle", controllers.HandleToggleAdmin)

	// Webhook subscriptions (owner only)
	webhooks := api.Group("/webhooks", middleware.RequireAuth, middleware.RequireOwner)
	webhooks.Get("/", controllers.HandleListWebhooks)
	webhooks.Post("/", controllers.HandleCreateWebhook)
	webhooks.Put("/:id", controllers.HandleUpdateWebhook)
	webhooks.Delete("/:id", controllers.HandleDeleteWebhook)

	// Reactions
	api.Post("/save-reaction", controllers.HandleSaveReaction)
	api.Get("/all-reactions", middleware.RequireAuth, controllers.HandleAllReactions)
	api.Get("/reaction-stats", middleware.RequireAuth, controllers.HandleReactionStats)
	api.Get("/find-reactions", middleware.RequireAuth, controllers.HandleFindReactions)
	api.Get("/user-reactions/:user_id", middleware.RequireAuth, controllers.HandleUserReactions)
	api.Get("/current-reaction/:user_id/:post_id", middleware.RequireAuth, controllers.HandleCurrentReaction)

	// Comments
	api.Post("/save-comment", controllers.HandleSaveComment)
	api.Post("/reply-comment", middleware.RequireAuth, controllers.HandleReplyComment)
	api.Get("/all-comments", middleware.RequireAuth, controllers.HandleAllComments)
	api.Get("/comment-stats", middleware.RequireAuth, controllers.HandleCommentStats)
	api.Delete("/delete-comment/:comment_id", middleware.RequireAuth, controllers.HandleDeleteComment)
	api.Get("/find-comments", middleware.RequireAuth, controllers.HandleFindComments)
	api.Get("/user-comments/:user_id", middleware.RequireAuth, controllers.HandleUserComments)
	api.Get("/post-comments/:post_id", middleware.RequireAuth, controllers.HandlePostComments)
	api.Get("/comment-replies/:parent_comment_id", middleware.RequireAuth, controllers.HandleCommentReplies)

	// Orders
	api.Post("/create-order", controllers.HandleCreateOrder)
	api.Get("/all-orders", middleware.RequireAuth, controllers.HandleAllOrders)
	api.Get("/order-stats", middleware.RequireAuth, controllers.HandleOrderStats)
	api.Get("/order/:order_id", middleware.RequireAuth, controllers.HandleGetOrder)
	api.Put("/update-order-status/:order_id", middleware.RequireAuth, controllers.HandleUpdateOrderStatus)
	api.Get("/sender-orders/:sender_id", middleware.RequireAuth, controllers.HandleSenderOrders)
	api.Get("/recipient-orders/:recipient_id", middleware.RequireAuth, controllers.HandleRecipientOrders)
	api.Get("/orders-by-status/:status", middleware.RequireAuth, controllers.HandleOrdersByStatus)
	api.Get("/orders", middleware.RequireAuth, controllers.HandleFindOrders)

	// Bans and data removal
	api.Post("/ban-user", middleware.RequireAuth, controllers.HandleBanUser)
	api.Get("/banned-users", middleware.RequireAuth, controllers.HandleBannedUsers)
	api.Put("/unban-user/:user_id", middleware.RequireAuth, controllers.HandleUnbanUser)
	api.Delete("/remove-user-data/:user_id", middleware.RequireAuth, controllers.HandleRemoveUserData)
	api.Get("/ban-stats", middleware.RequireAuth, controllers.HandleBanStats)
	api.Delete("/cleanup-old-data", middleware.RequireAuth, controllers.HandleCleanupOldData)

	// Products
	api.Get("/public/products", controllers.HandlePublicProducts)
	api.Get("/products", middleware.RequireAuth, controllers.HandleListProducts)
	api.Get("/product-stats", middleware.RequireAuth, controllers.HandleProductStats)
	api.Post("/products", middleware.RequireAuth, controllers.HandleCreateProduct)
	api.Put("/products/:id", middleware.RequireAuth, controllers.HandleUpdateProduct)
	api.Delete("/products/:id", middleware.RequireAuth, controllers.HandleDeleteProduct)
	api.Get("/products/:id", middleware.RequireAuth, controllers.HandleGetProduct)

	// Stats
	api.Get("/stats", middleware.RequireAuth, controllers.HandleStats)
	api.Get("/action-types", controllers.HandleActionTypes)
	api.Get("/dashboard-stats", middleware.RequireAuth, controllers.HandleDashboardStats)
	api.Get("/health", controllers.HandleHealth)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
