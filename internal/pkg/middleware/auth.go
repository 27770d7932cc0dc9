package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/socialhubhq/socialhub/internal/pkg/admincontext"
	"github.com/socialhubhq/socialhub/internal/pkg/session"
)

// RequireAuth resolves the bearer session token and loads the admin context.
// Looking the token up slides its 24h expiry.
func RequireAuth(c *fiber.Ctx) error {
	token := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Authentication required",
		})
	}

	data, err := session.GetStore().Get(token)
	if err != nil || data == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Session expired. Please login again.",
		})
	}

	admincontext.SetAdminContext(c, admincontext.AdminContext{
		AdminID:    data.AdminID,
		Username:   data.Username,
		Role:       data.Role,
		IsLoggedIn: true,
		Token:      token,
	})

	return c.Next()
}

// RequireOwner ensures the authenticated admin holds the OWNER role.
// Must run after RequireAuth.
func RequireOwner(c *fiber.Ctx) error {
	if !admincontext.IsOwner(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Access denied. Owner privileges required.",
		})
	}
	return c.Next()
}
