package admincontext

import "github.com/gofiber/fiber/v2"

// Locals key under which the auth middleware stores the resolved context.
const ContextKey = "ADMIN_CONTEXT"

// AdminContext represents the authenticated admin for a request.
type AdminContext struct {
	AdminID    uint   `json:"admin_id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	IsLoggedIn bool   `json:"is_logged_in"`
	Token      string `json:"-"`
}

// GetAdminContext retrieves the admin context from the fiber context.
// Returns an anonymous context if none is set.
func GetAdminContext(c *fiber.Ctx) AdminContext {
	if ctx := c.Locals(ContextKey); ctx != nil {
		return ctx.(AdminContext)
	}
	return AdminContext{IsLoggedIn: false}
}

// SetAdminContext stores the admin context on the request.
func SetAdminContext(c *fiber.Ctx, ctx AdminContext) {
	c.Locals(ContextKey, ctx)
}

// IsOwner checks if the current admin holds the OWNER role.
func IsOwner(c *fiber.Ctx) bool {
	return GetAdminContext(c).Role == "OWNER"
}

// GetUsername returns the current admin's username, or empty string.
func GetUsername(c *fiber.Ctx) string {
	return GetAdminContext(c).Username
}
