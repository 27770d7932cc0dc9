package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/socialhubhq/socialhub/app/models"
	"github.com/socialhubhq/socialhub/app/repository"
	"github.com/socialhubhq/socialhub/internal/pkg/admincontext"
)

// parsePagination reads page/limit query params with the given default
// page size and returns (page, limit, offset).
func parsePagination(c *fiber.Ctx, defaultLimit int) (int, int, int) {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit, (page - 1) * limit
}

// totalPages computes the page count for a pagination block.
func totalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return pages
}

// paginationMap builds the pagination block of list responses.
func paginationMap(page, limit int, total int64) fiber.Map {
	return fiber.Map{
		"page":  page,
		"limit": limit,
		"total": total,
		"pages": totalPages(total, limit),
	}
}

// serverError returns the 500 envelope carrying the underlying error. The
// API serves an internal dashboard; surfacing the message beats hiding it.
func serverError(c *fiber.Ctx, message string, err error) error {
	log.Errorf("[API] %s: %v", message, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": message,
		"error":   err.Error(),
	})
}

// badRequest returns the 400 envelope with a validation message.
func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// notFound returns the 404 envelope.
func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// GetClientIP determines the actual client IP address considering proxies.
func GetClientIP(c *fiber.Ctx) string {
	if cfIP := c.Get("CF-Connecting-IP"); cfIP != "" {
		return cfIP
	}
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	return c.IP()
}

// logActivity appends an audit record for the current admin. Failures are
// logged and swallowed; the audit trail never blocks the action itself.
func logActivity(c *fiber.Ctx, action string, details map[string]interface{}) {
	logActivityAs(c, admincontext.GetUsername(c), action, details)
}

// logActivityAs records an audit entry for a named admin. Used on the auth
// endpoints where no session context exists yet.
func logActivityAs(c *fiber.Ctx, username, action string, details map[string]interface{}) {
	activity := &models.AdminActivity{
		AdminUsername: username,
		Action:        action,
		Details:       details,
		IPAddress:     GetClientIP(c),
		UserAgent:     c.Get(fiber.HeaderUserAgent),
	}
	if err := repository.GetGlobalFactory().GetActivityRepository().Log(activity); err != nil {
		log.Errorf("[API] Failed to log admin activity %s: %v", action, err)
	}
}
