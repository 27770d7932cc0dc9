package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/socialhubhq/socialhub/app/models"
	"github.com/socialhubhq/socialhub/app/repository"
	"github.com/socialhubhq/socialhub/internal/pkg/admincontext"
	"github.com/socialhubhq/socialhub/internal/pkg/session"
)

// HandleListAdmins returns every ADMIN-role account. Owner accounts are not
// listed and passwords never leave the model (json:"-").
func HandleListAdmins(c *fiber.Ctx) error {
	admins, err := repository.GetGlobalFactory().GetAdminRepository().ListByRole(models.ROLE_ADMIN)
	if err != nil {
		return serverError(c, "Error fetching admins", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    admins,
	})
}

// HandleCreateAdmin creates a new ADMIN-role account.
func HandleCreateAdmin(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return badRequest(c, "Username and password are required")
	}

	repo := repository.GetGlobalFactory().GetAdminRepository()

	existing, err := repo.GetByUsername(req.Username)
	if err != nil {
		return serverError(c, "Error creating admin", err)
	}
	if existing != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": "Username already exists",
		})
	}

	admin, err := models.CreateAdmin(req.Username, req.Password, models.ROLE_ADMIN, admincontext.GetUsername(c))
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := repo.Create(admin); err != nil {
		return serverError(c, "Error creating admin", err)
	}

	logActivity(c, "ADMIN_CREATED", map[string]interface{}{"newAdmin": req.Username})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Admin created successfully",
		"data": fiber.Map{
			"username":  admin.Username,
			"role":      admin.Role,
			"createdAt": admin.CreatedAt,
		},
	})
}

// HandleDeleteAdmin removes an ADMIN-role account and kills its sessions.
// The owner account cannot be deleted.
func HandleDeleteAdmin(c *fiber.Ctx) error {
	username := c.Params("username")
	repo := repository.GetGlobalFactory().GetAdminRepository()

	admin, err := repo.GetByUsername(username)
	if err != nil {
		return serverError(c, "Error deleting admin", err)
	}
	if admin == nil {
		return notFound(c, "Admin not found")
	}
	if admin.Role == models.ROLE_OWNER {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Cannot delete owner account",
		})
	}

	if err := repo.DeleteByUsername(username); err != nil {
		return serverError(c, "Error deleting admin", err)
	}

	if err := session.GetStore().DeleteForAdmin(username); err != nil {
		log.Errorf("[Admin] Failed to invalidate sessions for %s: %v", username, err)
	}

	logActivity(c, "ADMIN_DELETED", map[string]interface{}{"deletedAdmin": username})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Admin deleted successfully",
	})
}

// HandleToggleAdmin flips an admin account between active and inactive.
// Deactivation invalidates the account's sessions immediately.
func HandleToggleAdmin(c *fiber.Ctx) error {
	username := c.Params("username")
	repo := repository.GetGlobalFactory().GetAdminRepository()

	admin, err := repo.GetByUsername(username)
	if err != nil {
		return serverError(c, "Error toggling admin status", err)
	}
	if admin == nil {
		return notFound(c, "Admin not found")
	}
	if admin.Role == models.ROLE_OWNER {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Cannot modify owner account",
		})
	}

	admin.IsActive = !admin.IsActive
	if err := repo.Update(admin); err != nil {
		return serverError(c, "Error toggling admin status", err)
	}

	if !admin.IsActive {
		if err := session.GetStore().DeleteForAdmin(username); err != nil {
			log.Errorf("[Admin] Failed to invalidate sessions for %s: %v", username, err)
		}
	}

	newStatus := "inactive"
	verb := "deactivated"
	if admin.IsActive {
		newStatus = "active"
		verb = "activated"
	}

	logActivity(c, "ADMIN_STATUS_TOGGLED", map[string]interface{}{
		"targetAdmin": username,
		"newStatus":   newStatus,
	})

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  fmt.Sprintf("Admin %s successfully", verb),
		"isActive": admin.IsActive,
	})
}

// HandleListActivities returns the audit log, newest first, paginated.
func HandleListActivities(c *fiber.Ctx) error {
	page, limit, offset := parsePagination(c, 50)
	repo := repository.GetGlobalFactory().GetActivityRepository()

	activities, err := repo.List(offset, limit)
	if err != nil {
		return serverError(c, "Error fetching activities", err)
	}
	total, err := repo.Count()
	if err != nil {
		return serverError(c, "Error fetching activities", err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       activities,
		"pagination": paginationMap(page, limit, total),
	})
}

// HandleAdminActivities returns the audit log of one admin.
func HandleAdminActivities(c *fiber.Ctx) error {
	username := c.Params("username")
	page, limit, offset := parsePagination(c, 50)
	repo := repository.GetGlobalFactory().GetActivityRepository()

	activities, err := repo.ListByAdmin(username, offset, limit)
	if err != nil {
		return serverError(c, "Error fetching activities", err)
	}
	total, err := repo.CountByAdmin(username)
	if err != nil {
		return serverError(c, "Error fetching activities", err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       activities,
		"pagination": paginationMap(page, limit, total),
	})
}
