package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/socialhubhq/socialhub/app/models"
	"github.com/socialhubhq/socialhub/app/repository"
	"github.com/socialhubhq/socialhub/internal/pkg/admincontext"
	"github.com/socialhubhq/socialhub/internal/pkg/session"
)

// CredentialsRequest is the body of login and setup-owner.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleCheckSetup reports whether the initial owner setup is still open.
func HandleCheckSetup(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetAdminRepository()

	count, err := repo.Count()
	if err != nil {
		return serverError(c, "Error checking setup status", err)
	}
	ownerExists, err := repo.OwnerExists()
	if err != nil {
		return serverError(c, "Error checking setup status", err)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"needsSetup":  count == 0,
		"ownerExists": ownerExists,
	})
}

// HandleSetupOwner creates the first account with the OWNER role. Once any
// admin exists the endpoint locks with 403.
func HandleSetupOwner(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return badRequest(c, "Username and password are required")
	}

	repo := repository.GetGlobalFactory().GetAdminRepository()
	count, err := repo.Count()
	if err != nil {
		return serverError(c, "Error creating owner account", err)
	}
	if count > 0 {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Setup already completed. Login instead.",
		})
	}

	owner, err := models.CreateAdmin(req.Username, req.Password, models.ROLE_OWNER, "")
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := repo.Create(owner); err != nil {
		return serverError(c, "Error creating owner account", err)
	}

	logActivityAs(c, req.Username, "OWNER_ACCOUNT_CREATED", map[string]interface{}{
		"isInitialSetup": true,
	})

	log.Infof("[Auth] Owner account created: %s", req.Username)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Owner account created successfully. Please login.",
	})
}

// HandleLogin authenticates an active admin and issues a session token.
func HandleLogin(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return badRequest(c, "Username and password are required")
	}

	repo := repository.GetGlobalFactory().GetAdminRepository()
	admin, err := repo.GetActiveByUsername(req.Username)
	if err != nil {
		return serverError(c, "Login failed", err)
	}

	if admin == nil {
		logActivityAs(c, req.Username, "LOGIN_FAILED", map[string]interface{}{"reason": "User not found"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Invalid username or password",
		})
	}

	if !models.CheckPasswordHash(req.Password, admin.Password) {
		logActivityAs(c, req.Username, "LOGIN_FAILED", map[string]interface{}{"reason": "Invalid password"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Invalid username or password",
		})
	}

	token := session.GenerateToken()
	if err := session.GetStore().Set(token, &session.Data{
		AdminID:  admin.ID,
		Username: admin.Username,
		Role:     admin.Role,
	}); err != nil {
		return serverError(c, "Login failed", err)
	}

	now := time.Now()
	admin.LastLoginAt = &now
	if err := repo.Update(admin); err != nil {
		log.Errorf("[Auth] Failed to record last login for %s: %v", admin.Username, err)
	}

	logActivityAs(c, req.Username, "LOGIN_SUCCESS", map[string]interface{}{"role": admin.Role})

	log.Infof("[Auth] Login successful: %s (%s)", admin.Username, admin.Role)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"admin": fiber.Map{
			"username": admin.Username,
			"role":     admin.Role,
		},
	})
}

// HandleLogout drops the current session.
func HandleLogout(c *fiber.Ctx) error {
	ctx := admincontext.GetAdminContext(c)
	if err := session.GetStore().Delete(ctx.Token); err != nil {
		return serverError(c, "Logout failed", err)
	}

	logActivity(c, "LOGOUT", map[string]interface{}{})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}

// HandleVerify confirms the session is still valid.
func HandleVerify(c *fiber.Ctx) error {
	ctx := admincontext.GetAdminContext(c)
	return c.JSON(fiber.Map{
		"success": true,
		"admin": fiber.Map{
			"username": ctx.Username,
			"role":     ctx.Role,
		},
	})
}

// HandleMe returns the current admin's account details, minus the password.
func HandleMe(c *fiber.Ctx) error {
	ctx := admincontext.GetAdminContext(c)

	admin, err := repository.GetGlobalFactory().GetAdminRepository().GetByID(ctx.AdminID)
	if err != nil {
		return serverError(c, "Error fetching admin info", err)
	}
	if admin == nil {
		return notFound(c, "Admin not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"admin": fiber.Map{
			"username":  admin.Username,
			"role":      admin.Role,
			"createdAt": admin.CreatedAt,
			"lastLogin": admin.LastLoginAt,
		},
	})
}

// ChangePasswordRequest is the body of PUT /api/auth/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// HandleChangePassword updates the password and invalidates every session
// belonging to the admin, including the current one.
func HandleChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return badRequest(c, "Current password and new password are required")
	}
	if len(req.NewPassword) < 6 {
		return badRequest(c, "New password must be at least 6 characters long")
	}

	ctx := admincontext.GetAdminContext(c)
	repo := repository.GetGlobalFactory().GetAdminRepository()

	admin, err := repo.GetByID(ctx.AdminID)
	if err != nil {
		return serverError(c, "Failed to change password", err)
	}
	if admin == nil {
		return notFound(c, "Admin not found")
	}

	if !models.CheckPasswordHash(req.CurrentPassword, admin.Password) {
		logActivity(c, "PASSWORD_CHANGE_FAILED", map[string]interface{}{"reason": "Invalid current password"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Current password is incorrect",
		})
	}

	hashed, err := models.HashPassword(req.NewPassword)
	if err != nil {
		return serverError(c, "Failed to change password", err)
	}
	admin.Password = hashed
	if err := repo.Update(admin); err != nil {
		return serverError(c, "Failed to change password", err)
	}

	logActivity(c, "PASSWORD_CHANGED", map[string]interface{}{})

	if err := session.GetStore().DeleteForAdmin(admin.Username); err != nil {
		log.Errorf("[Auth] Failed to invalidate sessions for %s: %v", admin.Username, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password changed successfully. Please login again.",
	})
}
