package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/socialhubhq/socialhub/app/models"
	"github.com/socialhubhq/socialhub/app/repository"
	"github.com/socialhubhq/socialhub/internal/pkg/realtime"
)

// HandleListWebhooks returns every webhook subscription.
func HandleListWebhooks(c *fiber.Ctx) error {
	webhooks, err := repository.GetGlobalFactory().GetWebhookRepository().List()
	if err != nil {
		return serverError(c, "Error fetching webhooks", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    webhooks,
	})
}

// WebhookRequest is the body of webhook create and update calls.
type WebhookRequest struct {
	Name        string                 `json:"name"`
	URL         string                 `json:"url"`
	Type        string                 `json:"type"`
	Headers     map[string]interface{} `json:"headers"`
	Description string                 `json:"description"`
	IsActive    *bool                  `json:"isActive"`
}

// HandleCreateWebhook registers a new subscription, active by default.
func HandleCreateWebhook(c *fiber.Ctx) error {
	var req WebhookRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Name == "" || req.URL == "" || req.Type == "" {
		return badRequest(c, "Name, URL, and type are required")
	}
	if !models.IsValidWebhookType(req.Type) {
		return badRequest(c, "Invalid webhook type. Must be one of: REACTION, COMMENT, ORDER, USER_BAN, DATA_CLEANUP")
	}

	wh := &models.Webhook{
		Name:        req.Name,
		URL:         req.URL,
		Type:        req.Type,
		IsActive:    true,
		Headers:     req.Headers,
		Description: req.Description,
	}
	if wh.Headers == nil {
		wh.Headers = models.JSONMap{}
	}

	if err := wh.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	if err := repository.GetGlobalFactory().GetWebhookRepository().Create(wh); err != nil {
		return serverError(c, "Error creating webhook", err)
	}

	logActivity(c, "WEBHOOK_CREATED", map[string]interface{}{
		"webhook_id": wh.ID,
		"name":       wh.Name,
		"type":       wh.Type,
	})

	realtime.Broadcast(realtime.EventWebhookCreated, map[string]interface{}{
		"id":   wh.ID,
		"name": wh.Name,
		"type": wh.Type,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Webhook created successfully",
		"data":    wh,
	})
}

// HandleUpdateWebhook applies partial updates to a subscription.
func HandleUpdateWebhook(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return badRequest(c, "Invalid webhook id")
	}

	var req WebhookRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	repo := repository.GetGlobalFactory().GetWebhookRepository()
	wh, err := repo.GetByID(uint(id))
	if err != nil {
		return serverError(c, "Error updating webhook", err)
	}
	if wh == nil {
		return notFound(c, "Webhook not found")
	}

	if req.Name != "" {
		wh.Name = req.Name
	}
	if req.URL != "" {
		wh.URL = req.URL
	}
	if req.Type != "" {
		if !models.IsValidWebhookType(req.Type) {
			return badRequest(c, "Invalid webhook type. Must be one of: REACTION, COMMENT, ORDER, USER_BAN, DATA_CLEANUP")
		}
		wh.Type = req.Type
	}
	if req.Headers != nil {
		wh.Headers = req.Headers
	}
	if req.Description != "" {
		wh.Description = req.Description
	}
	if req.IsActive != nil {
		wh.IsActive = *req.IsActive
	}

	if err := wh.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := repo.Update(wh); err != nil {
		return serverError(c, "Error updating webhook", err)
	}

	logActivity(c, "WEBHOOK_UPDATED", map[string]interface{}{
		"webhook_id": wh.ID,
		"name":       wh.Name,
	})

	realtime.Broadcast(realtime.EventWebhookUpdated, map[string]interface{}{
		"id":       wh.ID,
		"name":     wh.Name,
		"type":     wh.Type,
		"isActive": wh.IsActive,
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Webhook updated successfully",
		"data":    wh,
	})
}

// HandleDeleteWebhook removes a subscription.
func HandleDeleteWebhook(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return badRequest(c, "Invalid webhook id")
	}

	repo := repository.GetGlobalFactory().GetWebhookRepository()
	wh, err := repo.GetByID(uint(id))
	if err != nil {
		return serverError(c, "Error deleting webhook", err)
	}
	if wh == nil {
		return notFound(c, "Webhook not found")
	}

	if err := repo.Delete(uint(id)); err != nil {
		return serverError(c, "Error deleting webhook", err)
	}

	logActivity(c, "WEBHOOK_DELETED", map[string]interface{}{
		"webhook_id": id,
		"name":       wh.Name,
	})

	realtime.Broadcast(realtime.EventWebhookDeleted, map[string]interface{}{
		"id": id,
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Webhook deleted successfully",
	})
}
