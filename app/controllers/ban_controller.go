package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/socialhubhq/socialhub/app/models"
	"github.com/socialhubhq/socialhub/app/repository"
	"github.com/socialhubhq/socialhub/internal/pkg/admincontext"
	"github.com/socialhubhq/socialhub/internal/pkg/realtime"
	"github.com/socialhubhq/socialhub/internal/pkg/webhook"
)

// BanUserRequest is the body of POST /api/ban-user.
type BanUserRequest struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	BanType  string `json:"ban_type"`
	Reason   string `json:"reason"`
	BannedBy string `json:"banned_by"`
}

// HandleBanUser creates an active ban. A user can hold at most one active
// ban; a second attempt answers 409 with the existing ban's details.
func HandleBanUser(c *fiber.Ctx) error {
	var req BanUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.UserID == "" || req.BanType == "" || req.BannedBy == "" {
		return badRequest(c, "user_id, ban_type, and banned_by are required")
	}

	repo := repository.GetGlobalFactory().GetBanRepository()

	existing, err := repo.GetActiveByUserID(req.UserID)
	if err != nil {
		return serverError(c, "Error banning user", err)
	}
	if existing != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": "This user is already banned",
			"existing_ban": fiber.Map{
				"ban_id":    existing.ID,
				"ban_type":  existing.BanType,
				"reason":    existing.Reason,
				"banned_by": existing.BannedBy,
				"banned_at": existing.CreatedAt,
			},
			"can_remove_data": true,
		})
	}

	ban := &models.UserBan{
		UserID:   req.UserID,
		UserName: req.UserName,
		BanType:  strings.ToUpper(req.BanType),
		Reason:   req.Reason,
		BannedBy: req.BannedBy,
		IsActive: true,
	}
	if err := ban.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := repo.Create(ban); err != nil {
		return serverError(c, "Error banning user", err)
	}

	log.Infof("[Ban] User %s banned (%s)", req.UserID, ban.BanType)

	logActivity(c, "USER_BANNED", map[string]interface{}{
		"user_id":   req.UserID,
		"user_name": req.UserName,
		"ban_type":  ban.BanType,
		"reason":    req.Reason,
	})

	webhook.Trigger(models.WEBHOOK_USER_BAN, map[string]interface{}{
		"action_type":  "BAN",
		"webhook_type": "USER_BANNED",
		"action":       "USER_BANNED",
		"user_id":      req.UserID,
		"user_name":    req.UserName,
		"ban_type":     ban.BanType,
		"reason":       req.Reason,
		"banned_by":    req.BannedBy,
		"ban_id":       ban.ID,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	})

	realtime.Broadcast(realtime.EventUserBanned, map[string]interface{}{
		"user_id":   ban.UserID,
		"user_name": ban.UserName,
		"ban_type":  ban.BanType,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User banned successfully",
		"data":    ban,
	})
}

// HandleBannedUsers lists active bans, optionally filtered by ban type.
func HandleBannedUsers(c *fiber.Ctx) error {
	page, limit, offset := parsePagination(c, 50)

	filterType := strings.ToUpper(c.Query("filterType", "ALL"))
	banType := ""
	if filterType != "ALL" {
		banType = filterType
	}

	repo := repository.GetGlobalFactory().GetBanRepository()
	bans, err := repo.ListActive(banType, offset, limit)
	if err != nil {
		return serverError(c, "Error fetching banned users", err)
	}
	total, err := repo.CountActive(banType)
	if err != nil {
		return serverError(c, "Error fetching banned users", err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       bans,
		"pagination": paginationMap(page, limit, total),
	})
}

// HandleRemoveUserData bulk-deletes every trace of a user: reactions,
// comments and orders where they appear as sender or recipient.
func HandleRemoveUserData(c *fiber.Ctx) error {
	userID := c.Params("user_id")

	var body struct {
		RemoveReason string `json:"remove_reason"`
		RemovedBy    string `json:"removed_by"`
	}
	// Body is optional here
	_ = c.BodyParser(&body)

	log.Infof("[Ban] Removing all data for user %s", userID)

	repos := repository.GetGlobalFactory().GetRepositories()

	deletedReactions, err := repos.Reaction.DeleteByUser(userID)
	if err != nil {
		return serverError(c, "Error removing user data", err)
	}
	deletedComments, err := repos.Comment.DeleteByUser(userID)
	if err != nil {
		return serverError(c, "Error removing user data", err)
	}
	deletedOrders, err := repos.Order.DeleteByUser(userID)
	if err != nil {
		return serverError(c, "Error removing user data", err)
	}

	totalRemoved := deletedReactions + deletedComments + deletedOrders

	log.Infof("[Ban] Removed data for user %s: %d reactions, %d comments, %d orders",
		userID, deletedReactions, deletedComments, deletedOrders)

	deletedCounts := map[string]interface{}{
		"reactions": deletedReactions,
		"comments":  deletedComments,
		"orders":    deletedOrders,
	}

	logActivity(c, "USER_DATA_REMOVED", map[string]interface{}{
		"user_id":        userID,
		"removed_reason": body.RemoveReason,
		"deleted_counts": deletedCounts,
	})

	removedBy := body.RemovedBy
	if removedBy == "" {
		removedBy = admincontext.GetUsername(c)
	}
	removeReason := body.RemoveReason
	if removeReason == "" {
		removeReason = "User data cleanup"
	}

	webhook.Trigger(models.WEBHOOK_USER_BAN, map[string]interface{}{
		"action_type":    "REMOVE_ALL_DATA",
		"webhook_type":   "USER_DATA_REMOVED",
		"action":         "REMOVE_ALL_DATA",
		"user_id":        userID,
		"removed_by":     removedBy,
		"remove_reason":  removeReason,
		"deleted_counts": deletedCounts,
		"total_removed":  totalRemoved,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})

	realtime.Broadcast(realtime.EventUserDataRemoved, map[string]interface{}{
		"user_id":        userID,
		"deleted_counts": deletedCounts,
	})

	return c.JSON(fiber.Map{
		"success":        true,
		"message":        fmt.Sprintf("All data removed for user %s", userID),
		"deleted_counts": deletedCounts,
		"total_removed":  totalRemoved,
	})
}

// HandleUnbanUser flips the active ban to inactive. The ban row is kept as
// history, unlike engagement data which is erased on removal.
func HandleUnbanUser(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	repo := repository.GetGlobalFactory().GetBanRepository()

	ban, err := repo.GetActiveByUserID(userID)
	if err != nil {
		return serverError(c, "Error unbanning user", err)
	}
	if ban == nil {
		return notFound(c, "User not found in banned list")
	}

	ban.IsActive = false
	if err := repo.Update(ban); err != nil {
		return serverError(c, "Error unbanning user", err)
	}

	logActivity(c, "USER_UNBANNED", map[string]interface{}{
		"user_id":   userID,
		"user_name": ban.UserName,
		"ban_type":  ban.BanType,
	})

	log.Infof("[Ban] User %s unbanned", userID)

	webhook.Trigger(models.WEBHOOK_USER_BAN, map[string]interface{}{
		"action_type":  "UNBAN",
		"webhook_type": "USER_UNBANNED",
		"action":       "USER_UNBANNED",
		"user_id":      userID,
		"user_name":    ban.UserName,
		"ban_type":     ban.BanType,
		"reason":       ban.Reason,
		"unbanned_by":  admincontext.GetUsername(c),
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	})

	realtime.Broadcast(realtime.EventUserUnbanned, map[string]interface{}{
		"user_id":   userID,
		"user_name": ban.UserName,
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User unbanned successfully",
		"data":    ban,
	})
}

// HandleBanStats returns active ban totals by type plus last-7-days count.
func HandleBanStats(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetBanRepository()

	totalBanned, err := repo.CountActive("")
	if err != nil {
		return serverError(c, "Error fetching ban statistics", err)
	}
	reactionBans, err := repo.CountActive(models.BAN_REACTION)
	if err != nil {
		return serverError(c, "Error fetching ban statistics", err)
	}
	commentBans, err := repo.CountActive(models.BAN_COMMENT)
	if err != nil {
		return serverError(c, "Error fetching ban statistics", err)
	}
	allBans, err := repo.CountActive(models.BAN_ALL)
	if err != nil {
		return serverError(c, "Error fetching ban statistics", err)
	}
	recentBans, err := repo.CountActiveSince(time.Now().AddDate(0, 0, -7))
	if err != nil {
		return serverError(c, "Error fetching ban statistics", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"stats": fiber.Map{
			"totalBanned":  totalBanned,
			"reactionBans": reactionBans,
			"commentBans":  commentBans,
			"allBans":      allBans,
			"recentBans":   recentBans,
		},
	})
}

// HandleCleanupOldData deletes reactions and comments older than 7 days.
func HandleCleanupOldData(c *fiber.Ctx) error {
	cutoff := time.Now().AddDate(0, 0, -7)
	repos := repository.GetGlobalFactory().GetRepositories()

	deletedReactions, err := repos.Reaction.DeleteOlderThan(cutoff)
	if err != nil {
		return serverError(c, "Error cleaning old data", err)
	}
	deletedComments, err := repos.Comment.DeleteOlderThan(cutoff)
	if err != nil {
		return serverError(c, "Error cleaning old data", err)
	}

	log.Infof("[Ban] Data cleanup completed: %d reactions, %d comments", deletedReactions, deletedComments)

	logActivity(c, "DATA_CLEANUP", map[string]interface{}{
		"deleted_reactions": deletedReactions,
		"deleted_comments":  deletedComments,
	})

	webhook.Trigger(models.WEBHOOK_DATA_CLEANUP, map[string]interface{}{
		"action":            "DATA_CLEANUP",
		"webhook_type":      "DATA_CLEANUP",
		"deleted_reactions": deletedReactions,
		"deleted_comments":  deletedComments,
		"total_deleted":     deletedReactions + deletedComments,
		"cleanup_date":      cutoff.UTC().Format(time.RFC3339),
		"triggered_by":      admincontext.GetUsername(c),
		"timestamp":         time.Now().UTC().Format(time.RFC3339),
	})

	realtime.Broadcast(realtime.EventDataCleanup, map[string]interface{}{
		"deleted_reactions": deletedReactions,
		"deleted_comments":  deletedComments,
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Old data cleaned successfully",
		"data": fiber.Map{
			"deleted_reactions": deletedReactions,
			"deleted_comments":  deletedComments,
		},
	})
}
