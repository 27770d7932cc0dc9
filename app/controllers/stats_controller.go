package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/socialhubhq/socialhub/app/models"
	"github.com/socialhubhq/socialhub/app/repository"
	"github.com/socialhubhq/socialhub/internal/pkg/database"
	"github.com/socialhubhq/socialhub/internal/pkg/env"
	"github.com/socialhubhq/socialhub/internal/pkg/statistics"
)

// HandleStats returns the engagement overview: totals, group-bys, latest
// records and the distinct custom actions seen so far.
func HandleStats(c *fiber.Ctx) error {
	repos := repository.GetGlobalFactory().GetRepositories()

	totalReactions, err := repos.Reaction.Count()
	if err != nil {
		return serverError(c, "Error getting stats", err)
	}
	totalComments, err := repos.Comment.Count()
	if err != nil {
		return serverError(c, "Error getting stats", err)
	}
	totalOrders, err := repos.Order.Count("")
	if err != nil {
		return serverError(c, "Error getting stats", err)
	}

	reactionsByType, err := repos.Reaction.CountsByType()
	if err != nil {
		return serverError(c, "Error getting stats", err)
	}
	reactionActionsByType, err := repos.Reaction.CountsByAction()
	if err != nil {
		return serverError(c, "Error getting stats", err)
	}
	commentActionsByType, err := repos.Comment.CountsByAction()
	if err != nil {
		return serverError(c, "Error getting stats", err)
	}
	ordersByStatus, err := repos.Order.CountsByStatus()
	if err != nil {
		return serverError(c, "Error getting stats", err)
	}

	latestReaction, err := repos.Reaction.Latest()
	if err != nil {
		return serverError(c, "Error getting stats", err)
	}
	latestComment, err := repos.Comment.Latest()
	if err != nil {
		return serverError(c, "Error getting stats", err)
	}
	latestOrder, err := repos.Order.Latest()
	if err != nil {
		return serverError(c, "Error getting stats", err)
	}

	uniqueReactionActions, err := repos.Reaction.DistinctCustomActions()
	if err != nil {
		return serverError(c, "Error getting stats", err)
	}
	uniqueCommentActions, err := repos.Comment.DistinctCustomActions()
	if err != nil {
		return serverError(c, "Error getting stats", err)
	}

	var latestReactionInfo, latestCommentInfo, latestOrderInfo interface{}
	if latestReaction != nil {
		latestReactionInfo = fiber.Map{
			"id":            latestReaction.ID,
			"user_id":       latestReaction.UserID,
			"reaction_type": latestReaction.ReactionType,
			"action_type":   latestReaction.ActionType,
			"createdAt":     latestReaction.CreatedAt,
		}
	}
	if latestComment != nil {
		latestCommentInfo = fiber.Map{
			"id":          latestComment.ID,
			"user_id":     latestComment.UserID,
			"comment_id":  latestComment.CommentID,
			"action_type": latestComment.ActionType,
			"createdAt":   latestComment.CreatedAt,
		}
	}
	if latestOrder != nil {
		latestOrderInfo = fiber.Map{
			"id":           latestOrder.ID,
			"order_id":     latestOrder.OrderID,
			"name":         latestOrder.Name,
			"product_name": latestOrder.ProductName,
			"status":       latestOrder.Status,
			"createdAt":    latestOrder.CreatedAt,
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"stats": fiber.Map{
			"totalReactions":        totalReactions,
			"totalComments":         totalComments,
			"totalOrders":           totalOrders,
			"reactionsByType":       reactionsByType,
			"reactionActionsByType": reactionActionsByType,
			"commentActionsByType":  commentActionsByType,
			"ordersByStatus":        ordersByStatus,
			"uniqueReactionActions": uniqueReactionActions,
			"uniqueCommentActions":  uniqueCommentActions,
			"latestReaction":        latestReactionInfo,
			"latestComment":         latestCommentInfo,
			"latestOrder":           latestOrderInfo,
			"database":              env.GetEnv("DB_NAME", "socialhub"),
		},
	})
}

// HandleActionTypes returns every distinct action type and custom action
// recorded across reactions and comments. Public; integrations use it to
// discover the action vocabulary.
func HandleActionTypes(c *fiber.Ctx) error {
	repos := repository.GetGlobalFactory().GetRepositories()

	reactionActions, err := repos.Reaction.DistinctActionTypes()
	if err != nil {
		return serverError(c, "Error fetching action types", err)
	}
	commentActions, err := repos.Comment.DistinctActionTypes()
	if err != nil {
		return serverError(c, "Error fetching action types", err)
	}
	reactionCustomActions, err := repos.Reaction.DistinctCustomActions()
	if err != nil {
		return serverError(c, "Error fetching action types", err)
	}
	commentCustomActions, err := repos.Comment.DistinctCustomActions()
	if err != nil {
		return serverError(c, "Error fetching action types", err)
	}

	return c.JSON(fiber.Map{
		"success":                 true,
		"reaction_actions":        reactionActions,
		"comment_actions":         commentActions,
		"reaction_custom_actions": reactionCustomActions,
		"comment_custom_actions":  commentCustomActions,
	})
}

// HandleDashboardStats returns the headline numbers plus the five most
// recent records of each kind for the dashboard landing page.
func HandleDashboardStats(c *fiber.Ctx) error {
	repos := repository.GetGlobalFactory().GetRepositories()

	// headline totals come from the Redis-backed statistics cache
	totals := statistics.GetStatisticsData()

	pendingOrders, err := repos.Order.Count(models.ORDER_PENDING)
	if err != nil {
		return serverError(c, "Error fetching dashboard stats", err)
	}
	webhookCount, err := repos.Webhook.CountActive()
	if err != nil {
		return serverError(c, "Error fetching dashboard stats", err)
	}
	bannedUsersCount, err := repos.Ban.CountActive("")
	if err != nil {
		return serverError(c, "Error fetching dashboard stats", err)
	}

	recentReactions, err := repos.Reaction.Recent(5)
	if err != nil {
		return serverError(c, "Error fetching dashboard stats", err)
	}
	recentComments, err := repos.Comment.Recent(5)
	if err != nil {
		return serverError(c, "Error fetching dashboard stats", err)
	}
	recentOrders, err := repos.Order.Recent(5)
	if err != nil {
		return serverError(c, "Error fetching dashboard stats", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"stats": fiber.Map{
			"totalReactions":   totals.TotalReactions,
			"totalComments":    totals.TotalComments,
			"totalOrders":      totals.TotalOrders,
			"todayEvents":      totals.TodayEvents,
			"pendingOrders":    pendingOrders,
			"webhookCount":     webhookCount,
			"bannedUsersCount": bannedUsersCount,
			"recentReactions":  recentReactions,
			"recentComments":   recentComments,
			"recentOrders":     recentOrders,
		},
	})
}

// HandleHealth is the public liveness probe. Database connectivity is
// checked with a ping on the underlying connection.
func HandleHealth(c *fiber.Ctx) error {
	connected := false
	if db := database.GetDB(); db != nil {
		if sqlDB, err := db.DB(); err == nil {
			connected = sqlDB.Ping() == nil
		}
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Dashboard API is running.",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database": fiber.Map{
			"connected": connected,
			"name":      env.GetEnv("DB_NAME", "socialhub"),
		},
	})
}
