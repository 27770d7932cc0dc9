package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/socialhubhq/socialhub/app/models"
	"github.com/socialhubhq/socialhub/app/repository"
	"github.com/socialhubhq/socialhub/internal/pkg/event"
	"github.com/socialhubhq/socialhub/internal/pkg/realtime"
	"github.com/socialhubhq/socialhub/internal/pkg/webhook"
)

// popString removes key from the payload map and returns it as a trimmed
// string. Inbound webhook bodies carry arbitrary extra fields; known keys
// are lifted into typed columns and the rest stays in the Extra blob.
func popString(m map[string]interface{}, key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	delete(m, key)
	if v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// HandleSaveReaction is the public ingress for reaction events. ADD-style
// action types append a row; REMOVE-style types erase every matching row.
// Both paths answer 201.
func HandleSaveReaction(c *fiber.Ctx) error {
	payload := map[string]interface{}{}
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Invalid request body")
	}

	log.Infof("[Reaction] Received reaction data for user %v", payload["user_id"])

	userID := popString(payload, "user_id")
	reactionType := strings.ToUpper(popString(payload, "reaction_type"))
	if userID == "" || reactionType == "" {
		return badRequest(c, "user_id and reaction_type are mandatory fields. Data is incomplete.")
	}

	name := popString(payload, "name")
	postURL := popString(payload, "post_url")
	postID := popString(payload, "post_id")
	customAction := popString(payload, "custom_action")
	previousReaction := strings.ToUpper(popString(payload, "previous_reaction"))
	rawAction := popString(payload, "action_type")

	cls := event.ParseActionType(rawAction)
	repo := repository.GetGlobalFactory().GetReactionRepository()

	if cls.Action == event.ActionRemove {
		deleted, err := repo.DeleteMatching(userID, postID, reactionType)
		if err != nil {
			return serverError(c, "Internal server error.", err)
		}

		log.Infof("[Reaction] %s %d reaction(s) from database, no history kept", cls.Verb, deleted)

		webhook.Trigger(models.WEBHOOK_REACTION, map[string]interface{}{
			"user_id":       userID,
			"post_id":       postID,
			"reaction_type": reactionType,
			"verb":          cls.Verb,
			"action":        cls.Verb + "_FROM_DATABASE",
			"webhook_type":  "REACTION_REMOVED",
			"deleted_count": deleted,
			"timestamp":     time.Now().UTC().Format(time.RFC3339),
		})

		realtime.Broadcast(realtime.EventReactionRemoved, map[string]interface{}{
			"user_id":       userID,
			"post_id":       postID,
			"reaction_type": reactionType,
			"verb":          cls.Verb,
			"deleted_count": deleted,
		})

		note := "Reaction successfully removed"
		if deleted == 0 {
			note = "No existing reaction found to remove"
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success":       true,
			"message":       fmt.Sprintf("Reaction %s from database - no history kept", strings.ToLower(cls.Verb)),
			"verb":          cls.Verb,
			"deleted_count": deleted,
			"removed_data": fiber.Map{
				"user_id":       userID,
				"post_id":       postID,
				"reaction_type": reactionType,
			},
			"note": note,
		})
	}

	reaction := &models.Reaction{
		Name:             name,
		UserID:           userID,
		ReactionType:     reactionType,
		PostURL:          postURL,
		PostID:           postID,
		ActionType:       cls.Verb,
		PreviousReaction: previousReaction,
		CustomAction:     customAction,
	}
	if len(payload) > 0 {
		reaction.Extra = payload
	}

	if err := repo.Create(reaction); err != nil {
		return serverError(c, "Internal server error.", err)
	}

	log.Infof("[Reaction] New reaction action %s with ID %d", reaction.ActionType, reaction.ID)

	webhook.Trigger(models.WEBHOOK_REACTION, map[string]interface{}{
		"id":                reaction.ID,
		"name":              reaction.Name,
		"user_id":           reaction.UserID,
		"reaction_type":     reaction.ReactionType,
		"post_url":          reaction.PostURL,
		"post_id":           reaction.PostID,
		"action_type":       reaction.ActionType,
		"previous_reaction": reaction.PreviousReaction,
		"custom_action":     reaction.CustomAction,
		"webhook_type":      "REACTION_ADDED",
		"action":            reaction.ActionType,
		"timestamp":         time.Now().UTC().Format(time.RFC3339),
	})

	realtime.Broadcast(realtime.EventNewReaction, map[string]interface{}{
		"id":            reaction.ID,
		"user_id":       reaction.UserID,
		"reaction_type": reaction.ReactionType,
		"post_id":       reaction.PostID,
		"action_type":   reaction.ActionType,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Reaction data saved successfully. Action: %s", reaction.ActionType),
		"data":    reaction,
	})
}

// HandleAllReactions returns the full reaction log, newest first, paginated.
func HandleAllReactions(c *fiber.Ctx) error {
	page, limit, offset := parsePagination(c, 50)
	repo := repository.GetGlobalFactory().GetReactionRepository()

	reactions, err := repo.List(offset, limit)
	if err != nil {
		return serverError(c, "Error fetching reactions", err)
	}
	total, err := repo.Count()
	if err != nil {
		return serverError(c, "Error fetching reactions", err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"count":      total,
		"data":       reactions,
		"pagination": paginationMap(page, limit, total),
	})
}

// HandleReactionStats aggregates totals, per-type counts and top users/posts.
func HandleReactionStats(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetReactionRepository()

	total, err := repo.Count()
	if err != nil {
		return serverError(c, "Error fetching reaction statistics", err)
	}
	byType, err := repo.CountsByType()
	if err != nil {
		return serverError(c, "Error fetching reaction statistics", err)
	}
	topUsers, err := repo.TopUsers(10)
	if err != nil {
		return serverError(c, "Error fetching reaction statistics", err)
	}
	topPosts, err := repo.TopPosts(10)
	if err != nil {
		return serverError(c, "Error fetching reaction statistics", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"stats": fiber.Map{
			"totalReactions":  total,
			"reactionsByType": byType,
			"topUsers":        topUsers,
			"topPosts":        topPosts,
		},
	})
}

// HandleFindReactions filters the log by query parameters.
func HandleFindReactions(c *fiber.Ctx) error {
	filter := repository.ReactionFilter{
		UserID:       c.Query("user_id"),
		ReactionType: strings.ToUpper(c.Query("reaction_type")),
		ActionType:   c.Query("action_type"),
		PostID:       c.Query("post_id"),
		CustomAction: c.Query("custom_action"),
	}

	reactions, err := repository.GetGlobalFactory().GetReactionRepository().Find(filter)
	if err != nil {
		return serverError(c, "Error finding reactions", err)
	}

	log.Infof("[Reaction] Found %d reactions for filtered query", len(reactions))

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(reactions),
		"data":    reactions,
	})
}

// HandleUserReactions returns one user's full reaction history.
func HandleUserReactions(c *fiber.Ctx) error {
	userID := c.Params("user_id")

	reactions, err := repository.GetGlobalFactory().GetReactionRepository().ListByUser(userID)
	if err != nil {
		return serverError(c, "Error fetching user reactions", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(reactions),
		"data":    reactions,
	})
}

// HandleCurrentReaction derives the current reaction state for a user/post
// pair from the newest surviving record.
func HandleCurrentReaction(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	postID := c.Params("post_id")

	current, err := repository.GetGlobalFactory().GetReactionRepository().LatestForUserPost(userID, postID)
	if err != nil {
		return serverError(c, "Error fetching current reaction", err)
	}

	if current == nil {
		return c.JSON(fiber.Map{
			"success":      true,
			"has_reaction": false,
			"message":      "No reaction found for this user and post",
		})
	}

	hasActive := !event.IsRemoval(current.ActionType)
	var currentType interface{}
	if hasActive {
		currentType = current.ReactionType
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"has_reaction":     hasActive,
		"current_reaction": currentType,
		"last_action":      current.ActionType,
		"custom_action":    current.CustomAction,
		"last_updated":     current.CreatedAt,
		"data":             current,
	})
}
