package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/socialhubhq/socialhub/app/models"
	"github.com/socialhubhq/socialhub/app/repository"
	"github.com/socialhubhq/socialhub/internal/pkg/event"
	"github.com/socialhubhq/socialhub/internal/pkg/realtime"
	"github.com/socialhubhq/socialhub/internal/pkg/webhook"
)

// HandleSaveComment is the public ingress for comment events, mirroring the
// reaction ingress: ADD appends, REMOVE erases by (user, comment, post).
func HandleSaveComment(c *fiber.Ctx) error {
	payload := map[string]interface{}{}
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Invalid request body")
	}

	log.Infof("[Comment] Received comment data for user %v", payload["user_id"])

	userID := popString(payload, "user_id")
	commentText := popString(payload, "comment")
	commentID := popString(payload, "comment_id")
	postID := popString(payload, "post_id")
	if userID == "" || commentText == "" || commentID == "" || postID == "" {
		return badRequest(c, "user_id, comment, comment_id and post_id are mandatory fields.")
	}

	name := popString(payload, "name")
	postLink := popString(payload, "post_link")
	customAction := popString(payload, "custom_action")
	parentCommentID := popString(payload, "parent_comment_id")
	replyTo := popString(payload, "reply_to")
	rawAction := popString(payload, "action_type")

	cls := event.ParseActionType(rawAction)
	repo := repository.GetGlobalFactory().GetCommentRepository()

	if cls.Action == event.ActionRemove {
		deleted, err := repo.DeleteMatching(userID, commentID, postID)
		if err != nil {
			return serverError(c, "Internal server error.", err)
		}

		log.Infof("[Comment] %s %d comment(s) from database, no history kept", cls.Verb, deleted)

		webhook.Trigger(models.WEBHOOK_COMMENT, map[string]interface{}{
			"user_id":       userID,
			"comment_id":    commentID,
			"post_id":       postID,
			"verb":          cls.Verb,
			"action":        cls.Verb + "_FROM_DATABASE",
			"webhook_type":  "COMMENT_REMOVED",
			"deleted_count": deleted,
			"timestamp":     time.Now().UTC().Format(time.RFC3339),
		})

		realtime.Broadcast(realtime.EventCommentRemoved, map[string]interface{}{
			"user_id":       userID,
			"comment_id":    commentID,
			"post_id":       postID,
			"verb":          cls.Verb,
			"deleted_count": deleted,
		})

		note := "Comment successfully removed"
		if deleted == 0 {
			note = "No existing comment found to remove"
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success":       true,
			"message":       fmt.Sprintf("Comment %s from database - no history kept", strings.ToLower(cls.Verb)),
			"verb":          cls.Verb,
			"deleted_count": deleted,
			"removed_data": fiber.Map{
				"user_id":    userID,
				"comment_id": commentID,
				"post_id":    postID,
			},
			"note": note,
		})
	}

	comment := &models.Comment{
		Name:            name,
		UserID:          userID,
		Comment:         commentText,
		CommentID:       commentID,
		PostID:          postID,
		PostLink:        postLink,
		ActionType:      cls.Verb,
		ParentCommentID: parentCommentID,
		ReplyTo:         replyTo,
		CustomAction:    customAction,
	}
	if len(payload) > 0 {
		comment.Extra = payload
	}

	if err := repo.Create(comment); err != nil {
		return serverError(c, "Internal server error.", err)
	}

	log.Infof("[Comment] New comment action %s with ID %d", comment.ActionType, comment.ID)

	webhook.Trigger(models.WEBHOOK_COMMENT, map[string]interface{}{
		"id":                comment.ID,
		"name":              comment.Name,
		"user_id":           comment.UserID,
		"comment":           comment.Comment,
		"comment_id":        comment.CommentID,
		"post_id":           comment.PostID,
		"post_link":         comment.PostLink,
		"action_type":       comment.ActionType,
		"parent_comment_id": comment.ParentCommentID,
		"custom_action":     comment.CustomAction,
		"webhook_type":      "COMMENT_ADDED",
		"action":            comment.ActionType,
		"timestamp":         time.Now().UTC().Format(time.RFC3339),
	})

	realtime.Broadcast(realtime.EventNewComment, map[string]interface{}{
		"id":         comment.ID,
		"user_id":    comment.UserID,
		"comment_id": comment.CommentID,
		"post_id":    comment.PostID,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Comment data saved successfully. Action: %s", comment.ActionType),
		"data":    comment,
	})
}

// ReplyCommentRequest is the body of POST /api/reply-comment.
type ReplyCommentRequest struct {
	ParentCommentID  string `json:"parent_comment_id"`
	ReplyText        string `json:"reply_text"`
	UserID           string `json:"user_id"`
	UserName         string `json:"user_name"`
	PostID           string `json:"post_id"`
	DeleteAfterReply bool   `json:"delete_after_reply"`
}

// HandleReplyComment posts an admin reply to an existing comment and
// optionally deletes the parent afterwards.
func HandleReplyComment(c *fiber.Ctx) error {
	var req ReplyCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.ParentCommentID == "" || req.ReplyText == "" || req.UserID == "" || req.PostID == "" {
		return badRequest(c, "parent_comment_id, reply_text, user_id, and post_id are required")
	}

	repo := repository.GetGlobalFactory().GetCommentRepository()

	reply := &models.Comment{
		UserID:          req.UserID,
		Name:            req.UserName,
		Comment:         req.ReplyText,
		CommentID:       fmt.Sprintf("reply_%d_%s", time.Now().UnixMilli(), uuid.New().String()[:8]),
		PostID:          req.PostID,
		ActionType:      "REPLY",
		ParentCommentID: req.ParentCommentID,
		ReplyTo:         req.ParentCommentID,
	}

	if err := repo.Create(reply); err != nil {
		return serverError(c, "Error posting reply", err)
	}

	log.Infof("[Comment] Reply posted to comment %s", req.ParentCommentID)

	webhook.Trigger(models.WEBHOOK_COMMENT, map[string]interface{}{
		"id":                 reply.ID,
		"user_id":            reply.UserID,
		"name":               reply.Name,
		"comment":            reply.Comment,
		"comment_id":         reply.CommentID,
		"post_id":            reply.PostID,
		"action_type":        reply.ActionType,
		"webhook_type":       "COMMENT_REPLY",
		"action":             "REPLY",
		"parent_comment_id":  req.ParentCommentID,
		"delete_after_reply": req.DeleteAfterReply,
		"timestamp":          time.Now().UTC().Format(time.RFC3339),
	})

	if req.DeleteAfterReply {
		parent, err := repo.GetByCommentID(req.ParentCommentID)
		if err != nil {
			log.Errorf("[Comment] Failed to load parent comment %s: %v", req.ParentCommentID, err)
		}
		if _, err := repo.DeleteByCommentID(req.ParentCommentID); err != nil {
			log.Errorf("[Comment] Failed to delete parent comment %s: %v", req.ParentCommentID, err)
		} else {
			log.Infof("[Comment] Deleted parent comment %s after reply", req.ParentCommentID)
		}

		webhook.Trigger(models.WEBHOOK_COMMENT, map[string]interface{}{
			"action":          "DELETE_AFTER_REPLY",
			"webhook_type":    "COMMENT_DELETED",
			"comment_id":      req.ParentCommentID,
			"deleted_comment": parent,
			"reason":          "Deleted after admin reply",
			"deleted_by":      "admin",
			"reply_id":        reply.CommentID,
			"timestamp":       time.Now().UTC().Format(time.RFC3339),
		})
	}

	realtime.Broadcast(realtime.EventNewReply, map[string]interface{}{
		"id":                reply.ID,
		"comment_id":        reply.CommentID,
		"parent_comment_id": reply.ParentCommentID,
		"post_id":           reply.PostID,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Reply posted successfully",
		"data":    reply,
	})
}

// HandleAllComments returns the comment log, newest first, paginated.
func HandleAllComments(c *fiber.Ctx) error {
	page, limit, offset := parsePagination(c, 50)
	repo := repository.GetGlobalFactory().GetCommentRepository()

	comments, err := repo.List(offset, limit)
	if err != nil {
		return serverError(c, "Error fetching comments", err)
	}
	total, err := repo.Count()
	if err != nil {
		return serverError(c, "Error fetching comments", err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"count":      total,
		"data":       comments,
		"pagination": paginationMap(page, limit, total),
	})
}

// HandleCommentStats aggregates totals, reply count and top users/posts.
func HandleCommentStats(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetCommentRepository()

	total, err := repo.Count()
	if err != nil {
		return serverError(c, "Error fetching comment statistics", err)
	}
	replies, err := repo.CountReplies()
	if err != nil {
		return serverError(c, "Error fetching comment statistics", err)
	}
	topUsers, err := repo.TopUsers(10)
	if err != nil {
		return serverError(c, "Error fetching comment statistics", err)
	}
	topPosts, err := repo.TopPosts(10)
	if err != nil {
		return serverError(c, "Error fetching comment statistics", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"stats": fiber.Map{
			"totalComments": total,
			"totalReplies":  replies,
			"topUsers":      topUsers,
			"topPosts":      topPosts,
		},
	})
}

// HandleDeleteComment removes a comment by its external comment id. The
// webhook fires before the deletion so subscribers still see the record.
func HandleDeleteComment(c *fiber.Ctx) error {
	commentID := c.Params("comment_id")

	var body struct {
		DeleteOption string `json:"deleteOption"`
	}
	if err := c.BodyParser(&body); err != nil || commentID == "" || body.DeleteOption == "" {
		return badRequest(c, "Missing required fields")
	}

	repo := repository.GetGlobalFactory().GetCommentRepository()
	comment, err := repo.GetByCommentID(commentID)
	if err != nil {
		return serverError(c, "Error deleting comment", err)
	}
	if comment == nil {
		return notFound(c, "Comment not found")
	}

	log.Infof("[Comment] Deleting comment %s with option %s", commentID, body.DeleteOption)

	webhook.Trigger(models.WEBHOOK_COMMENT, map[string]interface{}{
		"action":        "DELETE",
		"webhook_type":  "COMMENT_DELETED",
		"comment_id":    commentID,
		"delete_option": body.DeleteOption,
		"comment_data":  comment,
		"deleted_by":    "admin",
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})

	if body.DeleteOption == "database" || body.DeleteOption == "both" {
		if _, err := repo.DeleteByCommentID(commentID); err != nil {
			return serverError(c, "Error deleting comment", err)
		}
	}

	logActivity(c, "DELETE_COMMENT", map[string]interface{}{
		"comment_id":    commentID,
		"delete_option": body.DeleteOption,
	})

	realtime.Broadcast(realtime.EventCommentDeleted, map[string]interface{}{
		"comment_id":   commentID,
		"deleteOption": body.DeleteOption,
	})

	return c.JSON(fiber.Map{
		"success":      true,
		"message":      "Comment deleted successfully",
		"deleteOption": body.DeleteOption,
	})
}

// HandleFindComments filters the log by query parameters.
func HandleFindComments(c *fiber.Ctx) error {
	filter := repository.CommentFilter{
		UserID:          c.Query("user_id"),
		PostID:          c.Query("post_id"),
		CommentID:       c.Query("comment_id"),
		ActionType:      c.Query("action_type"),
		CustomAction:    c.Query("custom_action"),
		ParentCommentID: c.Query("parent_comment_id"),
	}

	comments, err := repository.GetGlobalFactory().GetCommentRepository().Find(filter)
	if err != nil {
		return serverError(c, "Error finding comments", err)
	}

	log.Infof("[Comment] Found %d comments for filtered query", len(comments))

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(comments),
		"data":    comments,
	})
}

// HandleUserComments returns one user's full comment history.
func HandleUserComments(c *fiber.Ctx) error {
	userID := c.Params("user_id")

	comments, err := repository.GetGlobalFactory().GetCommentRepository().ListByUser(userID)
	if err != nil {
		return serverError(c, "Error fetching user comments", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(comments),
		"data":    comments,
	})
}

// HandlePostComments returns every comment recorded for a post.
func HandlePostComments(c *fiber.Ctx) error {
	postID := c.Params("post_id")

	comments, err := repository.GetGlobalFactory().GetCommentRepository().ListByPost(postID)
	if err != nil {
		return serverError(c, "Error fetching post comments", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(comments),
		"data":    comments,
	})
}

// HandleCommentReplies returns the replies linked to a parent comment.
func HandleCommentReplies(c *fiber.Ctx) error {
	parentCommentID := c.Params("parent_comment_id")

	replies, err := repository.GetGlobalFactory().GetCommentRepository().ListReplies(parentCommentID)
	if err != nil {
		return serverError(c, "Error fetching comment replies", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(replies),
		"data":    replies,
	})
}
