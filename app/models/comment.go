package models

import (
	"time"
)

// Comment is one entry in the comment engagement log. Replies are new rows
// linked to the parent via ParentCommentID, never in-place updates.
type Comment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"type:varchar(150)" json:"name,omitempty"`
	UserID          string    `gorm:"index;type:varchar(100)" json:"user_id" validate:"required"`
	Comment         string    `gorm:"type:text" json:"comment" validate:"required,min=1"`
	CommentID       string    `gorm:"index;type:varchar(150)" json:"comment_id" validate:"required"`
	PostID          string    `gorm:"index;type:varchar(100)" json:"post_id" validate:"required"`
	PostLink        string    `gorm:"type:varchar(500)" json:"post_link,omitempty"`
	ActionType      string    `gorm:"type:varchar(50);default:'ADDED'" json:"action_type"`
	ParentCommentID string    `gorm:"index;type:varchar(150)" json:"parent_comment_id,omitempty"`
	ReplyTo         string    `gorm:"type:varchar(150)" json:"reply_to,omitempty"`
	CustomAction    string    `gorm:"type:varchar(150)" json:"custom_action,omitempty"`
	Extra           JSONMap   `gorm:"type:text" json:"extra,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
