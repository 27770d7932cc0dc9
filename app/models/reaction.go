package models

import (
	"time"
)

const (
	REACTION_LIKE  = "LIKE"
	REACTION_LOVE  = "LOVE"
	REACTION_ANGRY = "ANGRY"
	REACTION_HAHA  = "HAHA"
	REACTION_SAD   = "SAD"
	REACTION_WOW   = "WOW"
)

// Reaction is one entry in the engagement log. ADD-style actions append a
// new row; REMOVE-style actions hard-delete every matching row, so the
// current state of a (user, post) pair is whatever rows survive.
type Reaction struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"type:varchar(150)" json:"name,omitempty"`
	UserID           string    `gorm:"index;type:varchar(100)" json:"user_id" validate:"required"`
	ReactionType     string    `gorm:"type:varchar(20)" json:"reaction_type" validate:"required,oneof=LIKE LOVE ANGRY HAHA SAD WOW"`
	PostURL          string    `gorm:"type:varchar(500)" json:"post_url,omitempty"`
	PostID           string    `gorm:"index;type:varchar(100)" json:"post_id,omitempty"`
	ActionType       string    `gorm:"type:varchar(50);default:'ADDED'" json:"action_type"`
	PreviousReaction string    `gorm:"type:varchar(20)" json:"previous_reaction,omitempty"`
	CustomAction     string    `gorm:"type:varchar(150)" json:"custom_action,omitempty"`
	Extra            JSONMap   `gorm:"type:text" json:"extra,omitempty"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
