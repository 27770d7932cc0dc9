package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Webhook event categories. A subscription only ever receives events of its
// own category.
const (
	WEBHOOK_REACTION     = "REACTION"
	WEBHOOK_COMMENT      = "COMMENT"
	WEBHOOK_ORDER        = "ORDER"
	WEBHOOK_USER_BAN     = "USER_BAN"
	WEBHOOK_DATA_CLEANUP = "DATA_CLEANUP"
)

type Webhook struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(150)" json:"name" validate:"required"`
	URL          string    `gorm:"type:varchar(500)" json:"url" validate:"required,url"`
	Type         string    `gorm:"index;type:varchar(20)" json:"type" validate:"required,oneof=REACTION COMMENT ORDER USER_BAN DATA_CLEANUP"`
	IsActive     bool      `gorm:"default:true" json:"isActive"`
	Headers      JSONMap   `gorm:"type:text" json:"headers"`
	Description  string    `gorm:"type:varchar(500)" json:"description,omitempty"`
	SuccessCount int64     `gorm:"default:0" json:"successCount"`
	FailureCount int64     `gorm:"default:0" json:"failureCount"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (w *Webhook) Validate() error {
	v := validator.New()

	return v.Struct(w)
}

// IsValidWebhookType reports whether t is one of the known event categories.
func IsValidWebhookType(t string) bool {
	switch t {
	case WEBHOOK_REACTION, WEBHOOK_COMMENT, WEBHOOK_ORDER, WEBHOOK_USER_BAN, WEBHOOK_DATA_CLEANUP:
		return true
	}
	return false
}
