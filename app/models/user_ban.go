package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	BAN_REACTION = "REACTION"
	BAN_COMMENT  = "COMMENT"
	BAN_ALL      = "ALL"
)

// UserBan is an administrative ban record. Unbanning flips IsActive to false
// and keeps the row, unlike engagement events which are erased on removal.
type UserBan struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index;type:varchar(100)" json:"user_id" validate:"required"`
	UserName  string    `gorm:"type:varchar(150)" json:"user_name,omitempty"`
	BanType   string    `gorm:"type:varchar(20)" json:"ban_type" validate:"required,oneof=REACTION COMMENT ALL"`
	Reason    string    `gorm:"type:varchar(500)" json:"reason,omitempty"`
	BannedBy  string    `gorm:"type:varchar(100)" json:"banned_by" validate:"required"`
	IsActive  bool      `gorm:"default:true" json:"isActive"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (b *UserBan) Validate() error {
	v := validator.New()

	return v.Struct(b)
}
