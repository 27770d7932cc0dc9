package models

import (
	"time"
)

// AdminActivity is an append-only audit record of admin actions.
type AdminActivity struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AdminUsername string    `gorm:"index;type:varchar(100)" json:"adminUsername"`
	Action        string    `gorm:"type:varchar(100)" json:"action"`
	Details       JSONMap   `gorm:"type:text" json:"details"`
	IPAddress     string    `gorm:"type:varchar(45)" json:"ipAddress,omitempty"`
	UserAgent     string    `gorm:"type:varchar(255)" json:"userAgent,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
