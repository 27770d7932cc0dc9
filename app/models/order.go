package models

import (
	"fmt"
	"math/rand"
	"time"
)

const (
	ORDER_PENDING   = "PENDING"
	ORDER_CONFIRMED = "CONFIRMED"
	ORDER_DELIVERED = "DELIVERED"
	ORDER_CANCELLED = "CANCELLED"
)

type Order struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OrderID       string    `gorm:"uniqueIndex;type:varchar(50)" json:"order_id"`
	Name          string    `gorm:"type:varchar(150)" json:"name" validate:"required"`
	Number        string    `gorm:"type:varchar(50)" json:"number" validate:"required"`
	Address       string    `gorm:"type:varchar(500)" json:"address" validate:"required"`
	ProductName   string    `gorm:"type:varchar(200)" json:"product_name" validate:"required"`
	TotalProduct  int       `gorm:"not null" json:"total_product" validate:"required,min=1"`
	TotalPrice    float64   `gorm:"not null" json:"total_price" validate:"min=0"`
	Text          string    `gorm:"type:text" json:"text,omitempty"`
	SenderID      string    `gorm:"index;type:varchar(100)" json:"sender_id" validate:"required"`
	RecipientID   string    `gorm:"index;type:varchar(100)" json:"recipient_id" validate:"required"`
	Status        string    `gorm:"type:varchar(20);default:'PENDING'" json:"status" validate:"oneof=PENDING CONFIRMED DELIVERED CANCELLED"`
	CancelReason  string    `gorm:"type:varchar(500)" json:"cancel_reason,omitempty"`
	CancelMessage string    `gorm:"type:varchar(500)" json:"cancel_message,omitempty"`
	Extra         JSONMap   `gorm:"type:text" json:"extra,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// IsValidOrderStatus reports whether s is one of the known order states.
func IsValidOrderStatus(s string) bool {
	switch s {
	case ORDER_PENDING, ORDER_CONFIRMED, ORDER_DELIVERED, ORDER_CANCELLED:
		return true
	}
	return false
}

// GenerateOrderID builds a unique order identifier in the form
// ORD<unix-millis><3 random digits>.
func GenerateOrderID() string {
	return fmt.Sprintf("ORD%d%03d", time.Now().UnixMilli(), rand.Intn(1000))
}
