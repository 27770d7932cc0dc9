package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	PRODUCT_ACTIVE       = "ACTIVE"
	PRODUCT_INACTIVE     = "INACTIVE"
	PRODUCT_OUT_OF_STOCK = "OUT_OF_STOCK"
)

type Product struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ProductName      string    `gorm:"type:varchar(200)" json:"productName" validate:"required"`
	BrandName        string    `gorm:"type:varchar(150)" json:"brandName,omitempty"`
	ShortDescription string    `gorm:"type:varchar(500)" json:"shortDescription,omitempty"`
	Price            float64   `gorm:"not null" json:"price" validate:"min=0"`
	Discount         float64   `gorm:"default:0" json:"discount" validate:"min=0,max=100"`
	FinalPrice       float64   `gorm:"not null" json:"finalPrice"`
	StockQuantity    int       `gorm:"not null;default:0" json:"stockQuantity" validate:"min=0"`
	ProductCode      string    `gorm:"uniqueIndex;type:varchar(100)" json:"productCode" validate:"required"`
	Status           string    `gorm:"type:varchar(20);default:'ACTIVE'" json:"status" validate:"oneof=ACTIVE INACTIVE OUT_OF_STOCK"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (p *Product) Validate() error {
	v := validator.New()

	return v.Struct(p)
}

// BeforeSave keeps FinalPrice derived from Price and Discount.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	if p.Price >= 0 && p.Discount >= 0 {
		p.FinalPrice = p.Price - (p.Price * p.Discount / 100)
	}
	return nil
}
