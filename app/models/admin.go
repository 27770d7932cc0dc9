package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

const (
	ROLE_OWNER = "OWNER"
	ROLE_ADMIN = "ADMIN"
)

type Admin struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Username    string     `gorm:"uniqueIndex;type:varchar(100)" json:"username" validate:"required,min=3,max=100"`
	Password    string     `gorm:"type:text" json:"-" validate:"required,min=6"`
	Role        string     `gorm:"type:varchar(20);default:'ADMIN'" json:"role" validate:"oneof=OWNER ADMIN"`
	IsActive    bool       `gorm:"default:true" json:"isActive"`
	CreatedBy   string     `gorm:"type:varchar(100)" json:"createdBy,omitempty"`
	LastLoginAt *time.Time `gorm:"type:timestamp;default:null" json:"lastLogin"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (a *Admin) Validate() error {
	v := validator.New()

	return v.Struct(a)
}

func CreateAdmin(username, password, role, createdBy string) (*Admin, error) {
	pw, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	a := &Admin{
		Username:  username,
		Password:  pw,
		Role:      role,
		IsActive:  true,
		CreatedBy: createdBy,
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}

	return a, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}
