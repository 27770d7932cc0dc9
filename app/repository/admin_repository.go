package repository

import (
	"github.com/socialhubhq/socialhub/app/models"
	"gorm.io/gorm"
)

// adminRepository implements the AdminRepository interface
type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new admin repository instance
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(admin *models.Admin) error {
	return r.db.Create(admin).Error
}

func (r *adminRepository) GetByID(id uint) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.First(&admin, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) GetByUsername(username string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.Where("username = ?", username).First(&admin).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// GetActiveByUsername resolves a username to an active account; inactive
// admins cannot log in.
func (r *adminRepository) GetActiveByUsername(username string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.Where("username = ? AND is_active = ?", username, true).First(&admin).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) Update(admin *models.Admin) error {
	return r.db.Save(admin).Error
}

func (r *adminRepository) DeleteByUsername(username string) error {
	return r.db.Where("username = ?", username).Delete(&models.Admin{}).Error
}

func (r *adminRepository) ListByRole(role string) ([]models.Admin, error) {
	var admins []models.Admin
	err := r.db.Where("role = ?", role).Order("created_at DESC").Find(&admins).Error
	return admins, err
}

func (r *adminRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Admin{}).Count(&count).Error
	return count, err
}

func (r *adminRepository) OwnerExists() (bool, error) {
	var count int64
	err := r.db.Model(&models.Admin{}).Where("role = ?", models.ROLE_OWNER).Count(&count).Error
	return count > 0, err
}
