package repository

import (
	"github.com/socialhubhq/socialhub/app/models"
	"gorm.io/gorm"
)

// activityRepository implements the ActivityRepository interface
type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new activity log repository instance
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Log(activity *models.AdminActivity) error {
	return r.db.Create(activity).Error
}

func (r *activityRepository) List(offset, limit int) ([]models.AdminActivity, error) {
	var activities []models.AdminActivity
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&activities).Error
	return activities, err
}

func (r *activityRepository) ListByAdmin(username string, offset, limit int) ([]models.AdminActivity, error) {
	var activities []models.AdminActivity
	err := r.db.Where("admin_username = ?", username).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&activities).Error
	return activities, err
}

func (r *activityRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.AdminActivity{}).Count(&count).Error
	return count, err
}

func (r *activityRepository) CountByAdmin(username string) (int64, error) {
	var count int64
	err := r.db.Model(&models.AdminActivity{}).Where("admin_username = ?", username).Count(&count).Error
	return count, err
}
