package repository

import (
	"time"

	"github.com/socialhubhq/socialhub/app/models"
	"gorm.io/gorm"
)

// banRepository implements the BanRepository interface
type banRepository struct {
	db *gorm.DB
}

// NewBanRepository creates a new ban repository instance
func NewBanRepository(db *gorm.DB) BanRepository {
	return &banRepository{db: db}
}

func (r *banRepository) Create(ban *models.UserBan) error {
	return r.db.Create(ban).Error
}

// GetActiveByUserID returns the single active ban for a user, or nil.
// The at-most-one-active-ban invariant is enforced at creation time by the
// ban controller checking this lookup first.
func (r *banRepository) GetActiveByUserID(userID string) (*models.UserBan, error) {
	var ban models.UserBan
	err := r.db.Where("user_id = ? AND is_active = ?", userID, true).First(&ban).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ban, nil
}

func (r *banRepository) Update(ban *models.UserBan) error {
	return r.db.Save(ban).Error
}

// ListActive returns active bans, newest first. A non-empty banType filters
// literally; ALL is a real ban type, not a wildcard.
func (r *banRepository) ListActive(banType string, offset, limit int) ([]models.UserBan, error) {
	query := r.db.Where("is_active = ?", true)
	if banType != "" {
		query = query.Where("ban_type = ?", banType)
	}
	var bans []models.UserBan
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&bans).Error
	return bans, err
}

func (r *banRepository) CountActive(banType string) (int64, error) {
	query := r.db.Model(&models.UserBan{}).Where("is_active = ?", true)
	if banType != "" {
		query = query.Where("ban_type = ?", banType)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *banRepository) CountActiveSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.UserBan{}).
		Where("is_active = ? AND created_at >= ?", true, since).Count(&count).Error
	return count, err
}
