package repository

import (
	"github.com/socialhubhq/socialhub/app/models"
	"gorm.io/gorm"
)

// webhookRepository implements the WebhookRepository interface
type webhookRepository struct {
	db *gorm.DB
}

// NewWebhookRepository creates a new webhook repository instance
func NewWebhookRepository(db *gorm.DB) WebhookRepository {
	return &webhookRepository{db: db}
}

func (r *webhookRepository) Create(webhook *models.Webhook) error {
	return r.db.Create(webhook).Error
}

func (r *webhookRepository) GetByID(id uint) (*models.Webhook, error) {
	var webhook models.Webhook
	err := r.db.First(&webhook, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &webhook, nil
}

func (r *webhookRepository) Update(webhook *models.Webhook) error {
	return r.db.Save(webhook).Error
}

func (r *webhookRepository) Delete(id uint) error {
	return r.db.Delete(&models.Webhook{}, id).Error
}

func (r *webhookRepository) List() ([]models.Webhook, error) {
	var webhooks []models.Webhook
	err := r.db.Order("created_at DESC").Find(&webhooks).Error
	return webhooks, err
}

// ListActiveByType returns the dispatch targets for an event category.
// Inactive subscriptions never receive events.
func (r *webhookRepository) ListActiveByType(webhookType string) ([]models.Webhook, error) {
	var webhooks []models.Webhook
	err := r.db.Where("type = ? AND is_active = ?", webhookType, true).Find(&webhooks).Error
	return webhooks, err
}

func (r *webhookRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.Webhook{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
