package repository

import (
	"time"

	"github.com/socialhubhq/socialhub/app/models"
	"gorm.io/gorm"
)

// reactionRepository implements the ReactionRepository interface
type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new reaction repository instance
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) Create(reaction *models.Reaction) error {
	return r.db.Create(reaction).Error
}

func (r *reactionRepository) List(offset, limit int) ([]models.Reaction, error) {
	var reactions []models.Reaction
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&reactions).Error
	return reactions, err
}

func (r *reactionRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Reaction{}).Count(&count).Error
	return count, err
}

func (r *reactionRepository) Find(filter ReactionFilter) ([]models.Reaction, error) {
	query := r.db.Model(&models.Reaction{})
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.ReactionType != "" {
		query = query.Where("reaction_type = ?", filter.ReactionType)
	}
	if filter.ActionType != "" {
		query = query.Where("action_type LIKE ?", "%"+filter.ActionType+"%")
	}
	if filter.PostID != "" {
		query = query.Where("post_id = ?", filter.PostID)
	}
	if filter.CustomAction != "" {
		query = query.Where("custom_action LIKE ?", "%"+filter.CustomAction+"%")
	}

	var reactions []models.Reaction
	err := query.Order("created_at DESC").Find(&reactions).Error
	return reactions, err
}

func (r *reactionRepository) ListByUser(userID string) ([]models.Reaction, error) {
	var reactions []models.Reaction
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&reactions).Error
	return reactions, err
}

// LatestForUserPost returns the newest surviving record for the pair, which
// decides the current reaction state. Returns nil when nothing survives.
func (r *reactionRepository) LatestForUserPost(userID, postID string) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.Where("user_id = ? AND post_id = ?", userID, postID).
		Order("created_at DESC").First(&reaction).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

func (r *reactionRepository) Latest() (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.Order("created_at DESC").First(&reaction).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

func (r *reactionRepository) Recent(limit int) ([]models.Reaction, error) {
	var reactions []models.Reaction
	err := r.db.Order("created_at DESC").Limit(limit).Find(&reactions).Error
	return reactions, err
}

// DeleteMatching hard-deletes every record for the key. No tombstone is
// written; the removal only survives in the webhook payload sent alongside.
func (r *reactionRepository) DeleteMatching(userID, postID, reactionType string) (int64, error) {
	result := r.db.Where("user_id = ? AND post_id = ? AND reaction_type = ?", userID, postID, reactionType).
		Delete(&models.Reaction{})
	return result.RowsAffected, result.Error
}

func (r *reactionRepository) DeleteByUser(userID string) (int64, error) {
	result := r.db.Where("user_id = ?", userID).Delete(&models.Reaction{})
	return result.RowsAffected, result.Error
}

func (r *reactionRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&models.Reaction{})
	return result.RowsAffected, result.Error
}

func (r *reactionRepository) CountsByType() ([]GroupCount, error) {
	var counts []GroupCount
	err := r.db.Model(&models.Reaction{}).
		Select("reaction_type AS grp, COUNT(*) AS count").
		Group("reaction_type").Order("count DESC").Scan(&counts).Error
	return counts, err
}

func (r *reactionRepository) CountsByAction() ([]GroupCount, error) {
	var counts []GroupCount
	err := r.db.Model(&models.Reaction{}).
		Select("action_type AS grp, COUNT(*) AS count").
		Group("action_type").Order("count DESC").Scan(&counts).Error
	return counts, err
}

func (r *reactionRepository) TopUsers(limit int) ([]UserCount, error) {
	var counts []UserCount
	err := r.db.Model(&models.Reaction{}).
		Select("user_id, MAX(name) AS name, COUNT(*) AS count").
		Group("user_id").Order("count DESC").Limit(limit).Scan(&counts).Error
	return counts, err
}

func (r *reactionRepository) TopPosts(limit int) ([]PostCount, error) {
	var counts []PostCount
	err := r.db.Model(&models.Reaction{}).
		Select("post_id, MAX(post_url) AS link, COUNT(*) AS count").
		Group("post_id").Order("count DESC").Limit(limit).Scan(&counts).Error
	return counts, err
}

func (r *reactionRepository) DistinctActionTypes() ([]string, error) {
	var actions []string
	err := r.db.Model(&models.Reaction{}).Distinct("action_type").Pluck("action_type", &actions).Error
	return actions, err
}

func (r *reactionRepository) DistinctCustomActions() ([]string, error) {
	var actions []string
	err := r.db.Model(&models.Reaction{}).
		Where("custom_action IS NOT NULL AND custom_action <> ''").
		Distinct("custom_action").Pluck("custom_action", &actions).Error
	return actions, err
}
