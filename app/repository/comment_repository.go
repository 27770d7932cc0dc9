package repository

import (
	"time"

	"github.com/socialhubhq/socialhub/app/models"
	"gorm.io/gorm"
)

// commentRepository implements the CommentRepository interface
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository instance
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) List(offset, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Count(&count).Error
	return count, err
}

func (r *commentRepository) Find(filter CommentFilter) ([]models.Comment, error) {
	query := r.db.Model(&models.Comment{})
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.PostID != "" {
		query = query.Where("post_id = ?", filter.PostID)
	}
	if filter.CommentID != "" {
		query = query.Where("comment_id = ?", filter.CommentID)
	}
	if filter.ActionType != "" {
		query = query.Where("action_type LIKE ?", "%"+filter.ActionType+"%")
	}
	if filter.CustomAction != "" {
		query = query.Where("custom_action LIKE ?", "%"+filter.CustomAction+"%")
	}
	if filter.ParentCommentID != "" {
		query = query.Where("parent_comment_id = ?", filter.ParentCommentID)
	}

	var comments []models.Comment
	err := query.Order("created_at DESC").Find(&comments).Error
	return comments, err
}

func (r *commentRepository) ListByUser(userID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&comments).Error
	return comments, err
}

func (r *commentRepository) ListByPost(postID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("post_id = ?", postID).Order("created_at DESC").Find(&comments).Error
	return comments, err
}

func (r *commentRepository) ListReplies(parentCommentID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("parent_comment_id = ?", parentCommentID).Order("created_at DESC").Find(&comments).Error
	return comments, err
}

func (r *commentRepository) GetByCommentID(commentID string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Where("comment_id = ?", commentID).First(&comment).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Latest() (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Order("created_at DESC").First(&comment).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Recent(limit int) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Order("created_at DESC").Limit(limit).Find(&comments).Error
	return comments, err
}

// DeleteMatching hard-deletes every record for the key, keeping no history.
func (r *commentRepository) DeleteMatching(userID, commentID, postID string) (int64, error) {
	result := r.db.Where("user_id = ? AND comment_id = ? AND post_id = ?", userID, commentID, postID).
		Delete(&models.Comment{})
	return result.RowsAffected, result.Error
}

func (r *commentRepository) DeleteByCommentID(commentID string) (int64, error) {
	result := r.db.Where("comment_id = ?", commentID).Delete(&models.Comment{})
	return result.RowsAffected, result.Error
}

func (r *commentRepository) DeleteByUser(userID string) (int64, error) {
	result := r.db.Where("user_id = ?", userID).Delete(&models.Comment{})
	return result.RowsAffected, result.Error
}

func (r *commentRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&models.Comment{})
	return result.RowsAffected, result.Error
}

func (r *commentRepository) CountReplies() (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).
		Where("parent_comment_id IS NOT NULL AND parent_comment_id <> ''").
		Count(&count).Error
	return count, err
}

func (r *commentRepository) CountsByAction() ([]GroupCount, error) {
	var counts []GroupCount
	err := r.db.Model(&models.Comment{}).
		Select("action_type AS grp, COUNT(*) AS count").
		Group("action_type").Order("count DESC").Scan(&counts).Error
	return counts, err
}

func (r *commentRepository) TopUsers(limit int) ([]UserCount, error) {
	var counts []UserCount
	err := r.db.Model(&models.Comment{}).
		Select("user_id, MAX(name) AS name, COUNT(*) AS count").
		Group("user_id").Order("count DESC").Limit(limit).Scan(&counts).Error
	return counts, err
}

func (r *commentRepository) TopPosts(limit int) ([]PostCount, error) {
	var counts []PostCount
	err := r.db.Model(&models.Comment{}).
		Select("post_id, MAX(post_link) AS link, COUNT(*) AS count").
		Group("post_id").Order("count DESC").Limit(limit).Scan(&counts).Error
	return counts, err
}

func (r *commentRepository) DistinctActionTypes() ([]string, error) {
	var actions []string
	err := r.db.Model(&models.Comment{}).Distinct("action_type").Pluck("action_type", &actions).Error
	return actions, err
}

func (r *commentRepository) DistinctCustomActions() ([]string, error) {
	var actions []string
	err := r.db.Model(&models.Comment{}).
		Where("custom_action IS NOT NULL AND custom_action <> ''").
		Distinct("custom_action").Pluck("custom_action", &actions).Error
	return actions, err
}
