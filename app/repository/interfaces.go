package repository

import (
	"time"

	"github.com/socialhubhq/socialhub/app/models"
	"gorm.io/gorm"
)

// AdminRepository defines the interface for admin account operations
type AdminRepository interface {
	Create(admin *models.Admin) error
	GetByID(id uint) (*models.Admin, error)
	GetByUsername(username string) (*models.Admin, error)
	GetActiveByUsername(username string) (*models.Admin, error)
	Update(admin *models.Admin) error
	DeleteByUsername(username string) error
	ListByRole(role string) ([]models.Admin, error)
	Count() (int64, error)
	OwnerExists() (bool, error)
}

// ActivityRepository defines the interface for the admin audit log
type ActivityRepository interface {
	Log(activity *models.AdminActivity) error
	List(offset, limit int) ([]models.AdminActivity, error)
	ListByAdmin(username string, offset, limit int) ([]models.AdminActivity, error)
	Count() (int64, error)
	CountByAdmin(username string) (int64, error)
}

// ReactionFilter holds optional query parameters for reaction lookups.
// Empty fields are ignored.
type ReactionFilter struct {
	UserID       string
	ReactionType string
	ActionType   string
	PostID       string
	CustomAction string
}

// ReactionRepository defines the interface for the reaction engagement log
type ReactionRepository interface {
	Create(reaction *models.Reaction) error
	List(offset, limit int) ([]models.Reaction, error)
	Count() (int64, error)
	Find(filter ReactionFilter) ([]models.Reaction, error)
	ListByUser(userID string) ([]models.Reaction, error)
	LatestForUserPost(userID, postID string) (*models.Reaction, error)
	Latest() (*models.Reaction, error)
	Recent(limit int) ([]models.Reaction, error)
	// DeleteMatching erases every record for the key, keeping no history.
	DeleteMatching(userID, postID, reactionType string) (int64, error)
	DeleteByUser(userID string) (int64, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
	CountsByType() ([]GroupCount, error)
	CountsByAction() ([]GroupCount, error)
	TopUsers(limit int) ([]UserCount, error)
	TopPosts(limit int) ([]PostCount, error)
	DistinctActionTypes() ([]string, error)
	DistinctCustomActions() ([]string, error)
}

// CommentFilter holds optional query parameters for comment lookups.
type CommentFilter struct {
	UserID          string
	PostID          string
	CommentID       string
	ActionType      string
	CustomAction    string
	ParentCommentID string
}

// CommentRepository defines the interface for the comment engagement log
type CommentRepository interface {
	Create(comment *models.Comment) error
	List(offset, limit int) ([]models.Comment, error)
	Count() (int64, error)
	Find(filter CommentFilter) ([]models.Comment, error)
	ListByUser(userID string) ([]models.Comment, error)
	ListByPost(postID string) ([]models.Comment, error)
	ListReplies(parentCommentID string) ([]models.Comment, error)
	GetByCommentID(commentID string) (*models.Comment, error)
	Latest() (*models.Comment, error)
	Recent(limit int) ([]models.Comment, error)
	// DeleteMatching erases every record for the key, keeping no history.
	DeleteMatching(userID, commentID, postID string) (int64, error)
	DeleteByCommentID(commentID string) (int64, error)
	DeleteByUser(userID string) (int64, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
	CountReplies() (int64, error)
	CountsByAction() ([]GroupCount, error)
	TopUsers(limit int) ([]UserCount, error)
	TopPosts(limit int) ([]PostCount, error)
	DistinctActionTypes() ([]string, error)
	DistinctCustomActions() ([]string, error)
}

// OrderRepository defines the interface for order records
type OrderRepository interface {
	Create(order *models.Order) error
	GetByOrderID(orderID string) (*models.Order, error)
	Update(order *models.Order) error
	List(status string, offset, limit int) ([]models.Order, error)
	Count(status string) (int64, error)
	Find(status, senderID, orderID string, limit int) ([]models.Order, error)
	ListBySender(senderID string) ([]models.Order, error)
	ListByRecipient(recipientID string) ([]models.Order, error)
	Latest() (*models.Order, error)
	Recent(limit int) ([]models.Order, error)
	CountsByStatus() ([]GroupCount, error)
	// DeleteByUser removes orders where the user is sender or recipient.
	DeleteByUser(userID string) (int64, error)
}

// ProductRepository defines the interface for product records
type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id uint) (*models.Product, error)
	GetByCode(productCode string) (*models.Product, error)
	Update(product *models.Product) error
	Delete(id uint) error
	List(status, search string, offset, limit int) ([]models.Product, error)
	Count(status, search string) (int64, error)
	CountByStatus(status string) (int64, error)
	ActiveStockValue() (float64, error)
}

// BanRepository defines the interface for user ban records
type BanRepository interface {
	Create(ban *models.UserBan) error
	GetActiveByUserID(userID string) (*models.UserBan, error)
	Update(ban *models.UserBan) error
	ListActive(banType string, offset, limit int) ([]models.UserBan, error)
	CountActive(banType string) (int64, error)
	CountActiveSince(since time.Time) (int64, error)
}

// WebhookRepository defines the interface for webhook subscriptions
type WebhookRepository interface {
	Create(webhook *models.Webhook) error
	GetByID(id uint) (*models.Webhook, error)
	Update(webhook *models.Webhook) error
	Delete(id uint) error
	List() ([]models.Webhook, error)
	// ListActiveByType returns the dispatch targets for an event category.
	ListActiveByType(webhookType string) ([]models.Webhook, error)
	CountActive() (int64, error)
}

// GroupCount is a generic group-by aggregation row.
type GroupCount struct {
	Key   string `json:"_id" gorm:"column:grp"`
	Count int64  `json:"count"`
}

// UserCount aggregates per-user engagement totals.
type UserCount struct {
	UserID string `json:"_id" gorm:"column:user_id"`
	Name   string `json:"name"`
	Count  int64  `json:"count"`
}

// PostCount aggregates per-post engagement totals.
type PostCount struct {
	PostID string `json:"_id" gorm:"column:post_id"`
	Link   string `json:"link"`
	Count  int64  `json:"count"`
}

// Repositories struct holds all repository instances
type Repositories struct {
	Admin    AdminRepository
	Activity ActivityRepository
	Reaction ReactionRepository
	Comment  CommentRepository
	Order    OrderRepository
	Product  ProductRepository
	Ban      BanRepository
	Webhook  WebhookRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Admin:    NewAdminRepository(db),
		Activity: NewActivityRepository(db),
		Reaction: NewReactionRepository(db),
		Comment:  NewCommentRepository(db),
		Order:    NewOrderRepository(db),
		Product:  NewProductRepository(db),
		Ban:      NewBanRepository(db),
		Webhook:  NewWebhookRepository(db),
	}
}
