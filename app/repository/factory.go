package repository

import (
	"sync"

	"gorm.io/gorm"
)

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{
		db: db,
	}
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

// GetAdminRepository returns the admin repository instance
func (f *Factory) GetAdminRepository() AdminRepository {
	return f.GetRepositories().Admin
}

// GetActivityRepository returns the activity log repository instance
func (f *Factory) GetActivityRepository() ActivityRepository {
	return f.GetRepositories().Activity
}

// GetReactionRepository returns the reaction repository instance
func (f *Factory) GetReactionRepository() ReactionRepository {
	return f.GetRepositories().Reaction
}

// GetCommentRepository returns the comment repository instance
func (f *Factory) GetCommentRepository() CommentRepository {
	return f.GetRepositories().Comment
}

// GetOrderRepository returns the order repository instance
func (f *Factory) GetOrderRepository() OrderRepository {
	return f.GetRepositories().Order
}

// GetProductRepository returns the product repository instance
func (f *Factory) GetProductRepository() ProductRepository {
	return f.GetRepositories().Product
}

// GetBanRepository returns the ban repository instance
func (f *Factory) GetBanRepository() BanRepository {
	return f.GetRepositories().Ban
}

// GetWebhookRepository returns the webhook repository instance
func (f *Factory) GetWebhookRepository() WebhookRepository {
	return f.GetRepositories().Webhook
}

// Global factory instance
var globalFactory *Factory
var factoryOnce sync.Once

// InitializeFactory initializes the global repository factory
func InitializeFactory(db *gorm.DB) {
	factoryOnce.Do(func() {
		globalFactory = NewFactory(db)
	})
}

// GetGlobalFactory returns the global repository factory instance
func GetGlobalFactory() *Factory {
	if globalFactory == nil {
		panic("Repository factory not initialized. Call InitializeFactory first.")
	}
	return globalFactory
}

// GetGlobalRepositories returns the global repositories instance
func GetGlobalRepositories() *Repositories {
	return GetGlobalFactory().GetRepositories()
}

// SetGlobalRepositories installs a prebuilt repository set, bypassing the
// database-backed constructors; used by handler tests injecting fakes.
func SetGlobalRepositories(repos *Repositories) {
	f := NewFactory(nil)
	f.once.Do(func() { f.repos = repos })
	globalFactory = f
}

// ResetGlobalFactory clears the global factory; used by tests that swap the
// underlying database handle between cases.
func ResetGlobalFactory() {
	globalFactory = nil
	factoryOnce = sync.Once{}
}
