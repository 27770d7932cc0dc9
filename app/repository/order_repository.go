package repository

import (
	"github.com/socialhubhq/socialhub/app/models"
	"gorm.io/gorm"
)

// orderRepository implements the OrderRepository interface
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository instance
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepository) GetByOrderID(orderID string) (*models.Order, error) {
	var order models.Order
	err := r.db.Where("order_id = ?", orderID).First(&order).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}

func (r *orderRepository) List(status string, offset, limit int) ([]models.Order, error) {
	query := r.db.Model(&models.Order{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var orders []models.Order
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error
	return orders, err
}

func (r *orderRepository) Count(status string) (int64, error) {
	query := r.db.Model(&models.Order{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *orderRepository) Find(status, senderID, orderID string, limit int) ([]models.Order, error) {
	query := r.db.Model(&models.Order{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if senderID != "" {
		query = query.Where("sender_id = ?", senderID)
	}
	if orderID != "" {
		query = query.Where("order_id = ?", orderID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var orders []models.Order
	err := query.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ListBySender(senderID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("sender_id = ?", senderID).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ListByRecipient(recipientID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("recipient_id = ?", recipientID).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) Latest() (*models.Order, error) {
	var order models.Order
	err := r.db.Order("created_at DESC").First(&order).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Recent(limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Order("created_at DESC").Limit(limit).Find(&orders).Error
	return orders, err
}

func (r *orderRepository) CountsByStatus() ([]GroupCount, error) {
	var counts []GroupCount
	err := r.db.Model(&models.Order{}).
		Select("status AS grp, COUNT(*) AS count").
		Group("status").Order("count DESC").Scan(&counts).Error
	return counts, err
}

// DeleteByUser removes orders where the user appears as sender or recipient.
func (r *orderRepository) DeleteByUser(userID string) (int64, error) {
	result := r.db.Where("sender_id = ? OR recipient_id = ?", userID, userID).Delete(&models.Order{})
	return result.RowsAffected, result.Error
}
