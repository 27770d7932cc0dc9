package repository

import (
	"github.com/socialhubhq/socialhub/app/models"
	"gorm.io/gorm"
)

// productRepository implements the ProductRepository interface
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository instance
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.First(&product, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetByCode(productCode string) (*models.Product, error) {
	var product models.Product
	err := r.db.Where("product_code = ?", productCode).First(&product).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

func (r *productRepository) applyFilter(status, search string) *gorm.DB {
	query := r.db.Model(&models.Product{})
	if status != "" && status != "ALL" {
		query = query.Where("status = ?", status)
	}
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("product_name LIKE ? OR brand_name LIKE ? OR product_code LIKE ?", like, like, like)
	}
	return query
}

func (r *productRepository) List(status, search string, offset, limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.applyFilter(status, search).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&products).Error
	return products, err
}

func (r *productRepository) Count(status, search string) (int64, error) {
	var count int64
	err := r.applyFilter(status, search).Count(&count).Error
	return count, err
}

func (r *productRepository) CountByStatus(status string) (int64, error) {
	query := r.db.Model(&models.Product{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

// ActiveStockValue sums finalPrice * stockQuantity across active products.
func (r *productRepository) ActiveStockValue() (float64, error) {
	var total float64
	err := r.db.Model(&models.Product{}).
		Where("status = ?", models.PRODUCT_ACTIVE).
		Select("COALESCE(SUM(final_price * stock_quantity), 0)").Scan(&total).Error
	return total, err
}
