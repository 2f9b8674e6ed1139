package repository

import (
	"github.com/dark-store/bukafresh/app/models"
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
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetByIDs(ids []uint) ([]models.Product, error) {
	var products []models.Product
	if len(ids) == 0 {
		return products, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *productRepository) List(category string, inStockOnly bool) ([]models.Product, error) {
	query := r.db.Model(&models.Product{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if inStockOnly {
		query = query.Where("in_stock = ?", true)
	}
	var products []models.Product
	err := query.Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepository) GetPopular(limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("popular = ? AND in_stock = ?", true, true).
		Order("name ASC").Limit(limit).Find(&products).Error
	return products, err
}

func (r *productRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Count(&count).Error
	return count, err
}
