package repositories

import (
	"errors"
	"fmt"

	"artisanhub/internal/apperr"
	"artisanhub/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{db: db}
}

// ListRows returns products joined with their artisan, newest first,
// optionally filtered by product or artisan name.
func (r *GORMProductRepository) ListRows(search string) ([]models.ProductRow, error) {
	q := r.db.Model(&models.Product{}).
		Select("product.*, artisan.fname, artisan.lname").
		Joins("JOIN artisan ON product.artisan_id = artisan.artisan_id")

	if search != "" {
		like := "%" + search + "%"
		q = q.Where("LOWER(product.product_name) LIKE LOWER(?) OR LOWER(product.description) LIKE LOWER(?) OR LOWER(artisan.fname) LIKE LOWER(?) OR LOWER(artisan.lname) LIKE LOWER(?)",
			like, like, like, like)
	}

	var rows []models.ProductRow
	if err := q.Order("product.product_id DESC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return rows, nil
}

// GetByID retrieves a single product.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "product_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &product, nil
}

// Create inserts a new product.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Delete removes a product row.
func (r *GORMProductRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Product{}, "product_id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
