package repositories

import "artisanhub/internal/models"

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	ListRows(search string) ([]models.ProductRow, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Delete(id uint) error
}
