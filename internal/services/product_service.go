package services

import (
	"artisanhub/internal/models"
	"artisanhub/internal/repositories"
)

// defaultProductImg is used when a product is created without an image.
const defaultProductImg = "default_product.jpg"

// ProductService handles business logic for artisan products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// ListRows returns the public product listing joined with artisan names.
func (s *ProductService) ListRows(search string) ([]models.ProductRow, error) {
	return s.repo.ListRows(search)
}

// Create stores a new product, defaulting the image when none is supplied.
func (s *ProductService) Create(product *models.Product) error {
	if product.ProductImg == "" {
		product.ProductImg = defaultProductImg
	}
	return s.repo.Create(product)
}

// Delete removes a product.
func (s *ProductService) Delete(id uint) error {
	return s.repo.Delete(id)
}
