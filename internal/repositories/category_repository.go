package repositories

import "artisanhub/internal/models"

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	ListWithCounts() ([]models.CategoryWithCount, error)
	ListOptions() ([]models.CategoryWithCount, error)
	GetByID(id uint) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id uint) error
	LatestActivity() (*models.ActivityRow, error)
}
