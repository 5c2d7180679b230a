package repositories

import "artisanhub/internal/models"

// AwardRepository defines the interface for award data access.
type AwardRepository interface {
	ListByArtisan(artisanID uint) ([]models.Award, error)
	GetByID(id uint) (*models.Award, error)
	Create(award *models.Award) error
	Update(award *models.Award) error
	Delete(id uint) error
}
