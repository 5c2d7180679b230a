package repositories

import "artisanhub/internal/models"

// GalleryRepository defines the interface for gallery image data access.
type GalleryRepository interface {
	ListByArtisan(artisanID uint) ([]models.GalleryImage, error)
	GetByID(id uint) (*models.GalleryImage, error)
	Create(image *models.GalleryImage) error
	Update(image *models.GalleryImage) error
	Delete(id uint) error
	Search(q string) ([]models.GalleryImage, error)
	AdminRows() ([]models.GalleryAdminRow, error)
}
