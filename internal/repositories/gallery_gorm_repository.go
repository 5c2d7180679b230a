package repositories

import (
	"errors"
	"fmt"

	"artisanhub/internal/apperr"
	"artisanhub/internal/models"

	"gorm.io/gorm"
)

// GORMGalleryRepository is a GORM implementation of GalleryRepository.
type GORMGalleryRepository struct {
	db *gorm.DB
}

// NewGORMGalleryRepository creates a new instance of GORMGalleryRepository.
func NewGORMGalleryRepository(db *gorm.DB) *GORMGalleryRepository {
	return &GORMGalleryRepository{db: db}
}

// ListByArtisan returns an artisan's gallery ordered by id.
func (r *GORMGalleryRepository) ListByArtisan(artisanID uint) ([]models.GalleryImage, error) {
	var images []models.GalleryImage
	err := r.db.Where("artisan_id = ?", artisanID).Order("gallery_id").Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list gallery for artisan %d: %w", artisanID, err)
	}
	return images, nil
}

// GetByID retrieves a single image.
func (r *GORMGalleryRepository) GetByID(id uint) (*models.GalleryImage, error) {
	var image models.GalleryImage
	if err := r.db.First(&image, "gallery_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get gallery image %d: %w", id, err)
	}
	return &image, nil
}

// Create inserts a new gallery image.
func (r *GORMGalleryRepository) Create(image *models.GalleryImage) error {
	if err := r.db.Create(image).Error; err != nil {
		return fmt.Errorf("failed to create gallery image: %w", err)
	}
	return nil
}

// Update saves the image URL, name and caption.
func (r *GORMGalleryRepository) Update(image *models.GalleryImage) error {
	res := r.db.Model(&models.GalleryImage{}).
		Where("gallery_id = ?", image.GalleryID).
		Updates(map[string]interface{}{
			"image_url":    image.ImageURL,
			"name_gallery": image.NameGallery,
			"caption":      image.Caption,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update gallery image %d: %w", image.GalleryID, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Delete removes a gallery image row.
func (r *GORMGalleryRepository) Delete(id uint) error {
	res := r.db.Delete(&models.GalleryImage{}, "gallery_id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete gallery image %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Search filters images by name or caption.
func (r *GORMGalleryRepository) Search(q string) ([]models.GalleryImage, error) {
	query := r.db.Model(&models.GalleryImage{})
	if q != "" {
		like := "%" + q + "%"
		query = query.Where("LOWER(name_gallery) LIKE LOWER(?) OR LOWER(caption) LIKE LOWER(?)", like, like)
	}
	var images []models.GalleryImage
	if err := query.Find(&images).Error; err != nil {
		return nil, fmt.Errorf("failed to search gallery: %w", err)
	}
	return images, nil
}

// AdminRows joins every image with its artisan and uploading user.
func (r *GORMGalleryRepository) AdminRows() ([]models.GalleryAdminRow, error) {
	var rows []models.GalleryAdminRow
	err := r.db.Model(&models.GalleryImage{}).
		Select("artisan_gallery.gallery_id, artisan_gallery.image_url, artisan_gallery.name_gallery, artisan_gallery.caption, "+
			"a.fname AS artisan_fname, a.lname AS artisan_lname, u.fname AS user_fname, u.lname AS user_lname").
		Joins("JOIN artisan a ON a.artisan_id = artisan_gallery.artisan_id").
		Joins("LEFT JOIN users u ON u.user_id = artisan_gallery.user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list gallery admin rows: %w", err)
	}
	return rows, nil
}
