package repositories

import (
	"errors"
	"fmt"

	"artisanhub/internal/apperr"
	"artisanhub/internal/models"

	"gorm.io/gorm"
)

// GORMAwardRepository is a GORM implementation of AwardRepository.
type GORMAwardRepository struct {
	db *gorm.DB
}

// NewGORMAwardRepository creates a new instance of GORMAwardRepository.
func NewGORMAwardRepository(db *gorm.DB) *GORMAwardRepository {
	return &GORMAwardRepository{db: db}
}

// ListByArtisan returns all awards of an artisan.
func (r *GORMAwardRepository) ListByArtisan(artisanID uint) ([]models.Award, error) {
	var awards []models.Award
	if err := r.db.Where("artisan_id = ?", artisanID).Find(&awards).Error; err != nil {
		return nil, fmt.Errorf("failed to list awards for artisan %d: %w", artisanID, err)
	}
	return awards, nil
}

// GetByID retrieves a single award.
func (r *GORMAwardRepository) GetByID(id uint) (*models.Award, error) {
	var award models.Award
	if err := r.db.First(&award, "award_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get award %d: %w", id, err)
	}
	return &award, nil
}

// Create inserts a new award.
func (r *GORMAwardRepository) Create(award *models.Award) error {
	if err := r.db.Create(award).Error; err != nil {
		return fmt.Errorf("failed to create award: %w", err)
	}
	return nil
}

// Update saves title, file reference and date.
func (r *GORMAwardRepository) Update(award *models.Award) error {
	res := r.db.Model(&models.Award{}).
		Where("award_id = ?", award.AwardID).
		Updates(map[string]interface{}{
			"award_title":   award.AwardTitle,
			"file_url":      award.FileURL,
			"received_date": award.ReceivedDate,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update award %d: %w", award.AwardID, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Delete removes an award row.
func (r *GORMAwardRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Award{}, "award_id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete award %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
