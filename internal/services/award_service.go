package services

import (
	"artisanhub/internal/models"
	"artisanhub/internal/repositories"
	"artisanhub/pkg/storage"
)

// AwardService handles business logic for artisan awards.
type AwardService struct {
	repo  repositories.AwardRepository
	store *storage.Store
}

// NewAwardService creates a new AwardService.
func NewAwardService(repo repositories.AwardRepository, store *storage.Store) *AwardService {
	return &AwardService{repo: repo, store: store}
}

// ListByArtisan returns all awards of an artisan.
func (s *AwardService) ListByArtisan(artisanID uint) ([]models.Award, error) {
	return s.repo.ListByArtisan(artisanID)
}

// Get returns one award.
func (s *AwardService) Get(id uint) (*models.Award, error) {
	return s.repo.GetByID(id)
}

// Add stores a new award.
func (s *AwardService) Add(award *models.Award) error {
	return s.repo.Create(award)
}

// Update edits an award. With no new file or date the stored values are kept.
func (s *AwardService) Update(id uint, title string, receivedDate, newFileURL *string) (*models.Award, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	fileURL := existing.FileURL
	if newFileURL != nil {
		fileURL = newFileURL
	}
	if receivedDate == nil {
		receivedDate = existing.ReceivedDate
	}

	updated := &models.Award{
		AwardID:      id,
		AwardTitle:   title,
		FileURL:      fileURL,
		ReceivedDate: receivedDate,
	}
	if err := s.repo.Update(updated); err != nil {
		return nil, err
	}
	return s.repo.GetByID(id)
}

// Delete removes the stored file best-effort, then the row.
func (s *AwardService) Delete(id uint) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing.FileURL != nil {
		s.store.Delete(*existing.FileURL)
	}
	return s.repo.Delete(id)
}
