package services

import (
	"fmt"
	"time"

	"artisanhub/internal/models"
	"artisanhub/internal/repositories"
)

// CategoryService handles business logic for categories.
type CategoryService struct {
	repo  repositories.CategoryRepository
	audit *AuditService
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository, audit *AuditService) *CategoryService {
	return &CategoryService{repo: repo, audit: audit}
}

// ListWithCounts returns all categories with artisan counts.
func (s *CategoryService) ListWithCounts() ([]models.CategoryWithCount, error) {
	return s.repo.ListWithCounts()
}

// Options returns id/name pairs for dropdowns.
func (s *CategoryService) Options() ([]models.CategoryWithCount, error) {
	return s.repo.ListOptions()
}

// Get returns one category.
func (s *CategoryService) Get(id uint) (*models.Category, error) {
	return s.repo.GetByID(id)
}

// Create stores a new category stamped with the creating user and audits the
// action.
func (s *CategoryService) Create(category *models.Category, actor models.Identity, meta models.LogEvent) error {
	if actor.UserID != 0 {
		id := actor.UserID
		category.UpdatedBy = &id
	}
	if err := s.repo.Create(category); err != nil {
		return err
	}
	meta.ActionType = "CATEGORY_ADD"
	meta.Message = fmt.Sprintf("เพิ่มหมวดหมู่: %s", category.CategoryName)
	s.audit.Record(meta)
	return nil
}

// Update saves a category re-stamped with the editing user and audits the
// action.
func (s *CategoryService) Update(category *models.Category, actor models.Identity, meta models.LogEvent) error {
	if actor.UserID != 0 {
		id := actor.UserID
		category.UpdatedBy = &id
	}
	if err := s.repo.Update(category); err != nil {
		return err
	}
	meta.ActionType = "CATEGORY_UPDATE"
	meta.Message = fmt.Sprintf("แก้ไขหมวดหมู่ ID: %d", category.CategoryID)
	s.audit.Record(meta)
	return nil
}

// Delete removes a category; deletes blocked by dependent artisans surface
// as a referential-integrity error.
func (s *CategoryService) Delete(id uint, meta models.LogEvent) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	meta.ActionType = "CATEGORY_DELETE"
	meta.Message = fmt.Sprintf("ลบหมวดหมู่ ID: %d", id)
	s.audit.Record(meta)
	return nil
}

// LatestActivity returns the newest category update with a humanized age.
func (s *CategoryService) LatestActivity() (*models.ActivityRow, error) {
	row, err := s.repo.LatestActivity()
	if err != nil {
		return nil, err
	}
	row.Age = ThaiAge(time.Since(row.When))
	return row, nil
}
