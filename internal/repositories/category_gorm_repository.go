package repositories

import (
	"errors"
	"fmt"

	"artisanhub/internal/apperr"
	"artisanhub/internal/models"

	"gorm.io/gorm"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{db: db}
}

// ListWithCounts returns every category with the number of artisans in it.
func (r *GORMCategoryRepository) ListWithCounts() ([]models.CategoryWithCount, error) {
	var rows []models.CategoryWithCount
	err := r.db.Model(&models.Category{}).
		Select("category.category_id, category.category_name, category.description, COUNT(artisan.artisan_id) AS artisan_count").
		Joins("LEFT JOIN artisan ON artisan.category_id = category.category_id").
		Group("category.category_id, category.category_name, category.description").
		Order("category.category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return rows, nil
}

// ListOptions returns id/name pairs for dropdowns.
func (r *GORMCategoryRepository) ListOptions() ([]models.CategoryWithCount, error) {
	var rows []models.CategoryWithCount
	err := r.db.Model(&models.Category{}).
		Select("category_id, category_name").
		Order("category_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list category options: %w", err)
	}
	return rows, nil
}

// GetByID retrieves a single category.
func (r *GORMCategoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "category_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category %d: %w", id, err)
	}
	return &category, nil
}

// Create inserts a new category.
func (r *GORMCategoryRepository) Create(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// Update saves name, description and the editing user.
func (r *GORMCategoryRepository) Update(category *models.Category) error {
	res := r.db.Model(&models.Category{}).
		Where("category_id = ?", category.CategoryID).
		Updates(map[string]interface{}{
			"category_name": category.CategoryName,
			"description":   category.Description,
			"updated_by":    category.UpdatedBy,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update category %d: %w", category.CategoryID, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Delete removes a category. A foreign key violation surfaces as
// apperr.ErrForeignKey.
func (r *GORMCategoryRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Category{}, "category_id = ?", id)
	if res.Error != nil {
		if apperr.IsForeignKeyViolation(res.Error) {
			return apperr.ErrForeignKey
		}
		return fmt.Errorf("failed to delete category %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// LatestActivity returns the most recently updated category joined with the
// user who touched it.
func (r *GORMCategoryRepository) LatestActivity() (*models.ActivityRow, error) {
	var row models.ActivityRow
	err := r.db.Model(&models.Category{}).
		Select("category.category_name AS subject, users.fname AS user_fname, users.lname AS user_lname, category.updated_at AS \"when\"").
		Joins("JOIN users ON category.updated_by = users.user_id").
		Order("category.updated_at DESC").
		Limit(1).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category activity: %w", err)
	}
	if row.Subject == "" {
		return nil, apperr.ErrNotFound
	}
	return &row, nil
}
