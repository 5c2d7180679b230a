package repositories

import (
	"errors"
	"fmt"
	"time"

	"artisanhub/internal/apperr"
	"artisanhub/internal/models"

	"gorm.io/gorm"
)

// GORMArtisanRepository is a GORM implementation of ArtisanRepository.
type GORMArtisanRepository struct {
	db *gorm.DB
}

// NewGORMArtisanRepository creates a new instance of GORMArtisanRepository.
func NewGORMArtisanRepository(db *gorm.DB) *GORMArtisanRepository {
	return &GORMArtisanRepository{db: db}
}

// ListPublished returns published artisans joined with their category,
// optionally filtered by name search, category name and province. The filter
// value "ทั้งหมด" (all) is treated the same as no filter.
func (r *GORMArtisanRepository) ListPublished(search, category, province string) ([]models.ArtisanSummary, error) {
	q := r.db.Model(&models.Artisan{}).
		Select("artisan.artisan_id, artisan.fname, artisan.lname, artisan.profile_img, category.category_name, artisan.province").
		Joins("JOIN category ON artisan.category_id = category.category_id").
		Where("artisan.status = ?", models.StatusPublished)

	if search != "" {
		like := "%" + search + "%"
		q = q.Where("LOWER(artisan.fname) LIKE LOWER(?) OR LOWER(artisan.lname) LIKE LOWER(?)", like, like)
	}
	if category != "" && category != "ทั้งหมด" {
		q = q.Where("category.category_name = ?", category)
	}
	if province != "" && province != "ทั้งหมด" {
		q = q.Where("artisan.province = ?", province)
	}

	var rows []models.ArtisanSummary
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list published artisans: %w", err)
	}
	return rows, nil
}

// AdminList returns all artisans (drafts included) for the back office,
// newest first.
func (r *GORMArtisanRepository) AdminList(search string) ([]models.ArtisanAdminRow, error) {
	q := r.db.Model(&models.Artisan{}).
		Select("artisan.artisan_id, artisan.fname, artisan.lname, artisan.province, category.category_name, artisan.profile_img, artisan.status, artisan.updated_at").
		Joins("JOIN category ON artisan.category_id = category.category_id")

	if search != "" {
		like := "%" + search + "%"
		q = q.Where("LOWER(artisan.fname) LIKE LOWER(?) OR LOWER(artisan.lname) LIKE LOWER(?) OR LOWER(category.category_name) LIKE LOWER(?)",
			like, like, like)
	}

	var rows []models.ArtisanAdminRow
	if err := q.Order("artisan.artisan_id DESC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list artisans: %w", err)
	}
	return rows, nil
}

// GetByID retrieves a bare artisan row.
func (r *GORMArtisanRepository) GetByID(id uint) (*models.Artisan, error) {
	var artisan models.Artisan
	if err := r.db.First(&artisan, "artisan_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get artisan %d: %w", id, err)
	}
	return &artisan, nil
}

// GetDetail retrieves an artisan together with its category name.
func (r *GORMArtisanRepository) GetDetail(id uint) (*models.ArtisanDetail, error) {
	var detail models.ArtisanDetail
	err := r.db.Model(&models.Artisan{}).
		Select("artisan.*, category.category_name").
		Joins("LEFT JOIN category ON artisan.category_id = category.category_id").
		Where("artisan.artisan_id = ?", id).
		Scan(&detail).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get artisan detail %d: %w", id, err)
	}
	if detail.ArtisanID == 0 {
		return nil, apperr.ErrNotFound
	}
	return &detail, nil
}

// ProfileRows returns the public profile joined with the ordered gallery.
func (r *GORMArtisanRepository) ProfileRows(id uint) ([]models.ArtisanProfileRow, error) {
	var rows []models.ArtisanProfileRow
	err := r.db.Model(&models.Artisan{}).
		Select("artisan.artisan_id, artisan.fname, artisan.lname, artisan.profile_img, artisan.district, artisan.province, artisan.biography, category.category_name, artisan_gallery.image_url").
		Joins("JOIN category ON artisan.category_id = category.category_id").
		Joins("LEFT JOIN artisan_gallery ON artisan_gallery.artisan_id = artisan.artisan_id").
		Where("artisan.artisan_id = ?", id).
		Order("artisan_gallery.gallery_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get artisan profile %d: %w", id, err)
	}
	return rows, nil
}

// Create runs the category resolution and the artisan insert inside one
// transaction. Any failure rolls the whole operation back; the connection is
// released either way.
func (r *GORMArtisanRepository) Create(artisan *models.Artisan, ref models.CategoryRef) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		switch {
		case ref.ID != 0:
			artisan.CategoryID = ref.ID
		case ref.Name != "":
			var category models.Category
			if err := tx.First(&category, "category_name = ?", ref.Name).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.CategoryNotFound(ref.Name)
				}
				return fmt.Errorf("failed to resolve category %q: %w", ref.Name, err)
			}
			artisan.CategoryID = category.CategoryID
		default:
			return apperr.ErrCategoryRequired
		}

		if err := tx.Create(artisan).Error; err != nil {
			return fmt.Errorf("failed to create artisan: %w", err)
		}
		return nil
	})
}

// Update performs a full-column update of the record.
func (r *GORMArtisanRepository) Update(artisan *models.Artisan) error {
	res := r.db.Model(&models.Artisan{}).
		Where("artisan_id = ?", artisan.ArtisanID).
		Updates(map[string]interface{}{
			"fname":       artisan.Fname,
			"lname":       artisan.Lname,
			"profile_img": artisan.ProfileImg,
			"birth_date":  artisan.BirthDate,
			"address":     artisan.Address,
			"province":    artisan.Province,
			"district":    artisan.District,
			"category_id": artisan.CategoryID,
			"biography":   artisan.Biography,
			"status":      artisan.Status,
			"updated_by":  artisan.UpdatedBy,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update artisan %d: %w", artisan.ArtisanID, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Delete removes an artisan. Dependent products or history block the delete
// via foreign keys and surface as apperr.ErrForeignKey.
func (r *GORMArtisanRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Artisan{}, "artisan_id = ?", id)
	if res.Error != nil {
		if apperr.IsForeignKeyViolation(res.Error) {
			return apperr.ErrForeignKey
		}
		return fmt.Errorf("failed to delete artisan %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Stats aggregates the dashboard counters in one query.
func (r *GORMArtisanRepository) Stats() (*models.ArtisanStats, error) {
	var stats models.ArtisanStats
	err := r.db.Model(&models.Artisan{}).
		Select("COUNT(*) AS total_artisans, "+
			"COUNT(DISTINCT district) AS total_districts, "+
			"COUNT(DISTINCT province) AS distinct_provinces, "+
			"COUNT(DISTINCT category_id) AS total_categories, "+
			"SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS total_drafts", models.StatusDraft).
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate artisan stats: %w", err)
	}
	return &stats, nil
}

// TopProvinces returns the provinces with the most artisans.
func (r *GORMArtisanRepository) TopProvinces(limit int) ([]models.ProvinceCount, error) {
	var rows []models.ProvinceCount
	err := r.db.Model(&models.Artisan{}).
		Select("province, COUNT(*) AS count").
		Group("province").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate provinces: %w", err)
	}
	return rows, nil
}

// Search runs the public cross-entity search over artisan names, category
// names and gallery names.
func (r *GORMArtisanRepository) Search(q string) ([]models.SearchRow, error) {
	like := "%" + q + "%"
	var rows []models.SearchRow
	err := r.db.Model(&models.Artisan{}).
		Select("artisan.artisan_id, artisan.fname, artisan.lname, category.category_name, artisan_gallery.gallery_id, artisan_gallery.name_gallery, artisan_gallery.image_url").
		Joins("JOIN category ON artisan.category_id = category.category_id").
		Joins("LEFT JOIN artisan_gallery ON artisan.artisan_id = artisan_gallery.artisan_id").
		Where("LOWER(artisan.fname) LIKE LOWER(?) OR LOWER(artisan.lname) LIKE LOWER(?) OR LOWER(category.category_name) LIKE LOWER(?) OR LOWER(artisan_gallery.name_gallery) LIKE LOWER(?)",
			like, like, like, like).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search artisans: %w", err)
	}
	return rows, nil
}

// LatestActivity returns the most recently created artisan joined with the
// creating user.
func (r *GORMArtisanRepository) LatestActivity() (*models.ActivityRow, error) {
	var row struct {
		Fname     string
		Lname     string
		UserFname string
		UserLname string
		When      time.Time
	}
	err := r.db.Model(&models.Artisan{}).
		Select("artisan.fname, artisan.lname, users.fname AS user_fname, users.lname AS user_lname, artisan.created_at AS \"when\"").
		Joins("JOIN users ON artisan.created_by = users.user_id").
		Order("artisan.created_at DESC").
		Limit(1).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch artisan activity: %w", err)
	}
	if row.Fname == "" && row.Lname == "" {
		return nil, apperr.ErrNotFound
	}
	return &models.ActivityRow{
		Subject:   row.Fname + " " + row.Lname,
		UserFname: row.UserFname,
		UserLname: row.UserLname,
		When:      row.When,
	}, nil
}
