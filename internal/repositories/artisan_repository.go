package repositories

import "artisanhub/internal/models"

// ArtisanRepository defines the interface for artisan data access.
type ArtisanRepository interface {
	ListPublished(search, category, province string) ([]models.ArtisanSummary, error)
	AdminList(search string) ([]models.ArtisanAdminRow, error)
	GetByID(id uint) (*models.Artisan, error)
	GetDetail(id uint) (*models.ArtisanDetail, error)
	ProfileRows(id uint) ([]models.ArtisanProfileRow, error)
	// Create resolves the category reference and inserts the artisan inside
	// one all-or-nothing transaction.
	Create(artisan *models.Artisan, ref models.CategoryRef) error
	Update(artisan *models.Artisan) error
	Delete(id uint) error
	Stats() (*models.ArtisanStats, error)
	TopProvinces(limit int) ([]models.ProvinceCount, error)
	Search(q string) ([]models.SearchRow, error)
	LatestActivity() (*models.ActivityRow, error)
}
