package services

import (
	"fmt"
	"time"

	"artisanhub/internal/models"
	"artisanhub/internal/repositories"
	"artisanhub/pkg/storage"
)

// ArtisanService handles business logic for artisan profiles.
type ArtisanService struct {
	repo  repositories.ArtisanRepository
	store *storage.Store
	audit *AuditService
}

// NewArtisanService creates a new ArtisanService.
func NewArtisanService(repo repositories.ArtisanRepository, store *storage.Store, audit *AuditService) *ArtisanService {
	return &ArtisanService{repo: repo, store: store, audit: audit}
}

// ListPublished returns the public directory listing.
func (s *ArtisanService) ListPublished(search, category, province string) ([]models.ArtisanSummary, error) {
	return s.repo.ListPublished(search, category, province)
}

// AdminList returns the back-office listing including drafts.
func (s *ArtisanService) AdminList(search string) ([]models.ArtisanAdminRow, error) {
	return s.repo.AdminList(search)
}

// GetDetail returns one artisan with its category name.
func (s *ArtisanService) GetDetail(id uint) (*models.ArtisanDetail, error) {
	return s.repo.GetDetail(id)
}

// Profile returns the public profile rows (artisan joined with gallery).
func (s *ArtisanService) Profile(id uint) ([]models.ArtisanProfileRow, error) {
	return s.repo.ProfileRows(id)
}

// Stats returns the dashboard counters.
func (s *ArtisanService) Stats() (*models.ArtisanStats, error) {
	return s.repo.Stats()
}

// TopProvinces returns the five provinces with the most artisans.
func (s *ArtisanService) TopProvinces() ([]models.ProvinceCount, error) {
	return s.repo.TopProvinces(5)
}

// Search runs the public cross-entity search.
func (s *ArtisanService) Search(q string) ([]models.SearchRow, error) {
	return s.repo.Search(q)
}

// Create stamps the creating identity, defaults the status to draft and runs
// the transactional insert with category resolution.
func (s *ArtisanService) Create(artisan *models.Artisan, ref models.CategoryRef, actor models.Identity) error {
	if artisan.Status == "" {
		artisan.Status = models.StatusDraft
	}
	if actor.UserID != 0 {
		id := actor.UserID
		artisan.CreatedBy = &id
	}
	return s.repo.Create(artisan, ref)
}

// Update fetches the stored record first, removes a replaced or cleared
// profile image from disk, re-stamps the editor and performs a full-column
// update. The action is appended to the audit log.
func (s *ArtisanService) Update(artisan *models.Artisan, actor models.Identity, meta models.LogEvent) (*models.Artisan, error) {
	existing, err := s.repo.GetByID(artisan.ArtisanID)
	if err != nil {
		return nil, err
	}

	// A changed or explicitly cleared reference means the old file is no
	// longer reachable; remove it best-effort before the row is updated.
	if existing.ProfileImg != nil {
		old := *existing.ProfileImg
		if artisan.ProfileImg == nil || *artisan.ProfileImg != old {
			s.store.Delete(old)
		}
	}

	if actor.UserID != 0 {
		id := actor.UserID
		artisan.UpdatedBy = &id
	}
	if err := s.repo.Update(artisan); err != nil {
		return nil, err
	}

	meta.ActionType = "ARTISAN_UPDATE"
	meta.Message = fmt.Sprintf("แก้ไขข้อมูลปราชญ์ ID: %d", artisan.ArtisanID)
	if actor.UserID != 0 {
		id := actor.UserID
		meta.UserID = &id
	}
	s.audit.Record(meta)

	return s.repo.GetByID(artisan.ArtisanID)
}

// Delete removes an artisan; dependent rows surface as a referential
// integrity error instead of a raw database failure.
func (s *ArtisanService) Delete(id uint) error {
	return s.repo.Delete(id)
}

// LatestActivity returns the newest artisan creation with a humanized age.
func (s *ArtisanService) LatestActivity() (*models.ActivityRow, error) {
	row, err := s.repo.LatestActivity()
	if err != nil {
		return nil, err
	}
	row.Age = ThaiAge(time.Since(row.When))
	return row, nil
}

// ThaiAge humanizes a duration the way the admin dashboard displays it.
func ThaiAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "เมื่อสักครู่"
	case d < time.Hour:
		return fmt.Sprintf("%d นาทีที่แล้ว", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d ชั่วโมงที่แล้ว", int(d.Hours()))
	default:
		return fmt.Sprintf("%d วันที่แล้ว", int(d.Hours()/24))
	}
}
