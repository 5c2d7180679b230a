package services

import (
	"fmt"

	"artisanhub/internal/models"
	"artisanhub/internal/repositories"
	"artisanhub/pkg/storage"
)

// GalleryService handles business logic for artisan gallery images.
type GalleryService struct {
	repo  repositories.GalleryRepository
	store *storage.Store
	audit *AuditService
}

// NewGalleryService creates a new GalleryService.
func NewGalleryService(repo repositories.GalleryRepository, store *storage.Store, audit *AuditService) *GalleryService {
	return &GalleryService{repo: repo, store: store, audit: audit}
}

// ListByArtisan returns an artisan's gallery.
func (s *GalleryService) ListByArtisan(artisanID uint) ([]models.GalleryImage, error) {
	return s.repo.ListByArtisan(artisanID)
}

// Get returns a single image.
func (s *GalleryService) Get(id uint) (*models.GalleryImage, error) {
	return s.repo.GetByID(id)
}

// Search filters the public gallery page by name or caption.
func (s *GalleryService) Search(q string) ([]models.GalleryImage, error) {
	return s.repo.Search(q)
}

// AdminRows returns the joined back-office listing.
func (s *GalleryService) AdminRows() ([]models.GalleryAdminRow, error) {
	return s.repo.AdminRows()
}

// RecordAddRejected audits an upload rejected before anything was stored.
func (s *GalleryService) RecordAddRejected(meta models.LogEvent, message string) {
	meta.ActionType = "GALLERY_ADD_FAIL"
	meta.Message = message
	s.audit.Record(meta)
}

// Add stores a new image row stamped with the uploading user and audits the
// action.
func (s *GalleryService) Add(image *models.GalleryImage, actor models.Identity, meta models.LogEvent) error {
	if actor.UserID != 0 {
		id := actor.UserID
		image.UserID = &id
	}
	if err := s.repo.Create(image); err != nil {
		meta.ActionType = "GALLERY_ADD_ERROR"
		meta.Message = fmt.Sprintf("เกิดข้อผิดพลาด: %v", err)
		s.audit.Record(meta)
		return err
	}
	meta.ActionType = "GALLERY_ADD"
	meta.Message = fmt.Sprintf("เพิ่มรูปภาพแกลเลอรีใหม่: %s (Artisan ID: %d)", image.NameGallery, image.ArtisanID)
	s.audit.Record(meta)
	return nil
}

// Update edits an image. When newImageURL is non-empty the previous file is
// removed from disk; empty fields keep their stored values.
func (s *GalleryService) Update(id uint, name string, caption *string, newImageURL string, meta models.LogEvent) (*models.GalleryImage, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		meta.ActionType = "GALLERY_UPDATE_FAIL"
		meta.Message = fmt.Sprintf("พยายามแก้ไขรูปภาพที่ไม่พบ (ID: %d)", id)
		s.audit.Record(meta)
		return nil, err
	}

	fileChanged := "ไม่มีการเปลี่ยนไฟล์"
	imageURL := existing.ImageURL
	if newImageURL != "" {
		imageURL = newImageURL
		s.store.Delete(existing.ImageURL)
		fileChanged = "มีการอัปโหลดไฟล์ใหม่"
	}
	if name == "" {
		name = existing.NameGallery
	}
	if caption == nil {
		caption = existing.Caption
	}

	updated := &models.GalleryImage{
		GalleryID:   id,
		ImageURL:    imageURL,
		NameGallery: name,
		Caption:     caption,
	}
	if err := s.repo.Update(updated); err != nil {
		meta.ActionType = "GALLERY_UPDATE_ERROR"
		meta.Message = fmt.Sprintf("เกิดข้อผิดพลาดขณะแก้ไข ID: %d - %v", id, err)
		s.audit.Record(meta)
		return nil, err
	}

	meta.ActionType = "GALLERY_UPDATE"
	meta.Message = fmt.Sprintf("แก้ไขข้อมูลรูปภาพ ID: %d (%s)", id, fileChanged)
	s.audit.Record(meta)
	return s.repo.GetByID(id)
}

// AdminUpdate saves name, caption and image reference without touching files
// (the back-office edits references directly).
func (s *GalleryService) AdminUpdate(image *models.GalleryImage) error {
	return s.repo.Update(image)
}

// Delete removes the stored file best-effort, then the row. Deleting an
// already deleted image returns not-found, never a server error.
func (s *GalleryService) Delete(id uint, meta models.LogEvent) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		meta.ActionType = "GALLERY_DELETE_FAIL"
		meta.Message = fmt.Sprintf("พยายามลบรูปภาพที่ไม่พบ (ID: %d)", id)
		s.audit.Record(meta)
		return err
	}

	s.store.Delete(existing.ImageURL)

	if err := s.repo.Delete(id); err != nil {
		meta.ActionType = "GALLERY_DELETE_ERROR"
		meta.Message = fmt.Sprintf("เกิดข้อผิดพลาดขณะลบ ID: %d - %v", id, err)
		s.audit.Record(meta)
		return err
	}

	meta.ActionType = "GALLERY_DELETE"
	meta.Message = fmt.Sprintf("ลบรูปภาพชื่อ %q (ID: %d) สำเร็จ", existing.NameGallery, id)
	s.audit.Record(meta)
	return nil
}

// AdminDelete removes a row without file handling.
func (s *GalleryService) AdminDelete(id uint) error {
	return s.repo.Delete(id)
}
