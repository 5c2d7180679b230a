package handlers

import (
	"errors"
	"fmt"
	"log"

	"artisanhub/internal/apperr"
	"artisanhub/internal/middleware"
	"artisanhub/internal/models"
	"artisanhub/internal/services"
	"artisanhub/pkg/storage"

	"github.com/gofiber/fiber/v2"
)

// GalleryHandler serves the artisan galleries: the per-artisan CRUD used on
// profile pages, the public gallery page and the joined back-office listing.
type GalleryHandler struct {
	galleryService *services.GalleryService
	store          *storage.Store
}

// NewGalleryHandler creates a new GalleryHandler.
func NewGalleryHandler(galleryService *services.GalleryService, store *storage.Store) *GalleryHandler {
	return &GalleryHandler{galleryService: galleryService, store: store}
}

// RegisterRoutes registers the gallery routes. The /artisan/:artisan_id route
// must come before the bare /:gallery_id routes so it is not swallowed by the
// id parameter.
func (h *GalleryHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	galleryRoutes := router.Group("/gallery")
	galleryRoutes.Get("/artisan/:artisan_id", h.HandleListByArtisan)
	galleryRoutes.Post("/:artisan_id/add", auth, h.HandleAdd)
	galleryRoutes.Get("/:gallery_id", h.HandleGet)
	galleryRoutes.Put("/:gallery_id", auth, h.HandleUpdate)
	galleryRoutes.Delete("/:gallery_id", auth, h.HandleDelete)

	// Public gallery page with free-text search.
	router.Get("/galleryPage", h.HandleGalleryPage)

	// Back-office listing and reference-only edits.
	adminGallery := router.Group("/galleryadmin", auth)
	adminGallery.Get("/", h.HandleAdminRows)
	adminGallery.Put("/:gallery_id", h.HandleAdminUpdate)
	adminGallery.Delete("/:gallery_id", h.HandleAdminDelete)
}

// HandleListByArtisan returns the gallery of one artisan.
func (h *GalleryHandler) HandleListByArtisan(c *fiber.Ctx) error {
	artisanID, err := c.ParamsInt("artisan_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid artisan id"})
	}
	images, err := h.galleryService.ListByArtisan(uint(artisanID))
	if err != nil {
		log.Printf("Error listing gallery for artisan %d: %v", artisanID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.JSON(images)
}

// HandleGet returns a single image.
func (h *GalleryHandler) HandleGet(c *fiber.Ctx) error {
	id, err := c.ParamsInt("gallery_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid gallery id"})
	}
	image, err := h.galleryService.Get(uint(id))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "ไม่พบข้อมูลรูปภาพ"})
		}
		log.Printf("Error fetching gallery image %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.JSON(image)
}

// HandleAdd uploads a new image into an artisan's gallery. The file arrives
// in the multipart "image" field; name and caption in the form body.
func (h *GalleryHandler) HandleAdd(c *fiber.Ctx) error {
	artisanID, err := c.ParamsInt("artisan_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid artisan id"})
	}

	fh, err := c.FormFile("image")
	if err != nil || fh == nil {
		h.galleryService.RecordAddRejected(logMeta(c), fmt.Sprintf("พยายามเพิ่มรูปภาพแต่ไม่พบไฟล์ (Artisan ID: %d)", artisanID))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "กรุณาอัพโหลดรูปภาพ"})
	}
	if err := storage.ValidateImage(fh); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	name := c.FormValue("name_gallery")
	if name == "" {
		h.galleryService.RecordAddRejected(logMeta(c), fmt.Sprintf("พยายามเพิ่มรูปภาพแต่ไม่ใส่ชื่อ (Artisan ID: %d)", artisanID))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "กรุณากรอกชื่อรูปภาพ"})
	}

	relative, _, err := h.store.Save(storage.KindGallery, fh, c.SaveFile)
	if err != nil {
		log.Printf("Error storing gallery image: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "เกิดข้อผิดพลาดในการอัปโหลด"})
	}

	image := models.GalleryImage{
		ArtisanID:   uint(artisanID),
		ImageURL:    relative,
		NameGallery: name,
	}
	if caption := c.FormValue("caption"); caption != "" {
		image.Caption = &caption
	}

	if err := h.galleryService.Add(&image, middleware.IdentityFromCtx(c), logMeta(c)); err != nil {
		h.store.Delete(relative)
		log.Printf("Error adding gallery image: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "เพิ่มรูปภาพสำเร็จ",
		"data":    image,
	})
}

// HandleUpdate edits an image; a new file in the multipart "image" field
// replaces the stored one, fields left empty keep their stored values.
func (h *GalleryHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("gallery_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid gallery id"})
	}

	newImageURL := ""
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		if err := storage.ValidateImage(fh); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		relative, _, err := h.store.Save(storage.KindGallery, fh, c.SaveFile)
		if err != nil {
			log.Printf("Error storing gallery image: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "เกิดข้อผิดพลาดในการอัปโหลด"})
		}
		newImageURL = relative
	}

	var caption *string
	if v := c.FormValue("caption"); v != "" {
		caption = &v
	}

	updated, err := h.galleryService.Update(uint(id), c.FormValue("name_gallery"), caption, newImageURL, logMeta(c))
	if err != nil {
		if newImageURL != "" {
			h.store.Delete(newImageURL)
		}
		if errors.Is(err, apperr.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "ไม่พบรูปภาพ"})
		}
		log.Printf("Error updating gallery image %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.JSON(fiber.Map{"message": "แก้ไขสำเร็จ", "data": updated})
}

// HandleDelete removes the file and the row. Deleting an already deleted
// image returns not-found, so repeat requests stay harmless.
func (h *GalleryHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("gallery_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid gallery id"})
	}
	if err := h.galleryService.Delete(uint(id), logMeta(c)); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "ไม่พบรูปภาพ"})
		}
		log.Printf("Error deleting gallery image %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.JSON(fiber.Map{"message": "ลบรูปภาพสำเร็จ", "deleted_id": id})
}

// HandleGalleryPage serves the public gallery page, filtered by name or
// caption when a search term is present.
func (h *GalleryHandler) HandleGalleryPage(c *fiber.Ctx) error {
	images, err := h.galleryService.Search(c.Query("search"))
	if err != nil {
		log.Printf("Error searching gallery: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.JSON(images)
}

// HandleAdminRows returns the back-office listing joined with artisan and
// uploader names.
func (h *GalleryHandler) HandleAdminRows(c *fiber.Ctx) error {
	rows, err := h.galleryService.AdminRows()
	if err != nil {
		log.Printf("Error listing gallery admin rows: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.JSON(rows)
}

// GalleryAdminRequest is the back-office edit body; the image is a reference,
// not an upload.
type GalleryAdminRequest struct {
	ImageURL    string  `json:"image_url"`
	NameGallery string  `json:"name_gallery"`
	Caption     *string `json:"caption"`
}

// HandleAdminUpdate saves name, caption and image reference without touching
// files on disk.
func (h *GalleryHandler) HandleAdminUpdate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("gallery_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid gallery id"})
	}
	var req GalleryAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	image := models.GalleryImage{
		GalleryID:   uint(id),
		ImageURL:    req.ImageURL,
		NameGallery: req.NameGallery,
		Caption:     req.Caption,
	}
	if err := h.galleryService.AdminUpdate(&image); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "ไม่พบรูปภาพที่ต้องการแก้ไข"})
		}
		log.Printf("Error updating gallery image %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.JSON(fiber.Map{"message": "แก้ไขรูปภาพเรียบร้อยแล้ว"})
}

// HandleAdminDelete removes a row without file handling.
func (h *GalleryHandler) HandleAdminDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("gallery_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid gallery id"})
	}
	if err := h.galleryService.AdminDelete(uint(id)); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "ไม่พบรูปภาพที่ต้องการลบ"})
		}
		log.Printf("Error deleting gallery image %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.JSON(fiber.Map{"message": "ลบรูปภาพเรียบร้อยแล้ว", "deleted_id": id})
}
