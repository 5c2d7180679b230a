package handlers

import (
	"errors"
	"log"

	"artisanhub/internal/apperr"
	"artisanhub/internal/models"
	"artisanhub/internal/services"
	"artisanhub/pkg/storage"

	"github.com/gofiber/fiber/v2"
)

// AwardHandler handles HTTP requests for artisan awards. Award files may be
// images or PDF certificates.
type AwardHandler struct {
	awardService *services.AwardService
	store        *storage.Store
}

// NewAwardHandler creates a new AwardHandler.
func NewAwardHandler(awardService *services.AwardService, store *storage.Store) *AwardHandler {
	return &AwardHandler{awardService: awardService, store: store}
}

// RegisterRoutes registers the award routes. Only the public profile page
// listing skips the session check.
func (h *AwardHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	awardRoutes := router.Group("/award")
	awardRoutes.Get("/get-all-award/:artisan_id", auth, h.HandleListByArtisan)
	awardRoutes.Get("/get-award-page/:artisan_id", h.HandleListByArtisan)
	awardRoutes.Get("/get-award/:award_id", auth, h.HandleGet)
	awardRoutes.Post("/add-award/:artisan_id", auth, h.HandleAdd)
	awardRoutes.Put("/edit-award/:award_id", auth, h.HandleUpdate)
	awardRoutes.Delete("/delete-award/:award_id", auth, h.HandleDelete)
}

// HandleListByArtisan returns all awards of one artisan.
func (h *AwardHandler) HandleListByArtisan(c *fiber.Ctx) error {
	artisanID, err := c.ParamsInt("artisan_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid artisan id"})
	}
	awards, err := h.awardService.ListByArtisan(uint(artisanID))
	if err != nil {
		log.Printf("Error listing awards for artisan %d: %v", artisanID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.JSON(awards)
}

// HandleGet returns one award.
func (h *AwardHandler) HandleGet(c *fiber.Ctx) error {
	id, err := c.ParamsInt("award_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid award id"})
	}
	award, err := h.awardService.Get(uint(id))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "ไม่พบรางวัล"})
		}
		log.Printf("Error fetching award %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.JSON(award)
}

// saveAwardFile validates and stores the optional "file_url" multipart field,
// returning nil when no file was sent.
func (h *AwardHandler) saveAwardFile(c *fiber.Ctx) (*string, error) {
	fh, err := c.FormFile("file_url")
	if err != nil || fh == nil {
		return nil, nil
	}
	if err := storage.ValidateDocument(fh); err != nil {
		return nil, err
	}
	relative, _, err := h.store.Save(storage.KindAward, fh, c.SaveFile)
	if err != nil {
		return nil, err
	}
	return &relative, nil
}

// HandleAdd stores a new award with an optional certificate file.
func (h *AwardHandler) HandleAdd(c *fiber.Ctx) error {
	artisanID, err := c.ParamsInt("artisan_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid artisan id"})
	}

	title := c.FormValue("award_title")
	if title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "กรุณาระบุชื่อรางวัล"})
	}

	fileURL, err := h.saveAwardFile(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	award := models.Award{
		ArtisanID:    uint(artisanID),
		AwardTitle:   title,
		FileURL:      fileURL,
		ReceivedDate: optional(c.FormValue("received_date")),
	}
	if err := h.awardService.Add(&award); err != nil {
		log.Printf("Error adding award: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "เพิ่มรางวัลเรียบร้อยแล้ว",
		"data":    award,
	})
}

// HandleUpdate edits an award; when no new file is uploaded the stored
// reference is kept.
func (h *AwardHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("award_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid award id"})
	}

	title := c.FormValue("award_title")
	if title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "กรุณาระบุชื่อรางวัล"})
	}

	fileURL, err := h.saveAwardFile(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.awardService.Update(uint(id), title, optional(c.FormValue("received_date")), fileURL)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "ไม่พบรางวัลที่ต้องการแก้ไข"})
		}
		log.Printf("Error updating award %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.JSON(fiber.Map{"message": "แก้ไขรางวัลเรียบร้อยแล้ว", "data": updated})
}

// HandleDelete removes the certificate file best-effort, then the row.
func (h *AwardHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("award_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid award id"})
	}
	if err := h.awardService.Delete(uint(id)); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "ไม่พบรางวัลที่ต้องการลบ"})
		}
		log.Printf("Error deleting award %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.JSON(fiber.Map{"message": "ลบรางวัลเรียบร้อยแล้ว", "deleted_id": id})
}
