package handlers

import (
	"errors"
	"log"

	"artisanhub/internal/apperr"
	"artisanhub/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ActivityHandler serves the dashboard's latest-activity widgets.
type ActivityHandler struct {
	artisanService  *services.ArtisanService
	categoryService *services.CategoryService
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(artisanService *services.ArtisanService, categoryService *services.CategoryService) *ActivityHandler {
	return &ActivityHandler{
		artisanService:  artisanService,
		categoryService: categoryService,
	}
}

// RegisterRoutes registers the activity routes behind the session middleware.
func (h *ActivityHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	activityRoutes := router.Group("/activity", auth)
	activityRoutes.Get("/artisan", h.HandleLatestArtisan)
	activityRoutes.Get("/category", h.HandleLatestCategory)
}

// HandleLatestArtisan returns the newest artisan entry with a humanized age.
// An empty table yields null rather than an error.
func (h *ActivityHandler) HandleLatestArtisan(c *fiber.Ctx) error {
	row, err := h.artisanService.LatestActivity()
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return c.JSON(nil)
		}
		log.Printf("Error fetching latest artisan activity: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.JSON(row)
}

// HandleLatestCategory returns the newest category update with a humanized
// age.
func (h *ActivityHandler) HandleLatestCategory(c *fiber.Ctx) error {
	row, err := h.categoryService.LatestActivity()
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return c.JSON(nil)
		}
		log.Printf("Error fetching latest category activity: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.JSON(row)
}
