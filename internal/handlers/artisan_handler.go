package handlers

import (
	"log"

	"artisanhub/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ArtisanHandler serves the public artisan directory.
type ArtisanHandler struct {
	artisanService  *services.ArtisanService
	categoryService *services.CategoryService
}

// NewArtisanHandler creates a new ArtisanHandler.
func NewArtisanHandler(artisanService *services.ArtisanService, categoryService *services.CategoryService) *ArtisanHandler {
	return &ArtisanHandler{
		artisanService:  artisanService,
		categoryService: categoryService,
	}
}

// RegisterRoutes registers the public artisan routes; only the dashboard
// counters require a session.
func (h *ArtisanHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	artisanRoutes := router.Group("/artisan")
	artisanRoutes.Get("/", h.HandleListPublished)
	artisanRoutes.Get("/count", auth, h.HandleStats)
	artisanRoutes.Get("/by-province", h.HandleTopProvinces)
	artisanRoutes.Get("/category/list", h.HandleCategoryOptions)
	artisanRoutes.Get("/profile/:id", h.HandleProfile)
}

// HandleListPublished lists published artisans with optional search,
// category and province filters.
func (h *ArtisanHandler) HandleListPublished(c *fiber.Ctx) error {
	rows, err := h.artisanService.ListPublished(
		c.Query("search"), c.Query("category"), c.Query("province"))
	if err != nil {
		log.Printf("Error listing published artisans: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.JSON(rows)
}

// HandleStats returns the dashboard counters.
func (h *ArtisanHandler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.artisanService.Stats()
	if err != nil {
		log.Printf("Error aggregating artisan stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.JSON(stats)
}

// HandleTopProvinces returns the five provinces with the most artisans.
func (h *ArtisanHandler) HandleTopProvinces(c *fiber.Ctx) error {
	rows, err := h.artisanService.TopProvinces()
	if err != nil {
		log.Printf("Error aggregating provinces: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}
	return c.JSON(rows)
}

// HandleCategoryOptions returns id/name pairs for the public filter dropdown.
func (h *ArtisanHandler) HandleCategoryOptions(c *fiber.Ctx) error {
	rows, err := h.categoryService.Options()
	if err != nil {
		log.Printf("Error listing category options: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.JSON(rows)
}

// HandleProfile returns the public profile rows (one per gallery image).
func (h *ArtisanHandler) HandleProfile(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid artisan id"})
	}
	rows, err := h.artisanService.Profile(uint(id))
	if err != nil {
		log.Printf("Error fetching artisan profile %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.JSON(rows)
}
