package handlers

import (
	"log"
	"strings"

	"artisanhub/internal/models"
	"artisanhub/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SearchHandler serves the site-wide search box.
type SearchHandler struct {
	artisanService *services.ArtisanService
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(artisanService *services.ArtisanService) *SearchHandler {
	return &SearchHandler{artisanService: artisanService}
}

// RegisterRoutes registers the public search route.
func (h *SearchHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/search", h.HandleSearch)
}

// HandleSearch runs the cross-entity search over artisans, categories and
// provinces. A blank query returns an empty result set without touching the
// database.
func (h *SearchHandler) HandleSearch(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return c.JSON([]models.SearchRow{})
	}
	rows, err := h.artisanService.Search(q)
	if err != nil {
		log.Printf("Error searching for %q: %v", q, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.JSON(rows)
}
