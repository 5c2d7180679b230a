package handlers

import (
	"errors"
	"log"

	"artisanhub/internal/apperr"
	"artisanhub/internal/middleware"
	"artisanhub/internal/models"
	"artisanhub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for craft categories.
type CategoryHandler struct {
	categoryService *services.CategoryService
	validate        *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		validate:        validator.New(),
	}
}

// RegisterRoutes registers the category routes; reads are public, mutations
// require a session.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	categoryRoutes := router.Group("/category")
	categoryRoutes.Get("/", h.HandleList)
	categoryRoutes.Post("/add", auth, h.HandleCreate)
	categoryRoutes.Get("/:id", h.HandleGet)
	categoryRoutes.Put("/:id", auth, h.HandleUpdate)
	categoryRoutes.Delete("/:id", auth, h.HandleDelete)
}

// CategoryRequest is the request body for creating or updating a category.
type CategoryRequest struct {
	CategoryName string `json:"category_name" validate:"required"`
	Description  string `json:"description"`
}

// HandleList lists all categories with artisan counts.
func (h *CategoryHandler) HandleList(c *fiber.Ctx) error {
	rows, err := h.categoryService.ListWithCounts()
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.JSON(rows)
}

// HandleGet returns one category.
func (h *CategoryHandler) HandleGet(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid category id"})
	}
	category, err := h.categoryService.Get(uint(id))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "ไม่พบหมวดหมู่"})
		}
		log.Printf("Error fetching category %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.JSON(category)
}

// HandleCreate stores a new category.
func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "กรุณาระบุชื่อหมวดหมู่"})
	}

	category := models.Category{
		CategoryName: req.CategoryName,
		Description:  req.Description,
	}
	if err := h.categoryService.Create(&category, middleware.IdentityFromCtx(c), logMeta(c)); err != nil {
		log.Printf("Error creating category: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "เพิ่มหมวดหมู่เรียบร้อยแล้ว",
		"data":    category,
	})
}

// HandleUpdate edits a category.
func (h *CategoryHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid category id"})
	}
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "กรุณาระบุชื่อหมวดหมู่"})
	}

	category := models.Category{
		CategoryID:   uint(id),
		CategoryName: req.CategoryName,
		Description:  req.Description,
	}
	if err := h.categoryService.Update(&category, middleware.IdentityFromCtx(c), logMeta(c)); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "ไม่พบหมวดหมู่ที่ต้องการแก้ไข"})
		}
		log.Printf("Error updating category %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.JSON(fiber.Map{"message": "แก้ไขหมวดหมู่เรียบร้อยแล้ว"})
}

// HandleDelete removes a category. Categories still referenced by artisans
// come back as a referential-integrity error, not a server fault.
func (h *CategoryHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid category id"})
	}
	if err := h.categoryService.Delete(uint(id), logMeta(c)); err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "ไม่พบหมวดหมู่ที่ต้องการลบ"})
		case errors.Is(err, apperr.ErrForeignKey):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "ไม่สามารถลบหมวดหมู่ได้ เนื่องจากมีปราชญ์ใช้งานอยู่",
			})
		default:
			log.Printf("Error deleting category %d: %v", id, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
		}
	}
	return c.JSON(fiber.Map{"message": "ลบหมวดหมู่เรียบร้อยแล้ว", "deleted_id": id})
}
