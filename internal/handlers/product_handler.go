package handlers

import (
	"errors"
	"log"

	"artisanhub/internal/apperr"
	"artisanhub/internal/models"
	"artisanhub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler serves the product showcase. The route names keep the paths
// the frontend already calls.
type ProductHandler struct {
	productService  *services.ProductService
	categoryService *services.CategoryService
	validate        *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService *services.ProductService, categoryService *services.CategoryService) *ProductHandler {
	return &ProductHandler{
		productService:  productService,
		categoryService: categoryService,
		validate:        validator.New(),
	}
}

// RegisterRoutes registers the product routes; listing is public, mutations
// require a session.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	productRoutes := router.Group("/product")
	productRoutes.Get("/products", h.HandleList)
	productRoutes.Get("/category", h.HandleCategories)
	productRoutes.Post("/product/add", auth, h.HandleCreate)
	productRoutes.Delete("/product/delete/:id", auth, h.HandleDelete)
}

// HandleList lists products joined with their artisan's name, with optional
// search over product and artisan fields.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	rows, err := h.productService.ListRows(c.Query("search"))
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.JSON(rows)
}

// HandleCategories returns the category list the product page filters by.
func (h *ProductHandler) HandleCategories(c *fiber.Ctx) error {
	rows, err := h.categoryService.Options()
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.JSON(rows)
}

// ProductRequest is the request body for creating a product.
type ProductRequest struct {
	ArtisanID   uint   `json:"artisan_id" validate:"required"`
	ProductName string `json:"product_name" validate:"required"`
	PriceRange  string `json:"price_range" validate:"required"`
	Description string `json:"description"`
	ProductImg  string `json:"product_img"`
}

// HandleCreate stores a new product; the image falls back to the default
// placeholder when omitted.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": apperr.ErrValidation.Error()})
	}

	product := models.Product{
		ArtisanID:   req.ArtisanID,
		ProductName: req.ProductName,
		PriceRange:  req.PriceRange,
		Description: req.Description,
		ProductImg:  req.ProductImg,
	}
	if err := h.productService.Create(&product); err != nil {
		if errors.Is(err, apperr.ErrForeignKey) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "ไม่พบปราชญ์ที่ระบุ"})
		}
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "เพิ่มสินค้าเรียบร้อยแล้ว",
		"data":    product,
	})
}

// HandleDelete removes a product.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid product id"})
	}
	if err := h.productService.Delete(uint(id)); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "ไม่พบสินค้าที่ต้องการลบ"})
		}
		log.Printf("Error deleting product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.JSON(fiber.Map{"message": "ลบสินค้าเรียบร้อยแล้ว", "deleted_id": id})
}
