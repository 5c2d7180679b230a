package handlers

import (
	"errors"
	"log"
	"strings"

	"artisanhub/internal/apperr"
	"artisanhub/internal/middleware"
	"artisanhub/internal/models"
	"artisanhub/internal/services"
	"artisanhub/pkg/storage"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the back office: uploads, user management and artisan
// management. Every route requires a session.
type AdminHandler struct {
	artisanService *services.ArtisanService
	authService    *services.AuthService
	store          *storage.Store
	validate       *validator.Validate
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(artisanService *services.ArtisanService, authService *services.AuthService, store *storage.Store) *AdminHandler {
	return &AdminHandler{
		artisanService: artisanService,
		authService:    authService,
		store:          store,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the admin routes behind the session middleware.
func (h *AdminHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	adminRoutes := router.Group("/admin", auth)
	adminRoutes.Post("/upload", h.HandleUpload)
	adminRoutes.Get("/users", h.HandleListUsers)
	adminRoutes.Delete("/users/:id", h.HandleDeleteUser)
	adminRoutes.Get("/artisans-data", h.HandleAdminList)
	adminRoutes.Delete("/artisans-data/:id", h.HandleDeleteArtisan)
	adminRoutes.Post("/artisan/add", h.HandleCreateArtisan)
	adminRoutes.Get("/artisan/:id", h.HandleGetArtisan)
	adminRoutes.Put("/artisan/:id", h.HandleUpdateArtisan)
}

// HandleUpload stores a single uploaded file. The destination is the gallery
// directory when the isGallery flag is set or the path mentions gallery,
// the generic upload root otherwise.
func (h *AdminHandler) HandleUpload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "ไม่มีไฟล์ที่เลือก"})
	}

	if err := storage.ValidateImage(fh); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	kind := storage.KindGeneric
	if c.FormValue("isGallery") == "true" || strings.Contains(c.Path(), "gallery") {
		kind = storage.KindGallery
	}

	relative, filename, err := h.store.Save(kind, fh, c.SaveFile)
	if err != nil {
		log.Printf("Upload Error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "เกิดข้อผิดพลาดในการอัปโหลด",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":      "อัปโหลดไฟล์สำเร็จ",
		"path":         h.store.URL(relative),
		"filename":     filename,
		"relativePath": relative,
	})
}

// HandleListUsers lists accounts without password hashes.
func (h *AdminHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.authService.ListUsers(c.Query("search"))
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.JSON(users)
}

// HandleDeleteUser removes an account; dependent records keep existing with
// nulled references.
func (h *AdminHandler) HandleDeleteUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user id"})
	}
	if err := h.authService.DeleteUser(uint(id)); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "ไม่พบผู้ใช้งานที่ต้องการลบ"})
		}
		log.Printf("Delete Error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.JSON(fiber.Map{
		"message":    "ลบผู้ใช้งานเรียบร้อยแล้ว (ข้อมูลที่เกี่ยวข้องถูกตั้งเป็น NULL)",
		"deleted_id": id,
	})
}

// HandleAdminList lists artisans including drafts.
func (h *AdminHandler) HandleAdminList(c *fiber.Ctx) error {
	rows, err := h.artisanService.AdminList(c.Query("search"))
	if err != nil {
		log.Printf("Database Error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.JSON(rows)
}

// HandleDeleteArtisan removes an artisan. Deletes blocked by dependent rows
// return a referential-integrity explanation instead of a raw error code.
func (h *AdminHandler) HandleDeleteArtisan(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid artisan id"})
	}
	if err := h.artisanService.Delete(uint(id)); err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "ไม่พบข้อมูลช่างฝีมือที่ต้องการลบ"})
		case errors.Is(err, apperr.ErrForeignKey):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			log.Printf("Delete Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
		}
	}
	return c.JSON(fiber.Map{"message": "ลบข้อมูลเรียบร้อยแล้ว", "deleted_id": id})
}

// ArtisanRequest is the request body for creating or updating an artisan.
// The category may be referenced by id or, on create, resolved by name.
type ArtisanRequest struct {
	Fname        string  `json:"fname"`
	Lname        string  `json:"lname"`
	ProfileImg   *string `json:"profile_img"`
	BirthDate    string  `json:"birth_date"`
	Address      string  `json:"address"`
	Province     string  `json:"province"`
	District     string  `json:"district"`
	CategoryID   uint    `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Biography    string  `json:"biography"`
	Status       string  `json:"status"`
}

// HandleCreateArtisan resolves the category and inserts the artisan in one
// all-or-nothing transaction. Any failure, including an unresolvable
// category name, rolls the whole operation back.
func (h *AdminHandler) HandleCreateArtisan(c *fiber.Ctx) error {
	var req ArtisanRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing artisan request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	artisan := models.Artisan{
		Fname:      req.Fname,
		Lname:      req.Lname,
		ProfileImg: req.ProfileImg,
		BirthDate:  optional(req.BirthDate),
		Address:    req.Address,
		Province:   req.Province,
		District:   req.District,
		Biography:  req.Biography,
		Status:     req.Status,
	}
	ref := models.CategoryRef{ID: req.CategoryID, Name: req.CategoryName}

	if err := h.artisanService.Create(&artisan, ref, middleware.IdentityFromCtx(c)); err != nil {
		log.Printf("Add Artisan Error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server Error",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "เพิ่มข้อมูลปราชญ์เรียบร้อยแล้ว",
		"data": fiber.Map{
			"artisan_id": artisan.ArtisanID,
			"fname":      artisan.Fname,
			"lname":      artisan.Lname,
			"status":     artisan.Status,
		},
	})
}

// HandleGetArtisan returns one artisan with its category name.
func (h *AdminHandler) HandleGetArtisan(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid artisan id"})
	}
	detail, err := h.artisanService.GetDetail(uint(id))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "ไม่พบข้อมูลปราชญ์"})
		}
		log.Printf("Get Single Artisan Error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.JSON(detail)
}

// HandleUpdateArtisan validates the required fields, then lets the service
// handle old-image cleanup, the full-column update and the audit entry.
func (h *AdminHandler) HandleUpdateArtisan(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid artisan id"})
	}

	var req ArtisanRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing artisan request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	// Required-field validation happens before any file deletion or
	// database mutation.
	if req.Fname == "" || req.Lname == "" || req.CategoryID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": apperr.ErrValidation.Error()})
	}

	artisan := models.Artisan{
		ArtisanID:  uint(id),
		Fname:      req.Fname,
		Lname:      req.Lname,
		ProfileImg: req.ProfileImg,
		BirthDate:  optional(req.BirthDate),
		Address:    req.Address,
		Province:   req.Province,
		District:   req.District,
		CategoryID: req.CategoryID,
		Biography:  req.Biography,
		Status:     req.Status,
	}

	updated, err := h.artisanService.Update(&artisan, middleware.IdentityFromCtx(c), logMeta(c))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "ไม่พบข้อมูลปราชญ์ที่ต้องการแก้ไข"})
		}
		log.Printf("Update Artisan Error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server Error",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{"message": "แก้ไขข้อมูลเรียบร้อยแล้ว", "data": updated})
}
