package handlers

import (
	"errors"
	"log"

	"artisanhub/internal/apperr"
	"artisanhub/internal/middleware"
	"artisanhub/internal/models"
	"artisanhub/internal/services"
	"artisanhub/pkg/storage"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication and accounts.
type AuthHandler struct {
	authService *services.AuthService
	store       *storage.Store
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, store *storage.Store) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		store:       store,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the auth routes. Registration and profile lookup
// require an authenticated session; only existing admins create accounts.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/logout", h.HandleLogout)
	authRoutes.Get("/me", auth, h.HandleMe)
	authRoutes.Post("/register", auth, h.HandleRegister)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin verifies credentials and issues the session token, delivered
// both as an http-only cookie and in the response body.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "กรุณากรอกข้อมูล",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "กรุณากรอกข้อมูล",
		})
	}

	user, token, err := h.authService.Login(req.Username, req.Password, logMeta(c))
	if err != nil {
		status := apperr.StatusCode(err)
		if status == fiber.StatusInternalServerError {
			log.Printf("Error during login for user %s: %v", req.Username, err)
			return c.Status(status).JSON(fiber.Map{"message": "Server Error"})
		}
		return c.Status(status).JSON(fiber.Map{"message": err.Error()})
	}

	middleware.SetSessionCookie(c, token)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Login สำเร็จ",
		"token":   token,
		"user": fiber.Map{
			"user_id":  user.UserID,
			"username": user.Username,
			"fname":    user.Fname,
			"lname":    user.Lname,
			"role":     user.Role,
		},
	})
}

// HandleLogout clears both session cookies.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	middleware.ClearSessionCookies(c)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Logout สำเร็จ"})
}

// HandleMe returns the authenticated user's profile with the Thai role label.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	identity := middleware.IdentityFromCtx(c)
	user, err := h.authService.Me(identity.UserID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
		}
		log.Printf("Error fetching profile for user %d: %v", identity.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	return c.JSON(fiber.Map{
		"user_id":     user.UserID,
		"fname":       user.Fname,
		"lname":       user.Lname,
		"profile_img": user.ProfileImg,
		"role":        user.Role,
		"role_name":   models.RoleDisplayName(user.Role),
	})
}

// HandleRegister creates a new account. The profile image arrives either as
// a multipart file or as a link in the form body.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	user := models.User{
		Username:    c.FormValue("username"),
		Password:    c.FormValue("password"),
		Fname:       c.FormValue("fname"),
		Lname:       c.FormValue("lname"),
		Role:        c.FormValue("role"),
		PhoneNumber: c.FormValue("phone_number"),
	}

	if fh, err := c.FormFile("profile_img"); err == nil && fh != nil {
		if err := storage.ValidateImage(fh); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		relative, _, err := h.store.Save(storage.KindProfile, fh, c.SaveFile)
		if err != nil {
			log.Printf("Error storing profile image: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
		}
		user.ProfileImg = &relative
	} else if link := c.FormValue("profile_img"); link != "" {
		user.ProfileImg = &link
	}

	if err := h.validate.Struct(user); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": apperr.ErrValidation.Error(),
			"error":   err.Error(),
		})
	}

	if err := h.authService.Register(&user); err != nil {
		log.Printf("Error registering user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}
