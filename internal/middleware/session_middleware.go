package middleware

import (
	"log"
	"strings"
	"time"

	"artisanhub/internal/models"
	"artisanhub/internal/services"

	"github.com/gofiber/fiber/v2"
)

const (
	// CookieName is the primary session cookie.
	CookieName = "token"
	// LegacyCookieName is still accepted on read for older clients.
	LegacyCookieName = "access_token"
	// IdentityKey is the Locals key the verified identity is stored under.
	IdentityKey = "identity"
)

// SetSessionCookie stores the token in an http-only, same-site-strict cookie
// scoped to the whole site.
func SetSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Strict",
		Expires:  time.Now().Add(7 * 24 * time.Hour),
	})
}

// ClearSessionCookies expires both the primary and the legacy cookie.
func ClearSessionCookies(c *fiber.Ctx) {
	for _, name := range []string{CookieName, LegacyCookieName} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			HTTPOnly: true,
			SameSite: "Strict",
			Expires:  time.Now().Add(-time.Hour),
		})
	}
}

// AuthRequired reads the token from the primary cookie, the legacy cookie or
// the Authorization header (in that order), verifies it and attaches the
// identity to the request. Missing tokens are rejected with 401, invalid or
// expired ones with 403 after clearing the cookie.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(CookieName)
		if token == "" {
			token = c.Cookies(LegacyCookieName)
		}
		if token == "" {
			authHeader := c.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				token = parts[1]
			}
		}

		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "ไม่มีสิทธิ์เข้าถึง (Token required)",
			})
		}

		identity, err := authService.ValidateToken(token)
		if err != nil {
			log.Printf("Token validation failed: %v", err)
			ClearSessionCookies(c)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Token ไม่ถูกต้อง หรือ หมดอายุ",
			})
		}

		c.Locals(IdentityKey, *identity)
		return c.Next()
	}
}

// IdentityFromCtx returns the identity attached by AuthRequired; the zero
// value when the route is public.
func IdentityFromCtx(c *fiber.Ctx) models.Identity {
	if identity, ok := c.Locals(IdentityKey).(models.Identity); ok {
		return identity
	}
	return models.Identity{}
}
