package handlers

import (
	"strings"
	"time"

	"artisanhub/internal/middleware"
	"artisanhub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// optional turns an empty form or JSON string into a nil pointer so it is
// stored as NULL.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// clientIP prefers the first hop of X-Forwarded-For over the socket address.
func clientIP(c *fiber.Ctx) string {
	if fwd := c.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	return c.IP()
}

// logMeta builds the canonical audit payload from the request's network
// metadata. Callers fill in ActionType and Message.
func logMeta(c *fiber.Ctx) models.LogEvent {
	event := models.LogEvent{
		IP:         clientIP(c),
		Path:       c.OriginalURL(),
		Referrer:   c.Get("Referer"),
		CreatedAt:  time.Now(),
		UserAgent:  c.Get("User-Agent"),
		HTTPMethod: c.Method(),
	}
	if identity := middleware.IdentityFromCtx(c); identity.UserID != 0 {
		id := identity.UserID
		event.UserID = &id
	}
	return event
}
