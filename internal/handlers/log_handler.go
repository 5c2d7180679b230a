package handlers

import (
	"log"
	"strings"
	"time"

	"artisanhub/internal/models"
	"artisanhub/internal/services"

	"github.com/gofiber/fiber/v2"
)

// defaultLogLimit caps the listing endpoints.
const defaultLogLimit = 100

// LogHandler handles the append-only log streams: visit beacons, manual
// audit entries, listings and the CSV exports.
type LogHandler struct {
	auditService *services.AuditService
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(auditService *services.AuditService) *LogHandler {
	return &LogHandler{auditService: auditService}
}

// RegisterRoutes registers the log routes. The beacons are public by nature;
// reading and exporting requires a session.
func (h *LogHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Post("/log-visit", h.HandleLogVisit)
	router.Post("/log-admin-action", auth, h.HandleLogAdminAction)
	router.Get("/logs", auth, h.HandleListAudit)
	router.Get("/visit-logs", auth, h.HandleListVisits)
	router.Get("/export-visit-logs", auth, h.HandleExportVisits)
	router.Get("/export-audit-logs", auth, h.HandleExportAudit)
}

// VisitBeacon is the page-visit beacon body sent by the frontend.
type VisitBeacon struct {
	Path     string `json:"path"`
	Referrer string `json:"referrer"`
	Lang     string `json:"lang"`
}

// HandleLogVisit records an anonymous page visit. The beacon never fails the
// caller; the response is an empty 204 either way.
func (h *LogHandler) HandleLogVisit(c *fiber.Ctx) error {
	var beacon VisitBeacon
	if err := c.BodyParser(&beacon); err != nil {
		log.Printf("Error parsing visit beacon: %v", err)
		return c.SendStatus(fiber.StatusNoContent)
	}
	path := beacon.Path
	if path == "" {
		path = c.OriginalURL()
	}
	h.auditService.RecordVisit(models.VisitEvent{
		IP:        clientIP(c),
		UserAgent: c.Get("User-Agent"),
		Path:      path,
		Method:    c.Method(),
		Referrer:  beacon.Referrer,
		Lang:      beacon.Lang,
	})
	return c.SendStatus(fiber.StatusNoContent)
}

// AdminActionBeacon is the manual audit-entry body sent by the back office.
type AdminActionBeacon struct {
	ActionType string `json:"action_type"`
	Message    string `json:"message"`
	Path       string `json:"path"`
}

// HandleLogAdminAction records an administrative action reported by the
// frontend, stamped with the request's network metadata and identity.
func (h *LogHandler) HandleLogAdminAction(c *fiber.Ctx) error {
	var beacon AdminActionBeacon
	if err := c.BodyParser(&beacon); err != nil {
		log.Printf("Error parsing admin-action beacon: %v", err)
		return c.SendStatus(fiber.StatusNoContent)
	}
	event := logMeta(c)
	event.ActionType = strings.ToUpper(beacon.ActionType)
	event.Message = beacon.Message
	if beacon.Path != "" {
		event.Path = beacon.Path
	}
	h.auditService.Record(event)
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleListAudit returns the newest audit entries.
func (h *LogHandler) HandleListAudit(c *fiber.Ctx) error {
	entries, err := h.auditService.ListAudit(defaultLogLimit)
	if err != nil {
		log.Printf("Error listing audit logs: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.JSON(entries)
}

// HandleListVisits returns the newest visit entries.
func (h *LogHandler) HandleListVisits(c *fiber.Ctx) error {
	entries, err := h.auditService.ListVisit(defaultLogLimit)
	if err != nil {
		log.Printf("Error listing visit logs: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.JSON(entries)
}

// sendCSV delivers a CSV body as a dated download attachment.
func sendCSV(c *fiber.Ctx, prefix string, body []byte) error {
	filename := prefix + "-" + time.Now().Format("2006-01-02") + ".csv"
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(body)
}

// HandleExportVisits streams every visit record as a CSV download.
func (h *LogHandler) HandleExportVisits(c *fiber.Ctx) error {
	body, err := h.auditService.ExportVisitCSV()
	if err != nil {
		log.Printf("Error exporting visit logs: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return sendCSV(c, "visit-logs", body)
}

// HandleExportAudit streams every audit record as a CSV download.
func (h *LogHandler) HandleExportAudit(c *fiber.Ctx) error {
	body, err := h.auditService.ExportAuditCSV()
	if err != nil {
		log.Printf("Error exporting audit logs: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return sendCSV(c, "audit-logs", body)
}
