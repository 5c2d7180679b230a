package repositories

import "artisanhub/internal/models"

// LogRepository defines the interface for the append-only log tables.
type LogRepository interface {
	AppendAudit(entry *models.AuditLog) error
	AppendVisit(entry *models.VisitLog) error
	ListAudit(limit int) ([]models.AuditLog, error)
	ListVisit(limit int) ([]models.VisitLog, error)
	AllAudit() ([]models.AuditLog, error)
	AllVisit() ([]models.VisitLog, error)
}
