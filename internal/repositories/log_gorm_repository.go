package repositories

import (
	"fmt"

	"artisanhub/internal/models"

	"gorm.io/gorm"
)

// GORMLogRepository is a GORM implementation of LogRepository.
type GORMLogRepository struct {
	db *gorm.DB
}

// NewGORMLogRepository creates a new instance of GORMLogRepository.
func NewGORMLogRepository(db *gorm.DB) *GORMLogRepository {
	return &GORMLogRepository{db: db}
}

// AppendAudit appends one administrative-action record.
func (r *GORMLogRepository) AppendAudit(entry *models.AuditLog) error {
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append audit log: %w", err)
	}
	return nil
}

// AppendVisit appends one page-visit record.
func (r *GORMLogRepository) AppendVisit(entry *models.VisitLog) error {
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append visit log: %w", err)
	}
	return nil
}

// ListAudit returns the newest audit records up to limit.
func (r *GORMLogRepository) ListAudit(limit int) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	if err := r.db.Order("created_at DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return entries, nil
}

// ListVisit returns the newest visit records up to limit.
func (r *GORMLogRepository) ListVisit(limit int) ([]models.VisitLog, error) {
	var entries []models.VisitLog
	if err := r.db.Order("visit_time DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list visit logs: %w", err)
	}
	return entries, nil
}

// AllAudit returns every audit record, newest first, for export.
func (r *GORMLogRepository) AllAudit() ([]models.AuditLog, error) {
	var entries []models.AuditLog
	if err := r.db.Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch audit logs: %w", err)
	}
	return entries, nil
}

// AllVisit returns every visit record, newest first, for export.
func (r *GORMLogRepository) AllVisit() ([]models.VisitLog, error) {
	var entries []models.VisitLog
	if err := r.db.Order("visit_time DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch visit logs: %w", err)
	}
	return entries, nil
}
