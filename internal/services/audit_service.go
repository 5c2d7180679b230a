package services

import (
	"bytes"
	"encoding/csv"
	"log"
	"time"

	"artisanhub/internal/models"
	"artisanhub/internal/repositories"
	"artisanhub/pkg/events"
)

// thaiTimestamp is the layout used for exported timestamps.
const thaiTimestamp = "2/1/2006 15:04:05"

// AuditService appends records to the two append-only log streams and
// flattens them into CSV exports. Recording never fails the caller: a logging
// malfunction must not block the primary request.
type AuditService struct {
	logRepo repositories.LogRepository
	events  *events.Client // optional fan-out, may be nil
}

// NewAuditService creates a new AuditService. events may be nil when no
// broker is configured.
func NewAuditService(logRepo repositories.LogRepository, eventsClient *events.Client) *AuditService {
	return &AuditService{
		logRepo: logRepo,
		events:  eventsClient,
	}
}

// Record appends one administrative-action record. Failures are written to
// the operational log only.
func (s *AuditService) Record(event models.LogEvent) {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	if event.ActionType == "" {
		event.ActionType = "UNKNOWN"
	}
	if err := s.logRepo.AppendAudit(&models.AuditLog{LogData: event}); err != nil {
		log.Printf("Logging Error: %v", err)
		return
	}
	if s.events != nil {
		if err := s.events.PublishAuditEvent(event); err != nil {
			log.Printf("Warning: failed to publish audit event: %v", err)
		}
	}
}

// RecordVisit appends one anonymous page-visit record, same contract as
// Record.
func (s *AuditService) RecordVisit(event models.VisitEvent) {
	if err := s.logRepo.AppendVisit(&models.VisitLog{LogData: event}); err != nil {
		log.Printf("Visit Log Error: %v", err)
	}
}

// ListAudit returns the newest audit entries up to limit.
func (s *AuditService) ListAudit(limit int) ([]models.AuditLog, error) {
	return s.logRepo.ListAudit(limit)
}

// ListVisit returns the newest visit entries up to limit.
func (s *AuditService) ListVisit(limit int) ([]models.VisitLog, error) {
	return s.logRepo.ListVisit(limit)
}

// writeCSV renders header + rows with CRLF line endings and a UTF-8 BOM so
// spreadsheet tools display Thai text correctly. encoding/csv handles quote
// doubling and wrapping of fields containing commas, quotes or newlines.
func writeCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("\uFEFF")
	w := csv.NewWriter(&buf)
	w.UseCRLF = true
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportVisitCSV flattens every visit record into a CSV body.
func (s *AuditService) ExportVisitCSV() ([]byte, error) {
	entries, err := s.logRepo.AllVisit()
	if err != nil {
		return nil, err
	}
	header := []string{"visit_time", "ip", "path", "method", "user_agent", "referrer", "lang"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.VisitTime.Format(thaiTimestamp),
			e.LogData.IP,
			e.LogData.Path,
			e.LogData.Method,
			e.LogData.UserAgent,
			e.LogData.Referrer,
			e.LogData.Lang,
		})
	}
	return writeCSV(header, rows)
}

// ExportAuditCSV flattens every audit record into a CSV body.
func (s *AuditService) ExportAuditCSV() ([]byte, error) {
	entries, err := s.logRepo.AllAudit()
	if err != nil {
		return nil, err
	}
	header := []string{"timestamp", "action_type", "path", "http_method", "ip", "user_agent", "message"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		ts := e.LogData.CreatedAt
		if ts.IsZero() {
			ts = e.CreatedAt
		}
		rows = append(rows, []string{
			ts.Format(thaiTimestamp),
			e.LogData.ActionType,
			e.LogData.Path,
			e.LogData.HTTPMethod,
			e.LogData.IP,
			e.LogData.UserAgent,
			e.LogData.Message,
		})
	}
	return writeCSV(header, rows)
}
