package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// LogEvent is the canonical audit payload. Every administrative-action log
// goes through this one shape regardless of call site.
type LogEvent struct {
	IP         string    `json:"ip"`
	Path       string    `json:"path"`
	Message    string    `json:"message"`
	Referrer   string    `json:"referrer"`
	CreatedAt  time.Time `json:"created_at"`
	UserAgent  string    `json:"user_agent"`
	ActionType string    `json:"action_type"`
	HTTPMethod string    `json:"http_method"`
	UserID     *uint     `json:"user_id"`
}

// Value serializes the event to JSON for the log_data column.
func (e LogEvent) Value() (driver.Value, error) {
	return json.Marshal(e)
}

// Scan deserializes the log_data column back into the event.
func (e *LogEvent) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, e)
	case string:
		return json.Unmarshal([]byte(v), e)
	case nil:
		return nil
	default:
		return fmt.Errorf("unsupported log_data type %T", value)
	}
}

// VisitEvent is the canonical payload of an anonymous page-visit log.
type VisitEvent struct {
	IP        string `json:"ip"`
	UserAgent string `json:"user_agent"`
	Path      string `json:"path"`
	Method    string `json:"method"`
	Referrer  string `json:"referrer"`
	Lang      string `json:"lang"`
}

// Value serializes the event to JSON for the log_data column.
func (e VisitEvent) Value() (driver.Value, error) {
	return json.Marshal(e)
}

// Scan deserializes the log_data column back into the event.
func (e *VisitEvent) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, e)
	case string:
		return json.Unmarshal([]byte(v), e)
	case nil:
		return nil
	default:
		return fmt.Errorf("unsupported log_data type %T", value)
	}
}

// AuditLog is an immutable administrative-action record. There is no update
// or delete path.
type AuditLog struct {
	LogID     uint      `json:"log_id" gorm:"column:log_id;primaryKey"`
	LogData   LogEvent  `json:"log_data" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

func (AuditLog) TableName() string { return "audit_log" }

// VisitLog is an immutable anonymous page-visit record.
type VisitLog struct {
	VisitID   uint       `json:"visit_id" gorm:"column:visit_id;primaryKey"`
	LogData   VisitEvent `json:"log_data" gorm:"type:text"`
	VisitTime time.Time  `json:"visit_time" gorm:"autoCreateTime"`
}

func (VisitLog) TableName() string { return "web_page_visit" }
