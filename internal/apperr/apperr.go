// Package apperr defines the domain error taxonomy and its mapping onto HTTP
// status codes, so handlers never have to string-match database errors.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("ไม่พบข้อมูล")
	// ErrUserNotFound is the generic login failure for an unknown username.
	ErrUserNotFound = errors.New("ไม่พบผู้ใช้")
	// ErrWrongPassword is the generic login failure for a bad password.
	ErrWrongPassword = errors.New("รหัสผ่านผิด")
	// ErrAccountSuspended is returned for a deactivated account.
	ErrAccountSuspended = errors.New("บัญชีถูกระงับ")
	// ErrCategoryRequired is returned when neither a category id nor a name
	// is supplied.
	ErrCategoryRequired = errors.New("กรุณาระบุหมวดหมู่ (category_name หรือ category_id)")
	// ErrForeignKey is returned when a delete is blocked by dependent rows.
	ErrForeignKey = errors.New("ไม่สามารถลบได้ เนื่องจากมีข้อมูลที่เกี่ยวข้อง (เช่น สินค้า หรือ ประวัติ) อยู่ในระบบ")
	// ErrValidation is returned for missing or malformed input.
	ErrValidation = errors.New("กรุณากรอกข้อมูลที่จำเป็นให้ครบถ้วน")
)

// CategoryNotFoundError carries the name that failed to resolve.
type CategoryNotFoundError struct {
	Name string
}

func (e *CategoryNotFoundError) Error() string {
	return fmt.Sprintf("ไม่พบหมวดหมู่: %s", e.Name)
}

// CategoryNotFound builds the resolve-or-fail error for a category name.
func CategoryNotFound(name string) error {
	return &CategoryNotFoundError{Name: name}
}

// IsCategoryNotFound reports whether err is a failed category resolution.
func IsCategoryNotFound(err error) bool {
	var cnf *CategoryNotFoundError
	return errors.As(err, &cnf)
}

// IsForeignKeyViolation recognizes referential-integrity failures from both
// the postgres driver (SQLSTATE 23503) and sqlite used in tests.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23503") ||
		strings.Contains(msg, "foreign key") ||
		strings.Contains(msg, "FOREIGN KEY")
}

// StatusCode maps a domain error to its HTTP status. Unrecognized errors map
// to 500; the generic message for those is the handler's responsibility.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrWrongPassword),
		errors.Is(err, ErrValidation),
		errors.Is(err, ErrCategoryRequired),
		errors.Is(err, ErrForeignKey):
		return http.StatusBadRequest
	case errors.Is(err, ErrAccountSuspended):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
