package models

import "time"

// Role values stored in the users table.
const (
	RoleSuperAdmin = "super_admin"
	RoleEditor     = "editor"
)

// RoleDisplayName maps a stored role to the Thai label shown in the admin UI.
// Unknown roles fall back to the raw value.
func RoleDisplayName(role string) string {
	switch role {
	case RoleSuperAdmin:
		return "แอดมิน"
	case RoleEditor:
		return "ผู้แก้ไข"
	default:
		return role
	}
}

// User represents a back-office account.
type User struct {
	UserID      uint    `json:"user_id" gorm:"column:user_id;primaryKey"`
	Username    string  `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Password    string  `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"`
	ProfileImg  *string `json:"profile_img" gorm:"type:varchar(500)"`
	Fname       string  `json:"fname" gorm:"type:varchar(100)" validate:"required"`
	Lname       string  `json:"lname" gorm:"type:varchar(100)" validate:"required"`
	Role        string  `json:"role" gorm:"type:varchar(50)" validate:"required,oneof=super_admin editor"`
	PhoneNumber string  `json:"phone_number" gorm:"type:varchar(20)"`
	// IsActive uses 0/1 rather than bool to match the legacy schema.
	IsActive  int       `json:"is_active" gorm:"default:1"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the legacy table name.
func (User) TableName() string { return "users" }

// UserSummary is the listing shape returned by admin user queries; it never
// carries the password hash.
type UserSummary struct {
	UserID      uint    `json:"user_id"`
	Username    string  `json:"username"`
	Fname       string  `json:"fname"`
	Lname       string  `json:"lname"`
	ProfileImg  *string `json:"profile_img"`
	PhoneNumber string  `json:"phone_number"`
	Role        string  `json:"role"`
}
