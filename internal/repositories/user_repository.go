package repositories

import "artisanhub/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	List(search string) ([]models.UserSummary, error)
	Delete(id uint) error
}
