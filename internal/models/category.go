package models

import "time"

// Category is a named grouping of artisans.
type Category struct {
	CategoryID   uint      `json:"category_id" gorm:"column:category_id;primaryKey"`
	CategoryName string    `json:"category_name" gorm:"uniqueIndex;type:varchar(255)" validate:"required"`
	Description  string    `json:"description" gorm:"type:text"`
	UpdatedBy    *uint     `json:"updated_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Category) TableName() string { return "category" }

// CategoryWithCount is the public listing shape including how many artisans
// belong to the category.
type CategoryWithCount struct {
	CategoryID   uint   `json:"category_id"`
	CategoryName string `json:"category_name"`
	Description  string `json:"description"`
	ArtisanCount int64  `json:"artisan_count"`
}

// CategoryRef identifies a category either directly by id or by name that
// still has to be resolved. Exactly one of the two should be set.
type CategoryRef struct {
	ID   uint
	Name string
}
