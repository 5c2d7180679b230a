package models

import "time"

// Award belongs to one artisan; FileURL may reference an image or a PDF.
type Award struct {
	AwardID      uint      `json:"award_id" gorm:"column:award_id;primaryKey"`
	ArtisanID    uint      `json:"artisan_id" validate:"required"`
	AwardTitle   string    `json:"award_title" gorm:"type:varchar(255)" validate:"required"`
	FileURL      *string   `json:"file_url" gorm:"type:varchar(500)"`
	ReceivedDate *string   `json:"received_date" gorm:"type:date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Award) TableName() string { return "artisan_award" }
