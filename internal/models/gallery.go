package models

import "time"

// GalleryImage belongs to exactly one artisan and records which user
// uploaded it.
type GalleryImage struct {
	GalleryID   uint      `json:"gallery_id" gorm:"column:gallery_id;primaryKey"`
	ArtisanID   uint      `json:"artisan_id" validate:"required"`
	ImageURL    string    `json:"image_url" gorm:"type:varchar(500)"`
	NameGallery string    `json:"name_gallery" gorm:"type:varchar(255)"`
	Caption     *string   `json:"caption" gorm:"type:text"`
	UserID      *uint     `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (GalleryImage) TableName() string { return "artisan_gallery" }

// GalleryAdminRow joins each image with its artisan and the uploading user.
type GalleryAdminRow struct {
	GalleryID    uint    `json:"gallery_id"`
	ImageURL     string  `json:"image_url"`
	NameGallery  string  `json:"name_gallery"`
	Caption      *string `json:"caption"`
	ArtisanFname string  `json:"artisan_fname"`
	ArtisanLname string  `json:"artisan_lname"`
	UserFname    *string `json:"user_fname"`
	UserLname    *string `json:"user_lname"`
}
