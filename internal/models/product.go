package models

import "time"

// Product is a craft item offered by an artisan. Prices are kept as a free
// form range string (e.g. "100-500 บาท") rather than a number.
type Product struct {
	ProductID   uint      `json:"product_id" gorm:"column:product_id;primaryKey"`
	ArtisanID   uint      `json:"artisan_id" validate:"required"`
	ProductName string    `json:"product_name" gorm:"type:varchar(255)" validate:"required"`
	PriceRange  string    `json:"price_range" gorm:"type:varchar(100)" validate:"required"`
	Description string    `json:"description" gorm:"type:text"`
	ProductImg  string    `json:"product_img" gorm:"type:varchar(500)"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Product) TableName() string { return "product" }

// ProductRow is the public listing shape joined with the owning artisan.
type ProductRow struct {
	Product
	Fname string `json:"fname"`
	Lname string `json:"lname"`
}
