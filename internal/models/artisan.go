package models

import "time"

// Artisan lifecycle statuses as stored in the database (Thai, matching the
// values the frontend sends and filters on).
const (
	StatusDraft     = "ฉบับร่าง"
	StatusPublished = "เผยแพร่"
)

// Artisan is a craftsman profile. Public read endpoints only return rows
// whose status is StatusPublished.
type Artisan struct {
	ArtisanID  uint      `json:"artisan_id" gorm:"column:artisan_id;primaryKey"`
	Fname      string    `json:"fname" gorm:"type:varchar(100)" validate:"required"`
	Lname      string    `json:"lname" gorm:"type:varchar(100)" validate:"required"`
	Nickname   string    `json:"nickname" gorm:"type:varchar(100)"`
	ProfileImg *string   `json:"profile_img" gorm:"type:varchar(500)"`
	// BirthDate is a pointer so a missing date stays NULL instead of an
	// empty string the date column would reject.
	BirthDate *string `json:"birth_date" gorm:"type:date"`
	Address    string    `json:"address" gorm:"type:text"`
	Province   string    `json:"province" gorm:"type:varchar(100)"`
	District   string    `json:"district" gorm:"type:varchar(100)"`
	Phone      string    `json:"phone" gorm:"type:varchar(20)"`
	CategoryID uint      `json:"category_id"`
	Biography  string    `json:"biography" gorm:"type:text"`
	Status     string    `json:"status" gorm:"type:varchar(50)"`
	CreatedBy  *uint     `json:"created_by"`
	UpdatedBy  *uint     `json:"updated_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Artisan) TableName() string { return "artisan" }

// ArtisanSummary is the public listing shape (published artisans joined with
// their category).
type ArtisanSummary struct {
	ArtisanID    uint    `json:"artisan_id"`
	Fname        string  `json:"fname"`
	Lname        string  `json:"lname"`
	ProfileImg   *string `json:"profile_img"`
	CategoryName string  `json:"category_name"`
	Province     string  `json:"province"`
}

// ArtisanAdminRow is the admin listing shape including draft records.
type ArtisanAdminRow struct {
	ArtisanID    uint      `json:"artisan_id"`
	Fname        string    `json:"fname"`
	Lname        string    `json:"lname"`
	Province     string    `json:"province"`
	CategoryName string    `json:"category_name"`
	ProfileImg   *string   `json:"profile_img"`
	Status       string    `json:"status"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ArtisanDetail is a single artisan with its resolved category name.
type ArtisanDetail struct {
	Artisan
	CategoryName string `json:"category_name"`
}

// ArtisanProfileRow is one row of the public profile view: artisan fields
// repeated per gallery image (LEFT JOIN, so gallery columns may be null).
type ArtisanProfileRow struct {
	ArtisanID    uint    `json:"artisan_id"`
	Fname        string  `json:"fname"`
	Lname        string  `json:"lname"`
	ProfileImg   *string `json:"profile_img"`
	District     string  `json:"district"`
	Province     string  `json:"province"`
	Biography    string  `json:"biography"`
	CategoryName string  `json:"category_name"`
	ImageURL     *string `json:"image_url"`
}

// ArtisanStats aggregates the dashboard counters.
type ArtisanStats struct {
	TotalArtisans     int64 `json:"total_artisans"`
	TotalDistricts    int64 `json:"total_districts"`
	DistinctProvinces int64 `json:"distinct_provinces"`
	TotalCategories   int64 `json:"total_categories"`
	TotalDrafts       int64 `json:"total_drafts"`
}

// ProvinceCount is one row of the top-provinces aggregation.
type ProvinceCount struct {
	Province string `json:"province"`
	Count    int64  `json:"count"`
}

// SearchRow is the cross-entity public search result shape.
type SearchRow struct {
	ArtisanID    uint    `json:"artisan_id"`
	Fname        string  `json:"fname"`
	Lname        string  `json:"lname"`
	CategoryName string  `json:"category_name"`
	GalleryID    *uint   `json:"gallery_id"`
	NameGallery  *string `json:"name_gallery"`
	ImageURL     *string `json:"image_url"`
}

// ActivityRow describes the most recent change to an aggregate together with
// the acting user. Age is the humanized Thai form of When, filled in by the
// service layer.
type ActivityRow struct {
	Subject   string    `json:"subject"`
	UserFname string    `json:"user_fname"`
	UserLname string    `json:"user_lname"`
	Age       string    `json:"age"`
	When      time.Time `json:"-"`
}
