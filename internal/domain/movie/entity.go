package movie

import "time"

// Movie is one catalog entry. file_path and thumbnail_path are relative
// to the media directory. views and downloads are bumped only through
// store-side atomic updates.
type Movie struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	FilePath      string    `gorm:"column:file_path" json:"file_path"`
	ThumbnailPath string    `gorm:"column:thumbnail_path" json:"thumbnail_path"`
	UploadDate    time.Time `gorm:"column:upload_date;autoCreateTime" json:"upload_date"`
	FileSize      int64     `gorm:"column:file_size" json:"file_size"`
	Duration      string    `json:"duration"` // display form, e.g. "2h 30m"

	Year       int     `json:"year"`
	Genre      string  `json:"genre"`
	Category   string  `json:"category"` // Bollywood, Hollywood, ...
	Language   string  `json:"language"`
	Quality    string  `json:"quality"` // 720p, 1080p, ...
	IMDbRating float64 `gorm:"column:imdb_rating" json:"imdb_rating"`

	Views      int64 `json:"views"`
	Downloads  int64 `json:"downloads"`
	IsFeatured bool  `gorm:"column:is_featured" json:"is_featured"`
}

func (Movie) TableName() string { return "movies" }

// UserRating is one viewer's star rating, keyed by client IP so a viewer
// can revise their rating without piling up rows.
type UserRating struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	MovieID   int64     `gorm:"column:movie_id;index" json:"movie_id"`
	Rating    int       `json:"rating"`
	IPAddress string    `gorm:"column:ip_address" json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
}

func (UserRating) TableName() string { return "user_ratings" }
