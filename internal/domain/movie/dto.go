package movie

import (
	"math"
	"time"
)

// UpdateMovieRequest carries partial metadata updates; nil fields keep
// the stored value. Media files are replaced through separate uploads,
// not through this request.
type UpdateMovieRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Duration    *string  `json:"duration"`
	Year        *int     `json:"year"`
	Genre       *string  `json:"genre"`
	Category    *string  `json:"category"`
	Language    *string  `json:"language"`
	Quality     *string  `json:"quality"`
	IMDbRating  *float64 `json:"imdb_rating"`
	IsFeatured  *bool    `json:"is_featured"`
}

type RateRequest struct {
	Rating int `json:"rating" binding:"required"`
}

// MovieResponse is the wire form of a catalog entry. Rating stats are
// computed on read, never stored on the movie row.
type MovieResponse struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	FilePath      string  `json:"file_path"`
	ThumbnailPath string  `json:"thumbnail_path"`
	UploadDate    string  `json:"upload_date"`
	FileSize      int64   `json:"file_size"`
	Duration      string  `json:"duration"`
	Year          int     `json:"year"`
	Genre         string  `json:"genre"`
	Category      string  `json:"category"`
	Language      string  `json:"language"`
	Quality       string  `json:"quality"`
	IMDbRating    float64 `json:"imdb_rating"`
	Views         int64   `json:"views"`
	Downloads     int64   `json:"downloads"`
	IsFeatured    bool    `json:"is_featured"`

	AverageRating *float64 `json:"average_rating,omitempty"`
	RatingCount   *int64   `json:"rating_count,omitempty"`
}

func toResponse(m *Movie) MovieResponse {
	return MovieResponse{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		FilePath:      m.FilePath,
		ThumbnailPath: m.ThumbnailPath,
		UploadDate:    m.UploadDate.UTC().Format(time.RFC3339),
		FileSize:      m.FileSize,
		Duration:      m.Duration,
		Year:          m.Year,
		Genre:         m.Genre,
		Category:      m.Category,
		Language:      m.Language,
		Quality:       m.Quality,
		IMDbRating:    m.IMDbRating,
		Views:         m.Views,
		Downloads:     m.Downloads,
		IsFeatured:    m.IsFeatured,
	}
}

func toResponseWithStats(m *Movie, avg float64, count int64) MovieResponse {
	resp := toResponse(m)
	rounded := roundRating(avg)
	resp.AverageRating = &rounded
	resp.RatingCount = &count
	return resp
}

// roundRating rounds an average rating to one decimal place. Every
// surface that reports an average goes through this so the detail view
// and the rate endpoint never disagree.
func roundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}

func toResponseList(movies []*Movie) []MovieResponse {
	resp := make([]MovieResponse, 0, len(movies))
	for _, m := range movies {
		resp = append(resp, toResponse(m))
	}
	return resp
}
