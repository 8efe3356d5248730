package advertisement

import (
	"strings"
	"time"
)

// CreateAdRequest is sent by the admin panel to create an advertisement.
// Dates arrive as ISO-8601 strings; empty means unbounded on that side.
type CreateAdRequest struct {
	Title     string  `json:"title" binding:"required"`
	AdType    string  `json:"ad_type" binding:"required"`
	Position  string  `json:"position" binding:"required"`
	Content   string  `json:"content" binding:"required"`
	ImageURL  *string `json:"image_url"`
	ClickURL  *string `json:"click_url"`
	IsActive  *bool   `json:"is_active"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
}

// UpdateAdRequest carries partial updates: nil / empty fields keep the
// stored value, nothing is ever nulled by omission.
type UpdateAdRequest struct {
	Title     *string `json:"title"`
	AdType    *string `json:"ad_type"`
	Position  *string `json:"position"`
	Content   *string `json:"content"`
	ImageURL  *string `json:"image_url"`
	ClickURL  *string `json:"click_url"`
	IsActive  *bool   `json:"is_active"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
}

// AdResponse is the wire form of an advertisement, timestamps in RFC3339.
type AdResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	AdType      string  `json:"ad_type"`
	Position    string  `json:"position"`
	Content     string  `json:"content"`
	ImageURL    *string `json:"image_url"`
	ClickURL    *string `json:"click_url"`
	IsActive    bool    `json:"is_active"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	CTR         float64 `json:"ctr"`
	CreatedAt   string  `json:"created_at"`
}

// AdPerformance is one row of the analytics breakdown.
type AdPerformance struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	CTR         float64 `json:"ctr"`
}

// Analytics aggregates counters over the full ad set. AverageCTR is the
// unweighted mean of per-ad CTRs, not total clicks over total impressions.
type Analytics struct {
	TotalAds         int             `json:"total_ads"`
	ActiveAds        int             `json:"active_ads"`
	TotalImpressions int64           `json:"total_impressions"`
	TotalClicks      int64           `json:"total_clicks"`
	AverageCTR       float64         `json:"average_ctr"`
	AdsPerformance   []AdPerformance `json:"ads_performance"`
}

func toResponse(a *Advertisement) AdResponse {
	resp := AdResponse{
		ID:          a.ID,
		Title:       a.Title,
		AdType:      a.AdType,
		Position:    a.Position,
		Content:     a.Content,
		ImageURL:    a.ImageURL,
		ClickURL:    a.ClickURL,
		IsActive:    a.IsActive,
		Impressions: a.Impressions,
		Clicks:      a.Clicks,
		CTR:         a.CTR(),
		CreatedAt:   a.CreatedAt.UTC().Format(time.RFC3339),
	}
	if a.StartDate != nil {
		s := a.StartDate.UTC().Format(time.RFC3339)
		resp.StartDate = &s
	}
	if a.EndDate != nil {
		s := a.EndDate.UTC().Format(time.RFC3339)
		resp.EndDate = &s
	}
	return resp
}

func toResponseList(ads []*Advertisement) []AdResponse {
	resp := make([]AdResponse, 0, len(ads))
	for _, a := range ads {
		resp = append(resp, toResponse(a))
	}
	return resp
}

// windowDateLayouts mirror the forms the old admin panel sends: full
// RFC3339, zone-less date-time, and bare date.
var windowDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseWindowDate turns an ISO-8601 string into a window bound. Empty
// input means unbounded (nil); anything non-empty that fails to parse is
// a validation error.
func parseWindowDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range windowDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, ErrInvalidDate
}
