package advertisement

import "time"

// AdType values the front end knows how to render.
const (
	TypeBanner  = "banner"
	TypePopup   = "popup"
	TypeSidebar = "sidebar"
)

// Advertisement is a scheduled creative bound to a placement slot.
// Impressions and clicks are bumped only through store-side atomic
// updates (see Repository), never by saving a modified struct.
type Advertisement struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	Title       string     `json:"title"`
	AdType      string     `gorm:"column:ad_type" json:"ad_type"`
	Position    string     `gorm:"index" json:"position"`
	Content     string     `json:"content"`
	ImageURL    *string    `gorm:"column:image_url" json:"image_url,omitempty"`
	ClickURL    *string    `gorm:"column:click_url" json:"click_url,omitempty"`
	IsActive    bool       `json:"is_active"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Impressions int64      `json:"impressions"`
	Clicks      int64      `json:"clicks"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (Advertisement) TableName() string { return "advertisements" }

// IsCurrentlyActive reports whether the ad may be served at the given
// instant: the flag must be on and now must fall inside the activation
// window. A nil bound means unbounded on that side.
func (a *Advertisement) IsCurrentlyActive(now time.Time) bool {
	if !a.IsActive {
		return false
	}
	if a.StartDate != nil && now.Before(*a.StartDate) {
		return false
	}
	if a.EndDate != nil && now.After(*a.EndDate) {
		return false
	}
	return true
}

// CTR returns the click-through rate as a percentage, 0 when the ad has
// never been served.
func (a *Advertisement) CTR() float64 {
	if a.Impressions == 0 {
		return 0
	}
	return float64(a.Clicks) / float64(a.Impressions) * 100
}

// AdClick is an audit row written once per tracked click, never updated.
// It references its advertisement by id only; deleting the ad removes
// its click rows in the same transaction.
type AdClick struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	AdvertisementID int64     `gorm:"column:advertisement_id;index" json:"advertisement_id"`
	IPAddress       string    `gorm:"column:ip_address" json:"ip_address"`
	UserAgent       string    `gorm:"column:user_agent" json:"user_agent"`
	Browser         string    `json:"browser"`
	OS              string    `json:"os"`
	Device          string    `json:"device"`
	CreatedAt       time.Time `json:"created_at"`
}

func (AdClick) TableName() string { return "ad_clicks" }
