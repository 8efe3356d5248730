package advertisement

import (
	"context"
	"math"
	"time"

	"github.com/mssola/useragent"
)

// Service holds the advertisement business logic. The clock is a field
// so window checks are deterministic in tests.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// ServeByPosition returns the ads currently eligible for a placement
// slot and counts an impression for each one returned. Counting happens
// on serve, not on render: querying the same position twice counts two
// impressions even if the page drew the ad once. That matches how the
// admin panel has always reported reach.
func (s *Service) ServeByPosition(ctx context.Context, position string) ([]*Advertisement, error) {
	ads, err := s.repo.ListByPosition(ctx, position)
	if err != nil {
		return nil, err
	}

	now := s.now()
	served := make([]*Advertisement, 0, len(ads))
	for _, ad := range ads {
		if !ad.IsCurrentlyActive(now) {
			continue
		}
		if err := s.repo.IncrementImpressions(ctx, ad.ID); err != nil {
			return nil, err
		}
		ad.Impressions++ // reflect the bump in the response
		served = append(served, ad)
	}
	return served, nil
}

// TrackClick counts a click and writes the audit row, then returns the
// ad so the handler can hand back its click_url for the redirect.
func (s *Service) TrackClick(ctx context.Context, id int64, ip, rawUA string) (*Advertisement, error) {
	ad, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	browser, os, device := parseUserAgent(rawUA)
	click := &AdClick{
		AdvertisementID: ad.ID,
		IPAddress:       ip,
		UserAgent:       rawUA,
		Browser:         browser,
		OS:              os,
		Device:          device,
	}
	if err := s.repo.RecordClick(ctx, click); err != nil {
		return nil, err
	}

	ad.Clicks++
	return ad, nil
}

// ListAll returns every ad for the admin panel, newest first.
func (s *Service) ListAll(ctx context.Context) ([]*Advertisement, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) Create(ctx context.Context, req *CreateAdRequest) (*Advertisement, error) {
	startDate, err := parseWindowDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseWindowDate(req.EndDate)
	if err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	ad := &Advertisement{
		Title:     req.Title,
		AdType:    req.AdType,
		Position:  req.Position,
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		ClickURL:  req.ClickURL,
		IsActive:  isActive,
		StartDate: startDate,
		EndDate:   endDate,
	}
	if err := s.repo.Create(ctx, ad); err != nil {
		return nil, err
	}
	return ad, nil
}

// Update applies partial-update semantics: a field overwrites the
// stored value only when present in the request.
func (s *Service) Update(ctx context.Context, id int64, req *UpdateAdRequest) (*Advertisement, error) {
	ad, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		ad.Title = *req.Title
	}
	if req.AdType != nil {
		ad.AdType = *req.AdType
	}
	if req.Position != nil {
		ad.Position = *req.Position
	}
	if req.Content != nil {
		ad.Content = *req.Content
	}
	if req.ImageURL != nil {
		ad.ImageURL = req.ImageURL
	}
	if req.ClickURL != nil {
		ad.ClickURL = req.ClickURL
	}
	if req.IsActive != nil {
		ad.IsActive = *req.IsActive
	}
	if req.StartDate != "" {
		startDate, err := parseWindowDate(req.StartDate)
		if err != nil {
			return nil, err
		}
		ad.StartDate = startDate
	}
	if req.EndDate != "" {
		endDate, err := parseWindowDate(req.EndDate)
		if err != nil {
			return nil, err
		}
		ad.EndDate = endDate
	}

	if err := s.repo.Update(ctx, ad); err != nil {
		return nil, err
	}
	return ad, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Analytics aggregates over the full ad set. average_ctr is the
// unweighted mean of each ad's own CTR, not total clicks over total
// impressions. Reports have always read this way, so it stays.
func (s *Service) Analytics(ctx context.Context) (*Analytics, error) {
	ads, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	analytics := &Analytics{
		AdsPerformance: make([]AdPerformance, 0, len(ads)),
	}

	var ctrSum float64
	for _, ad := range ads {
		analytics.TotalAds++
		if ad.IsCurrentlyActive(now) {
			analytics.ActiveAds++
		}
		analytics.TotalImpressions += ad.Impressions
		analytics.TotalClicks += ad.Clicks
		ctrSum += ad.CTR()

		analytics.AdsPerformance = append(analytics.AdsPerformance, AdPerformance{
			ID:          ad.ID,
			Title:       ad.Title,
			Impressions: ad.Impressions,
			Clicks:      ad.Clicks,
			CTR:         ad.CTR(),
		})
	}

	if analytics.TotalAds > 0 {
		analytics.AverageCTR = math.Round(ctrSum/float64(analytics.TotalAds)*100) / 100
	}
	return analytics, nil
}

func parseUserAgent(uaString string) (browser, os, device string) {
	if uaString == "" {
		return "Unknown", "Unknown", "Unknown"
	}

	ua := useragent.New(uaString)
	name, _ := ua.Browser()
	if name == "" {
		name = "Unknown"
	}
	os = ua.OS()
	if os == "" {
		os = "Unknown"
	}
	device = "Desktop"
	if ua.Mobile() {
		device = "Mobile"
	} else if ua.Bot() {
		device = "Bot"
	}

	return name, os, device
}
