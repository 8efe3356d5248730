package advertisement

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:ads_test_%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(&Advertisement{}, &AdClick{}); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	// Serialize writes at the pool so concurrent increments never hit
	// sqlite's single-writer lock in tests.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return NewService(NewRepository(db)), db
}

func createTestAd(t *testing.T, svc *Service, req *CreateAdRequest) *Advertisement {
	t.Helper()
	ad, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	return ad
}

func TestServeByPositionCountsImpressions(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	active := true
	ad := createTestAd(t, svc, &CreateAdRequest{
		Title:    "Promo",
		AdType:   TypeBanner,
		Position: "header",
		Content:  "<div/>",
		IsActive: &active,
	})

	served, err := svc.ServeByPosition(ctx, "header")
	if err != nil {
		t.Fatalf("ServeByPosition returned error: %v", err)
	}
	if len(served) != 1 {
		t.Fatalf("expected 1 served ad, got %d", len(served))
	}
	if served[0].ID != ad.ID {
		t.Fatalf("expected ad %d, got %d", ad.ID, served[0].ID)
	}
	if served[0].Impressions != 1 {
		t.Fatalf("expected 1 impression in response, got %d", served[0].Impressions)
	}

	// Serving counts, not rendering: a second query counts again.
	if _, err := svc.ServeByPosition(ctx, "header"); err != nil {
		t.Fatalf("second ServeByPosition returned error: %v", err)
	}
	stored, err := svc.repo.GetByID(ctx, ad.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if stored.Impressions != 2 {
		t.Fatalf("expected 2 stored impressions, got %d", stored.Impressions)
	}
}

func TestServeByPositionFiltersFlagAndWindow(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	inactive := false
	createTestAd(t, svc, &CreateAdRequest{
		Title: "Off", AdType: TypeBanner, Position: "header", Content: "<div/>", IsActive: &inactive,
	})
	createTestAd(t, svc, &CreateAdRequest{
		Title: "Future", AdType: TypeBanner, Position: "header", Content: "<div/>",
		StartDate: time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
	})
	createTestAd(t, svc, &CreateAdRequest{
		Title: "Expired", AdType: TypeBanner, Position: "header", Content: "<div/>",
		EndDate: time.Now().Add(-24 * time.Hour).UTC().Format(time.RFC3339),
	})
	createTestAd(t, svc, &CreateAdRequest{
		Title: "Elsewhere", AdType: TypeBanner, Position: "footer", Content: "<div/>",
	})
	live := createTestAd(t, svc, &CreateAdRequest{
		Title: "Live", AdType: TypeBanner, Position: "header", Content: "<div/>",
	})

	served, err := svc.ServeByPosition(ctx, "header")
	if err != nil {
		t.Fatalf("ServeByPosition returned error: %v", err)
	}
	if len(served) != 1 || served[0].ID != live.ID {
		t.Fatalf("expected only the live ad, got %d ads", len(served))
	}
}

func TestTrackClick(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	clickURL := "https://example.com/promo"
	ad, err := svc.Create(ctx, &CreateAdRequest{
		Title: "Promo", AdType: TypeBanner, Position: "header", Content: "<div/>",
		ClickURL: &clickURL,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	ua := "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
	clicked, err := svc.TrackClick(ctx, ad.ID, "203.0.113.7", ua)
	if err != nil {
		t.Fatalf("TrackClick returned error: %v", err)
	}
	if clicked.Clicks != 1 {
		t.Fatalf("expected 1 click, got %d", clicked.Clicks)
	}
	if clicked.ClickURL == nil || *clicked.ClickURL != clickURL {
		t.Fatalf("expected click_url %q, got %v", clickURL, clicked.ClickURL)
	}

	var rows []AdClick
	if err := db.Where("advertisement_id = ?", ad.ID).Find(&rows).Error; err != nil {
		t.Fatalf("failed to load click rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 click row, got %d", len(rows))
	}
	if rows[0].IPAddress != "203.0.113.7" {
		t.Fatalf("expected recorded ip, got %q", rows[0].IPAddress)
	}
	if rows[0].Browser == "Unknown" || rows[0].OS == "Unknown" {
		t.Fatalf("expected parsed UA, got browser=%q os=%q", rows[0].Browser, rows[0].OS)
	}
	if rows[0].Device != "Desktop" {
		t.Fatalf("expected Desktop device, got %q", rows[0].Device)
	}
}

func TestTrackClickUnknownAd(t *testing.T) {
	svc, _ := setupTestService(t)

	_, err := svc.TrackClick(context.Background(), 12345, "203.0.113.7", "")
	if !errors.Is(err, ErrAdNotFound) {
		t.Fatalf("expected ErrAdNotFound, got %v", err)
	}
}

func TestConcurrentImpressionsNoLostUpdates(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	ad := createTestAd(t, svc, &CreateAdRequest{
		Title: "Busy", AdType: TypeBanner, Position: "header", Content: "<div/>",
	})

	const n = 25
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if err := svc.repo.IncrementImpressions(ctx, ad.ID); err != nil {
				t.Errorf("IncrementImpressions returned error: %v", err)
			}
		}()
	}
	wg.Wait()

	stored, err := svc.repo.GetByID(ctx, ad.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if stored.Impressions != n {
		t.Fatalf("expected %d impressions, got %d (lost updates)", n, stored.Impressions)
	}
}

func TestCreateDefaultsAndDates(t *testing.T) {
	svc, _ := setupTestService(t)

	ad := createTestAd(t, svc, &CreateAdRequest{
		Title: "Promo", AdType: TypePopup, Position: "modal", Content: "<div/>",
		StartDate: "2025-06-01T00:00:00Z",
		EndDate:   "2025-07-01T00:00:00Z",
	})

	if !ad.IsActive {
		t.Fatal("is_active should default to true")
	}
	if ad.StartDate == nil || !ad.StartDate.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start_date: %v", ad.StartDate)
	}
	if ad.EndDate == nil {
		t.Fatal("end_date should be set")
	}

	_, err := svc.Create(context.Background(), &CreateAdRequest{
		Title: "Bad", AdType: TypeBanner, Position: "header", Content: "<div/>",
		StartDate: "June 1st",
	})
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestUpdateKeepsOmittedFields(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	ad := createTestAd(t, svc, &CreateAdRequest{
		Title: "Promo", AdType: TypeBanner, Position: "header", Content: "<div/>",
	})

	newTitle := "New"
	updated, err := svc.Update(ctx, ad.ID, &UpdateAdRequest{Title: &newTitle})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Title != "New" {
		t.Fatalf("expected updated title, got %q", updated.Title)
	}
	if updated.Position != "header" {
		t.Fatalf("omitted position must be retained, got %q", updated.Position)
	}
	if updated.AdType != TypeBanner {
		t.Fatalf("omitted ad_type must be retained, got %q", updated.AdType)
	}

	_, err = svc.Update(ctx, 9999, &UpdateAdRequest{Title: &newTitle})
	if !errors.Is(err, ErrAdNotFound) {
		t.Fatalf("expected ErrAdNotFound, got %v", err)
	}
}

func TestDeleteCascadesClicks(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	ad := createTestAd(t, svc, &CreateAdRequest{
		Title: "Promo", AdType: TypeBanner, Position: "header", Content: "<div/>",
	})
	if _, err := svc.TrackClick(ctx, ad.ID, "203.0.113.7", ""); err != nil {
		t.Fatalf("TrackClick returned error: %v", err)
	}
	if _, err := svc.TrackClick(ctx, ad.ID, "203.0.113.8", ""); err != nil {
		t.Fatalf("TrackClick returned error: %v", err)
	}

	if err := svc.Delete(ctx, ad.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	var clickCount int64
	if err := db.Model(&AdClick{}).Where("advertisement_id = ?", ad.ID).Count(&clickCount).Error; err != nil {
		t.Fatalf("failed to count click rows: %v", err)
	}
	if clickCount != 0 {
		t.Fatalf("expected click rows to be cascade-deleted, found %d", clickCount)
	}

	if err := svc.Delete(ctx, ad.ID); !errors.Is(err, ErrAdNotFound) {
		t.Fatalf("expected ErrAdNotFound on second delete, got %v", err)
	}
}

func TestAnalyticsEmpty(t *testing.T) {
	svc, _ := setupTestService(t)

	analytics, err := svc.Analytics(context.Background())
	if err != nil {
		t.Fatalf("Analytics returned error: %v", err)
	}
	if analytics.TotalAds != 0 {
		t.Fatalf("expected total_ads 0, got %d", analytics.TotalAds)
	}
	if analytics.AverageCTR != 0 {
		t.Fatalf("expected average_ctr 0, got %f", analytics.AverageCTR)
	}
	if analytics.AdsPerformance == nil || len(analytics.AdsPerformance) != 0 {
		t.Fatalf("expected empty performance list, got %v", analytics.AdsPerformance)
	}
}

func TestAnalyticsMeanOfPerAdCTRs(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	adA := createTestAd(t, svc, &CreateAdRequest{
		Title: "A", AdType: TypeBanner, Position: "header", Content: "<div/>",
	})
	adB := createTestAd(t, svc, &CreateAdRequest{
		Title: "B", AdType: TypeSidebar, Position: "sidebar", Content: "<div/>",
	})

	// A: 20 impressions, 5 clicks -> 25%. B: untouched -> 0%.
	if err := db.Model(&Advertisement{}).Where("id = ?", adA.ID).
		Updates(map[string]any{"impressions": 20, "clicks": 5}).Error; err != nil {
		t.Fatalf("failed to prime counters: %v", err)
	}

	analytics, err := svc.Analytics(ctx)
	if err != nil {
		t.Fatalf("Analytics returned error: %v", err)
	}
	if analytics.TotalAds != 2 {
		t.Fatalf("expected 2 ads, got %d", analytics.TotalAds)
	}
	if analytics.ActiveAds != 2 {
		t.Fatalf("expected 2 active ads, got %d", analytics.ActiveAds)
	}
	if analytics.TotalImpressions != 20 || analytics.TotalClicks != 5 {
		t.Fatalf("unexpected totals: %d impressions %d clicks",
			analytics.TotalImpressions, analytics.TotalClicks)
	}
	// Mean of per-ad ratios: (25 + 0) / 2, not 5/20*100.
	if analytics.AverageCTR != 12.5 {
		t.Fatalf("expected average_ctr 12.5, got %f", analytics.AverageCTR)
	}
	if len(analytics.AdsPerformance) != 2 {
		t.Fatalf("expected 2 performance rows, got %d", len(analytics.AdsPerformance))
	}
	for _, row := range analytics.AdsPerformance {
		if row.ID == adB.ID && row.CTR != 0 {
			t.Fatalf("expected 0 CTR for unserved ad, got %f", row.CTR)
		}
	}
}
