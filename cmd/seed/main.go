package main

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"moviebox/internal/database"
	"moviebox/internal/domain/admin"
	"moviebox/internal/domain/advertisement"
	"moviebox/internal/domain/movie"
)

func main() {
	db, err := database.Connect("moviebox.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&movie.Movie{},
		&movie.UserRating{},
		&admin.Admin{},
		&advertisement.Advertisement{},
		&advertisement.AdClick{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (children first)
	log.Println("Cleaning old data...")
	for _, table := range []string{"ad_clicks", "advertisements", "user_ratings", "movies", "admins"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("Cleanup of %s failed: %v", table, err)
		}
	}

	// ================== ADMIN ==================
	log.Println("Creating admin...")
	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Password hashing failed:", err)
	}
	if err := db.Create(&admin.Admin{
		Username:     "admin",
		PasswordHash: string(adminHash),
	}).Error; err != nil {
		log.Fatal("Admin seed failed:", err)
	}
	log.Println("Admin created: admin / admin123")

	// ================== MOVIES ==================
	log.Println("Creating movies...")
	movies := []movie.Movie{
		{
			Title:       "Midnight Express Run",
			Description: "A courier takes one last overnight job across the border.",
			FilePath:    "movies/midnight-express-run.mp4",
			Duration:    "2h 10m",
			Year:        2023,
			Genre:       "Thriller",
			Category:    "Hollywood",
			Language:    "English",
			Quality:     "1080p",
			IMDbRating:  7.4,
			IsFeatured:  true,
		},
		{
			Title:       "Monsoon Wedding Season",
			Description: "Three weddings, one storm, and a family secret.",
			FilePath:    "movies/monsoon-wedding-season.mp4",
			Duration:    "2h 35m",
			Year:        2024,
			Genre:       "Drama",
			Category:    "Bollywood",
			Language:    "Hindi",
			Quality:     "1080p",
			IMDbRating:  8.1,
			IsFeatured:  true,
		},
		{
			Title:       "Static",
			Description: "A late-night radio host starts receiving calls from tomorrow.",
			FilePath:    "movies/static.mp4",
			Duration:    "1h 48m",
			Year:        2022,
			Genre:       "Horror",
			Category:    "Hollywood",
			Language:    "English",
			Quality:     "720p",
			IMDbRating:  6.8,
		},
	}
	for i := range movies {
		if err := db.Create(&movies[i]).Error; err != nil {
			log.Fatalf("Movie seed %q failed: %v", movies[i].Title, err)
		}
	}

	// ================== ADS ==================
	log.Println("Creating advertisements...")
	content := `<div class="promo">Watch in HD — subscribe now</div>`
	clickURL := "https://example.com/subscribe"
	endDate := time.Now().AddDate(0, 1, 0)
	ads := []advertisement.Advertisement{
		{
			Title:    "HD Subscription Promo",
			AdType:   advertisement.TypeBanner,
			Position: "header",
			Content:  content,
			ClickURL: &clickURL,
			IsActive: true,
			EndDate:  &endDate,
		},
		{
			Title:    "New Releases Sidebar",
			AdType:   advertisement.TypeSidebar,
			Position: "sidebar",
			Content:  `<div class="promo">Fresh this week</div>`,
			IsActive: true,
		},
	}
	for i := range ads {
		if err := db.Create(&ads[i]).Error; err != nil {
			log.Fatalf("Ad seed %q failed: %v", ads[i].Title, err)
		}
	}

	log.Println("Seed complete.")
}
