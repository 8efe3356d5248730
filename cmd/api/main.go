package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"moviebox/internal/config"
	"moviebox/internal/database"
	"moviebox/internal/domain/admin"
	"moviebox/internal/domain/advertisement"
	"moviebox/internal/domain/movie"
	"moviebox/internal/middleware"
	jwtsvc "moviebox/internal/pkg/jwt"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(
		&movie.Movie{},
		&movie.UserRating{},
		&admin.Admin{},
		&advertisement.Advertisement{},
		&advertisement.AdClick{},
	); err != nil {
		log.Fatal(err)
	}

	adminRepo := admin.NewRepository(db)
	movieRepo := movie.NewRepository(db)
	adRepo := advertisement.NewRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	adminService := admin.NewService(adminRepo, j)
	adminHandler := admin.NewHandler(adminService)

	movieService := movie.NewService(movieRepo, cfg.MediaDir, cfg.MaxUploadSize)
	movieHandler := movie.NewHandler(movieService)

	adService := advertisement.NewService(adRepo)
	adHandler := advertisement.NewHandler(adService)

	if err := adminService.EnsureDefaultAdmin(context.Background()); err != nil {
		log.Fatal(err)
	}

	r := gin.Default()
	r.MaxMultipartMemory = 32 << 20
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	api := r.Group("/api")
	{
		// public
		movie.RegisterPublicRoutes(api, movieHandler)
		advertisement.RegisterPublicRoutes(api, adHandler)
		admin.RegisterPublicRoutes(api, adminHandler)

		// protected admin panel
		protected := api.Group("/admin")
		protected.Use(admin.Auth(j))
		{
			admin.RegisterProtectedRoutes(protected, adminHandler)
			movie.RegisterAdminRoutes(protected, movieHandler)
			advertisement.RegisterAdminRoutes(protected, adHandler)
		}
	}

	r.NoRoute(middleware.SPAFallback(cfg.StaticDir))

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
