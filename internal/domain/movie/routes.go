package movie

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes mounts the catalog browsing, playback, and rating
// endpoints.
func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/movies", h.ListMovies)
	r.GET("/movies/featured", h.GetFeatured)
	r.GET("/movies/:id", h.GetMovie)
	r.GET("/movies/:id/stream", h.Stream)
	r.GET("/movies/:id/download", h.Download)
	r.GET("/movies/:id/thumbnail", h.Thumbnail)
	r.POST("/movies/:id/view", h.CountView)
	r.POST("/movies/:id/download", h.CountDownload)
	r.POST("/movies/:id/rate", h.RateMovie)
}

// RegisterAdminRoutes mounts the management endpoints; the caller wraps
// the group with the admin auth middleware.
func RegisterAdminRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/movies", h.CreateMovie)
	r.PUT("/movies/:id", h.UpdateMovie)
	r.DELETE("/movies/:id", h.DeleteMovie)
}
