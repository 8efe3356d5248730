package advertisement

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes mounts the serving and click-tracking endpoints.
func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/ads/:position", h.GetAdsByPosition)
	r.POST("/ads/click/:id", h.TrackClick)
}

// RegisterAdminRoutes mounts the management endpoints; the caller wraps
// the group with the admin auth middleware.
func RegisterAdminRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/ads", h.GetAllAds)
	r.POST("/ads", h.CreateAd)
	r.PUT("/ads/:id", h.UpdateAd)
	r.DELETE("/ads/:id", h.DeleteAd)
	r.GET("/ads/analytics", h.GetAnalytics)
}
