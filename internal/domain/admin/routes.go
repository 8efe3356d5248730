package admin

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes mounts login, the only unauthenticated admin
// endpoint.
func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/admin/login", h.Login)
}

// RegisterProtectedRoutes mounts the session-scoped endpoints; the
// caller wraps the group with Auth.
func RegisterProtectedRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/me", h.Me)
	r.POST("/change-password", h.ChangePassword)
}
