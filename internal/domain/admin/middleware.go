package admin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"moviebox/internal/pkg/jwt"
	"moviebox/internal/pkg/response"
)

// Auth validates the Bearer token and injects the authenticated admin id
// into the request context. Every /admin/* route except login sits
// behind it.
func Auth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Error(c, http.StatusUnauthorized, "Authorization header must be 'Bearer <token>'")
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("admin_id", claims.AdminID)
		c.Set("admin_username", claims.Username)
		c.Next()
	}
}

// AdminID extracts the authenticated admin id set by Auth. Returns 0 and
// writes 401 when missing.
func AdminID(c *gin.Context) int64 {
	id, exists := c.Get("admin_id")
	if !exists {
		response.Error(c, http.StatusUnauthorized, "Authentication required")
		return 0
	}
	v, ok := id.(int64)
	if !ok || v == 0 {
		response.Error(c, http.StatusUnauthorized, "Authentication required")
		return 0
	}
	return v
}
