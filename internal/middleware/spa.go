package middleware

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// SPAFallback serves the single-page front end: real files from the
// static dir, everything else falls back to index.html so client-side
// routing survives a reload. API misses keep the JSON envelope instead
// of leaking HTML to API clients. Mount with router.NoRoute.
func SPAFallback(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "not found"})
			return
		}
		if c.Request.Method != http.MethodGet {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "not found"})
			return
		}

		requested := filepath.Join(staticDir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(requested); err == nil && !info.IsDir() {
			c.File(requested)
			return
		}

		index := filepath.Join(staticDir, "index.html")
		if _, err := os.Stat(index); err != nil {
			c.String(http.StatusNotFound, "index.html not found")
			return
		}
		c.File(index)
	}
}
