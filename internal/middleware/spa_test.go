package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupSPARouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	staticDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<html>app shell</html>"), 0644); err != nil {
		t.Fatalf("failed to write index.html: %v", err)
	}
	if err := os.WriteFile(filepath.Join(staticDir, "app.js"), []byte(`console.log("ok")`), 0644); err != nil {
		t.Fatalf("failed to write app.js: %v", err)
	}

	r := gin.New()
	r.NoRoute(SPAFallback(staticDir))
	return r
}

func TestSPAFallbackServesIndexForUnmatchedRoute(t *testing.T) {
	r := setupSPARouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/movies/42", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<html>app shell</html>", w.Body.String())
}

func TestSPAFallbackServesExistingFile(t *testing.T) {
	r := setupSPARouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/app.js", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `console.log("ok")`, w.Body.String())
}

func TestSPAFallbackKeepsAPIMissesJSON(t *testing.T) {
	r := setupSPARouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success": false, "error": "not found"}`, w.Body.String())
}

func TestSPAFallbackRejectsNonGET(t *testing.T) {
	r := setupSPARouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/movies", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success": false, "error": "not found"}`, w.Body.String())
}
