//go:build unit

package middleware_test

import (
	"net/http"
	nethttptest "net/http/httptest"
	"strings"
	"testing"
	"time"

	"testdrive-hub/internal/handler/middleware"
	"testdrive-hub/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCORSExposesAPIHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.NewCORSMiddleware(config.CORSConfig{
		AllowOrigins:  []string{"http://localhost:3000"},
		AllowMethods:  []string{"GET", "POST"},
		AllowHeaders:  []string{"Origin"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        time.Hour,
	}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := nethttptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := nethttptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	exposed := strings.ToLower(w.Header().Get("Access-Control-Expose-Headers"))
	for _, h := range []string{"content-length", "location", "idempotent-replayed"} {
		assert.Contains(t, exposed, h)
	}
}
