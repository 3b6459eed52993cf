package middleware

import (
	"log/slog"
	"net/http"
	"slices"

	"testdrive-hub/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Headers the API reads or writes regardless of deployment config.
var (
	requiredAllowHeaders  = []string{"Authorization", "Content-Type", "Idempotency-Key", "X-Session-ID"}
	requiredExposeHeaders = []string{"Location", "Content-Disposition", "Idempotent-Replayed"}
)

func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     withRequired(cfg.AllowHeaders, requiredAllowHeaders),
		ExposeHeaders:    withRequired(cfg.ExposeHeaders, requiredExposeHeaders),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("CORS middleware initialized",
		"allowOrigins", corsCfg.AllowOrigins,
		"exposeHeaders", corsCfg.ExposeHeaders,
	)
	return cors.New(corsCfg)
}

func withRequired(configured, required []string) []string {
	out := slices.Clone(configured)
	for _, h := range required {
		if !slices.ContainsFunc(out, func(c string) bool { return http.CanonicalHeaderKey(c) == http.CanonicalHeaderKey(h) }) {
			out = append(out, h)
		}
	}
	return out
}
