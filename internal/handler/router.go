package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"testdrive-hub/internal/handler/api"
	"testdrive-hub/internal/handler/middleware"
	"testdrive-hub/internal/infra/metrics"
	"testdrive-hub/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Deps struct {
	TestDrive *api.TestDriveHandler
	Draft     *api.DraftHandler
	Auth      *middleware.AuthMiddleware
	Metrics   *metrics.PrometheusRecorder
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, deps Deps) {
	setupMiddleware(engine, cfg, logger, deps.Metrics)
	setupRoutes(engine, deps)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, recorder *metrics.PrometheusRecorder) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.Metrics(recorder))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, deps Deps) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	td := deps.TestDrive
	auth := deps.Auth

	apiGroup := engine.Group("/api")
	{
		vehicles := apiGroup.Group("/vehicles/:vehicleId")
		vehicles.Use(auth.OptionalAuth())
		{
			addRoutes(vehicles, []route{
				{Method: http.MethodPost, Path: "/test-drive-requests", Handler: td.Submit},
				{Method: http.MethodGet, Path: "/draft", Handler: deps.Draft.Get},
				{Method: http.MethodPut, Path: "/draft", Handler: deps.Draft.Put},
				{Method: http.MethodDelete, Path: "/draft", Handler: deps.Draft.Delete},
				{Method: http.MethodPost, Path: "/draft/autosave", Handler: deps.Draft.Autosave},
				{Method: http.MethodPost, Path: "/draft/flush", Handler: deps.Draft.Flush},
			})
		}

		requests := apiGroup.Group("/test-drive-requests")
		{
			addRoutes(requests, []route{
				{Method: http.MethodPost, Path: "/validate", Handler: td.Validate},
			})

			authRequired := requests.Group("")
			authRequired.Use(auth.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: td.Get},
				{Method: http.MethodGet, Path: "/:id/history", Handler: td.History},
				{Method: http.MethodPost, Path: "/:id/respond", Handler: td.Respond},
				{Method: http.MethodGet, Path: "/:id/calendar.ics", Handler: td.CalendarFile},
				{Method: http.MethodGet, Path: "/:id/calendar-links", Handler: td.CalendarLinks},
			})
		}

		seller := apiGroup.Group("/seller")
		seller.Use(auth.RequireAuth())
		{
			addRoutes(seller, []route{
				{Method: http.MethodGet, Path: "/test-drive-requests", Handler: td.ListForSeller, Mw: []gin.HandlerFunc{auth.RequireSeller()}},
			})
		}

		buyer := apiGroup.Group("/buyer")
		buyer.Use(auth.RequireAuth())
		{
			addRoutes(buyer, []route{
				{Method: http.MethodGet, Path: "/test-drive-requests", Handler: td.ListForBuyer},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
