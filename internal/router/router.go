package router

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/roster-mahasiswa/internal/config"
	"github.com/stemsi/roster-mahasiswa/internal/handler"
	"github.com/stemsi/roster-mahasiswa/internal/middleware"
	"github.com/stemsi/roster-mahasiswa/internal/model"
	"github.com/stemsi/roster-mahasiswa/internal/response"
	"github.com/stemsi/roster-mahasiswa/web"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Page   *handler.PageHandler
	Roster *handler.RosterHandler
	WS     *handler.WSHandler
}

// SetupRouter configures the page, API and WebSocket routes with their middlewares.
// limiter guards the endpoints that change the roster; nil disables it.
func SetupRouter(
	handlers *Handlers,
	cfg *config.Config,
	log zerolog.Logger,
	limiter *middleware.RateLimiter,
) (*gin.Engine, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(middleware.RequestLogger(log), gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	tmpl, err := web.Templates(template.FuncMap{
		"timestamp": func(t time.Time) string { return model.FormatTimestamp(t, cfg.Location) },
	})
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)

	// Stylesheet and script change only with a release (1 day).
	staticGroup := router.Group("/static")
	staticGroup.Use(middleware.CacheControl(86400))
	{
		staticGroup.StaticFS("/", web.Static())
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	mutating := []gin.HandlerFunc{}
	if limiter != nil {
		mutating = append(mutating, limiter.Middleware())
	}

	// ─── 1. Page Group (HTML form + list) ──────────────────────────────
	page := router.Group("/")
	page.Use(middleware.NoStore())
	{
		page.GET("", handlers.Page.Index)
		page.POST("/students", append(mutating, handlers.Page.Submit)...)
		page.POST("/students/clear", append(mutating, handlers.Page.Clear)...)
		page.POST("/students/:id/delete", append(mutating, handlers.Page.Delete)...)
		page.GET("/students/export", handlers.Page.Export)
	}

	// ─── 2. API Group (JSON) ───────────────────────────────────────────
	api := router.Group("/api/v1/students")
	api.Use(middleware.NoStore())
	{
		api.GET("", handlers.Roster.ListStudents)
		api.POST("", append(mutating, handlers.Roster.CreateStudent)...)
		api.DELETE("", append(mutating, handlers.Roster.ClearStudents)...)
		api.GET("/stats", handlers.Roster.GetStats)
		api.GET("/export", handlers.Roster.ExportStudents)
		api.POST("/validate", handlers.Roster.ValidateField)
		api.DELETE("/:id", append(mutating, handlers.Roster.DeleteStudent)...)
	}

	// ─── 3. WebSocket Group (live viewers) ─────────────────────────────
	ws := router.Group("/ws/v1")
	{
		ws.GET("/roster/stream", handlers.WS.RosterStream)
	}

	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	})

	return router, nil
}
