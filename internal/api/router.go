// Package api exposes the diagnostics pipeline over HTTP.
package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storage-diagnostics/internal/api/handlers"
	"storage-diagnostics/internal/api/middleware"
	"storage-diagnostics/internal/api/models"
	"storage-diagnostics/internal/config"
	"storage-diagnostics/internal/pipeline"
)

// NewRouter wires middleware and routes. The gin mode is set by the caller.
func NewRouter(cfg *config.Config, engine *pipeline.Engine) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = cfg.Server.MaxUploadBytes

	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	router.Use(middleware.Logger())

	datasetHandler := handlers.NewDatasetHandler(engine, cfg.Server.MaxUploadBytes)
	viewHandler := handlers.NewViewHandler(engine)

	router.GET("/health", handlers.Health(engine))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	{
		api.POST("/datasets",
			middleware.RateLimit(cfg.Server.RateLimitQPS, cfg.Server.RateLimitBurst),
			datasetHandler.Upload)
		api.GET("/datasets/current", datasetHandler.Current)

		api.GET("/summary", viewHandler.Summary)
		api.GET("/series", viewHandler.Series)
		api.GET("/flow", viewHandler.Flow)
		api.GET("/stats", viewHandler.Stats)

		api.GET("/variables", handlers.ListVariables)
	}

	router.NoRoute(func(c *gin.Context) {
		msg := "Not found"
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			msg = "no such API route: " + c.Request.URL.Path
		}
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "NOT_FOUND", Message: msg},
		})
	})

	return router
}
