package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storage-diagnostics/internal/pipeline"
)

// Health handles GET /health
func Health(engine *pipeline.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := gin.H{"status": "ok", "dataset_loaded": false}
		if ds, err := engine.Current(); err == nil {
			resp["dataset_loaded"] = true
			resp["dataset_id"] = ds.ID
		}
		c.JSON(http.StatusOK, resp)
	}
}
