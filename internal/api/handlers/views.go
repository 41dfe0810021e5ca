package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storage-diagnostics/internal/api/models"
	"storage-diagnostics/internal/model"
	"storage-diagnostics/internal/pipeline"
	"storage-diagnostics/internal/reshape"
)

// ViewHandler serves the derived views of the active dataset
type ViewHandler struct {
	engine *pipeline.Engine
}

func NewViewHandler(engine *pipeline.Engine) *ViewHandler {
	return &ViewHandler{engine: engine}
}

// Summary handles GET /api/v1/summary
func (h *ViewHandler) Summary(c *gin.Context) {
	ds, err := h.engine.Pinned(c.Query("dataset_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	v, err := h.engine.Summary(ds)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// Series handles GET /api/v1/series
func (h *ViewHandler) Series(c *gin.Context) {
	var q models.SeriesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	sel, err := reshape.ParseSelection(splitList(q.Primary), splitList(q.Secondary))
	if err != nil {
		respondError(c, err)
		return
	}
	ds, w, ok := h.resolve(c, q.WindowQuery)
	if !ok {
		return
	}
	v, err := h.engine.Plain(ds, w, sel)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// Flow handles GET /api/v1/flow
func (h *ViewHandler) Flow(c *gin.Context) {
	var q models.WindowQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	ds, w, ok := h.resolve(c, q)
	if !ok {
		return
	}
	v, err := h.engine.Flow(ds, w)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// Stats handles GET /api/v1/stats
func (h *ViewHandler) Stats(c *gin.Context) {
	var q models.WindowQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	ds, w, ok := h.resolve(c, q)
	if !ok {
		return
	}
	v, err := h.engine.Stats(ds, w)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// resolve picks the dataset and parses the window, writing the error
// response itself when either fails.
func (h *ViewHandler) resolve(c *gin.Context, q models.WindowQuery) (*model.DiagnosticDataset, model.TimeWindow, bool) {
	ds, err := h.engine.Pinned(q.DatasetID)
	if err != nil {
		respondError(c, err)
		return nil, model.TimeWindow{}, false
	}
	w, err := parseWindow(q)
	if err != nil {
		respondError(c, err)
		return nil, model.TimeWindow{}, false
	}
	return ds, w, true
}
