package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storage-diagnostics/internal/api/models"
	"storage-diagnostics/internal/model"
	"storage-diagnostics/internal/pipeline"
)

// UploadField is the multipart field carrying the simulation export.
const UploadField = "file"

// DatasetHandler handles dataset upload and inspection
type DatasetHandler struct {
	engine         *pipeline.Engine
	maxUploadBytes int64
}

func NewDatasetHandler(engine *pipeline.Engine, maxUploadBytes int64) *DatasetHandler {
	return &DatasetHandler{engine: engine, maxUploadBytes: maxUploadBytes}
}

// Upload handles POST /api/v1/datasets
func (h *DatasetHandler) Upload(c *gin.Context) {
	if c.Request.ContentLength > h.maxUploadBytes {
		tooLarge(c, h.maxUploadBytes)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	fh, err := c.FormFile(UploadField)
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			tooLarge(c, h.maxUploadBytes)
			return
		}
		badRequest(c, "INVALID_REQUEST", fmt.Sprintf("multipart field %q is required: %v", UploadField, err))
		return
	}

	f, err := fh.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		respondError(c, err)
		return
	}

	ds, err := h.engine.Load(raw, fh.Filename)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"dataset": datasetInfo(ds)})
}

// Current handles GET /api/v1/datasets/current
func (h *DatasetHandler) Current(c *gin.Context) {
	ds, err := h.engine.Current()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dataset": datasetInfo(ds)})
}

func datasetInfo(ds *model.DiagnosticDataset) models.DatasetInfo {
	info := models.DatasetInfo{
		ID:       ds.ID,
		Filename: ds.Filename,
		Format:   string(ds.Format),
		Rows:     ds.Len(),
		LoadedAt: ds.LoadedAt,
	}
	if start, end, ok := ds.Bounds(); ok {
		info.Start, info.End = start, end
	}
	return info
}

func tooLarge(c *gin.Context, limit int64) {
	logrus.WithField("limit_bytes", limit).Warn("upload rejected: too large")
	c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "UPLOAD_TOO_LARGE",
			Message: fmt.Sprintf("upload exceeds %d bytes", limit),
			Details: map[string]interface{}{"limit_bytes": limit},
		},
	})
}
