package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storage-diagnostics/internal/api/models"
	"storage-diagnostics/internal/model"
	"storage-diagnostics/internal/pipeline"
	"storage-diagnostics/internal/session"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, model.ErrMalformedLayout),
		errors.Is(err, model.ErrTimeParse),
		errors.Is(err, model.ErrMalformedMetadata):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrInvalidWindow),
		errors.Is(err, model.ErrUnknownVariable),
		errors.Is(err, model.ErrInvalidSelection):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrNoDataset):
		return http.StatusNotFound
	case errors.Is(err, session.ErrDatasetChanged),
		errors.Is(err, session.ErrStale):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err in the error envelope and records it on the context.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	detail := models.ErrorDetail{
		Code:    pipeline.ErrorCode(err),
		Message: err.Error(),
	}
	var tpe *model.TimeParseError
	if errors.As(err, &tpe) {
		detail.Details = map[string]interface{}{
			"row":   tpe.Row,
			"value": tpe.Value,
		}
	}
	c.JSON(statusFor(err), models.ErrorResponse{Error: detail})
}

func badRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
