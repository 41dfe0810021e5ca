package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storage-diagnostics/internal/api/models"
	"storage-diagnostics/internal/model"
	"storage-diagnostics/internal/session"
)

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		model.ErrUnsupportedFormat:                          http.StatusUnsupportedMediaType,
		fmt.Errorf("wrap: %w", model.ErrMalformedLayout):    http.StatusUnprocessableEntity,
		&model.TimeParseError{Row: 7, Value: "x"}:           http.StatusUnprocessableEntity,
		model.ErrMalformedMetadata:                          http.StatusUnprocessableEntity,
		model.ErrInvalidWindow:                              http.StatusBadRequest,
		model.ErrUnknownVariable:                            http.StatusBadRequest,
		model.ErrInvalidSelection:                           http.StatusBadRequest,
		session.ErrNoDataset:                                http.StatusNotFound,
		fmt.Errorf("%w: want a", session.ErrDatasetChanged): http.StatusConflict,
		errors.New("disk on fire"):                          http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, statusFor(err), err.Error())
	}
}

func TestParseWindow(t *testing.T) {
	w, err := parseWindow(models.WindowQuery{Start: "2018-01-01T05:00", End: "2018-01-02T00:00:00Z"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2018, 1, 1, 5, 0, 0, 0, time.UTC), w.Start)
	assert.True(t, w.End.Equal(time.Date(2018, 1, 2, 0, 0, 0, 0, time.UTC)))

	w, err = parseWindow(models.WindowQuery{})
	require.NoError(t, err)
	assert.True(t, w.IsZero())

	_, err = parseWindow(models.WindowQuery{End: "noon"})
	assert.ErrorIs(t, err, model.ErrInvalidWindow)
}

func TestSplitList(t *testing.T) {
	got := splitList([]string{"Price, PV gen", "", "Storage SOC"})
	assert.Equal(t, []string{"Price", "PV gen", "Storage SOC"}, got)
	assert.Nil(t, splitList(nil))
}
