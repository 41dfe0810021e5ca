package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveLoad(t *testing.T) {
	before := testutil.ToFloat64(datasetLoads.WithLabelValues("csv", "ok"))
	ObserveLoad("csv", "ok", 5*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(datasetLoads.WithLabelValues("csv", "ok")))
}

func TestObserveLoadUnknownFormat(t *testing.T) {
	before := testutil.ToFloat64(datasetLoads.WithLabelValues("unknown", "UNSUPPORTED_FORMAT"))
	ObserveLoad("", "UNSUPPORTED_FORMAT", time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(datasetLoads.WithLabelValues("unknown", "UNSUPPORTED_FORMAT")))
}

func TestSetDatasetRows(t *testing.T) {
	SetDatasetRows(48)
	assert.Equal(t, 48.0, testutil.ToFloat64(datasetRows))
}

func TestObserveView(t *testing.T) {
	before := testutil.ToFloat64(viewRequests.WithLabelValues("flow", "ok"))
	ObserveView("flow", "ok")
	assert.Equal(t, before+1, testutil.ToFloat64(viewRequests.WithLabelValues("flow", "ok")))
}

func TestObserveHTTP(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/health", "200"))
	ObserveHTTP("GET", "/health", "200", time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/health", "200")))
}
