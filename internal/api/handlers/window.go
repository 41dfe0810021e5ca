package handlers

import (
	"fmt"
	"strings"
	"time"

	"storage-diagnostics/internal/api/models"
	"storage-diagnostics/internal/ingest"
	"storage-diagnostics/internal/model"
)

// queryTimeLayouts are accepted for start and end query values. The second one
// is what a browser datetime-local input submits.
var queryTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseWindow turns the query into a window. Unset ends stay zero and are
// filled from the dataset bounds by the pipeline.
func parseWindow(q models.WindowQuery) (model.TimeWindow, error) {
	var w model.TimeWindow
	var err error
	if w.Start, err = parseQueryTime("start", q.Start); err != nil {
		return model.TimeWindow{}, err
	}
	if w.End, err = parseQueryTime("end", q.End); err != nil {
		return model.TimeWindow{}, err
	}
	return w, nil
}

func parseQueryTime(name, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	t, err := ingest.ParseTime(value, queryTimeLayouts)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q is not a recognised time", model.ErrInvalidWindow, name, value)
	}
	return t, nil
}

// splitList flattens repeated and comma-separated query values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
