// Package window restricts a time series to an inclusive time range.
package window

import (
	"sort"

	"storage-diagnostics/internal/model"
)

// Filter returns the records of series whose timestamp lies in w, both ends
// included, in their original order. The result is a new slice; series is
// not modified. An empty result is not an error.
func Filter(series []model.Record, w model.TimeWindow) ([]model.Record, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	// series is strictly increasing, so the window is one contiguous run.
	lo := sort.Search(len(series), func(i int) bool {
		return !series[i].Timestamp.Before(w.Start)
	})
	hi := sort.Search(len(series), func(i int) bool {
		return series[i].Timestamp.After(w.End)
	})
	out := make([]model.Record, hi-lo)
	copy(out, series[lo:hi])
	return out, nil
}

// FilterDataset applies Filter to the dataset's series.
func FilterDataset(ds *model.DiagnosticDataset, w model.TimeWindow) ([]model.Record, error) {
	if ds == nil {
		return Filter(nil, w)
	}
	return Filter(ds.Series, w)
}

// Bounds returns the window spanning the whole series.
// ok is false when the series is empty.
func Bounds(series []model.Record) (model.TimeWindow, bool) {
	if len(series) == 0 {
		return model.TimeWindow{}, false
	}
	return model.TimeWindow{
		Start: series[0].Timestamp,
		End:   series[len(series)-1].Timestamp,
	}, true
}
