package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storage-diagnostics/internal/model"
)

var t0 = time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)

func hourly(n int) []model.Record {
	out := make([]model.Record, n)
	for i := range out {
		out[i] = model.Record{
			Timestamp: t0.Add(time.Duration(i) * time.Hour),
			Values:    map[model.Variable]float64{model.VarPrice: float64(i)},
		}
	}
	return out
}

func at(h int) time.Time { return t0.Add(time.Duration(h) * time.Hour) }

func TestFilterInclusiveBothEnds(t *testing.T) {
	got, err := Filter(hourly(5), model.TimeWindow{Start: at(1), End: at(3)})
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, r := range got {
		assert.Equal(t, at(i+1), r.Timestamp)
	}
}

func TestFilterSinglePoint(t *testing.T) {
	got, err := Filter(hourly(5), model.TimeWindow{Start: at(2), End: at(2)})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, at(2), got[0].Timestamp)
}

func TestFilterBetweenSamples(t *testing.T) {
	got, err := Filter(hourly(5), model.TimeWindow{
		Start: at(1).Add(time.Minute),
		End:   at(2).Add(-time.Minute),
	})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestFilterOutsideRange(t *testing.T) {
	got, err := Filter(hourly(5), model.TimeWindow{Start: at(10), End: at(12)})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = Filter(nil, model.TimeWindow{Start: at(0), End: at(1)})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFilterInvalidWindow(t *testing.T) {
	_, err := Filter(hourly(5), model.TimeWindow{Start: at(3), End: at(1)})
	assert.ErrorIs(t, err, model.ErrInvalidWindow)
}

func TestFilterIsIdempotent(t *testing.T) {
	w := model.TimeWindow{Start: at(1), End: at(3)}
	once, err := Filter(hourly(5), w)
	require.NoError(t, err)
	twice, err := Filter(once, w)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestFilterDoesNotAliasSource(t *testing.T) {
	src := hourly(5)
	got, err := Filter(src, model.TimeWindow{Start: at(0), End: at(4)})
	require.NoError(t, err)
	got[0] = model.Record{}
	assert.Equal(t, at(0), src[0].Timestamp)
}

func TestFilterDataset(t *testing.T) {
	ds := &model.DiagnosticDataset{Series: hourly(5)}
	got, err := FilterDataset(ds, model.TimeWindow{Start: at(4), End: at(9)})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = FilterDataset(nil, model.TimeWindow{Start: at(4), End: at(9)})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBounds(t *testing.T) {
	w, ok := Bounds(hourly(3))
	require.True(t, ok)
	assert.Equal(t, model.TimeWindow{Start: at(0), End: at(2)}, w)

	_, ok = Bounds(nil)
	assert.False(t, ok)
}
