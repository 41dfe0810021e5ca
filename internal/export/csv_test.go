package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storage-diagnostics/internal/analysis"
	"storage-diagnostics/internal/model"
	"storage-diagnostics/internal/pipeline"
	"storage-diagnostics/internal/summary"
)

var t0 = time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)

func readBack(t *testing.T, b []byte) [][]string {
	t.Helper()
	r := csv.NewReader(bytes.NewReader(b))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteLongFormCSV(t *testing.T) {
	var buf bytes.Buffer
	rows := []model.LongFormRow{
		{Timestamp: t0, Category: "Storage Discharge", Value: -12.5},
		{Timestamp: t0.Add(time.Hour), Category: "PV to grid", Value: 3},
	}
	require.NoError(t, WriteLongFormCSV(&buf, rows))

	got := readBack(t, buf.Bytes())
	require.Len(t, got, 3)
	assert.Equal(t, []string{"timestamp", "category", "value"}, got[0])
	assert.Equal(t, []string{"2018-01-01T00:00:00Z", "Storage Discharge", "-12.500000"}, got[1])
	assert.Equal(t, "2018-01-01T01:00:00Z", got[2][0])
}

func TestWritePlainCSV(t *testing.T) {
	v := pipeline.PlainView{
		PrimaryRows:   []model.LongFormRow{{Timestamp: t0, Category: "Storage charge", Value: 10}},
		SecondaryRows: []model.LongFormRow{{Timestamp: t0, Category: "Price", Value: 42}},
		PrimaryUnit:   "MW",
		SecondaryUnit: "$/MWh",
	}
	var buf bytes.Buffer
	require.NoError(t, WritePlainCSV(&buf, v))

	got := readBack(t, buf.Bytes())
	require.Len(t, got, 3)
	assert.Equal(t, []string{"2018-01-01T00:00:00Z", "primary", "Storage charge", "10.000000", "MW"}, got[1])
	assert.Equal(t, []string{"2018-01-01T00:00:00Z", "secondary", "Price", "42.000000", "$/MWh"}, got[2])
}

func TestWritePlainCSVPrimaryOnly(t *testing.T) {
	v := pipeline.PlainView{
		PrimaryRows: []model.LongFormRow{{Timestamp: t0, Category: "Price", Value: 1}},
		PrimaryUnit: "$/MWh",
	}
	var buf bytes.Buffer
	require.NoError(t, WritePlainCSV(&buf, v))
	assert.Len(t, readBack(t, buf.Bytes()), 2)
}

func TestWriteSummaryCSV(t *testing.T) {
	m := model.SummaryMetrics{PVPowerMW: 100, StoragePowerMW: 50, StorageEnergyMWh: 200, EfficiencyFraction: 0.85, DurationHours: 4}
	var buf bytes.Buffer
	require.NoError(t, WriteSummaryCSV(&buf, pipeline.SummaryView{Metrics: m, Display: summary.Format(m)}))

	got := readBack(t, buf.Bytes())
	require.Len(t, got, 6)
	assert.Equal(t, []string{"pv_power_mw", "100.000000", "100.00 MW"}, got[1])
	assert.Equal(t, "85%", got[4][2])
}

func TestWriteStatsAndEnergyCSV(t *testing.T) {
	s := analysis.WindowStats{
		Count: 2,
		Variables: []analysis.VariableStats{
			{Variable: model.VarPrice, Unit: "$/MWh", Min: 1, Max: 3, Mean: 2, P05: 1.1, P95: 2.9},
		},
		Energy: analysis.EnergyBalance{ChargedMWh: 10, DischargedMWh: 8, RoundTripRatio: 0.8},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteStatsCSV(&buf, s))
	got := readBack(t, buf.Bytes())
	require.Len(t, got, 2)
	assert.Equal(t, []string{"Price", "$/MWh", "1.000000", "3.000000", "2.000000", "1.100000", "2.900000"}, got[1])

	buf.Reset()
	require.NoError(t, WriteEnergyCSV(&buf, s.Energy))
	got = readBack(t, buf.Bytes())
	require.Len(t, got, 7)
	assert.Equal(t, []string{"round_trip_ratio", "0.800000"}, got[6])
}
