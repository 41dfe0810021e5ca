package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storage-diagnostics/internal/model"
)

func validBlock() [][]string {
	return [][]string{
		{"PV Power (MW)", "100.0", "", "", ""},
		{"Storage Power (MW)", "50.0", "", "Efficiency", "0.85"},
		{"Storage Energy (MWh)", "25.0", "", "Duration", "12"},
	}
}

func TestExtract(t *testing.T) {
	m, err := Extract(validBlock())
	require.NoError(t, err)
	assert.Equal(t, model.SummaryMetrics{
		PVPowerMW:          100,
		StoragePowerMW:     50,
		StorageEnergyMWh:   25,
		EfficiencyFraction: 0.85,
		DurationHours:      12,
	}, m)
}

func TestExtractIgnoresExtraRows(t *testing.T) {
	block := append(validBlock(), []string{"Scenario", "base"})
	_, err := Extract(block)
	require.NoError(t, err)
}

func TestExtractRaggedRows(t *testing.T) {
	// Spreadsheet readers drop trailing empty cells, so row 0 can be short.
	block := validBlock()
	block[0] = []string{"PV Power (MW)", "100"}
	m, err := Extract(block)
	require.NoError(t, err)
	assert.Equal(t, 100.0, m.PVPowerMW)
}

func TestExtractCoercions(t *testing.T) {
	block := validBlock()
	block[0][1] = " 1,250.5 "
	block[1][4] = "85%"
	m, err := Extract(block)
	require.NoError(t, err)
	assert.Equal(t, 1250.5, m.PVPowerMW)
	assert.InDelta(t, 0.85, m.EfficiencyFraction, 1e-12)
}

func TestExtractTooFewRows(t *testing.T) {
	_, err := Extract(validBlock()[:2])
	assert.ErrorIs(t, err, model.ErrMalformedMetadata)

	_, err = Extract(nil)
	assert.ErrorIs(t, err, model.ErrMalformedMetadata)
}

func TestExtractTooFewColumns(t *testing.T) {
	block := [][]string{
		{"a", "1", "", ""},
		{"b", "2", "", ""},
		{"c", "3", "", ""},
	}
	_, err := Extract(block)
	assert.ErrorIs(t, err, model.ErrMalformedMetadata)
}

func TestExtractIsAllOrNothing(t *testing.T) {
	block := validBlock()
	block[2][4] = "twelve"
	m, err := Extract(block)
	require.ErrorIs(t, err, model.ErrMalformedMetadata)
	assert.Contains(t, err.Error(), "(2,4)")
	assert.Equal(t, model.SummaryMetrics{}, m)

	block = validBlock()
	block[1] = []string{"Storage Power (MW)", "50"}
	_, err = Extract(block)
	assert.ErrorIs(t, err, model.ErrMalformedMetadata)

	for _, raw := range []string{"NaN", "Inf", "-Inf%"} {
		block = validBlock()
		block[1][1] = raw
		m, err = Extract(block)
		require.ErrorIs(t, err, model.ErrMalformedMetadata, raw)
		assert.Contains(t, err.Error(), "(1,1)", raw)
		assert.Equal(t, model.SummaryMetrics{}, m)
	}
}

func TestFormat(t *testing.T) {
	d := Format(model.SummaryMetrics{
		PVPowerMW:          100,
		StoragePowerMW:     50,
		StorageEnergyMWh:   25,
		EfficiencyFraction: 0.8464,
		DurationHours:      12,
	})
	assert.Equal(t, DisplayMetrics{
		PVPower:       "100.00 MW",
		StoragePower:  "50.00 MW",
		StorageEnergy: "25.00 MWh",
		Efficiency:    "84.64%",
		Duration:      "12 h",
	}, d)
}
