package model

import "time"

// Format identifies how a dataset was delivered.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Record is one hourly row of the time series.
type Record struct {
	Timestamp time.Time
	Values    map[Variable]float64
}

// Value returns the value of v, or 0 when the record does not carry it.
func (r Record) Value(v Variable) float64 {
	return r.Values[v]
}

// DiagnosticDataset is the parsed content of one simulation export.
//
// Metadata holds the raw cells of the block above the header row. Positions are
// significant (row, column); only the summary extractor reads it.
// Series is strictly increasing in time.
//
// A dataset is built once per file and never mutated afterwards; selecting a
// different file replaces it wholesale.
type DiagnosticDataset struct {
	ID       string
	Filename string
	Format   Format
	LoadedAt time.Time

	Metadata [][]string
	Series   []Record
}

// Len returns the number of time-series rows.
func (d *DiagnosticDataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Series)
}

// Bounds returns the first and last timestamps of the series.
// ok is false for an empty series.
func (d *DiagnosticDataset) Bounds() (start, end time.Time, ok bool) {
	if d.Len() == 0 {
		return time.Time{}, time.Time{}, false
	}
	return d.Series[0].Timestamp, d.Series[len(d.Series)-1].Timestamp, true
}

// LongFormRow is one (timestamp, category, value) triple handed to charting.
type LongFormRow struct {
	Timestamp time.Time `json:"timestamp"`
	Category  string    `json:"category"`
	Value     float64   `json:"value"`
}

// SummaryMetrics are the headline scalars of a simulation run.
// Units:
// - PVPowerMW, StoragePowerMW: MW
// - StorageEnergyMWh: MWh
// - EfficiencyFraction: 0..1
// - DurationHours: hours
type SummaryMetrics struct {
	PVPowerMW          float64 `json:"pv_power_mw"`
	StoragePowerMW     float64 `json:"storage_power_mw"`
	StorageEnergyMWh   float64 `json:"storage_energy_mwh"`
	EfficiencyFraction float64 `json:"efficiency_fraction"`
	DurationHours      float64 `json:"duration_hours"`
}
