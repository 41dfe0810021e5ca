// Package export writes derived views as CSV.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"storage-diagnostics/internal/analysis"
	"storage-diagnostics/internal/model"
	"storage-diagnostics/internal/pipeline"
)

// WriteLongFormCSV writes one line per (timestamp, category) row.
func WriteLongFormCSV(out io.Writer, rows []model.LongFormRow) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"timestamp", "category", "value"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write([]string{fmtTime(r.Timestamp), r.Category, fmtFloat(r.Value)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WritePlainCSV writes both axes of a line chart view, tagging each line with
// its axis and the axis unit.
func WritePlainCSV(out io.Writer, v pipeline.PlainView) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"timestamp", "axis", "category", "value", "unit"}); err != nil {
		return err
	}
	write := func(axis, unit string, rows []model.LongFormRow) error {
		for _, r := range rows {
			row := []string{fmtTime(r.Timestamp), axis, r.Category, fmtFloat(r.Value), unit}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	}
	if err := write("primary", v.PrimaryUnit, v.PrimaryRows); err != nil {
		return err
	}
	if v.HasSecondary() {
		if err := write("secondary", v.SecondaryUnit, v.SecondaryRows); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func WriteSummaryCSV(out io.Writer, v pipeline.SummaryView) error {
	w := csv.NewWriter(out)
	rows := [][]string{
		{"metric", "value", "display"},
		{"pv_power_mw", fmtFloat(v.Metrics.PVPowerMW), v.Display.PVPower},
		{"storage_power_mw", fmtFloat(v.Metrics.StoragePowerMW), v.Display.StoragePower},
		{"storage_energy_mwh", fmtFloat(v.Metrics.StorageEnergyMWh), v.Display.StorageEnergy},
		{"efficiency_fraction", fmtFloat(v.Metrics.EfficiencyFraction), v.Display.Efficiency},
		{"duration_hours", fmtFloat(v.Metrics.DurationHours), v.Display.Duration},
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return w.Error()
}

// WriteStatsCSV writes the per-variable statistics table.
func WriteStatsCSV(out io.Writer, s analysis.WindowStats) error {
	w := csv.NewWriter(out)
	header := []string{"variable", "unit", "min", "max", "mean", "p05", "p95"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, v := range s.Variables {
		row := []string{
			string(v.Variable),
			v.Unit,
			fmtFloat(v.Min),
			fmtFloat(v.Max),
			fmtFloat(v.Mean),
			fmtFloat(v.P05),
			fmtFloat(v.P95),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteEnergyCSV writes the energy balance as metric/value lines.
func WriteEnergyCSV(out io.Writer, e analysis.EnergyBalance) error {
	w := csv.NewWriter(out)
	rows := [][]string{
		{"metric", "value"},
		{"charged_mwh", fmtFloat(e.ChargedMWh)},
		{"discharged_mwh", fmtFloat(e.DischargedMWh)},
		{"pv_to_storage_mwh", fmtFloat(e.PVToStorageMWh)},
		{"grid_to_storage_mwh", fmtFloat(e.GridToStorageMWh)},
		{"pv_to_grid_mwh", fmtFloat(e.PVToGridMWh)},
		{"round_trip_ratio", fmtFloat(e.RoundTripRatio)},
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return w.Error()
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
