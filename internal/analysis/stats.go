package analysis

import (
	"math"
	"sort"
	"time"

	"storage-diagnostics/internal/model"
	"storage-diagnostics/internal/units"
)

// VariableStats summarises one variable over a window.
type VariableStats struct {
	Variable model.Variable `json:"variable"`
	Unit     string         `json:"unit"`
	Min      float64        `json:"min"`
	Max      float64        `json:"max"`
	Mean     float64        `json:"mean"`
	P05      float64        `json:"p05"`
	P95      float64        `json:"p95"`
}

// EnergyBalance integrates the storage power flows over a window.
// Each record's power is held until the next record; the last record reuses
// the preceding step, or one hour when the window holds a single record.
type EnergyBalance struct {
	ChargedMWh       float64 `json:"charged_mwh"`
	DischargedMWh    float64 `json:"discharged_mwh"`
	PVToStorageMWh   float64 `json:"pv_to_storage_mwh"`
	GridToStorageMWh float64 `json:"grid_to_storage_mwh"`
	PVToGridMWh      float64 `json:"pv_to_grid_mwh"`
	// RoundTripRatio is discharged / charged energy, 0 when nothing was charged.
	// Over short windows it also reflects the SOC change and can exceed 1.
	RoundTripRatio float64 `json:"round_trip_ratio"`
}

// WindowStats is the statistics view of a filtered series.
type WindowStats struct {
	Start     time.Time       `json:"start"`
	End       time.Time       `json:"end"`
	Count     int             `json:"count"`
	Variables []VariableStats `json:"variables"`
	Energy    EnergyBalance   `json:"energy"`
}

// Compute returns per-variable statistics and the energy balance of series.
// An empty series yields a zero-count result with no variable entries.
func Compute(series []model.Record) WindowStats {
	out := WindowStats{Count: len(series), Variables: []VariableStats{}}
	if len(series) == 0 {
		return out
	}
	out.Start = series[0].Timestamp
	out.End = series[len(series)-1].Timestamp

	for _, v := range model.Variables() {
		out.Variables = append(out.Variables, variableStats(series, v))
	}
	out.Energy = energyBalance(series)
	return out
}

func variableStats(series []model.Record, v model.Variable) VariableStats {
	vals := make([]float64, 0, len(series))
	sum := 0.0
	minv := math.Inf(1)
	maxv := math.Inf(-1)
	for _, r := range series {
		x := r.Value(v)
		vals = append(vals, x)
		sum += x
		minv = math.Min(minv, x)
		maxv = math.Max(maxv, x)
	}
	sort.Float64s(vals)
	return VariableStats{
		Variable: v,
		Unit:     units.MustOf(v),
		Min:      minv,
		Max:      maxv,
		Mean:     sum / float64(len(vals)),
		P05:      percentileSorted(vals, 0.05),
		P95:      percentileSorted(vals, 0.95),
	}
}

func energyBalance(series []model.Record) EnergyBalance {
	var e EnergyBalance
	for i, r := range series {
		dtH := stepHours(series, i)
		e.ChargedMWh += r.Value(model.VarStorageCharge) * dtH
		e.DischargedMWh += r.Value(model.VarStorageDischarge) * dtH
		e.PVToStorageMWh += r.Value(model.VarPVGenToCharge) * dtH
		e.GridToStorageMWh += r.Value(model.VarGridGenToCharge) * dtH
		e.PVToGridMWh += r.Value(model.VarPVGenToGrid) * dtH
	}
	if e.ChargedMWh > 0 {
		e.RoundTripRatio = e.DischargedMWh / e.ChargedMWh
	}
	return e
}

func stepHours(series []model.Record, i int) float64 {
	switch {
	case i+1 < len(series):
		return series[i+1].Timestamp.Sub(series[i].Timestamp).Hours()
	case i > 0:
		return series[i].Timestamp.Sub(series[i-1].Timestamp).Hours()
	default:
		return 1
	}
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
