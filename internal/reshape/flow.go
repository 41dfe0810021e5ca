package reshape

import (
	"fmt"
	"time"

	"storage-diagnostics/internal/model"
)

// ValueRange is the fixed display clamp of the flow chart. It is a display
// setting, never derived from the data.
type ValueRange struct {
	Min float64 `json:"min" yaml:"value_min" ini:"value_min"`
	Max float64 `json:"max" yaml:"value_max" ini:"value_max"`
}

// DefaultValueRange is the clamp used by the simulation's own dashboard.
var DefaultValueRange = ValueRange{Min: -150, Max: 550}

func (r ValueRange) Validate() error {
	if r.Min >= r.Max {
		return fmt.Errorf("value range min %.2f must be below max %.2f", r.Min, r.Max)
	}
	return nil
}

func (r ValueRange) IsZero() bool { return r == ValueRange{} }

type FlowOptions struct {
	// ValueRange defaults to DefaultValueRange when zero.
	ValueRange ValueRange
}

// FlowResult is the animated flow chart input. Rows hold six categories per
// timestamp, grouped by timestamp; Frames lists the distinct frame times.
type FlowResult struct {
	Rows       []model.LongFormRow
	ValueRange ValueRange
	Frames     []time.Time
}

// Flow derives the energy-flow categories for every record:
//
//	Storage SOC       = Storage SOC
//	Storage Charge    = Storage charge
//	Storage Discharge = -Storage discharge (drawn below zero, leaving the battery)
//	PV Generation     = PV gen
//	PV to battery     = PV gen to charge
//	PV to grid        = PV gen to grid
//
// Timestamps are rounded to the nearest hour first so each simulated hour
// maps to one animation frame.
func Flow(series []model.Record, opts FlowOptions) FlowResult {
	vr := opts.ValueRange
	if vr.IsZero() {
		vr = DefaultValueRange
	}

	cats := model.FlowCategories()
	res := FlowResult{
		Rows:       make([]model.LongFormRow, 0, len(series)*len(cats)),
		ValueRange: vr,
		Frames:     make([]time.Time, 0, len(series)),
	}
	for _, rec := range series {
		ts := RoundToHour(rec.Timestamp)
		if n := len(res.Frames); n == 0 || !res.Frames[n-1].Equal(ts) {
			res.Frames = append(res.Frames, ts)
		}
		for _, c := range cats {
			res.Rows = append(res.Rows, model.LongFormRow{
				Timestamp: ts,
				Category:  string(c),
				Value:     flowValue(rec, c),
			})
		}
	}
	return res
}

func flowValue(rec model.Record, c model.FlowCategory) float64 {
	switch c {
	case model.FlowStorageSOC:
		return rec.Value(model.VarStorageSOC)
	case model.FlowStorageCharge:
		return rec.Value(model.VarStorageCharge)
	case model.FlowStorageDischarge:
		return negate(rec.Value(model.VarStorageDischarge))
	case model.FlowPVGeneration:
		return rec.Value(model.VarPVGen)
	case model.FlowPVToBattery:
		return rec.Value(model.VarPVGenToCharge)
	case model.FlowPVToGrid:
		return rec.Value(model.VarPVGenToGrid)
	default:
		return 0
	}
}

// RoundToHour rounds t to the nearest wall-clock hour in its own location.
// Exactly half past rounds up.
func RoundToHour(t time.Time) time.Time {
	h := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	if t.Sub(h) >= 30*time.Minute {
		h = h.Add(time.Hour)
	}
	return h
}

// negate flips the sign without producing -0, which JSON renders as "-0".
func negate(x float64) float64 {
	if x == 0 {
		return 0
	}
	return -x
}
