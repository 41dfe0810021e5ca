// Package sample generates synthetic storage-dispatch runs laid out exactly
// like the simulation export. It backs cmd/gen-sample and the test fixtures
// of the other packages.
package sample

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"storage-diagnostics/internal/model"
)

// TimestampLayout is the layout used for the timestamp column.
const TimestampLayout = "2006-01-02 15:04:05"

// Params configures a generated run.
type Params struct {
	Start     time.Time     `yaml:"start"`
	Hours     int           `yaml:"hours"`
	PVPowerMW float64       `yaml:"pv_power_mw"`
	BasePrice float64       `yaml:"base_price"` // $/MWh
	Battery   BatteryParams `yaml:"battery"`
	Schedule  Schedule      `yaml:"schedule"`
}

func DefaultParams() Params {
	return Params{
		Start:     time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC),
		Hours:     48,
		PVPowerMW: 100,
		BasePrice: 35,
		Battery: BatteryParams{
			EnergyCapacityMWh:   200,
			PowerCapacityMW:     50,
			ChargeEfficiency:    0.92,
			DischargeEfficiency: 0.92,
			MinSOC:              0.10,
			MaxSOC:              0.95,
		},
		Schedule: Schedule{
			GridChargeStart: "01:00",
			GridChargeEnd:   "05:00",
			DischargeStart:  "17:00",
			DischargeEnd:    "22:00",
		},
	}
}

// Run is a generated simulation.
type Run struct {
	Params   Params
	Metadata [][]string
	Records  []model.Record
}

// Generate simulates one hourly dispatch run.
func Generate(p Params) (*Run, error) {
	if p.Hours <= 0 {
		return nil, fmt.Errorf("hours must be > 0")
	}
	if p.PVPowerMW < 0 {
		return nil, fmt.Errorf("pv_power_mw must be >= 0")
	}
	if err := p.Battery.Validate(); err != nil {
		return nil, fmt.Errorf("battery invalid: %w", err)
	}
	sched, err := p.Schedule.compile()
	if err != nil {
		return nil, err
	}

	batt := newBattery(p.Battery)
	records := make([]model.Record, 0, p.Hours)
	const dtH = 1.0

	for i := 0; i < p.Hours; i++ {
		ts := p.Start.Add(time.Duration(i) * time.Hour)
		hour := float64(ts.Hour())
		mins := ts.Hour()*60 + ts.Minute()

		pvAvail := p.PVPowerMW * math.Max(0, math.Sin(math.Pi*(hour-6)/12))
		price := p.BasePrice * (1 - 0.35*safeRatio(pvAvail, p.PVPowerMW))
		if sched.discharging(mins) {
			price += 0.5 * p.BasePrice
		}

		var pvToCharge, gridToCharge, discharge float64
		if sched.discharging(mins) {
			discharge = batt.discharge(p.Battery.PowerCapacityMW, dtH)
		} else {
			pvToCharge = batt.charge(math.Min(pvAvail, batt.headroomMW(dtH)), dtH)
			if sched.gridCharging(mins) {
				gridToCharge = batt.charge(p.Battery.PowerCapacityMW-pvToCharge, dtH)
			}
		}

		records = append(records, model.Record{
			Timestamp: ts,
			Values: map[model.Variable]float64{
				model.VarPrice:            round(price, 2),
				model.VarPVAvail:          round(pvAvail, 3),
				model.VarPVGen:            round(pvAvail, 3),
				model.VarPVGenToGrid:      round(pvAvail-pvToCharge, 3),
				model.VarPVGenToCharge:    round(pvToCharge, 3),
				model.VarGridGenToCharge:  round(gridToCharge, 3),
				model.VarStorageCharge:    round(pvToCharge+gridToCharge, 3),
				model.VarStorageDischarge: round(discharge, 3),
				model.VarStorageSOC:       round(batt.storedMWh, 3),
			},
		})
	}

	return &Run{
		Params:   p,
		Metadata: metadataBlock(p),
		Records:  records,
	}, nil
}

// metadataBlock lays the headline scalars out at the cells the summary
// extractor reads: (0,1) PV MW, (1,1) storage MW, (2,1) storage MWh,
// (1,4) efficiency, (2,4) duration.
func metadataBlock(p Params) [][]string {
	return [][]string{
		{"PV Power (MW)", fmtFloat(p.PVPowerMW), "", "", ""},
		{"Storage Power (MW)", fmtFloat(p.Battery.PowerCapacityMW), "", "Round-trip Efficiency", fmtFloat(round(p.Battery.RoundTripEfficiency(), 4))},
		{"Storage Energy (MWh)", fmtFloat(p.Battery.EnergyCapacityMWh), "", "Duration (h)", fmtFloat(p.Battery.DurationHours())},
		{"Simulation Start", p.Start.Format(time.RFC3339), "", "", ""},
	}
}

// Header returns the header row: timestamp column then every variable.
func Header() []string {
	vars := model.Variables()
	h := make([]string, 0, len(vars)+1)
	h = append(h, "Timestamp")
	for _, v := range vars {
		h = append(h, string(v))
	}
	return h
}

// Column returns the column index of v in rows produced by Rows.
func Column(v model.Variable) int {
	for i, name := range model.Variables() {
		if name == v {
			return i + 1
		}
	}
	return -1
}

// Rows returns the complete export grid: metadata, header, time series.
func (r *Run) Rows() [][]string {
	rows := make([][]string, 0, len(r.Metadata)+1+len(r.Records))
	for _, m := range r.Metadata {
		rows = append(rows, append([]string(nil), m...))
	}
	rows = append(rows, Header())
	vars := model.Variables()
	for _, rec := range r.Records {
		row := make([]string, 0, len(vars)+1)
		row = append(row, rec.Timestamp.Format(TimestampLayout))
		for _, v := range vars {
			row = append(row, fmtFloat(rec.Value(v)))
		}
		rows = append(rows, row)
	}
	return rows
}

func safeRatio(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
