package summary

import (
	"fmt"
	"math"
	"strconv"

	"storage-diagnostics/internal/model"
)

// DisplayMetrics is SummaryMetrics rendered for people.
type DisplayMetrics struct {
	PVPower       string `json:"pv_power"`
	StoragePower  string `json:"storage_power"`
	StorageEnergy string `json:"storage_energy"`
	Efficiency    string `json:"efficiency"`
	Duration      string `json:"duration"`
}

// Format renders power and energy with two decimals, efficiency as a
// percentage and duration in plain hours.
func Format(m model.SummaryMetrics) DisplayMetrics {
	return DisplayMetrics{
		PVPower:       fmt.Sprintf("%.2f MW", m.PVPowerMW),
		StoragePower:  fmt.Sprintf("%.2f MW", m.StoragePowerMW),
		StorageEnergy: fmt.Sprintf("%.2f MWh", m.StorageEnergyMWh),
		Efficiency:    trimmed(m.EfficiencyFraction*100) + "%",
		Duration:      trimmed(m.DurationHours) + " h",
	}
}

// trimmed prints at most two decimals and drops trailing zeros.
func trimmed(x float64) string {
	return strconv.FormatFloat(math.Round(x*100)/100, 'f', -1, 64)
}
