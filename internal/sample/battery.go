package sample

import (
	"errors"
	"math"
)

// BatteryParams defines the storage asset simulated by the generator.
// Units:
// - EnergyCapacityMWh: MWh
// - PowerCapacityMW: MW
// - Efficiencies: 0..1
// - SOC bounds: fraction 0..1 of EnergyCapacityMWh
type BatteryParams struct {
	EnergyCapacityMWh   float64 `yaml:"energy_capacity_mwh"`
	PowerCapacityMW     float64 `yaml:"power_capacity_mw"`
	ChargeEfficiency    float64 `yaml:"charge_efficiency"`
	DischargeEfficiency float64 `yaml:"discharge_efficiency"`
	MinSOC              float64 `yaml:"min_soc"`
	MaxSOC              float64 `yaml:"max_soc"`
}

func (p BatteryParams) Validate() error {
	if p.EnergyCapacityMWh <= 0 {
		return errors.New("EnergyCapacityMWh must be > 0")
	}
	if p.PowerCapacityMW <= 0 {
		return errors.New("PowerCapacityMW must be > 0")
	}
	if p.ChargeEfficiency <= 0 || p.ChargeEfficiency > 1 {
		return errors.New("ChargeEfficiency must be in (0, 1]")
	}
	if p.DischargeEfficiency <= 0 || p.DischargeEfficiency > 1 {
		return errors.New("DischargeEfficiency must be in (0, 1]")
	}
	if p.MinSOC < 0 || p.MinSOC > 1 || p.MaxSOC < 0 || p.MaxSOC > 1 || p.MinSOC > p.MaxSOC {
		return errors.New("MinSOC/MaxSOC must satisfy 0<=MinSOC<=MaxSOC<=1")
	}
	return nil
}

// RoundTripEfficiency is the fraction of charged energy that comes back out.
func (p BatteryParams) RoundTripEfficiency() float64 {
	return p.ChargeEfficiency * p.DischargeEfficiency
}

// DurationHours is how long the battery can discharge at full power.
func (p BatteryParams) DurationHours() float64 {
	return p.EnergyCapacityMWh / p.PowerCapacityMW
}

// battery tracks stored energy in MWh. It starts at MinSOC so that every
// discharged MWh is explained by an earlier charge.
type battery struct {
	params    BatteryParams
	storedMWh float64
}

func newBattery(p BatteryParams) *battery {
	return &battery{params: p, storedMWh: p.MinSOC * p.EnergyCapacityMWh}
}

// charge accepts up to mw of input power for hours and returns the power
// actually drawn, limited by power capacity and MaxSOC.
func (b *battery) charge(mw, hours float64) float64 {
	if mw <= 0 || hours <= 0 {
		return 0
	}
	headroomMWh := b.params.MaxSOC*b.params.EnergyCapacityMWh - b.storedMWh
	if headroomMWh <= 0 {
		return 0
	}
	limitBySOC := headroomMWh / b.params.ChargeEfficiency / hours
	p := math.Min(mw, math.Min(b.params.PowerCapacityMW, limitBySOC))
	b.storedMWh += p * hours * b.params.ChargeEfficiency
	return p
}

// discharge delivers up to mw of output power for hours and returns the power
// actually delivered, limited by power capacity and MinSOC.
func (b *battery) discharge(mw, hours float64) float64 {
	if mw <= 0 || hours <= 0 {
		return 0
	}
	withdrawableMWh := b.storedMWh - b.params.MinSOC*b.params.EnergyCapacityMWh
	if withdrawableMWh <= 0 {
		return 0
	}
	limitBySOC := withdrawableMWh * b.params.DischargeEfficiency / hours
	p := math.Min(mw, math.Min(b.params.PowerCapacityMW, limitBySOC))
	b.storedMWh -= p * hours / b.params.DischargeEfficiency
	return p
}

func (b *battery) headroomMW(hours float64) float64 {
	headroomMWh := b.params.MaxSOC*b.params.EnergyCapacityMWh - b.storedMWh
	if headroomMWh <= 0 || hours <= 0 {
		return 0
	}
	return math.Min(b.params.PowerCapacityMW, headroomMWh/b.params.ChargeEfficiency/hours)
}
