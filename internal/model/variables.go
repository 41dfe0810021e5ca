package model

import "fmt"

// Variable is one column of the simulation's hourly time series.
// Keep these values stable; they must match the header row of the export byte for byte.
type Variable string

const (
	VarPrice            Variable = "Price"
	VarPVAvail          Variable = "PV avail"
	VarPVGen            Variable = "PV gen"
	VarPVGenToGrid      Variable = "PV gen to grid"
	VarPVGenToCharge    Variable = "PV gen to charge"
	VarGridGenToCharge  Variable = "Grid gen to charge"
	VarStorageCharge    Variable = "Storage charge"
	VarStorageDischarge Variable = "Storage discharge"
	VarStorageSOC       Variable = "Storage SOC"
)

var variables = []Variable{
	VarPrice,
	VarPVAvail,
	VarPVGen,
	VarPVGenToGrid,
	VarPVGenToCharge,
	VarGridGenToCharge,
	VarStorageCharge,
	VarStorageDischarge,
	VarStorageSOC,
}

var variableSet = func() map[Variable]struct{} {
	m := make(map[Variable]struct{}, len(variables))
	for _, v := range variables {
		m[v] = struct{}{}
	}
	return m
}()

// Variables returns the fixed variable set in export column order.
func Variables() []Variable {
	out := make([]Variable, len(variables))
	copy(out, variables)
	return out
}

func IsVariable(name string) bool {
	_, ok := variableSet[Variable(name)]
	return ok
}

// ParseVariable validates a caller-supplied variable name.
func ParseVariable(name string) (Variable, error) {
	if !IsVariable(name) {
		return "", fmt.Errorf("%w: %q", ErrUnknownVariable, name)
	}
	return Variable(name), nil
}

// FlowCategory is a derived label used by the energy-flow view.
type FlowCategory string

const (
	FlowStorageSOC       FlowCategory = "Storage SOC"
	FlowStorageCharge    FlowCategory = "Storage Charge"
	FlowStorageDischarge FlowCategory = "Storage Discharge"
	FlowPVGeneration     FlowCategory = "PV Generation"
	FlowPVToBattery      FlowCategory = "PV to battery"
	FlowPVToGrid         FlowCategory = "PV to grid"
)

// FlowCategories returns the flow categories in derivation order.
// Animation frames rely on this order, not on any sort.
func FlowCategories() []FlowCategory {
	return []FlowCategory{
		FlowStorageSOC,
		FlowStorageCharge,
		FlowStorageDischarge,
		FlowPVGeneration,
		FlowPVToBattery,
		FlowPVToGrid,
	}
}
