// Package units maps time-series variables to their display units.
package units

import (
	"fmt"

	"storage-diagnostics/internal/model"
)

const (
	PricePerMWh = "$/MWh"
	MW          = "MW"
	MWh         = "MWh"
)

var catalog = map[model.Variable]string{
	model.VarPrice:            PricePerMWh,
	model.VarPVAvail:          MW,
	model.VarPVGen:            MW,
	model.VarPVGenToGrid:      MW,
	model.VarPVGenToCharge:    MW,
	model.VarGridGenToCharge:  MW,
	model.VarStorageCharge:    MW,
	model.VarStorageDischarge: MW,
	model.VarStorageSOC:       MWh,
}

// Entry is one catalog line.
type Entry struct {
	Variable model.Variable `json:"variable"`
	Unit     string         `json:"unit"`
}

// Of returns the display unit of v.
func Of(v model.Variable) (string, error) {
	u, ok := catalog[v]
	if !ok {
		return "", fmt.Errorf("%w: %q", model.ErrUnknownVariable, string(v))
	}
	return u, nil
}

// MustOf is Of for variables already validated by the caller.
func MustOf(v model.Variable) string {
	u, err := Of(v)
	if err != nil {
		panic(err)
	}
	return u
}

// All returns the catalog in export column order.
func All() []Entry {
	vars := model.Variables()
	out := make([]Entry, 0, len(vars))
	for _, v := range vars {
		out = append(out, Entry{Variable: v, Unit: catalog[v]})
	}
	return out
}
