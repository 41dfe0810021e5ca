// Package reshape pivots a wide, already windowed time series into the long
// (timestamp, category, value) form consumed by charting.
//
// Both chart modes go through this package so that unit lookup, sign
// conventions and rounding live in one place.
package reshape

import (
	"fmt"

	"storage-diagnostics/internal/model"
	"storage-diagnostics/internal/units"
)

// Selection is the variable choice for the multi-series chart: a primary
// axis group and an optional secondary axis group.
type Selection struct {
	Primary   []model.Variable
	Secondary []model.Variable
}

// ParseSelection validates caller-supplied variable names.
func ParseSelection(primary, secondary []string) (Selection, error) {
	var sel Selection
	for _, name := range primary {
		v, err := model.ParseVariable(name)
		if err != nil {
			return Selection{}, err
		}
		sel.Primary = append(sel.Primary, v)
	}
	for _, name := range secondary {
		v, err := model.ParseVariable(name)
		if err != nil {
			return Selection{}, err
		}
		sel.Secondary = append(sel.Secondary, v)
	}
	if err := sel.Validate(); err != nil {
		return Selection{}, err
	}
	return sel, nil
}

// Validate checks that every name is known, the primary group is not empty,
// and no variable is selected twice across both groups.
func (s Selection) Validate() error {
	if len(s.Primary) == 0 {
		return fmt.Errorf("%w: primary axis needs at least one variable", model.ErrInvalidSelection)
	}
	seen := make(map[model.Variable]bool, len(s.Primary)+len(s.Secondary))
	for _, group := range [][]model.Variable{s.Primary, s.Secondary} {
		for _, v := range group {
			if !model.IsVariable(string(v)) {
				return fmt.Errorf("%w: %q", model.ErrUnknownVariable, string(v))
			}
			if seen[v] {
				return fmt.Errorf("%w: %q selected more than once", model.ErrInvalidSelection, string(v))
			}
			seen[v] = true
		}
	}
	return nil
}

// PlainResult is the multi-series chart input.
//
// Each axis is labelled with the unit of the first variable in its group.
// Mixing variables with different units on one axis is not detected; the
// later variables are drawn against the first one's unit.
type PlainResult struct {
	PrimaryRows   []model.LongFormRow
	SecondaryRows []model.LongFormRow
	PrimaryUnit   string
	// SecondaryUnit is empty when no secondary group was selected.
	SecondaryUnit string
}

func (r PlainResult) HasSecondary() bool {
	return r.SecondaryUnit != ""
}

// Plain produces one row per (timestamp, variable), in series order and
// then selection order within a timestamp.
func Plain(series []model.Record, sel Selection) (PlainResult, error) {
	if err := sel.Validate(); err != nil {
		return PlainResult{}, err
	}
	res := PlainResult{
		PrimaryRows: longForm(series, sel.Primary),
		PrimaryUnit: units.MustOf(sel.Primary[0]),
	}
	if len(sel.Secondary) > 0 {
		res.SecondaryRows = longForm(series, sel.Secondary)
		res.SecondaryUnit = units.MustOf(sel.Secondary[0])
	}
	return res, nil
}

func longForm(series []model.Record, vars []model.Variable) []model.LongFormRow {
	out := make([]model.LongFormRow, 0, len(series)*len(vars))
	for _, rec := range series {
		for _, v := range vars {
			out = append(out, model.LongFormRow{
				Timestamp: rec.Timestamp,
				Category:  string(v),
				Value:     rec.Value(v),
			})
		}
	}
	return out
}
