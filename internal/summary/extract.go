// Package summary reads the headline metrics out of the positional metadata
// block at the top of a simulation export.
package summary

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"storage-diagnostics/internal/model"
)

// cellRef is a zero-based (row, column) position in the metadata block.
type cellRef struct {
	Row, Col int
}

// Metadata cell positions. These are fixed by the export format.
var (
	cellPVPower       = cellRef{0, 1}
	cellStoragePower  = cellRef{1, 1}
	cellStorageEnergy = cellRef{2, 1}
	cellEfficiency    = cellRef{1, 4}
	cellDuration      = cellRef{2, 4}
)

const (
	minRows    = 3
	minColumns = 5
)

// Extract returns all five metrics or an error; partial results are never
// returned.
func Extract(metadata [][]string) (model.SummaryMetrics, error) {
	if len(metadata) < minRows {
		return model.SummaryMetrics{}, fmt.Errorf("%w: %d rows, need at least %d",
			model.ErrMalformedMetadata, len(metadata), minRows)
	}
	width := 0
	for _, row := range metadata[:minRows] {
		width = max(width, len(row))
	}
	if width < minColumns {
		return model.SummaryMetrics{}, fmt.Errorf("%w: %d columns, need at least %d",
			model.ErrMalformedMetadata, width, minColumns)
	}

	var m model.SummaryMetrics
	fields := []struct {
		ref cellRef
		dst *float64
	}{
		{cellPVPower, &m.PVPowerMW},
		{cellStoragePower, &m.StoragePowerMW},
		{cellStorageEnergy, &m.StorageEnergyMWh},
		{cellEfficiency, &m.EfficiencyFraction},
		{cellDuration, &m.DurationHours},
	}
	for _, f := range fields {
		v, err := numericCell(metadata, f.ref)
		if err != nil {
			return model.SummaryMetrics{}, err
		}
		*f.dst = v
	}
	return m, nil
}

// numericCell coerces one metadata cell. Thousands separators are dropped and
// a trailing percent sign divides by 100.
func numericCell(metadata [][]string, ref cellRef) (float64, error) {
	row := metadata[ref.Row]
	if ref.Col >= len(row) {
		return 0, fmt.Errorf("%w: cell (%d,%d) is missing", model.ErrMalformedMetadata, ref.Row, ref.Col)
	}
	raw := row[ref.Col]
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	scale := 1.0
	if strings.HasSuffix(s, "%") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
		scale = 0.01
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: cell (%d,%d) is not numeric: %q", model.ErrMalformedMetadata, ref.Row, ref.Col, raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: cell (%d,%d) is not finite: %q", model.ErrMalformedMetadata, ref.Row, ref.Col, raw)
	}
	return v * scale, nil
}
