package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"storage-diagnostics/internal/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readCSV loads every physical row as data. Rows may differ in length because
// the metadata block is narrower than the time series.
func readCSV(raw []byte) (grid, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(raw, utf8BOM)))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return grid{}, fmt.Errorf("%w: read csv: %v", model.ErrMalformedLayout, err)
	}
	return grid{rows: rows}, nil
}
