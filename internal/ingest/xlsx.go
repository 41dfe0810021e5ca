package ingest

import (
	"bytes"
	"fmt"

	"storage-diagnostics/internal/model"

	"github.com/xuri/excelize/v2"
)

// readXLSX loads one worksheet with raw cell values, so number formats
// (percentages, dates) do not leak into the parsed text. The first row is
// data like any other; no header inference happens here.
func readXLSX(raw []byte, sheet string) (grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return grid{}, fmt.Errorf("%w: open workbook: %v", model.ErrMalformedLayout, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return grid{}, fmt.Errorf("%w: workbook has no sheets", model.ErrMalformedLayout)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return grid{}, fmt.Errorf("%w: read sheet %q: %v", model.ErrMalformedLayout, sheet, err)
	}

	g := grid{rows: rows, serialDates: true}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		g.date1904 = *props.Date1904
	}
	return g, nil
}
