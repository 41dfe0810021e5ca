// Package ingest turns a simulation export (CSV or xlsx) into a DiagnosticDataset.
//
// The export layout is fixed by the upstream simulation tool; see layout.go.
// Structure is never inferred from content: a file either matches the layout
// exactly or parsing fails, and no partial dataset is ever returned.
package ingest

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"storage-diagnostics/internal/model"

	"github.com/google/uuid"
)

// Parser holds parse options. The zero value is not usable; use NewParser.
type Parser struct {
	layouts []string
	sheet   string
	now     func() time.Time
	newID   func() string
}

type Option func(*Parser)

// WithTimeLayouts replaces the timestamp layouts tried for the first column.
func WithTimeLayouts(layouts ...string) Option {
	return func(p *Parser) {
		if len(layouts) > 0 {
			p.layouts = append([]string(nil), layouts...)
		}
	}
}

// WithSheet selects the worksheet read from spreadsheet containers.
// By default the first sheet is used.
func WithSheet(name string) Option {
	return func(p *Parser) { p.sheet = name }
}

// WithClock overrides the clock used for LoadedAt.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) { p.now = now }
}

func NewParser(opts ...Option) *Parser {
	p := &Parser{
		layouts: append([]string(nil), DefaultTimeLayouts...),
		now:     time.Now,
		newID:   func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse is a convenience wrapper around NewParser(opts...).Parse.
func Parse(raw []byte, filenameHint string, opts ...Option) (*model.DiagnosticDataset, error) {
	return NewParser(opts...).Parse(raw, filenameHint)
}

// DetectFormat picks the loader from the filename extension.
// Content is never sniffed.
func DetectFormat(filenameHint string) (model.Format, error) {
	switch strings.ToLower(filepath.Ext(strings.TrimSpace(filenameHint))) {
	case ".csv":
		return model.FormatCSV, nil
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return model.FormatXLSX, nil
	case ".xls":
		return "", fmt.Errorf("%w: %q is a legacy BIFF workbook, save it as .xlsx or .csv", model.ErrUnsupportedFormat, filenameHint)
	default:
		return "", fmt.Errorf("%w: %q is neither CSV nor a spreadsheet", model.ErrUnsupportedFormat, filenameHint)
	}
}

// grid is the raw cell matrix with every row treated as data.
type grid struct {
	rows [][]string
	// serialDates enables decoding numeric timestamps as Excel date serials.
	serialDates bool
	date1904    bool
}

func (p *Parser) Parse(raw []byte, filenameHint string) (*model.DiagnosticDataset, error) {
	format, err := DetectFormat(filenameHint)
	if err != nil {
		return nil, err
	}

	var g grid
	switch format {
	case model.FormatCSV:
		g, err = readCSV(raw)
	case model.FormatXLSX:
		g, err = readXLSX(raw, p.sheet)
	}
	if err != nil {
		return nil, err
	}

	ds, err := p.build(g)
	if err != nil {
		return nil, err
	}
	ds.ID = p.newID()
	ds.Filename = filepath.Base(filenameHint)
	ds.Format = format
	ds.LoadedAt = p.now()
	return ds, nil
}

func (p *Parser) build(g grid) (*model.DiagnosticDataset, error) {
	rows := trimTrailingEmpty(g.rows)
	if len(rows) < MinRows {
		return nil, fmt.Errorf("%w: file has %d rows, need at least %d", model.ErrMalformedLayout, len(rows), MinRows)
	}

	cols, err := headerColumns(rows[HeaderRow])
	if err != nil {
		return nil, err
	}

	metadata := make([][]string, MetadataRows)
	for i := 0; i < MetadataRows; i++ {
		metadata[i] = append([]string(nil), rows[i]...)
	}

	vars := model.Variables()
	body := rows[FirstSeriesRow:]
	series := make([]model.Record, 0, len(body))
	for i, row := range body {
		physical := FirstSeriesRow + i
		if isEmptyRow(row) {
			return nil, fmt.Errorf("%w: row %d is empty", model.ErrMalformedLayout, physical)
		}

		ts, err := p.parseTimestamp(cell(row, TimestampColumn), g, physical)
		if err != nil {
			return nil, err
		}
		if n := len(series); n > 0 && !ts.After(series[n-1].Timestamp) {
			return nil, fmt.Errorf("%w: row %d: timestamp %s does not follow %s",
				model.ErrMalformedLayout, physical,
				ts.Format(time.RFC3339), series[n-1].Timestamp.Format(time.RFC3339))
		}

		values := make(map[model.Variable]float64, len(vars))
		for _, v := range vars {
			s := strings.TrimSpace(cell(row, cols[v]))
			if s == "" {
				return nil, fmt.Errorf("%w: row %d: missing value for %q", model.ErrMalformedLayout, physical, v)
			}
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: %q is not numeric: %q", model.ErrMalformedLayout, physical, v, s)
			}
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, fmt.Errorf("%w: row %d: %q is not finite: %q", model.ErrMalformedLayout, physical, v, s)
			}
			values[v] = f
		}
		series = append(series, model.Record{Timestamp: ts, Values: values})
	}

	return &model.DiagnosticDataset{
		Metadata: metadata,
		Series:   series,
	}, nil
}

func (p *Parser) parseTimestamp(s string, g grid, row int) (time.Time, error) {
	t, err := ParseTime(s, p.layouts)
	if err == nil {
		return t, nil
	}
	if g.serialDates {
		if t, ok := parseSerialTime(s, g.date1904); ok {
			return t, nil
		}
	}
	return time.Time{}, &model.TimeParseError{Row: row, Value: s, Err: err}
}

// headerColumns maps every variable to its column in the header row.
// Unknown columns are ignored; missing or repeated variables are an error.
func headerColumns(header []string) (map[model.Variable]int, error) {
	cols := make(map[model.Variable]int, len(header))
	for i, name := range header {
		if i == TimestampColumn {
			continue
		}
		name = strings.TrimSpace(name)
		if !model.IsVariable(name) {
			continue
		}
		v := model.Variable(name)
		if prev, dup := cols[v]; dup {
			return nil, fmt.Errorf("%w: header row %d: %q appears in columns %d and %d",
				model.ErrMalformedLayout, HeaderRow, name, prev, i)
		}
		cols[v] = i
	}

	var missing []string
	for _, v := range model.Variables() {
		if _, ok := cols[v]; !ok {
			missing = append(missing, string(v))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: header row %d is missing %s",
			model.ErrMalformedLayout, HeaderRow, strings.Join(quoteAll(missing), ", "))
	}
	return cols, nil
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func trimTrailingEmpty(rows [][]string) [][]string {
	n := len(rows)
	for n > 0 && isEmptyRow(rows[n-1]) {
		n--
	}
	return rows[:n]
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strconv.Quote(s)
	}
	return out
}
