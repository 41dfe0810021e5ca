package ingest

// The simulation export encodes its schema by position rather than by name.
// Everything that depends on a row or column offset reads it from here.
//
//	row 0..3  metadata block (summary scalars at fixed cells)
//	row 4     header: timestamp column, then variable names
//	row 5..   hourly time series, one row per timestamp
const (
	// MetadataRows is the number of positional metadata rows at the top of the file.
	MetadataRows = 4
	// HeaderRow is the zero-based physical row holding the column names.
	HeaderRow = 4
	// FirstSeriesRow is the zero-based physical row of the first time-series record.
	FirstSeriesRow = 5
	// MinRows is the smallest grid that can hold metadata, header and one record.
	MinRows = FirstSeriesRow + 1
	// TimestampColumn is the column holding the record timestamp.
	TimestampColumn = 0
)
