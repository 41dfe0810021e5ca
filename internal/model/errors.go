package model

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrMalformedLayout   = errors.New("malformed layout")
	ErrTimeParse         = errors.New("time parse error")
	ErrInvalidWindow     = errors.New("invalid window")
	ErrUnknownVariable   = errors.New("unknown variable")
	ErrMalformedMetadata = errors.New("malformed metadata")
	ErrInvalidSelection  = errors.New("invalid selection")
)

// TimeParseError reports a timestamp cell that could not be parsed.
// Row is the zero-based physical row in the source file.
type TimeParseError struct {
	Row   int
	Value string
	Err   error
}

func (e *TimeParseError) Error() string {
	msg := fmt.Sprintf("time parse error: row %d: cannot parse %q", e.Row, e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TimeParseError) Is(target error) bool {
	return target == ErrTimeParse
}

func (e *TimeParseError) Unwrap() error {
	return e.Err
}

// Code maps an error to a stable code for API and CLI output.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnsupportedFormat):
		return "UNSUPPORTED_FORMAT"
	case errors.Is(err, ErrMalformedLayout):
		return "MALFORMED_LAYOUT"
	case errors.Is(err, ErrTimeParse):
		return "TIME_PARSE_ERROR"
	case errors.Is(err, ErrInvalidWindow):
		return "INVALID_WINDOW"
	case errors.Is(err, ErrUnknownVariable):
		return "UNKNOWN_VARIABLE"
	case errors.Is(err, ErrMalformedMetadata):
		return "MALFORMED_METADATA"
	case errors.Is(err, ErrInvalidSelection):
		return "INVALID_SELECTION"
	default:
		return "INTERNAL_ERROR"
	}
}
