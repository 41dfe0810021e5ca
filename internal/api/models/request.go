package models

// WindowQuery is the time window of a view request. Empty ends default to
// the dataset bounds. Values are RFC3339 or datetime-local ("2006-01-02T15:04").
type WindowQuery struct {
	Start string `form:"start"`
	End   string `form:"end"`
	// DatasetID pins the request to a dataset; 409 when another one is active.
	DatasetID string `form:"dataset_id"`
}

// SeriesQuery selects the plain-mode variable groups. Each parameter may be
// repeated or hold a comma-separated list.
type SeriesQuery struct {
	WindowQuery
	Primary   []string `form:"primary"`
	Secondary []string `form:"secondary"`
}
