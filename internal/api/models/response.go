package models

import "time"

// DatasetInfo describes the active dataset.
type DatasetInfo struct {
	ID       string    `json:"id"`
	Filename string    `json:"filename"`
	Format   string    `json:"format"`
	Rows     int       `json:"rows"`
	LoadedAt time.Time `json:"loaded_at"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// VariableInfo is one entry of the unit catalog.
type VariableInfo struct {
	Name string `json:"name"`
	Unit string `json:"unit"`
}

// FlowCategoryInfo describes one derived flow-chart category.
type FlowCategoryInfo struct {
	Name        string `json:"name"`
	Unit        string `json:"unit"`
	Description string `json:"description"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
